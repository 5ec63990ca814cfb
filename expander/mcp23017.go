// Package expander implements dio.RegisterBank on a pair of MCP23017
// I2C GPIO expanders, giving the four logical ports real pins: DIO ports
// A and B land on the first chip's GPA/GPB banks, C and D on the second.
//
// The MCP23017's IODIR registers use 1=input, the opposite of the bank
// contract's 1=output, so direction bytes are complemented on both paths.
//
// Datasheet: https://ww1.microchip.com/downloads/en/devicedoc/20001952c.pdf
package expander

import (
	"godio/dio"

	"tinygo.org/x/drivers"
)

// Register addresses with BANK=0 (the power-on default, A/B interleaved).
const (
	regIODIRA = 0x00
	regIODIRB = 0x01
	regGPIOA  = 0x12
	regGPIOB  = 0x13
	regOLATA  = 0x14
	regOLATB  = 0x15
)

// Default I2C addresses for the two chips (A2..A0 strapped to 0 and 1).
const (
	DefaultAddress0 = 0x20
	DefaultAddress1 = 0x21
)

// Bank drives four 8-bit ports across two expanders on one I2C bus.
type Bank struct {
	bus  drivers.I2C
	addr [2]uint16
}

// Config holds the chip addresses.
type Config struct {
	Address0 uint8
	Address1 uint8
}

// NewBank creates a register bank on the given preconfigured I2C bus.
func NewBank(bus drivers.I2C) *Bank {
	return &Bank{
		bus:  bus,
		addr: [2]uint16{DefaultAddress0, DefaultAddress1},
	}
}

// Configure overrides the default chip addresses.
func (b *Bank) Configure(c Config) {
	if c.Address0 != 0 {
		b.addr[0] = uint16(c.Address0)
	}
	if c.Address1 != 0 {
		b.addr[1] = uint16(c.Address1)
	}
}

// locate maps a DIO port onto (chip address, register offset): the A/B
// halves of a chip are one register apart in BANK=0 addressing.
func (b *Bank) locate(port dio.Port, regA uint8) (uint16, uint8, error) {
	if port >= dio.NumPorts {
		return 0, 0, dio.ErrInvalidPort
	}
	return b.addr[port/2], regA + uint8(port%2), nil
}

func (b *Bank) readReg(addr uint16, reg uint8) (uint8, error) {
	var buf [1]byte
	if err := b.bus.Tx(addr, []byte{reg}, buf[:]); err != nil {
		return 0, err
	}
	return buf[0], nil
}

func (b *Bank) writeReg(addr uint16, reg uint8, value uint8) error {
	return b.bus.Tx(addr, []byte{reg, value}, nil)
}

func (b *Bank) ReadDirection(port dio.Port) (uint8, error) {
	addr, reg, err := b.locate(port, regIODIRA)
	if err != nil {
		return 0, err
	}
	v, err := b.readReg(addr, reg)
	if err != nil {
		return 0, err
	}
	return ^v, nil
}

func (b *Bank) WriteDirection(port dio.Port, value uint8) error {
	addr, reg, err := b.locate(port, regIODIRA)
	if err != nil {
		return err
	}
	return b.writeReg(addr, reg, ^value)
}

func (b *Bank) ReadOutput(port dio.Port) (uint8, error) {
	addr, reg, err := b.locate(port, regOLATA)
	if err != nil {
		return 0, err
	}
	return b.readReg(addr, reg)
}

func (b *Bank) WriteOutput(port dio.Port, value uint8) error {
	addr, reg, err := b.locate(port, regOLATA)
	if err != nil {
		return err
	}
	return b.writeReg(addr, reg, value)
}

func (b *Bank) ReadInput(port dio.Port) (uint8, error) {
	addr, reg, err := b.locate(port, regGPIOA)
	if err != nil {
		return 0, err
	}
	return b.readReg(addr, reg)
}
