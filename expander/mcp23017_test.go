package expander

import (
	"errors"
	"testing"

	"godio/dio"
)

// fakeI2C emulates two MCP23017s as flat register files keyed by chip
// address.
type fakeI2C struct {
	regs map[uint16][0x16]uint8
	fail bool
}

func newFakeI2C() *fakeI2C {
	// IODIR powers on all-ones (all inputs), everything else zero.
	var reset [0x16]uint8
	reset[regIODIRA] = 0xFF
	reset[regIODIRB] = 0xFF
	return &fakeI2C{regs: map[uint16][0x16]uint8{
		DefaultAddress0: reset,
		DefaultAddress1: reset,
	}}
}

var errI2C = errors.New("i2c: nack")

func (f *fakeI2C) Tx(addr uint16, w, r []byte) error {
	if f.fail {
		return errI2C
	}
	regs, ok := f.regs[addr]
	if !ok {
		return errI2C
	}
	switch {
	case len(w) == 2 && len(r) == 0: // register write
		regs[w[0]] = w[1]
		f.regs[addr] = regs
	case len(w) == 1 && len(r) == 1: // register read
		r[0] = regs[w[0]]
	default:
		return errI2C
	}
	return nil
}

func TestBankPortMapping(t *testing.T) {
	bus := newFakeI2C()
	bank := NewBank(bus)

	testCases := []struct {
		port dio.Port
		addr uint16
		olat uint8
	}{
		{dio.PortA, DefaultAddress0, regOLATA},
		{dio.PortB, DefaultAddress0, regOLATB},
		{dio.PortC, DefaultAddress1, regOLATA},
		{dio.PortD, DefaultAddress1, regOLATB},
	}

	for _, tc := range testCases {
		if err := bank.WriteOutput(tc.port, 0x5A); err != nil {
			t.Fatalf("WriteOutput(%v): %v", tc.port, err)
		}
		if got := bus.regs[tc.addr][tc.olat]; got != 0x5A {
			t.Errorf("port %v: chip %#02x OLAT = %#02x, want 0x5a", tc.port, tc.addr, got)
		}
	}
}

func TestBankDirectionPolarity(t *testing.T) {
	bus := newFakeI2C()
	bank := NewBank(bus)

	// All-output in bank terms is all-zero IODIR on the chip.
	if err := bank.WriteDirection(dio.PortA, 0xFF); err != nil {
		t.Fatal(err)
	}
	if got := bus.regs[DefaultAddress0][regIODIRA]; got != 0x00 {
		t.Errorf("IODIRA = %#02x, want 0x00", got)
	}

	if err := bank.WriteDirection(dio.PortD, 0x0F); err != nil {
		t.Fatal(err)
	}
	if got := bus.regs[DefaultAddress1][regIODIRB]; got != 0xF0 {
		t.Errorf("IODIRB = %#02x, want 0xf0", got)
	}

	// Read path complements back to bank polarity.
	dir, err := bank.ReadDirection(dio.PortD)
	if err != nil {
		t.Fatal(err)
	}
	if dir != 0x0F {
		t.Errorf("ReadDirection = %#02x, want 0x0f", dir)
	}
}

func TestBankReadInput(t *testing.T) {
	bus := newFakeI2C()
	regs := bus.regs[DefaultAddress1]
	regs[regGPIOA] = 0xC3
	bus.regs[DefaultAddress1] = regs

	bank := NewBank(bus)
	v, err := bank.ReadInput(dio.PortC)
	if err != nil {
		t.Fatalf("ReadInput: %v", err)
	}
	if v != 0xC3 {
		t.Errorf("ReadInput = %#02x, want 0xc3", v)
	}
}

func TestBankWithController(t *testing.T) {
	bus := newFakeI2C()
	c := dio.NewController(NewBank(bus))

	if err := c.SetPinDirection(dio.PortC, 2, dio.Output); err != nil {
		t.Fatalf("SetPinDirection: %v", err)
	}
	// Bit 2 output, rest input: IODIR = ^0x04.
	if got := bus.regs[DefaultAddress1][regIODIRA]; got != 0xFB {
		t.Errorf("IODIRA = %#02x, want 0xfb", got)
	}

	if err := c.SetPinValue(dio.PortC, 2, dio.High); err != nil {
		t.Fatalf("SetPinValue: %v", err)
	}
	if got := bus.regs[DefaultAddress1][regOLATA]; got != 0x04 {
		t.Errorf("OLATA = %#02x, want 0x04", got)
	}
}

func TestBankPropagatesBusErrors(t *testing.T) {
	bus := newFakeI2C()
	bus.fail = true
	bank := NewBank(bus)

	if err := bank.WriteOutput(dio.PortA, 1); !errors.Is(err, errI2C) {
		t.Errorf("WriteOutput: got %v, want bus error", err)
	}
	if _, err := bank.ReadInput(dio.PortA); !errors.Is(err, errI2C) {
		t.Errorf("ReadInput: got %v, want bus error", err)
	}
	if err := bank.WriteOutput(dio.Port(4), 1); !errors.Is(err, dio.ErrInvalidPort) {
		t.Errorf("bad port: got %v, want ErrInvalidPort", err)
	}
}

func TestConfigureAddresses(t *testing.T) {
	bus := &fakeI2C{regs: map[uint16][0x16]uint8{0x24: {}, 0x27: {}}}
	bank := NewBank(bus)
	bank.Configure(Config{Address0: 0x24, Address1: 0x27})

	if err := bank.WriteOutput(dio.PortA, 0x11); err != nil {
		t.Fatalf("WriteOutput: %v", err)
	}
	if err := bank.WriteOutput(dio.PortD, 0x22); err != nil {
		t.Fatalf("WriteOutput: %v", err)
	}
	if got := bus.regs[0x24][regOLATA]; got != 0x11 {
		t.Errorf("chip 0 OLATA = %#02x, want 0x11", got)
	}
	if got := bus.regs[0x27][regOLATB]; got != 0x22 {
		t.Errorf("chip 1 OLATB = %#02x, want 0x22", got)
	}
}
