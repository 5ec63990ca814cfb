// Package clcd drives an HD44780-style character LCD through the dio
// layer, one pin at a time. Both the 8-bit and the 4-bit data bus
// wirings are supported; in 4-bit mode only the first four entries of
// the data pin list are used and each byte goes out as two nibbles,
// high one first.
package clcd

import (
	"errors"
	"fmt"
	"time"

	"godio/dio"
)

// Bus widths.
const (
	Mode4Bit = 4
	Mode8Bit = 8
)

// HD44780 commands.
const (
	cmdClear        = 0x01
	cmdEntryMode    = 0x06
	cmdDisplayOn    = 0x0C
	cmdFunction4Bit = 0x28
	cmdFunction8Bit = 0x38
	cmdSetDDRAMAddr = 0x80
	secondRowOffset = 0x40
)

var ErrBadMode = errors.New("clcd: mode must be 4 or 8")

// Config describes how the display is wired.
type Config struct {
	Mode     int           // Mode4Bit or Mode8Bit
	DataPins [8]dio.PinRef // D0..D7; only the first four used in 4-bit mode
	RS       dio.PinRef
	RW       dio.PinRef
	EN       dio.PinRef

	Cols, Rows int // display geometry, defaults 16x2
}

// Device is a configured display.
type Device struct {
	ctrl *dio.Controller
	cfg  Config
}

// New creates a display on the given DIO controller. Call Configure
// before anything else.
func New(ctrl *dio.Controller, cfg Config) *Device {
	if cfg.Cols == 0 {
		cfg.Cols = 16
	}
	if cfg.Rows == 0 {
		cfg.Rows = 2
	}
	return &Device{ctrl: ctrl, cfg: cfg}
}

// Configure sets all control and data pins to outputs and runs the
// controller's initialization sequence.
func (d *Device) Configure() error {
	if d.cfg.Mode != Mode4Bit && d.cfg.Mode != Mode8Bit {
		return ErrBadMode
	}

	pins := []dio.PinRef{d.cfg.RS, d.cfg.RW, d.cfg.EN}
	pins = append(pins, d.cfg.DataPins[:d.cfg.Mode]...)
	for _, p := range pins {
		if err := d.ctrl.SetPinDirection(p.Port, p.Pin, dio.Output); err != nil {
			return err
		}
	}

	// Power-on settle time before the controller accepts commands.
	time.Sleep(40 * time.Millisecond)

	function := uint8(cmdFunction8Bit)
	if d.cfg.Mode == Mode4Bit {
		// Force 4-bit mode with the high nibble of the function-set
		// command before the full command goes out as nibble pairs.
		if err := d.writeNibble(cmdFunction4Bit >> 4); err != nil {
			return err
		}
		function = cmdFunction4Bit
	}

	for _, cmd := range []uint8{function, cmdDisplayOn, cmdClear, cmdEntryMode} {
		if err := d.SendCommand(cmd); err != nil {
			return err
		}
	}
	return nil
}

// SendCommand writes one instruction byte (RS low).
func (d *Device) SendCommand(cmd uint8) error {
	return d.write(cmd, dio.Low)
}

// SendChar writes one character of display data (RS high).
func (d *Device) SendChar(ch uint8) error {
	return d.write(ch, dio.High)
}

// SendString writes a string starting at the current cursor position.
func (d *Device) SendString(s string) error {
	for i := 0; i < len(s); i++ {
		if err := d.SendChar(s[i]); err != nil {
			return err
		}
	}
	return nil
}

// SendInt writes a signed integer in decimal.
func (d *Device) SendInt(n int32) error {
	return d.SendString(fmt.Sprintf("%d", n))
}

// SendNumber writes a number with three decimal places.
func (d *Device) SendNumber(n float64) error {
	return d.SendString(fmt.Sprintf("%.3f", n))
}

// Clear blanks the display and homes the cursor.
func (d *Device) Clear() error {
	if err := d.SendCommand(cmdClear); err != nil {
		return err
	}
	// The clear command is the slow one.
	time.Sleep(2 * time.Millisecond)
	return nil
}

// GoTo moves the cursor to column x of row y.
func (d *Device) GoTo(x, y int) error {
	if x < 0 || x >= d.cfg.Cols || y < 0 || y >= d.cfg.Rows {
		return fmt.Errorf("clcd: position %d,%d outside %dx%d display", x, y, d.cfg.Cols, d.cfg.Rows)
	}
	return d.SendCommand(cmdSetDDRAMAddr | uint8(x+y*secondRowOffset))
}

func (d *Device) write(b uint8, rs dio.Level) error {
	if err := d.ctrl.SetPinValue(d.cfg.RS.Port, d.cfg.RS.Pin, rs); err != nil {
		return err
	}
	if err := d.ctrl.SetPinValue(d.cfg.RW.Port, d.cfg.RW.Pin, dio.Low); err != nil {
		return err
	}

	if d.cfg.Mode == Mode8Bit {
		for i, p := range d.cfg.DataPins {
			if err := d.ctrl.SetPinValue(p.Port, p.Pin, bitLevel(b, uint(i))); err != nil {
				return err
			}
		}
		return d.pulseEnable()
	}

	if err := d.writeNibble(b >> 4); err != nil {
		return err
	}
	return d.writeNibble(b & 0x0F)
}

// writeNibble puts the low four bits of v on D0..D3 and strobes EN.
func (d *Device) writeNibble(v uint8) error {
	for i := 0; i < 4; i++ {
		p := d.cfg.DataPins[i]
		if err := d.ctrl.SetPinValue(p.Port, p.Pin, bitLevel(v, uint(i))); err != nil {
			return err
		}
	}
	return d.pulseEnable()
}

func (d *Device) pulseEnable() error {
	if err := d.ctrl.SetPinValue(d.cfg.EN.Port, d.cfg.EN.Pin, dio.High); err != nil {
		return err
	}
	time.Sleep(50 * time.Microsecond)
	if err := d.ctrl.SetPinValue(d.cfg.EN.Port, d.cfg.EN.Pin, dio.Low); err != nil {
		return err
	}
	time.Sleep(50 * time.Microsecond)
	return nil
}

func bitLevel(v uint8, bit uint) dio.Level {
	if v&(1<<bit) != 0 {
		return dio.High
	}
	return dio.Low
}
