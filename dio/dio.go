// Package dio is the digital-I/O layer for a four-port, 8-bit-per-port
// microcontroller. It maps logical port/pin addresses onto a bank of
// memory-mapped registers (direction, output, input) and exposes the
// bit-level accessors the LCD and keypad drivers are built on.
package dio

import "errors"

// Port identifies one of the four 8-bit I/O ports.
type Port uint8

const (
	PortA Port = iota
	PortB
	PortC
	PortD

	// NumPorts is the fixed port count of the target device.
	NumPorts = 4
)

// Pin is a bit position within a port.
type Pin uint8

// NumPins is the width of each port.
const NumPins = 8

// Direction configures a pin as input or output.
type Direction uint8

const (
	Input Direction = iota
	Output
)

// Level is the logical state of a pin.
type Level uint8

const (
	Low Level = iota
	High
)

// PinRef addresses a single pin of the bank, the way the drivers built
// on this layer name their wiring.
type PinRef struct {
	Port Port
	Pin  Pin
}

// Validation failures. The layer never logs or escalates; callers get one
// of these and decide what to do.
var (
	ErrInvalidPort      = errors.New("dio: port out of range")
	ErrInvalidPin       = errors.New("dio: pin out of range")
	ErrInvalidDirection = errors.New("dio: invalid direction")
	ErrInvalidLevel     = errors.New("dio: invalid level")
)

// String returns the port letter, e.g. "A".
func (p Port) String() string {
	if p >= NumPorts {
		return "?"
	}
	return string(rune('A' + p))
}

func (d Direction) String() string {
	switch d {
	case Input:
		return "in"
	case Output:
		return "out"
	}
	return "?"
}

func (l Level) String() string {
	switch l {
	case Low:
		return "low"
	case High:
		return "high"
	}
	return "?"
}
