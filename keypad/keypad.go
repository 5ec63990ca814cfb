// Package keypad scans a 4x4 matrix keypad through the dio layer. Row
// pins are outputs held high; the scanner pulls one row low at a time
// and looks for a column that follows it down. Column pins are inputs
// expected to have pull-ups, so an idle column reads high.
package keypad

import "godio/dio"

// NoKey is returned when no key is pressed.
const NoKey uint8 = 0xFF

// Matrix geometry.
const (
	numRows = 4
	numCols = 4
)

// Config describes the wiring and the key legend.
type Config struct {
	RowPins [numRows]dio.PinRef
	ColPins [numCols]dio.PinRef

	// Keys maps (row, col) to the value ReadKey reports. Zero value
	// gets the calculator legend.
	Keys [numRows][numCols]uint8
}

// DefaultKeys is the legend of the usual 4x4 calculator keypad.
var DefaultKeys = [numRows][numCols]uint8{
	{'7', '8', '9', '/'},
	{'4', '5', '6', '*'},
	{'1', '2', '3', '-'},
	{'C', '0', '=', '+'},
}

// Device is a configured keypad.
type Device struct {
	ctrl *dio.Controller
	cfg  Config
}

// New creates a keypad on the given DIO controller. Call Configure
// before scanning.
func New(ctrl *dio.Controller, cfg Config) *Device {
	if cfg.Keys == ([numRows][numCols]uint8{}) {
		cfg.Keys = DefaultKeys
	}
	return &Device{ctrl: ctrl, cfg: cfg}
}

// Configure sets rows as outputs idling high and columns as inputs.
func (d *Device) Configure() error {
	for _, p := range d.cfg.RowPins {
		if err := d.ctrl.SetPinDirection(p.Port, p.Pin, dio.Output); err != nil {
			return err
		}
		if err := d.ctrl.SetPinValue(p.Port, p.Pin, dio.High); err != nil {
			return err
		}
	}
	for _, p := range d.cfg.ColPins {
		if err := d.ctrl.SetPinDirection(p.Port, p.Pin, dio.Input); err != nil {
			return err
		}
	}
	return nil
}

// ReadKey scans the matrix once and returns the legend value of the
// first pressed key found, or NoKey if nothing is pressed. The scan
// leaves every row high again.
func (d *Device) ReadKey() (uint8, error) {
	for r, row := range d.cfg.RowPins {
		if err := d.ctrl.SetPinValue(row.Port, row.Pin, dio.Low); err != nil {
			return NoKey, err
		}

		for c, col := range d.cfg.ColPins {
			level, err := d.ctrl.PinValue(col.Port, col.Pin)
			if err != nil {
				d.ctrl.SetPinValue(row.Port, row.Pin, dio.High)
				return NoKey, err
			}
			if level == dio.Low {
				if err := d.ctrl.SetPinValue(row.Port, row.Pin, dio.High); err != nil {
					return NoKey, err
				}
				return d.cfg.Keys[r][c], nil
			}
		}

		if err := d.ctrl.SetPinValue(row.Port, row.Pin, dio.High); err != nil {
			return NoKey, err
		}
	}
	return NoKey, nil
}
