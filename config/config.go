// Package config loads the boot pin table from JSON. Pins are keyed by
// name ("A0" through "D7"); anything not listed comes up as an input
// driving low.
package config

import (
	"encoding/json"
	"fmt"

	"godio/dio"
)

type pinSpec struct {
	Direction string `json:"direction"`
	Level     string `json:"level"`
}

type fileFormat struct {
	Pins map[string]pinSpec `json:"pins"`
}

// Load parses a JSON pin table and returns the initialization config for
// dio.Controller.Init.
func Load(jsonData []byte) (*dio.Config, error) {
	var file fileFormat
	if err := json.Unmarshal(jsonData, &file); err != nil {
		return nil, err
	}

	cfg := dio.DefaultConfig()
	for name, spec := range file.Pins {
		port, pin, err := ParsePinName(name)
		if err != nil {
			return nil, err
		}

		pc := &cfg.Pins[port][pin]
		switch spec.Direction {
		case "", "in":
			pc.Direction = dio.Input
		case "out":
			pc.Direction = dio.Output
		default:
			return nil, fmt.Errorf("config: pin %s: unknown direction %q", name, spec.Direction)
		}
		switch spec.Level {
		case "", "low":
			pc.Level = dio.Low
		case "high":
			pc.Level = dio.High
		default:
			return nil, fmt.Errorf("config: pin %s: unknown level %q", name, spec.Level)
		}
	}

	return cfg, nil
}

// ParsePinName splits a pin name like "C5" into its port and pin.
func ParsePinName(name string) (dio.Port, dio.Pin, error) {
	if len(name) != 2 {
		return 0, 0, fmt.Errorf("config: bad pin name %q", name)
	}
	if name[0] < 'A' || name[0] > 'D' {
		return 0, 0, fmt.Errorf("config: bad port in pin name %q", name)
	}
	if name[1] < '0' || name[1] > '7' {
		return 0, 0, fmt.Errorf("config: bad pin in pin name %q", name)
	}
	return dio.Port(name[0] - 'A'), dio.Pin(name[1] - '0'), nil
}
