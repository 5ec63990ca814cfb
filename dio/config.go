package dio

// PinConfig is the boot-time setting for one pin.
type PinConfig struct {
	Direction Direction
	Level     Level
}

// Config is the static initialization table consumed once by
// Controller.Init: an initial direction and level for each of the
// 32 pins, indexed by (port, pin).
type Config struct {
	Pins [NumPorts][NumPins]PinConfig
}

// DefaultConfig returns the reset configuration: every pin an input
// driving low.
func DefaultConfig() *Config {
	return &Config{}
}

// directionByte assembles one port's direction register, pin 7 down to
// pin 0, most significant bit first.
func (c *Config) directionByte(port Port) uint8 {
	var v uint8
	for pin := NumPins; pin > 0; pin-- {
		v <<= 1
		if c.Pins[port][pin-1].Direction == Output {
			v |= 1
		}
	}
	return v
}

// levelByte assembles one port's output register the same way.
func (c *Config) levelByte(port Port) uint8 {
	var v uint8
	for pin := NumPins; pin > 0; pin-- {
		v <<= 1
		if c.Pins[port][pin-1].Level == High {
			v |= 1
		}
	}
	return v
}
