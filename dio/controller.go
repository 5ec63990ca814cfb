package dio

// Controller validates logical port/pin addresses and performs the
// bit-level operations against a RegisterBank. It holds the bank
// explicitly rather than reaching for package state, so a software bank
// can stand in for the hardware one.
type Controller struct {
	bank RegisterBank
}

// NewController returns a controller over the given register bank.
func NewController(bank RegisterBank) *Controller {
	return &Controller{bank: bank}
}

// Bank returns the underlying register bank.
func (c *Controller) Bank() RegisterBank {
	return c.bank
}

// Init writes every port's direction register and then every port's
// output register from the static configuration table. Call it exactly
// once, before any other operation. A nil cfg initializes all pins as
// inputs driving low.
func (c *Controller) Init(cfg *Config) error {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	for port := Port(0); port < NumPorts; port++ {
		if err := c.bank.WriteDirection(port, cfg.directionByte(port)); err != nil {
			return err
		}
	}
	for port := Port(0); port < NumPorts; port++ {
		if err := c.bank.WriteOutput(port, cfg.levelByte(port)); err != nil {
			return err
		}
	}
	return nil
}

// SetPinDirection sets or clears pin's bit in port's direction register
// (Output sets, Input clears), leaving every other bit untouched.
func (c *Controller) SetPinDirection(port Port, pin Pin, dir Direction) error {
	if port >= NumPorts {
		return ErrInvalidPort
	}
	if pin >= NumPins {
		return ErrInvalidPin
	}
	if dir != Input && dir != Output {
		return ErrInvalidDirection
	}
	reg, err := c.bank.ReadDirection(port)
	if err != nil {
		return err
	}
	if dir == Output {
		reg |= 1 << pin
	} else {
		reg &^= 1 << pin
	}
	return c.bank.WriteDirection(port, reg)
}

// SetPinValue sets or clears pin's bit in port's output register. The
// pin's direction is not checked: driving the output latch of an
// input-configured pin is the caller's business (on AVR-style ports it
// selects the pull-up).
func (c *Controller) SetPinValue(port Port, pin Pin, level Level) error {
	if port >= NumPorts {
		return ErrInvalidPort
	}
	if pin >= NumPins {
		return ErrInvalidPin
	}
	if level != Low && level != High {
		return ErrInvalidLevel
	}
	reg, err := c.bank.ReadOutput(port)
	if err != nil {
		return err
	}
	if level == High {
		reg |= 1 << pin
	} else {
		reg &^= 1 << pin
	}
	return c.bank.WriteOutput(port, reg)
}

// PinValue reads pin's bit from port's input register and normalizes it:
// a zero bit is Low, anything nonzero is High.
func (c *Controller) PinValue(port Port, pin Pin) (Level, error) {
	if port >= NumPorts {
		return Low, ErrInvalidPort
	}
	if pin >= NumPins {
		return Low, ErrInvalidPin
	}
	reg, err := c.bank.ReadInput(port)
	if err != nil {
		return Low, err
	}
	if reg&(1<<pin) == 0 {
		return Low, nil
	}
	return High, nil
}

// SetPortDirection overwrites port's whole direction register: all pins
// Output (0xFF) or all pins Input (0x00) in a single write.
func (c *Controller) SetPortDirection(port Port, dir Direction) error {
	if port >= NumPorts {
		return ErrInvalidPort
	}
	switch dir {
	case Output:
		return c.bank.WriteDirection(port, 0xFF)
	case Input:
		return c.bank.WriteDirection(port, 0x00)
	}
	return ErrInvalidDirection
}

// SetPortValue writes value into port's output register verbatim. Any
// 8-bit pattern is accepted.
func (c *Controller) SetPortValue(port Port, value uint8) error {
	if port >= NumPorts {
		return ErrInvalidPort
	}
	return c.bank.WriteOutput(port, value)
}

// PortValue reads port's full input register verbatim, with no per-bit
// normalization.
func (c *Controller) PortValue(port Port) (uint8, error) {
	if port >= NumPorts {
		return 0, ErrInvalidPort
	}
	return c.bank.ReadInput(port)
}
