package dio

// RegisterBank is the hardware boundary: for each port, a direction
// register (1=output per bit), an output register, and a read-only input
// register that reflects the physical pin levels. Implementations backed
// by a fallible transport (I2C expander, serial link) report transport
// failures through the error return; the in-memory bank never fails
// except on an out-of-range port.
type RegisterBank interface {
	ReadDirection(port Port) (uint8, error)
	WriteDirection(port Port, value uint8) error
	ReadOutput(port Port) (uint8, error)
	WriteOutput(port Port, value uint8) error
	ReadInput(port Port) (uint8, error)
}

// MemBank is a software-backed register bank. It stands in for the real
// port registers in tests and simulation: output and direction registers
// are plain bytes, and the input registers can either be poked directly
// with SetInput or mirror the output registers when Loopback is set.
type MemBank struct {
	// Loopback makes ReadInput return the output register, as if every
	// pin were externally wired to itself.
	Loopback bool

	direction [NumPorts]uint8
	output    [NumPorts]uint8
	input     [NumPorts]uint8
}

// NewMemBank returns a bank with all registers zeroed.
func NewMemBank() *MemBank {
	return &MemBank{}
}

func (b *MemBank) ReadDirection(port Port) (uint8, error) {
	if port >= NumPorts {
		return 0, ErrInvalidPort
	}
	return b.direction[port], nil
}

func (b *MemBank) WriteDirection(port Port, value uint8) error {
	if port >= NumPorts {
		return ErrInvalidPort
	}
	b.direction[port] = value
	return nil
}

func (b *MemBank) ReadOutput(port Port) (uint8, error) {
	if port >= NumPorts {
		return 0, ErrInvalidPort
	}
	return b.output[port], nil
}

func (b *MemBank) WriteOutput(port Port, value uint8) error {
	if port >= NumPorts {
		return ErrInvalidPort
	}
	b.output[port] = value
	return nil
}

func (b *MemBank) ReadInput(port Port) (uint8, error) {
	if port >= NumPorts {
		return 0, ErrInvalidPort
	}
	if b.Loopback {
		return b.output[port], nil
	}
	return b.input[port], nil
}

// SetInput drives the input register of a port, simulating external
// signals on its pins. Ignored for reads while Loopback is set.
func (b *MemBank) SetInput(port Port, value uint8) error {
	if port >= NumPorts {
		return ErrInvalidPort
	}
	b.input[port] = value
	return nil
}
