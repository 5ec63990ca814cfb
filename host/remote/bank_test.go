package remote

import (
	"bytes"
	"errors"
	"testing"

	"godio/dio"
	"godio/protocol"
)

// devicePort emulates a board on the other end of the link: every frame
// written to it is handled against an in-memory register bank and the
// response queued up for the next read.
type devicePort struct {
	bank *dio.MemBank
	rx   bytes.Buffer
}

func (p *devicePort) Write(b []byte) (int, error) {
	p.rx.Write(protocol.HandleRequest(p.bank, b))
	return len(b), nil
}

func (p *devicePort) Read(b []byte) (int, error) { return p.rx.Read(b) }
func (p *devicePort) Close() error { return nil }
func (p *devicePort) Flush() error { return nil }

func TestRemoteBankEndToEnd(t *testing.T) {
	device := &devicePort{bank: dio.NewMemBank()}
	c := dio.NewController(NewBank(device))

	if err := c.SetPortDirection(dio.PortB, dio.Output); err != nil {
		t.Fatalf("SetPortDirection: %v", err)
	}
	if reg, _ := device.bank.ReadDirection(dio.PortB); reg != 0xFF {
		t.Errorf("device direction register = %#02x, want 0xff", reg)
	}

	if err := c.SetPinValue(dio.PortB, 3, dio.High); err != nil {
		t.Fatalf("SetPinValue: %v", err)
	}
	if reg, _ := device.bank.ReadOutput(dio.PortB); reg != 0x08 {
		t.Errorf("device output register = %#02x, want 0x08", reg)
	}

	device.bank.SetInput(dio.PortB, 0x08)
	lvl, err := c.PinValue(dio.PortB, 3)
	if err != nil {
		t.Fatalf("PinValue: %v", err)
	}
	if lvl != dio.High {
		t.Errorf("PinValue = %v, want high", lvl)
	}

	v, err := c.PortValue(dio.PortB)
	if err != nil {
		t.Fatalf("PortValue: %v", err)
	}
	if v != 0x08 {
		t.Errorf("PortValue = %#02x, want 0x08", v)
	}
}

func TestRemoteBankInit(t *testing.T) {
	device := &devicePort{bank: dio.NewMemBank()}
	c := dio.NewController(NewBank(device))

	cfg := dio.DefaultConfig()
	cfg.Pins[dio.PortA][0] = dio.PinConfig{Direction: dio.Output, Level: dio.High}

	if err := c.Init(cfg); err != nil {
		t.Fatalf("Init: %v", err)
	}
	dir, _ := device.bank.ReadDirection(dio.PortA)
	out, _ := device.bank.ReadOutput(dio.PortA)
	if dir != 0x01 || out != 0x01 {
		t.Errorf("device port A = dir %#02x out %#02x, want 0x01/0x01", dir, out)
	}
}

// brokenPort answers every request with a StatusErr response.
type brokenPort struct {
	rx bytes.Buffer
}

func (p *brokenPort) Write(b []byte) (int, error) {
	p.rx.Write(protocol.EncodeResponse(protocol.Response{Status: protocol.StatusErr}))
	return len(b), nil
}

func (p *brokenPort) Read(b []byte) (int, error) { return p.rx.Read(b) }
func (p *brokenPort) Close() error { return nil }
func (p *brokenPort) Flush() error { return nil }

func TestRemoteBankReportsDeviceFailure(t *testing.T) {
	bank := NewBank(&brokenPort{})

	if _, err := bank.ReadInput(dio.PortA); !errors.Is(err, ErrRemote) {
		t.Errorf("got %v, want ErrRemote", err)
	}
	if err := bank.WriteOutput(dio.PortA, 1); !errors.Is(err, ErrRemote) {
		t.Errorf("got %v, want ErrRemote", err)
	}
}
