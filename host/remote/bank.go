// Package remote implements dio.RegisterBank over a serial link, letting
// host code drive a register bank that lives on another board. Every
// access is one request/response exchange on the wire.
package remote

import (
	"errors"

	"godio/dio"
	"godio/host/serial"
	"godio/protocol"
)

// ErrRemote is returned when the far end reports a failed register
// access. The link carries no further detail.
var ErrRemote = errors.New("remote: register access failed")

// Bank proxies register accesses over a serial port.
type Bank struct {
	port serial.Port
}

// NewBank returns a bank speaking the register-access protocol over
// port. The caller retains ownership of the port.
func NewBank(port serial.Port) *Bank {
	return &Bank{port: port}
}

func (b *Bank) exchange(req protocol.Request) (uint8, error) {
	if _, err := b.port.Write(protocol.EncodeRequest(req)); err != nil {
		return 0, err
	}
	if err := b.port.Flush(); err != nil {
		return 0, err
	}

	frame, err := protocol.ReadFrame(b.port, protocol.ResponseLength)
	if err != nil {
		return 0, err
	}
	resp, err := protocol.DecodeResponse(frame)
	if err != nil {
		return 0, err
	}
	if resp.Status != protocol.StatusOK {
		return 0, ErrRemote
	}
	return resp.Value, nil
}

func (b *Bank) ReadDirection(port dio.Port) (uint8, error) {
	return b.exchange(protocol.Request{Op: protocol.OpReadDirection, Port: uint8(port)})
}

func (b *Bank) WriteDirection(port dio.Port, value uint8) error {
	_, err := b.exchange(protocol.Request{Op: protocol.OpWriteDirection, Port: uint8(port), Value: value})
	return err
}

func (b *Bank) ReadOutput(port dio.Port) (uint8, error) {
	return b.exchange(protocol.Request{Op: protocol.OpReadOutput, Port: uint8(port)})
}

func (b *Bank) WriteOutput(port dio.Port, value uint8) error {
	_, err := b.exchange(protocol.Request{Op: protocol.OpWriteOutput, Port: uint8(port), Value: value})
	return err
}

func (b *Bank) ReadInput(port dio.Port) (uint8, error) {
	return b.exchange(protocol.Request{Op: protocol.OpReadInput, Port: uint8(port)})
}
