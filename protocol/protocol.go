// Package protocol frames register accesses for transport over a byte
// stream (typically a serial link). A frame is
//
//	[len][payload...][crc16 hi][crc16 lo][sync]
//
// where len counts the whole frame, the CRC covers len and the payload,
// and the sync byte terminates every frame so a receiver that loses its
// place can scan forward to the next frame boundary.
//
// Request payloads are [op][port][value]; response payloads are
// [status][value].
package protocol

import (
	"errors"
	"io"
)

const (
	SyncByte = 0x7E

	// Frame overhead: length byte up front, two CRC bytes plus the sync
	// byte behind the payload.
	headerSize  = 1
	trailerSize = 3

	RequestLength  = headerSize + 3 + trailerSize
	ResponseLength = headerSize + 2 + trailerSize
)

// Register-access operations.
const (
	OpWriteDirection uint8 = 0x01
	OpReadDirection  uint8 = 0x02
	OpWriteOutput    uint8 = 0x03
	OpReadOutput     uint8 = 0x04
	OpReadInput      uint8 = 0x05
)

// Response status codes.
const (
	StatusOK  uint8 = 0x00
	StatusErr uint8 = 0x01
)

var (
	ErrBadFrame  = errors.New("protocol: malformed frame")
	ErrBadCRC    = errors.New("protocol: checksum mismatch")
	ErrFrameSize = errors.New("protocol: unexpected frame length")
)

// Request is a single register access addressed to one port. Value is
// ignored for the read operations.
type Request struct {
	Op    uint8
	Port  uint8
	Value uint8
}

// Response reports the outcome of a request. Value is meaningful only
// for reads with Status == StatusOK.
type Response struct {
	Status uint8
	Value  uint8
}

func seal(frame []byte) []byte {
	crc := CRC16(frame)
	return append(frame, uint8(crc>>8), uint8(crc&0xFF), SyncByte)
}

func checkFrame(frame []byte, wantLen int) ([]byte, error) {
	if len(frame) != wantLen {
		return nil, ErrFrameSize
	}
	if int(frame[0]) != wantLen || frame[wantLen-1] != SyncByte {
		return nil, ErrBadFrame
	}
	body := frame[:wantLen-trailerSize]
	crc := uint16(frame[wantLen-3])<<8 | uint16(frame[wantLen-2])
	if CRC16(body) != crc {
		return nil, ErrBadCRC
	}
	return body[headerSize:], nil
}

// EncodeRequest builds the wire form of a request.
func EncodeRequest(req Request) []byte {
	frame := make([]byte, 0, RequestLength)
	frame = append(frame, RequestLength, req.Op, req.Port, req.Value)
	return seal(frame)
}

// DecodeRequest parses and validates a request frame.
func DecodeRequest(frame []byte) (Request, error) {
	payload, err := checkFrame(frame, RequestLength)
	if err != nil {
		return Request{}, err
	}
	return Request{Op: payload[0], Port: payload[1], Value: payload[2]}, nil
}

// EncodeResponse builds the wire form of a response.
func EncodeResponse(resp Response) []byte {
	frame := make([]byte, 0, ResponseLength)
	frame = append(frame, ResponseLength, resp.Status, resp.Value)
	return seal(frame)
}

// DecodeResponse parses and validates a response frame.
func DecodeResponse(frame []byte) (Response, error) {
	payload, err := checkFrame(frame, ResponseLength)
	if err != nil {
		return Response{}, err
	}
	return Response{Status: payload[0], Value: payload[1]}, nil
}

// ReadFrame reads one frame of the given length from r, skipping any
// leading sync bytes left over from a previous frame or from link noise.
func ReadFrame(r io.Reader, wantLen int) ([]byte, error) {
	var first [1]byte
	for {
		if _, err := io.ReadFull(r, first[:]); err != nil {
			return nil, err
		}
		if first[0] != SyncByte {
			break
		}
	}

	if int(first[0]) != wantLen {
		return nil, ErrBadFrame
	}
	frame := make([]byte, wantLen)
	frame[0] = first[0]
	if _, err := io.ReadFull(r, frame[1:]); err != nil {
		return nil, err
	}
	return frame, nil
}
