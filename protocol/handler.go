package protocol

import "godio/dio"

// HandleRequest is the device side of the link: it decodes one request
// frame, applies it to the register bank, and returns the encoded
// response. Malformed frames and failed bank accesses both come back as
// StatusErr; the link carries no further diagnostics.
func HandleRequest(bank dio.RegisterBank, frame []byte) []byte {
	req, err := DecodeRequest(frame)
	if err != nil {
		return EncodeResponse(Response{Status: StatusErr})
	}

	port := dio.Port(req.Port)
	var value uint8

	switch req.Op {
	case OpWriteDirection:
		err = bank.WriteDirection(port, req.Value)
	case OpReadDirection:
		value, err = bank.ReadDirection(port)
	case OpWriteOutput:
		err = bank.WriteOutput(port, req.Value)
	case OpReadOutput:
		value, err = bank.ReadOutput(port)
	case OpReadInput:
		value, err = bank.ReadInput(port)
	default:
		return EncodeResponse(Response{Status: StatusErr})
	}

	if err != nil {
		return EncodeResponse(Response{Status: StatusErr})
	}
	return EncodeResponse(Response{Status: StatusOK, Value: value})
}
