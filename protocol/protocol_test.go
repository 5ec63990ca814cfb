package protocol

import (
	"bytes"
	"errors"
	"testing"
)

func TestRequestRoundTrip(t *testing.T) {
	testCases := []Request{
		{Op: OpWriteDirection, Port: 0, Value: 0xFF},
		{Op: OpReadDirection, Port: 1},
		{Op: OpWriteOutput, Port: 2, Value: 0xA5},
		{Op: OpReadOutput, Port: 3},
		{Op: OpReadInput, Port: 0},
	}

	for _, want := range testCases {
		frame := EncodeRequest(want)
		if len(frame) != RequestLength {
			t.Fatalf("frame length = %d, want %d", len(frame), RequestLength)
		}
		if frame[len(frame)-1] != SyncByte {
			t.Fatalf("frame not sync-terminated: % x", frame)
		}

		got, err := DecodeRequest(frame)
		if err != nil {
			t.Fatalf("DecodeRequest(% x): %v", frame, err)
		}
		if got != want {
			t.Errorf("round trip: got %+v, want %+v", got, want)
		}
	}
}

func TestResponseRoundTrip(t *testing.T) {
	for _, want := range []Response{
		{Status: StatusOK, Value: 0x42},
		{Status: StatusErr},
	} {
		got, err := DecodeResponse(EncodeResponse(want))
		if err != nil {
			t.Fatalf("DecodeResponse: %v", err)
		}
		if got != want {
			t.Errorf("round trip: got %+v, want %+v", got, want)
		}
	}
}

func TestDecodeRejectsCorruptFrames(t *testing.T) {
	good := EncodeRequest(Request{Op: OpReadInput, Port: 1})

	corruptCRC := append([]byte(nil), good...)
	corruptCRC[2] ^= 0x01 // flip a payload bit, CRC now stale
	if _, err := DecodeRequest(corruptCRC); !errors.Is(err, ErrBadCRC) {
		t.Errorf("corrupt payload: got %v, want ErrBadCRC", err)
	}

	noSync := append([]byte(nil), good...)
	noSync[len(noSync)-1] = 0x00
	if _, err := DecodeRequest(noSync); !errors.Is(err, ErrBadFrame) {
		t.Errorf("missing sync: got %v, want ErrBadFrame", err)
	}

	if _, err := DecodeRequest(good[:3]); !errors.Is(err, ErrFrameSize) {
		t.Errorf("short frame: got %v, want ErrFrameSize", err)
	}

	badLen := append([]byte(nil), good...)
	badLen[0] = RequestLength + 1
	if _, err := DecodeRequest(badLen); !errors.Is(err, ErrBadFrame) {
		t.Errorf("bad length byte: got %v, want ErrBadFrame", err)
	}
}

func TestReadFrameSkipsLeadingSync(t *testing.T) {
	frame := EncodeResponse(Response{Status: StatusOK, Value: 7})
	stream := append([]byte{SyncByte, SyncByte}, frame...)

	got, err := ReadFrame(bytes.NewReader(stream), ResponseLength)
	if err != nil {
		t.Fatalf("ReadFrame: %v", err)
	}
	if !bytes.Equal(got, frame) {
		t.Errorf("ReadFrame = % x, want % x", got, frame)
	}
}

func TestReadFrameRejectsGarbageLength(t *testing.T) {
	if _, err := ReadFrame(bytes.NewReader([]byte{0xFF, 1, 2, 3}), ResponseLength); err == nil {
		t.Error("ReadFrame accepted garbage length byte")
	}
}
