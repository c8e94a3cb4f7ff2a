package websocket

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"
)

func TestMarshalEventFramesPayload(t *testing.T) {
	payload, err := marshalEvent(EventUpdateUserCount, 3)
	if err != nil {
		t.Fatalf("marshalEvent: %v", err)
	}

	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if env.Event != EventUpdateUserCount {
		t.Errorf("expected %q, got %q", EventUpdateUserCount, env.Event)
	}
	var count int
	if err := json.Unmarshal(env.Data, &count); err != nil || count != 3 {
		t.Errorf("expected data 3, got %s (%v)", env.Data, err)
	}
}

func TestMarshalEventWithoutData(t *testing.T) {
	payload, err := marshalEvent(EventError, nil)
	if err != nil {
		t.Fatalf("marshalEvent: %v", err)
	}
	var env Envelope
	if err := json.Unmarshal(payload, &env); err != nil {
		t.Fatalf("unmarshal envelope: %v", err)
	}
	if len(env.Data) != 0 {
		t.Errorf("expected empty data, got %s", env.Data)
	}
}

func TestErrorCodeMapping(t *testing.T) {
	cases := []struct {
		err  error
		code string
	}{
		{ErrNotInRoom, CodeNotInRoom},
		{fmt.Errorf("%w: joined a, addressed b", ErrNotInRoom), CodeNotInRoom},
		{ErrPayloadTooLarge, CodePayloadTooLarge},
		{fmt.Errorf("%w: 123 bytes", ErrPayloadTooLarge), CodePayloadTooLarge},
		{ErrInvalidPayload, CodeInvalidPayload},
		{errors.New("anything else"), CodeInvalidPayload},
	}

	for _, tc := range cases {
		if got := ErrorCode(tc.err); got != tc.code {
			t.Errorf("ErrorCode(%v) = %q, want %q", tc.err, got, tc.code)
		}
	}
}
