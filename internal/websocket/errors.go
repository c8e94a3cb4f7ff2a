package websocket

import "errors"

var (
	ErrClientQueueFull = errors.New("client message queue is full")
	ErrInvalidPayload  = errors.New("invalid event payload")
	ErrNotInRoom       = errors.New("connection has not joined a room")
	ErrPayloadTooLarge = errors.New("file payload exceeds the configured limit")
)

// Error codes carried on the wire in error events.
const (
	CodeNotInRoom       = "not_in_room"
	CodePayloadTooLarge = "payload_too_large"
	CodeInvalidPayload  = "invalid_payload"
)

// ErrorCode maps an error to its wire-level code. Errors outside the
// taxonomy fall back to invalid_payload.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrNotInRoom):
		return CodeNotInRoom
	case errors.Is(err, ErrPayloadTooLarge):
		return CodePayloadTooLarge
	default:
		return CodeInvalidPayload
	}
}
