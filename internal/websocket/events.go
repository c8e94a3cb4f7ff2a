package websocket

import (
	"encoding/json"

	"github.com/mcristea/roomcast/internal/chat"
)

// Inbound event names.
const (
	EventJoinRoom          = "joinRoom"
	EventSendMessage       = "sendMessage"
	EventSendFile          = "sendFile"
	EventGetMessageHistory = "getMessageHistory"
	EventUpdateUsername    = "updateUsername"
)

// Outbound event names.
const (
	EventMessageHistory  = "messageHistory"
	EventReceiveMessage  = "receiveMessage"
	EventReceiveFile     = "receiveFile"
	EventUpdateUserCount = "updateUserCount"
	EventUsernameUpdated = "usernameUpdated"
	EventError           = "error"
)

// Envelope frames every event in both directions.
type Envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// SendMessageRequest is the validated wire schema for sendMessage. The room
// field is checked against the registry; the registry is the authority.
type SendMessageRequest struct {
	Room string `json:"room"`
	User string `json:"user"`
	Text string `json:"text"`
	Time string `json:"time"`
}

// SendFileRequest is the validated wire schema for sendFile.
type SendFileRequest struct {
	Room     string         `json:"room"`
	User     string         `json:"user"`
	Text     string         `json:"text"`
	Time     string         `json:"time"`
	FileData *chat.FileData `json:"fileData"`
}

// RenameRequest is the wire schema for updateUsername.
type RenameRequest struct {
	OldName string `json:"oldName"`
	NewName string `json:"newName"`
	Room    string `json:"room"`
}

// RenamePayload is broadcast to a room when a member changes display name.
type RenamePayload struct {
	OldName string `json:"oldName"`
	NewName string `json:"newName"`
}

// ErrorPayload is addressed to a single connection when an operation is
// rejected.
type ErrorPayload struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func marshalEvent(event string, data any) ([]byte, error) {
	env := Envelope{Event: event}
	if data != nil {
		raw, err := json.Marshal(data)
		if err != nil {
			return nil, err
		}
		env.Data = raw
	}
	return json.Marshal(env)
}
