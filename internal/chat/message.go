package chat

import (
	"github.com/google/uuid"
)

// Message types carried in Message.Type.
const (
	TypeText = "text"
	TypeFile = "file"
)

// FileData describes an inline file payload. URL carries the entire content
// as a data URI; nothing is ever written to disk.
type FileData struct {
	Name string `json:"name"`
	Size int64  `json:"size"`
	Type string `json:"type"`
	URL  string `json:"url"`
	Time string `json:"time"`
}

// Message is a single chat entry. It is immutable once created and shared
// read-only with every subscriber at broadcast time. Time is the
// client-supplied display timestamp and is not interpreted by the server.
type Message struct {
	ID       uuid.UUID `json:"id"`
	User     string    `json:"user"`
	Text     string    `json:"text"`
	Time     string    `json:"time"`
	Type     string    `json:"type"`
	FileData *FileData `json:"fileData,omitempty"`
}

// NewTextMessage builds a text message with a server-assigned id.
func NewTextMessage(user, text, displayTime string) Message {
	return Message{
		ID:   uuid.New(),
		User: user,
		Text: text,
		Time: displayTime,
		Type: TypeText,
	}
}

// NewFileMessage builds a file message with a server-assigned id.
func NewFileMessage(user, text, displayTime string, fd *FileData) Message {
	return Message{
		ID:       uuid.New(),
		User:     user,
		Text:     text,
		Time:     displayTime,
		Type:     TypeFile,
		FileData: fd,
	}
}
