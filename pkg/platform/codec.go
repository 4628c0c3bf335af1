// Package platform carries messages between the Go widget tree and the
// native views that back it, such as the paging indicator rendered by the
// host platform. Channels exchange JSON payloads through a NativeBridge.
package platform

import (
	"encoding/json"
	"errors"
	"fmt"
)

// MessageCodec translates channel payloads to and from wire bytes.
type MessageCodec interface {
	Encode(value any) ([]byte, error)
	Decode(data []byte) (any, error)
}

// jsonCodec is the only codec the bridge speaks. JSON keeps the native
// side free of Go-specific serialization.
type jsonCodec struct{}

func (jsonCodec) Encode(value any) ([]byte, error) {
	return json.Marshal(value)
}

func (jsonCodec) Decode(data []byte) (any, error) {
	if len(data) == 0 {
		return nil, nil
	}
	var value any
	if err := json.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("decode channel payload: %w", err)
	}
	return value, nil
}

// DefaultCodec is used by every channel in this package.
var DefaultCodec MessageCodec = jsonCodec{}

var (
	// ErrChannelNotFound reports a message addressed to a channel no Go
	// service has registered.
	ErrChannelNotFound = errors.New("platform channel not found")

	// ErrMethodNotFound reports a method the receiving side does not implement.
	ErrMethodNotFound = errors.New("method not implemented")

	// ErrInvalidArguments reports a payload whose shape the handler rejected.
	ErrInvalidArguments = errors.New("invalid arguments")

	// ErrPlatformUnavailable reports that no native bridge is attached, as in
	// headless tests before a loopback bridge is installed.
	ErrPlatformUnavailable = errors.New("platform feature unavailable")

	// ErrViewTypeNotFound reports a platform view type, such as the page
	// indicator, that the registry does not know.
	ErrViewTypeNotFound = errors.New("platform view type not registered")
)

// ChannelError is a structured failure relayed from native code.
type ChannelError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func (e *ChannelError) Error() string {
	if e.Message == "" {
		return e.Code
	}
	return e.Code + ": " + e.Message
}

// NewChannelError wraps a native error code and message.
func NewChannelError(code, message string) *ChannelError {
	return &ChannelError{Code: code, Message: message}
}
