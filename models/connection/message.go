package connection

import "encoding/json"

type NoPayload bool

// Message is the envelope of everything written to a spectator.
type Message[T any] struct {
	Code    uint8    `json:"code"`
	MatchID string   `json:"match_id,omitempty"`
	Payload T        `json:"payload,omitempty"`
	Error   *RespErr `json:"error,omitempty"`
}

func NewMessage[T any](code uint8) Message[T] {
	return Message[T]{Code: code}
}

func NewMatchMessage[T any](code uint8, matchID string, payload T) Message[T] {
	return Message[T]{Code: code, MatchID: matchID, Payload: payload}
}

func (m *Message[T]) AddPayload(payload T) {
	m.Payload = payload
}

func (m *Message[T]) AddError(errorDetails, message string) {
	m.Error = NewRespErr(errorDetails, message)
}

func (m Message[T]) Encode() ([]byte, error) {
	return json.Marshal(m)
}
