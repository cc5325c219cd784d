package connection

// SessionMessage is one payload queued for every spectator session.
type SessionMessage struct {
	PayloadType uint8
	MatchID     string
	Payload     interface{}
}

func NewSessionMessageJSON(matchID string, p interface{}) SessionMessage {
	return SessionMessage{
		PayloadType: MessageTypeJSON,
		MatchID:     matchID,
		Payload:     p,
	}
}

// NewSessionMessageBytes carries a payload already encoded once for all
// sessions.
func NewSessionMessageBytes(matchID string, p []byte) SessionMessage {
	return SessionMessage{
		PayloadType: MessageTypeBytes,
		MatchID:     matchID,
		Payload:     p,
	}
}
