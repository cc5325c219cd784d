package internal

import "github.com/google/uuid"

// NewMatchID keys a match across the journal, the spectator feed and the logs.
func NewMatchID() string {
	return uuid.NewString()
}

// ShortID is enough of an id to tell matches apart in a log line.
func ShortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
