package api

import (
	"context"
	"log"

	mc "github.com/saeidalz13/submarine-duel/models/connection"
	"github.com/saeidalz13/submarine-duel/models/submarine"
)

var _ submarine.Observer = (*Server)(nil)

func (s *Server) ObserveStart(start submarine.MatchStart) {
	publish(s, mc.NewMatchMessage(mc.CodeMatchStart, start.MatchID, start))
}

func (s *Server) ObserveTurn(snapshot submarine.Snapshot) {
	publish(s, mc.NewMatchMessage(mc.CodeSnapshot, snapshot.MatchID, snapshot))
}

func (s *Server) ObserveEnd(end submarine.MatchEnd) {
	publish(s, mc.NewMatchMessage(mc.CodeMatchEnd, end.MatchID, end))
}

// publish encodes msg once, keeps it as the latest of its kind and queues
// it for the sessions. A full queue drops the message instead of stalling
// the turn loop.
func publish[T any](s *Server, msg mc.Message[T]) {
	payload, err := msg.Encode()
	if err != nil {
		log.Printf("failed to encode message %d: %v", msg.Code, err)
		return
	}

	s.mu.Lock()
	s.latest[msg.Code] = payload
	s.mu.Unlock()

	select {
	case s.feed <- mc.NewSessionMessageBytes(msg.MatchID, payload):
	default:
		log.Printf("spectator feed full, dropping message %d of match %s", msg.Code, msg.MatchID)
	}
}

// Latest returns the last encoded message with the given code, or nil.
func (s *Server) Latest(code uint8) []byte {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest[code]
}

// Broadcast forwards queued messages to every session until ctx is done.
func (s *Server) Broadcast(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-s.feed:
			s.sessionManager.Broadcast(msg)
		}
	}
}
