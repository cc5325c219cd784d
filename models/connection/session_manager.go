package connection

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	cerr "github.com/saeidalz13/submarine-duel/internal/error"
)

type SessionManager interface {
	GenerateNewSession(conn *websocket.Conn) *Session
	CleanupPeriodically(ctx context.Context)

	FindSession(sessionId string) (*Session, error)
	TerminateSession(session *Session)
	WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error
	ReadFromSessionConn(session *Session) (int, []byte, error)
	Broadcast(msg SessionMessage) int
	FetchCodeFromMsg(payload []byte) (uint8, error)
	Count() int
}

type SpectatorSessionManager struct {
	cleanupInterval time.Duration
	maxSessionAge   time.Duration
	sessions        map[string]*Session
	mu              sync.RWMutex
}

func NewSpectatorSessionManager() *SpectatorSessionManager {
	initMapSize := 10

	return &SpectatorSessionManager{
		sessions:        make(map[string]*Session, initMapSize),
		cleanupInterval: time.Minute * 5,
		maxSessionAge:   time.Minute * 30,
	}
}

var _ SessionManager = (*SpectatorSessionManager)(nil)

func (ssm *SpectatorSessionManager) GenerateNewSession(conn *websocket.Conn) *Session {
	sessionId := base64.RawURLEncoding.EncodeToString([]byte(uuid.New().String()))
	session := NewSession(sessionId, conn)

	ssm.mu.Lock()
	ssm.sessions[sessionId] = session
	ssm.mu.Unlock()

	return session
}

func (ssm *SpectatorSessionManager) FindSession(sessionId string) (*Session, error) {
	ssm.mu.RLock()
	defer ssm.mu.RUnlock()

	session, prs := ssm.sessions[sessionId]
	if !prs {
		return nil, cerr.ErrSessionNotFound(sessionId)
	}

	if session == nil {
		return nil, cerr.ErrSessionIsNil(sessionId)
	}

	return session, nil
}

func (ssm *SpectatorSessionManager) TerminateSession(session *Session) {
	ssm.mu.Lock()
	delete(ssm.sessions, session.id)
	ssm.mu.Unlock()

	session.close()
	log.Printf("session terminated: %s", session.id)
}

func (ssm *SpectatorSessionManager) Count() int {
	ssm.mu.RLock()
	defer ssm.mu.RUnlock()
	return len(ssm.sessions)
}

// Broadcast writes msg to every session and terminates the ones whose
// connection failed. It returns how many sessions got the message.
func (ssm *SpectatorSessionManager) Broadcast(msg SessionMessage) int {
	ssm.mu.RLock()
	sessions := make([]*Session, 0, len(ssm.sessions))
	for _, session := range ssm.sessions {
		sessions = append(sessions, session)
	}
	ssm.mu.RUnlock()

	delivered := 0
	for _, session := range sessions {
		if err := ssm.WriteToSessionConn(session, msg.Payload, msg.PayloadType); err != nil {
			log.Printf("broadcast to %s failed: %s", session.id, err)
			ssm.TerminateSession(session)
			continue
		}
		delivered++
	}
	return delivered
}

// To ensure that there is no dangling connections,
// sessions older than maxSessionAge are closed.
func (ssm *SpectatorSessionManager) CleanupPeriodically(ctx context.Context) {
	ticker := time.NewTicker(ssm.cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		ssm.mu.RLock()
		stale := make([]*Session, 0, len(ssm.sessions))
		for _, session := range ssm.sessions {
			if time.Since(session.createdAt) > ssm.maxSessionAge {
				stale = append(stale, session)
			}
		}
		ssm.mu.RUnlock()

		if len(stale) > 0 {
			log.Println("Clean up sessions:")
		}
		for _, session := range stale {
			ssm.TerminateSession(session)
		}
	}
}

func (ssm *SpectatorSessionManager) WriteToSessionConn(session *Session, msg interface{}, msgType uint8) error {
	return session.writeToConn(msg, msgType)
}

func (ssm *SpectatorSessionManager) ReadFromSessionConn(session *Session) (int, []byte, error) {
	var retries uint8

	for {
		messageType, payload, err := session.conn.ReadMessage()
		if err == nil {
			return messageType, payload, nil
		}

		switch session.handleReadFromConnErr(err, retries) {
		case ConnLoopContinue:
			retries++
			continue

		default:
			return -1, []byte{}, err
		}
	}
}

func (ssm *SpectatorSessionManager) FetchCodeFromMsg(payload []byte) (uint8, error) {
	var signal Signal
	const randomInvalidCode uint8 = 255

	if err := json.Unmarshal(payload, &signal); err != nil {
		return randomInvalidCode, err
	}

	return signal.Code, nil
}
