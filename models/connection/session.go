package connection

import (
	"fmt"
	"log"
	"net"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

const (
	maxReadWsRetries uint8         = 2
	backOffFactor    uint8         = 2
	defaultWriteWait time.Duration = time.Second * 5
)

const (
	MessageTypeBytes uint8 = iota
	MessageTypeJSON
)

type ConnectionHandler interface {
	handleReadFromConnErr(err error, retries uint8) uint8
	writeToConn(msg interface{}, msgType uint8) error
	onConnErr(err error) uint8
	close()
}

// Session is one spectator connection. Writes come from both the upgrade
// handler and the broadcast loop, so they are serialized by mu.
type Session struct {
	id        string
	conn      *websocket.Conn
	mu        sync.Mutex
	closed    bool
	createdAt time.Time
	writeWait time.Duration
}

func NewSession(id string, conn *websocket.Conn) *Session {
	return &Session{
		id:        id,
		conn:      conn,
		createdAt: time.Now(),
		writeWait: defaultWriteWait,
	}
}

func (s *Session) Id() string {
	return s.id
}

func (s *Session) Conn() *websocket.Conn {
	return s.conn
}

func (s *Session) CreatedAt() time.Time {
	return s.createdAt
}

func (s *Session) onConnErr(err error) uint8 {
	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		log.Println("timeout error:", err)
		return ConnLoopRetry
	}

	if websocket.IsCloseError(err, websocket.CloseTryAgainLater) {
		log.Println("high server load/traffic error:", err)
		return ConnLoopRetry
	}

	// A spectator that drops simply dials again and gets the latest snapshot
	if websocket.IsCloseError(err, websocket.CloseAbnormalClosure, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
		log.Println("close error:", err)
		return ConnLoopBreak
	}

	if websocket.IsCloseError(err, websocket.CloseProtocolError, websocket.CloseInternalServerErr, websocket.CloseTLSHandshake, websocket.CloseMandatoryExtension) {
		log.Println("critical error:", err)
		return ConnLoopBreak
	}

	if websocket.IsCloseError(err, websocket.CloseInvalidFramePayloadData, websocket.CloseUnsupportedData, websocket.CloseMessageTooBig, websocket.ClosePolicyViolation, websocket.CloseServiceRestart, websocket.CloseNoStatusReceived) {
		log.Println("non-critical error:", err)
		return ConnLoopBreak
	}

	log.Println("unexpected error:", err)
	return ConnLoopBreak
}

// Writes to the connection of that session. Any failed write,
// a timeout included, ends the session.
func (s *Session) writeToConn(msg interface{}, msgType uint8) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return NewConnErr(ConnSessionClosed).AddDesc(s.id)
	}

	var err error
	_ = s.conn.SetWriteDeadline(time.Now().Add(s.writeWait))

	switch msgType {
	case MessageTypeJSON:
		err = s.conn.WriteJSON(msg)

	case MessageTypeBytes:
		respBytes, ok := msg.([]byte)
		if !ok {
			return NewConnErr(ConnInvalidMsgType).AddDesc("msg type expected: []byte got invalid")
		}
		err = s.conn.WriteMessage(websocket.TextMessage, respBytes)

	default:
		return NewConnErr(ConnInvalidMsgType).AddDesc("invalid message type to write")
	}

	if err == nil {
		return nil
	}

	if netErr, ok := err.(net.Error); ok && netErr.Timeout() {
		log.Printf("write to ws timed out [%s] after %s", s.conn.RemoteAddr().String(), s.writeWait)
		return NewConnErr(ConnLoopBreak).AddDesc(fmt.Sprintf("write timeout [%s]: %s", s.conn.RemoteAddr().String(), err))
	}

	s.onConnErr(err)
	return NewConnErr(ConnLoopBreak).AddDesc(fmt.Sprintf("write failed [%s]: %s", s.conn.RemoteAddr().String(), err))
}

// Handles the errors that occurs when reading from
// ws connection. Anything but ConnLoopContinue ends the session.
func (s *Session) handleReadFromConnErr(err error, retries uint8) uint8 {
	switch s.onConnErr(err) {
	case ConnLoopRetry:
		if retries < maxReadWsRetries {
			log.Printf("failed to read from ws conn [%s]; retrying... (retry no. %d)\n", s.conn.RemoteAddr().String(), retries)
			time.Sleep(time.Duration(retries*backOffFactor) * time.Second)
			return ConnLoopContinue
		}
		return ConnLoopBreak

	default:
		log.Printf("break ws conn loop [%s] due to: %s\n", s.conn.RemoteAddr().String(), err)
		return ConnLoopBreak
	}
}

func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.closed = true
	_ = s.conn.Close()
}

var _ ConnectionHandler = (*Session)(nil)
