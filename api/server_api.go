package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	mc "github.com/saeidalz13/submarine-duel/models/connection"
)

const (
	StageProd = "prod"
	StageDev  = "dev"
)

const (
	defaultFeedBuffer int           = 64
	shutdownTimeout   time.Duration = time.Second * 5

	SpectatePath = "/spectate"
	HealthPath   = "/health"
)

var defaultPort string = "8000"

// Server streams the bot's per-turn state to websocket spectators. The turn
// loop only ever enqueues; a single goroutine writes to the sessions.
type Server struct {
	port           string
	stage          string
	allowedOrigins map[string]bool
	upgrader       websocket.Upgrader
	sessionManager mc.SessionManager

	feed   chan mc.SessionMessage
	mu     sync.RWMutex
	latest map[uint8][]byte
}

type Option func(*Server) error

func NewServer(optFuncs ...Option) *Server {
	server := Server{
		stage:  StageDev,
		feed:   make(chan mc.SessionMessage, defaultFeedBuffer),
		latest: make(map[uint8][]byte, 3),
		upgrader: websocket.Upgrader{
			// good average time since this is not a high-latency operation such as video streaming
			HandshakeTimeout: time.Second * 5,

			// a snapshot of a 15x15 map fits comfortably
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
		},
	}
	for _, opt := range optFuncs {
		if err := opt(&server); err != nil {
			panic(err)
		}
	}
	if server.port == "" {
		server.port = defaultPort
	}
	if server.sessionManager == nil {
		server.sessionManager = mc.NewSpectatorSessionManager()
	}

	server.upgrader.CheckOrigin = func(r *http.Request) bool { return true }
	if server.stage == StageProd {
		server.upgrader.CheckOrigin = func(r *http.Request) bool {
			return server.allowedOrigins[r.Header.Get("Origin")]
		}
	}
	return &server
}

func WithPort(port string) Option {
	return func(s *Server) error {
		s.port = port
		return nil
	}
}

func WithStage(stage string) Option {
	return func(s *Server) error {
		if stage != StageProd && stage != StageDev {
			return fmt.Errorf("invalid type of development stage: %s", stage)
		}
		s.stage = stage
		return nil
	}
}

func WithAllowedOrigins(origins ...string) Option {
	return func(s *Server) error {
		s.allowedOrigins = make(map[string]bool, len(origins))
		for _, origin := range origins {
			s.allowedOrigins[origin] = true
		}
		return nil
	}
}

func WithSessionManager(sm mc.SessionManager) Option {
	return func(s *Server) error {
		s.sessionManager = sm
		return nil
	}
}

func WithFeedBuffer(size int) Option {
	return func(s *Server) error {
		if size < 1 {
			return fmt.Errorf("feed buffer must hold at least one message: %d", size)
		}
		s.feed = make(chan mc.SessionMessage, size)
		return nil
	}
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET "+SpectatePath, s.HandleWs)
	mux.HandleFunc("GET "+HealthPath, s.HandleHealth)
	return mux
}

// Run serves spectators until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	go s.Broadcast(ctx)
	go s.sessionManager.CleanupPeriodically(ctx)

	httpServer := &http.Server{
		Addr:    "0.0.0.0:" + s.port,
		Handler: s.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("spectator feed listening to port %s", s.port)
		errCh <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err

	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}
