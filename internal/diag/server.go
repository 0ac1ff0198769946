package diag

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	maxEntryBytes  = 16 << 10
	tailBuffer     = 32
	tailWriteLimit = 5 * time.Second
)

// Server collects diagnostic entries posted by game clients, logs them and
// streams them to websocket subscribers on /ws.
type Server struct {
	r        *chi.Mux
	log      zerolog.Logger
	upgrader websocket.Upgrader

	mu       sync.RWMutex
	tails    map[*tail]struct{}
	received int64
}

type tail struct {
	send chan Entry
}

// NewServer builds the router and installs middleware.
func NewServer(logger zerolog.Logger) *Server {
	s := &Server{
		r:   chi.NewRouter(),
		log: logger,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		tails: make(map[*tail]struct{}),
	}

	s.r.Use(chimw.RequestID)
	s.r.Use(chimw.RealIP)
	s.r.Use(chimw.Recoverer)
	s.r.Use(cors)

	s.r.Get("/health", s.handleHealth)
	s.r.Post("/log", s.handleLog)
	s.r.Get("/ws", s.handleTail)

	s.r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "not_found", "path": r.URL.Path})
	})

	return s
}

// Router exposes the handler (useful for tests).
func (s *Server) Router() http.Handler { return s.r }

// Received returns how many entries were accepted.
func (s *Server) Received() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.received
}

// ListenAndServe serves on addr until ctx is cancelled.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.r,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.log.Info().Str("addr", addr).Msg("log server listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		return nil
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.RLock()
	subscribers := len(s.tails)
	s.mu.RUnlock()
	writeJSON(w, http.StatusOK, map[string]any{"ok": true, "subscribers": subscribers})
}

func (s *Server) handleLog(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Level   string    `json:"level"`
		Message string    `json:"message"`
		Source  string    `json:"source"`
		Scene   string    `json:"scene"`
		Time    time.Time `json:"time"`
	}
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEntryBytes)).Decode(&in); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "bad_json"})
		return
	}
	if strings.TrimSpace(in.Message) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "empty_message"})
		return
	}

	e := Entry{
		Level:   ParseLevel(in.Level),
		Message: in.Message,
		Source:  in.Source,
		Time:    in.Time,
	}
	if e.Source == "" {
		e.Source = in.Scene
	}
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}

	s.record(e)
	s.broadcast(e)
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) record(e Entry) {
	s.mu.Lock()
	s.received++
	s.mu.Unlock()

	var ev *zerolog.Event
	switch e.Level {
	case LevelWarn:
		ev = s.log.Warn()
	case LevelError:
		ev = s.log.Error()
	case LevelSuccess:
		ev = s.log.Info().Bool("success", true)
	default:
		ev = s.log.Info()
	}
	ev.Str("source", e.Source).Time("at", e.Time).Msg(e.Message)
}

func (s *Server) broadcast(e Entry) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for t := range s.tails {
		select {
		case t.send <- e:
		default:
			// Slow subscriber; skip rather than stall the poster.
		}
	}
}

func (s *Server) subscribe() *tail {
	t := &tail{send: make(chan Entry, tailBuffer)}
	s.mu.Lock()
	s.tails[t] = struct{}{}
	s.mu.Unlock()
	return t
}

func (s *Server) unsubscribe(t *tail) {
	s.mu.Lock()
	if _, ok := s.tails[t]; ok {
		delete(s.tails, t)
		close(t.send)
	}
	s.mu.Unlock()
}

func (s *Server) handleTail(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade")
		return
	}
	//nolint:errcheck // Best-effort close
	defer conn.Close()

	t := s.subscribe()
	s.log.Debug().Str("remote", conn.RemoteAddr().String()).Msg("tail subscribed")

	// The reader only exists to notice the peer going away.
	go func() {
		defer s.unsubscribe(t)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					s.log.Debug().Err(err).Msg("tail read")
				}
				return
			}
		}
	}()

	for e := range t.send {
		_ = conn.SetWriteDeadline(time.Now().Add(tailWriteLimit))
		if err := conn.WriteJSON(e); err != nil {
			s.unsubscribe(t)
			return
		}
	}
}

func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET,POST,OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
