package diag

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"
)

// HTTPSink posts entries as JSON to a remote /log endpoint from a background
// goroutine. When the buffer is full new entries are dropped.
type HTTPSink struct {
	url     string
	client  *http.Client
	queue   chan Entry
	mu      sync.RWMutex
	closed  bool
	done    chan struct{}
	sent    atomic.Int64
	dropped atomic.Int64
}

// HTTPSinkOption customizes an HTTPSink.
type HTTPSinkOption func(*HTTPSink)

// WithHTTPClient replaces the default client (2s timeout).
func WithHTTPClient(c *http.Client) HTTPSinkOption {
	return func(s *HTTPSink) {
		s.client = c
	}
}

// WithBuffer sets how many entries may wait for delivery.
func WithBuffer(n int) HTTPSinkOption {
	return func(s *HTTPSink) {
		if n > 0 {
			s.queue = make(chan Entry, n)
		}
	}
}

// NewHTTPSink starts a sink posting to url.
func NewHTTPSink(url string, opts ...HTTPSinkOption) *HTTPSink {
	s := &HTTPSink{
		url:    url,
		client: &http.Client{Timeout: 2 * time.Second},
		queue:  make(chan Entry, 256),
		done:   make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	go s.run()
	return s
}

// Log implements Sink. It never blocks.
func (s *HTTPSink) Log(level Level, message, source string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		s.dropped.Add(1)
		return
	}

	select {
	case s.queue <- Entry{Level: level, Message: message, Source: source, Time: time.Now()}:
	default:
		s.dropped.Add(1)
	}
}

func (s *HTTPSink) run() {
	defer close(s.done)
	for e := range s.queue {
		if s.post(e) {
			s.sent.Add(1)
		}
	}
}

func (s *HTTPSink) post(e Entry) bool {
	body, err := json.Marshal(e)
	if err != nil {
		return false
	}

	req, err := http.NewRequestWithContext(context.Background(), http.MethodPost, s.url, bytes.NewReader(body))
	if err != nil {
		return false
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return false
	}
	//nolint:errcheck // Best-effort close
	resp.Body.Close()
	return resp.StatusCode < 300
}

// Close stops accepting entries and waits up to timeout for the backlog to
// drain.
func (s *HTTPSink) Close(timeout time.Duration) {
	s.mu.Lock()
	if !s.closed {
		s.closed = true
		close(s.queue)
	}
	s.mu.Unlock()

	select {
	case <-s.done:
	case <-time.After(timeout):
	}
}

// Sent returns how many entries were delivered.
func (s *HTTPSink) Sent() int64 {
	return s.sent.Load()
}

// Dropped returns how many entries were discarded.
func (s *HTTPSink) Dropped() int64 {
	return s.dropped.Load()
}
