// Package connect models linking external platforms: each selected platform
// gets an attempt that moves pending → connecting → success|error, and
// failed attempts can be retried independently of the others.
package connect

import (
	"context"
	"errors"
	"sync"
	"time"
)

// Status is the state of one connection attempt.
type Status string

const (
	StatusPending    Status = "pending"
	StatusConnecting Status = "connecting"
	StatusSuccess    Status = "success"
	StatusError      Status = "error"
)

// Terminal reports whether the attempt has resolved.
func (s Status) Terminal() bool {
	return s == StatusSuccess || s == StatusError
}

var (
	ErrIndexOutOfRange = errors.New("connection index out of range")
	ErrNotPending      = errors.New("connection has already been initiated")
	ErrNotRetryable    = errors.New("only failed connections can be retried")
	ErrTimeout         = errors.New("connection attempt timed out")
	ErrSessionClosed   = errors.New("connection session is closed")
)

// DefaultTimeout bounds a single attempt when no timeout option is given.
const DefaultTimeout = 30 * time.Second

// Connector performs the handshake with a platform. A nil error means the
// platform is connected.
type Connector interface {
	Connect(ctx context.Context, platformID string) error
}

// ConnectorFunc adapts a function to Connector.
type ConnectorFunc func(ctx context.Context, platformID string) error

// Connect calls f.
func (f ConnectorFunc) Connect(ctx context.Context, platformID string) error {
	return f(ctx, platformID)
}

// Attempt is the connection state of one platform.
type Attempt struct {
	PlatformID string    `json:"platform_id"`
	Status     Status    `json:"status"`
	Error      string    `json:"error,omitempty"`
	Tries      int       `json:"tries"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// State is a consistent view of a session.
type State struct {
	Attempts     []Attempt `json:"attempts"`
	AllComplete  bool      `json:"all_complete"`
	SuccessCount int       `json:"success_count"`
}

// Option configures a Session.
type Option func(*Session)

// WithTimeout bounds each attempt; an expired attempt resolves to error.
// A non-positive duration disables the bound.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) { s.timeout = d }
}

// WithResolveHook registers fn to be called, outside the session lock,
// every time an attempt resolves.
func WithResolveHook(fn func(Attempt)) Option {
	return func(s *Session) { s.onResolve = fn }
}

// WithClock overrides the time source used for UpdatedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Session) { s.now = now }
}

// Session tracks the attempts for one batch of platforms. Attempts run
// concurrently; each goroutine only writes its own slot. It is safe for
// concurrent use.
type Session struct {
	connector Connector
	timeout   time.Duration
	onResolve func(Attempt)
	now       func() time.Time

	mu       sync.RWMutex
	attempts []Attempt
	closed   bool
	wg       sync.WaitGroup
}

// NewSession creates a session with every platform pending.
func NewSession(platformIDs []string, connector Connector, opts ...Option) *Session {
	s := &Session{
		connector: connector,
		timeout:   DefaultTimeout,
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.attempts = make([]Attempt, len(platformIDs))
	now := s.now()
	for i, id := range platformIDs {
		s.attempts[i] = Attempt{PlatformID: id, Status: StatusPending, UpdatedAt: now}
	}
	return s
}

// Start initiates every pending attempt and returns how many were started.
func (s *Session) Start(ctx context.Context) int {
	s.mu.RLock()
	var pending []int
	for i, a := range s.attempts {
		if a.Status == StatusPending {
			pending = append(pending, i)
		}
	}
	s.mu.RUnlock()

	started := 0
	for _, i := range pending {
		if err := s.Initiate(ctx, i); err == nil {
			started++
		}
	}
	return started
}

// Initiate moves a pending attempt to connecting and runs it.
func (s *Session) Initiate(ctx context.Context, index int) error {
	return s.launch(ctx, index, StatusPending, ErrNotPending)
}

// Retry moves a failed attempt back to connecting and runs it again.
func (s *Session) Retry(ctx context.Context, index int) error {
	return s.launch(ctx, index, StatusError, ErrNotRetryable)
}

func (s *Session) launch(ctx context.Context, index int, from Status, wrongState error) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if index < 0 || index >= len(s.attempts) {
		s.mu.Unlock()
		return ErrIndexOutOfRange
	}
	a := &s.attempts[index]
	if a.Status != from {
		s.mu.Unlock()
		return wrongState
	}
	a.Status = StatusConnecting
	a.Error = ""
	a.Tries++
	a.UpdatedAt = s.now()
	platformID := a.PlatformID
	s.wg.Add(1)
	s.mu.Unlock()

	go s.run(ctx, index, platformID)
	return nil
}

func (s *Session) run(ctx context.Context, index int, platformID string) {
	defer s.wg.Done()

	err := s.connect(ctx, platformID)

	s.mu.Lock()
	a := &s.attempts[index]
	if err != nil {
		a.Status = StatusError
		a.Error = err.Error()
	} else {
		a.Status = StatusSuccess
	}
	a.UpdatedAt = s.now()
	resolved := *a
	s.mu.Unlock()

	if s.onResolve != nil {
		s.onResolve(resolved)
	}
}

// connect runs the connector under the session timeout. The select keeps a
// connector that ignores its context from holding the attempt open.
func (s *Session) connect(ctx context.Context, platformID string) error {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	done := make(chan error, 1)
	go func() {
		done <- s.connector.Connect(ctx, platformID)
	}()

	var err error
	select {
	case err = <-done:
	case <-ctx.Done():
		err = ctx.Err()
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrTimeout
	}
	return err
}

// Close stops the session from launching attempts. It fails, leaving the
// session open, while any attempt is connecting. Closing twice succeeds.
func (s *Session) Close() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.attempts {
		if a.Status == StatusConnecting {
			return false
		}
	}
	s.closed = true
	return true
}

// Wait blocks until no attempt is connecting and the last resolve hook has
// returned.
func (s *Session) Wait() {
	s.wg.Wait()
}

// State returns a copy of the attempts with the aggregate counters.
func (s *Session) State() State {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := State{Attempts: make([]Attempt, len(s.attempts))}
	copy(st.Attempts, s.attempts)
	st.AllComplete = allComplete(s.attempts)
	st.SuccessCount = successCount(s.attempts)
	return st
}

// AllComplete reports whether every attempt is success or error. An empty
// session is never complete.
func (s *Session) AllComplete() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return allComplete(s.attempts)
}

// SuccessCount returns the number of successful attempts.
func (s *Session) SuccessCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return successCount(s.attempts)
}

// Busy reports whether any attempt is still connecting.
func (s *Session) Busy() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.attempts {
		if a.Status == StatusConnecting {
			return true
		}
	}
	return false
}

func allComplete(attempts []Attempt) bool {
	if len(attempts) == 0 {
		return false
	}
	for _, a := range attempts {
		if !a.Status.Terminal() {
			return false
		}
	}
	return true
}

func successCount(attempts []Attempt) int {
	n := 0
	for _, a := range attempts {
		if a.Status == StatusSuccess {
			n++
		}
	}
	return n
}
