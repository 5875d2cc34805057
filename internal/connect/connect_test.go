package connect

import (
	"context"
	"errors"
	"math/rand/v2"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

// scriptedConnector fails the platforms listed in fail.
func scriptedConnector(fail map[string]bool) Connector {
	return ConnectorFunc(func(ctx context.Context, id string) error {
		if fail[id] {
			return ErrConnectionRefused
		}
		return nil
	})
}

func TestSessionStart(t *testing.T) {
	s := NewSession([]string{"coinbase", "chase", "robinhood"}, scriptedConnector(map[string]bool{"chase": true}))

	if s.AllComplete() {
		t.Fatal("expected fresh session to be incomplete")
	}
	for _, a := range s.State().Attempts {
		if a.Status != StatusPending {
			t.Errorf("%s: expected pending, got %s", a.PlatformID, a.Status)
		}
	}

	if n := s.Start(context.Background()); n != 3 {
		t.Errorf("expected 3 started, got %d", n)
	}
	s.Wait()

	st := s.State()
	if !st.AllComplete {
		t.Error("expected all complete")
	}
	if st.SuccessCount != 2 {
		t.Errorf("expected 2 successes, got %d", st.SuccessCount)
	}
	if st.Attempts[1].Status != StatusError || st.Attempts[1].Error == "" {
		t.Errorf("expected chase to fail with a message, got %+v", st.Attempts[1])
	}

	if n := s.Start(context.Background()); n != 0 {
		t.Errorf("expected nothing to restart, got %d", n)
	}
}

func TestSessionInitiate(t *testing.T) {
	s := NewSession([]string{"metamask"}, scriptedConnector(nil))

	if err := s.Initiate(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Wait()

	if err := s.Initiate(context.Background(), 0); !errors.Is(err, ErrNotPending) {
		t.Errorf("expected ErrNotPending, got %v", err)
	}
	if err := s.Initiate(context.Background(), 1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
	if err := s.Initiate(context.Background(), -1); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("expected ErrIndexOutOfRange, got %v", err)
	}
}

func TestSessionRetry(t *testing.T) {
	var mu sync.Mutex
	failing := true
	c := ConnectorFunc(func(ctx context.Context, id string) error {
		mu.Lock()
		defer mu.Unlock()
		if failing {
			return ErrConnectionRefused
		}
		return nil
	})

	s := NewSession([]string{"binance", "ledger"}, c)

	if err := s.Retry(context.Background(), 0); !errors.Is(err, ErrNotRetryable) {
		t.Errorf("expected pending attempt to be non-retryable, got %v", err)
	}

	s.Start(context.Background())
	s.Wait()
	if s.SuccessCount() != 0 {
		t.Fatalf("expected all failures, got %d successes", s.SuccessCount())
	}

	mu.Lock()
	failing = false
	mu.Unlock()

	if err := s.Retry(context.Background(), 1); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	s.Wait()

	st := s.State()
	if st.Attempts[0].Status != StatusError {
		t.Errorf("retry must not touch other attempts, got %s", st.Attempts[0].Status)
	}
	if st.Attempts[1].Status != StatusSuccess || st.Attempts[1].Tries != 2 {
		t.Errorf("expected ledger success on try 2, got %+v", st.Attempts[1])
	}
	if err := s.Retry(context.Background(), 1); !errors.Is(err, ErrNotRetryable) {
		t.Errorf("expected success to be non-retryable, got %v", err)
	}
}

func TestSessionTimeout(t *testing.T) {
	block := make(chan struct{})
	defer close(block)

	// ignores ctx on purpose
	c := ConnectorFunc(func(ctx context.Context, id string) error {
		<-block
		return nil
	})

	s := NewSession([]string{"phantom"}, c, WithTimeout(20*time.Millisecond))
	s.Start(context.Background())
	s.Wait()

	a := s.State().Attempts[0]
	if a.Status != StatusError {
		t.Fatalf("expected error after timeout, got %s", a.Status)
	}
	if a.Error != ErrTimeout.Error() {
		t.Errorf("expected timeout message, got %q", a.Error)
	}
}

func TestSessionResolveHook(t *testing.T) {
	var mu sync.Mutex
	var resolved []Attempt

	s := NewSession([]string{"chase", "citi"}, scriptedConnector(map[string]bool{"citi": true}),
		WithResolveHook(func(a Attempt) {
			mu.Lock()
			resolved = append(resolved, a)
			mu.Unlock()
		}))
	s.Start(context.Background())
	s.Wait()

	mu.Lock()
	defer mu.Unlock()
	if len(resolved) != 2 {
		t.Fatalf("expected 2 resolutions, got %d", len(resolved))
	}
	for _, a := range resolved {
		if !a.Status.Terminal() {
			t.Errorf("hook saw non-terminal status %s", a.Status)
		}
	}
}

func TestSessionClose(t *testing.T) {
	release := make(chan struct{})
	c := ConnectorFunc(func(ctx context.Context, id string) error {
		if id == "kraken" {
			<-release
		}
		return ErrConnectionRefused
	})
	s := NewSession([]string{"kraken", "gemini"}, c)

	if err := s.Initiate(context.Background(), 0); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if s.Close() {
		t.Fatal("expected close to fail while an attempt is connecting")
	}
	close(release)
	s.Wait()

	if !s.Close() || !s.Close() {
		t.Fatal("expected idle session to close")
	}
	if err := s.Initiate(context.Background(), 1); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed on initiate, got %v", err)
	}
	if err := s.Retry(context.Background(), 0); !errors.Is(err, ErrSessionClosed) {
		t.Errorf("expected ErrSessionClosed on retry, got %v", err)
	}
	if n := s.Start(context.Background()); n != 0 {
		t.Errorf("expected closed session to start nothing, got %d", n)
	}
	if st := s.State(); st.Attempts[1].Status != StatusPending || st.Attempts[0].Tries != 1 {
		t.Errorf("closed session must keep its attempts, got %+v", st.Attempts)
	}
}

func TestSessionEmpty(t *testing.T) {
	s := NewSession(nil, scriptedConnector(nil))
	if s.AllComplete() {
		t.Error("expected empty session to be incomplete")
	}
	if s.Start(context.Background()) != 0 {
		t.Error("expected nothing to start")
	}
}

func TestSessionStateIsCopy(t *testing.T) {
	s := NewSession([]string{"fidelity"}, scriptedConnector(nil))
	st := s.State()
	st.Attempts[0].Status = StatusSuccess

	if s.State().Attempts[0].Status != StatusPending {
		t.Error("mutating a state copy leaked into the session")
	}
}

func TestSimulatedConnector(t *testing.T) {
	t.Run("always_succeeds", func(t *testing.T) {
		c := NewSimulatedConnector(1, 0, time.Millisecond, rand.NewPCG(1, 2))
		for range 20 {
			if err := c.Connect(context.Background(), "schwab"); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		}
	})

	t.Run("always_fails", func(t *testing.T) {
		c := NewSimulatedConnector(0, 0, time.Millisecond, rand.NewPCG(1, 2))
		if err := c.Connect(context.Background(), "schwab"); !errors.Is(err, ErrConnectionRefused) {
			t.Errorf("expected ErrConnectionRefused, got %v", err)
		}
	})

	t.Run("honours_cancellation", func(t *testing.T) {
		c := NewSimulatedConnector(1, time.Hour, time.Hour, rand.NewPCG(1, 2))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		if err := c.Connect(ctx, "schwab"); !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	})
}

func TestHTTPConnector(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		if r.Method != http.MethodPost {
			t.Errorf("expected POST, got %s", r.Method)
		}
		if r.Header.Get("X-API-Key") != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		switch r.URL.Path {
		case "/platforms/coinbase/connect":
			w.WriteHeader(http.StatusOK)
		default:
			w.WriteHeader(http.StatusBadGateway)
		}
	}))
	defer srv.Close()

	c := NewHTTPConnector(srv.URL+"/", "secret", srv.Client(), 50)

	if err := c.Connect(context.Background(), "coinbase"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := c.Connect(context.Background(), "wells"); !errors.Is(err, ErrConnectionRefused) {
		t.Errorf("expected ErrConnectionRefused, got %v", err)
	}
	if hits.Load() != 2 {
		t.Errorf("expected 2 requests, got %d", hits.Load())
	}
}

func TestLookupPlatform(t *testing.T) {
	p, ok := LookupPlatform("bofa")
	if !ok || p.Category != CategoryBank {
		t.Errorf("expected bofa bank platform, got %+v %v", p, ok)
	}
	if _, ok := LookupPlatform("myspace"); ok {
		t.Error("expected unknown platform lookup to fail")
	}
}
