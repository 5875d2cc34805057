package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"altrion/internal/connect"
	"altrion/internal/models"
	"altrion/internal/testutil"
)

// failingFor returns a connector that refuses the given platforms.
func failingFor(ids ...string) connect.Connector {
	refuse := make(map[string]bool, len(ids))
	for _, id := range ids {
		refuse[id] = true
	}
	return connect.ConnectorFunc(func(ctx context.Context, platformID string) error {
		if refuse[platformID] {
			return connect.ErrConnectionRefused
		}
		return nil
	})
}

func TestStartSession(t *testing.T) {
	t.Run("auto_start_persists_outcomes", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateTestUser(t, db)
		svc := NewConnectionService(context.Background(), db, failingFor("binance"), time.Second, NewAuditService(db))

		_, err := svc.StartSession(user.ID, []string{"coinbase", "binance", "coinbase"}, true)
		testutil.AssertNoError(t, err)
		svc.Wait()

		state, err := svc.GetSession(user.ID)
		testutil.AssertNoError(t, err)
		if len(state.Attempts) != 2 {
			t.Fatalf("expected duplicates collapsed to 2 attempts, got %d", len(state.Attempts))
		}
		if !state.AllComplete || state.SuccessCount != 1 {
			t.Errorf("expected complete with 1 success, got %+v", state)
		}
		if state.Attempts[1].Status != connect.StatusError {
			t.Errorf("expected binance to fail, got %s", state.Attempts[1].Status)
		}

		linked, err := svc.GetLinkedPlatforms(user.ID)
		testutil.AssertNoError(t, err)
		if len(linked) != 2 {
			t.Fatalf("expected 2 linked rows, got %d", len(linked))
		}
		for _, pc := range linked {
			switch pc.PlatformID {
			case "coinbase":
				if pc.Status != connect.StatusSuccess || pc.ConnectedAt == nil {
					t.Errorf("expected coinbase connected, got %+v", pc)
				}
			case "binance":
				if pc.Status != connect.StatusError || pc.LastError == "" {
					t.Errorf("expected binance error recorded, got %+v", pc)
				}
			}
		}

		var audits int64
		db.Model(&models.AuditLog{}).Where("user_id = ? AND action = ?", user.ID, "PLATFORM_CONNECT").Count(&audits)
		if audits != 2 {
			t.Errorf("expected 2 audit rows, got %d", audits)
		}
	})

	t.Run("manual_start_stays_pending", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateTestUser(t, db)
		svc := NewConnectionService(context.Background(), db, failingFor(), time.Second, nil)

		state, err := svc.StartSession(user.ID, []string{"chase"}, false)
		testutil.AssertNoError(t, err)
		if state.Attempts[0].Status != connect.StatusPending || state.AllComplete {
			t.Errorf("expected pending session, got %+v", state)
		}
	})

	t.Run("unknown_platform", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewConnectionService(context.Background(), db, failingFor(), time.Second, nil)

		_, err := svc.StartSession("u1", []string{"coinbase", "mtgox"}, true)
		testutil.AssertAppError(t, err, "UNKNOWN_PLATFORM")
	})

	t.Run("empty_list", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		svc := NewConnectionService(context.Background(), db, failingFor(), time.Second, nil)

		_, err := svc.StartSession("u1", nil, true)
		testutil.AssertAppError(t, err, "INVALID_INPUT")
	})

	t.Run("busy_session_not_replaced", func(t *testing.T) {
		db := testutil.SetupTestDB(t)
		user := testutil.CreateTestUser(t, db)
		release := make(chan struct{})
		blocking := connect.ConnectorFunc(func(ctx context.Context, platformID string) error {
			select {
			case <-release:
				return nil
			case <-ctx.Done():
				return ctx.Err()
			}
		})
		svc := NewConnectionService(context.Background(), db, blocking, 5*time.Second, nil)

		_, err := svc.StartSession(user.ID, []string{"coinbase"}, true)
		testutil.AssertNoError(t, err)

		_, err = svc.StartSession(user.ID, []string{"binance"}, true)
		testutil.AssertAppError(t, err, "CONNECTION_IN_PROGRESS")

		close(release)
		svc.Wait()

		_, err = svc.StartSession(user.ID, []string{"binance"}, false)
		testutil.AssertNoError(t, err)
	})
}

func TestConnectionInitiateAndRetry(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)

	var fail atomic.Bool
	fail.Store(true)
	connector := connect.ConnectorFunc(func(ctx context.Context, platformID string) error {
		if fail.Load() {
			return errors.New("handshake rejected")
		}
		return nil
	})
	svc := NewConnectionService(context.Background(), db, connector, time.Second, nil)

	_, err := svc.Retry(user.ID, 0)
	testutil.AssertAppError(t, err, "CONNECTION_SESSION_NOT_FOUND")

	_, err = svc.StartSession(user.ID, []string{"robinhood", "schwab"}, false)
	testutil.AssertNoError(t, err)

	_, err = svc.Retry(user.ID, 0)
	testutil.AssertAppError(t, err, "CONNECTION_NOT_RETRYABLE")

	_, err = svc.Initiate(user.ID, 0)
	testutil.AssertNoError(t, err)
	svc.Wait()

	_, err = svc.Initiate(user.ID, 0)
	testutil.AssertAppError(t, err, "CONNECTION_NOT_PENDING")
	_, err = svc.Initiate(user.ID, 5)
	testutil.AssertAppError(t, err, "INVALID_INPUT")

	fail.Store(false)
	_, err = svc.Retry(user.ID, 0)
	testutil.AssertNoError(t, err)
	svc.Wait()

	state, err := svc.GetSession(user.ID)
	testutil.AssertNoError(t, err)
	if state.Attempts[0].Status != connect.StatusSuccess || state.Attempts[0].Tries != 2 {
		t.Errorf("expected success on second try, got %+v", state.Attempts[0])
	}
	if state.Attempts[1].Status != connect.StatusPending {
		t.Errorf("expected schwab untouched, got %s", state.Attempts[1].Status)
	}
	if state.AllComplete {
		t.Error("expected session incomplete while an attempt is pending")
	}

	linked, err := svc.GetLinkedPlatforms(user.ID)
	testutil.AssertNoError(t, err)
	if len(linked) != 1 || linked[0].Attempts != 2 || linked[0].Status != connect.StatusSuccess {
		t.Errorf("expected one upserted row with 2 attempts, got %+v", linked)
	}
}

func TestStartSessionClosesReplacedSession(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	svc := NewConnectionService(context.Background(), db, failingFor("kraken"), time.Second, nil)

	_, err := svc.StartSession(user.ID, []string{"kraken"}, true)
	testutil.AssertNoError(t, err)
	svc.Wait()
	old, err := svc.(*connectionService).session(user.ID)
	testutil.AssertNoError(t, err)

	_, err = svc.StartSession(user.ID, []string{"kraken", "gemini"}, false)
	testutil.AssertNoError(t, err)

	// The failed attempt of the replaced session must not run again.
	testutil.AssertErrorIs(t, old.Retry(context.Background(), 0), connect.ErrSessionClosed)
	testutil.AssertAppError(t, translateConnectError(connect.ErrSessionClosed), "CONNECTION_SESSION_NOT_FOUND")

	_, err = svc.Retry(user.ID, 0)
	testutil.AssertAppError(t, err, "CONNECTION_NOT_RETRYABLE")
	state, err := svc.GetSession(user.ID)
	testutil.AssertNoError(t, err)
	if len(state.Attempts) != 2 || state.Attempts[0].Tries != 0 {
		t.Errorf("expected fresh two-platform session, got %+v", state.Attempts)
	}
}

func TestStartSessionDrainDoesNotBlockOtherUsers(t *testing.T) {
	db := testutil.SetupTestDB(t)
	svc := NewConnectionService(context.Background(), db, failingFor(), time.Second, nil)
	cs := svc.(*connectionService)

	entered := make(chan struct{})
	release := make(chan struct{})
	slowHook := connect.WithResolveHook(func(connect.Attempt) {
		close(entered)
		<-release
	})
	alice := connect.NewSession([]string{"coinbase"}, failingFor(), slowHook)
	bob := connect.NewSession([]string{"chase"}, failingFor())
	cs.mu.Lock()
	cs.sessions["alice"] = alice
	cs.sessions["bob"] = bob
	cs.mu.Unlock()

	alice.Start(context.Background())
	<-entered

	started := make(chan error, 1)
	go func() {
		_, err := svc.StartSession("alice", []string{"binance"}, false)
		started <- err
	}()

	got := make(chan error, 1)
	go func() {
		_, err := svc.GetSession("bob")
		got <- err
	}()
	select {
	case err := <-got:
		testutil.AssertNoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("GetSession for another user blocked behind a draining session")
	}

	select {
	case err := <-started:
		t.Fatalf("StartSession returned before the previous hook finished: %v", err)
	default:
	}

	close(release)
	select {
	case err := <-started:
		testutil.AssertNoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("StartSession did not finish after the hook returned")
	}

	state, err := svc.GetSession("alice")
	testutil.AssertNoError(t, err)
	if state.Attempts[0].PlatformID != "binance" {
		t.Errorf("expected alice's new session, got %+v", state.Attempts)
	}
}

func TestConnectionTimeout(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	hang := connect.ConnectorFunc(func(ctx context.Context, platformID string) error {
		<-ctx.Done()
		return ctx.Err()
	})
	svc := NewConnectionService(context.Background(), db, hang, 20*time.Millisecond, nil)

	_, err := svc.StartSession(user.ID, []string{"ledger"}, true)
	testutil.AssertNoError(t, err)
	svc.Wait()

	state, _ := svc.GetSession(user.ID)
	if state.Attempts[0].Status != connect.StatusError {
		t.Fatalf("expected timeout to resolve to error, got %s", state.Attempts[0].Status)
	}
	if state.Attempts[0].Error != connect.ErrTimeout.Error() {
		t.Errorf("expected timeout error, got %q", state.Attempts[0].Error)
	}
}

func TestGetLinkedPlatforms(t *testing.T) {
	db := testutil.SetupTestDB(t)
	user := testutil.CreateTestUser(t, db)
	other := testutil.CreateTestUser(t, db)
	testutil.CreateTestPlatformConnection(t, db, user.ID, "robinhood", connect.StatusSuccess)
	testutil.CreateTestPlatformConnection(t, db, user.ID, "chase", connect.StatusError)
	testutil.CreateTestPlatformConnection(t, db, other.ID, "binance", connect.StatusSuccess)
	svc := NewConnectionService(context.Background(), db, failingFor(), time.Second, NewAuditService(db))

	linked, err := svc.GetLinkedPlatforms(user.ID)
	testutil.AssertNoError(t, err)
	if len(linked) != 2 {
		t.Fatalf("expected 2 linked platforms, got %d", len(linked))
	}
	if linked[0].PlatformID != "chase" || linked[1].PlatformID != "robinhood" {
		t.Errorf("expected platforms ordered by id, got %s, %s", linked[0].PlatformID, linked[1].PlatformID)
	}
	if linked[1].ConnectedAt == nil {
		t.Error("expected connected_at on a successful connection")
	}
}
