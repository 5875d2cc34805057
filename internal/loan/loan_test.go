package loan

import (
	"errors"
	"testing"
)

func TestNewID(t *testing.T) {
	seen := make(map[string]bool)
	for range 200 {
		id, err := NewID()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !IsValidID(id) {
			t.Fatalf("id %q does not match ALT-[A-Z0-9]{8}", id)
		}
		seen[id] = true
	}
	if len(seen) < 199 {
		t.Errorf("expected unique ids, got %d distinct of 200", len(seen))
	}
}

func TestIsValidID(t *testing.T) {
	for id, want := range map[string]bool{
		"ALT-AB12CD34":  true,
		"ALT-ab12cd34":  false,
		"ALT-AB12CD3":   false,
		"ALT-AB12CD345": false,
		"XYZ-AB12CD34":  false,
		"":              false,
	} {
		if got := IsValidID(id); got != want {
			t.Errorf("IsValidID(%q) = %v, want %v", id, got, want)
		}
	}
}

func TestNewUniqueID(t *testing.T) {
	t.Run("retries_on_collision", func(t *testing.T) {
		calls := 0
		id, err := NewUniqueID(5, func(string) (bool, error) {
			calls++
			return calls < 3, nil
		})
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if calls != 3 || !IsValidID(id) {
			t.Errorf("expected valid id after 3 checks, got %q after %d", id, calls)
		}
	})

	t.Run("exhausted", func(t *testing.T) {
		_, err := NewUniqueID(3, func(string) (bool, error) { return true, nil })
		if !errors.Is(err, ErrIDExhausted) {
			t.Errorf("expected ErrIDExhausted, got %v", err)
		}
	})

	t.Run("propagates_lookup_error", func(t *testing.T) {
		boom := errors.New("boom")
		_, err := NewUniqueID(3, func(string) (bool, error) { return false, boom })
		if !errors.Is(err, boom) {
			t.Errorf("expected lookup error, got %v", err)
		}
	})
}

func TestValidateTransition(t *testing.T) {
	tests := []struct {
		name    string
		from    Status
		to      Status
		strict  bool
		wantErr error
	}{
		{"permissive_any_jump", StatusCompleted, StatusPending, false, nil},
		{"permissive_unknown_target", StatusPending, "archived", false, ErrInvalidStatus},
		{"strict_approve", StatusPending, StatusApproved, true, nil},
		{"strict_reject", StatusPending, StatusRejected, true, nil},
		{"strict_activate", StatusApproved, StatusActive, true, nil},
		{"strict_complete", StatusActive, StatusCompleted, true, nil},
		{"strict_skip", StatusPending, StatusActive, true, ErrInvalidTransition},
		{"strict_from_terminal", StatusRejected, StatusApproved, true, ErrInvalidTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTransition(tt.from, tt.to, tt.strict)
			if tt.wantErr == nil && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestParseStatus(t *testing.T) {
	for _, s := range Statuses {
		if got, err := ParseStatus(string(s)); err != nil || got != s {
			t.Errorf("ParseStatus(%q) = %q, %v", s, got, err)
		}
	}
	if _, err := ParseStatus("PENDING"); !errors.Is(err, ErrInvalidStatus) {
		t.Errorf("expected ErrInvalidStatus, got %v", err)
	}
}
