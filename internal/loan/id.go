package loan

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"regexp"
)

const (
	idPrefix   = "ALT-"
	idAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	idLength   = 8
)

var idPattern = regexp.MustCompile(`^ALT-[A-Z0-9]{8}$`)

// ErrIDExhausted is returned when no free id was found within the attempt budget.
var ErrIDExhausted = errors.New("could not generate a unique application id")

// NewID returns "ALT-" followed by 8 random uppercase alphanumerics.
func NewID() (string, error) {
	buf := make([]byte, idLength)
	limit := big.NewInt(int64(len(idAlphabet)))
	for i := range buf {
		n, err := rand.Int(rand.Reader, limit)
		if err != nil {
			return "", fmt.Errorf("failed to read random id: %w", err)
		}
		buf[i] = idAlphabet[n.Int64()]
	}
	return idPrefix + string(buf), nil
}

// IsValidID reports whether s has the application id format.
func IsValidID(s string) bool {
	return idPattern.MatchString(s)
}

// NewUniqueID generates ids until exists reports one as free, giving up
// after attempts tries.
func NewUniqueID(attempts int, exists func(id string) (bool, error)) (string, error) {
	for range attempts {
		id, err := NewID()
		if err != nil {
			return "", err
		}
		taken, err := exists(id)
		if err != nil {
			return "", err
		}
		if !taken {
			return id, nil
		}
	}
	return "", ErrIDExhausted
}
