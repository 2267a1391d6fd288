package service

import (
	"crypto/rand"
	"encoding/hex"
	"strings"

	"alcyxob/coaching-app/internal/repository"

	"github.com/cockroachdb/errors"
)

// codeAttempts bounds the retries when a generated code is already taken.
const codeAttempts = 5

// NewLoginCode returns 6 upper-case hex characters from 3 random bytes.
func NewLoginCode() (string, error) {
	buf := make([]byte, 3)
	if _, err := rand.Read(buf); err != nil {
		return "", errors.Wrap(err, "read random bytes")
	}
	return strings.ToUpper(hex.EncodeToString(buf)), nil
}

// insertWithFreshCode calls insert with newly generated codes until it does not
// report a uniqueness conflict. Codes for which skip returns true are never tried.
func insertWithFreshCode(insert func(code string) error, skip func(code string) bool) error {
	var lastErr error
	for attempt := 0; attempt < codeAttempts; attempt++ {
		code, err := NewLoginCode()
		if err != nil {
			return err
		}
		if skip != nil && skip(code) {
			continue
		}
		err = insert(code)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repository.ErrConflict) {
			return err
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = repository.ErrConflict
	}
	return errors.Wrapf(lastErr, "no free login code after %d attempts", codeAttempts)
}
