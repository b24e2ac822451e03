package repository

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrStoreUnavailable is returned once the bounded retry for a transient
// store failure is exhausted.
var ErrStoreUnavailable = errors.New("store unavailable")

const (
	retryAttempts = 3
	retryBackoff  = 200 * time.Millisecond
)

// withRetry runs op, retrying transient store failures a fixed number of
// times with a fixed backoff. Non-transient errors (not found, constraint
// violations) pass through untouched.
func withRetry(op func() error) error {
	var err error
	for attempt := 1; attempt <= retryAttempts; attempt++ {
		err = op()
		if err == nil || !isTransient(err) {
			return err
		}
		if attempt < retryAttempts {
			time.Sleep(retryBackoff)
		}
	}
	return fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
}

func isTransient(err error) bool {
	if errors.Is(err, driver.ErrBadConn) {
		return true
	}
	msg := err.Error()
	for _, marker := range []string{
		"database is locked",
		"connection refused",
		"connection reset",
		"bad connection",
		"broken pipe",
	} {
		if strings.Contains(msg, marker) {
			return true
		}
	}
	return false
}
