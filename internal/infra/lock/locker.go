package lock

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotAcquired is returned when the lock stays held by someone else until
// the wait deadline.
var ErrNotAcquired = errors.New("lock not acquired")

// Locker serializes work on a key across callers.
type Locker interface {
	// Acquire blocks until the key is held or ctx ends. The returned func
	// releases it.
	Acquire(ctx context.Context, key string) (func(), error)
}

// SlotKey names the contended resource for a booking: one table on one day.
func SlotKey(tableID uint, date string) string {
	return fmt.Sprintf("reservations:lock:%d:%s", tableID, date)
}

const (
	defaultTTL   = 10 * time.Second
	retryBackoff = 25 * time.Millisecond
)
