// Package idempotency issues idempotency keys scoped to a caller reference.
//
// The same reference yields the same key until the key expires or is
// released, so a retried business operation (for example a checkout
// resubmitted after a crash) reuses the key of its first attempt.
package idempotency

import (
	"context"
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxKeyLength is the longest idempotency key the vendor accepts.
const MaxKeyLength = 45

// DefaultTTL is how long an issued key stays bound to its reference.
const DefaultTTL = 24 * time.Hour

// ErrEmptyReference is returned when a key is requested without a reference.
var ErrEmptyReference = errors.New("empty reference")

// Record binds a key to the reference it was issued for.
type Record struct {
	Reference string    `json:"reference"`
	Key       string    `json:"key"`
	IssuedAt  time.Time `json:"issued_at"`
}

// Store persists records.
type Store interface {
	// Claim stores rec unless a live record for rec.Reference exists, and
	// returns whichever record is bound to the reference afterwards.
	Claim(ctx context.Context, rec Record, ttl time.Duration) (Record, error)

	// Release forgets the record for reference.
	Release(ctx context.Context, reference string) error
}

// Keyring hands out reference-scoped keys backed by a Store.
type Keyring struct {
	store Store
	ttl   time.Duration
	now   func() time.Time
}

// NewKeyring creates a keyring. A non-positive ttl means DefaultTTL.
func NewKeyring(store Store, ttl time.Duration) *Keyring {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Keyring{store: store, ttl: ttl, now: time.Now}
}

// Key returns the key bound to reference, issuing one if needed.
func (k *Keyring) Key(ctx context.Context, reference string) (string, error) {
	if reference == "" {
		return "", ErrEmptyReference
	}

	rec, err := k.store.Claim(ctx, Record{
		Reference: reference,
		Key:       NewKey(reference),
		IssuedAt:  k.now(),
	}, k.ttl)
	if err != nil {
		return "", fmt.Errorf("claim key for %q: %w", reference, err)
	}
	return rec.Key, nil
}

// Release drops the key bound to reference; the next Key call issues a new one.
func (k *Keyring) Release(ctx context.Context, reference string) error {
	if err := k.store.Release(ctx, reference); err != nil {
		return fmt.Errorf("release key for %q: %w", reference, err)
	}
	return nil
}

// NewKey returns "<reference>-<uuid>", shortening the reference so the key
// fits in MaxKeyLength. An empty reference yields a bare uuid.
func NewKey(reference string) string {
	id := uuid.NewString()
	if reference == "" {
		return id
	}

	room := MaxKeyLength - len(id) - 1
	if len(reference) > room {
		for room > 0 && !utf8.RuneStart(reference[room]) {
			room--
		}
		reference = reference[:room]
	}
	return reference + "-" + id
}
