package idempotency

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"
	"unicode/utf8"
)

func TestNewKey(t *testing.T) {
	tests := []struct {
		name       string
		reference  string
		wantPrefix string
	}{
		{"short reference", "order", "order-"},
		{"long reference is shortened", "checkout-session-0001", "checkout-"},
		{"empty reference", "", ""},
		{"multi-byte reference cut on rune boundary", "ordéééééé", "ordéé-"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewKey(tt.reference)
			if len(key) > MaxKeyLength {
				t.Errorf("len = %d, want <= %d", len(key), MaxKeyLength)
			}
			if !utf8.ValidString(key) {
				t.Errorf("key %q is not valid UTF-8", key)
			}
			if !strings.HasPrefix(key, tt.wantPrefix) {
				t.Errorf("key %q lacks prefix %q", key, tt.wantPrefix)
			}
		})
	}
}

func TestKeyring_StablePerReference(t *testing.T) {
	ctx := context.Background()
	k := NewKeyring(NewMemoryStore(), time.Hour)

	a1, err := k.Key(ctx, "order-1")
	if err != nil {
		t.Fatal(err)
	}
	a2, _ := k.Key(ctx, "order-1")
	b, _ := k.Key(ctx, "order-2")

	if a1 != a2 {
		t.Errorf("same reference gave %q and %q", a1, a2)
	}
	if a1 == b {
		t.Error("different references share a key")
	}

	if err := k.Release(ctx, "order-1"); err != nil {
		t.Fatal(err)
	}
	a3, _ := k.Key(ctx, "order-1")
	if a3 == a1 {
		t.Error("released reference reused its key")
	}
}

func TestKeyring_Expiry(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	k := NewKeyring(store, time.Minute)

	first, _ := k.Key(ctx, "ref")
	now = now.Add(59 * time.Second)
	if again, _ := k.Key(ctx, "ref"); again != first {
		t.Error("key changed before expiry")
	}
	now = now.Add(2 * time.Second)
	if after, _ := k.Key(ctx, "ref"); after == first {
		t.Error("key survived expiry")
	}
}

func TestKeyring_EmptyReference(t *testing.T) {
	_, err := NewKeyring(NewMemoryStore(), 0).Key(context.Background(), "")
	if !errors.Is(err, ErrEmptyReference) {
		t.Errorf("err = %v", err)
	}
}

func TestKeyring_ConcurrentClaims(t *testing.T) {
	ctx := context.Background()
	k := NewKeyring(NewMemoryStore(), time.Hour)

	keys := make([]string, 32)
	var wg sync.WaitGroup
	for i := range keys {
		wg.Add(1)
		go func() {
			defer wg.Done()
			keys[i], _ = k.Key(ctx, "shared")
		}()
	}
	wg.Wait()

	for _, key := range keys[1:] {
		if key != keys[0] {
			t.Fatalf("concurrent claims issued %q and %q", keys[0], key)
		}
	}
}

type failingStore struct{}

func (failingStore) Claim(context.Context, Record, time.Duration) (Record, error) {
	return Record{}, errors.New("store down")
}

func (failingStore) Release(context.Context, string) error {
	return errors.New("store down")
}

func TestKeyring_StoreErrors(t *testing.T) {
	k := NewKeyring(failingStore{}, time.Hour)
	if _, err := k.Key(context.Background(), "ref"); err == nil || !strings.Contains(err.Error(), "claim key") {
		t.Errorf("Key err = %v", err)
	}
	if err := k.Release(context.Background(), "ref"); err == nil {
		t.Error("Release: expected error")
	}
}
