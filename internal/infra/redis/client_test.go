package redis

import (
	"strings"
	"testing"

	"github.com/vietddude/payguard/internal/idempotency"
)

var _ idempotency.Store = (*KeyRepo)(nil)

func TestNewClient_InvalidURL(t *testing.T) {
	_, err := NewClient(Config{URL: "not-a-redis-url"})
	if err == nil || !strings.Contains(err.Error(), "parse redis URL") {
		t.Errorf("err = %v", err)
	}
}

func TestKeyRepo_RecordKey(t *testing.T) {
	tests := []struct {
		prefix string
		ref    string
		want   string
	}{
		{DefaultPrefix, "order-1", "payguard:idempotency:order-1"},
		{"shop", "c:9", "shop:idempotency:c:9"},
	}
	for _, tt := range tests {
		repo := NewKeyRepo(&Client{prefix: tt.prefix})
		if got := repo.recordKey(tt.ref); got != tt.want {
			t.Errorf("recordKey(%q) = %q, want %q", tt.ref, got, tt.want)
		}
	}
}
