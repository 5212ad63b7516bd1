package dispatch

import (
	"context"
	"errors"
	"testing"

	"github.com/vietddude/payguard/internal/mapper"
)

func TestWrap_ForwardsEveryOperation(t *testing.T) {
	var createCalls, listCalls int
	table := Table{
		"CreateLocation": func(_ context.Context, req mapper.Object) (mapper.Object, error) {
			createCalls++
			if createCalls < 3 {
				return nil, statusErr(503, "SERVICE_UNAVAILABLE")
			}
			return mapper.Object{"name": req["name"]}, nil
		},
		"ListLocations": func(context.Context, mapper.Object) (mapper.Object, error) {
			listCalls++
			return nil, statusErr(503, "SERVICE_UNAVAILABLE")
		},
	}

	d := New("locations", []string{"CreateLocation"},
		WithPolicy(Policy{MaxRetries: 5}),
		WithSleep((&recordSleep{}).sleep),
	)
	wrapped := d.Wrap(table)

	if len(wrapped) != len(table) {
		t.Fatalf("wrapped %d operations, want %d", len(wrapped), len(table))
	}

	got, err := wrapped.Call(context.Background(), "CreateLocation", mapper.Object{"name": "Main"})
	if err != nil {
		t.Fatalf("CreateLocation: %v", err)
	}
	if got["name"] != "Main" || createCalls != 3 {
		t.Errorf("got %v after %d calls", got, createCalls)
	}

	if _, err := wrapped.Call(context.Background(), "ListLocations", nil); err == nil {
		t.Error("ListLocations: expected error")
	}
	if listCalls != 1 {
		t.Errorf("ListLocations calls = %d, want 1", listCalls)
	}
}

func TestTableCall_UnknownOperation(t *testing.T) {
	_, err := Table{}.Call(context.Background(), "Missing", nil)

	var unknown *UnknownOperationError
	if !errors.As(err, &unknown) || unknown.Name != "Missing" {
		t.Errorf("err = %v", err)
	}
}
