package control

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vietddude/payguard/internal/mapper"
	"github.com/vietddude/payguard/internal/vendor"
)

// ProbeResult summarizes one round of read-only vendor calls.
type ProbeResult struct {
	Locations int
	Customers int
	Duration  time.Duration
}

// Probe lists locations and the first page of customers concurrently.
// Both calls go through whatever dispatching the given groups carry.
func Probe(ctx context.Context, locations vendor.LocationsAPI, customers vendor.CustomersAPI) (ProbeResult, error) {
	start := time.Now()
	var res ProbeResult

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		out, err := locations.ListLocations(ctx)
		if err != nil {
			return fmt.Errorf("list locations: %w", err)
		}
		res.Locations = count(out, "locations")
		return nil
	})

	g.Go(func() error {
		out, err := customers.ListCustomers(ctx, mapper.Object{"limit": 1})
		if err != nil {
			return fmt.Errorf("list customers: %w", err)
		}
		res.Customers = count(out, "customers")
		return nil
	})

	if err := g.Wait(); err != nil {
		return ProbeResult{}, err
	}

	res.Duration = time.Since(start)
	return res, nil
}

func count(obj mapper.Object, key string) int {
	items, _ := obj[key].([]any)
	return len(items)
}
