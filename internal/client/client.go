// Package client hands out vendor API groups whose every call goes through
// the retry dispatcher.
//
// The vendor transport is built on first use and shared by all groups of a
// Client. Each group gets its own dispatcher bound to the group name and its
// retryable operation allowlist.
package client

import (
	"sync"

	"github.com/google/uuid"

	"github.com/vietddude/payguard/internal/resilience/dispatch"
	"github.com/vietddude/payguard/internal/vendor"
)

// Client is the factory for wrapped API groups.
type Client struct {
	opts Options

	mu        sync.Mutex
	transport *vendor.Client
}

// GroupOption adjusts a single API group.
type GroupOption func(*groupConfig)

type groupConfig struct {
	retryable  []string
	logContext map[string]any
}

// WithRetryable replaces the group's default retryable operations.
func WithRetryable(names ...string) GroupOption {
	return func(g *groupConfig) {
		g.retryable = names
	}
}

// WithGroupLogContext adds log fields for this group only.
func WithGroupLogContext(fields map[string]any) GroupOption {
	return func(g *groupConfig) {
		g.logContext = fields
	}
}

// New creates a client. layers are merged over DefaultOptions; a non-empty
// accessToken takes precedence over any token set in the layers.
func New(accessToken string, layers ...Options) *Client {
	all := append([]Options{DefaultOptions()}, layers...)
	opts := MergeOptions(all...)
	if accessToken != "" {
		opts.Vendor.AccessToken = accessToken
	}
	return &Client{opts: opts}
}

// Options returns the effective options.
func (c *Client) Options() Options {
	return c.opts
}

// Transport returns the vendor transport, creating it on first call.
func (c *Client) Transport() *vendor.Client {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.transport == nil {
		c.transport = vendor.NewClient(c.opts.Vendor)
	}
	return c.transport
}

// Stats returns the transport's monitor snapshot.
func (c *Client) Stats() vendor.MonitorStats {
	return c.Transport().Monitor.Stats()
}

// Close releases the transport, if it was ever built.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.transport == nil {
		return nil
	}
	return c.transport.Close()
}

// Orders returns the orders group.
func (c *Client) Orders(opts ...GroupOption) vendor.OrdersAPI {
	d := c.dispatcher(OrdersGroup, DefaultOrdersRetryable, opts)
	return WrapOrders(vendor.NewOrders(c.Transport()), d)
}

// Customers returns the customers group.
func (c *Client) Customers(opts ...GroupOption) vendor.CustomersAPI {
	d := c.dispatcher(CustomersGroup, DefaultCustomersRetryable, opts)
	return WrapCustomers(vendor.NewCustomers(c.Transport()), d)
}

// Locations returns the locations group.
func (c *Client) Locations(opts ...GroupOption) vendor.LocationsAPI {
	d := c.dispatcher(LocationsGroup, DefaultLocationsRetryable, opts)
	return WrapLocations(vendor.NewLocations(c.Transport()), d)
}

// Payments returns the payments group.
func (c *Client) Payments(opts ...GroupOption) vendor.PaymentsAPI {
	d := c.dispatcher(PaymentsGroup, DefaultPaymentsRetryable, opts)
	return WrapPayments(vendor.NewPayments(c.Transport()), d)
}

// Refunds returns the refunds group.
func (c *Client) Refunds(opts ...GroupOption) vendor.RefundsAPI {
	d := c.dispatcher(RefundsGroup, DefaultRefundsRetryable, opts)
	return WrapRefunds(vendor.NewRefunds(c.Transport()), d)
}

// Wrap runs every operation of an arbitrary table through a dispatcher
// configured from the client options.
func (c *Client) Wrap(api string, t dispatch.Table, retryable []string) dispatch.Table {
	return c.Dispatcher(api, retryable).Wrap(t)
}

// Dispatcher returns a dispatcher for api configured from the client options.
func (c *Client) Dispatcher(api string, retryable []string, opts ...dispatch.Option) *dispatch.Dispatcher {
	base := []dispatch.Option{
		dispatch.WithPolicy(c.opts.policy()),
		dispatch.WithLogger(c.opts.Logger),
		dispatch.WithLogContext(c.opts.LogContext),
	}
	return dispatch.New(api, retryable, append(base, opts...)...)
}

func (c *Client) dispatcher(api string, defaults []string, opts []GroupOption) *dispatch.Dispatcher {
	g := groupConfig{retryable: defaults}
	for _, opt := range opts {
		opt(&g)
	}

	var extra []dispatch.Option
	if g.logContext != nil {
		extra = append(extra, dispatch.WithLogContext(mergeMaps(c.opts.LogContext, g.logContext)))
	}
	return c.Dispatcher(api, g.retryable, extra...)
}

// GenerateIdempotencyKey returns a fresh random idempotency key.
func GenerateIdempotencyKey() string {
	return uuid.NewString()
}
