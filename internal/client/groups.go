package client

import (
	"context"

	"github.com/vietddude/payguard/internal/mapper"
	"github.com/vietddude/payguard/internal/resilience/dispatch"
	"github.com/vietddude/payguard/internal/vendor"
)

func args(kv ...any) mapper.Object {
	out := make(mapper.Object, len(kv)/2)
	for i := 0; i+1 < len(kv); i += 2 {
		out[kv[i].(string)] = kv[i+1]
	}
	return out
}

type orders struct {
	api vendor.OrdersAPI
	d   *dispatch.Dispatcher
}

// WrapOrders returns api with every call dispatched through d.
func WrapOrders(api vendor.OrdersAPI, d *dispatch.Dispatcher) vendor.OrdersAPI {
	return &orders{api: api, d: d}
}

func (o *orders) CreateOrder(ctx context.Context, body mapper.Object) (mapper.Object, error) {
	return dispatch.Do(ctx, o.d, "CreateOrder", body, func(ctx context.Context) (mapper.Object, error) {
		return o.api.CreateOrder(ctx, body)
	})
}

func (o *orders) RetrieveOrder(ctx context.Context, orderID string) (mapper.Object, error) {
	return dispatch.Do(ctx, o.d, "RetrieveOrder", args("orderId", orderID), func(ctx context.Context) (mapper.Object, error) {
		return o.api.RetrieveOrder(ctx, orderID)
	})
}

func (o *orders) BatchRetrieveOrders(ctx context.Context, body mapper.Object) (mapper.Object, error) {
	return dispatch.Do(ctx, o.d, "BatchRetrieveOrders", body, func(ctx context.Context) (mapper.Object, error) {
		return o.api.BatchRetrieveOrders(ctx, body)
	})
}

func (o *orders) SearchOrders(ctx context.Context, body mapper.Object) (mapper.Object, error) {
	return dispatch.Do(ctx, o.d, "SearchOrders", body, func(ctx context.Context) (mapper.Object, error) {
		return o.api.SearchOrders(ctx, body)
	})
}

func (o *orders) CalculateOrder(ctx context.Context, body mapper.Object) (mapper.Object, error) {
	return dispatch.Do(ctx, o.d, "CalculateOrder", body, func(ctx context.Context) (mapper.Object, error) {
		return o.api.CalculateOrder(ctx, body)
	})
}

func (o *orders) UpdateOrder(ctx context.Context, orderID string, body mapper.Object) (mapper.Object, error) {
	return dispatch.Do(ctx, o.d, "UpdateOrder", args("orderId", orderID, "body", body), func(ctx context.Context) (mapper.Object, error) {
		return o.api.UpdateOrder(ctx, orderID, body)
	})
}

func (o *orders) PayOrder(ctx context.Context, orderID string, body mapper.Object) (mapper.Object, error) {
	return dispatch.Do(ctx, o.d, "PayOrder", args("orderId", orderID, "body", body), func(ctx context.Context) (mapper.Object, error) {
		return o.api.PayOrder(ctx, orderID, body)
	})
}

type customers struct {
	api vendor.CustomersAPI
	d   *dispatch.Dispatcher
}

// WrapCustomers returns api with every call dispatched through d.
func WrapCustomers(api vendor.CustomersAPI, d *dispatch.Dispatcher) vendor.CustomersAPI {
	return &customers{api: api, d: d}
}

func (c *customers) ListCustomers(ctx context.Context, params mapper.Object) (mapper.Object, error) {
	return dispatch.Do(ctx, c.d, "ListCustomers", params, func(ctx context.Context) (mapper.Object, error) {
		return c.api.ListCustomers(ctx, params)
	})
}

func (c *customers) RetrieveCustomer(ctx context.Context, customerID string) (mapper.Object, error) {
	return dispatch.Do(ctx, c.d, "RetrieveCustomer", args("customerId", customerID), func(ctx context.Context) (mapper.Object, error) {
		return c.api.RetrieveCustomer(ctx, customerID)
	})
}

func (c *customers) SearchCustomers(ctx context.Context, body mapper.Object) (mapper.Object, error) {
	return dispatch.Do(ctx, c.d, "SearchCustomers", body, func(ctx context.Context) (mapper.Object, error) {
		return c.api.SearchCustomers(ctx, body)
	})
}

func (c *customers) CreateCustomer(ctx context.Context, body mapper.Object) (mapper.Object, error) {
	return dispatch.Do(ctx, c.d, "CreateCustomer", body, func(ctx context.Context) (mapper.Object, error) {
		return c.api.CreateCustomer(ctx, body)
	})
}

func (c *customers) UpdateCustomer(ctx context.Context, customerID string, body mapper.Object) (mapper.Object, error) {
	return dispatch.Do(ctx, c.d, "UpdateCustomer", args("customerId", customerID, "body", body), func(ctx context.Context) (mapper.Object, error) {
		return c.api.UpdateCustomer(ctx, customerID, body)
	})
}

func (c *customers) DeleteCustomer(ctx context.Context, customerID string) (mapper.Object, error) {
	return dispatch.Do(ctx, c.d, "DeleteCustomer", args("customerId", customerID), func(ctx context.Context) (mapper.Object, error) {
		return c.api.DeleteCustomer(ctx, customerID)
	})
}

// FindOrCreateCustomer runs its search and create steps through this
// wrapper, so each step follows its own allowlist entry.
func (c *customers) FindOrCreateCustomer(ctx context.Context, body mapper.Object) (mapper.Object, error) {
	return vendor.FindOrCreateCustomer(ctx, c, body)
}

type locations struct {
	api vendor.LocationsAPI
	d   *dispatch.Dispatcher
}

// WrapLocations returns api with every call dispatched through d.
func WrapLocations(api vendor.LocationsAPI, d *dispatch.Dispatcher) vendor.LocationsAPI {
	return &locations{api: api, d: d}
}

func (l *locations) ListLocations(ctx context.Context) (mapper.Object, error) {
	return dispatch.Do(ctx, l.d, "ListLocations", nil, func(ctx context.Context) (mapper.Object, error) {
		return l.api.ListLocations(ctx)
	})
}

func (l *locations) RetrieveLocation(ctx context.Context, locationID string) (mapper.Object, error) {
	return dispatch.Do(ctx, l.d, "RetrieveLocation", args("locationId", locationID), func(ctx context.Context) (mapper.Object, error) {
		return l.api.RetrieveLocation(ctx, locationID)
	})
}

func (l *locations) CreateLocation(ctx context.Context, body mapper.Object) (mapper.Object, error) {
	return dispatch.Do(ctx, l.d, "CreateLocation", body, func(ctx context.Context) (mapper.Object, error) {
		return l.api.CreateLocation(ctx, body)
	})
}

type payments struct {
	api vendor.PaymentsAPI
	d   *dispatch.Dispatcher
}

// WrapPayments returns api with every call dispatched through d.
func WrapPayments(api vendor.PaymentsAPI, d *dispatch.Dispatcher) vendor.PaymentsAPI {
	return &payments{api: api, d: d}
}

func (p *payments) GetPayment(ctx context.Context, paymentID string) (mapper.Object, error) {
	return dispatch.Do(ctx, p.d, "GetPayment", args("paymentId", paymentID), func(ctx context.Context) (mapper.Object, error) {
		return p.api.GetPayment(ctx, paymentID)
	})
}

func (p *payments) ListPayments(ctx context.Context, params mapper.Object) (mapper.Object, error) {
	return dispatch.Do(ctx, p.d, "ListPayments", params, func(ctx context.Context) (mapper.Object, error) {
		return p.api.ListPayments(ctx, params)
	})
}

func (p *payments) CreatePayment(ctx context.Context, body mapper.Object) (mapper.Object, error) {
	return dispatch.Do(ctx, p.d, "CreatePayment", body, func(ctx context.Context) (mapper.Object, error) {
		return p.api.CreatePayment(ctx, body)
	})
}

func (p *payments) CancelPayment(ctx context.Context, paymentID string) (mapper.Object, error) {
	return dispatch.Do(ctx, p.d, "CancelPayment", args("paymentId", paymentID), func(ctx context.Context) (mapper.Object, error) {
		return p.api.CancelPayment(ctx, paymentID)
	})
}

func (p *payments) CompletePayment(ctx context.Context, paymentID string, body mapper.Object) (mapper.Object, error) {
	return dispatch.Do(ctx, p.d, "CompletePayment", args("paymentId", paymentID, "body", body), func(ctx context.Context) (mapper.Object, error) {
		return p.api.CompletePayment(ctx, paymentID, body)
	})
}

type refunds struct {
	api vendor.RefundsAPI
	d   *dispatch.Dispatcher
}

// WrapRefunds returns api with every call dispatched through d.
func WrapRefunds(api vendor.RefundsAPI, d *dispatch.Dispatcher) vendor.RefundsAPI {
	return &refunds{api: api, d: d}
}

func (r *refunds) GetPaymentRefund(ctx context.Context, refundID string) (mapper.Object, error) {
	return dispatch.Do(ctx, r.d, "GetPaymentRefund", args("refundId", refundID), func(ctx context.Context) (mapper.Object, error) {
		return r.api.GetPaymentRefund(ctx, refundID)
	})
}

func (r *refunds) ListPaymentRefunds(ctx context.Context, params mapper.Object) (mapper.Object, error) {
	return dispatch.Do(ctx, r.d, "ListPaymentRefunds", params, func(ctx context.Context) (mapper.Object, error) {
		return r.api.ListPaymentRefunds(ctx, params)
	})
}

func (r *refunds) RefundPayment(ctx context.Context, body mapper.Object) (mapper.Object, error) {
	return dispatch.Do(ctx, r.d, "RefundPayment", body, func(ctx context.Context) (mapper.Object, error) {
		return r.api.RefundPayment(ctx, body)
	})
}
