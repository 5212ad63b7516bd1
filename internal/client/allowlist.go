package client

// API group names as they appear in logs and metrics.
const (
	OrdersGroup    = "orders"
	CustomersGroup = "customers"
	LocationsGroup = "locations"
	PaymentsGroup  = "payments"
	RefundsGroup   = "refunds"
)

// Operations retried by default, per API group. Everything else is logged
// and normalized but attempted once.
var (
	DefaultOrdersRetryable = []string{
		"BatchRetrieveOrders",
		"SearchOrders",
		"CreateOrder",
		"PayOrder",
		"CalculateOrder",
	}

	DefaultCustomersRetryable = []string{
		"ListCustomers",
		"RetrieveCustomer",
		"SearchCustomers",
		"DeleteCustomer",
	}

	DefaultLocationsRetryable = []string{
		"ListLocations",
	}

	DefaultPaymentsRetryable = []string{
		"GetPayment",
		"ListPayments",
		"CreatePayment",
		"CancelPayment",
	}

	DefaultRefundsRetryable = []string{
		"GetPaymentRefund",
		"ListPaymentRefunds",
		"RefundPayment",
	}
)
