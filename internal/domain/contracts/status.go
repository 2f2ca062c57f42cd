package contracts

// Status is the externally visible lifecycle indicator of a contract.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusPending   Status = "pending"
	StatusSigned    Status = "signed"
	StatusCompleted Status = "completed"
	StatusCancelled Status = "cancelled"
	StatusDisputed  Status = "disputed"
)

// AllStatuses lists the closed status enumeration in lifecycle order.
var AllStatuses = []Status{
	StatusDraft,
	StatusPending,
	StatusSigned,
	StatusCompleted,
	StatusCancelled,
	StatusDisputed,
}

// ParseStatus reports whether raw is one of the known statuses.
func ParseStatus(raw string) (Status, bool) {
	for _, s := range AllStatuses {
		if string(s) == raw {
			return s, true
		}
	}
	return "", false
}

type Currency string

const (
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
	CurrencyGBP Currency = "GBP"
	CurrencyCAD Currency = "CAD"
	CurrencyAUD Currency = "AUD"
)

var AllCurrencies = []Currency{CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyCAD, CurrencyAUD}

func ParseCurrency(raw string) (Currency, bool) {
	for _, c := range AllCurrencies {
		if string(c) == raw {
			return c, true
		}
	}
	return "", false
}

type PaymentType string

const (
	PaymentFixed  PaymentType = "fixed"
	PaymentHourly PaymentType = "hourly"
)

func ParsePaymentType(raw string) (PaymentType, bool) {
	switch PaymentType(raw) {
	case PaymentFixed, PaymentHourly:
		return PaymentType(raw), true
	default:
		return "", false
	}
}
