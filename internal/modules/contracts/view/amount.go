package view

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/yungbote/pactify-backend/internal/domain/contracts"
)

const amountNotSpecified = "Not specified"

// FormatAmount renders "USD 1500.00"; currency defaults to USD.
func FormatAmount(total decimal.NullDecimal, currency string) string {
	if !total.Valid {
		return amountNotSpecified
	}
	currency = strings.TrimSpace(currency)
	if currency == "" {
		currency = string(contracts.CurrencyUSD)
	}
	return currency + " " + total.Decimal.StringFixed(2)
}
