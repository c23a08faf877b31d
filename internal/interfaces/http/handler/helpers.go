package handler

import (
	"time"

	"github.com/sanduq/backend/internal/domain/shared/valueobject"
	"github.com/shopspring/decimal"
)

// parseMoney builds a Money from a decimal string and optional currency
// code, defaulting to the system currency.
func parseMoney(amount, currency string) (valueobject.Money, error) {
	value, err := decimal.NewFromString(amount)
	if err != nil {
		return valueobject.Money{}, err
	}
	cur := valueobject.Currency(currency)
	if cur == "" {
		cur = valueobject.DefaultCurrency
	}
	return valueobject.NewMoney(value, cur)
}

// parseDate accepts RFC3339 timestamps and bare calendar dates. An empty
// string resolves to now.
func parseDate(value string) (time.Time, error) {
	if value == "" {
		return time.Now(), nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", value)
}
