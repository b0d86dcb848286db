package tax

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/taxdesk-dev/taxdesk/internal/ledger"
	"github.com/taxdesk-dev/taxdesk/internal/model"
)

// ErrInvalidRate is returned when the rate text is not a number.
var ErrInvalidRate = errors.New("invalid tax rate")

var hundred = decimal.NewFromInt(100)

// Result is the outcome of a tax calculation.
type Result struct {
	Rate        decimal.Decimal // percent
	TotalProfit decimal.Decimal
	FinalTax    decimal.Decimal
}

// ParseRate parses a percentage rate such as "15" or " 12.5 ".
func ParseRate(text string) (decimal.Decimal, error) {
	rate, err := decimal.NewFromString(strings.TrimSpace(text))
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidRate, text)
	}
	return rate, nil
}

// Compute applies rate to the total profit of txns. A loss yields a
// negative tax figure.
func Compute(txns []*model.Transaction, rateText string) (Result, error) {
	rate, err := ParseRate(rateText)
	if err != nil {
		return Result{}, err
	}
	total := ledger.TotalProfit(txns)
	return Result{
		Rate:        rate,
		TotalProfit: total,
		FinalTax:    total.Mul(rate.Div(hundred)),
	}, nil
}
