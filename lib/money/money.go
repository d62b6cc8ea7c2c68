package money

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency codes accepted by the agency. Everything else is rejected
// before any row is written.
const (
	CurrencyARS = "ARS"
	CurrencyUSD = "USD"
)

var Currencies = []string{CurrencyARS, CurrencyUSD}

var (
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidCurrency = errors.New("invalid currency")
)

// Places is the precision used for all monetary amounts.
const Places = 2

func ValidCurrency(code string) bool {
	for _, c := range Currencies {
		if c == code {
			return true
		}
	}
	return false
}

func CheckCurrency(code string) error {
	if !ValidCurrency(code) {
		return fmt.Errorf("%w: %q is not one of %v", ErrInvalidCurrency, code, Currencies)
	}
	return nil
}

// SplitEqually partitions total minus downPayment into count installment
// amounts with 2-digit precision. The amounts always sum exactly to the
// remainder: every part but the last is the truncated equal share, the last
// part absorbs whatever rounding left over. Every part must come out
// positive, so a remainder of less than one cent per part is rejected.
func SplitEqually(total, downPayment decimal.Decimal, count int) ([]decimal.Decimal, error) {
	if count <= 0 {
		return nil, fmt.Errorf("%w: installment count must be positive, got %d", ErrInvalidAmount, count)
	}
	if total.IsNegative() || downPayment.IsNegative() {
		return nil, fmt.Errorf("%w: amounts must not be negative", ErrInvalidAmount)
	}
	if total.LessThan(downPayment) {
		return nil, fmt.Errorf("%w: down payment %s exceeds total %s", ErrInvalidAmount, downPayment, total)
	}

	remainder := total.Sub(downPayment)
	share := remainder.Div(decimal.NewFromInt(int64(count))).Truncate(Places)
	if !share.IsPositive() {
		return nil, fmt.Errorf("%w: %s cannot be split into %d positive parts", ErrInvalidAmount, remainder, count)
	}

	amounts := make([]decimal.Decimal, count)
	allocated := decimal.Zero
	for i := 0; i < count-1; i++ {
		amounts[i] = share
		allocated = allocated.Add(share)
	}
	amounts[count-1] = remainder.Sub(allocated)
	return amounts, nil
}
