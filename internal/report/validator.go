package report

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Tolerance is the allowed absolute difference between cash + cashless
// and the reported total income.
var Tolerance = decimal.NewFromFloat(0.01)

// ValidationError is a recoverable bad-input error: the user is
// re-prompted, nothing crashes and nothing is persisted.
type ValidationError struct {
	Field   Field
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// ValidateAmount parses a monetary value. Rejects non-numeric input and
// negative values.
func ValidateAmount(raw string) (decimal.Decimal, error) {
	value, err := decimal.NewFromString(strings.TrimSpace(raw))
	if err != nil {
		return decimal.Zero, &ValidationError{Message: "not a number: " + strings.TrimSpace(raw)}
	}
	if value.IsNegative() {
		return decimal.Zero, &ValidationError{Message: "amount cannot be negative"}
	}
	return value, nil
}

// ValidateCount parses a whole non-negative number (clients served).
func ValidateCount(raw string) (int, error) {
	count, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, &ValidationError{Field: FieldClientsCount, Message: "not a whole number: " + strings.TrimSpace(raw)}
	}
	if count < 0 {
		return 0, &ValidationError{Field: FieldClientsCount, Message: "count cannot be negative"}
	}
	return count, nil
}

// ValidateDraft checks the complete field set: everything present, all
// amounts non-negative, client count non-negative, and cash + cashless
// equal to total income within Tolerance. This is the only place the
// cross-field rule lives; the store trusts its verdict.
func ValidateDraft(d *Draft) error {
	for _, field := range Order {
		if !d.IsSet(field) {
			return &ValidationError{Field: field, Message: fmt.Sprintf("field %q is required", field)}
		}
	}

	for _, field := range Order {
		if field == FieldClientsCount {
			continue
		}
		if d.Amount(field).IsNegative() {
			return &ValidationError{Field: field, Message: fmt.Sprintf("amount %q cannot be negative", field)}
		}
	}
	if *d.ClientsCount < 0 {
		return &ValidationError{Field: FieldClientsCount, Message: "clients count cannot be negative"}
	}

	sum := d.Cash.Add(*d.Cashless)
	if sum.Sub(*d.TotalIncome).Abs().GreaterThan(Tolerance) {
		return &ValidationError{
			Field: FieldTotalIncome,
			Message: fmt.Sprintf("cash (%s) + cashless (%s) must equal total income (%s)",
				d.Cash, d.Cashless, d.TotalIncome),
		}
	}
	return nil
}
