package validation

import (
	"fmt"

	validation "github.com/jellydator/validation"
	"github.com/shopspring/decimal"
)

var (
	errDecimalRequired = validation.NewError("validation_decimal_required", "is required")
	errDecimalType     = validation.NewError("validation_decimal_type", "must be a decimal")
)

func asDecimal(value interface{}) (decimal.Decimal, error) {
	switch v := value.(type) {
	case decimal.Decimal:
		return v, nil
	case *decimal.Decimal:
		if v == nil {
			return decimal.Decimal{}, errDecimalRequired
		}
		return *v, nil
	case decimal.NullDecimal:
		if !v.Valid {
			return decimal.Decimal{}, errDecimalRequired
		}
		return v.Decimal, nil
	default:
		return decimal.Decimal{}, errDecimalType
	}
}

// MaxScale rejects amounts carrying significant digits beyond places decimals.
// Trailing zeros do not count, so 10.500 passes MaxScale(2).
func MaxScale(places int32) validation.Rule {
	return validation.By(func(value interface{}) error {
		d, err := asDecimal(value)
		if err != nil {
			return err
		}
		if !d.Equal(d.Truncate(places)) {
			return validation.NewError("validation_decimal_scale",
				fmt.Sprintf("must have at most %d decimal places", places))
		}
		return nil
	})
}

// PositiveDecimal validates that a decimal amount is strictly greater than zero.
var PositiveDecimal = validation.By(func(value interface{}) error {
	d, err := asDecimal(value)
	if err != nil {
		return err
	}

	if !d.IsPositive() {
		return validation.NewError("validation_positive_decimal", "must be greater than zero")
	}
	return nil
})
