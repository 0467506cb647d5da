package validator

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cast"
)

// PriceValidator accepts any numeric or numeric-string input that is a
// positive decimal. It is also used for weights and volumes.
type PriceValidator struct {
	field string
}

func NewPriceValidator(field string) PriceValidator {
	if field == "" {
		field = "price"
	}
	return PriceValidator{field: field}
}

func (v PriceValidator) Validate(value any) Result {
	_, res := v.Parse(value)
	return res
}

func (v PriceValidator) Parse(value any) (decimal.Decimal, Result) {
	amount, present, err := ToDecimal(value)
	if !present {
		return decimal.Zero, fail(v.field, CodeRequired, v.field+" is required")
	}
	if err != nil {
		return decimal.Zero, fail(v.field, CodeNotNumeric, fmt.Sprintf("%s %v is not a number", v.field, value),
			`use a plain decimal such as "12.50"`)
	}
	if !amount.IsPositive() {
		return decimal.Zero, fail(v.field, CodeNotPositive, v.field+" must be greater than zero")
	}

	return amount, ok(v.field)
}

// ToDecimal coerces value into a decimal. present is false for nil and blank strings.
func ToDecimal(value any) (amount decimal.Decimal, present bool, err error) {
	switch x := value.(type) {
	case nil:
		return decimal.Zero, false, nil
	case decimal.Decimal:
		return x, true, nil
	case *decimal.Decimal:
		if x == nil {
			return decimal.Zero, false, nil
		}
		return *x, true, nil
	case bool:
		return decimal.Zero, true, fmt.Errorf("boolean %v is not numeric", x)
	case float32:
		if _, _, err := fromFloat(float64(x)); err != nil {
			return decimal.Zero, true, err
		}
		return decimal.NewFromFloat32(x), true, nil
	case float64:
		return fromFloat(x)
	case json.Number:
		value = x.String()
	}

	s, err := cast.ToStringE(value)
	if err != nil {
		return decimal.Zero, true, err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero, false, nil
	}

	amount, err = decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, true, err
	}
	return amount, true, nil
}

func fromFloat(f float64) (decimal.Decimal, bool, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return decimal.Zero, true, fmt.Errorf("%v is not a finite number", f)
	}
	return decimal.NewFromFloat(f), true, nil
}
