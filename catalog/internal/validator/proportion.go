package validator

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

const UnitPercent = "%"

var (
	proportionPattern = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(%|g|kg|oz|lb|ml|l|fl_oz)$`)
	numberPrefix      = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*(.*)$`)

	percentCeiling = decimal.NewFromInt(100)
)

// ProportionUnits lists every suffix a proportion may carry.
var ProportionUnits = []string{UnitPercent, "g", "kg", "oz", "lb", "ml", "l", "fl_oz"}

// Proportion is a parsed proportion string such as "60%" or "50g".
type Proportion struct {
	Value decimal.Decimal
	Unit  string
}

type ProportionValidator struct {
	field string
}

func NewProportionValidator(field string) ProportionValidator {
	if field == "" {
		field = "proportion"
	}
	return ProportionValidator{field: field}
}

func (v ProportionValidator) Validate(value string) Result {
	_, res := v.Parse(value)
	return res
}

// Parse returns the magnitude and unit alongside the validation result.
// The Proportion is meaningful only when the result is valid.
func (v ProportionValidator) Parse(value string) (Proportion, Result) {
	raw := strings.ToLower(strings.TrimSpace(value))
	if raw == "" {
		return Proportion{}, fail(v.field, CodeRequired, "proportion must be non-empty",
			`use a percentage like "60%"`, `or a quantity like "50g"`)
	}

	m := proportionPattern.FindStringSubmatch(raw)
	if m == nil {
		return Proportion{}, v.explain(raw)
	}

	amount, err := decimal.NewFromString(m[1])
	if err != nil {
		return Proportion{}, fail(v.field, CodeNotNumeric, fmt.Sprintf("proportion %q is not numeric", value))
	}
	unit := m[2]

	if !amount.IsPositive() {
		return Proportion{}, fail(v.field, CodeNotPositive, "proportion must be greater than zero")
	}
	if unit == UnitPercent && amount.GreaterThan(percentCeiling) {
		return Proportion{}, fail(v.field, CodeOutOfRange, "percentage proportion must not exceed 100%")
	}

	return Proportion{Value: amount, Unit: unit}, ok(v.field)
}

func (v ProportionValidator) explain(raw string) Result {
	if strings.HasPrefix(raw, "-") {
		return fail(v.field, CodeNotPositive, "proportion must be greater than zero")
	}
	m := numberPrefix.FindStringSubmatch(raw)
	if m == nil {
		return fail(v.field, CodeNotNumeric, fmt.Sprintf("proportion %q must start with a number", raw),
			`use a percentage like "60%"`, `or a quantity like "50g"`)
	}
	if m[2] == "" {
		return fail(v.field, CodeUnsupportedUnit, "proportion is missing a unit", ProportionUnits...)
	}
	return fail(v.field, CodeUnsupportedUnit, fmt.Sprintf("unit %q is not supported", m[2]), ProportionUnits...)
}
