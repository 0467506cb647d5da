package validator

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	validCIDv0 = "QmYwAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG"
	validCIDv1 = "bafybeigdyrzt5sfp7udm7hu76uh7y26nf3efuylqabf3oclgtqy55fbzdi"
)

func TestCIDValidator(t *testing.T) {
	t.Parallel()

	v := NewCIDValidator("description_cid")

	tests := []struct {
		name  string
		value string
		valid bool
		code  string
	}{
		{name: "cid v0", value: validCIDv0, valid: true},
		{name: "cid v1", value: validCIDv1, valid: true},
		{name: "empty", value: "", code: CodeRequired},
		{name: "blank", value: "   ", code: CodeRequired},
		{name: "surrounding whitespace", value: " " + validCIDv0, code: CodeInvalidFormat},
		{name: "truncated v0", value: validCIDv0[:20], code: CodeInvalidLength},
		{name: "v0 with zero", value: "Qm0wAPJzv5CZsnA625s3Xf2nemtYgPpHdWEz79ojWnPbdG", code: CodeInvalidFormat},
		{name: "truncated v1", value: validCIDv1[:30], code: CodeInvalidLength},
		{name: "v1 uppercase", value: "bAFYBEIGDYRZT5SFP7UDM7HU76UH7Y26NF3EFUYLQABF3OCLGTQY55FBZDI", code: CodeInvalidFormat},
		{name: "garbage", value: "not-a-cid", code: CodeInvalidFormat},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			res := v.Validate(tt.value)
			assert.Equal(t, tt.valid, res.IsValid)
			assert.Equal(t, "description_cid", res.FieldName)
			assert.Equal(t, tt.code, res.ErrorCode)
			if !tt.valid {
				assert.NotEmpty(t, res.ErrorMessage)
			}
		})
	}
}

func TestProportionValidator(t *testing.T) {
	t.Parallel()

	v := NewProportionValidator("")

	tests := []struct {
		name  string
		value string
		want  Proportion
		code  string
	}{
		{name: "percent", value: "60%", want: Proportion{Value: decimal.NewFromInt(60), Unit: "%"}},
		{name: "hundred percent", value: "100%", want: Proportion{Value: decimal.NewFromInt(100), Unit: "%"}},
		{name: "fractional percent", value: "33.33%", want: Proportion{Value: decimal.RequireFromString("33.33"), Unit: "%"}},
		{name: "grams", value: "50g", want: Proportion{Value: decimal.NewFromInt(50), Unit: "g"}},
		{name: "space before unit", value: "1.5 kg", want: Proportion{Value: decimal.RequireFromString("1.5"), Unit: "kg"}},
		{name: "fluid ounces", value: "2fl_oz", want: Proportion{Value: decimal.NewFromInt(2), Unit: "fl_oz"}},
		{name: "litres", value: "3l", want: Proportion{Value: decimal.NewFromInt(3), Unit: "l"}},
		{name: "upper case unit", value: "30ML", want: Proportion{Value: decimal.NewFromInt(30), Unit: "ml"}},
		{name: "empty", value: "", code: CodeRequired},
		{name: "not numeric", value: "lots%", code: CodeNotNumeric},
		{name: "unknown unit", value: "5 stone", code: CodeUnsupportedUnit},
		{name: "missing unit", value: "50", code: CodeUnsupportedUnit},
		{name: "over hundred", value: "100.5%", code: CodeOutOfRange},
		{name: "zero", value: "0g", code: CodeNotPositive},
		{name: "negative", value: "-5%", code: CodeNotPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, res := v.Parse(tt.value)
			assert.Equal(t, "proportion", res.FieldName)
			if tt.code != "" {
				assert.False(t, res.IsValid)
				assert.Equal(t, tt.code, res.ErrorCode)
				return
			}

			require.True(t, res.IsValid, res.ErrorMessage)
			assert.True(t, tt.want.Value.Equal(got.Value), "got %s", got.Value)
			assert.Equal(t, tt.want.Unit, got.Unit)
			assert.True(t, v.Validate(tt.value).IsValid)
		})
	}
}

func TestProportionValidatorSuggestsUnits(t *testing.T) {
	t.Parallel()

	res := NewProportionValidator("").Validate("12 cups")
	require.False(t, res.IsValid)
	assert.ElementsMatch(t, ProportionUnits, res.Suggestions)
}

func TestPriceValidator(t *testing.T) {
	t.Parallel()

	v := NewPriceValidator("price")

	tests := []struct {
		name  string
		value any
		want  string
		code  string
	}{
		{name: "decimal", value: decimal.RequireFromString("12.50"), want: "12.5"},
		{name: "decimal pointer", value: func() *decimal.Decimal { d := decimal.NewFromInt(3); return &d }(), want: "3"},
		{name: "string", value: " 9.99 ", want: "9.99"},
		{name: "int", value: 42, want: "42"},
		{name: "int64", value: int64(7), want: "7"},
		{name: "float", value: 0.1, want: "0.1"},
		{name: "float32", value: float32(2.5), want: "2.5"},
		{name: "json number", value: json.Number("12345678901234567.89"), want: "12345678901234567.89"},
		{name: "json number fraction", value: json.Number("0.123456789012345678"), want: "0.123456789012345678"},
		{name: "json number garbage", value: json.Number("1e"), code: CodeNotNumeric},
		{name: "nil", value: nil, code: CodeRequired},
		{name: "blank string", value: "  ", code: CodeRequired},
		{name: "word", value: "free", code: CodeNotNumeric},
		{name: "bool", value: true, code: CodeNotNumeric},
		{name: "nan", value: math.NaN(), code: CodeNotNumeric},
		{name: "zero", value: 0, code: CodeNotPositive},
		{name: "negative string", value: "-1.00", code: CodeNotPositive},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, res := v.Parse(tt.value)
			if tt.code != "" {
				assert.False(t, res.IsValid)
				assert.Equal(t, tt.code, res.ErrorCode)
				assert.True(t, got.IsZero())
				return
			}

			require.True(t, res.IsValid, res.ErrorMessage)
			assert.Equal(t, tt.want, got.String())
		})
	}
}
