package model

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/you-humble/biomarket/catalog/internal/validator"
)

type PriceParams struct {
	Price      any    `mapstructure:"price"`
	Currency   string `mapstructure:"currency"`
	Weight     any    `mapstructure:"weight"`
	WeightUnit string `mapstructure:"weight_unit"`
	Volume     any    `mapstructure:"volume"`
	VolumeUnit string `mapstructure:"volume_unit"`
	Form       string `mapstructure:"form"`
}

func (p PriceParams) Validate() error {
	_, err := p.normalize()
	return err
}

func (p PriceParams) normalize() (*PriceInfo, error) {
	var errs []error
	out := &PriceInfo{form: strings.TrimSpace(p.Form)}

	price, res := validator.NewPriceValidator("price").Parse(p.Price)
	if err := fromResult(res); err != nil {
		errs = append(errs, err)
	}
	out.price = price

	currency, err := ParseCurrency(p.Currency)
	if err != nil {
		errs = append(errs, &ValidationError{
			Field:       "currency",
			Code:        "UNSUPPORTED_CURRENCY",
			Message:     fmt.Sprintf("currency %q is not supported", p.Currency),
			Suggestions: currencyCodes(),
		})
	}
	out.currency = currency

	weight, hasWeight, err := validator.ToDecimal(p.Weight)
	hasWeightUnit := strings.TrimSpace(p.WeightUnit) != ""
	volume, hasVolume, verr := validator.ToDecimal(p.Volume)
	hasVolumeUnit := strings.TrimSpace(p.VolumeUnit) != ""

	if (hasWeight || hasWeightUnit) && (hasVolume || hasVolumeUnit) {
		errs = append(errs, newValidationError("volume", "MUTUALLY_EXCLUSIVE",
			"weight and volume cannot both be set"))
	}

	switch {
	case hasWeight && !hasWeightUnit:
		errs = append(errs, newValidationError("weight_unit", validator.CodeRequired,
			"weight unit is required when weight is set"))
	case !hasWeight && hasWeightUnit:
		errs = append(errs, newValidationError("weight", validator.CodeRequired,
			"weight is required when weight unit is set"))
	case hasWeight:
		if err != nil || !weight.IsPositive() {
			errs = append(errs, fromResult(validator.NewPriceValidator("weight").Validate(p.Weight)))
		}
		unit, uerr := ParseWeightUnit(p.WeightUnit)
		if uerr != nil {
			errs = append(errs, &ValidationError{
				Field:       "weight_unit",
				Code:        validator.CodeUnsupportedUnit,
				Message:     fmt.Sprintf("weight unit %q is not supported", p.WeightUnit),
				Suggestions: []string{"g", "kg", "oz", "lb"},
			})
		}
		out.weight, out.weightUnit = &weight, unit
	}

	switch {
	case hasVolume && !hasVolumeUnit:
		errs = append(errs, newValidationError("volume_unit", validator.CodeRequired,
			"volume unit is required when volume is set"))
	case !hasVolume && hasVolumeUnit:
		errs = append(errs, newValidationError("volume", validator.CodeRequired,
			"volume is required when volume unit is set"))
	case hasVolume:
		if verr != nil || !volume.IsPositive() {
			errs = append(errs, fromResult(validator.NewPriceValidator("volume").Validate(p.Volume)))
		}
		unit, uerr := ParseVolumeUnit(p.VolumeUnit)
		if uerr != nil {
			errs = append(errs, &ValidationError{
				Field:       "volume_unit",
				Code:        validator.CodeUnsupportedUnit,
				Message:     fmt.Sprintf("volume unit %q is not supported", p.VolumeUnit),
				Suggestions: []string{"ml", "l", "fl_oz"},
			})
		}
		out.volume, out.volumeUnit = &volume, unit
	}

	if err := errors.Join(errs...); err != nil {
		return nil, err
	}
	return out, nil
}

// PriceInfo is one priced variant of a product: by weight, by volume, or per item.
type PriceInfo struct {
	price      decimal.Decimal
	currency   Currency
	weight     *decimal.Decimal
	weightUnit WeightUnit
	volume     *decimal.Decimal
	volumeUnit VolumeUnit
	form       string
}

func NewPriceInfo(p PriceParams) (*PriceInfo, error) {
	return p.normalize()
}

func PriceInfoFromMapping(m map[string]any) (*PriceInfo, error) {
	var p PriceParams
	if err := decodeMapping(m, &p); err != nil {
		return nil, err
	}
	return NewPriceInfo(p)
}

func (p *PriceInfo) Price() decimal.Decimal { return p.price }
func (p *PriceInfo) Currency() Currency     { return p.currency }
func (p *PriceInfo) Form() string           { return p.form }
func (p *PriceInfo) WeightUnit() WeightUnit { return p.weightUnit }
func (p *PriceInfo) VolumeUnit() VolumeUnit { return p.volumeUnit }
func (p *PriceInfo) IsWeightBased() bool    { return p.weight != nil }
func (p *PriceInfo) IsVolumeBased() bool    { return p.volume != nil }
func (p *PriceInfo) IsUnitless() bool       { return p.weight == nil && p.volume == nil }

func (p *PriceInfo) Weight() (decimal.Decimal, bool) {
	if p.weight == nil {
		return decimal.Zero, false
	}
	return *p.weight, true
}

func (p *PriceInfo) Volume() (decimal.Decimal, bool) {
	if p.volume == nil {
		return decimal.Zero, false
	}
	return *p.volume, true
}

// ConvertWeight expresses the variant's weight in target units.
func (p *PriceInfo) ConvertWeight(target WeightUnit) (decimal.Decimal, error) {
	if p.weight == nil {
		return decimal.Zero, ErrNotWeightBased
	}
	if !target.Valid() {
		return decimal.Zero, fmt.Errorf("%w: weight unit %q", ErrUnsupportedUnit, target)
	}
	return p.weight.Mul(p.weightUnit.Factor()).Div(target.Factor()), nil
}

// ConvertVolume expresses the variant's volume in target units.
func (p *PriceInfo) ConvertVolume(target VolumeUnit) (decimal.Decimal, error) {
	if p.volume == nil {
		return decimal.Zero, ErrNotVolumeBased
	}
	if !target.Valid() {
		return decimal.Zero, fmt.Errorf("%w: volume unit %q", ErrUnsupportedUnit, target)
	}
	return p.volume.Mul(p.volumeUnit.Factor()).Div(target.Factor()), nil
}

// ConvertCurrency returns a new variant priced at price*rate in target.
func (p *PriceInfo) ConvertCurrency(target Currency, rate decimal.Decimal) (*PriceInfo, error) {
	if !target.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedCurrency, target)
	}
	if !rate.IsPositive() {
		return nil, newValidationError("rate", validator.CodeNotPositive, "exchange rate must be greater than zero")
	}

	cp := *p
	cp.price = p.price.Mul(rate)
	cp.currency = target
	return &cp, nil
}

// UnitPrice is the price per single target unit. An empty target uses the
// variant's own unit. Unit-less variants return the price itself.
func (p *PriceInfo) UnitPrice(target string) (decimal.Decimal, error) {
	switch {
	case p.weight != nil:
		qty := *p.weight
		if target != "" {
			unit, err := ParseWeightUnit(target)
			if err != nil {
				return decimal.Zero, err
			}
			if qty, err = p.ConvertWeight(unit); err != nil {
				return decimal.Zero, err
			}
		}
		return p.price.Div(qty), nil
	case p.volume != nil:
		qty := *p.volume
		if target != "" {
			unit, err := ParseVolumeUnit(target)
			if err != nil {
				return decimal.Zero, err
			}
			if qty, err = p.ConvertVolume(unit); err != nil {
				return decimal.Zero, err
			}
		}
		return p.price.Div(qty), nil
	default:
		return p.price, nil
	}
}

func (p *PriceInfo) FormatAmount() string {
	return p.price.StringFixed(p.currency.Precision())
}

func (p *PriceInfo) FormatPrice() string {
	return p.currency.Symbol() + p.FormatAmount()
}

// FormatFull renders e.g. "€12.50 / 100g (capsules)".
func (p *PriceInfo) FormatFull() string {
	var b strings.Builder
	b.WriteString(p.FormatPrice())

	switch {
	case p.weight != nil:
		b.WriteString(" / " + p.weight.String() + string(p.weightUnit))
	case p.volume != nil:
		b.WriteString(" / " + p.volume.String() + string(p.volumeUnit))
	}
	if p.form != "" {
		b.WriteString(" (" + p.form + ")")
	}

	return b.String()
}

func (p *PriceInfo) ToMapping() map[string]any {
	m := map[string]any{
		"price":    p.price.String(),
		"currency": string(p.currency),
	}
	if p.weight != nil {
		m["weight"] = p.weight.String()
		m["weight_unit"] = string(p.weightUnit)
	}
	if p.volume != nil {
		m["volume"] = p.volume.String()
		m["volume_unit"] = string(p.volumeUnit)
	}
	if p.form != "" {
		m["form"] = p.form
	}
	return m
}

func (p *PriceInfo) Equal(o *PriceInfo) bool {
	if p == nil || o == nil {
		return p == o
	}
	return p.price.Equal(o.price) &&
		p.currency == o.currency &&
		decimalPtrEqual(p.weight, o.weight) &&
		p.weightUnit == o.weightUnit &&
		decimalPtrEqual(p.volume, o.volume) &&
		p.volumeUnit == o.volumeUnit &&
		p.form == o.form
}

func decimalPtrEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

func currencyCodes() []string {
	out := make([]string, 0, len(currencySymbols))
	for _, c := range SupportedCurrencies() {
		out = append(out, string(c))
	}
	return out
}
