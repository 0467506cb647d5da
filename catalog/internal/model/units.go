package model

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type WeightUnit string

const (
	WeightUnitGram     WeightUnit = "g"
	WeightUnitKilogram WeightUnit = "kg"
	WeightUnitOunce    WeightUnit = "oz"
	WeightUnitPound    WeightUnit = "lb"
)

// Factors to grams.
var weightFactors = map[WeightUnit]decimal.Decimal{
	WeightUnitGram:     decimal.NewFromInt(1),
	WeightUnitKilogram: decimal.NewFromInt(1000),
	WeightUnitOunce:    decimal.RequireFromString("28.35"),
	WeightUnitPound:    decimal.RequireFromString("453.59237"),
}

func ParseWeightUnit(s string) (WeightUnit, error) {
	u := WeightUnit(strings.ToLower(strings.TrimSpace(s)))
	if !u.Valid() {
		return "", fmt.Errorf("%w: weight unit %q", ErrUnsupportedUnit, s)
	}
	return u, nil
}

func (u WeightUnit) Valid() bool {
	_, ok := weightFactors[u]
	return ok
}

func (u WeightUnit) Factor() decimal.Decimal { return weightFactors[u] }

type VolumeUnit string

const (
	VolumeUnitMilliliter VolumeUnit = "ml"
	VolumeUnitLiter      VolumeUnit = "l"
	VolumeUnitFluidOunce VolumeUnit = "fl_oz"
)

// Factors to milliliters.
var volumeFactors = map[VolumeUnit]decimal.Decimal{
	VolumeUnitMilliliter: decimal.NewFromInt(1),
	VolumeUnitLiter:      decimal.NewFromInt(1000),
	VolumeUnitFluidOunce: decimal.RequireFromString("29.5735"),
}

func ParseVolumeUnit(s string) (VolumeUnit, error) {
	u := VolumeUnit(strings.ToLower(strings.TrimSpace(s)))
	if !u.Valid() {
		return "", fmt.Errorf("%w: volume unit %q", ErrUnsupportedUnit, s)
	}
	return u, nil
}

func (u VolumeUnit) Valid() bool {
	_, ok := volumeFactors[u]
	return ok
}

func (u VolumeUnit) Factor() decimal.Decimal { return volumeFactors[u] }

type Currency string

const (
	CurrencyEUR  Currency = "EUR"
	CurrencyUSD  Currency = "USD"
	CurrencyGBP  Currency = "GBP"
	CurrencyJPY  Currency = "JPY"
	CurrencyRUB  Currency = "RUB"
	CurrencyCNY  Currency = "CNY"
	CurrencyUSDT Currency = "USDT"
	CurrencyETH  Currency = "ETH"
	CurrencyBTC  Currency = "BTC"
)

const (
	standardPrecision = 2
	cryptoPrecision   = 8
)

var currencySymbols = map[Currency]string{
	CurrencyEUR:  "€",
	CurrencyUSD:  "$",
	CurrencyGBP:  "£",
	CurrencyJPY:  "¥",
	CurrencyRUB:  "₽",
	CurrencyCNY:  "CN¥",
	CurrencyUSDT: "₮",
	CurrencyETH:  "Ξ",
	CurrencyBTC:  "₿",
}

// Currencies shown with 8 decimal places. USDT is a stablecoin and keeps 2.
var highPrecisionCurrencies = map[Currency]struct{}{
	CurrencyBTC: {},
	CurrencyETH: {},
}

func SupportedCurrencies() []Currency {
	return []Currency{
		CurrencyEUR, CurrencyUSD, CurrencyGBP, CurrencyJPY, CurrencyRUB,
		CurrencyCNY, CurrencyUSDT, CurrencyETH, CurrencyBTC,
	}
}

func ParseCurrency(s string) (Currency, error) {
	c := Currency(strings.ToUpper(strings.TrimSpace(s)))
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedCurrency, s)
	}
	return c, nil
}

func (c Currency) Valid() bool {
	_, ok := currencySymbols[c]
	return ok
}

func (c Currency) Symbol() string { return currencySymbols[c] }

func (c Currency) Precision() int32 {
	if _, ok := highPrecisionCurrencies[c]; ok {
		return cryptoPrecision
	}
	return standardPrecision
}

func (c Currency) IsCrypto() bool {
	switch c {
	case CurrencyBTC, CurrencyETH, CurrencyUSDT:
		return true
	default:
		return false
	}
}

type ProportionKind string

const (
	ProportionPercentage ProportionKind = "percentage"
	ProportionWeight     ProportionKind = "weight"
	ProportionVolume     ProportionKind = "volume"
)

func proportionKindOf(unit string) ProportionKind {
	switch {
	case unit == "%":
		return ProportionPercentage
	case WeightUnit(unit).Valid():
		return ProportionWeight
	case VolumeUnit(unit).Valid():
		return ProportionVolume
	default:
		return ""
	}
}
