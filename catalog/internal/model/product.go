package model

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"

	"github.com/you-humble/biomarket/catalog/internal/validator"
)

type ProductStatus int

const (
	ProductStatusInactive ProductStatus = 0
	ProductStatusActive   ProductStatus = 1
)

var percentTolerance = decimal.RequireFromString("0.01")

type ProductParams struct {
	BusinessID        string
	BlockchainID      int64
	Status            ProductStatus
	CID               string
	Title             string
	OrganicComponents []*OrganicComponent
	CoverImageCID     string
	Categories        []string
	Forms             []string
	Species           []string
	Prices            []*PriceInfo
	// ImageURL is the resolved gateway URL of the cover image, if known.
	ImageURL string
}

func (p ProductParams) Validate() error {
	var errs []error

	if strings.TrimSpace(p.BusinessID) == "" {
		errs = append(errs, newValidationError("business_id", validator.CodeRequired, "business id must be non-empty"))
	}
	if p.Status != ProductStatusInactive && p.Status != ProductStatusActive {
		errs = append(errs, newValidationError("status", validator.CodeOutOfRange, "status must be 0 or 1"))
	}
	if strings.TrimSpace(p.Title) == "" {
		errs = append(errs, newValidationError("title", validator.CodeRequired, "title must be non-empty"))
	}
	if len(lo.Compact(p.Species)) == 0 {
		errs = append(errs, newValidationError("species", validator.CodeRequired, "species must be non-empty"))
	}
	if err := fromResult(validator.NewCIDValidator("cover_image_url").Validate(p.CoverImageCID)); err != nil {
		errs = append(errs, err)
	}
	if len(p.OrganicComponents) == 0 {
		errs = append(errs, newValidationError("organic_components", validator.CodeRequired,
			"at least one organic component is required"))
	} else if lo.Contains(p.OrganicComponents, nil) {
		errs = append(errs, newValidationError("organic_components", validator.CodeRequired,
			"organic components must not contain nil entries"))
	}
	if len(p.Prices) == 0 {
		errs = append(errs, newValidationError("prices", validator.CodeRequired, "at least one price is required"))
	} else if lo.Contains(p.Prices, nil) {
		errs = append(errs, newValidationError("prices", validator.CodeRequired, "prices must not contain nil entries"))
	}

	return errors.Join(errs...)
}

// Product is a sellable catalog entry. Instances are not modified after
// construction; enrichment returns copies.
type Product struct {
	businessID    string
	blockchainID  int64
	status        ProductStatus
	cid           string
	title         string
	components    []*OrganicComponent
	coverImageCID string
	categories    []string
	forms         []string
	species       []string
	prices        []*PriceInfo
	imageURL      string
}

// NewProduct does not check proportion consistency; see ValidateProportions.
func NewProduct(p ProductParams) (*Product, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	return &Product{
		businessID:    p.BusinessID,
		blockchainID:  p.BlockchainID,
		status:        p.Status,
		cid:           p.CID,
		title:         p.Title,
		components:    append([]*OrganicComponent(nil), p.OrganicComponents...),
		coverImageCID: p.CoverImageCID,
		categories:    stringsOrEmpty(p.Categories),
		forms:         stringsOrEmpty(p.Forms),
		species:       stringsOrEmpty(p.Species),
		prices:        append([]*PriceInfo(nil), p.Prices...),
		imageURL:      p.ImageURL,
	}, nil
}

type productMapping struct {
	BusinessID        string           `mapstructure:"business_id"`
	BlockchainID      int64            `mapstructure:"blockchain_id"`
	Status            int              `mapstructure:"status"`
	CID               string           `mapstructure:"cid"`
	Title             string           `mapstructure:"title"`
	OrganicComponents []map[string]any `mapstructure:"organic_components"`
	CoverImageCID     string           `mapstructure:"cover_image_url"`
	ImageURL          string           `mapstructure:"image_url"`
	Categories        []string         `mapstructure:"categories"`
	Forms             []string         `mapstructure:"forms"`
	Species           []string         `mapstructure:"species"`
	Prices            []map[string]any `mapstructure:"prices"`
}

// ProductFromMapping builds a Product from its wire mapping. Every component
// and price is validated; all failures are reported together.
func ProductFromMapping(m map[string]any) (*Product, error) {
	var raw productMapping
	if err := decodeMapping(m, &raw); err != nil {
		return nil, err
	}

	var errs []error

	components := make([]*OrganicComponent, 0, len(raw.OrganicComponents))
	for i, cm := range raw.OrganicComponents {
		c, err := OrganicComponentFromMapping(cm)
		if err != nil {
			errs = append(errs, prefixed(fmt.Sprintf("organic_components[%d]", i), err))
			continue
		}
		components = append(components, c)
	}

	prices := make([]*PriceInfo, 0, len(raw.Prices))
	for i, pm := range raw.Prices {
		p, err := PriceInfoFromMapping(pm)
		if err != nil {
			errs = append(errs, prefixed(fmt.Sprintf("prices[%d]", i), err))
			continue
		}
		prices = append(prices, p)
	}

	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}

	return NewProduct(ProductParams{
		BusinessID:        raw.BusinessID,
		BlockchainID:      raw.BlockchainID,
		Status:            ProductStatus(raw.Status),
		CID:               raw.CID,
		Title:             raw.Title,
		OrganicComponents: components,
		CoverImageCID:     raw.CoverImageCID,
		Categories:        raw.Categories,
		Forms:             raw.Forms,
		Species:           raw.Species,
		Prices:            prices,
		ImageURL:          raw.ImageURL,
	})
}

func (p *Product) BusinessID() string    { return p.businessID }
func (p *Product) BlockchainID() int64   { return p.blockchainID }
func (p *Product) Status() ProductStatus { return p.status }
func (p *Product) IsActive() bool        { return p.status == ProductStatusActive }
func (p *Product) CID() string           { return p.cid }
func (p *Product) Title() string         { return p.title }
func (p *Product) CoverImageCID() string { return p.coverImageCID }
func (p *Product) ImageURL() string      { return p.imageURL }
func (p *Product) Categories() []string  { return stringsOrEmpty(p.categories) }
func (p *Product) Forms() []string       { return stringsOrEmpty(p.forms) }
func (p *Product) Species() []string     { return stringsOrEmpty(p.species) }

func (p *Product) OrganicComponents() []*OrganicComponent {
	return append([]*OrganicComponent(nil), p.components...)
}

func (p *Product) Prices() []*PriceInfo {
	return append([]*PriceInfo(nil), p.prices...)
}

// ValidateProportions reports whether all components use one proportion kind
// and, for percentages, whether they add up to 100 within 0.01.
func (p *Product) ValidateProportions() bool {
	kinds := lo.Uniq(lo.Map(p.components, func(c *OrganicComponent, _ int) ProportionKind {
		return c.ProportionKind()
	}))
	if len(kinds) != 1 {
		return false
	}

	switch kinds[0] {
	case ProportionPercentage:
		diff := p.TotalProportion().Sub(decimal.NewFromInt(100)).Abs()
		return diff.LessThanOrEqual(percentTolerance)
	default:
		return lo.EveryBy(p.components, func(c *OrganicComponent) bool {
			return c.ProportionValue().IsPositive()
		})
	}
}

// PriceQuery selects a variant. Dimensions left nil are not compared.
type PriceQuery struct {
	Weight     *decimal.Decimal
	WeightUnit WeightUnit
	Volume     *decimal.Decimal
	VolumeUnit VolumeUnit
	Currency   Currency
}

// Price returns the first variant matching q exactly.
func (p *Product) Price(q PriceQuery) (*PriceInfo, bool) {
	return lo.Find(p.prices, func(pi *PriceInfo) bool {
		if pi.currency != q.Currency {
			return false
		}
		if q.Weight != nil && (!decimalPtrEqual(pi.weight, q.Weight) || pi.weightUnit != q.WeightUnit) {
			return false
		}
		if q.Volume != nil && (!decimalPtrEqual(pi.volume, q.Volume) || pi.volumeUnit != q.VolumeUnit) {
			return false
		}
		return true
	})
}

// MinPrice compares raw amounts across all variants regardless of currency.
func (p *Product) MinPrice() decimal.Decimal {
	return lo.MinBy(p.prices, func(a, b *PriceInfo) bool {
		return a.price.LessThan(b.price)
	}).price
}

func (p *Product) ComponentByBiounitID(id string) (*OrganicComponent, bool) {
	return lo.Find(p.components, func(c *OrganicComponent) bool {
		return c.biounitID == id
	})
}

func (p *Product) ComponentsByProportionType(kind ProportionKind) []*OrganicComponent {
	return lo.Filter(p.components, func(c *OrganicComponent, _ int) bool {
		return c.kind == kind
	})
}

// TotalProportion sums component magnitudes without unit conversion.
func (p *Product) TotalProportion() decimal.Decimal {
	return lo.Reduce(p.components, func(acc decimal.Decimal, c *OrganicComponent, _ int) decimal.Decimal {
		return acc.Add(c.value)
	}, decimal.Zero)
}

// Enriched returns a copy with descriptions attached by description CID and
// the cover image URL set. Components without a matching entry keep theirs.
func (p *Product) Enriched(descriptions map[string]*Description, imageURL string) *Product {
	cp := *p
	cp.components = lo.Map(p.components, func(c *OrganicComponent, _ int) *OrganicComponent {
		if d, ok := descriptions[c.descriptionCID]; ok && d != nil {
			return c.WithDescription(d)
		}
		return c
	})
	if imageURL != "" {
		cp.imageURL = imageURL
	}
	return &cp
}

// Source returns a copy stripped of enrichment: no resolved image URL and no
// embedded component descriptions.
func (p *Product) Source() *Product {
	cp := *p
	cp.imageURL = ""
	cp.components = lo.Map(p.components, func(c *OrganicComponent, _ int) *OrganicComponent {
		return c.WithDescription(nil)
	})
	return &cp
}

func (p *Product) ToMapping() map[string]any {
	m := map[string]any{
		"business_id":   p.businessID,
		"blockchain_id": p.blockchainID,
		"status":        int(p.status),
		"cid":           p.cid,
		"title":         p.title,
		"organic_components": lo.Map(p.components, func(c *OrganicComponent, _ int) map[string]any {
			return c.ToMapping()
		}),
		"cover_image_url": p.coverImageCID,
		"categories":      stringsOrEmpty(p.categories),
		"forms":           stringsOrEmpty(p.forms),
		"species":         stringsOrEmpty(p.species),
		"prices": lo.Map(p.prices, func(pi *PriceInfo, _ int) map[string]any {
			return pi.ToMapping()
		}),
	}
	if p.imageURL != "" {
		m["image_url"] = p.imageURL
	}
	return m
}

func (p *Product) MarshalJSON() ([]byte, error) {
	return json.Marshal(p.ToMapping())
}

func (p *Product) Equal(o *Product) bool {
	if p == nil || o == nil {
		return p == o
	}
	if p.businessID != o.businessID ||
		p.blockchainID != o.blockchainID ||
		p.status != o.status ||
		p.cid != o.cid ||
		p.title != o.title ||
		p.coverImageCID != o.coverImageCID ||
		p.imageURL != o.imageURL ||
		!slices.Equal(p.categories, o.categories) ||
		!slices.Equal(p.forms, o.forms) ||
		!slices.Equal(p.species, o.species) ||
		len(p.components) != len(o.components) ||
		len(p.prices) != len(o.prices) {
		return false
	}
	for i := range p.components {
		if !p.components[i].Equal(o.components[i]) {
			return false
		}
	}
	for i := range p.prices {
		if !p.prices[i].Equal(o.prices[i]) {
			return false
		}
	}
	return true
}
