package model

import (
	"errors"
	"regexp"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/you-humble/biomarket/catalog/internal/validator"
)

const maxBiounitIDLength = 50

var biounitIDPattern = regexp.MustCompile(`^[A-Za-z0-9_]+$`)

type ComponentParams struct {
	BiounitID      string `mapstructure:"biounit_id"`
	DescriptionCID string `mapstructure:"description_cid"`
	Proportion     string `mapstructure:"proportion"`
	// Description is optional: a *Description, a Description or a mapping.
	Description any `mapstructure:"description"`
}

func (p ComponentParams) Validate() error {
	var errs []error

	if err := validateBiounitID(p.BiounitID); err != nil {
		errs = append(errs, err)
	}
	if err := fromResult(validator.NewCIDValidator("description_cid").Validate(p.DescriptionCID)); err != nil {
		errs = append(errs, err)
	}
	if err := fromResult(validator.NewProportionValidator("proportion").Validate(p.Proportion)); err != nil {
		errs = append(errs, err)
	}
	if p.Description != nil {
		if _, err := DescriptionFrom(p.Description); err != nil {
			errs = append(errs, prefixed("description", err))
		}
	}

	return errors.Join(errs...)
}

// OrganicComponent is one ingredient and its share of a product.
type OrganicComponent struct {
	biounitID      string
	descriptionCID string
	proportion     string
	description    *Description

	value decimal.Decimal
	unit  string
	kind  ProportionKind
}

func NewOrganicComponent(p ComponentParams) (*OrganicComponent, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	parsed, _ := validator.NewProportionValidator("proportion").Parse(p.Proportion)

	c := &OrganicComponent{
		biounitID:      p.BiounitID,
		descriptionCID: p.DescriptionCID,
		proportion:     strings.TrimSpace(p.Proportion),
		value:          parsed.Value,
		unit:           parsed.Unit,
		kind:           proportionKindOf(parsed.Unit),
	}
	if p.Description != nil {
		c.description, _ = DescriptionFrom(p.Description)
	}

	return c, nil
}

func OrganicComponentFromMapping(m map[string]any) (*OrganicComponent, error) {
	var p ComponentParams
	if err := decodeMapping(m, &p); err != nil {
		return nil, err
	}
	return NewOrganicComponent(p)
}

func (c *OrganicComponent) BiounitID() string                { return c.biounitID }
func (c *OrganicComponent) DescriptionCID() string           { return c.descriptionCID }
func (c *OrganicComponent) Proportion() string               { return c.proportion }
func (c *OrganicComponent) Description() *Description        { return c.description.Clone() }
func (c *OrganicComponent) ProportionValue() decimal.Decimal { return c.value }

// ProportionUnit is "%" for percentages, otherwise the weight or volume unit.
func (c *OrganicComponent) ProportionUnit() string         { return c.unit }
func (c *OrganicComponent) ProportionKind() ProportionKind { return c.kind }
func (c *OrganicComponent) IsPercentage() bool             { return c.kind == ProportionPercentage }
func (c *OrganicComponent) IsWeightBased() bool            { return c.kind == ProportionWeight }
func (c *OrganicComponent) IsVolumeBased() bool            { return c.kind == ProportionVolume }

// WithDescription returns a copy carrying d. The receiver is not changed.
func (c *OrganicComponent) WithDescription(d *Description) *OrganicComponent {
	cp := *c
	cp.description = d.Clone()
	return &cp
}

func (c *OrganicComponent) ToMapping() map[string]any {
	m := map[string]any{
		"biounit_id":      c.biounitID,
		"description_cid": c.descriptionCID,
		"proportion":      c.proportion,
	}
	if c.description != nil {
		m["description"] = c.description.ToMapping()
	}
	return m
}

func (c *OrganicComponent) Equal(o *OrganicComponent) bool {
	if c == nil || o == nil {
		return c == o
	}
	return c.biounitID == o.biounitID &&
		c.descriptionCID == o.descriptionCID &&
		c.proportion == o.proportion &&
		c.description.Equal(o.description)
}

func validateBiounitID(id string) error {
	switch {
	case id == "":
		return newValidationError("biounit_id", validator.CodeRequired, "biounit id must be non-empty")
	case len(id) > maxBiounitIDLength:
		return newValidationError("biounit_id", validator.CodeInvalidLength, "biounit id must be at most 50 characters")
	case !biounitIDPattern.MatchString(id):
		return newValidationError("biounit_id", validator.CodeInvalidFormat, "biounit id may contain only letters, digits and underscores")
	}
	return nil
}
