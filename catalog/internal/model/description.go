package model

import (
	"errors"
	"fmt"
	"strings"
)

type DosageInstruction struct {
	Type        string `mapstructure:"type" json:"type"`
	Title       string `mapstructure:"title" json:"title"`
	Description string `mapstructure:"description" json:"description"`
}

// Description is the text bundle stored on the content store for a component
// or product. Only Title and ScientificName are required.
type Description struct {
	Title              string              `mapstructure:"title" json:"title"`
	ScientificName     string              `mapstructure:"scientific_name" json:"scientific_name"`
	GenericDescription string              `mapstructure:"generic_description" json:"generic_description"`
	Effects            string              `mapstructure:"effects" json:"effects"`
	Warnings           string              `mapstructure:"warnings" json:"warnings"`
	DosageInstructions []DosageInstruction `mapstructure:"dosage_instructions" json:"dosage_instructions"`
}

func (d Description) Validate() error {
	var errs []error

	if strings.TrimSpace(d.Title) == "" {
		errs = append(errs, newValidationError("title", "REQUIRED", "title must be non-empty"))
	}
	if strings.TrimSpace(d.ScientificName) == "" {
		errs = append(errs, newValidationError("scientific_name", "REQUIRED", "scientific name must be non-empty"))
	}
	for i, di := range d.DosageInstructions {
		if strings.TrimSpace(di.Type) == "" {
			errs = append(errs, newValidationError(
				dosageField(i, "type"), "REQUIRED", "dosage type must be non-empty"))
		}
		if strings.TrimSpace(di.Title) == "" {
			errs = append(errs, newValidationError(
				dosageField(i, "title"), "REQUIRED", "dosage title must be non-empty"))
		}
	}

	return errors.Join(errs...)
}

func NewDescription(d Description) (*Description, error) {
	if err := d.Validate(); err != nil {
		return nil, err
	}

	return d.Clone(), nil
}

func DescriptionFromMapping(m map[string]any) (*Description, error) {
	var d Description
	if err := decodeMapping(m, &d); err != nil {
		return nil, err
	}
	return NewDescription(d)
}

func (d *Description) ToMapping() map[string]any {
	dosages := make([]any, 0, len(d.DosageInstructions))
	for _, di := range d.DosageInstructions {
		dosages = append(dosages, map[string]any{
			"type":        di.Type,
			"title":       di.Title,
			"description": di.Description,
		})
	}

	return map[string]any{
		"title":               d.Title,
		"scientific_name":     d.ScientificName,
		"generic_description": d.GenericDescription,
		"effects":             d.Effects,
		"warnings":            d.Warnings,
		"dosage_instructions": dosages,
	}
}

// Clone returns a deep copy. A nil receiver yields nil.
func (d *Description) Clone() *Description {
	if d == nil {
		return nil
	}
	out := *d
	if d.DosageInstructions != nil {
		out.DosageInstructions = make([]DosageInstruction, len(d.DosageInstructions))
		copy(out.DosageInstructions, d.DosageInstructions)
	}
	return &out
}

func (d *Description) Equal(o *Description) bool {
	if d == nil || o == nil {
		return d == o
	}
	if d.Title != o.Title ||
		d.ScientificName != o.ScientificName ||
		d.GenericDescription != o.GenericDescription ||
		d.Effects != o.Effects ||
		d.Warnings != o.Warnings ||
		len(d.DosageInstructions) != len(o.DosageInstructions) {
		return false
	}
	for i := range d.DosageInstructions {
		if d.DosageInstructions[i] != o.DosageInstructions[i] {
			return false
		}
	}
	return true
}

// DescriptionFrom accepts a Description, a pointer to one, or a mapping.
func DescriptionFrom(v any) (*Description, error) {
	switch d := v.(type) {
	case *Description:
		if d == nil {
			return nil, newValidationError("description", "REQUIRED", "description is nil")
		}
		return NewDescription(*d)
	case Description:
		return NewDescription(d)
	}

	if m, ok := asMapping(v); ok {
		return DescriptionFromMapping(m)
	}
	return nil, newValidationError("description", "INVALID_TYPE", "description must be a Description or a mapping")
}

func dosageField(i int, name string) string {
	return fmt.Sprintf("dosage_instructions[%d].%s", i, name)
}
