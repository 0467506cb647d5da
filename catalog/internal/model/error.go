package model

import (
	"errors"
	"fmt"

	"github.com/you-humble/biomarket/catalog/internal/validator"
)

var (
	ErrValidation              = errors.New("validation failed")
	ErrProductNotFound         = errors.New("product not found")
	ErrUnsupportedCurrency     = errors.New("unsupported currency")
	ErrUnsupportedUnit         = errors.New("unsupported unit")
	ErrNotWeightBased          = errors.New("price is not weight based")
	ErrNotVolumeBased          = errors.New("price is not volume based")
	ErrInconsistentProportions = errors.New("inconsistent component proportions")
	ErrBadGateway              = errors.New("content store unavailable")
)

// ValidationError names the field that broke an entity invariant.
type ValidationError struct {
	Field       string
	Code        string
	Message     string
	Suggestions []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func newValidationError(field, code, msg string) *ValidationError {
	return &ValidationError{Field: field, Code: code, Message: msg}
}

func fromResult(res validator.Result) error {
	if res.IsValid {
		return nil
	}
	return &ValidationError{
		Field:       res.FieldName,
		Code:        res.ErrorCode,
		Message:     res.ErrorMessage,
		Suggestions: res.Suggestions,
	}
}

// prefixed rewrites nested validation errors so Field carries the full path,
// e.g. "organic_components[1].proportion".
func prefixed(prefix string, err error) error {
	if err == nil {
		return nil
	}

	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		errs := joined.Unwrap()
		out := make([]error, 0, len(errs))
		for _, e := range errs {
			out = append(out, prefixed(prefix, e))
		}
		return errors.Join(out...)
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		cp := *ve
		if ve.Field != prefix {
			cp.Field = prefix + "." + ve.Field
		}
		return &cp
	}

	return fmt.Errorf("%s: %w", prefix, err)
}

// ValidationErrors flattens err into the validation failures it carries.
func ValidationErrors(err error) []*ValidationError {
	switch e := err.(type) {
	case nil:
		return nil
	case *ValidationError:
		return []*ValidationError{e}
	case interface{ Unwrap() []error }:
		var out []*ValidationError
		for _, inner := range e.Unwrap() {
			out = append(out, ValidationErrors(inner)...)
		}
		return out
	case interface{ Unwrap() error }:
		return ValidationErrors(e.Unwrap())
	}
	return nil
}
