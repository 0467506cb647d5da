// Package validator checks the primitive values that catalog entities are
// built from. Validators never fail with an error; every outcome is a Result.
package validator

const (
	CodeRequired        = "REQUIRED"
	CodeInvalidFormat   = "INVALID_FORMAT"
	CodeInvalidLength   = "INVALID_LENGTH"
	CodeNotNumeric      = "NOT_NUMERIC"
	CodeNotPositive     = "NOT_POSITIVE"
	CodeOutOfRange      = "OUT_OF_RANGE"
	CodeUnsupportedUnit = "UNSUPPORTED_UNIT"
)

type Result struct {
	IsValid      bool
	ErrorMessage string
	FieldName    string
	ErrorCode    string
	Suggestions  []string
}

func ok(field string) Result {
	return Result{IsValid: true, FieldName: field}
}

func fail(field, code, msg string, suggestions ...string) Result {
	return Result{
		FieldName:    field,
		ErrorCode:    code,
		ErrorMessage: msg,
		Suggestions:  suggestions,
	}
}
