package validator

import (
	"regexp"
	"strings"
)

const (
	cidV0Length    = 46
	cidV1MinLength = 59
)

var (
	cidV0Pattern = regexp.MustCompile(`^Qm[1-9A-HJ-NP-Za-km-z]{44}$`)
	cidV1Pattern = regexp.MustCompile(`^b[a-z2-7]{58,}$`)
)

// CIDValidator accepts base58 CIDv0 ("Qm...") and base32 CIDv1 ("b...") identifiers.
type CIDValidator struct {
	field string
}

func NewCIDValidator(field string) CIDValidator {
	if field == "" {
		field = "cid"
	}
	return CIDValidator{field: field}
}

func (v CIDValidator) Validate(value string) Result {
	if strings.TrimSpace(value) == "" {
		return fail(v.field, CodeRequired, "content identifier must be non-empty")
	}
	if value != strings.TrimSpace(value) {
		return fail(v.field, CodeInvalidFormat, "content identifier must not contain surrounding whitespace",
			"remove leading and trailing spaces")
	}

	switch {
	case cidV0Pattern.MatchString(value), cidV1Pattern.MatchString(value):
		return ok(v.field)
	case strings.HasPrefix(value, "Qm"):
		if len(value) != cidV0Length {
			return fail(v.field, CodeInvalidLength, "CIDv0 must be exactly 46 characters",
				"check that the identifier was not truncated")
		}
		return fail(v.field, CodeInvalidFormat, "CIDv0 contains characters outside the base58 alphabet",
			"base58 excludes 0, O, I and l")
	case strings.HasPrefix(value, "b"):
		if len(value) < cidV1MinLength {
			return fail(v.field, CodeInvalidLength, "CIDv1 must be at least 59 characters",
				"check that the identifier was not truncated")
		}
		return fail(v.field, CodeInvalidFormat, "CIDv1 must use lowercase base32 characters",
			"allowed characters are a-z and 2-7")
	default:
		return fail(v.field, CodeInvalidFormat, "unrecognised content identifier",
			"CIDv0 starts with Qm", "CIDv1 starts with b")
	}
}
