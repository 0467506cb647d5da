package model

import (
	"fmt"

	"github.com/mitchellh/mapstructure"
)

// decodeMapping fills out from a loosely typed mapping. Numbers arriving as
// strings (and the reverse) are accepted; unknown keys are ignored.
func decodeMapping(in map[string]any, out any) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "mapstructure",
		WeaklyTypedInput: true,
		ZeroFields:       true,
	})
	if err != nil {
		return err
	}

	if err := dec.Decode(in); err != nil {
		return &ValidationError{Field: "mapping", Code: "INVALID_FORMAT", Message: fmt.Sprintf("decode: %v", err)}
	}
	return nil
}

func asMapping(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			key, ok := k.(string)
			if !ok {
				return nil, false
			}
			out[key] = val
		}
		return out, true
	default:
		return nil, false
	}
}

func stringsOrEmpty(s []string) []string {
	if s == nil {
		return []string{}
	}
	out := make([]string, len(s))
	copy(out, s)
	return out
}
