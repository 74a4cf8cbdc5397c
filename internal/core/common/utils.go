package common

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/tidwall/gjson"
)

var (
	ErrNotObject   = errors.New("response is not a JSON object")
	ErrInvalidJSON = errors.New("response is not valid JSON")
)

// ParseObject accepts a response only when, once trimmed, it is exactly one
// JSON object. Surrounding prose or markdown fences are rejected.
func ParseObject(response string) (gjson.Result, error) {
	trimmed := strings.TrimSpace(response)
	if !strings.HasPrefix(trimmed, "{") || !strings.HasSuffix(trimmed, "}") {
		return gjson.Result{}, ErrNotObject
	}
	if !gjson.Valid(trimmed) {
		return gjson.Result{}, fmt.Errorf("%w: %.80s", ErrInvalidJSON, trimmed)
	}
	return gjson.Parse(trimmed), nil
}

// Float coerces a JSON number, or a string holding one, to float64.
func Float(v gjson.Result) (float64, bool) {
	switch v.Type {
	case gjson.Number:
		return v.Num, true
	case gjson.String:
		f, err := strconv.ParseFloat(strings.TrimSpace(v.Str), 64)
		if err != nil {
			return 0, false
		}
		return f, true
	default:
		return 0, false
	}
}
