package header

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseInt evaluates an integer literal with optional C suffixes, and
// simple products like (56U * 1024U)
func ParseInt(raw string) (int64, error) {
	s := strings.TrimSpace(raw)
	for strings.HasPrefix(s, "(") && strings.HasSuffix(s, ")") {
		s = strings.TrimSpace(s[1 : len(s)-1])
	}
	if s == "" {
		return 0, fmt.Errorf("%w: empty integer", ErrInvalidValue)
	}

	if strings.Contains(s, "*") {
		product := int64(1)
		for _, factor := range strings.Split(s, "*") {
			v, err := ParseInt(factor)
			if err != nil {
				return 0, err
			}
			product *= v
		}
		return product, nil
	}

	s = strings.TrimRight(s, "uUlL")
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		u, uerr := strconv.ParseUint(s, 0, 64)
		if uerr != nil {
			return 0, fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, raw)
		}
		return int64(u), nil
	}
	return v, nil
}

// ParseUint is ParseInt for values that must not be negative
func ParseUint(raw string) (uint64, error) {
	s := strings.TrimRight(strings.TrimSpace(raw), "uUlL")
	if u, err := strconv.ParseUint(s, 0, 64); err == nil {
		return u, nil
	}
	v, err := ParseInt(raw)
	if err != nil {
		return 0, err
	}
	if v < 0 {
		return 0, fmt.Errorf("%w: %q is negative", ErrInvalidValue, raw)
	}
	return uint64(v), nil
}

// ParseFloat parses a float literal with an optional f suffix
func ParseFloat(raw string) (float64, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimRight(s, "fF")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrInvalidValue, raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("%w: %q is not a finite number", ErrInvalidValue, raw)
	}
	return v, nil
}

// ParseString unquotes a C string literal
func ParseString(raw string) (string, error) {
	s := strings.TrimSpace(raw)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return "", fmt.Errorf("%w: %q is not a string literal", ErrInvalidValue, raw)
	}
	return unescape(s[1 : len(s)-1]), nil
}

// ParseBool treats a flag macro, or a non-zero integer, as true
func ParseBool(raw string) (bool, error) {
	if strings.TrimSpace(raw) == "" {
		return true, nil
	}
	v, err := ParseInt(raw)
	if err != nil {
		return false, err
	}
	return v != 0, nil
}

// QuoteString renders s as a C string literal
func QuoteString(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "\n", `\n`, "\r", `\r`, "\t", `\t`)
	return `"` + r.Replace(s) + `"`
}
