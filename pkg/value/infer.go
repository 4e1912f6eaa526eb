package value

import (
	"math"
	"strconv"
	"strings"
)

// Infer re-types a plain string into the narrowest matching variant:
// an integer if s parses as a base-10 integer, else a float if it parses as
// a finite decimal number, else a boolean for the literals "true" and
// "false", else the string itself.
//
// The coercion is lossy: "007" becomes Int(7) and "1.50" becomes Float(1.5).
func Infer(s string) Value {
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i)
	}
	if isDecimal(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil && !math.IsInf(f, 0) {
			return Float(f)
		}
	}
	switch s {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	}
	return String(s)
}

// isDecimal rejects the hex, "Inf" and "NaN" spellings ParseFloat accepts.
func isDecimal(s string) bool {
	if s == "" {
		return false
	}
	return strings.Trim(s, "0123456789+-.eE") == "" && strings.ContainsAny(s, "0123456789")
}
