package resolver

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/helixcrm/flowkit/pkg/schema"
)

// Value is the outcome of resolving a field reference against a trigger
// context. A missing value is a sentinel, never an error: conditions over
// absent data fail closed instead of crashing the run.
type Value struct {
	raw     any
	str     string
	num     float64
	isNum   bool
	missing bool
}

// Missing is the sentinel for references that did not resolve.
var Missing = Value{missing: true}

// IsMissing reports whether the reference resolved to nothing.
func (v Value) IsMissing() bool { return v.missing }

// Raw returns the underlying resolved value (nil when missing).
func (v Value) Raw() any { return v.raw }

// String returns the string form of the value ("" when missing).
func (v Value) String() string { return v.str }

// Number returns the numeric form and whether one exists. Numeric-looking
// strings ("150") count as numbers.
func (v Value) Number() (float64, bool) { return v.num, v.isNum }

// IsEmpty reports whether the value is missing, nil, or an empty string.
func (v Value) IsEmpty() bool {
	return v.missing || v.raw == nil || v.str == ""
}

// wrap builds a Value from a raw context entry, coercing numeric strings.
func wrap(raw any) Value {
	v := Value{raw: raw}
	switch t := raw.(type) {
	case nil:
		v.str = ""
	case string:
		v.str = t
		if n, err := strconv.ParseFloat(strings.TrimSpace(t), 64); err == nil && strings.TrimSpace(t) != "" {
			v.num = n
			v.isNum = true
		}
	case float64:
		v.str = strconv.FormatFloat(t, 'f', -1, 64)
		v.num = t
		v.isNum = true
	case int:
		v.str = strconv.Itoa(t)
		v.num = float64(t)
		v.isNum = true
	case int64:
		v.str = strconv.FormatInt(t, 10)
		v.num = float64(t)
		v.isNum = true
	case bool:
		v.str = strconv.FormatBool(t)
	default:
		v.str = fmt.Sprintf("%v", t)
	}
	return v
}

// Literal builds a Value from a declared literal token, applying the same
// numeric coercion as context lookups.
func Literal(token string) Value {
	return wrap(token)
}

// Resolve traverses a dotted path ("field", "company.address.city") through
// the context. Missing intermediate keys resolve to the Missing sentinel;
// resolution never fails. A top-level key containing dots wins over traversal.
func Resolve(ref string, ctx schema.ExecutionContext) Value {
	if ref == "" || ctx == nil {
		return Missing
	}

	if raw, ok := ctx[ref]; ok {
		return wrap(raw)
	}

	var current any = map[string]any(ctx)
	for _, seg := range strings.Split(ref, ".") {
		if seg == "" {
			return Missing
		}
		m, ok := current.(map[string]any)
		if !ok {
			return Missing
		}
		current, ok = m[seg]
		if !ok {
			return Missing
		}
	}
	return wrap(current)
}

// ResolveOperand resolves a declared operand the way condition right-hand
// sides and templated action parameters need it: quoted strings and bare
// numbers are literals, anything else is tried as a context path first and
// falls back to the literal token when the path does not resolve. This is
// what allows both field-to-field comparisons and plain values like "active".
func ResolveOperand(ref string, ctx schema.ExecutionContext) Value {
	if unquoted, ok := unquote(ref); ok {
		return Value{raw: unquoted, str: unquoted}
	}
	if _, err := strconv.ParseFloat(strings.TrimSpace(ref), 64); err == nil && strings.TrimSpace(ref) != "" {
		return Literal(ref)
	}
	if v := Resolve(ref, ctx); !v.IsMissing() {
		return v
	}
	return Literal(ref)
}

// unquote strips a matching pair of single or double quotes.
func unquote(s string) (string, bool) {
	if len(s) >= 2 {
		if (s[0] == '"' && s[len(s)-1] == '"') || (s[0] == '\'' && s[len(s)-1] == '\'') {
			return s[1 : len(s)-1], true
		}
	}
	return "", false
}
