package resolver

import (
	"testing"

	"github.com/helixcrm/flowkit/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext() schema.ExecutionContext {
	return schema.ExecutionContext{
		"name":   "Ada Lovelace",
		"amount": "150",
		"score":  92.5,
		"email":  "ada@example.com",
		"empty":  "",
		"company": map[string]any{
			"name": "Analytical Engines Ltd",
			"address": map[string]any{
				"city": "London",
			},
		},
		"weird.key": "direct",
	}
}

func TestResolve_TopLevelKey(t *testing.T) {
	v := Resolve("name", testContext())
	require.False(t, v.IsMissing())
	assert.Equal(t, "Ada Lovelace", v.String())
}

func TestResolve_NestedPath(t *testing.T) {
	v := Resolve("company.address.city", testContext())
	require.False(t, v.IsMissing())
	assert.Equal(t, "London", v.String())
}

func TestResolve_DirectKeyWithDotsWins(t *testing.T) {
	v := Resolve("weird.key", testContext())
	require.False(t, v.IsMissing())
	assert.Equal(t, "direct", v.String())
}

func TestResolve_MissingIsSentinelNotError(t *testing.T) {
	tests := []string{
		"nope",
		"company.missing",
		"company.address.city.deeper", // traversing into a scalar
		"name.sub",
		"",
	}
	for _, ref := range tests {
		v := Resolve(ref, testContext())
		assert.True(t, v.IsMissing(), "ref %q should be missing", ref)
		assert.True(t, v.IsEmpty())
		_, isNum := v.Number()
		assert.False(t, isNum)
	}
}

func TestResolve_NilContext(t *testing.T) {
	assert.True(t, Resolve("name", nil).IsMissing())
}

func TestResolve_NumericStringCoercion(t *testing.T) {
	v := Resolve("amount", testContext())
	require.False(t, v.IsMissing())
	assert.Equal(t, "150", v.String())
	n, ok := v.Number()
	require.True(t, ok)
	assert.Equal(t, 150.0, n)
}

func TestResolve_NativeNumber(t *testing.T) {
	v := Resolve("score", testContext())
	n, ok := v.Number()
	require.True(t, ok)
	assert.Equal(t, 92.5, n)
	assert.Equal(t, "92.5", v.String())
}

func TestResolve_NonNumericString(t *testing.T) {
	v := Resolve("email", testContext())
	_, ok := v.Number()
	assert.False(t, ok)
}

func TestResolveOperand_QuotedLiteral(t *testing.T) {
	// A quoted token is always a literal, even when a matching key exists.
	v := ResolveOperand(`"name"`, testContext())
	assert.Equal(t, "name", v.String())

	v = ResolveOperand("'150'", testContext())
	assert.Equal(t, "150", v.String())
	_, isNum := v.Number()
	assert.False(t, isNum, "quoted literals are not coerced")
}

func TestResolveOperand_BareNumberLiteral(t *testing.T) {
	v := ResolveOperand("100", testContext())
	n, ok := v.Number()
	require.True(t, ok)
	assert.Equal(t, 100.0, n)
}

func TestResolveOperand_PathWins(t *testing.T) {
	v := ResolveOperand("amount", testContext())
	n, ok := v.Number()
	require.True(t, ok)
	assert.Equal(t, 150.0, n)
}

func TestResolveOperand_FallsBackToLiteral(t *testing.T) {
	v := ResolveOperand("active", testContext())
	require.False(t, v.IsMissing())
	assert.Equal(t, "active", v.String())
}

func TestValue_IsEmpty(t *testing.T) {
	assert.True(t, Resolve("empty", testContext()).IsEmpty())
	assert.False(t, Resolve("name", testContext()).IsEmpty())
	assert.True(t, Missing.IsEmpty())
}
