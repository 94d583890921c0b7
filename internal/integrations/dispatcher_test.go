package integrations

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeProvider struct {
	name     string
	lastRes  string
	lastArgs map[string]any
	err      error
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Invoke(_ context.Context, resource string, params map[string]any) (map[string]any, error) {
	f.lastRes = resource
	f.lastArgs = params
	if f.err != nil {
		return nil, f.err
	}
	return map[string]any{"delivered": true}, nil
}

func TestProviderRegistry_RoutesByPrefix(t *testing.T) {
	reg := NewProviderRegistry()
	p := &fakeProvider{name: "sendgrid"}
	reg.Register(p)

	res := reg.Invoke(context.Background(), "sendgrid:welcome_email", map[string]any{"to": "ada@example.com"})
	require.True(t, res.OK)
	assert.Equal(t, "welcome_email", p.lastRes)
	assert.Equal(t, "ada@example.com", p.lastArgs["to"])
	assert.Equal(t, true, res.Output["delivered"])
}

func TestProviderRegistry_BareIDHasEmptyResource(t *testing.T) {
	reg := NewProviderRegistry()
	p := &fakeProvider{name: "stripe"}
	reg.Register(p)

	res := reg.Invoke(context.Background(), "stripe", nil)
	require.True(t, res.OK)
	assert.Empty(t, p.lastRes)
}

func TestProviderRegistry_UnknownProvider(t *testing.T) {
	reg := NewProviderRegistry()
	res := reg.Invoke(context.Background(), "nope:thing", nil)
	assert.False(t, res.OK)
	assert.Contains(t, res.Error, "unknown integration provider")
}

func TestProviderRegistry_ProviderErrorBecomesResult(t *testing.T) {
	reg := NewProviderRegistry()
	reg.Register(&fakeProvider{name: "stripe", err: errors.New("card declined")})

	res := reg.Invoke(context.Background(), "stripe:charge", nil)
	assert.False(t, res.OK)
	assert.Equal(t, "card declined", res.Error)
}
