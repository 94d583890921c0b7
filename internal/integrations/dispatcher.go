package integrations

import (
	"context"
	"strings"
	"sync"
)

// Result is the outcome of one integration invocation. Ordinary failures
// (network errors, 4xx/5xx from the provider) surface as OK=false with Error
// set; Invoke never returns a Go error for them.
type Result struct {
	OK     bool           `json:"ok"`
	Output map[string]any `json:"output,omitempty"`
	Error  string         `json:"error,omitempty"`
}

// Dispatcher routes integration step invocations to third-party adapters
// (payment, email, chat-notification providers). Implementations must be safe
// for concurrent use: many workflow runs share one dispatcher.
type Dispatcher interface {
	Invoke(ctx context.Context, integrationID string, params map[string]any) Result
}

// Provider is a single third-party adapter registered under a name.
// A Provider may return a Go error; the registry converts it into Result.Error.
type Provider interface {
	Name() string
	Invoke(ctx context.Context, resource string, params map[string]any) (map[string]any, error)
}

// ProviderRegistry is a thread-safe Dispatcher routing "provider:resource"
// integration IDs (e.g. "stripe:charge", "sendgrid:welcome_email") to
// registered providers. A bare ID without a colon is treated as the provider
// name with an empty resource.
type ProviderRegistry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewProviderRegistry creates an empty ProviderRegistry.
func NewProviderRegistry() *ProviderRegistry {
	return &ProviderRegistry{
		providers: make(map[string]Provider),
	}
}

// Register adds a provider. Later registrations with the same name replace
// earlier ones; integration wiring is owned by the surrounding application.
func (r *ProviderRegistry) Register(p Provider) {
	if p == nil || p.Name() == "" {
		return
	}
	r.mu.Lock()
	r.providers[p.Name()] = p
	r.mu.Unlock()
}

// Invoke dispatches to the provider named by the integration ID.
// All failure modes come back as Result values, never as panics or errors.
func (r *ProviderRegistry) Invoke(ctx context.Context, integrationID string, params map[string]any) Result {
	name, resource := splitIntegrationID(integrationID)

	r.mu.RLock()
	p, ok := r.providers[name]
	r.mu.RUnlock()

	if !ok {
		return Result{OK: false, Error: "unknown integration provider: " + name}
	}

	output, err := p.Invoke(ctx, resource, params)
	if err != nil {
		return Result{OK: false, Error: err.Error()}
	}
	return Result{OK: true, Output: output}
}

func splitIntegrationID(id string) (provider, resource string) {
	if i := strings.IndexByte(id, ':'); i >= 0 {
		return id[:i], id[i+1:]
	}
	return id, ""
}

var _ Dispatcher = (*ProviderRegistry)(nil)
