package llm

import "context"

// UnavailableProvider fails every request. It stands in when no provider
// is configured so features that need the model degrade instead of crash.
type UnavailableProvider struct {
	Reason error
}

// NewUnavailableProvider returns a provider that always fails with reason.
func NewUnavailableProvider(reason error) *UnavailableProvider {
	return &UnavailableProvider{Reason: reason}
}

// Generate always returns *ErrProviderUnavailable.
func (p *UnavailableProvider) Generate(_ context.Context, _ Request) (*Response, error) {
	return nil, &ErrProviderUnavailable{Err: p.Reason}
}

// ModelID returns "none".
func (p *UnavailableProvider) ModelID() string {
	return "none"
}
