// Package credential hands out the API key used for remote calls, prompting
// for a new one when the remote rejects the current key.
package credential

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"github.com/lithiumheat/studio"
)

// Selector is an interactive key-selection mechanism.
type Selector interface {
	// HasSelectedKey reports whether a key was already selected.
	HasSelectedKey(ctx context.Context) (bool, error)

	// SelectKey prompts the user for a key and blocks until one is chosen.
	SelectKey(ctx context.Context) error

	// SelectedKey returns the current key, empty when none.
	SelectedKey() string
}

// Provider implements studio.CredentialSource over an optional Selector and
// a pre-provisioned fallback key.
type Provider struct {
	selector Selector
	fallback string
	logger   *slog.Logger

	prompts singleflight.Group
}

var _ studio.CredentialSource = (*Provider)(nil)

// ProviderOption configures a Provider.
type ProviderOption func(*Provider)

// WithLogger sets a structured logger for the provider.
func WithLogger(logger *slog.Logger) ProviderOption {
	return func(p *Provider) {
		p.logger = logger
	}
}

// NewProvider creates a Provider. With a nil selector every acquisition
// returns fallbackKey.
func NewProvider(selector Selector, fallbackKey string, opts ...ProviderOption) *Provider {
	p := &Provider{
		selector: selector,
		fallback: fallbackKey,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Acquire returns an API key.
//
// Non-forced acquisition reuses the selected key when there is one and
// prompts otherwise; forced acquisition always prompts. Prompts issued while
// another one is pending share its outcome.
func (p *Provider) Acquire(ctx context.Context, force bool) (string, error) {
	if p.selector == nil {
		if p.fallback == "" {
			return "", studio.ErrNoCredential
		}
		return p.fallback, nil
	}

	if !force {
		has, err := p.selector.HasSelectedKey(ctx)
		if err != nil {
			return "", fmt.Errorf("check selected key: %w", err)
		}
		if has {
			if key := p.selector.SelectedKey(); key != "" {
				return key, nil
			}
		}
	}

	v, err, shared := p.prompts.Do("select", func() (any, error) {
		p.logger.Info("prompting for API key selection", "forced", force)
		if err := p.selector.SelectKey(ctx); err != nil {
			return "", err
		}
		return p.selector.SelectedKey(), nil
	})
	if err != nil {
		return "", fmt.Errorf("select key: %w", err)
	}
	if shared {
		p.logger.Debug("joined pending key selection")
	}

	key, _ := v.(string)
	if key == "" {
		return "", studio.ErrNoCredential
	}
	return key, nil
}
