package studio

import (
	"log/slog"
	"time"
)

// Option configures the Orchestrator.
type Option func(*Orchestrator)

// WithLogger sets a structured logger for the orchestrator.
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) {
		o.logger = logger
	}
}

// WithSuggester enables SuggestPrompt.
func WithSuggester(s PromptSuggester) Option {
	return func(o *Orchestrator) {
		o.suggester = s
	}
}

// WithSleep replaces the backoff wait. Tests use it to observe delays.
func WithSleep(sleep SleepFunc) Option {
	return func(o *Orchestrator) {
		o.sleep = sleep
	}
}

// WithClock sets the time source stamped on generated images.
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		o.now = now
	}
}

// WithRunIDFunc sets the generator of run ids used when a request has none.
func WithRunIDFunc(f func() string) Option {
	return func(o *Orchestrator) {
		o.newRunID = f
	}
}

// NewOrchestrator creates an Orchestrator over an image client and a
// credential source.
//
// Example:
//
//	client := gemini.New(nil)
//	creds := credential.NewProvider(nil, os.Getenv("GEMINI_API_KEY"))
//	orch := studio.NewOrchestrator(client, creds,
//	    studio.WithLogger(slog.Default()),
//	    studio.WithSuggester(client),
//	)
func NewOrchestrator(client ImageClient, credentials CredentialSource, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		client:      client,
		credentials: credentials,
		logger:      slog.Default(),
		sleep:       sleepContext,
		now:         time.Now,
		newRunID:    newUUID,
	}

	for _, opt := range opts {
		opt(o)
	}

	return o
}
