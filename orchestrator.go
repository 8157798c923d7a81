package studio

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/lithiumheat/studio/imgutil"
)

// SleepFunc blocks for d or until ctx is done.
type SleepFunc func(ctx context.Context, d time.Duration) error

// Orchestrator turns a GenerationRequest into an ordered list of images by
// issuing one remote call per image, one at a time, each with its own retry
// budget.
type Orchestrator struct {
	client      ImageClient
	credentials CredentialSource

	// suggester serves SuggestPrompt (optional)
	suggester PromptSuggester

	logger   *slog.Logger
	sleep    SleepFunc
	now      func() time.Time
	newRunID func() string
}

// runState is owned by a single Generate call and threaded through its
// slots. Nothing else reads or writes it.
type runState struct {
	apiKey string
}

// retryState lives for one slot.
type retryState struct {
	attempt int
	backoff *backoff.ExponentialBackOff
}

func newRetryState() *retryState {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = BackoffBase
	b.RandomizationFactor = 0
	b.Multiplier = 2
	b.MaxInterval = BackoffBase << MaxAttempts
	b.MaxElapsedTime = 0
	b.Reset()
	return &retryState{backoff: b}
}

// Generate runs req to completion: it returns every image of the run in
// call order, or an error and no images at all.
//
// It fails when the request is invalid, when credential acquisition fails,
// or when one slot exhausts MaxAttempts; in the latter case the last remote
// error is returned as is.
func (o *Orchestrator) Generate(ctx context.Context, req GenerationRequest) ([]GeneratedImage, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	params, err := BuildCallParams(req)
	if err != nil {
		return nil, err
	}

	runID := req.RunID
	if runID == "" {
		runID = o.newRunID()
	}
	logger := o.logger.With("run_id", runID, "mode", req.Mode.String())
	start := time.Now()

	logger.Debug("starting image generation",
		"count", req.Count,
		"aspect_ratio", params.AspectRatio.String(),
		"resolution", params.Resolution.String(),
		"prompt_length", len(req.Prompt),
		"has_reference", params.Image != nil,
	)

	run := &runState{}
	images := make([]GeneratedImage, 0, req.Count)

	for slot := 0; slot < req.Count; slot++ {
		parts, err := o.generateSlot(ctx, logger.With("slot", slot), run, params)
		if err != nil {
			logger.Error("generation failed",
				"slot", slot,
				"duration_ms", time.Since(start).Milliseconds(),
				"error", err.Error(),
			)
			return nil, err
		}

		for _, part := range parts {
			images = append(images, o.newImage(req, runID, len(images), part))
		}
	}

	logger.Info("generation completed",
		"duration_ms", time.Since(start).Milliseconds(),
		"image_count", len(images),
	)

	return images, nil
}

// generateSlot makes up to MaxAttempts calls for one slot.
func (o *Orchestrator) generateSlot(ctx context.Context, logger *slog.Logger, run *runState, params *CallParams) ([]ImagePart, error) {
	key, err := o.credentials.Acquire(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("acquire credential: %w", err)
	}
	run.apiKey = key

	rs := newRetryState()
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		parts, err := o.client.GenerateImages(ctx, run.apiKey, params)
		if err == nil && len(parts) > 0 {
			return parts, nil
		}
		if err == nil {
			err = ErrNoImageData
		}

		class := ClassifyError(err)
		recovery := RecoveryFor(class)
		delay := rs.backoff.NextBackOff()

		logger.Warn("generation attempt failed",
			"attempt", rs.attempt+1,
			"max_attempts", MaxAttempts,
			"error_class", class.String(),
			"recovery", recovery.String(),
			"error", err.Error(),
		)

		switch recovery {
		case RecoverRefreshCredential:
			key, aerr := o.credentials.Acquire(ctx, true)
			if aerr != nil {
				return nil, fmt.Errorf("re-select credential: %w", aerr)
			}
			run.apiKey = key
		case RecoverBackoff:
			logger.Info("server error, backing off", "delay_ms", delay.Milliseconds())
			if serr := o.sleep(ctx, delay); serr != nil {
				return nil, serr
			}
		}

		rs.attempt++
		if rs.attempt >= MaxAttempts {
			return nil, err
		}
	}
}

func (o *Orchestrator) newImage(req GenerationRequest, runID string, index int, part ImagePart) GeneratedImage {
	mimeType := part.MIMEType
	if mimeType == "" {
		mimeType = "image/png"
	}
	return GeneratedImage{
		ID:          fmt.Sprintf("%s_%d", runID, index),
		URL:         imgutil.EncodeDataURL(mimeType, part.Data),
		Prompt:      displayPrompt(req),
		Timestamp:   o.now(),
		Resolution:  req.Resolution,
		AspectRatio: req.AspectRatio,
	}
}

// SuggestPrompt asks the text endpoint to draft a detailed generation prompt
// from a rough request and an optional product image. It makes a single
// call with no retry.
func (o *Orchestrator) SuggestPrompt(ctx context.Context, text string, image *InlineImage) (string, error) {
	if o.suggester == nil {
		return "", ErrSuggesterNotConfigured
	}

	key, err := o.credentials.Acquire(ctx, false)
	if err != nil {
		return "", fmt.Errorf("acquire credential: %w", err)
	}

	suggestion, err := o.suggester.SuggestPrompt(ctx, key, BuildSuggestionInstruction(text), image)
	if err != nil {
		o.logger.Error("prompt suggestion failed", "error", err.Error())
		return "", err
	}

	suggestion = strings.TrimSpace(suggestion)
	if suggestion == "" {
		return NoSuggestionText, nil
	}
	return suggestion, nil
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

func newUUID() string {
	return uuid.NewString()
}
