// Package session implements the studio workflows on top of the
// orchestrator and keeps the resulting tasks in memory.
package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/lithiumheat/studio"
	"github.com/lithiumheat/studio/imgutil"
)

// MaxSuiteCount is the largest number of images one suite run may request.
const MaxSuiteCount = 5

var (
	// ErrEmptyInput is returned when neither a prompt nor an image was given.
	ErrEmptyInput = errors.New("a prompt or a reference image is required")

	// ErrImageRequired is returned by Restore without an image.
	ErrImageRequired = errors.New("restoration requires an image")

	// ErrTooManyImages is returned when a suite asks for more than MaxSuiteCount images.
	ErrTooManyImages = fmt.Errorf("at most %d images per suite", MaxSuiteCount)
)

// Generator is the orchestration boundary used by the Service.
type Generator interface {
	Generate(ctx context.Context, req studio.GenerationRequest) ([]studio.GeneratedImage, error)
	SuggestPrompt(ctx context.Context, text string, image *studio.InlineImage) (string, error)
}

// SuiteInput is the input of a suite run. Zero values take the defaults
// 1:1, 1K and one image.
type SuiteInput struct {
	Prompt string

	// Image is an optional product photo as a data URL
	Image string

	AspectRatio studio.AspectRatio
	Resolution  studio.Resolution
	Count       int
}

// RestoreInput is the input of a restoration run. Resolution defaults to 4K.
type RestoreInput struct {
	// Image is the photo to restore, as a data URL
	Image string

	// Prompt holds optional extra adjustments
	Prompt string

	Resolution studio.Resolution
}

// Service runs studio workflows and records every run as a TaskGroup.
type Service struct {
	gen    Generator
	store  *Store
	logger *slog.Logger
	now    func() time.Time
	newID  func() string
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets a structured logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithClock sets the time source used for task timestamps.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		s.now = now
	}
}

// WithIDFunc sets the task id generator.
func WithIDFunc(f func() string) Option {
	return func(s *Service) {
		s.newID = f
	}
}

// NewService creates a Service. A nil store gets a fresh one with DefaultTTL.
func NewService(gen Generator, store *Store, opts ...Option) *Service {
	if store == nil {
		store = NewStore(DefaultTTL)
	}
	s := &Service{
		gen:    gen,
		store:  store,
		logger: slog.Default(),
		now:    time.Now,
		newID:  uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// GenerateSuite runs a SUITE generation and records it. The returned task
// is recorded even when err is non-nil.
func (s *Service) GenerateSuite(ctx context.Context, in SuiteInput) (studio.TaskGroup, error) {
	if in.Prompt == "" && in.Image == "" {
		return studio.TaskGroup{}, ErrEmptyInput
	}
	if in.AspectRatio == "" {
		in.AspectRatio = studio.AspectRatio1x1
	}
	if in.Resolution == "" {
		in.Resolution = studio.Resolution1K
	}
	if in.Count == 0 {
		in.Count = 1
	}
	if in.Count > MaxSuiteCount {
		return studio.TaskGroup{}, fmt.Errorf("%w: %d", ErrTooManyImages, in.Count)
	}

	return s.run(ctx, studio.GenerationRequest{
		Prompt:         in.Prompt,
		ReferenceImage: in.Image,
		AspectRatio:    in.AspectRatio,
		Resolution:     in.Resolution,
		Count:          in.Count,
		Mode:           studio.ModeSuite,
	})
}

// Restore runs a single-image RESTORE whose aspect ratio is detected from
// the uploaded photo.
func (s *Service) Restore(ctx context.Context, in RestoreInput) (studio.TaskGroup, error) {
	if in.Image == "" {
		return studio.TaskGroup{}, ErrImageRequired
	}
	if in.Resolution == "" {
		in.Resolution = studio.Resolution4K
	}

	mimeType, data, err := imgutil.DecodeDataURL(in.Image)
	if err != nil {
		return studio.TaskGroup{}, fmt.Errorf("restore input: %w", err)
	}
	width, height, err := imgutil.Dimensions(data, mimeType)
	if err != nil {
		return studio.TaskGroup{}, fmt.Errorf("restore input: %w", err)
	}
	ratio := studio.DetectAspectRatio(width, height)
	s.logger.Debug("detected aspect ratio", "width", width, "height", height, "aspect_ratio", ratio.String())

	return s.run(ctx, studio.GenerationRequest{
		Prompt:         in.Prompt,
		ReferenceImage: in.Image,
		AspectRatio:    ratio,
		Resolution:     in.Resolution,
		Count:          1,
		Mode:           studio.ModeRestore,
	})
}

// Suggest drafts a detailed prompt from a rough request and an optional
// product photo.
func (s *Service) Suggest(ctx context.Context, text, image string) (string, error) {
	if text == "" && image == "" {
		return "", ErrEmptyInput
	}
	inline, err := studio.ExtractInlineImage(image)
	if err != nil {
		return "", err
	}
	return s.gen.SuggestPrompt(ctx, text, inline)
}

// Tasks returns the recorded tasks of mode, newest first.
func (s *Service) Tasks(mode studio.Mode) []studio.TaskGroup {
	return s.store.List(mode)
}

// Task returns one recorded task.
func (s *Service) Task(id string) (studio.TaskGroup, bool) {
	return s.store.Get(id)
}

func (s *Service) run(ctx context.Context, req studio.GenerationRequest) (studio.TaskGroup, error) {
	req.RunID = s.newID()
	task := studio.TaskGroup{
		ID:            req.RunID,
		Mode:          req.Mode,
		Status:        studio.TaskProcessing,
		Timestamp:     s.now(),
		OriginalInput: req.ReferenceImage,
		InputPrompt:   req.Prompt,
	}

	images, err := s.gen.Generate(ctx, req)
	if err != nil {
		task.Status = studio.TaskFailed
		task.Error = err.Error()
		s.store.Put(task)
		s.logger.Warn("task failed", "task_id", task.ID, "mode", task.Mode.String(), "error", err.Error())
		return task, err
	}

	task.Status = studio.TaskCompleted
	task.Images = images
	s.store.Put(task)
	s.logger.Info("task completed", "task_id", task.ID, "mode", task.Mode.String(), "image_count", len(images))
	return task, nil
}
