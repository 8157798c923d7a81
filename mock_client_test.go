package studio

import (
	"context"
	"sync"
)

// MockImageClient is a mock implementation of ImageClient.
type MockImageClient struct {
	GenerateImagesFunc func(ctx context.Context, apiKey string, params *CallParams) ([]ImagePart, error)
}

func (m *MockImageClient) GenerateImages(ctx context.Context, apiKey string, params *CallParams) ([]ImagePart, error) {
	if m.GenerateImagesFunc != nil {
		return m.GenerateImagesFunc(ctx, apiKey, params)
	}
	return []ImagePart{{Data: []byte("fake-image"), MIMEType: "image/png"}}, nil
}

// MockSuggester is a mock implementation of PromptSuggester.
type MockSuggester struct {
	SuggestPromptFunc func(ctx context.Context, apiKey, instruction string, image *InlineImage) (string, error)
}

func (m *MockSuggester) SuggestPrompt(ctx context.Context, apiKey, instruction string, image *InlineImage) (string, error) {
	if m.SuggestPromptFunc != nil {
		return m.SuggestPromptFunc(ctx, apiKey, instruction, image)
	}
	return "", nil
}

// MockCredentials is a CredentialSource that records every acquisition.
type MockCredentials struct {
	AcquireFunc func(ctx context.Context, force bool) (string, error)

	mu     sync.Mutex
	forced int
	plain  int
}

func (m *MockCredentials) Acquire(ctx context.Context, force bool) (string, error) {
	m.mu.Lock()
	if force {
		m.forced++
	} else {
		m.plain++
	}
	m.mu.Unlock()

	if m.AcquireFunc != nil {
		return m.AcquireFunc(ctx, force)
	}
	return "test-key", nil
}

func (m *MockCredentials) Counts() (plain, forced int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.plain, m.forced
}
