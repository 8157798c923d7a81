package credential

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lithiumheat/studio"
)

// MockSelector is a mock implementation of Selector.
type MockSelector struct {
	SelectKeyFunc func(ctx context.Context) (string, error)

	mu      sync.Mutex
	key     string
	selects int32
}

func (m *MockSelector) HasSelectedKey(ctx context.Context) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.key != "", nil
}

func (m *MockSelector) SelectKey(ctx context.Context) error {
	atomic.AddInt32(&m.selects, 1)
	key := "selected"
	if m.SelectKeyFunc != nil {
		var err error
		key, err = m.SelectKeyFunc(ctx)
		if err != nil {
			return err
		}
	}
	m.mu.Lock()
	m.key = key
	m.mu.Unlock()
	return nil
}

func (m *MockSelector) SelectedKey() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.key
}

func TestProvider_Fallback(t *testing.T) {
	p := NewProvider(nil, "env-key")

	for _, force := range []bool{false, true} {
		key, err := p.Acquire(context.Background(), force)
		require.NoError(t, err)
		assert.Equal(t, "env-key", key)
	}

	_, err := NewProvider(nil, "").Acquire(context.Background(), false)
	assert.ErrorIs(t, err, studio.ErrNoCredential)
}

func TestProvider_ReusesSelectedKey(t *testing.T) {
	sel := &MockSelector{key: "existing"}
	p := NewProvider(sel, "")

	key, err := p.Acquire(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "existing", key)
	assert.Zero(t, atomic.LoadInt32(&sel.selects))
}

func TestProvider_PromptsWhenNothingSelected(t *testing.T) {
	sel := &MockSelector{}
	p := NewProvider(sel, "")

	key, err := p.Acquire(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, "selected", key)
	assert.Equal(t, int32(1), atomic.LoadInt32(&sel.selects))

	// now selected: no second prompt
	_, err = p.Acquire(context.Background(), false)
	require.NoError(t, err)
	assert.Equal(t, int32(1), atomic.LoadInt32(&sel.selects))
}

func TestProvider_ForcedAlwaysPrompts(t *testing.T) {
	var n int32
	sel := &MockSelector{
		key: "old",
		SelectKeyFunc: func(ctx context.Context) (string, error) {
			return "new-" + string(rune('0'+atomic.AddInt32(&n, 1))), nil
		},
	}
	p := NewProvider(sel, "")

	key, err := p.Acquire(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, "new-1", key)

	key, err = p.Acquire(context.Background(), true)
	require.NoError(t, err)
	assert.Equal(t, "new-2", key)
}

func TestProvider_SelectionErrors(t *testing.T) {
	dismissed := errors.New("dialog dismissed")
	p := NewProvider(&MockSelector{
		SelectKeyFunc: func(ctx context.Context) (string, error) { return "", dismissed },
	}, "")
	_, err := p.Acquire(context.Background(), true)
	assert.ErrorIs(t, err, dismissed)

	p = NewProvider(&MockSelector{
		SelectKeyFunc: func(ctx context.Context) (string, error) { return "", nil },
	}, "")
	_, err = p.Acquire(context.Background(), true)
	assert.ErrorIs(t, err, studio.ErrNoCredential)
}

func TestProvider_CoalescesConcurrentPrompts(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	var once sync.Once
	sel := &MockSelector{
		SelectKeyFunc: func(ctx context.Context) (string, error) {
			once.Do(func() { close(entered) })
			<-release
			return "shared", nil
		},
	}
	p := NewProvider(sel, "")

	var wg sync.WaitGroup
	keys := make([]string, 2)
	acquire := func(i int) {
		defer wg.Done()
		key, err := p.Acquire(context.Background(), true)
		assert.NoError(t, err)
		keys[i] = key
	}

	wg.Add(2)
	go acquire(0)
	<-entered
	go acquire(1)
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, []string{"shared", "shared"}, keys)
	assert.Equal(t, int32(1), atomic.LoadInt32(&sel.selects))
}

func TestTerminalSelector(t *testing.T) {
	in := strings.NewReader("  first-key \n\nsecond-key")
	var out bytes.Buffer
	s := NewTerminalSelector(in, &out, "")

	has, err := s.HasSelectedKey(context.Background())
	require.NoError(t, err)
	assert.False(t, has)

	require.NoError(t, s.SelectKey(context.Background()))
	assert.Equal(t, "first-key", s.SelectedKey())
	assert.Contains(t, out.String(), "Enter a Gemini API key")

	assert.ErrorIs(t, s.SelectKey(context.Background()), ErrNoKeyEntered)
	assert.Equal(t, "first-key", s.SelectedKey())

	// last line without newline
	require.NoError(t, s.SelectKey(context.Background()))
	assert.Equal(t, "second-key", s.SelectedKey())
	assert.Contains(t, out.String(), "rejected")

	assert.Error(t, s.SelectKey(context.Background()), "input exhausted")
}

func TestTerminalSelector_InitialKeyAndCancel(t *testing.T) {
	s := NewTerminalSelector(strings.NewReader(""), &bytes.Buffer{}, "preset")
	has, err := s.HasSelectedKey(context.Background())
	require.NoError(t, err)
	assert.True(t, has)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, s.SelectKey(ctx), context.Canceled)
	assert.Equal(t, "preset", s.SelectedKey())
}
