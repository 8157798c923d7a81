package credential

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
)

// ErrNoKeyEntered is returned when the user submits an empty line.
var ErrNoKeyEntered = errors.New("no API key entered")

// TerminalSelector asks for a key on a line-oriented terminal.
type TerminalSelector struct {
	in  *bufio.Reader
	out io.Writer

	mu  sync.Mutex
	key string
}

var _ Selector = (*TerminalSelector)(nil)

// NewTerminalSelector reads keys from in and writes prompts to out.
// initialKey, when set, counts as already selected.
func NewTerminalSelector(in io.Reader, out io.Writer, initialKey string) *TerminalSelector {
	return &TerminalSelector{
		in:  bufio.NewReader(in),
		out: out,
		key: strings.TrimSpace(initialKey),
	}
}

func (s *TerminalSelector) HasSelectedKey(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key != "", nil
}

// SelectKey prints a prompt and reads one line. The read itself cannot be
// interrupted; ctx is checked before it starts.
func (s *TerminalSelector) SelectKey(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.key != "" {
		fmt.Fprintln(s.out, "The current API key was rejected.")
	}
	fmt.Fprint(s.out, "Enter a Gemini API key from a paid project: ")

	line, err := s.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		return fmt.Errorf("read key: %w", err)
	}

	key := strings.TrimSpace(line)
	if key == "" {
		return ErrNoKeyEntered
	}
	s.key = key
	return nil
}

func (s *TerminalSelector) SelectedKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.key
}
