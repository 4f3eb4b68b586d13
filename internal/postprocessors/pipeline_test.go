package postprocessors

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockProcessor is a test processor that applies a fixed transform.
type mockProcessor struct {
	name string
	fn   func([]string) []string
	err  error
}

func (m *mockProcessor) Name() string {
	return m.name
}

func (m *mockProcessor) Process(_ context.Context, terms []string) ([]string, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.fn != nil {
		return m.fn(terms), nil
	}
	return terms, nil
}

func upper(terms []string) []string {
	out := make([]string, len(terms))
	for i, t := range terms {
		out[i] = strings.ToUpper(t)
	}
	return out
}

func dropFirst(terms []string) []string {
	if len(terms) == 0 {
		return terms
	}
	return terms[1:]
}

func TestNewPipeline(t *testing.T) {
	p := NewPipeline()
	require.NotNil(t, p)
	assert.Equal(t, 0, p.Len())
}

func TestPipeline_Add(t *testing.T) {
	p := NewPipeline()
	p.Add(&mockProcessor{name: "test"})

	assert.Equal(t, 1, p.Len())
}

func TestPipeline_Process_EmptyPipeline(t *testing.T) {
	p := NewPipeline()

	out, err := p.Process(context.Background(), []string{"a", "b"})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, out)

	out, err = p.Process(context.Background(), nil)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestPipeline_Process_RunsInOrder(t *testing.T) {
	p := NewPipeline(
		&mockProcessor{name: "drop", fn: dropFirst},
		&mockProcessor{name: "upper", fn: upper},
	)

	out, err := p.Process(context.Background(), []string{"one", "two", "three"})

	require.NoError(t, err)
	assert.Equal(t, []string{"TWO", "THREE"}, out)
}

func TestPipeline_Process_ProcessorError(t *testing.T) {
	expectedErr := errors.New("processor failed")

	p := NewPipeline(
		&mockProcessor{name: "ok"},
		&mockProcessor{name: "failing", err: expectedErr},
	)

	_, err := p.Process(context.Background(), []string{"x"})

	require.Error(t, err)
	assert.ErrorIs(t, err, expectedErr)
	assert.Contains(t, err.Error(), "processor failing")
}

func TestPipeline_Process_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewPipeline(&mockProcessor{name: "upper", fn: upper})

	_, err := p.Process(ctx, []string{"x"})
	assert.ErrorIs(t, err, context.Canceled)
}
