package calc

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitdam/gravitdam/internal/llm"
)

const answer = "Step One\n- A\n\nStep Two\n- B"

func TestSingleShotCalculator(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(answer)})
	c := NewSingleShotCalculator(mock, 2048)

	var chunks []string
	got, err := c.Calculate(context.Background(), completeForm(), func(s string) { chunks = append(chunks, s) })
	require.NoError(t, err)

	assert.Equal(t, answer, got)
	assert.Empty(t, chunks, "single-shot never streams")

	require.Len(t, mock.Calls, 1)
	req := mock.Calls[0]
	assert.Equal(t, SystemPrompt, req.System)
	assert.Nil(t, req.Schema)
	assert.Equal(t, 2048, req.MaxTokens)
	require.Len(t, req.Messages, 1)
	assert.Equal(t, llm.RoleUser, req.Messages[0].Role)
	assert.Contains(t, req.Messages[0].Content, "- Dam Height: 50 m")
}

func TestStreamingCalculatorAccumulates(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Chunks: []string{"Step One\n", "- A\n\n", "Step Two\n- B"}})
	c := NewStreamingCalculator(mock, 0)

	var chunks []string
	got, err := c.Calculate(context.Background(), completeForm(), func(s string) { chunks = append(chunks, s) })
	require.NoError(t, err)

	assert.Equal(t, answer, got)
	assert.Equal(t, []string{"Step One\n", "Step One\n- A\n\n", answer}, chunks)
}

func TestCalculatorsShareCompletionResult(t *testing.T) {
	for _, stream := range []bool{false, true} {
		mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(answer)})
		got, err := NewCalculator(mock, stream, 0).Calculate(context.Background(), completeForm(), nil)
		require.NoError(t, err, "stream=%v", stream)
		assert.Equal(t, answer, got, "stream=%v", stream)
	}
}

func TestCalculatorEmptyAnswer(t *testing.T) {
	for _, stream := range []bool{false, true} {
		mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage("  \n")})
		_, err := NewCalculator(mock, stream, 0).Calculate(context.Background(), completeForm(), nil)

		var inv *llm.ErrInvalidResponse
		assert.True(t, errors.As(err, &inv), "stream=%v: got %v", stream, err)
	}
}

func TestCalculatorProviderError(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{Err: errors.New("down")}})
	_, err := NewSingleShotCalculator(mock, 0).Calculate(context.Background(), completeForm(), nil)

	var unavail *llm.ErrProviderUnavailable
	require.True(t, errors.As(err, &unavail))
}

func TestCalculatorTagsPurpose(t *testing.T) {
	var purpose string
	p := purposeRecorder{fn: func(ctx context.Context) { purpose = llm.PurposeFrom(ctx) }}

	_, _ = NewSingleShotCalculator(p, 0).Calculate(context.Background(), completeForm(), nil)
	assert.Equal(t, llm.PurposeCalculation, purpose)
}

type purposeRecorder struct {
	fn func(context.Context)
}

func (p purposeRecorder) Generate(ctx context.Context, _ llm.Request) (*llm.Response, error) {
	p.fn(ctx)
	return &llm.Response{Content: json.RawMessage("ok")}, nil
}

func (purposeRecorder) ModelID() string { return "recorder" }

func TestStreamingCalculatorWithDemoProvider(t *testing.T) {
	c := NewStreamingCalculator(llm.NewDemoProvider(), 0)

	var chunks int
	got, err := c.Calculate(context.Background(), completeForm(), func(string) { chunks++ })
	require.NoError(t, err)

	assert.Greater(t, chunks, 1)
	sections := ParseSections(got)
	require.NotEmpty(t, sections)
	assert.Equal(t, "Demo Answer (mock provider)", sections[0].Title)
}
