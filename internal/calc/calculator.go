package calc

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gravitdam/gravitdam/internal/llm"
)

// Calculator turns a completed form into a calculation answer.
// onChunk receives the accumulated text so far; implementations that do not
// stream never call it.
type Calculator interface {
	Calculate(ctx context.Context, f Form, onChunk func(text string)) (string, error)
}

// errEmptyAnswer is wrapped in ErrInvalidResponse when the model returns
// nothing but whitespace.
var errEmptyAnswer = errors.New("empty calculation answer")

// SingleShotCalculator sends one request and waits for the whole answer.
type SingleShotCalculator struct {
	provider  llm.Provider
	maxTokens int
}

// NewSingleShotCalculator creates a non-streaming calculator.
func NewSingleShotCalculator(p llm.Provider, maxTokens int) *SingleShotCalculator {
	return &SingleShotCalculator{provider: p, maxTokens: maxTokens}
}

func (c *SingleShotCalculator) Calculate(ctx context.Context, f Form, _ func(string)) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeCalculation)

	resp, err := c.provider.Generate(ctx, buildRequest(f, c.maxTokens))
	if err != nil {
		return "", fmt.Errorf("calculation request failed: %w", err)
	}
	return checkAnswer(resp.Text())
}

// StreamingCalculator delivers the answer incrementally.
type StreamingCalculator struct {
	provider  llm.Provider
	maxTokens int
}

// NewStreamingCalculator creates a streaming calculator. Providers without
// native streaming deliver the answer as a single chunk.
func NewStreamingCalculator(p llm.Provider, maxTokens int) *StreamingCalculator {
	return &StreamingCalculator{provider: p, maxTokens: maxTokens}
}

func (c *StreamingCalculator) Calculate(ctx context.Context, f Form, onChunk func(string)) (string, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeCalculation)
	if onChunk == nil {
		onChunk = func(string) {}
	}

	var buf strings.Builder
	resp, err := llm.Stream(ctx, c.provider, buildRequest(f, c.maxTokens), func(delta string) {
		buf.WriteString(delta)
		onChunk(buf.String())
	})
	if err != nil {
		return "", fmt.Errorf("calculation stream failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		text = buf.String()
	}
	return checkAnswer(text)
}

// NewCalculator picks the streaming or single-shot implementation.
func NewCalculator(p llm.Provider, stream bool, maxTokens int) Calculator {
	if stream {
		return NewStreamingCalculator(p, maxTokens)
	}
	return NewSingleShotCalculator(p, maxTokens)
}

func buildRequest(f Form, maxTokens int) llm.Request {
	req := llm.UserPrompt(SystemPrompt, BuildUserMessage(f))
	req.MaxTokens = maxTokens
	return req
}

func checkAnswer(text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", &llm.ErrInvalidResponse{Err: errEmptyAnswer}
	}
	return text, nil
}
