package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/gravitdam/gravitdam/internal/llm"
)

// SystemPrompt asks for the quiz batch.
const SystemPrompt = "Generate 10 unique and challenging multiple choice questions about gravity dam engineering and calculations. Include questions about structural analysis, hydraulic design, and safety considerations. Each question should have 4 options with only one correct answer."

// userMessage is sent alongside the system prompt; some providers reject
// requests without a user turn.
const userMessage = "Generate a new set of exam questions."

// Config controls quiz generation.
type Config struct {
	// Count is the exact number of questions a batch must contain.
	Count int

	// Options is the exact number of options per question.
	Options int

	MaxTokens   int
	Temperature float64

	// Timeout bounds one fetch, retries included. Zero means no limit.
	Timeout time.Duration
}

// DefaultConfig returns the standard ten-question, four-option quiz.
func DefaultConfig() Config {
	return Config{
		Count:       10,
		Options:     4,
		MaxTokens:   4096,
		Temperature: 0.7,
	}
}

// Generator fetches question batches from an LLM provider.
type Generator struct {
	provider llm.Provider
	config   Config
}

// NewGenerator creates a Generator.
func NewGenerator(p llm.Provider, cfg Config) *Generator {
	return &Generator{provider: p, config: cfg}
}

// examOutput is the raw structured response. correctAnswer is decoded as a
// float because the schema types it as a JSON number.
type examOutput struct {
	Questions []struct {
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer float64  `json:"correctAnswer"`
		Explanation   string   `json:"explanation"`
	} `json:"questions"`
}

// Generate fetches and checks one batch of questions.
func (g *Generator) Generate(ctx context.Context) ([]ExamQuestion, error) {
	ctx = llm.WithPurpose(ctx, llm.PurposeQuiz)
	if g.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.config.Timeout)
		defer cancel()
	}

	req := llm.UserPrompt(SystemPrompt, userMessage)
	req.Schema = ExamSchema
	req.MaxTokens = g.config.MaxTokens
	req.Temperature = g.config.Temperature

	resp, err := g.provider.Generate(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("quiz generation failed: %w", err)
	}

	var raw examOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: fmt.Errorf("parse quiz: %w", err)}
	}

	questions := make([]ExamQuestion, 0, len(raw.Questions))
	for _, q := range raw.Questions {
		idx := -1
		if q.CorrectAnswer == math.Trunc(q.CorrectAnswer) {
			idx = int(q.CorrectAnswer)
		}
		questions = append(questions, ExamQuestion{
			Question:      q.Question,
			Options:       q.Options,
			CorrectAnswer: idx,
			Explanation:   q.Explanation,
		})
	}

	if err := g.check(questions); err != nil {
		return nil, &llm.ErrInvalidResponse{Content: resp.Content, Err: err}
	}
	return questions, nil
}

// check enforces the batch shape the quiz screens rely on.
func (g *Generator) check(questions []ExamQuestion) error {
	if g.config.Count > 0 && len(questions) != g.config.Count {
		return fmt.Errorf("expected %d questions, got %d", g.config.Count, len(questions))
	}
	for i, q := range questions {
		if strings.TrimSpace(q.Question) == "" {
			return fmt.Errorf("question %d: empty text", i+1)
		}
		if g.config.Options > 0 && len(q.Options) != g.config.Options {
			return fmt.Errorf("question %d: expected %d options, got %d", i+1, g.config.Options, len(q.Options))
		}
		for j, o := range q.Options {
			if strings.TrimSpace(o) == "" {
				return fmt.Errorf("question %d: option %d is empty", i+1, j+1)
			}
		}
		if q.CorrectAnswer < 0 || q.CorrectAnswer >= len(q.Options) {
			return fmt.Errorf("question %d: correct answer out of range", i+1)
		}
	}
	return nil
}
