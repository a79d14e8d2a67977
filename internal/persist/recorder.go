package persist

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// DefaultQuestion is stored when the user left the question field empty.
const DefaultQuestion = "Standard calculation"

// Recorder appends calculation records through a Gateway.
type Recorder struct {
	gw     Gateway
	logger *zap.Logger
	now    func() time.Time
}

// NewRecorder creates a Recorder. A nil logger discards output.
func NewRecorder(gw Gateway, logger *zap.Logger) *Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Recorder{gw: gw, logger: logger.Named("persist"), now: time.Now}
}

// Record persists one question/answer pair. The error is returned for
// callers that care; the failure is logged either way.
func (r *Recorder) Record(ctx context.Context, question, answer string) error {
	if question == "" {
		question = DefaultQuestion
	}
	createdAt := r.now().UTC().Format("2006-01-02T15:04:05.000Z07:00")

	err := r.gw.Execute(ctx, InsertCalculation(question, answer, createdAt))
	if err != nil {
		r.logger.Warn("failed to persist calculation",
			zap.String("question", question),
			zap.Int("answer_len", len(answer)),
			zap.Error(err),
		)
		return err
	}
	r.logger.Debug("calculation persisted", zap.String("question", question))
	return nil
}
