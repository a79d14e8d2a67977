package calc

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Recorder persists a finished calculation. Implementations log their own
// failures.
type Recorder interface {
	Record(ctx context.Context, question, answer string) error
}

// Service runs a Calculator and persists successful answers, so streaming
// and single-shot calculations complete the same way. Persistence is a
// separate step that callers start once the answer is on screen.
type Service struct {
	calc     Calculator
	recorder Recorder
	timeout  time.Duration
	logger   *zap.Logger
}

// NewService creates a Service. recorder may be nil to skip persistence.
// A positive timeout bounds each calculation, retries included.
func NewService(c Calculator, recorder Recorder, timeout time.Duration, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{calc: c, recorder: recorder, timeout: timeout, logger: logger.Named("calc")}
}

// Run validates f and calculates. It returns as soon as the answer is
// complete; call Record afterwards to persist it.
func (s *Service) Run(ctx context.Context, f Form, onChunk func(text string)) (string, error) {
	if err := f.Validate(); err != nil {
		return "", err
	}

	calcCtx := ctx
	if s.timeout > 0 {
		var cancel context.CancelFunc
		calcCtx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	answer, err := s.calc.Calculate(calcCtx, f, onChunk)
	if err != nil {
		s.logger.Warn("calculation failed", zap.Error(err), zap.Duration("elapsed", time.Since(start)))
		return "", err
	}
	s.logger.Info("calculation completed",
		zap.Int("answer_len", len(answer)),
		zap.Bool("has_question", f.Question != ""),
		zap.Duration("elapsed", time.Since(start)),
	)
	return answer, nil
}

// Record persists a finished calculation. It runs detached from ctx's
// cancellation, and failures are logged by the recorder rather than
// returned.
func (s *Service) Record(ctx context.Context, f Form, answer string) {
	if s.recorder == nil {
		return
	}
	_ = s.recorder.Record(context.WithoutCancel(ctx), f.Question, answer)
}
