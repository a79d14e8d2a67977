package calc

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitdam/gravitdam/internal/llm"
)

type fakeRecorder struct {
	questions []string
	answers   []string
	err       error
	ctxErr    error
}

func (r *fakeRecorder) Record(ctx context.Context, question, answer string) error {
	r.questions = append(r.questions, question)
	r.answers = append(r.answers, answer)
	r.ctxErr = ctx.Err()
	return r.err
}

func TestServicePersistsBothPaths(t *testing.T) {
	for _, stream := range []bool{false, true} {
		rec := &fakeRecorder{}
		mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(answer)})
		svc := NewService(NewCalculator(mock, stream, 0), rec, time.Minute, nil)

		f := completeForm().UpdateField(FieldQuestion, "Check overturning")
		got, err := svc.Run(context.Background(), f, nil)
		require.NoError(t, err)
		assert.Equal(t, answer, got)
		assert.Empty(t, rec.answers, "Run must not persist")

		svc.Record(context.Background(), f, got)

		assert.Equal(t, []string{"Check overturning"}, rec.questions, "stream=%v", stream)
		assert.Equal(t, []string{answer}, rec.answers, "stream=%v", stream)
	}
}

func TestServiceIncompleteFormMakesNoCall(t *testing.T) {
	rec := &fakeRecorder{}
	mock := llm.NewMockProvider()
	svc := NewService(NewSingleShotCalculator(mock, 0), rec, 0, nil)

	_, err := svc.Run(context.Background(), Form{DamHeight: "50"}, nil)
	assert.ErrorIs(t, err, ErrIncompleteForm)
	assert.Equal(t, 0, mock.CallCount())
	assert.Empty(t, rec.questions)
}

func TestServicePersistenceFailureIsNotFatal(t *testing.T) {
	rec := &fakeRecorder{err: errors.New("gateway down")}
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(answer)})
	svc := NewService(NewSingleShotCalculator(mock, 0), rec, 0, nil)

	got, err := svc.Run(context.Background(), completeForm(), nil)
	require.NoError(t, err)
	assert.Equal(t, answer, got)

	svc.Record(context.Background(), completeForm(), got)
	assert.Len(t, rec.answers, 1)
}

// blockingRecorder holds every Record call until release is closed.
type blockingRecorder struct {
	release chan struct{}
	done    chan struct{}
}

func (r *blockingRecorder) Record(ctx context.Context, question, answer string) error {
	<-r.release
	close(r.done)
	return nil
}

func TestServiceAnswerDoesNotWaitForPersistence(t *testing.T) {
	rec := &blockingRecorder{release: make(chan struct{}), done: make(chan struct{})}
	mock := llm.NewMockProvider(llm.MockResponse{Content: json.RawMessage(answer)})
	svc := NewService(NewSingleShotCalculator(mock, 0), rec, 0, nil)

	start := time.Now()
	got, err := svc.Run(context.Background(), completeForm(), nil)
	require.NoError(t, err)
	assert.Equal(t, answer, got)
	assert.Less(t, time.Since(start), time.Second)

	go svc.Record(context.Background(), completeForm(), got)
	select {
	case <-rec.done:
		t.Fatal("record finished before the gateway replied")
	case <-time.After(20 * time.Millisecond):
	}

	close(rec.release)
	select {
	case <-rec.done:
	case <-time.After(2 * time.Second):
		t.Fatal("record did not finish")
	}
}

func TestServiceRecordWithoutRecorder(t *testing.T) {
	svc := NewService(NewSingleShotCalculator(llm.NewMockProvider(), 0), nil, 0, nil)
	svc.Record(context.Background(), completeForm(), answer)
}

func TestServiceCalculationFailureSkipsPersistence(t *testing.T) {
	rec := &fakeRecorder{}
	mock := llm.NewMockProvider(llm.MockResponse{Err: &llm.ErrProviderUnavailable{}})
	svc := NewService(NewSingleShotCalculator(mock, 0), rec, 0, nil)

	_, err := svc.Run(context.Background(), completeForm(), nil)
	require.Error(t, err)
	assert.Empty(t, rec.answers)
}

func TestServicePersistsWithLiveContext(t *testing.T) {
	rec := &fakeRecorder{}
	ctx, cancel := context.WithCancel(context.Background())

	p := cancelAfterAnswer{cancel: cancel}
	svc := NewService(NewSingleShotCalculator(p, 0), rec, 0, nil)

	got, err := svc.Run(ctx, completeForm(), nil)
	require.NoError(t, err)
	svc.Record(ctx, completeForm(), got)
	require.Len(t, rec.answers, 1)
	assert.NoError(t, rec.ctxErr)
}

// cancelAfterAnswer cancels the caller's context as soon as it answers.
type cancelAfterAnswer struct {
	cancel context.CancelFunc
}

func (p cancelAfterAnswer) Generate(context.Context, llm.Request) (*llm.Response, error) {
	p.cancel()
	return &llm.Response{Content: json.RawMessage(answer)}, nil
}

func (cancelAfterAnswer) ModelID() string { return "cancel" }
