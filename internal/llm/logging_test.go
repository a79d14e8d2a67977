package llm

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/gravitdam/gravitdam/internal/store"
)

type recordingEventRepo struct {
	events []store.LLMRequestEventData
	err    error
}

func (r *recordingEventRepo) AppendLLMRequest(_ context.Context, data store.LLMRequestEventData) error {
	r.events = append(r.events, data)
	return r.err
}

func TestLogging_RecordsSuccess(t *testing.T) {
	repo := &recordingEventRepo{}
	mock := NewMockProvider(MockResponse{
		Content: json.RawMessage("Uplift pressure"),
		Usage:   Usage{InputTokens: 7, OutputTokens: 3},
	})
	p := WithLogging(mock, "mock", repo, nil)

	ctx := WithPurpose(context.Background(), PurposeCalculation)
	if _, err := p.Generate(ctx, UserPrompt("persona", "Dam Height: 30 m")); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(repo.events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(repo.events))
	}
	ev := repo.events[0]
	if ev.Purpose != "calculation" || !ev.Success || ev.Streamed {
		t.Fatalf("unexpected event %+v", ev)
	}
	if ev.InputTokens != 7 || ev.OutputTokens != 3 {
		t.Fatalf("unexpected token counts %d/%d", ev.InputTokens, ev.OutputTokens)
	}
	if !strings.Contains(ev.RequestBody, "[system]\npersona") || !strings.Contains(ev.RequestBody, "Dam Height: 30 m") {
		t.Fatalf("request body not captured: %q", ev.RequestBody)
	}
	if ev.ResponseBody != "Uplift pressure" {
		t.Fatalf("response body not captured: %q", ev.ResponseBody)
	}
}

func TestLogging_StreamAndFailure(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	repo := &recordingEventRepo{err: errors.New("disk full")}
	mock := NewMockProvider(
		MockResponse{Chunks: []string{"a", "b"}},
		MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}},
	)
	p := WithLogging(mock, "mock", repo, zap.New(core)).(Streamer)

	if _, err := p.Stream(context.Background(), Request{}, func(string) {}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := p.Stream(context.Background(), Request{}, func(string) {}); err == nil {
		t.Fatal("expected error from second stream")
	}

	if len(repo.events) != 2 || !repo.events[0].Streamed || repo.events[1].Success {
		t.Fatalf("unexpected events %+v", repo.events)
	}
	if repo.events[1].ErrorMessage == "" {
		t.Fatal("expected error message on failed event")
	}
	if n := logs.FilterMessage("llm request failed").Len(); n != 1 {
		t.Fatalf("expected 1 failure log, got %d", n)
	}
	if n := logs.FilterMessage("failed to record llm request event").Len(); n != 2 {
		t.Fatalf("expected repo failures to be logged twice, got %d", n)
	}
}
