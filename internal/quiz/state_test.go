package quiz

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gravitdam/gravitdam/internal/flow"
	"github.com/gravitdam/gravitdam/internal/llm"
)

func sampleQuestions(correct ...int) []ExamQuestion {
	qs := make([]ExamQuestion, len(correct))
	for i, c := range correct {
		qs[i] = ExamQuestion{
			Question:      "Q",
			Options:       []string{"A", "B", "C", "D"},
			CorrectAnswer: c,
			Explanation:   "because",
		}
	}
	return qs
}

func loadedState(correct ...int) State {
	tok := flow.NewToken()
	s := Reduce(NewState(), Fetch{Token: tok})
	return Reduce(s, Loaded{Token: tok, Questions: sampleQuestions(correct...)})
}

func TestScore(t *testing.T) {
	s := loadedState(1, 0, 2)
	s.Answers = map[int]int{0: 1, 1: 0, 2: 1}

	assert.Equal(t, 2, s.Score())
	assert.Len(t, s.Questions, 3)
}

func TestScoreIgnoresOutOfRangeKeys(t *testing.T) {
	s := loadedState(0)
	s.Answers = map[int]int{0: 0, 5: 0}
	assert.Equal(t, 1, s.Score())
}

func TestContinue(t *testing.T) {
	s := loadedState(0, 1)

	blocked := Reduce(s, Continue{})
	assert.Equal(t, 0, blocked.Current, "continue is blocked without an answer")
	assert.False(t, blocked.ShowResults)

	s = Reduce(s, Select{Index: 2})
	s = Reduce(s, Continue{})
	assert.Equal(t, 1, s.Current)
	assert.False(t, s.ShowResults)

	s = Reduce(s, Select{Index: 1})
	s = Reduce(s, Continue{})
	assert.Equal(t, 1, s.Current)
	assert.True(t, s.ShowResults, "continue on the last question shows results")
	assert.Equal(t, 1, s.Score())
}

func TestSelectOverwrites(t *testing.T) {
	s := loadedState(0)
	s = Reduce(s, Select{Index: 1})
	s = Reduce(s, Select{Index: 3})

	got, ok := s.Selected()
	require.True(t, ok)
	assert.Equal(t, 3, got)
	assert.Len(t, s.Answers, 1)
}

func TestSelectIgnoredOutsideAnswering(t *testing.T) {
	s := Reduce(NewState(), Select{Index: 0})
	assert.Empty(t, s.Answers, "no questions held")

	s = loadedState(0)
	s = Reduce(s, Select{Index: 7})
	assert.Empty(t, s.Answers, "out-of-range option")

	s = Reduce(Reduce(s, Select{Index: 0}), Continue{})
	require.True(t, s.ShowResults)
	s = Reduce(s, Select{Index: 2})
	assert.Equal(t, 0, s.Answers[0], "results are frozen")
}

func TestSelectDoesNotMutatePrevious(t *testing.T) {
	before := loadedState(0, 0)
	after := Reduce(before, Select{Index: 1})

	assert.Empty(t, before.Answers)
	assert.Len(t, after.Answers, 1)
}

func TestReviewKeepsQuestions(t *testing.T) {
	s := loadedState(0, 1)
	s = Reduce(Reduce(s, Select{Index: 0}), Continue{})
	s = Reduce(Reduce(s, Select{Index: 1}), Continue{})
	require.True(t, s.ShowResults)
	qs := s.Questions

	s = Reduce(s, Review{})
	assert.Equal(t, qs, s.Questions)
	assert.Equal(t, 0, s.Current)
	assert.False(t, s.ShowResults)
	assert.Empty(t, s.Answers)
	assert.True(t, s.Answering())
}

func TestFetchResetsProgress(t *testing.T) {
	s := loadedState(0, 1)
	s = Reduce(Reduce(s, Select{Index: 0}), Continue{})

	tok := flow.NewToken()
	s = Reduce(s, Fetch{Token: tok})

	assert.Empty(t, s.Questions)
	assert.Empty(t, s.Answers)
	assert.Equal(t, 0, s.Current)
	assert.False(t, s.ShowResults)
	assert.Equal(t, flow.InFlight, s.Status)
	assert.True(t, s.Waiting(), "spinner while nothing is held")
}

func TestStaleFetchDiscarded(t *testing.T) {
	first := flow.NewToken()
	s := Reduce(NewState(), Fetch{Token: first})
	second := flow.NewToken()
	s = Reduce(s, Fetch{Token: second})

	s = Reduce(s, Loaded{Token: first, Questions: sampleQuestions(0)})
	assert.Empty(t, s.Questions, "superseded fetch must be dropped")

	s = Reduce(s, FetchFailed{Token: first, Err: errors.New("late")})
	assert.Equal(t, flow.InFlight, s.Status)

	s = Reduce(s, Loaded{Token: second, Questions: sampleQuestions(0, 1)})
	assert.Len(t, s.Questions, 2)
	assert.Equal(t, flow.Succeeded, s.Status)
}

func TestFetchFailedShowsError(t *testing.T) {
	tok := flow.NewToken()
	s := Reduce(NewState(), Fetch{Token: tok})
	s = Reduce(s, FetchFailed{Token: tok, Err: &llm.ErrProviderUnavailable{}})

	assert.Equal(t, flow.Failed, s.Status)
	assert.Contains(t, s.Error, "unavailable")
	assert.False(t, s.Waiting(), "the error replaces the spinner")

	retry := flow.NewToken()
	s = Reduce(s, Fetch{Token: retry})
	assert.Empty(t, s.Error)
	assert.True(t, s.Waiting())
}

func TestResults(t *testing.T) {
	s := loadedState(1, 0, 2)
	s.Answers = map[int]int{0: 1, 2: 3}

	res := s.Results()
	require.Len(t, res, 3)
	assert.True(t, res[0].Correct)
	assert.Equal(t, -1, res[1].Chosen)
	assert.False(t, res[1].Correct)
	assert.Equal(t, "D", res[2].Question.Option(res[2].Chosen))
	assert.Equal(t, "C", res[2].Question.Option(res[2].Question.CorrectAnswer))
}
