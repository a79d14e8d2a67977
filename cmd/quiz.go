package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gravitdam/gravitdam/internal/flow"
	"github.com/gravitdam/gravitdam/internal/quiz"
	"github.com/gravitdam/gravitdam/internal/ui/components"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Take a gravity dam exam quiz on the command line",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := setup(cmd, false)
		if err != nil {
			return err
		}
		defer e.Close()

		p, err := e.provider(cmd.Context())
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "Generating exam questions...")

		questions, err := e.quizGenerator(p).Generate(cmd.Context())
		if err != nil {
			return fmt.Errorf("generate questions: %w", err)
		}

		return runQuiz(cmd.InOrStdin(), out, questions)
	},
}

// runQuiz asks every question on in/out and prints the results. It drives
// the same reducer as the Learn tab.
func runQuiz(in io.Reader, out io.Writer, questions []quiz.ExamQuestion) error {
	tok := flow.NewToken()
	s := quiz.Reduce(quiz.NewState(), quiz.Fetch{Token: tok})
	s = quiz.Reduce(s, quiz.Loaded{Token: tok, Questions: questions})

	scanner := bufio.NewScanner(in)
	for s.Answering() {
		q, _ := s.CurrentQuestion()
		fmt.Fprintf(out, "\nQuestion %d of %d\n%s\n", s.Current+1, len(s.Questions), q.Question)
		for i, opt := range q.Options {
			fmt.Fprintf(out, "  %s) %s\n", components.OptionLabel(i), opt)
		}

		for !s.CanContinue() {
			fmt.Fprint(out, "Answer: ")
			if !scanner.Scan() {
				if err := scanner.Err(); err != nil {
					return fmt.Errorf("read answer: %w", err)
				}
				return io.ErrUnexpectedEOF
			}
			idx, ok := parseChoice(scanner.Text(), len(q.Options))
			if !ok {
				fmt.Fprintf(out, "Please answer with a letter from A to %s.\n", components.OptionLabel(len(q.Options)-1))
				continue
			}
			s = quiz.Reduce(s, quiz.Select{Index: idx})
		}
		s = quiz.Reduce(s, quiz.Continue{})
	}

	printResults(out, s)
	return nil
}

// parseChoice accepts a letter (a, B) or a 1-based number.
func parseChoice(text string, n int) (int, bool) {
	t := strings.TrimSpace(strings.ToLower(text))
	if len(t) != 1 {
		return 0, false
	}
	var idx int
	switch c := t[0]; {
	case c >= 'a' && c <= 'z':
		idx = int(c - 'a')
	case c >= '1' && c <= '9':
		idx = int(c - '1')
	default:
		return 0, false
	}
	return idx, idx < n
}

func printResults(out io.Writer, s quiz.State) {
	fmt.Fprintf(out, "\nYour Score: %d / %d\n", s.Score(), len(s.Questions))
	for i, r := range s.Results() {
		mark := "✓"
		if !r.Correct {
			mark = "✗"
		}
		fmt.Fprintf(out, "\n%s %d. %s\n", mark, i+1, r.Question.Question)
		fmt.Fprintf(out, "   Your answer: %s\n", r.Question.Option(r.Chosen))
		fmt.Fprintf(out, "   Correct answer: %s\n", r.Question.Option(r.Question.CorrectAnswer))
		fmt.Fprintf(out, "   Explanation: %s\n", r.Question.Explanation)
	}
}
