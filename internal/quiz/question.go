package quiz

// ExamQuestion is one multiple-choice question.
type ExamQuestion struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

// IsCorrect reports whether option i is the correct answer.
func (q ExamQuestion) IsCorrect(i int) bool {
	return i == q.CorrectAnswer
}

// Option returns the text of option i, or "" when i is out of range.
func (q ExamQuestion) Option(i int) string {
	if i < 0 || i >= len(q.Options) {
		return ""
	}
	return q.Options[i]
}
