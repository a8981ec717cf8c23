package bank

// QuizItem is the display form of a catalog entry. Options and CorrectAnswer
// are either both present or both absent; a one-sided item is not scorable.
type QuizItem struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options,omitempty"`
	CorrectAnswer *int     `json:"correct_answer,omitempty"`
}

// ScoredQuizItem is a QuizItem with a guaranteed, in-range answer key.
type ScoredQuizItem struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correct_answer"`
}

// Answer returns a pointer to i, for building items inline.
func Answer(i int) *int { return &i }

// Scored narrows q to its scored form.
func (q QuizItem) Scored() (ScoredQuizItem, bool) {
	if len(q.Options) == 0 || q.CorrectAnswer == nil {
		return ScoredQuizItem{}, false
	}
	if *q.CorrectAnswer < 0 || *q.CorrectAnswer >= len(q.Options) {
		return ScoredQuizItem{}, false
	}
	return ScoredQuizItem{
		ID:            q.ID,
		Question:      q.Question,
		Options:       append([]string(nil), q.Options...),
		CorrectAnswer: *q.CorrectAnswer,
	}, true
}

// Narrow keeps the scorable items of items, preserving order.
func Narrow(items []QuizItem) []ScoredQuizItem {
	out := make([]ScoredQuizItem, 0, len(items))
	for _, it := range items {
		if s, ok := it.Scored(); ok {
			out = append(out, s)
		}
	}
	return out
}

// Clone deep-copies items so callers can never alias catalog storage.
func Clone(items []QuizItem) []QuizItem {
	out := make([]QuizItem, len(items))
	for i, it := range items {
		out[i] = QuizItem{ID: it.ID, Question: it.Question}
		if it.Options != nil {
			out[i].Options = append([]string(nil), it.Options...)
		}
		if it.CorrectAnswer != nil {
			out[i].CorrectAnswer = Answer(*it.CorrectAnswer)
		}
	}
	return out
}
