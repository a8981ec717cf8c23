package session

import (
	"github.com/mind-engage/ecoquiz/internal/bank"
	"github.com/mind-engage/ecoquiz/internal/grading"
)

// QuestionView is the current question. CorrectAnswer stays hidden until
// the question has been answered.
type QuestionView struct {
	ID            string   `json:"id"`
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer *int     `json:"correct_answer,omitempty"`
}

// Snapshot is a read-only copy of the session for rendering.
type Snapshot struct {
	SessionID      string          `json:"session_id"`
	QuizSetID      string          `json:"quizset_id"`
	QuizSetName    string          `json:"quizset_name"`
	Phase          Phase           `json:"phase"`
	CurrentIndex   int             `json:"current_index"`
	Total          int             `json:"total"`
	Progress       int             `json:"progress"`
	Question       QuestionView    `json:"question"`
	SelectedAnswer *int            `json:"selected_answer,omitempty"`
	LastResult     *grading.Result `json:"last_result,omitempty"`
	Answered       map[string]int  `json:"answered"`
	Score          int             `json:"score"`
	Report         *Report         `json:"report,omitempty"`
}

func (m *Machine) Snapshot() Snapshot {
	q := m.set.Quizzes[m.current]
	view := QuestionView{ID: q.ID, Question: q.Question, Options: append([]string(nil), q.Options...)}
	if m.phase != PhaseSelecting {
		view.CorrectAnswer = bank.Answer(q.CorrectAnswer)
	}
	answered := make(map[string]int, len(m.answered))
	for k, v := range m.answered {
		answered[k] = v
	}
	total := len(m.set.Quizzes)
	s := Snapshot{
		SessionID:    m.id,
		QuizSetID:    m.set.ID,
		QuizSetName:  m.set.Name,
		Phase:        m.phase,
		CurrentIndex: m.current,
		Total:        total,
		Progress:     (m.current + 1) * 100 / total,
		Question:     view,
		Answered:     answered,
		Score:        m.score,
	}
	if m.selected != nil {
		s.SelectedAnswer = bank.Answer(*m.selected)
	}
	if m.last != nil {
		r := *m.last
		s.LastResult = &r
	}
	if m.phase == PhaseCompleted {
		r := newReport(m.score, total)
		s.Report = &r
	}
	return s
}
