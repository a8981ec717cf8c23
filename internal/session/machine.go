package session

import (
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mind-engage/ecoquiz/internal/errs"
	"github.com/mind-engage/ecoquiz/internal/grading"
	"github.com/mind-engage/ecoquiz/internal/quizset"
)

type Phase string

const (
	PhaseSelecting Phase = "selecting"
	PhaseAnswered  Phase = "answered"
	PhaseCompleted Phase = "completed"
)

// Machine walks one play-through of a playable set. It is not safe for
// concurrent use; Registry serializes access.
//
// Invariants:
//   - 0 <= current < len(set.Quizzes) in every phase
//   - score <= current + 1 once answered, <= current while selecting
//   - answered gains one entry per question, at selecting -> answered only
type Machine struct {
	id       string
	set      quizset.PlayableSet
	grader   grading.Grader
	log      logrus.FieldLogger
	current  int
	selected *int
	answered map[string]int
	last     *grading.Result
	score    int
	phase    Phase
}

// New starts a play-through. The set must hold at least one scored item and
// no repeated item ids, since answers are keyed by id.
func New(id string, set quizset.PlayableSet, g grading.Grader, log logrus.FieldLogger) (*Machine, error) {
	if len(set.Quizzes) == 0 {
		return nil, errors.Wrapf(errs.ErrIneligible, "quiz set %s", set.ID)
	}
	seen := make(map[string]struct{}, len(set.Quizzes))
	for _, q := range set.Quizzes {
		if _, dup := seen[q.ID]; dup {
			return nil, errors.Wrapf(errs.Invalid("quizzes", "ids must be unique"), "quiz set %s", set.ID)
		}
		seen[q.ID] = struct{}{}
	}
	if g == nil {
		g = grading.NewDefaultGrader()
	}
	return &Machine{
		id:       id,
		set:      set,
		grader:   g,
		log:      log.WithFields(logrus.Fields{"session_id": id, "quizset_id": set.ID}),
		answered: map[string]int{},
		phase:    PhaseSelecting,
	}, nil
}

func (m *Machine) ID() string   { return m.id }
func (m *Machine) Phase() Phase { return m.phase }

// SelectAnswer records a tentative choice. Re-selecting before submit
// overwrites it; selecting after submit is ignored.
func (m *Machine) SelectAnswer(index int) error {
	switch m.phase {
	case PhaseAnswered:
		return nil
	case PhaseCompleted:
		return errors.Wrap(errs.ErrInvalidOperation, "session completed")
	}
	q := m.set.Quizzes[m.current]
	if index < 0 || index >= len(q.Options) {
		return errs.Invalid("index", "out of range")
	}
	m.selected = &index
	return nil
}

// SubmitAnswer locks in the selection and scores it.
func (m *Machine) SubmitAnswer() (grading.Result, error) {
	if m.phase != PhaseSelecting {
		return grading.Result{}, errors.Wrapf(errs.ErrInvalidOperation, "submit in phase %s", m.phase)
	}
	if m.selected == nil {
		return grading.Result{}, errors.Wrap(errs.ErrInvalidOperation, "no answer selected")
	}
	q := m.set.Quizzes[m.current]
	res, err := m.grader.Grade(grading.Q{
		Type:    grading.TypeFor(len(q.Options)),
		Options: len(q.Options),
		Correct: q.CorrectAnswer,
	}, *m.selected)
	if err != nil {
		return grading.Result{}, errors.Wrapf(err, "grade question %s", q.ID)
	}

	m.answered[q.ID] = *m.selected
	if res.Correct {
		m.score++
	}
	m.last = &res
	m.phase = PhaseAnswered
	m.log.WithFields(logrus.Fields{"question_id": q.ID, "correct": res.Correct}).Debug("answer submitted")
	return res, nil
}

// Advance moves to the next question, or completes the session after the last.
func (m *Machine) Advance() error {
	if m.phase != PhaseAnswered {
		return errors.Wrapf(errs.ErrInvalidOperation, "advance in phase %s", m.phase)
	}
	if m.current+1 < len(m.set.Quizzes) {
		m.current++
		m.selected = nil
		m.last = nil
		m.phase = PhaseSelecting
		return nil
	}
	m.phase = PhaseCompleted
	m.log.WithField("score", m.score).Info("session completed")
	return nil
}

// Restart returns a fresh machine over the same set. The receiver is left
// untouched so a completed play-through is never reused.
func (m *Machine) Restart() (*Machine, error) {
	if m.phase == PhaseSelecting {
		return nil, errors.Wrap(errs.ErrInvalidOperation, "restart while selecting")
	}
	return New(m.id, m.set, m.grader, m.log)
}

// Report is available once the session is completed.
func (m *Machine) Report() (Report, error) {
	if m.phase != PhaseCompleted {
		return Report{}, errors.Wrapf(errs.ErrInvalidOperation, "report in phase %s", m.phase)
	}
	return newReport(m.score, len(m.set.Quizzes)), nil
}
