package quizset

import (
	"time"

	"github.com/mind-engage/ecoquiz/internal/bank"
	"github.com/mind-engage/ecoquiz/internal/errs"
	"github.com/mind-engage/ecoquiz/internal/sampler"
)

// QuizSet is a named, ordered selection of items. Quizzes order is play order.
type QuizSet struct {
	ID        string          `json:"id"`
	Name      string          `json:"name"`
	Quizzes   []bank.QuizItem `json:"quizzes"`
	CreatedAt time.Time       `json:"created_at"`
}

// PlayableSet is a QuizSet narrowed to scored items; only these enter a session.
type PlayableSet struct {
	ID        string                `json:"id"`
	Name      string                `json:"name"`
	Quizzes   []bank.ScoredQuizItem `json:"quizzes"`
	CreatedAt time.Time             `json:"created_at"`
}

// Summary is the listing row for a set.
type Summary struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Count     int       `json:"count"`
	CreatedAt time.Time `json:"created_at"`
}

func (s QuizSet) Summary() Summary {
	return Summary{ID: s.ID, Name: s.Name, Count: len(s.Quizzes), CreatedAt: s.CreatedAt}
}

// Playable drops items without options or answer. A set left empty is not
// an error on save, it is just never playable.
func (s QuizSet) Playable() (PlayableSet, error) {
	scored := bank.Narrow(s.Quizzes)
	if len(scored) == 0 {
		return PlayableSet{}, errs.ErrIneligible
	}
	return PlayableSet{ID: s.ID, Name: s.Name, Quizzes: scored, CreatedAt: s.CreatedAt}, nil
}

// PlayableSets narrows every set and drops the ones with nothing to play.
func PlayableSets(sets []QuizSet) []PlayableSet {
	out := make([]PlayableSet, 0, len(sets))
	for _, s := range sets {
		if p, err := s.Playable(); err == nil {
			out = append(out, p)
		}
	}
	return out
}

// RandomSetName labels the transient set drawn straight from the bank.
const RandomSetName = "Random quiz"

// NewRandom draws a transient, never-saved set from items.
func NewRandom(s *sampler.Sampler, items []bank.QuizItem, count int, now time.Time) QuizSet {
	return QuizSet{
		ID:        sampler.RandomSetID,
		Name:      RandomSetName,
		Quizzes:   s.Sample(items, count),
		CreatedAt: now,
	}
}

func clone(s QuizSet) QuizSet {
	s.Quizzes = bank.Clone(s.Quizzes)
	return s
}
