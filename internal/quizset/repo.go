package quizset

import (
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mind-engage/ecoquiz/internal/bank"
	"github.com/mind-engage/ecoquiz/internal/errs"
)

// Repository keeps the quiz sets saved during one process run, in creation
// order. It never holds the transient random sample.
type Repository struct {
	mu    sync.RWMutex
	sets  []QuizSet
	now   func() time.Time
	newID func() string
	log   logrus.FieldLogger
}

type Option func(*Repository)

func WithClock(now func() time.Time) Option { return func(r *Repository) { r.now = now } }
func WithIDs(gen func() string) Option       { return func(r *Repository) { r.newID = gen } }

func NewRepository(log logrus.FieldLogger, opts ...Option) *Repository {
	r := &Repository{
		now:   time.Now,
		newID: func() string { return uuid.NewString() },
		log:   log,
	}
	for _, o := range opts {
		o(r)
	}
	return r
}

// Create validates and appends a new set. The name is trimmed and item ids
// must be unique within the set. Nothing is stored when validation fails.
func (r *Repository) Create(name string, quizzes []bank.QuizItem) (QuizSet, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return QuizSet{}, errs.Invalid("name", "must not be empty")
	}
	if len(quizzes) == 0 {
		return QuizSet{}, errs.Invalid("quizzes", "must not be empty")
	}
	seen := make(map[string]struct{}, len(quizzes))
	for _, q := range quizzes {
		if _, dup := seen[q.ID]; dup {
			return QuizSet{}, errors.Wrapf(errs.Invalid("quizzes", "ids must be unique"), "item %q", q.ID)
		}
		seen[q.ID] = struct{}{}
	}
	s := QuizSet{
		Name:      name,
		Quizzes:   bank.Clone(quizzes),
		CreatedAt: r.now(),
	}

	r.mu.Lock()
	s.ID = r.newID()
	for _, existing := range r.sets {
		if existing.ID == s.ID {
			r.mu.Unlock()
			return QuizSet{}, errors.Errorf("quiz set id collision: %s", s.ID)
		}
	}
	r.sets = append(r.sets, s)
	r.mu.Unlock()

	r.log.WithFields(logrus.Fields{"quizset_id": s.ID, "count": len(s.Quizzes)}).Info("quiz set saved")
	return clone(s), nil
}

// List returns every saved set in creation order.
func (r *Repository) List() []QuizSet {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]QuizSet, len(r.sets))
	for i, s := range r.sets {
		out[i] = clone(s)
	}
	return out
}

func (r *Repository) Get(id string) (QuizSet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, s := range r.sets {
		if s.ID == id {
			return clone(s), nil
		}
	}
	return QuizSet{}, errors.Wrapf(errs.ErrNotFound, "quiz set %s", id)
}

// Delete removes the set with id. Unknown ids are ignored; the result
// reports whether anything was removed.
func (r *Repository) Delete(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i, s := range r.sets {
		if s.ID == id {
			r.sets = append(r.sets[:i:i], r.sets[i+1:]...)
			r.log.WithField("quizset_id", id).Info("quiz set deleted")
			return true
		}
	}
	return false
}

func (r *Repository) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.sets)
}
