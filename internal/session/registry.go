package session

import (
	"slices"
	"sync"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"github.com/mind-engage/ecoquiz/internal/errs"
	"github.com/mind-engage/ecoquiz/internal/grading"
	"github.com/mind-engage/ecoquiz/internal/quizset"
)

// CompletionFunc observes a session reaching completed.
type CompletionFunc func(s Snapshot, r Report)

// Registry owns the live play-throughs, one Machine per session id, and
// applies operations to them one at a time.
type Registry struct {
	mu         sync.Mutex
	sessions   map[string]*Machine
	grader     grading.Grader
	log        logrus.FieldLogger
	newID      func() string
	onComplete []CompletionFunc
}

func NewRegistry(g grading.Grader, log logrus.FieldLogger) *Registry {
	return &Registry{
		sessions: map[string]*Machine{},
		grader:   g,
		log:      log,
		newID:    func() string { return uuid.NewString() },
	}
}

// OnComplete registers fn to run whenever a session completes.
func (r *Registry) OnComplete(fn CompletionFunc) {
	r.mu.Lock()
	r.onComplete = append(r.onComplete, fn)
	r.mu.Unlock()
}

func (r *Registry) Start(set quizset.PlayableSet) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, err := New(r.newID(), set, r.grader, r.log)
	if err != nil {
		return Snapshot{}, err
	}
	r.sessions[m.ID()] = m
	m.log.WithField("total", len(set.Quizzes)).Info("session started")
	return m.Snapshot(), nil
}

func (r *Registry) Get(id string) (Snapshot, error) {
	var s Snapshot
	err := r.do(id, func(m *Machine) error {
		s = m.Snapshot()
		return nil
	})
	return s, err
}

func (r *Registry) Select(id string, index int) (Snapshot, error) {
	var s Snapshot
	err := r.do(id, func(m *Machine) error {
		if err := m.SelectAnswer(index); err != nil {
			return err
		}
		s = m.Snapshot()
		return nil
	})
	return s, err
}

func (r *Registry) Submit(id string) (Snapshot, error) {
	var s Snapshot
	err := r.do(id, func(m *Machine) error {
		if _, err := m.SubmitAnswer(); err != nil {
			return err
		}
		s = m.Snapshot()
		return nil
	})
	return s, err
}

// Advance moves on; the completion hooks run after the lock is released.
func (r *Registry) Advance(id string) (Snapshot, error) {
	var (
		s    Snapshot
		rep  Report
		done bool
	)
	err := r.do(id, func(m *Machine) error {
		if err := m.Advance(); err != nil {
			return err
		}
		s = m.Snapshot()
		if m.Phase() == PhaseCompleted {
			rep, _ = m.Report()
			done = true
		}
		return nil
	})
	if err != nil || !done {
		return s, err
	}
	r.mu.Lock()
	hooks := slices.Clone(r.onComplete)
	r.mu.Unlock()
	for _, fn := range hooks {
		fn(s, rep)
	}
	return s, nil
}

// Restart swaps in a fresh machine under the same session id.
func (r *Registry) Restart(id string) (Snapshot, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.sessions[id]
	if !ok {
		return Snapshot{}, errors.Wrapf(errs.ErrNotFound, "session %s", id)
	}
	fresh, err := m.Restart()
	if err != nil {
		return Snapshot{}, err
	}
	r.sessions[id] = fresh
	return fresh.Snapshot(), nil
}

func (r *Registry) Report(id string) (Report, error) {
	var rep Report
	err := r.do(id, func(m *Machine) error {
		var err error
		rep, err = m.Report()
		return err
	})
	return rep, err
}

// Abandon drops the session; it reports whether one existed.
func (r *Registry) Abandon(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.sessions[id]
	delete(r.sessions, id)
	return ok
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sessions)
}

func (r *Registry) do(id string, fn func(m *Machine) error) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.sessions[id]
	if !ok {
		return errors.Wrapf(errs.ErrNotFound, "session %s", id)
	}
	return fn(m)
}
