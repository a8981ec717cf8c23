package sampler

import (
	"context"
	"errors"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/mind-engage/ecoquiz/internal/bank"
)

// RandomSetID marks a transient, never-saved sample.
const RandomSetID = "random"

// ErrSuperseded is returned to a Refresh whose result arrived after a newer
// request had already been issued. The stale result is discarded.
var ErrSuperseded = errors.New("sample superseded by a newer request")

// Fetcher draws count items; it may be slow.
type Fetcher func(ctx context.Context, count int) ([]bank.QuizItem, error)

// CatalogFetcher samples from the given bank of c on every call.
func CatalogFetcher(c *bank.Catalog, kind bank.Kind, s *Sampler) Fetcher {
	return func(ctx context.Context, count int) ([]bank.QuizItem, error) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return s.Sample(c.Items(kind), count), nil
	}
}

// View is what a display surface currently shows.
type View struct {
	Token   uint64          `json:"token"`
	SetID   string          `json:"set_id"`
	Count   int             `json:"count"`
	Quizzes []bank.QuizItem `json:"quizzes"`
}

// Surface is one display surface: at most the newest request is ever applied.
type Surface struct {
	mu      sync.Mutex
	fetch   Fetcher
	log     logrus.FieldLogger
	issued  uint64
	current View
}

func NewSurface(fetch Fetcher, log logrus.FieldLogger) *Surface {
	return &Surface{fetch: fetch, log: log}
}

func (s *Surface) next() uint64 {
	s.issued++
	return s.issued
}

// Refresh draws a fresh random sample and shows it, unless a newer request
// was issued while this one was in flight.
func (s *Surface) Refresh(ctx context.Context, count int) (View, error) {
	s.mu.Lock()
	token := s.next()
	s.mu.Unlock()

	items, err := s.fetch(ctx, count)

	s.mu.Lock()
	defer s.mu.Unlock()
	if token != s.issued {
		s.log.WithFields(logrus.Fields{"token": token, "latest": s.issued}).Debug("dropping stale sample")
		return View{Token: token}, ErrSuperseded
	}
	if err != nil {
		return View{Token: token}, err
	}
	s.current = View{Token: token, SetID: RandomSetID, Count: len(items), Quizzes: items}
	return cloneView(s.current), nil
}

// Show displays a saved set. It supersedes any pending Refresh.
func (s *Surface) Show(setID string, quizzes []bank.QuizItem) View {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = View{Token: s.next(), SetID: setID, Count: len(quizzes), Quizzes: bank.Clone(quizzes)}
	return cloneView(s.current)
}

// ForgetSet falls back to a fresh sample of count items when setID is the
// set currently shown. It reports whether a fallback happened.
func (s *Surface) ForgetSet(ctx context.Context, setID string, count int) (bool, error) {
	s.mu.Lock()
	shown := s.current.SetID == setID && setID != RandomSetID
	s.mu.Unlock()
	if !shown {
		return false, nil
	}
	_, err := s.Refresh(ctx, count)
	if errors.Is(err, ErrSuperseded) {
		err = nil
	}
	return true, err
}

// Current returns the last applied view.
func (s *Surface) Current() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneView(s.current)
}

func cloneView(v View) View {
	v.Quizzes = bank.Clone(v.Quizzes)
	return v
}
