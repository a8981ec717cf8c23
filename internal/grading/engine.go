package grading

import (
	"github.com/pkg/errors"
)

const (
	TypeSingleChoice = "single_choice"
	TypeTrueFalse    = "true_false"
)

// Q is the minimal view of a question needed for grading.
type Q struct {
	Type    string
	Options int
	Correct int
}

// Result is the outcome of grading one selection.
type Result struct {
	Correct bool `json:"correct"`
	Points  int  `json:"points"`
}

// Strategy grades a single selection.
type Strategy interface {
	Grade(q Q, selected int) (Result, error)
}

// Grader routes by question type to the correct Strategy.
type Grader interface {
	Grade(q Q, selected int) (Result, error)
}

type defaultGrader struct {
	strategies map[string]Strategy
}

func (g *defaultGrader) Grade(q Q, selected int) (Result, error) {
	if q.Type == "" {
		q.Type = TypeSingleChoice
	}
	s, ok := g.strategies[q.Type]
	if !ok {
		return Result{}, errors.Errorf("no grading strategy for %q", q.Type)
	}
	return s.Grade(q, selected)
}

type Option func(*config)

type config struct {
	Points int
}

// WithPoints sets the points a correct answer is worth.
func WithPoints(n int) Option { return func(c *config) { c.Points = n } }

func NewDefaultGrader(opts ...Option) Grader {
	cfg := &config{Points: 1}
	for _, o := range opts {
		o(cfg)
	}
	choice := singleChoiceStrategy{points: cfg.Points}
	return &defaultGrader{
		strategies: map[string]Strategy{
			TypeSingleChoice: choice,
			TypeTrueFalse:    trueFalseStrategy{choice},
		},
	}
}

// --- Strategies ---

type singleChoiceStrategy struct{ points int }

func (s singleChoiceStrategy) Grade(q Q, selected int) (Result, error) {
	if selected < 0 || selected >= q.Options {
		return Result{}, errors.Errorf("selection %d out of range [0,%d)", selected, q.Options)
	}
	if selected == q.Correct {
		return Result{Correct: true, Points: s.points}, nil
	}
	return Result{}, nil
}

type trueFalseStrategy struct{ singleChoiceStrategy }

func (s trueFalseStrategy) Grade(q Q, selected int) (Result, error) {
	if q.Options != 2 {
		return Result{}, errors.Errorf("true/false question must have 2 options, has %d", q.Options)
	}
	return s.singleChoiceStrategy.Grade(q, selected)
}

// TypeFor picks the strategy for a question with n options.
func TypeFor(n int) string {
	if n == 2 {
		return TypeTrueFalse
	}
	return TypeSingleChoice
}
