package sampler

import (
	"math/rand/v2"

	"github.com/mind-engage/ecoquiz/internal/bank"
)

// Rand is the shuffle source. Production uses the runtime-seeded global
// generator; tests inject a deterministic one.
type Rand interface {
	Shuffle(n int, swap func(i, j int))
}

type globalRand struct{}

func (globalRand) Shuffle(n int, swap func(i, j int)) { rand.Shuffle(n, swap) }

// NewRand returns an unseeded-by-caller generator.
func NewRand() Rand { return globalRand{} }

type Sampler struct {
	rnd Rand
}

func New(r Rand) *Sampler {
	if r == nil {
		r = NewRand()
	}
	return &Sampler{rnd: r}
}

// Sample shuffles a copy of items and truncates it to min(count, len(items)).
// items is never modified.
func (s *Sampler) Sample(items []bank.QuizItem, count int) []bank.QuizItem {
	if count <= 0 || len(items) == 0 {
		return []bank.QuizItem{}
	}
	shuffled := bank.Clone(items)
	s.rnd.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	if count > len(shuffled) {
		count = len(shuffled)
	}
	return shuffled[:count]
}
