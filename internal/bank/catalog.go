package bank

import (
	"strings"
	"sync"

	"github.com/pkg/errors"

	"github.com/mind-engage/ecoquiz/internal/errs"
)

type Kind string

const (
	KindDisplay Kind = "display"
	KindScored  Kind = "scored"
)

// ParseKind maps an empty string to the scored catalog.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindScored:
		return KindScored, nil
	case KindDisplay:
		return KindDisplay, nil
	default:
		return "", errs.Invalid("catalog", "must be display or scored")
	}
}

// Catalog holds both question banks. Each bank is an immutable snapshot;
// Replace swaps a whole snapshot and never edits one in place.
type Catalog struct {
	mu    sync.RWMutex
	banks map[Kind][]QuizItem
}

// NewCatalog returns a catalog seeded with the built-in banks.
func NewCatalog() *Catalog {
	return &Catalog{banks: map[Kind][]QuizItem{
		KindDisplay: Clone(displayCatalog),
		KindScored:  Clone(scoredCatalog),
	}}
}

// Items returns a private copy of the requested bank.
func (c *Catalog) Items(kind Kind) []QuizItem {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return Clone(c.banks[kind])
}

// Replace installs items as the new snapshot for kind. The scored bank only
// accepts answer-complete items.
func (c *Catalog) Replace(kind Kind, items []QuizItem) error {
	if err := Validate(kind, items); err != nil {
		return err
	}
	snap := Clone(items)
	c.mu.Lock()
	c.banks[kind] = snap
	c.mu.Unlock()
	return nil
}

// Validate checks the invariants a bank must satisfy before it is installed.
func Validate(kind Kind, items []QuizItem) error {
	if len(items) == 0 {
		return errs.Invalid("quizzes", "must not be empty")
	}
	seen := make(map[string]struct{}, len(items))
	for i, it := range items {
		if strings.TrimSpace(it.ID) == "" {
			return errors.Wrapf(errs.Invalid("id", "must not be empty"), "item %d", i)
		}
		if _, dup := seen[it.ID]; dup {
			return errors.Wrapf(errs.Invalid("id", "must be unique"), "item %q", it.ID)
		}
		seen[it.ID] = struct{}{}
		if (len(it.Options) == 0) != (it.CorrectAnswer == nil) {
			return errors.Wrapf(errs.Invalid("options", "and correct_answer must be set together"), "item %q", it.ID)
		}
		if kind == KindScored {
			if _, ok := it.Scored(); !ok {
				return errors.Wrapf(errs.Invalid("correct_answer", "must index into options"), "item %q", it.ID)
			}
		}
	}
	return nil
}
