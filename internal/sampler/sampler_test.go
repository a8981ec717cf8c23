package sampler

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mind-engage/ecoquiz/internal/bank"
)

// reverseRand reverses the slice, which makes shuffle order predictable.
type reverseRand struct{}

func (reverseRand) Shuffle(n int, swap func(i, j int)) {
	for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
		swap(i, j)
	}
}

func makeBank(n int) []bank.QuizItem {
	out := make([]bank.QuizItem, n)
	for i := range out {
		out[i] = bank.QuizItem{
			ID:            fmt.Sprintf("q%d", i),
			Question:      fmt.Sprintf("question %d", i),
			Options:       []string{"a", "b"},
			CorrectAnswer: bank.Answer(i % 2),
		}
	}
	return out
}

func TestSampleLengthAndMembership(t *testing.T) {
	s := New(nil)
	for _, size := range []int{0, 1, 5, 10} {
		b := makeBank(size)
		ids := map[string]bool{}
		for _, it := range b {
			ids[it.ID] = true
		}
		for _, count := range []int{-3, 0, 1, 4, 5, 10, 25} {
			got := s.Sample(b, count)
			want := count
			if want < 0 {
				want = 0
			}
			if want > size {
				want = size
			}
			require.Len(t, got, want, "size=%d count=%d", size, count)

			seen := map[string]bool{}
			for _, it := range got {
				assert.True(t, ids[it.ID], "unknown id %s", it.ID)
				assert.False(t, seen[it.ID], "duplicate id %s", it.ID)
				seen[it.ID] = true
			}
		}
	}
}

func TestSampleDoesNotMutateBank(t *testing.T) {
	b := makeBank(6)
	before := bank.Clone(b)
	s := New(reverseRand{})
	got := s.Sample(b, 6)
	got[0].Question = "changed"
	assert.Equal(t, before, b)
}

func TestSampleUsesInjectedRand(t *testing.T) {
	b := makeBank(4)
	got := New(reverseRand{}).Sample(b, 2)
	require.Len(t, got, 2)
	assert.Equal(t, "q3", got[0].ID)
	assert.Equal(t, "q2", got[1].ID)
}

func TestCatalogFetcher(t *testing.T) {
	c := bank.NewCatalog()
	f := CatalogFetcher(c, bank.KindScored, New(nil))
	items, err := f(context.Background(), 5)
	require.NoError(t, err)
	assert.Len(t, items, 5)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = f(ctx, 5)
	assert.ErrorIs(t, err, context.Canceled)
}

func quietLogger() logrus.FieldLogger {
	l, _ := test.NewNullLogger()
	return l
}

func TestSurfaceDropsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	var calls int
	var mu sync.Mutex
	fetch := func(ctx context.Context, count int) ([]bank.QuizItem, error) {
		mu.Lock()
		calls++
		first := calls == 1
		mu.Unlock()
		if first {
			close(started)
			<-release
			return makeBank(1), nil
		}
		return makeBank(count), nil
	}
	s := NewSurface(fetch, quietLogger())

	type result struct {
		view View
		err  error
	}
	slow := make(chan result, 1)
	go func() {
		v, err := s.Refresh(context.Background(), 1)
		slow <- result{v, err}
	}()
	<-started

	fresh, err := s.Refresh(context.Background(), 3)
	require.NoError(t, err)
	assert.Len(t, fresh.Quizzes, 3)

	close(release)
	old := <-slow
	require.ErrorIs(t, old.err, ErrSuperseded)
	assert.Less(t, old.view.Token, fresh.Token)

	cur := s.Current()
	assert.Equal(t, fresh.Token, cur.Token)
	assert.Len(t, cur.Quizzes, 3)
	assert.Equal(t, RandomSetID, cur.SetID)
}

func TestSurfaceShowSupersedesPendingRefresh(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	fetch := func(ctx context.Context, count int) ([]bank.QuizItem, error) {
		close(started)
		<-release
		return makeBank(count), nil
	}
	s := NewSurface(fetch, quietLogger())

	done := make(chan error, 1)
	go func() {
		_, err := s.Refresh(context.Background(), 2)
		done <- err
	}()
	<-started
	shown := s.Show("set-1", makeBank(4))
	close(release)

	assert.ErrorIs(t, <-done, ErrSuperseded)
	assert.Equal(t, "set-1", s.Current().SetID)
	assert.Equal(t, shown.Token, s.Current().Token)
}

func TestSurfaceFetchError(t *testing.T) {
	boom := errors.New("boom")
	s := NewSurface(func(context.Context, int) ([]bank.QuizItem, error) { return nil, boom }, quietLogger())
	_, err := s.Refresh(context.Background(), 2)
	assert.ErrorIs(t, err, boom)
	assert.Empty(t, s.Current().Quizzes)
}

func TestForgetSetFallsBackOnlyWhenShown(t *testing.T) {
	s := NewSurface(CatalogFetcher(bank.NewCatalog(), bank.KindScored, New(nil)), quietLogger())
	s.Show("set-1", makeBank(2))

	fell, err := s.ForgetSet(context.Background(), "set-2", 5)
	require.NoError(t, err)
	assert.False(t, fell)
	assert.Equal(t, "set-1", s.Current().SetID)

	fell, err = s.ForgetSet(context.Background(), "set-1", 5)
	require.NoError(t, err)
	assert.True(t, fell)
	cur := s.Current()
	assert.Equal(t, RandomSetID, cur.SetID)
	assert.Len(t, cur.Quizzes, 5)
}

func TestSurfaceCountReflectsItemsShown(t *testing.T) {
	c := bank.NewCatalog()
	s := NewSurface(CatalogFetcher(c, bank.KindDisplay, New(nil)), quietLogger())
	v, err := s.Refresh(context.Background(), 50)
	require.NoError(t, err)
	total := len(c.Items(bank.KindDisplay))
	assert.Len(t, v.Quizzes, total)
	assert.Equal(t, total, v.Count)
	assert.Equal(t, total, s.Current().Count)
}
