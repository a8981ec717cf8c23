package bank

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/goccy/go-json"
	"github.com/imroc/req/v3"
	"github.com/pkg/errors"
)

// Source produces a full replacement bank.
type Source interface {
	Fetch(ctx context.Context) ([]QuizItem, error)
}

// FileSource reads a JSON array of items from disk.
type FileSource struct{ Path string }

func (s FileSource) Fetch(_ context.Context) ([]QuizItem, error) {
	raw, err := os.ReadFile(s.Path)
	if err != nil {
		return nil, errors.Wrapf(err, "read bank file %s", s.Path)
	}
	var items []QuizItem
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, errors.Wrapf(err, "decode bank file %s", s.Path)
	}
	return items, nil
}

// RemoteSource pulls the bank from a quiz API that answers
// GET {base}/quizzes with {"quizzes":[...]}.
type RemoteSource struct {
	client *req.Client
}

func NewRemoteSource(baseURL string, timeout time.Duration) *RemoteSource {
	c := req.C().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetCommonHeader("Accept", "application/json")
	return &RemoteSource{client: c}
}

// WithBearer attaches a static token to every request.
func (s *RemoteSource) WithBearer(token string) *RemoteSource {
	if token != "" {
		s.client.SetCommonBearerAuthToken(token)
	}
	return s
}

func (s *RemoteSource) Fetch(ctx context.Context) ([]QuizItem, error) {
	var body struct {
		Quizzes []QuizItem `json:"quizzes"`
	}
	resp, err := s.client.R().
		SetContext(ctx).
		SetSuccessResult(&body).
		Get("/quizzes")
	if err != nil {
		return nil, errors.Wrap(err, "fetch remote bank")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("fetch remote bank: unexpected status %d", resp.StatusCode)
	}
	return body.Quizzes, nil
}

// Reload fetches from src and installs the result as kind.
func Reload(ctx context.Context, c *Catalog, kind Kind, src Source) (int, error) {
	items, err := src.Fetch(ctx)
	if err != nil {
		return 0, err
	}
	if err := c.Replace(kind, items); err != nil {
		return 0, errors.Wrap(err, "install reloaded bank")
	}
	return len(items), nil
}
