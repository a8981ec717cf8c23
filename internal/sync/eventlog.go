package syncx

import (
	"context"
	"database/sql"
	"time"

	"github.com/goccy/go-json"
	"github.com/pkg/errors"
)

const (
	TypeQuizSetCreated   = "quizset.created"
	TypeQuizSetDeleted   = "quizset.deleted"
	TypeSessionCompleted = "session.completed"
)

type Event struct {
	Seq       int64           `json:"seq"`
	SiteID    string          `json:"site_id"`
	Type      string          `json:"type"`
	Key       string          `json:"key"`
	Data      json.RawMessage `json:"data"`
	CreatedAt int64           `json:"created_at"`
}

// Journal is the append-only audit trail. It is write-mostly and never used
// to restore in-memory state.
type Journal interface {
	Record(ctx context.Context, typ, key string, payload any) error
	List(ctx context.Context, typ string, limit int) ([]Event, error)
}

type EventRepo struct {
	db     *sql.DB
	siteID string
	now    func() time.Time
}

func NewEventRepo(db *sql.DB, siteID string) *EventRepo {
	if siteID == "" {
		siteID = "local"
	}
	return &EventRepo{db: db, siteID: siteID, now: time.Now}
}

func (r *EventRepo) Record(ctx context.Context, typ, key string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return errors.Wrapf(err, "encode %s payload", typ)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO event_log (site_id, typ, key, data, created_at)
		 VALUES ($1,$2,$3,$4,$5)`,
		r.siteID, typ, key, string(data), r.now().Unix())
	return errors.Wrapf(err, "append %s", typ)
}

// List returns events oldest first. An empty typ matches every type.
func (r *EventRepo) List(ctx context.Context, typ string, limit int) ([]Event, error) {
	if limit <= 0 || limit > 500 {
		limit = 100
	}
	q := `SELECT seq, site_id, typ, key, data, created_at FROM event_log`
	args := []any{limit}
	if typ != "" {
		q += ` WHERE typ = $2`
		args = append(args, typ)
	}
	rows, err := r.db.QueryContext(ctx, q+` ORDER BY seq LIMIT $1`, args...)
	if err != nil {
		return nil, errors.Wrap(err, "query event_log")
	}
	defer rows.Close()

	var out []Event
	for rows.Next() {
		var e Event
		var data string
		if err := rows.Scan(&e.Seq, &e.SiteID, &e.Type, &e.Key, &data, &e.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "scan event_log")
		}
		e.Data = json.RawMessage(data)
		out = append(out, e)
	}
	return out, errors.Wrap(rows.Err(), "iterate event_log")
}

// Discard is the Journal used when no database is configured.
type Discard struct{}

func (Discard) Record(context.Context, string, string, any) error { return nil }
func (Discard) List(context.Context, string, int) ([]Event, error) { return nil, nil }
