package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/dm"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/yakoovad/buoy-notify/internal/db"
)

type PendingNotification struct {
	ID        int64     `db:"id"`
	QueueKey  string    `db:"queue_key"`
	TeamID    string    `db:"team_id"`
	Recipient string    `db:"recipient"`
	CreatedAt time.Time `db:"created_at"`
}

// NotificationRepository stores pending (team, recipient) notifications.
// Rows are non-unique on write.
type NotificationRepository interface {
	// LockTeam takes a transaction scoped exclusive lock on the team's queue.
	LockTeam(ctx context.Context, teamID string) error
	Add(ctx context.Context, teamID, recipient string) error
	// List returns every queued row for the team in insertion order.
	List(ctx context.Context, teamID string) ([]*PendingNotification, error)
	// Delete removes every row matching the (team, recipient) pair.
	Delete(ctx context.Context, teamID, recipient string) (int64, error)
	// DeleteUpTo removes rows for the given recipients whose id is not above maxID.
	DeleteUpTo(ctx context.Context, teamID string, recipients []string, maxID int64) (int64, error)
}

type pgxNotificationRepository struct {
	pool     *pgxpool.Pool
	queueKey string
}

// NewPgxNotificationRepository returns a queue namespaced by prefix; rows are
// stored under the key "_<prefix>_notify".
func NewPgxNotificationRepository(pool *pgxpool.Pool, prefix string) NotificationRepository {
	return &pgxNotificationRepository{pool: pool, queueKey: QueueKey(prefix)}
}

func QueueKey(prefix string) string {
	return "_" + prefix + "_notify"
}

func (p *pgxNotificationRepository) LockTeam(ctx context.Context, teamID string) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns(psql.F("pg_advisory_xact_lock", psql.F("hashtext", psql.Arg(p.queueKey+":"+teamID)))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	_, err = e.Exec(ctx, sql, args...)
	return err
}

func (p *pgxNotificationRepository) Add(ctx context.Context, teamID, recipient string) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Insert(
		im.Into("pending_notification", "queue_key", "team_id", "recipient"),
		im.Values(psql.Arg(p.queueKey), psql.Arg(teamID), psql.Arg(recipient)),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	_, err = e.Exec(ctx, sql, args...)
	return err
}

func (p *pgxNotificationRepository) List(ctx context.Context, teamID string) ([]*PendingNotification, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("id", "queue_key", "team_id", "recipient", "created_at"),
		sm.From("pending_notification"),
		sm.Where(
			psql.Quote("queue_key").EQ(psql.Arg(p.queueKey)).
				And(psql.Quote("team_id").EQ(psql.Arg(teamID))),
		),
		sm.OrderBy(psql.Quote("id")),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := e.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (*PendingNotification, error) {
		n := &PendingNotification{}
		if err := row.Scan(&n.ID, &n.QueueKey, &n.TeamID, &n.Recipient, &n.CreatedAt); err != nil {
			return nil, err
		}
		return n, nil
	})
}

func (p *pgxNotificationRepository) Delete(ctx context.Context, teamID, recipient string) (int64, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Delete(
		dm.From("pending_notification"),
		dm.Where(
			psql.Quote("queue_key").EQ(psql.Arg(p.queueKey)).
				And(psql.Quote("team_id").EQ(psql.Arg(teamID))).
				And(psql.Quote("recipient").EQ(psql.Arg(recipient))),
		),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return 0, err
	}

	tag, err := e.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (p *pgxNotificationRepository) DeleteUpTo(ctx context.Context, teamID string, recipients []string, maxID int64) (int64, error) {
	if len(recipients) == 0 {
		return 0, nil
	}

	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	vals := make([]any, 0, len(recipients))
	for _, r := range recipients {
		vals = append(vals, r)
	}

	q := psql.Delete(
		dm.From("pending_notification"),
		dm.Where(
			psql.Quote("queue_key").EQ(psql.Arg(p.queueKey)).
				And(psql.Quote("team_id").EQ(psql.Arg(teamID))).
				And(psql.Quote("id").LTE(psql.Arg(maxID))).
				And(psql.Quote("recipient").In(psql.Arg(vals...))),
		),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return 0, err
	}

	tag, err := e.Exec(ctx, sql, args...)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
