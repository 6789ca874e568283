package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
	"github.com/stephenafamo/bob/dialect/psql"
	"github.com/stephenafamo/bob/dialect/psql/im"
	"github.com/stephenafamo/bob/dialect/psql/sm"
	"github.com/yakoovad/buoy-notify/internal/db"
)

type Alert struct {
	ID       string `db:"id"`
	AuthorID string `db:"author_id"`
	Title    string `db:"title"`
	Hash     string `db:"hash"`
}

type AlertRepository interface {
	Create(ctx context.Context, alert *Alert, teamIDs []string) error
	Get(ctx context.Context, alertID string) (*Alert, error)
	// GetTeams returns the ids of the teams the alert was sent to, in the order they were attached.
	GetTeams(ctx context.Context, alertID string) ([]string, error)
}

type pgxAlertRepository struct {
	pool *pgxpool.Pool
}

func NewPgxAlertRepository(pool *pgxpool.Pool) AlertRepository {
	return &pgxAlertRepository{pool: pool}
}

func (p *pgxAlertRepository) Create(ctx context.Context, alert *Alert, teamIDs []string) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Insert(
		im.Into("alert", "id", "author_id", "title", "hash"),
		im.Values(psql.Arg(alert.ID), psql.Arg(alert.AuthorID), psql.Arg(alert.Title), psql.Arg(alert.Hash)),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}
	if _, err = e.Exec(ctx, sql, args...); err != nil {
		return mapConstraintError(err)
	}

	if len(teamIDs) == 0 {
		return nil
	}

	tq := psql.Insert(im.Into("alert_team", "alert_id", "team_id"))
	for _, teamID := range teamIDs {
		tq.Apply(im.Values(psql.Arg(alert.ID), psql.Arg(teamID)))
	}

	sql, args, err = tq.Build(ctx)
	if err != nil {
		return err
	}
	if _, err = e.Exec(ctx, sql, args...); err != nil {
		return mapConstraintError(err)
	}
	return nil
}

func (p *pgxAlertRepository) Get(ctx context.Context, alertID string) (*Alert, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("id", "author_id", "title", "hash"),
		sm.From("alert"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(alertID))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	a := &Alert{}
	if err = e.QueryRow(ctx, sql, args...).Scan(&a.ID, &a.AuthorID, &a.Title, &a.Hash); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return a, nil
}

func (p *pgxAlertRepository) GetTeams(ctx context.Context, alertID string) ([]string, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("team_id"),
		sm.From("alert_team"),
		sm.Where(psql.Quote("alert_id").EQ(psql.Arg(alertID))),
		sm.OrderBy(psql.Quote("position")),
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

	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (string, error) {
		var id string
		err := row.Scan(&id)
		return id, err
	})
}
