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

type Team struct {
	ID       string `db:"id"`
	AuthorID string `db:"author_id"`
	Title    string `db:"title"`
	Status   string `db:"status"`
}

type TeamRepository interface {
	Create(ctx context.Context, team *Team) error
	Get(ctx context.Context, teamID string) (*Team, error)
	AddMember(ctx context.Context, teamID, userID string, confirmed bool) error
	// GetConfirmedMembers returns confirmed member ids in membership order.
	GetConfirmedMembers(ctx context.Context, teamID string) ([]string, error)
}

type pgxTeamRepository struct {
	pool *pgxpool.Pool
}

func NewPgxTeamRepository(pool *pgxpool.Pool) TeamRepository {
	return &pgxTeamRepository{pool: pool}
}

func (p *pgxTeamRepository) Create(ctx context.Context, team *Team) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Insert(
		im.Into("team", "id", "author_id", "title", "status"),
		im.Values(psql.Arg(team.ID), psql.Arg(team.AuthorID), psql.Arg(team.Title), psql.Arg(team.Status)),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	if _, err = e.Exec(ctx, sql, args...); err != nil {
		return mapConstraintError(err)
	}
	return nil
}

func (p *pgxTeamRepository) Get(ctx context.Context, teamID string) (*Team, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("id", "author_id", "title", "status"),
		sm.From("team"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(teamID))),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	team := &Team{}
	if err = e.QueryRow(ctx, sql, args...).Scan(&team.ID, &team.AuthorID, &team.Title, &team.Status); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return team, nil
}

func (p *pgxTeamRepository) AddMember(ctx context.Context, teamID, userID string, confirmed bool) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Insert(
		im.Into("team_member", "team_id", "user_id", "confirmed"),
		im.Values(psql.Arg(teamID), psql.Arg(userID), psql.Arg(confirmed)),
		im.OnConflict(psql.Quote("team_id"), psql.Quote("user_id")).DoUpdate(
			im.SetCol("confirmed").ToArg(confirmed),
		),
	)

	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	if _, err = e.Exec(ctx, sql, args...); err != nil {
		return mapConstraintError(err)
	}
	return nil
}

func (p *pgxTeamRepository) GetConfirmedMembers(ctx context.Context, teamID string) ([]string, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("user_id"),
		sm.From("team_member"),
		sm.Where(
			psql.Quote("team_id").EQ(psql.Arg(teamID)).
				And(psql.Quote("confirmed").EQ(psql.Arg(true))),
		),
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
