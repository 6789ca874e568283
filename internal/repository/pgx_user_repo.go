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

type User struct {
	ID          string `db:"id"`
	DisplayName string `db:"display_name"`
	Email       string `db:"email"`
	Gender      string `db:"gender"`
	SMSPhone    string `db:"sms_phone"`
	SMSProvider string `db:"sms_provider"`
}

type UserRepository interface {
	Get(ctx context.Context, userID string) (*User, error)
	Upsert(ctx context.Context, user *User) error
}

type pgxUserRepository struct {
	pool *pgxpool.Pool
}

func NewPgxUserRepository(pool *pgxpool.Pool) UserRepository {
	return &pgxUserRepository{pool: pool}
}

func (p *pgxUserRepository) Upsert(ctx context.Context, user *User) error {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Insert(
		im.Into("users", "id", "display_name", "email", "gender", "sms_phone", "sms_provider"),
		im.Values(
			psql.Arg(user.ID),
			psql.Arg(user.DisplayName),
			psql.Arg(user.Email),
			psql.Arg(user.Gender),
			psql.Arg(user.SMSPhone),
			psql.Arg(user.SMSProvider),
		),
		im.OnConflict(psql.Quote("id")).DoUpdate(
			im.SetCol("display_name").ToArg(user.DisplayName),
			im.SetCol("email").ToArg(user.Email),
			im.SetCol("gender").ToArg(user.Gender),
			im.SetCol("sms_phone").ToArg(user.SMSPhone),
			im.SetCol("sms_provider").ToArg(user.SMSProvider),
		),
	)
	sql, args, err := q.Build(ctx)
	if err != nil {
		return err
	}

	if _, err = e.Exec(ctx, sql, args...); err != nil {
		return err
	}

	return nil
}

func (p *pgxUserRepository) Get(ctx context.Context, userID string) (*User, error) {
	e := db.GetPgxExecutorFromContext(ctx, p.pool)

	q := psql.Select(
		sm.Columns("id", "display_name", "email", "gender", "sms_phone", "sms_provider"),
		sm.From("users"),
		sm.Where(psql.Quote("id").EQ(psql.Arg(userID))),
	)
	sql, args, err := q.Build(ctx)
	if err != nil {
		return nil, err
	}

	u := &User{}
	if err = e.QueryRow(ctx, sql, args...).Scan(
		&u.ID,
		&u.DisplayName,
		&u.Email,
		&u.Gender,
		&u.SMSPhone,
		&u.SMSProvider,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return u, nil
}
