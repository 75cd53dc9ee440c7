package repository

import (
	"context"
	"errors"

	"lendhub/internal/domain/user"
	"lendhub/internal/infra"
	"lendhub/internal/usecase/commands"
	"lendhub/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

var _ commands.UserRepository = (*UserRepository)(nil)

func (r *UserRepository) Create(ctx context.Context, u *user.User) (int64, error) {
	sql, args, err := pg.Insert("users").
		Rows(goqu.Record{"name": u.Name(), "email": u.Email()}).
		Returning("id").
		Prepared(true).ToSQL()
	if err != nil {
		return 0, infra.WrapRepoErr("build user insert", err)
	}

	var id int64
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, wrapDBErr("insert user", err)
	}
	return id, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id int64) (*user.User, error) {
	sql, args, err := pg.From("users").
		Select("id", "name", "email").
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("build user select", err)
	}

	var (
		userID      int64
		name, email string
	)
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&userID, &name, &email); err != nil {
		return nil, wrapDBErr("scan user", err)
	}
	return user.Reconstruct(userID, name, email), nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	sql, args, err := pg.Update("users").
		Set(goqu.Record{"name": u.Name(), "email": u.Email()}).
		Where(goqu.C("id").Eq(u.ID())).
		Prepared(true).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("build user update", err)
	}

	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return wrapDBErr("update user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id int64) error {
	sql, args, err := pg.Delete("users").
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("build user delete", err)
	}

	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return wrapDBErr("delete user", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("user not found", nil, infra.KindNotFound)
	}
	return nil
}

func (r *UserRepository) Exists(ctx context.Context, id int64) (bool, error) {
	return r.exists(ctx, goqu.C("id").Eq(id), "check user exists")
}

func (r *UserRepository) EmailTaken(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, goqu.C("email").Eq(email), "check email taken")
}

func (r *UserRepository) exists(ctx context.Context, cond goqu.Expression, msg string) (bool, error) {
	sql, args, err := pg.From("users").
		Select(goqu.L("1")).
		Where(cond).
		Limit(1).
		Prepared(true).ToSQL()
	if err != nil {
		return false, infra.WrapRepoErr("build user exists select", err)
	}

	var one int
	err = r.pool.QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, wrapDBErr(msg, err)
	}
	return true, nil
}

type UserReadStore struct {
	pool *pgxpool.Pool
}

func NewUserReadStore(pool *pgxpool.Pool) *UserReadStore {
	return &UserReadStore{pool: pool}
}

var _ queries.UserReadStore = (*UserReadStore)(nil)

func (r *UserReadStore) FindByID(ctx context.Context, id int64) (*queries.UserView, error) {
	sql, args, err := pg.From("users").
		Select("id", "name", "email").
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("build user view select", err)
	}

	var v queries.UserView
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&v.ID, &v.Name, &v.Email); err != nil {
		return nil, wrapDBErr("scan user view", err)
	}
	return &v, nil
}

func (r *UserReadStore) FindAll(ctx context.Context) ([]queries.UserView, error) {
	sql, args, err := pg.From("users").
		Select("id", "name", "email").
		Order(goqu.C("id").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("build users select", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapDBErr("query users", err)
	}
	defer rows.Close()

	out := make([]queries.UserView, 0)
	for rows.Next() {
		var v queries.UserView
		if err := rows.Scan(&v.ID, &v.Name, &v.Email); err != nil {
			return nil, wrapDBErr("scan user view", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr("iterate users", err)
	}
	return out, nil
}

func (r *UserReadStore) Exists(ctx context.Context, id int64) (bool, error) {
	repo := UserRepository{pool: r.pool}
	return repo.Exists(ctx, id)
}
