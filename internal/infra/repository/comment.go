package repository

import (
	"context"

	"lendhub/internal/domain/item"
	"lendhub/internal/infra"
	"lendhub/internal/usecase/commands"
	"lendhub/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CommentRepository struct {
	pool *pgxpool.Pool
}

func NewCommentRepository(pool *pgxpool.Pool) *CommentRepository {
	return &CommentRepository{pool: pool}
}

var _ commands.CommentRepository = (*CommentRepository)(nil)

func (r *CommentRepository) Create(ctx context.Context, c *item.Comment) (int64, error) {
	sql, args, err := pg.Insert("comments").
		Rows(goqu.Record{
			"item_id":   c.ItemID(),
			"author_id": c.AuthorID(),
			"text":      c.Text(),
			"created":   c.Created(),
		}).
		Returning("id").
		Prepared(true).ToSQL()
	if err != nil {
		return 0, infra.WrapRepoErr("build comment insert", err)
	}

	var id int64
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, wrapDBErr("insert comment", err)
	}
	return id, nil
}

type CommentReadStore struct {
	pool *pgxpool.Pool
}

func NewCommentReadStore(pool *pgxpool.Pool) *CommentReadStore {
	return &CommentReadStore{pool: pool}
}

var _ queries.CommentReadStore = (*CommentReadStore)(nil)

func (r *CommentReadStore) ListByItem(ctx context.Context, itemID int64) ([]queries.CommentView, error) {
	sql, args, err := pg.From(goqu.T("comments").As("c")).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("c.author_id")))).
		Select(goqu.I("c.id"), goqu.I("c.item_id"), goqu.I("u.name"), goqu.I("c.text"), goqu.I("c.created")).
		Where(goqu.I("c.item_id").Eq(itemID)).
		Order(goqu.I("c.id").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("build comments select", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapDBErr("query comments", err)
	}
	defer rows.Close()

	out := make([]queries.CommentView, 0)
	for rows.Next() {
		var v queries.CommentView
		if err := rows.Scan(&v.ID, &v.ItemID, &v.AuthorName, &v.Text, &v.Created); err != nil {
			return nil, wrapDBErr("scan comment view", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr("iterate comments", err)
	}
	return out, nil
}
