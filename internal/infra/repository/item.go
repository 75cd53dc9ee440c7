package repository

import (
	"context"

	"lendhub/internal/domain/item"
	"lendhub/internal/infra"
	"lendhub/internal/usecase/commands"
	"lendhub/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ItemRepository struct {
	pool *pgxpool.Pool
}

func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

var _ commands.ItemRepository = (*ItemRepository)(nil)

func (r *ItemRepository) Create(ctx context.Context, it *item.Item) (int64, error) {
	sql, args, err := pg.Insert("items").
		Rows(goqu.Record{
			"owner_id":    it.OwnerID(),
			"name":        it.Name(),
			"description": it.Description(),
			"available":   it.Available(),
			"request_id":  it.RequestID(),
		}).
		Returning("id").
		Prepared(true).ToSQL()
	if err != nil {
		return 0, infra.WrapRepoErr("build item insert", err)
	}

	var id int64
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, wrapDBErr("insert item", err)
	}
	return id, nil
}

func (r *ItemRepository) FindByID(ctx context.Context, id int64) (*item.Item, error) {
	sql, args, err := pg.From("items").
		Select("id", "owner_id", "name", "description", "available", "request_id").
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("build item select", err)
	}

	var (
		itemID, ownerID   int64
		name, description string
		available         bool
		requestID         *int64
	)
	err = r.pool.QueryRow(ctx, sql, args...).Scan(&itemID, &ownerID, &name, &description, &available, &requestID)
	if err != nil {
		return nil, wrapDBErr("scan item", err)
	}
	return item.ReconstructItem(itemID, ownerID, name, description, available, requestID), nil
}

func (r *ItemRepository) Update(ctx context.Context, it *item.Item) error {
	sql, args, err := pg.Update("items").
		Set(goqu.Record{
			"name":        it.Name(),
			"description": it.Description(),
			"available":   it.Available(),
		}).
		Where(goqu.C("id").Eq(it.ID())).
		Prepared(true).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("build item update", err)
	}

	tag, err := r.pool.Exec(ctx, sql, args...)
	if err != nil {
		return wrapDBErr("update item", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("item not found", nil, infra.KindNotFound)
	}
	return nil
}

// ItemReadStore serves item views. Comments are composed by the query layer
// through CommentReadStore, so item rows stay flat here.
type ItemReadStore struct {
	pool *pgxpool.Pool
}

func NewItemReadStore(pool *pgxpool.Pool) *ItemReadStore {
	return &ItemReadStore{pool: pool}
}

var _ queries.ItemReadStore = (*ItemReadStore)(nil)

func itemViewSelect() *goqu.SelectDataset {
	return pg.From("items").
		Select("id", "owner_id", "name", "description", "available", "request_id")
}

func scanItemView(row pgx.Row) (*queries.ItemView, error) {
	var v queries.ItemView
	err := row.Scan(&v.ID, &v.OwnerID, &v.Name, &v.Description, &v.Available, &v.RequestID)
	if err != nil {
		return nil, wrapDBErr("scan item view", err)
	}
	return &v, nil
}

func (r *ItemReadStore) FindByID(ctx context.Context, id int64) (*queries.ItemView, error) {
	sql, args, err := itemViewSelect().
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("build item view select", err)
	}
	return scanItemView(r.pool.QueryRow(ctx, sql, args...))
}

func (r *ItemReadStore) ListByOwner(ctx context.Context, ownerID int64) ([]queries.ItemView, error) {
	sql, args, err := itemViewSelect().
		Where(goqu.C("owner_id").Eq(ownerID)).
		Order(goqu.C("id").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("build owner items select", err)
	}
	return r.listItems(ctx, sql, args)
}

func (r *ItemReadStore) Search(ctx context.Context, text string) ([]queries.ItemView, error) {
	pattern := "%" + text + "%"
	sql, args, err := itemViewSelect().
		Where(
			goqu.C("available").IsTrue(),
			goqu.Or(
				goqu.C("name").ILike(pattern),
				goqu.C("description").ILike(pattern),
			),
		).
		Order(goqu.C("id").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("build item search select", err)
	}
	return r.listItems(ctx, sql, args)
}

func (r *ItemReadStore) CountByOwner(ctx context.Context, ownerID int64) (int64, error) {
	sql, args, err := pg.From("items").
		Select(goqu.COUNT("*")).
		Where(goqu.C("owner_id").Eq(ownerID)).
		Prepared(true).ToSQL()
	if err != nil {
		return 0, infra.WrapRepoErr("build owner items count", err)
	}

	var n int64
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&n); err != nil {
		return 0, wrapDBErr("count owner items", err)
	}
	return n, nil
}

func (r *ItemReadStore) listItems(ctx context.Context, sql string, args []interface{}) ([]queries.ItemView, error) {
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapDBErr("query items", err)
	}
	defer rows.Close()

	out := make([]queries.ItemView, 0)
	for rows.Next() {
		v, err := scanItemView(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr("iterate items", err)
	}
	return out, nil
}
