package repository

import (
	"context"
	"errors"

	"lendhub/internal/domain/request"
	"lendhub/internal/infra"
	"lendhub/internal/usecase/commands"
	"lendhub/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RequestRepository struct {
	pool *pgxpool.Pool
}

func NewRequestRepository(pool *pgxpool.Pool) *RequestRepository {
	return &RequestRepository{pool: pool}
}

var _ commands.RequestRepository = (*RequestRepository)(nil)

func (r *RequestRepository) Create(ctx context.Context, req *request.ItemRequest) (int64, error) {
	sql, args, err := pg.Insert("item_requests").
		Rows(goqu.Record{
			"requestor_id": req.RequestorID(),
			"description":  req.Description(),
			"created":      req.Created(),
		}).
		Returning("id").
		Prepared(true).ToSQL()
	if err != nil {
		return 0, infra.WrapRepoErr("build request insert", err)
	}

	var id int64
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, wrapDBErr("insert request", err)
	}
	return id, nil
}

func (r *RequestRepository) Exists(ctx context.Context, id int64) (bool, error) {
	sql, args, err := pg.From("item_requests").
		Select(goqu.L("1")).
		Where(goqu.C("id").Eq(id)).
		Limit(1).
		Prepared(true).ToSQL()
	if err != nil {
		return false, infra.WrapRepoErr("build request exists select", err)
	}

	var one int
	err = r.pool.QueryRow(ctx, sql, args...).Scan(&one)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, wrapDBErr("check request exists", err)
	}
	return true, nil
}

type RequestReadStore struct {
	pool *pgxpool.Pool
}

func NewRequestReadStore(pool *pgxpool.Pool) *RequestReadStore {
	return &RequestReadStore{pool: pool}
}

var _ queries.RequestReadStore = (*RequestReadStore)(nil)

func (r *RequestReadStore) FindByID(ctx context.Context, id int64) (*queries.ItemRequestView, error) {
	sql, args, err := pg.From("item_requests").
		Select("id", "requestor_id", "description", "created").
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("build request view select", err)
	}

	var v queries.ItemRequestView
	err = r.pool.QueryRow(ctx, sql, args...).Scan(&v.ID, &v.RequestorID, &v.Description, &v.Created)
	if err != nil {
		return nil, wrapDBErr("scan request view", err)
	}
	if err := r.attachItems(ctx, []*queries.ItemRequestView{&v}); err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *RequestReadStore) ListByRequestor(ctx context.Context, requestorID int64) ([]queries.ItemRequestView, error) {
	stmt := pg.From("item_requests").
		Select("id", "requestor_id", "description", "created").
		Where(goqu.C("requestor_id").Eq(requestorID)).
		Order(goqu.C("created").Desc(), goqu.C("id").Desc())
	return r.listRequests(ctx, stmt)
}

func (r *RequestReadStore) ListOthers(ctx context.Context, userID int64, from, size int) ([]queries.ItemRequestView, error) {
	stmt := pg.From("item_requests").
		Select("id", "requestor_id", "description", "created").
		Where(goqu.C("requestor_id").Neq(userID)).
		Order(goqu.C("created").Desc(), goqu.C("id").Desc()).
		Offset(uint(from)).
		Limit(uint(size))
	return r.listRequests(ctx, stmt)
}

func (r *RequestReadStore) listRequests(ctx context.Context, stmt *goqu.SelectDataset) ([]queries.ItemRequestView, error) {
	sql, args, err := stmt.Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("build requests select", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapDBErr("query requests", err)
	}
	defer rows.Close()

	out := make([]queries.ItemRequestView, 0)
	for rows.Next() {
		var v queries.ItemRequestView
		if err := rows.Scan(&v.ID, &v.RequestorID, &v.Description, &v.Created); err != nil {
			return nil, wrapDBErr("scan request view", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr("iterate requests", err)
	}

	refs := make([]*queries.ItemRequestView, len(out))
	for i := range out {
		refs[i] = &out[i]
	}
	if err := r.attachItems(ctx, refs); err != nil {
		return nil, err
	}
	return out, nil
}

// attachItems loads the items offered in answer to each request in one query.
func (r *RequestReadStore) attachItems(ctx context.Context, views []*queries.ItemRequestView) error {
	for _, v := range views {
		v.Items = []queries.ItemRef{}
	}
	if len(views) == 0 {
		return nil
	}

	ids := make([]int64, len(views))
	byID := make(map[int64]*queries.ItemRequestView, len(views))
	for i, v := range views {
		ids[i] = v.ID
		byID[v.ID] = v
	}

	sql, args, err := pg.From("items").
		Select("id", "name", "owner_id", "request_id").
		Where(goqu.C("request_id").In(ids)).
		Order(goqu.C("id").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return infra.WrapRepoErr("build request items select", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return wrapDBErr("query request items", err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			ref       queries.ItemRef
			requestID int64
		)
		if err := rows.Scan(&ref.ID, &ref.Name, &ref.OwnerID, &requestID); err != nil {
			return wrapDBErr("scan request item", err)
		}
		if v, ok := byID[requestID]; ok {
			v.Items = append(v.Items, ref)
		}
	}
	if err := rows.Err(); err != nil {
		return wrapDBErr("iterate request items", err)
	}
	return nil
}
