package repository

import (
	"context"
	"time"

	"lendhub/internal/domain/booking"
	"lendhub/internal/infra"
	"lendhub/internal/usecase/commands"
	"lendhub/internal/usecase/queries"

	"github.com/doug-martin/goqu/v9"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type BookingRepository struct {
	pool *pgxpool.Pool
}

func NewBookingRepository(pool *pgxpool.Pool) *BookingRepository {
	return &BookingRepository{pool: pool}
}

var _ commands.BookingRepository = (*BookingRepository)(nil)

func (r *BookingRepository) Create(ctx context.Context, b *booking.Booking) (int64, error) {
	sql, args, err := pg.Insert("bookings").
		Rows(goqu.Record{
			"item_id":    b.ItemID(),
			"booker_id":  b.BookerID(),
			"start_date": b.Period().Start(),
			"end_date":   b.Period().End(),
			"status":     b.Status().String(),
		}).
		Returning("id").
		Prepared(true).ToSQL()
	if err != nil {
		return 0, infra.WrapRepoErr("build booking insert", err)
	}

	var id int64
	if err := r.pool.QueryRow(ctx, sql, args...).Scan(&id); err != nil {
		return 0, wrapDBErr("insert booking", err)
	}
	return id, nil
}

func (r *BookingRepository) FindByID(ctx context.Context, id int64) (*booking.Booking, error) {
	sql, args, err := pg.From("bookings").
		Select("id", "item_id", "booker_id", "start_date", "end_date", "status").
		Where(goqu.C("id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("build booking select", err)
	}
	return scanBooking(r.pool.QueryRow(ctx, sql, args...))
}

func (r *BookingRepository) UpdateStatusIfWaiting(ctx context.Context, id int64, status booking.Status) (*booking.Booking, error) {
	sql, args, err := pg.Update("bookings").
		Set(goqu.Record{"status": status.String()}).
		Where(goqu.C("id").Eq(id), goqu.C("status").Eq(booking.StatusWaiting.String())).
		Returning("id", "item_id", "booker_id", "start_date", "end_date", "status").
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("build booking status update", err)
	}

	b, err := scanBooking(r.pool.QueryRow(ctx, sql, args...))
	if err == nil {
		return b, nil
	}
	if !infra.IsKind(err, infra.KindNotFound) {
		return nil, err
	}

	// No row matched: either the booking is gone or it left WAITING first.
	if _, findErr := r.FindByID(ctx, id); findErr != nil {
		return nil, findErr
	}
	return nil, infra.WrapRepoErr("booking already decided", nil, infra.KindConflict)
}

func (r *BookingRepository) FindByItem(ctx context.Context, itemID int64) ([]*booking.Booking, error) {
	sql, args, err := pg.From("bookings").
		Select("id", "item_id", "booker_id", "start_date", "end_date", "status").
		Where(goqu.C("item_id").Eq(itemID)).
		Order(goqu.C("id").Asc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("build bookings by item select", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapDBErr("query bookings by item", err)
	}
	defer rows.Close()

	var out []*booking.Booking
	for rows.Next() {
		b, err := scanBooking(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr("iterate bookings by item", err)
	}
	return out, nil
}

func scanBooking(row pgx.Row) (*booking.Booking, error) {
	var (
		id, itemID, bookerID int64
		start, end           time.Time
		status               string
	)
	if err := row.Scan(&id, &itemID, &bookerID, &start, &end, &status); err != nil {
		return nil, wrapDBErr("scan booking", err)
	}
	period, err := booking.NewPeriod(start, end)
	if err != nil {
		return nil, infra.WrapRepoErr("reconstruct booking period", err)
	}
	return booking.Reconstruct(id, itemID, bookerID, period, booking.Status(status)), nil
}

// BookingReadStore answers booking queries with item and booker names joined
// in, so the read side never loads aggregates.
type BookingReadStore struct {
	pool *pgxpool.Pool
}

func NewBookingReadStore(pool *pgxpool.Pool) *BookingReadStore {
	return &BookingReadStore{pool: pool}
}

var _ queries.BookingReadStore = (*BookingReadStore)(nil)

func bookingViewSelect() *goqu.SelectDataset {
	return pg.From(goqu.T("bookings").As("b")).
		Join(goqu.T("items").As("i"), goqu.On(goqu.I("i.id").Eq(goqu.I("b.item_id")))).
		Join(goqu.T("users").As("u"), goqu.On(goqu.I("u.id").Eq(goqu.I("b.booker_id")))).
		Select(
			goqu.I("b.id"), goqu.I("b.start_date"), goqu.I("b.end_date"), goqu.I("b.status"),
			goqu.I("i.id"), goqu.I("i.name"), goqu.I("i.owner_id"),
			goqu.I("u.id"), goqu.I("u.name"),
		)
}

func scanBookingView(row pgx.Row) (*queries.BookingView, error) {
	var (
		v      queries.BookingView
		status string
	)
	err := row.Scan(
		&v.ID, &v.Start, &v.End, &status,
		&v.Item.ID, &v.Item.Name, &v.Item.OwnerID,
		&v.Booker.ID, &v.Booker.Name,
	)
	if err != nil {
		return nil, wrapDBErr("scan booking view", err)
	}
	v.Status = booking.Status(status)
	return &v, nil
}

func (r *BookingReadStore) FindByID(ctx context.Context, id int64) (*queries.BookingView, error) {
	sql, args, err := bookingViewSelect().
		Where(goqu.I("b.id").Eq(id)).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("build booking view select", err)
	}
	return scanBookingView(r.pool.QueryRow(ctx, sql, args...))
}

func (r *BookingReadStore) ListByBooker(ctx context.Context, bookerID int64, f queries.StateFilter) ([]queries.BookingView, error) {
	return r.list(ctx, goqu.I("b.booker_id").Eq(bookerID), f)
}

func (r *BookingReadStore) ListByOwner(ctx context.Context, ownerID int64, f queries.StateFilter) ([]queries.BookingView, error) {
	return r.list(ctx, goqu.I("i.owner_id").Eq(ownerID), f)
}

func (r *BookingReadStore) list(ctx context.Context, subjectExpr goqu.Expression, f queries.StateFilter) ([]queries.BookingView, error) {
	stmt := bookingViewSelect().Where(subjectExpr)
	for _, expr := range filterExpressions(f) {
		stmt = stmt.Where(expr)
	}
	sql, args, err := stmt.
		Order(goqu.I("b.start_date").Desc(), goqu.I("b.id").Desc()).
		Prepared(true).ToSQL()
	if err != nil {
		return nil, infra.WrapRepoErr("build booking list select", err)
	}

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, wrapDBErr("query booking list", err)
	}
	defer rows.Close()

	out := make([]queries.BookingView, 0)
	for rows.Next() {
		v, err := scanBookingView(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *v)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapDBErr("iterate booking list", err)
	}
	return out, nil
}

// filterExpressions translates a state filter into WHERE clauses. The memory
// store mirrors this translation with predicates; keep the two aligned.
func filterExpressions(f queries.StateFilter) []goqu.Expression {
	var exprs []goqu.Expression
	if len(f.Statuses) > 0 {
		statuses := make([]string, len(f.Statuses))
		for i, s := range f.Statuses {
			statuses[i] = s.String()
		}
		exprs = append(exprs, goqu.I("b.status").In(statuses))
	}
	if f.CurrentAt != nil {
		exprs = append(exprs,
			goqu.I("b.start_date").Lte(*f.CurrentAt),
			goqu.I("b.end_date").Gte(*f.CurrentAt),
		)
	}
	if f.StartsAfter != nil {
		exprs = append(exprs, goqu.I("b.start_date").Gt(*f.StartsAfter))
	}
	if f.EndsBefore != nil {
		exprs = append(exprs, goqu.I("b.end_date").Lt(*f.EndsBefore))
	}
	return exprs
}
