package queries

import (
	"context"

	"lendhub/internal/infra"
	"lendhub/internal/pkg/errs"
)

var ErrRequestNotFound = errs.New("item request not found")

type RequestReadStore interface {
	FindByID(ctx context.Context, id int64) (*ItemRequestView, error)
	// ListByRequestor returns the user's own requests, newest first.
	ListByRequestor(ctx context.Context, requestorID int64) ([]ItemRequestView, error)
	// ListOthers returns other users' requests, newest first, with offset/limit.
	ListOthers(ctx context.Context, userID int64, from, size int) ([]ItemRequestView, error)
}

type RequestQueries interface {
	GetByID(ctx context.Context, callerID, requestID int64) (*ItemRequestView, error)
	ListOwn(ctx context.Context, requestorID int64) ([]ItemRequestView, error)
	ListAll(ctx context.Context, callerID int64, from, size int) ([]ItemRequestView, error)
}

type requestQueriesImpl struct {
	requests RequestReadStore
	users    UserReadStore
}

func NewRequestQueries(requests RequestReadStore, users UserReadStore) RequestQueries {
	return &requestQueriesImpl{requests: requests, users: users}
}

func (q *requestQueriesImpl) GetByID(ctx context.Context, callerID, requestID int64) (*ItemRequestView, error) {
	if err := q.requireUser(ctx, callerID); err != nil {
		return nil, err
	}
	view, err := q.requests.FindByID(ctx, requestID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *requestQueriesImpl) ListOwn(ctx context.Context, requestorID int64) ([]ItemRequestView, error) {
	if err := q.requireUser(ctx, requestorID); err != nil {
		return nil, err
	}
	return q.requests.ListByRequestor(ctx, requestorID)
}

func (q *requestQueriesImpl) ListAll(ctx context.Context, callerID int64, from, size int) ([]ItemRequestView, error) {
	if err := q.requireUser(ctx, callerID); err != nil {
		return nil, err
	}
	if from < 0 {
		from = 0
	}
	if size <= 0 {
		size = 50
	}
	return q.requests.ListOthers(ctx, callerID, from, size)
}

func (q *requestQueriesImpl) requireUser(ctx context.Context, userID int64) error {
	exists, err := q.users.Exists(ctx, userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}
