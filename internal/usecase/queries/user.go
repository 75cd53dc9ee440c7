package queries

import (
	"context"

	"lendhub/internal/infra"
)

type UserReadStore interface {
	FindByID(ctx context.Context, id int64) (*UserView, error)
	FindAll(ctx context.Context) ([]UserView, error)
	Exists(ctx context.Context, id int64) (bool, error)
}

type UserQueries interface {
	GetByID(ctx context.Context, userID int64) (*UserView, error)
	List(ctx context.Context) ([]UserView, error)
}

type userQueriesImpl struct {
	users UserReadStore
}

func NewUserQueries(users UserReadStore) UserQueries {
	return &userQueriesImpl{users: users}
}

func (q *userQueriesImpl) GetByID(ctx context.Context, userID int64) (*UserView, error) {
	view, err := q.users.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return view, nil
}

func (q *userQueriesImpl) List(ctx context.Context) ([]UserView, error) {
	return q.users.FindAll(ctx)
}
