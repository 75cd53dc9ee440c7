package commands

import (
	"context"

	"lendhub/internal/domain/request"
	"lendhub/internal/pkg/clock"
	"lendhub/internal/pkg/errs"
	"lendhub/internal/usecase/queries"
)

type CreateRequestInput struct {
	Description string
}

type RequestCommands interface {
	Create(ctx context.Context, requestorID int64, in CreateRequestInput) (*queries.ItemRequestView, error)
}

type requestUseCaseImpl struct {
	requests RequestRepository
	users    UserRepository
	clock    clock.Clock
}

func NewRequestCommands(requests RequestRepository, users UserRepository, clk clock.Clock) RequestCommands {
	return &requestUseCaseImpl{requests: requests, users: users, clock: clk}
}

func (uc *requestUseCaseImpl) Create(ctx context.Context, requestorID int64, in CreateRequestInput) (*queries.ItemRequestView, error) {
	exists, err := uc.users.Exists(ctx, requestorID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !exists {
		return nil, ErrUserNotFound
	}

	r, err := request.NewItemRequest(requestorID, in.Description, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	id, err := uc.requests.Create(ctx, r)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &queries.ItemRequestView{
		ID:          id,
		RequestorID: requestorID,
		Description: r.Description(),
		Created:     r.Created(),
		Items:       []queries.ItemRef{},
	}, nil
}
