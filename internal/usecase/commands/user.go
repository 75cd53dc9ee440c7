package commands

import (
	"context"

	"lendhub/internal/domain/user"
	"lendhub/internal/infra"
	"lendhub/internal/pkg/errs"
	"lendhub/internal/usecase/queries"
)

var ErrDuplicateEmail = errs.New("email is already taken")

type CreateUserInput struct {
	Name  string
	Email string
}

type UpdateUserInput struct {
	Name  *string
	Email *string
}

type UserCommands interface {
	Create(ctx context.Context, in CreateUserInput) (*queries.UserView, error)
	Update(ctx context.Context, userID int64, in UpdateUserInput) (*queries.UserView, error)
	Delete(ctx context.Context, userID int64) error
}

type userUseCaseImpl struct {
	users UserRepository
}

func NewUserCommands(users UserRepository) UserCommands {
	return &userUseCaseImpl{users: users}
}

func (uc *userUseCaseImpl) Create(ctx context.Context, in CreateUserInput) (*queries.UserView, error) {
	taken, err := uc.users.EmailTaken(ctx, in.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if taken {
		return nil, ErrDuplicateEmail
	}

	u, err := user.NewUser(in.Name, in.Email)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	id, err := uc.users.Create(ctx, u)
	if err != nil {
		// The unique index wins races the pre-check cannot see.
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &queries.UserView{ID: id, Name: u.Name(), Email: u.Email()}, nil
}

func (uc *userUseCaseImpl) Update(ctx context.Context, userID int64, in UpdateUserInput) (*queries.UserView, error) {
	u, err := uc.users.FindByID(ctx, userID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	if in.Email != nil && *in.Email != u.Email() {
		taken, terr := uc.users.EmailTaken(ctx, *in.Email)
		if terr != nil {
			return nil, errs.Mark(terr, ErrDatabaseOperationFailed)
		}
		if taken {
			return nil, ErrDuplicateEmail
		}
		if cerr := u.ChangeEmail(*in.Email); cerr != nil {
			return nil, errs.Mark(cerr, ErrDomainValidation)
		}
	}
	if in.Name != nil {
		u.Rename(*in.Name)
	}

	if err = uc.users.Update(ctx, u); err != nil {
		if infra.IsKind(err, infra.KindDuplicateKey) {
			return nil, ErrDuplicateEmail
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &queries.UserView{ID: u.ID(), Name: u.Name(), Email: u.Email()}, nil
}

func (uc *userUseCaseImpl) Delete(ctx context.Context, userID int64) error {
	exists, err := uc.users.Exists(ctx, userID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !exists {
		return ErrUserNotFound
	}
	return uc.users.Delete(ctx, userID)
}
