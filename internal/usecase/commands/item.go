package commands

import (
	"context"
	"time"

	"lendhub/internal/domain/item"
	"lendhub/internal/infra"
	"lendhub/internal/pkg/clock"
	"lendhub/internal/pkg/errs"
	"lendhub/internal/usecase/queries"
)

var (
	ErrRequestNotFound = errs.New("item request not found")
	// ErrItemNotOwned hides foreign items from would-be editors the same way
	// missing ones are hidden.
	ErrItemNotOwned     = errs.New("item does not belong to this user")
	ErrDomainValidation = errs.New("domain validation error")

	// Comment eligibility failures, all surfaced as input rejections.
	ErrNotRenter          = errs.New("user has never booked this item")
	ErrNoApprovedBooking  = errs.New("user has no approved booking of this item")
	ErrBookingNotFinished = errs.New("booking is not finished yet")
)

type CreateItemInput struct {
	Name        string
	Description string
	Available   bool
	RequestID   *int64
}

type UpdateItemInput struct {
	Name        *string
	Description *string
	Available   *bool
}

type AddCommentInput struct {
	Text string
}

type ItemCommands interface {
	Create(ctx context.Context, ownerID int64, in CreateItemInput) (*queries.ItemView, error)
	Update(ctx context.Context, ownerID, itemID int64, in UpdateItemInput) (*queries.ItemView, error)
	// AddComment appends a comment by a past renter. Eligibility: the user's
	// booking of the item must exist, be APPROVED and be finished.
	AddComment(ctx context.Context, authorID, itemID int64, in AddCommentInput) (*queries.CommentView, error)
}

type itemUseCaseImpl struct {
	items    ItemRepository
	users    UserRepository
	bookings BookingRepository
	comments CommentRepository
	requests RequestRepository
	views    queries.ItemReadStore
	cache    SearchCacheInvalidator
	clock    clock.Clock
}

// SearchCacheInvalidator drops cached search results after item writes.
type SearchCacheInvalidator interface {
	InvalidateSearch(ctx context.Context) error
}

func NewItemCommands(
	items ItemRepository,
	users UserRepository,
	bookings BookingRepository,
	comments CommentRepository,
	requests RequestRepository,
	views queries.ItemReadStore,
	cache SearchCacheInvalidator,
	clk clock.Clock,
) ItemCommands {
	return &itemUseCaseImpl{
		items:    items,
		users:    users,
		bookings: bookings,
		comments: comments,
		requests: requests,
		views:    views,
		cache:    cache,
		clock:    clk,
	}
}

func (uc *itemUseCaseImpl) Create(ctx context.Context, ownerID int64, in CreateItemInput) (*queries.ItemView, error) {
	if err := uc.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}
	if in.RequestID != nil {
		exists, err := uc.requests.Exists(ctx, *in.RequestID)
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if !exists {
			return nil, ErrRequestNotFound
		}
	}

	it, err := item.NewItem(ownerID, in.Name, in.Description, in.Available, in.RequestID)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	id, err := uc.items.Create(ctx, it)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	uc.invalidateSearch(ctx)

	return uc.findView(ctx, id)
}

func (uc *itemUseCaseImpl) Update(ctx context.Context, ownerID, itemID int64, in UpdateItemInput) (*queries.ItemView, error) {
	if err := uc.requireUser(ctx, ownerID); err != nil {
		return nil, err
	}

	it, err := uc.items.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !it.OwnedBy(ownerID) {
		return nil, ErrItemNotOwned
	}

	if in.Name != nil {
		it.Rename(*in.Name)
	}
	if in.Description != nil {
		it.Describe(*in.Description)
	}
	if in.Available != nil {
		it.SetAvailable(*in.Available)
	}

	if err = uc.items.Update(ctx, it); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	uc.invalidateSearch(ctx)

	return uc.findView(ctx, itemID)
}

func (uc *itemUseCaseImpl) AddComment(ctx context.Context, authorID, itemID int64, in AddCommentInput) (*queries.CommentView, error) {
	if _, err := uc.items.FindByID(ctx, itemID); err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	author, err := uc.users.FindByID(ctx, authorID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	now := uc.clock.Now()
	if err = uc.checkEligibility(ctx, authorID, itemID, now); err != nil {
		return nil, err
	}
	comment, err := item.NewComment(itemID, authorID, in.Text, now)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	id, err := uc.comments.Create(ctx, comment)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &queries.CommentView{
		ID:         id,
		ItemID:     itemID,
		AuthorName: author.Name(),
		Text:       comment.Text(),
		Created:    now,
	}, nil
}

// checkEligibility inspects the author's first booking of the item in store
// order. Only that booking counts; a later approved booking does not cure an
// earlier rejected one. Inherited behavior, kept for compatibility.
func (uc *itemUseCaseImpl) checkEligibility(ctx context.Context, authorID, itemID int64, now time.Time) error {
	all, err := uc.bookings.FindByItem(ctx, itemID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}

	for _, b := range all {
		if b.BookerID() != authorID {
			continue
		}
		if !b.IsApproved() {
			return ErrNoApprovedBooking
		}
		if !b.Period().FinishedBy(now) {
			return ErrBookingNotFinished
		}
		return nil
	}
	return ErrNotRenter
}

func (uc *itemUseCaseImpl) requireUser(ctx context.Context, userID int64) error {
	exists, err := uc.users.Exists(ctx, userID)
	if err != nil {
		return errs.Mark(err, ErrDatabaseOperationFailed)
	}
	if !exists {
		return ErrUserNotFound
	}
	return nil
}

func (uc *itemUseCaseImpl) invalidateSearch(ctx context.Context) {
	if uc.cache == nil {
		return
	}
	// Best effort; stale entries expire by TTL anyway.
	_ = uc.cache.InvalidateSearch(ctx)
}

func (uc *itemUseCaseImpl) findView(ctx context.Context, id int64) (*queries.ItemView, error) {
	view, err := uc.views.FindByID(ctx, id)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}
