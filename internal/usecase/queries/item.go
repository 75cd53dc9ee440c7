package queries

import (
	"context"
	"strings"

	"lendhub/internal/infra"
	"lendhub/internal/pkg/errs"
)

var ErrItemNotFound = errs.New("item not found")

type ItemReadStore interface {
	FindByID(ctx context.Context, id int64) (*ItemView, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]ItemView, error)
	// Search matches available items whose name or description contains text,
	// case-insensitively.
	Search(ctx context.Context, text string) ([]ItemView, error)
	CountByOwner(ctx context.Context, ownerID int64) (int64, error)
}

type CommentReadStore interface {
	ListByItem(ctx context.Context, itemID int64) ([]CommentView, error)
}

// SearchCache is a read-through cache in front of item search. A nil result
// means miss; failures are treated as misses so the cache never breaks reads.
type SearchCache interface {
	GetSearch(ctx context.Context, text string) ([]ItemView, error)
	SetSearch(ctx context.Context, text string, items []ItemView) error
}

type ItemQueries interface {
	GetByID(ctx context.Context, itemID int64) (*ItemView, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]ItemView, error)
	Search(ctx context.Context, text string) ([]ItemView, error)
}

type itemQueriesImpl struct {
	items    ItemReadStore
	comments CommentReadStore
	cache    SearchCache
}

func NewItemQueries(items ItemReadStore, comments CommentReadStore, cache SearchCache) ItemQueries {
	return &itemQueriesImpl{items: items, comments: comments, cache: cache}
}

func (q *itemQueriesImpl) GetByID(ctx context.Context, itemID int64) (*ItemView, error) {
	view, err := q.items.FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrItemNotFound
		}
		return nil, err
	}
	comments, err := q.comments.ListByItem(ctx, itemID)
	if err != nil {
		return nil, err
	}
	view.Comments = comments
	return view, nil
}

func (q *itemQueriesImpl) ListByOwner(ctx context.Context, ownerID int64) ([]ItemView, error) {
	views, err := q.items.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	for i := range views {
		comments, cerr := q.comments.ListByItem(ctx, views[i].ID)
		if cerr != nil {
			return nil, cerr
		}
		views[i].Comments = comments
	}
	return views, nil
}

func (q *itemQueriesImpl) Search(ctx context.Context, text string) ([]ItemView, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return []ItemView{}, nil
	}

	if q.cache != nil {
		if cached, err := q.cache.GetSearch(ctx, text); err == nil && cached != nil {
			return cached, nil
		}
	}

	views, err := q.items.Search(ctx, text)
	if err != nil {
		return nil, err
	}
	if q.cache != nil {
		// Cache failures only cost the next lookup a store round trip.
		_ = q.cache.SetSearch(ctx, text, views)
	}
	return views, nil
}
