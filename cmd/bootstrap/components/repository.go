package components

import (
	"lendhub/internal/infra/cache"
	"lendhub/internal/infra/repository"
	"lendhub/internal/pkg/config"
	"lendhub/internal/usecase/commands"
	"lendhub/internal/usecase/queries"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		// Write side
		fx.Annotate(
			repository.NewUserRepository,
			fx.As(new(commands.UserRepository)),
		),
		fx.Annotate(
			repository.NewItemRepository,
			fx.As(new(commands.ItemRepository)),
		),
		fx.Annotate(
			repository.NewBookingRepository,
			fx.As(new(commands.BookingRepository)),
		),
		fx.Annotate(
			repository.NewCommentRepository,
			fx.As(new(commands.CommentRepository)),
		),
		fx.Annotate(
			repository.NewRequestRepository,
			fx.As(new(commands.RequestRepository)),
		),
		// Read side
		fx.Annotate(
			repository.NewUserReadStore,
			fx.As(new(queries.UserReadStore)),
		),
		fx.Annotate(
			repository.NewItemReadStore,
			fx.As(new(queries.ItemReadStore)),
		),
		fx.Annotate(
			repository.NewBookingReadStore,
			fx.As(new(queries.BookingReadStore)),
		),
		fx.Annotate(
			repository.NewCommentReadStore,
			fx.As(new(queries.CommentReadStore)),
		),
		fx.Annotate(
			repository.NewRequestReadStore,
			fx.As(new(queries.RequestReadStore)),
		),
		// Cache
		fx.Annotate(
			NewItemSearchCache,
			fx.As(new(queries.SearchCache)),
			fx.As(new(commands.SearchCacheInvalidator)),
		),
	),
)

func NewItemSearchCache(client *redis.Client, cfg config.Config) *cache.ItemSearchCache {
	return cache.NewItemSearchCache(client, cfg.Cache.ItemSearchTTL)
}
