package components

import (
	"open-fridge/internal/infra/db"
	"open-fridge/internal/infra/readstore"
	"open-fridge/internal/infra/repository"
	"open-fridge/internal/usecase/commands"
	"open-fridge/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		NewDBTX,
		// Write side
		fx.Annotate(
			repository.NewListingRepository,
			fx.As(new(commands.ListingRepository)),
		),
		fx.Annotate(
			repository.NewReservationRepository,
			fx.As(new(commands.ReservationRepository)),
		),
		fx.Annotate(
			repository.NewCollectionRepository,
			fx.As(new(commands.CollectionRepository)),
		),
		fx.Annotate(
			repository.NewVendorRepository,
			fx.As(new(commands.VendorRepository)),
		),
		fx.Annotate(
			repository.NewChangeFeedRepository,
			fx.As(new(commands.ChangeFeedRepository)),
		),
		// Read side
		fx.Annotate(
			readstore.NewListingReadStore,
			fx.As(new(queries.ListingViewRepo)),
		),
		fx.Annotate(
			readstore.NewReservationReadStore,
			fx.As(new(queries.ReservationViewRepo)),
		),
	),
)

func NewDBTX(pool *pgxpool.Pool) db.DBTX {
	return pool
}
