package components

import (
	"open-fridge/internal/domain/listing"
	"open-fridge/internal/domain/reservation"
	"open-fridge/internal/pkg/clock"
	"open-fridge/internal/pkg/config"
	"open-fridge/internal/usecase"
	"open-fridge/internal/usecase/commands"
	"open-fridge/internal/usecase/queries"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseQueriesModule,
	usecaseValidatorsModule,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	func(c clock.Clock, cfg config.Config) *listing.Factory {
		return listing.NewFactory(c, cfg.Ledger.PriorityWindow, cfg.Ledger.MaxTotalPortions)
	},
	fx.Annotate(
		reservation.NewSimulatedDepositCharger,
		fx.As(new(reservation.DepositCharger)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewListingCommands,
		func(
			listingRepo commands.ListingRepository,
			reservationRepo commands.ReservationRepository,
			changeFeed commands.ChangeFeedRepository,
			depositCharger reservation.DepositCharger,
			reservationQueries queries.ReservationQueries,
			cfg config.Config,
			pool *pgxpool.Pool,
		) commands.ReservationCommands {
			return commands.NewReservationCommands(
				listingRepo,
				reservationRepo,
				changeFeed,
				depositCharger,
				cfg.Ledger.DepositAmount,
				reservationQueries,
				pool,
			)
		},
		commands.NewScanCommands,
		commands.NewSweepCommands,
	),
)

var usecaseQueriesModule = fx.Module("usecase/queries",
	fx.Provide(
		queries.NewListingQueries,
		queries.NewReservationQueries,
	),
)

var usecaseValidatorsModule = fx.Module("usecase/validators",
	fx.Provide(
		usecase.NewTokenValidator,
	),
)
