package commands

import (
	"context"
	"errors"

	"open-fridge/internal/domain/listing"
	domreservation "open-fridge/internal/domain/reservation"
	"open-fridge/internal/infra"
	"open-fridge/internal/infra/db"
	"open-fridge/internal/pkg/errs"
	"open-fridge/internal/usecase/queries"
	"open-fridge/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ReserveParams struct {
	ListingID uuid.UUID
	Portions  int
}

type ReservationCommands interface {
	Reserve(ctx context.Context, organisationID uuid.UUID, params ReserveParams) (*queries.ReservationView, error)
}

type reservationCommandsImpl struct {
	listingRepo        ListingRepository
	reservationRepo    ReservationRepository
	changeFeed         ChangeFeedRepository
	depositCharger     domreservation.DepositCharger
	depositAmount      int
	reservationQueries queries.ReservationQueries
	pool               *pgxpool.Pool
}

func NewReservationCommands(
	listingRepo ListingRepository,
	reservationRepo ReservationRepository,
	changeFeed ChangeFeedRepository,
	depositCharger domreservation.DepositCharger,
	depositAmount int,
	reservationQueries queries.ReservationQueries,
	pool *pgxpool.Pool,
) ReservationCommands {
	return &reservationCommandsImpl{
		listingRepo:        listingRepo,
		reservationRepo:    reservationRepo,
		changeFeed:         changeFeed,
		depositCharger:     depositCharger,
		depositAmount:      depositAmount,
		reservationQueries: reservationQueries,
		pool:               pool,
	}
}

// Reserve places an organisation's hold on a slice of a listing. The cap is
// evaluated while the listing row is locked, and the reservation insert plus
// the reserved_portions bump commit as one unit.
func (c *reservationCommandsImpl) Reserve(ctx context.Context, organisationID uuid.UUID, params ReserveParams) (*queries.ReservationView, error) {
	reservationID, err := shared.WithDefaultRetry(ctx, c.pool, func(tx db.DBTX) (uuid.UUID, error) {
		snap, err := c.listingRepo.FindForUpdate(ctx, tx, params.ListingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return uuid.Nil, ErrListingNotFound
			}
			return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		exists, err := c.reservationRepo.ExistsUncollected(ctx, tx, params.ListingID, organisationID)
		if err != nil {
			return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if exists {
			return uuid.Nil, ErrDuplicateReservation
		}

		ent := listingFromSnapshot(snap)
		if err := ent.ValidateReserve(params.Portions); err != nil {
			return uuid.Nil, markReserveValidation(err)
		}

		// Synchronous simulated charge; the reservation is only ever
		// inserted with a paid deposit.
		if err := c.depositCharger.Charge(ctx, organisationID, c.depositAmount); err != nil {
			return uuid.Nil, errs.Mark(err, ErrDepositChargeFailed)
		}

		res, err := domreservation.NewReservation(params.ListingID, organisationID, params.Portions, c.depositAmount)
		if err != nil {
			return uuid.Nil, errs.Mark(err, ErrDomainValidation)
		}

		if err := c.reservationRepo.Create(ctx, tx, res); err != nil {
			if infra.IsKind(err, infra.KindDuplicateKey) {
				return uuid.Nil, ErrDuplicateReservation
			}
			return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := c.listingRepo.ApplyReserve(ctx, tx, params.ListingID, params.Portions); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return uuid.Nil, ErrConflict
			}
			return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := c.changeFeed.Emit(ctx, tx, "reservation", res.ID(), "created", map[string]any{
			"listing_id":        params.ListingID,
			"organisation_id":   organisationID,
			"portions_reserved": params.Portions,
		}); err != nil {
			return uuid.Nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		return res.ID(), nil
	})
	if err != nil {
		return nil, err
	}

	view, err := c.reservationQueries.GetByID(ctx, reservationID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func markReserveValidation(err error) error {
	switch {
	case errors.Is(err, listing.ErrNotActive):
		return ErrListingNotActive
	case errors.Is(err, listing.ErrExceedsCap):
		return ErrExceedsReservationCap
	default:
		return errs.Mark(err, ErrDomainValidation)
	}
}
