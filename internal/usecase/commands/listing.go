package commands

import (
	"context"
	"time"

	"open-fridge/internal/domain/listing"
	"open-fridge/internal/infra"
	"open-fridge/internal/infra/db"
	"open-fridge/internal/pkg/errs"
	"open-fridge/internal/usecase/queries"
	"open-fridge/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type CreateListingParams struct {
	Title             string
	TotalPortions     int
	BestBefore        time.Time
	PriorityRequested bool
	ImageURL          *string
}

type ListingCommands interface {
	CreateListing(ctx context.Context, vendorID uuid.UUID, params CreateListingParams) (*queries.ListingView, error)
	CancelListing(ctx context.Context, vendorID, listingID uuid.UUID) error
}

type listingCommandsImpl struct {
	listingRepo    ListingRepository
	changeFeed     ChangeFeedRepository
	listingFactory *listing.Factory
	listingQueries queries.ListingQueries
	pool           *pgxpool.Pool
}

func NewListingCommands(
	listingRepo ListingRepository,
	changeFeed ChangeFeedRepository,
	listingFactory *listing.Factory,
	listingQueries queries.ListingQueries,
	pool *pgxpool.Pool,
) ListingCommands {
	return &listingCommandsImpl{
		listingRepo:    listingRepo,
		changeFeed:     changeFeed,
		listingFactory: listingFactory,
		listingQueries: listingQueries,
		pool:           pool,
	}
}

func (c *listingCommandsImpl) CreateListing(ctx context.Context, vendorID uuid.UUID, params CreateListingParams) (*queries.ListingView, error) {
	ent, err := c.listingFactory.CreateListing(
		vendorID,
		params.Title,
		params.TotalPortions,
		params.BestBefore,
		params.PriorityRequested,
		params.ImageURL,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	_, err = shared.WithDefaultRetry(ctx, c.pool, func(tx db.DBTX) (struct{}, error) {
		if err := c.listingRepo.Create(ctx, tx, ent); err != nil {
			return struct{}{}, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if err := c.changeFeed.Emit(ctx, tx, "listing", ent.ID(), "created", map[string]any{
			"vendor_id":          ent.VendorID(),
			"total_portions":     ent.TotalPortions(),
			"remaining_portions": ent.RemainingPortions(),
		}); err != nil {
			return struct{}{}, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return struct{}{}, nil
	})
	if err != nil {
		return nil, err
	}

	// Read-after-write: return the complete view from the read store
	view, err := c.listingQueries.GetByID(ctx, ent.ID())
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *listingCommandsImpl) CancelListing(ctx context.Context, vendorID, listingID uuid.UUID) error {
	_, err := shared.WithDefaultRetry(ctx, c.pool, func(tx db.DBTX) (struct{}, error) {
		snap, err := c.listingRepo.FindForUpdate(ctx, tx, listingID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return struct{}{}, ErrListingNotFound
			}
			return struct{}{}, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if snap.VendorID != vendorID {
			return struct{}{}, ErrNotListingOwner
		}

		ent := listingFromSnapshot(snap)
		if err := ent.ValidateTransition(listing.StatusCancelled); err != nil {
			return struct{}{}, errs.Mark(err, ErrAlreadyTerminal)
		}

		if err := c.listingRepo.MarkStatus(ctx, tx, listingID, listing.StatusCancelled); err != nil {
			if infra.IsKind(err, infra.KindConflict) {
				return struct{}{}, ErrAlreadyTerminal
			}
			return struct{}{}, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := c.changeFeed.Emit(ctx, tx, "listing", listingID, "cancelled", map[string]any{
			"vendor_id": vendorID,
		}); err != nil {
			return struct{}{}, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return struct{}{}, nil
	})
	return err
}
