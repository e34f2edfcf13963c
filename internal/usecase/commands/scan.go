package commands

import (
	"context"
	"errors"

	"open-fridge/internal/domain/collection"
	"open-fridge/internal/domain/listing"
	"open-fridge/internal/domain/reservation"
	"open-fridge/internal/domain/user"
	"open-fridge/internal/infra"
	"open-fridge/internal/infra/db"
	"open-fridge/internal/pkg/clock"
	"open-fridge/internal/pkg/errs"
	"open-fridge/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ScanParams struct {
	QRCode        string
	Portions      *int
	ReservationID *uuid.UUID
}

type ScanOutcome string

const (
	OutcomePortionsCollected    ScanOutcome = "portions_collected"
	OutcomeReservationFulfilled ScanOutcome = "reservation_fulfilled"
)

type ScanResult struct {
	Outcome           ScanOutcome
	ListingID         uuid.UUID
	RemainingPortions int
	ListingCompleted  bool
	CollectionID      *uuid.UUID
	ReservationID     *uuid.UUID
}

type ScanCommands interface {
	Scan(ctx context.Context, actorID uuid.UUID, role user.Role, params ScanParams) (*ScanResult, error)
}

type scanCommandsImpl struct {
	vendorRepo      VendorRepository
	listingRepo     ListingRepository
	reservationRepo ReservationRepository
	collectionRepo  CollectionRepository
	changeFeed      ChangeFeedRepository
	clock           clock.Clock
	pool            *pgxpool.Pool
}

func NewScanCommands(
	vendorRepo VendorRepository,
	listingRepo ListingRepository,
	reservationRepo ReservationRepository,
	collectionRepo CollectionRepository,
	changeFeed ChangeFeedRepository,
	clock clock.Clock,
	pool *pgxpool.Pool,
) ScanCommands {
	return &scanCommandsImpl{
		vendorRepo:      vendorRepo,
		listingRepo:     listingRepo,
		reservationRepo: reservationRepo,
		collectionRepo:  collectionRepo,
		changeFeed:      changeFeed,
		clock:           clock,
		pool:            pool,
	}
}

// Scan drives one scan event end to end: resolve the QR payload to a vendor,
// locate the vendor's active listing, then apply the role's command variant.
// The whole resolution and mutation runs in one transaction with the listing
// row locked, so two scans that would jointly overdraw the listing serialize
// into one success and one refusal.
func (c *scanCommandsImpl) Scan(ctx context.Context, actorID uuid.UUID, role user.Role, params ScanParams) (*ScanResult, error) {
	cmd, err := collection.ResolveCommand(role, params.Portions, params.ReservationID)
	if err != nil {
		return nil, markScanResolution(err)
	}

	return shared.WithDefaultRetry(ctx, c.pool, func(tx db.DBTX) (*ScanResult, error) {
		vendor, err := c.vendorRepo.FindByQRCode(ctx, tx, params.QRCode)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrInvalidQRCode
			}
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		snap, err := c.listingRepo.FindActiveByVendorForUpdate(ctx, tx, vendor.ID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return nil, ErrNoActiveListing
			}
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}

		switch v := cmd.(type) {
		case collection.ConsumerCollection:
			return c.collectPortions(ctx, tx, actorID, snap, v.Portions)
		case collection.OrganisationCollection:
			return c.fulfillReservation(ctx, tx, actorID, snap, v.ReservationID)
		default:
			return nil, ErrUnsupportedRole
		}
	})
}

func (c *scanCommandsImpl) collectPortions(ctx context.Context, tx db.DBTX, consumerID uuid.UUID, snap *ListingSnapshot, portions int) (*ScanResult, error) {
	ent := listingFromSnapshot(snap)
	if err := ent.ValidateCollect(portions); err != nil {
		if errors.Is(err, listing.ErrInsufficientPortions) {
			return nil, ErrInsufficientPortions
		}
		return nil, errs.Mark(err, ErrDomainValidation)
	}

	remaining, err := c.listingRepo.ApplyCollect(ctx, tx, snap.ID, portions)
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, ErrConflict
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	col, err := collection.NewCollection(consumerID, snap.ID, portions, c.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	if err := c.collectionRepo.Create(ctx, tx, col); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	completed, err := c.completeIfEmpty(ctx, tx, snap.ID, remaining)
	if err != nil {
		return nil, err
	}

	if err := c.changeFeed.Emit(ctx, tx, "listing", snap.ID, "collected", map[string]any{
		"consumer_id":        consumerID,
		"portions_collected": portions,
		"remaining_portions": remaining,
	}); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	colID := col.ID()
	return &ScanResult{
		Outcome:           OutcomePortionsCollected,
		ListingID:         snap.ID,
		RemainingPortions: remaining,
		ListingCompleted:  completed,
		CollectionID:      &colID,
	}, nil
}

func (c *scanCommandsImpl) fulfillReservation(ctx context.Context, tx db.DBTX, organisationID uuid.UUID, snap *ListingSnapshot, reservationID uuid.UUID) (*ScanResult, error) {
	rsnap, err := c.reservationRepo.FindForUpdate(ctx, tx, reservationID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrReservationNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	// A reservation belonging to another org or listing is reported as
	// not found rather than leaking its existence.
	if rsnap.OrganisationID != organisationID || rsnap.ListingID != snap.ID {
		return nil, ErrReservationNotFound
	}

	if err := reservationFromSnapshot(rsnap).ValidateFulfill(); err != nil {
		return nil, markFulfillValidation(err)
	}

	now := c.clock.Now()
	if err := c.reservationRepo.MarkCollected(ctx, tx, reservationID, now); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, ErrAlreadyCollected
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	portions := int(rsnap.PortionsReserved)
	remaining, err := c.listingRepo.ApplyFulfillment(ctx, tx, snap.ID, portions)
	if err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return nil, ErrConflict
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	completed, err := c.completeIfEmpty(ctx, tx, snap.ID, remaining)
	if err != nil {
		return nil, err
	}

	if err := c.changeFeed.Emit(ctx, tx, "reservation", reservationID, "fulfilled", map[string]any{
		"listing_id":         snap.ID,
		"organisation_id":    organisationID,
		"portions_reserved":  portions,
		"remaining_portions": remaining,
	}); err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	return &ScanResult{
		Outcome:           OutcomeReservationFulfilled,
		ListingID:         snap.ID,
		RemainingPortions: remaining,
		ListingCompleted:  completed,
		ReservationID:     &reservationID,
	}, nil
}

// completeIfEmpty transitions a fully collected listing to its terminal
// completed status within the same transaction as the final decrement.
func (c *scanCommandsImpl) completeIfEmpty(ctx context.Context, tx db.DBTX, listingID uuid.UUID, remaining int) (bool, error) {
	if remaining > 0 {
		return false, nil
	}
	if err := c.listingRepo.MarkStatus(ctx, tx, listingID, listing.StatusCompleted); err != nil {
		if infra.IsKind(err, infra.KindConflict) {
			return false, ErrConflict
		}
		return false, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return true, nil
}

func markScanResolution(err error) error {
	switch {
	case errors.Is(err, collection.ErrUnsupportedRole):
		return ErrUnsupportedRole
	case errors.Is(err, collection.ErrInvalidPortionCount), errors.Is(err, collection.ErrMissingPortionCount):
		return ErrInvalidPortionCount
	default:
		return errs.Mark(err, ErrDomainValidation)
	}
}

func markFulfillValidation(err error) error {
	switch {
	case errors.Is(err, reservation.ErrAlreadyCollected):
		return ErrAlreadyCollected
	case errors.Is(err, reservation.ErrDepositNotPaid):
		return ErrDepositNotPaid
	default:
		return errs.Mark(err, ErrDomainValidation)
	}
}
