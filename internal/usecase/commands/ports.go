package commands

import (
	"context"
	"time"

	"open-fridge/internal/domain/collection"
	"open-fridge/internal/domain/listing"
	"open-fridge/internal/domain/reservation"
	"open-fridge/internal/infra/db"

	"github.com/google/uuid"
)

// Write-side snapshots prevent dependency on Read-side query types (CQRS separation)
type ListingSnapshot struct {
	ID                uuid.UUID
	VendorID          uuid.UUID
	Title             string
	TotalPortions     int32
	RemainingPortions int32
	ReservedPortions  int32
	Status            string
	BestBefore        time.Time
	PriorityUntil     *time.Time
	ImageURL          *string
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type ReservationSnapshot struct {
	ID               uuid.UUID
	ListingID        uuid.UUID
	OrganisationID   uuid.UUID
	PortionsReserved int32
	DepositAmount    int32
	DepositStatus    string
	Collected        bool
	CollectedAt      *time.Time
	CreatedAt        time.Time
}

type VendorSnapshot struct {
	ID     uuid.UUID
	Name   string
	QRCode string
}

type ListingRepository interface {
	Create(ctx context.Context, tx db.DBTX, l *listing.Listing) error
	FindForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*ListingSnapshot, error)
	FindActiveByVendorForUpdate(ctx context.Context, tx db.DBTX, vendorID uuid.UUID) (*ListingSnapshot, error)
	ApplyCollect(ctx context.Context, tx db.DBTX, id uuid.UUID, n int) (int, error)
	ApplyReserve(ctx context.Context, tx db.DBTX, id uuid.UUID, n int) error
	ApplyFulfillment(ctx context.Context, tx db.DBTX, id uuid.UUID, n int) (int, error)
	MarkStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status listing.Status) error
	ExpireOverdue(ctx context.Context, tx db.DBTX) ([]uuid.UUID, error)
}

type ReservationRepository interface {
	Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error
	FindForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*ReservationSnapshot, error)
	ExistsUncollected(ctx context.Context, tx db.DBTX, listingID, organisationID uuid.UUID) (bool, error)
	MarkCollected(ctx context.Context, tx db.DBTX, id uuid.UUID, now time.Time) error
}

type CollectionRepository interface {
	Create(ctx context.Context, tx db.DBTX, c *collection.Collection) error
}

type VendorRepository interface {
	FindByQRCode(ctx context.Context, tx db.DBTX, qrCode string) (*VendorSnapshot, error)
}

type ChangeFeedRepository interface {
	Emit(ctx context.Context, tx db.DBTX, entity string, entityID uuid.UUID, op string, payload any) error
}

func listingFromSnapshot(s *ListingSnapshot) *listing.Listing {
	return listing.ReconstructListing(
		s.ID,
		s.VendorID,
		s.Title,
		int(s.TotalPortions),
		int(s.RemainingPortions),
		int(s.ReservedPortions),
		listing.Status(s.Status),
		s.BestBefore,
		s.PriorityUntil,
		s.ImageURL,
		s.CreatedAt,
		s.UpdatedAt,
	)
}

func reservationFromSnapshot(s *ReservationSnapshot) *reservation.Reservation {
	return reservation.ReconstructReservation(
		s.ID,
		s.ListingID,
		s.OrganisationID,
		int(s.PortionsReserved),
		int(s.DepositAmount),
		reservation.DepositStatus(s.DepositStatus),
		s.Collected,
		s.CollectedAt,
		s.CreatedAt,
	)
}
