package queries

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type ReservationView struct {
	ID               uuid.UUID  `json:"id"`
	ListingID        uuid.UUID  `json:"listing_id"`
	ListingTitle     string     `json:"listing_title"`
	VendorName       string     `json:"vendor_name"`
	OrganisationID   uuid.UUID  `json:"organisation_id"`
	PortionsReserved int32      `json:"portions_reserved"`
	DepositAmount    int32      `json:"deposit_amount"`
	DepositStatus    string     `json:"deposit_status"`
	Collected        bool       `json:"collected"`
	CollectedAt      *time.Time `json:"collected_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type ReservationListItem struct {
	ID               uuid.UUID  `json:"id"`
	ListingID        uuid.UUID  `json:"listing_id"`
	ListingTitle     string     `json:"listing_title"`
	PortionsReserved int32      `json:"portions_reserved"`
	DepositStatus    string     `json:"deposit_status"`
	Collected        bool       `json:"collected"`
	CollectedAt      *time.Time `json:"collected_at,omitempty"`
	CreatedAt        time.Time  `json:"created_at"`
}

type ReservationQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	ListByOrganisation(ctx context.Context, organisationID uuid.UUID) ([]*ReservationListItem, error)
}

type ReservationViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ReservationView, error)
	FindByOrganisationID(ctx context.Context, organisationID uuid.UUID) ([]*ReservationListItem, error)
}

type reservationQueriesImpl struct {
	repo ReservationViewRepo
}

func NewReservationQueries(repo ReservationViewRepo) ReservationQueries {
	return &reservationQueriesImpl{repo: repo}
}

func (q *reservationQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ReservationView, error) {
	return q.repo.FindByID(ctx, id)
}

func (q *reservationQueriesImpl) ListByOrganisation(ctx context.Context, organisationID uuid.UUID) ([]*ReservationListItem, error) {
	return q.repo.FindByOrganisationID(ctx, organisationID)
}
