package reservation

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidPortions  = errors.New("portions reserved must be positive")
	ErrAlreadyCollected = errors.New("reservation has already been collected")
	ErrDepositNotPaid   = errors.New("deposit has not been paid")
	ErrInvalidDeposit   = errors.New("deposit amount cannot be negative")
)

type Reservation struct {
	id               uuid.UUID
	listingID        uuid.UUID
	organisationID   uuid.UUID
	portionsReserved int
	depositAmount    int
	depositStatus    DepositStatus
	collected        bool
	collectedAt      *time.Time
	createdAt        time.Time
}

// NewReservation is only constructed once the deposit charge has succeeded,
// so it is born with deposit_status = paid.
func NewReservation(
	listingID, organisationID uuid.UUID,
	portionsReserved int,
	depositAmount int,
) (*Reservation, error) {
	if portionsReserved <= 0 {
		return nil, ErrInvalidPortions
	}
	if depositAmount < 0 {
		return nil, ErrInvalidDeposit
	}

	return &Reservation{
		id:               uuid.New(),
		listingID:        listingID,
		organisationID:   organisationID,
		portionsReserved: portionsReserved,
		depositAmount:    depositAmount,
		depositStatus:    DepositPaid,
		collected:        false,
	}, nil
}

func ReconstructReservation(
	id, listingID, organisationID uuid.UUID,
	portionsReserved, depositAmount int,
	depositStatus DepositStatus,
	collected bool,
	collectedAt *time.Time,
	createdAt time.Time,
) *Reservation {
	return &Reservation{
		id:               id,
		listingID:        listingID,
		organisationID:   organisationID,
		portionsReserved: portionsReserved,
		depositAmount:    depositAmount,
		depositStatus:    depositStatus,
		collected:        collected,
		collectedAt:      collectedAt,
		createdAt:        createdAt,
	}
}

// ValidateFulfill guards the single mutation a reservation ever receives.
func (r *Reservation) ValidateFulfill() error {
	if r.collected {
		return ErrAlreadyCollected
	}
	if r.depositStatus != DepositPaid {
		return ErrDepositNotPaid
	}
	return nil
}

// Fulfill marks the reservation collected. Idempotence is rejection: a second
// call fails with ErrAlreadyCollected rather than re-applying.
func (r *Reservation) Fulfill(now time.Time) error {
	if err := r.ValidateFulfill(); err != nil {
		return err
	}
	r.collected = true
	r.collectedAt = &now
	return nil
}

func (r *Reservation) ID() uuid.UUID                { return r.id }
func (r *Reservation) ListingID() uuid.UUID         { return r.listingID }
func (r *Reservation) OrganisationID() uuid.UUID    { return r.organisationID }
func (r *Reservation) PortionsReserved() int        { return r.portionsReserved }
func (r *Reservation) DepositAmount() int           { return r.depositAmount }
func (r *Reservation) DepositStatus() DepositStatus { return r.depositStatus }
func (r *Reservation) Collected() bool              { return r.collected }
func (r *Reservation) CollectedAt() *time.Time      { return r.collectedAt }
func (r *Reservation) CreatedAt() time.Time         { return r.createdAt }
