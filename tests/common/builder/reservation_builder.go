//go:build unit || e2e

package builder

import (
	"time"

	domreservation "open-fridge/internal/domain/reservation"
	reqdto "open-fridge/internal/handler/dto/request"
	"open-fridge/internal/usecase/commands"
	"open-fridge/internal/usecase/queries"

	"github.com/google/uuid"
)

type ReservationBuilder struct {
	ListingID        uuid.UUID
	ListingTitle     string
	VendorName       string
	OrganisationID   uuid.UUID
	PortionsReserved int
	DepositAmount    int
	DepositStatus    string
	Collected        bool
	CollectedAt      *time.Time
	CreatedAt        time.Time
}

func NewReservationBuilder() *ReservationBuilder {
	return &ReservationBuilder{
		ListingID:        uuid.New(),
		ListingTitle:     "Surplus bread and pastries",
		VendorName:       "Corner Bakery",
		OrganisationID:   uuid.New(),
		PortionsReserved: 5,
		DepositAmount:    50,
		DepositStatus:    "paid",
		Collected:        false,
		CreatedAt:        time.Now().UTC(),
	}
}

func (b *ReservationBuilder) With(mutate func(*ReservationBuilder)) *ReservationBuilder {
	mutate(b)
	return b
}

func (b *ReservationBuilder) BuildDomain() (*domreservation.Reservation, error) {
	return domreservation.NewReservation(b.ListingID, b.OrganisationID, b.PortionsReserved, b.DepositAmount)
}

func (b *ReservationBuilder) BuildReconstructed() *domreservation.Reservation {
	return domreservation.ReconstructReservation(
		uuid.New(),
		b.ListingID,
		b.OrganisationID,
		b.PortionsReserved,
		b.DepositAmount,
		domreservation.DepositStatus(b.DepositStatus),
		b.Collected,
		b.CollectedAt,
		b.CreatedAt,
	)
}

func (b *ReservationBuilder) BuildSnapshot() *commands.ReservationSnapshot {
	return &commands.ReservationSnapshot{
		ID:               uuid.New(),
		ListingID:        b.ListingID,
		OrganisationID:   b.OrganisationID,
		PortionsReserved: int32(b.PortionsReserved),
		DepositAmount:    int32(b.DepositAmount),
		DepositStatus:    b.DepositStatus,
		Collected:        b.Collected,
		CollectedAt:      b.CollectedAt,
		CreatedAt:        b.CreatedAt,
	}
}

func (b *ReservationBuilder) BuildCreateRequestDTO() reqdto.CreateReservationRequest {
	return reqdto.CreateReservationRequest{
		ListingID: b.ListingID,
		Portions:  b.PortionsReserved,
	}
}

func (b *ReservationBuilder) BuildView() *queries.ReservationView {
	return &queries.ReservationView{
		ID:               uuid.New(),
		ListingID:        b.ListingID,
		ListingTitle:     b.ListingTitle,
		VendorName:       b.VendorName,
		OrganisationID:   b.OrganisationID,
		PortionsReserved: int32(b.PortionsReserved),
		DepositAmount:    int32(b.DepositAmount),
		DepositStatus:    b.DepositStatus,
		Collected:        b.Collected,
		CollectedAt:      b.CollectedAt,
		CreatedAt:        b.CreatedAt,
	}
}
