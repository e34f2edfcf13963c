package collection

import (
	"errors"

	"open-fridge/internal/domain/user"

	"github.com/google/uuid"
)

var (
	ErrUnsupportedRole      = errors.New("role cannot collect via scan")
	ErrMissingReservationID = errors.New("organisation scan requires a reservation id")
	ErrMissingPortionCount  = errors.New("consumer scan requires a portion count")
)

// Command is the scan event resolved to the scanning actor's role. Resolving
// once up front keeps role checks out of the rest of the processing flow.
type Command interface {
	isScanCommand()
}

// ConsumerCollection takes portions directly off the listing.
type ConsumerCollection struct {
	Portions int
}

// OrganisationCollection fulfills a previously placed reservation.
type OrganisationCollection struct {
	ReservationID uuid.UUID
}

func (ConsumerCollection) isScanCommand()     {}
func (OrganisationCollection) isScanCommand() {}

// ResolveCommand maps a raw scan request onto the role's command variant.
func ResolveCommand(role user.Role, portions *int, reservationID *uuid.UUID) (Command, error) {
	switch role {
	case user.RoleConsumer:
		if portions == nil {
			return nil, ErrMissingPortionCount
		}
		if *portions < MinPortionsPerScan || *portions > MaxPortionsPerScan {
			return nil, ErrInvalidPortionCount
		}
		return ConsumerCollection{Portions: *portions}, nil

	case user.RoleOrganisation:
		if reservationID == nil || *reservationID == uuid.Nil {
			return nil, ErrMissingReservationID
		}
		return OrganisationCollection{ReservationID: *reservationID}, nil

	default:
		return nil, ErrUnsupportedRole
	}
}
