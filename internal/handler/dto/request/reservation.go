package request

import (
	"github.com/google/uuid"
)

type CreateReservationRequest struct {
	ListingID uuid.UUID `json:"listing_id" binding:"required"`
	Portions  int       `json:"portions" binding:"required,gt=0"`
}
