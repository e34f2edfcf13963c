package response

import (
	"open-fridge/internal/usecase/commands"

	"github.com/google/uuid"
)

type ScanResponse struct {
	Outcome           string     `json:"outcome"`
	ListingID         uuid.UUID  `json:"listingId"`
	RemainingPortions int        `json:"remainingPortions"`
	ListingCompleted  bool       `json:"listingCompleted"`
	CollectionID      *uuid.UUID `json:"collectionId,omitempty"`
	ReservationID     *uuid.UUID `json:"reservationId,omitempty"`
}

func FromScanResult(result *commands.ScanResult) *ScanResponse {
	return &ScanResponse{
		Outcome:           string(result.Outcome),
		ListingID:         result.ListingID,
		RemainingPortions: result.RemainingPortions,
		ListingCompleted:  result.ListingCompleted,
		CollectionID:      result.CollectionID,
		ReservationID:     result.ReservationID,
	}
}
