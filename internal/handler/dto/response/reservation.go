package response

import (
	"time"

	"open-fridge/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ReservationResponse struct {
	ID               uuid.UUID  `json:"id"`
	ListingID        uuid.UUID  `json:"listingId"`
	ListingTitle     string     `json:"listingTitle"`
	VendorName       string     `json:"vendorName"`
	OrganisationID   uuid.UUID  `json:"organisationId"`
	PortionsReserved int32      `json:"portionsReserved"`
	DepositAmount    int32      `json:"depositAmount"`
	DepositStatus    string     `json:"depositStatus"`
	Collected        bool       `json:"collected"`
	CollectedAt      *time.Time `json:"collectedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

type ReservationListResponse struct {
	ID               uuid.UUID  `json:"id"`
	ListingID        uuid.UUID  `json:"listingId"`
	ListingTitle     string     `json:"listingTitle"`
	PortionsReserved int32      `json:"portionsReserved"`
	DepositStatus    string     `json:"depositStatus"`
	Collected        bool       `json:"collected"`
	CollectedAt      *time.Time `json:"collectedAt,omitempty"`
	CreatedAt        time.Time  `json:"createdAt"`
}

func FromReservationView(view *queries.ReservationView) *ReservationResponse {
	var resp ReservationResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromReservationListItems(items []*queries.ReservationListItem) []*ReservationListResponse {
	result := make([]*ReservationListResponse, len(items))
	for i, item := range items {
		var resp ReservationListResponse
		_ = copier.Copy(&resp, item)
		result[i] = &resp
	}
	return result
}
