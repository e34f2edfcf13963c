package response

import (
	"time"

	"open-fridge/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

type ListingResponse struct {
	ID                uuid.UUID  `json:"id"`
	VendorID          uuid.UUID  `json:"vendorId"`
	VendorName        string     `json:"vendorName"`
	Title             string     `json:"title"`
	TotalPortions     int32      `json:"totalPortions"`
	RemainingPortions int32      `json:"remainingPortions"`
	ReservedPortions  int32      `json:"reservedPortions"`
	AvailablePortions int32      `json:"availablePortions"`
	ReservationCap    int32      `json:"reservationCap"`
	Status            string     `json:"status"`
	BestBefore        time.Time  `json:"bestBefore"`
	PriorityActive    bool       `json:"priorityActive"`
	PrioritySeconds   int64      `json:"prioritySecondsRemaining"`
	ImageURL          *string    `json:"imageUrl,omitempty"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}

type ListingListResponse struct {
	ID                uuid.UUID `json:"id"`
	VendorID          uuid.UUID `json:"vendorId"`
	VendorName        string    `json:"vendorName"`
	Title             string    `json:"title"`
	RemainingPortions int32     `json:"remainingPortions"`
	AvailablePortions int32     `json:"availablePortions"`
	Status            string    `json:"status"`
	BestBefore        time.Time `json:"bestBefore"`
	PriorityActive    bool      `json:"priorityActive"`
	CreatedAt         time.Time `json:"createdAt"`
}

func FromListingView(view *queries.ListingView) *ListingResponse {
	var resp ListingResponse
	_ = copier.Copy(&resp, view)
	return &resp
}

func FromListingListItems(items []*queries.ListingListItem) []*ListingListResponse {
	result := make([]*ListingListResponse, len(items))
	for i, item := range items {
		var resp ListingListResponse
		_ = copier.Copy(&resp, item)
		result[i] = &resp
	}
	return result
}
