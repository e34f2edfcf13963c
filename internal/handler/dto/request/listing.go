package request

import (
	"strings"
	"time"
)

type CreateListingRequest struct {
	Title                string    `json:"title" binding:"required"`
	TotalPortions        int       `json:"total_portions" binding:"required,gt=0"`
	BestBefore           time.Time `json:"best_before" binding:"required"`
	PriorityForCharities bool      `json:"priority_for_charities"`
	ImageURL             *string   `json:"image_url,omitempty"`
}

func (r CreateListingRequest) GetTitle() string {
	return strings.TrimSpace(r.Title)
}

func (r CreateListingRequest) GetImageURL() *string {
	if r.ImageURL == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.ImageURL)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
