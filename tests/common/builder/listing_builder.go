//go:build unit || e2e

package builder

import (
	"time"

	domlisting "open-fridge/internal/domain/listing"
	reqdto "open-fridge/internal/handler/dto/request"
	"open-fridge/internal/usecase/commands"
	"open-fridge/internal/usecase/queries"

	"github.com/google/uuid"
)

type ListingBuilder struct {
	VendorID          uuid.UUID
	VendorName        string
	Title             string
	TotalPortions     int
	RemainingPortions int
	ReservedPortions  int
	Status            string
	BestBefore        time.Time
	PriorityRequested bool
	PriorityWindow    time.Duration
	PriorityUntil     *time.Time
	MaxTotalPortions  int
	ImageURL          *string
	Now               time.Time
}

func NewListingBuilder() *ListingBuilder {
	now := time.Now().UTC()
	return &ListingBuilder{
		VendorID:          uuid.New(),
		VendorName:        "Corner Bakery",
		Title:             "Surplus bread and pastries",
		TotalPortions:     20,
		RemainingPortions: 20,
		ReservedPortions:  0,
		Status:            "active",
		BestBefore:        now.Add(6 * time.Hour),
		PriorityRequested: false,
		PriorityWindow:    10 * time.Minute,
		MaxTotalPortions:  500,
		Now:               now,
	}
}

func (b *ListingBuilder) With(mutate func(*ListingBuilder)) *ListingBuilder {
	mutate(b)
	return b
}

func (b *ListingBuilder) BuildDomain() (*domlisting.Listing, error) {
	return domlisting.NewListing(
		b.VendorID,
		b.Title,
		b.TotalPortions,
		b.BestBefore,
		b.PriorityRequested,
		b.PriorityWindow,
		b.MaxTotalPortions,
		b.ImageURL,
		b.Now,
	)
}

// BuildReconstructed bypasses creation validation so tests can stage
// mid-lifecycle counter states.
func (b *ListingBuilder) BuildReconstructed() *domlisting.Listing {
	return domlisting.ReconstructListing(
		uuid.New(),
		b.VendorID,
		b.Title,
		b.TotalPortions,
		b.RemainingPortions,
		b.ReservedPortions,
		domlisting.Status(b.Status),
		b.BestBefore,
		b.PriorityUntil,
		b.ImageURL,
		b.Now,
		b.Now,
	)
}

func (b *ListingBuilder) BuildSnapshot() *commands.ListingSnapshot {
	return &commands.ListingSnapshot{
		ID:                uuid.New(),
		VendorID:          b.VendorID,
		Title:             b.Title,
		TotalPortions:     int32(b.TotalPortions),
		RemainingPortions: int32(b.RemainingPortions),
		ReservedPortions:  int32(b.ReservedPortions),
		Status:            b.Status,
		BestBefore:        b.BestBefore,
		PriorityUntil:     b.PriorityUntil,
		ImageURL:          b.ImageURL,
		CreatedAt:         b.Now,
		UpdatedAt:         b.Now,
	}
}

func (b *ListingBuilder) BuildCreateRequestDTO() reqdto.CreateListingRequest {
	return reqdto.CreateListingRequest{
		Title:                b.Title,
		TotalPortions:        b.TotalPortions,
		BestBefore:           b.BestBefore,
		PriorityForCharities: b.PriorityRequested,
		ImageURL:             b.ImageURL,
	}
}

func (b *ListingBuilder) BuildView() *queries.ListingView {
	available := int32(b.RemainingPortions - b.ReservedPortions)
	return &queries.ListingView{
		ID:                uuid.New(),
		VendorID:          b.VendorID,
		VendorName:        b.VendorName,
		Title:             b.Title,
		TotalPortions:     int32(b.TotalPortions),
		RemainingPortions: int32(b.RemainingPortions),
		ReservedPortions:  int32(b.ReservedPortions),
		AvailablePortions: available,
		ReservationCap:    available * domlisting.CapPercent / 100,
		Status:            b.Status,
		BestBefore:        b.BestBefore,
		PriorityUntil:     b.PriorityUntil,
		ImageURL:          b.ImageURL,
		CreatedAt:         b.Now,
		UpdatedAt:         b.Now,
	}
}
