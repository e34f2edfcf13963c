package queries

import (
	"context"
	"time"

	"open-fridge/internal/domain/listing"
	"open-fridge/internal/domain/user"
	"open-fridge/internal/pkg/clock"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type ListingView struct {
	ID                uuid.UUID  `json:"id"`
	VendorID          uuid.UUID  `json:"vendor_id"`
	VendorName        string     `json:"vendor_name"`
	Title             string     `json:"title"`
	TotalPortions     int32      `json:"total_portions"`
	RemainingPortions int32      `json:"remaining_portions"`
	ReservedPortions  int32      `json:"reserved_portions"`
	AvailablePortions int32      `json:"available_portions"`
	ReservationCap    int32      `json:"reservation_cap"`
	Status            string     `json:"status"`
	BestBefore        time.Time  `json:"best_before"`
	PriorityUntil     *time.Time `json:"priority_until,omitempty"`
	PriorityActive    bool       `json:"priority_active"`
	PrioritySeconds   int64      `json:"priority_seconds_remaining"`
	ImageURL          *string    `json:"image_url,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

type ListingListItem struct {
	ID                uuid.UUID  `json:"id"`
	VendorID          uuid.UUID  `json:"vendor_id"`
	VendorName        string     `json:"vendor_name"`
	Title             string     `json:"title"`
	RemainingPortions int32      `json:"remaining_portions"`
	AvailablePortions int32      `json:"available_portions"`
	Status            string     `json:"status"`
	BestBefore        time.Time  `json:"best_before"`
	PriorityUntil     *time.Time `json:"priority_until,omitempty"`
	PriorityActive    bool       `json:"priority_active"`
	CreatedAt         time.Time  `json:"created_at"`
}

type ListingQueries interface {
	GetByID(ctx context.Context, id uuid.UUID) (*ListingView, error)
	ListActive(ctx context.Context, role user.Role) ([]*ListingListItem, error)
	ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*ListingListItem, error)
}

type ListingViewRepo interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ListingView, error)
	FindActive(ctx context.Context) ([]*ListingListItem, error)
	FindActiveOutsidePriority(ctx context.Context, now time.Time) ([]*ListingListItem, error)
	FindByVendorID(ctx context.Context, vendorID uuid.UUID) ([]*ListingListItem, error)
}

type listingQueriesImpl struct {
	repo  ListingViewRepo
	clock clock.Clock
}

func NewListingQueries(repo ListingViewRepo, clock clock.Clock) ListingQueries {
	return &listingQueriesImpl{repo: repo, clock: clock}
}

func (q *listingQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ListingView, error) {
	view, err := q.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	decorateListingView(view, q.clock.Now())
	return view, nil
}

// ListActive hides priority-window listings from consumers; organisations
// and every other role see the complete active set.
func (q *listingQueriesImpl) ListActive(ctx context.Context, role user.Role) ([]*ListingListItem, error) {
	now := q.clock.Now()

	var (
		rows []*ListingListItem
		err  error
	)
	if role == user.RoleConsumer {
		rows, err = q.repo.FindActiveOutsidePriority(ctx, now)
	} else {
		rows, err = q.repo.FindActive(ctx)
	}
	if err != nil {
		return nil, err
	}
	decorateListingItems(rows, now)
	return rows, nil
}

func (q *listingQueriesImpl) ListByVendor(ctx context.Context, vendorID uuid.UUID) ([]*ListingListItem, error) {
	rows, err := q.repo.FindByVendorID(ctx, vendorID)
	if err != nil {
		return nil, err
	}
	decorateListingItems(rows, q.clock.Now())
	return rows, nil
}

func decorateListingView(v *ListingView, now time.Time) {
	v.AvailablePortions = v.RemainingPortions - v.ReservedPortions
	v.ReservationCap = v.AvailablePortions * listing.CapPercent / 100
	if v.PriorityUntil != nil && now.Before(*v.PriorityUntil) {
		v.PriorityActive = true
		v.PrioritySeconds = int64(v.PriorityUntil.Sub(now).Seconds())
	}
}

func decorateListingItems(rows []*ListingListItem, now time.Time) {
	for _, r := range rows {
		if r.PriorityUntil != nil && now.Before(*r.PriorityUntil) {
			r.PriorityActive = true
		}
	}
}
