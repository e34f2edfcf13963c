package listing

import (
	"time"

	"open-fridge/internal/pkg/clock"

	"github.com/google/uuid"
)

// Factory binds the clock and the configured policy knobs so handlers and
// usecases never construct listings with ad-hoc time or limits.
type Factory struct {
	Clock            clock.Clock
	PriorityWindow   time.Duration
	MaxTotalPortions int
}

func NewFactory(clock clock.Clock, priorityWindow time.Duration, maxTotalPortions int) *Factory {
	return &Factory{
		Clock:            clock,
		PriorityWindow:   priorityWindow,
		MaxTotalPortions: maxTotalPortions,
	}
}

func (f *Factory) CreateListing(
	vendorID uuid.UUID,
	title string,
	totalPortions int,
	bestBefore time.Time,
	priorityRequested bool,
	imageURL *string,
) (*Listing, error) {
	return NewListing(
		vendorID,
		title,
		totalPortions,
		bestBefore,
		priorityRequested,
		f.PriorityWindow,
		f.MaxTotalPortions,
		imageURL,
		f.Clock.Now(),
	)
}
