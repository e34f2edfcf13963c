package listing

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrEmptyTitle           = errors.New("listing title cannot be empty")
	ErrTitleTooLong         = errors.New("listing title is too long (max 255 characters)")
	ErrInvalidTotalPortions = errors.New("total portions must be positive")
	ErrTooManyPortions      = errors.New("total portions exceeds the allowed maximum")
	ErrBestBeforeInPast     = errors.New("best-before must be in the future")
	ErrNotActive            = errors.New("listing is not active")
	ErrAlreadyTerminal      = errors.New("listing is already in a terminal state")
	ErrInvalidStatus        = errors.New("invalid listing status")
	ErrInsufficientPortions = errors.New("not enough remaining portions")
	ErrInvalidReservation   = errors.New("reserved portions must be positive")
	ErrExceedsCap           = errors.New("portions exceed the reservation cap")
)

const (
	MaxTitleLength = 255

	// CapPercent bounds a single organisation hold to 85% of what is
	// currently available, keeping walk-up headroom for consumers.
	CapPercent = 85
)

type Listing struct {
	id                uuid.UUID
	vendorID          uuid.UUID
	title             string
	totalPortions     int
	remainingPortions int
	reservedPortions  int
	status            Status
	bestBefore        time.Time
	priorityUntil     *time.Time
	imageURL          *string
	createdAt         time.Time
	updatedAt         time.Time
}

// NewListing initializes the portion counters: remaining starts at total,
// nothing reserved. priorityWindow > 0 together with priorityRequested pins
// priority_until at creation; it is never extended afterwards.
func NewListing(
	vendorID uuid.UUID,
	title string,
	totalPortions int,
	bestBefore time.Time,
	priorityRequested bool,
	priorityWindow time.Duration,
	maxTotalPortions int,
	imageURL *string,
	now time.Time,
) (*Listing, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, ErrEmptyTitle
	}
	if len(title) > MaxTitleLength {
		return nil, ErrTitleTooLong
	}
	if totalPortions <= 0 {
		return nil, ErrInvalidTotalPortions
	}
	if maxTotalPortions > 0 && totalPortions > maxTotalPortions {
		return nil, ErrTooManyPortions
	}
	if !bestBefore.After(now) {
		return nil, ErrBestBeforeInPast
	}

	var priorityUntil *time.Time
	if priorityRequested && priorityWindow > 0 {
		until := now.Add(priorityWindow)
		priorityUntil = &until
	}

	return &Listing{
		id:                uuid.New(),
		vendorID:          vendorID,
		title:             title,
		totalPortions:     totalPortions,
		remainingPortions: totalPortions,
		reservedPortions:  0,
		status:            StatusActive,
		bestBefore:        bestBefore,
		priorityUntil:     priorityUntil,
		imageURL:          imageURL,
	}, nil
}

func ReconstructListing(
	id, vendorID uuid.UUID,
	title string,
	totalPortions, remainingPortions, reservedPortions int,
	status Status,
	bestBefore time.Time,
	priorityUntil *time.Time,
	imageURL *string,
	createdAt, updatedAt time.Time,
) *Listing {
	return &Listing{
		id:                id,
		vendorID:          vendorID,
		title:             title,
		totalPortions:     totalPortions,
		remainingPortions: remainingPortions,
		reservedPortions:  reservedPortions,
		status:            status,
		bestBefore:        bestBefore,
		priorityUntil:     priorityUntil,
		imageURL:          imageURL,
		createdAt:         createdAt,
		updatedAt:         updatedAt,
	}
}

// Available is what an organisation reservation is measured against:
// remaining minus portions already held by uncollected reservations.
func (l *Listing) Available() int {
	return l.remainingPortions - l.reservedPortions
}

// ReservationCap is floor(available * 85%) evaluated against current state.
func (l *Listing) ReservationCap() int {
	return l.Available() * CapPercent / 100
}

// ValidateReserve checks the reservation preconditions against the entity
// snapshot. The caller is responsible for holding the listing row lock so
// the snapshot cannot move underneath the check.
func (l *Listing) ValidateReserve(portions int) error {
	if l.status != StatusActive {
		return ErrNotActive
	}
	if portions <= 0 {
		return ErrInvalidReservation
	}
	if portions > l.ReservationCap() {
		return ErrExceedsCap
	}
	return nil
}

// ValidateCollect checks a consumer decrement of n portions.
func (l *Listing) ValidateCollect(portions int) error {
	if l.status != StatusActive {
		return ErrNotActive
	}
	if portions > l.remainingPortions {
		return ErrInsufficientPortions
	}
	return nil
}

// ValidateTransition guards the one-way move into a terminal status.
func (l *Listing) ValidateTransition(next Status) error {
	if !next.IsValid() || !next.IsTerminal() {
		return ErrInvalidStatus
	}
	if l.status.IsTerminal() {
		return ErrAlreadyTerminal
	}
	return nil
}

func (l *Listing) HasExpired(now time.Time) bool {
	return now.After(l.bestBefore)
}

func (l *Listing) IsActive() bool {
	return l.status == StatusActive
}

func (l *Listing) ID() uuid.UUID             { return l.id }
func (l *Listing) VendorID() uuid.UUID       { return l.vendorID }
func (l *Listing) Title() string             { return l.title }
func (l *Listing) TotalPortions() int        { return l.totalPortions }
func (l *Listing) RemainingPortions() int    { return l.remainingPortions }
func (l *Listing) ReservedPortions() int     { return l.reservedPortions }
func (l *Listing) Status() Status            { return l.status }
func (l *Listing) BestBefore() time.Time     { return l.bestBefore }
func (l *Listing) PriorityUntil() *time.Time { return l.priorityUntil }
func (l *Listing) ImageURL() *string         { return l.imageURL }
func (l *Listing) CreatedAt() time.Time      { return l.createdAt }
func (l *Listing) UpdatedAt() time.Time      { return l.updatedAt }
