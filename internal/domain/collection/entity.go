package collection

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrInvalidPortionCount = errors.New("portions collected must be between 1 and 5")

const (
	MinPortionsPerScan = 1
	MaxPortionsPerScan = 5
)

// Collection is the immutable record of portions physically taken by a
// consumer. Creating one and decrementing the listing's remaining portions
// happen in the same transaction; the record is never updated or deleted.
type Collection struct {
	id                uuid.UUID
	consumerID        uuid.UUID
	listingID         uuid.UUID
	portionsCollected int
	collectedAt       time.Time
}

func NewCollection(consumerID, listingID uuid.UUID, portions int, now time.Time) (*Collection, error) {
	if portions < MinPortionsPerScan || portions > MaxPortionsPerScan {
		return nil, ErrInvalidPortionCount
	}

	return &Collection{
		id:                uuid.New(),
		consumerID:        consumerID,
		listingID:         listingID,
		portionsCollected: portions,
		collectedAt:       now,
	}, nil
}

func ReconstructCollection(
	id, consumerID, listingID uuid.UUID,
	portionsCollected int,
	collectedAt time.Time,
) *Collection {
	return &Collection{
		id:                id,
		consumerID:        consumerID,
		listingID:         listingID,
		portionsCollected: portionsCollected,
		collectedAt:       collectedAt,
	}
}

func (c *Collection) ID() uuid.UUID          { return c.id }
func (c *Collection) ConsumerID() uuid.UUID  { return c.consumerID }
func (c *Collection) ListingID() uuid.UUID   { return c.listingID }
func (c *Collection) PortionsCollected() int { return c.portionsCollected }
func (c *Collection) CollectedAt() time.Time { return c.collectedAt }
