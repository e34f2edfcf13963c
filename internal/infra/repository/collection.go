package repository

import (
	"context"

	"open-fridge/internal/domain/collection"
	"open-fridge/internal/infra"
	"open-fridge/internal/infra/db"
)

type CollectionRepository struct{}

func NewCollectionRepository() *CollectionRepository {
	return &CollectionRepository{}
}

// Create inserts the immutable collection record. Always called in the same
// transaction as the remaining_portions decrement it accounts for.
func (r *CollectionRepository) Create(ctx context.Context, tx db.DBTX, c *collection.Collection) error {
	const q = `
		INSERT INTO collections (id, consumer_id, listing_id, portions_collected, collected_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := tx.Exec(ctx, q,
		c.ID(),
		c.ConsumerID(),
		c.ListingID(),
		int32(c.PortionsCollected()),
		c.CollectedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create collection record", err)
	}
	return nil
}
