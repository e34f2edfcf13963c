package commands

import (
	"context"

	"open-fridge/internal/infra/db"
	"open-fridge/internal/pkg/errs"
	"open-fridge/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SweepCommands interface {
	ExpireOverdueListings(ctx context.Context) ([]uuid.UUID, error)
}

type sweepCommandsImpl struct {
	listingRepo ListingRepository
	changeFeed  ChangeFeedRepository
	pool        *pgxpool.Pool
}

func NewSweepCommands(listingRepo ListingRepository, changeFeed ChangeFeedRepository, pool *pgxpool.Pool) SweepCommands {
	return &sweepCommandsImpl{listingRepo: listingRepo, changeFeed: changeFeed, pool: pool}
}

// ExpireOverdueListings flips every active listing whose best-before has
// passed to expired and returns the affected ids. Scans against an expired
// listing are refused downstream because the scan path only resolves active
// listings.
func (c *sweepCommandsImpl) ExpireOverdueListings(ctx context.Context) ([]uuid.UUID, error) {
	return shared.WithDefaultRetry(ctx, c.pool, func(tx db.DBTX) ([]uuid.UUID, error) {
		ids, err := c.listingRepo.ExpireOverdue(ctx, tx)
		if err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
		for _, id := range ids {
			if err := c.changeFeed.Emit(ctx, tx, "listing", id, "expired", nil); err != nil {
				return nil, errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
		return ids, nil
	})
}
