package readstore

import (
	"context"
	"time"

	"open-fridge/internal/infra"
	"open-fridge/internal/infra/db"
	"open-fridge/internal/pkg/pgconv"
	"open-fridge/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type ListingReadStore struct {
	db db.DBTX
}

func NewListingReadStore(db db.DBTX) *ListingReadStore {
	return &ListingReadStore{db: db}
}

func (r *ListingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ListingView, error) {
	const q = `
		SELECT l.id, l.vendor_id, v.name, l.title,
		       l.total_portions, l.remaining_portions, l.reserved_portions,
		       l.status, l.best_before, l.priority_until, l.image_url,
		       l.created_at, l.updated_at
		FROM listings l
		JOIN vendors v ON v.id = l.vendor_id
		WHERE l.id = $1`

	var (
		view          queries.ListingView
		priorityUntil pgtype.Timestamptz
		imageURL      pgtype.Text
	)
	err := r.db.QueryRow(ctx, q, id).Scan(
		&view.ID,
		&view.VendorID,
		&view.VendorName,
		&view.Title,
		&view.TotalPortions,
		&view.RemainingPortions,
		&view.ReservedPortions,
		&view.Status,
		&view.BestBefore,
		&priorityUntil,
		&imageURL,
		&view.CreatedAt,
		&view.UpdatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("listing not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find listing by ID", err)
	}
	view.PriorityUntil = pgconv.TimePtrFromPgtype(priorityUntil)
	view.ImageURL = pgconv.StringPtrFromPgtype(imageURL)
	return &view, nil
}

const listingItemColumns = `
	l.id, l.vendor_id, v.name, l.title,
	l.remaining_portions,
	l.remaining_portions - l.reserved_portions AS available_portions,
	l.status, l.best_before, l.priority_until, l.created_at`

func (r *ListingReadStore) FindActive(ctx context.Context) ([]*queries.ListingListItem, error) {
	q := `SELECT` + listingItemColumns + `
		FROM listings l
		JOIN vendors v ON v.id = l.vendor_id
		WHERE l.status = 'active'
		ORDER BY l.created_at DESC`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find active listings", err)
	}
	return collectListingItems(rows)
}

// FindActiveOutsidePriority returns active listings whose priority window is
// absent or already over, the set a consumer is allowed to see.
func (r *ListingReadStore) FindActiveOutsidePriority(ctx context.Context, now time.Time) ([]*queries.ListingListItem, error) {
	q := `SELECT` + listingItemColumns + `
		FROM listings l
		JOIN vendors v ON v.id = l.vendor_id
		WHERE l.status = 'active'
		  AND (l.priority_until IS NULL OR l.priority_until <= $1)
		ORDER BY l.created_at DESC`

	rows, err := r.db.Query(ctx, q, now)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find consumer-visible listings", err)
	}
	return collectListingItems(rows)
}

func (r *ListingReadStore) FindByVendorID(ctx context.Context, vendorID uuid.UUID) ([]*queries.ListingListItem, error) {
	q := `SELECT` + listingItemColumns + `
		FROM listings l
		JOIN vendors v ON v.id = l.vendor_id
		WHERE l.vendor_id = $1
		ORDER BY l.created_at DESC`

	rows, err := r.db.Query(ctx, q, vendorID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find listings by vendor", err)
	}
	return collectListingItems(rows)
}

func collectListingItems(rows pgx.Rows) ([]*queries.ListingListItem, error) {
	defer rows.Close()

	var result []*queries.ListingListItem
	for rows.Next() {
		var (
			item          queries.ListingListItem
			priorityUntil pgtype.Timestamptz
		)
		err := rows.Scan(
			&item.ID,
			&item.VendorID,
			&item.VendorName,
			&item.Title,
			&item.RemainingPortions,
			&item.AvailablePortions,
			&item.Status,
			&item.BestBefore,
			&priorityUntil,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan listing row", err)
		}
		item.PriorityUntil = pgconv.TimePtrFromPgtype(priorityUntil)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read listing rows", err)
	}
	return result, nil
}
