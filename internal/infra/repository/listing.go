package repository

import (
	"context"

	"open-fridge/internal/domain/listing"
	"open-fridge/internal/infra"
	"open-fridge/internal/infra/db"
	"open-fridge/internal/pkg/pgconv"
	"open-fridge/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ListingRepository struct{}

func NewListingRepository() *ListingRepository {
	return &ListingRepository{}
}

func (r *ListingRepository) Create(ctx context.Context, tx db.DBTX, l *listing.Listing) error {
	const q = `
		INSERT INTO listings (
			id, vendor_id, title, total_portions, remaining_portions,
			reserved_portions, status, best_before, priority_until, image_url
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := tx.Exec(ctx, q,
		l.ID(),
		l.VendorID(),
		l.Title(),
		int32(l.TotalPortions()),
		int32(l.RemainingPortions()),
		int32(l.ReservedPortions()),
		l.Status().String(),
		l.BestBefore(),
		pgconv.TimePtrToPgtype(l.PriorityUntil()),
		pgconv.StringPtrToPgtype(l.ImageURL()),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create listing", err)
	}
	return nil
}

const listingSnapshotColumns = `
	id, vendor_id, title, total_portions, remaining_portions,
	reserved_portions, status, best_before, priority_until, image_url,
	created_at, updated_at`

// FindForUpdate locks the listing row for the rest of the transaction so
// counter validation and the following update see serialized state.
func (r *ListingRepository) FindForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*commands.ListingSnapshot, error) {
	q := `SELECT` + listingSnapshotColumns + ` FROM listings WHERE id = $1 FOR UPDATE`

	snap, err := scanListingSnapshot(tx.QueryRow(ctx, q, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("listing not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock listing", err)
	}
	return snap, nil
}

// FindActiveByVendorForUpdate resolves a vendor's single active listing,
// locking it. Scan processing starts here.
func (r *ListingRepository) FindActiveByVendorForUpdate(ctx context.Context, tx db.DBTX, vendorID uuid.UUID) (*commands.ListingSnapshot, error) {
	q := `SELECT` + listingSnapshotColumns + `
		FROM listings
		WHERE vendor_id = $1 AND status = 'active'
		ORDER BY created_at DESC
		LIMIT 1
		FOR UPDATE`

	snap, err := scanListingSnapshot(tx.QueryRow(ctx, q, vendorID))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("no active listing for vendor", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock vendor listing", err)
	}
	return snap, nil
}

// ApplyCollect decrements remaining_portions by n. The WHERE guard repeats
// the validation done under the row lock; zero affected rows means the state
// moved in a way the caller must treat as a conflict.
func (r *ListingRepository) ApplyCollect(ctx context.Context, tx db.DBTX, id uuid.UUID, n int) (int, error) {
	const q = `
		UPDATE listings
		SET remaining_portions = remaining_portions - $2, updated_at = now()
		WHERE id = $1 AND status = 'active' AND remaining_portions >= $2
		RETURNING remaining_portions`

	var remaining int32
	if err := tx.QueryRow(ctx, q, id, int32(n)).Scan(&remaining); err != nil {
		if pgconv.IsNoRows(err) {
			return 0, infra.WrapRepoErr("listing state changed during collect", err, infra.KindConflict)
		}
		return 0, infra.WrapRepoErr("failed to decrement remaining portions", err)
	}
	return int(remaining), nil
}

// ApplyReserve bumps the reserved counter for an accepted reservation.
func (r *ListingRepository) ApplyReserve(ctx context.Context, tx db.DBTX, id uuid.UUID, n int) error {
	const q = `
		UPDATE listings
		SET reserved_portions = reserved_portions + $2, updated_at = now()
		WHERE id = $1 AND status = 'active' AND reserved_portions + $2 <= remaining_portions
		RETURNING reserved_portions`

	var reserved int32
	if err := tx.QueryRow(ctx, q, id, int32(n)).Scan(&reserved); err != nil {
		if pgconv.IsNoRows(err) {
			return infra.WrapRepoErr("listing state changed during reserve", err, infra.KindConflict)
		}
		return infra.WrapRepoErr("failed to increment reserved portions", err)
	}
	return nil
}

// ApplyFulfillment releases a collected reservation's hold: the portions
// leave both remaining and reserved in one statement.
func (r *ListingRepository) ApplyFulfillment(ctx context.Context, tx db.DBTX, id uuid.UUID, n int) (int, error) {
	const q = `
		UPDATE listings
		SET remaining_portions = remaining_portions - $2,
		    reserved_portions = reserved_portions - $2,
		    updated_at = now()
		WHERE id = $1 AND status = 'active'
		  AND remaining_portions >= $2 AND reserved_portions >= $2
		RETURNING remaining_portions`

	var remaining int32
	if err := tx.QueryRow(ctx, q, id, int32(n)).Scan(&remaining); err != nil {
		if pgconv.IsNoRows(err) {
			return 0, infra.WrapRepoErr("listing state changed during fulfillment", err, infra.KindConflict)
		}
		return 0, infra.WrapRepoErr("failed to apply reservation fulfillment", err)
	}
	return int(remaining), nil
}

// MarkStatus performs the one-way move into a terminal status. Terminal
// rows are excluded by the WHERE clause, so re-marking affects nothing.
func (r *ListingRepository) MarkStatus(ctx context.Context, tx db.DBTX, id uuid.UUID, status listing.Status) error {
	const q = `
		UPDATE listings
		SET status = $2, updated_at = now()
		WHERE id = $1 AND status = 'active'`

	tag, err := tx.Exec(ctx, q, id, status.String())
	if err != nil {
		return infra.WrapRepoErr("failed to mark listing status", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("listing already terminal", nil, infra.KindConflict)
	}
	return nil
}

// ExpireOverdue transitions every active listing past its best_before and
// returns the affected ids so change events can be emitted per listing.
func (r *ListingRepository) ExpireOverdue(ctx context.Context, tx db.DBTX) ([]uuid.UUID, error) {
	const q = `
		UPDATE listings
		SET status = 'expired', updated_at = now()
		WHERE status = 'active' AND best_before <= now()
		RETURNING id`

	rows, err := tx.Query(ctx, q)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to expire overdue listings", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, infra.WrapRepoErr("failed to scan expired listing id", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read expired listing ids", err)
	}
	return ids, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanListingSnapshot(row rowScanner) (*commands.ListingSnapshot, error) {
	var (
		snap          commands.ListingSnapshot
		priorityUntil pgtype.Timestamptz
		imageURL      pgtype.Text
	)
	err := row.Scan(
		&snap.ID,
		&snap.VendorID,
		&snap.Title,
		&snap.TotalPortions,
		&snap.RemainingPortions,
		&snap.ReservedPortions,
		&snap.Status,
		&snap.BestBefore,
		&priorityUntil,
		&imageURL,
		&snap.CreatedAt,
		&snap.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	snap.PriorityUntil = pgconv.TimePtrFromPgtype(priorityUntil)
	snap.ImageURL = pgconv.StringPtrFromPgtype(imageURL)
	return &snap, nil
}
