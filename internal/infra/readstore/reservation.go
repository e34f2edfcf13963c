package readstore

import (
	"context"

	"open-fridge/internal/infra"
	"open-fridge/internal/infra/db"
	"open-fridge/internal/pkg/pgconv"
	"open-fridge/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationReadStore struct {
	db db.DBTX
}

func NewReservationReadStore(db db.DBTX) *ReservationReadStore {
	return &ReservationReadStore{db: db}
}

func (r *ReservationReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ReservationView, error) {
	const q = `
		SELECT r.id, r.listing_id, l.title, v.name, r.organisation_id,
		       r.portions_reserved, r.deposit_amount, r.deposit_status,
		       r.collected, r.collected_at, r.created_at
		FROM reservations r
		JOIN listings l ON l.id = r.listing_id
		JOIN vendors v ON v.id = l.vendor_id
		WHERE r.id = $1`

	var (
		view        queries.ReservationView
		collectedAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, q, id).Scan(
		&view.ID,
		&view.ListingID,
		&view.ListingTitle,
		&view.VendorName,
		&view.OrganisationID,
		&view.PortionsReserved,
		&view.DepositAmount,
		&view.DepositStatus,
		&view.Collected,
		&collectedAt,
		&view.CreatedAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find reservation by ID", err)
	}
	view.CollectedAt = pgconv.TimePtrFromPgtype(collectedAt)
	return &view, nil
}

func (r *ReservationReadStore) FindByOrganisationID(ctx context.Context, organisationID uuid.UUID) ([]*queries.ReservationListItem, error) {
	const q = `
		SELECT r.id, r.listing_id, l.title,
		       r.portions_reserved, r.deposit_status,
		       r.collected, r.collected_at, r.created_at
		FROM reservations r
		JOIN listings l ON l.id = r.listing_id
		WHERE r.organisation_id = $1
		ORDER BY r.created_at DESC`

	rows, err := r.db.Query(ctx, q, organisationID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find reservations by organisation", err)
	}
	defer rows.Close()

	var result []*queries.ReservationListItem
	for rows.Next() {
		var (
			item        queries.ReservationListItem
			collectedAt pgtype.Timestamptz
		)
		err := rows.Scan(
			&item.ID,
			&item.ListingID,
			&item.ListingTitle,
			&item.PortionsReserved,
			&item.DepositStatus,
			&item.Collected,
			&collectedAt,
			&item.CreatedAt,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan reservation row", err)
		}
		item.CollectedAt = pgconv.TimePtrFromPgtype(collectedAt)
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read reservation rows", err)
	}
	return result, nil
}
