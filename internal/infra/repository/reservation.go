package repository

import (
	"context"
	"time"

	"open-fridge/internal/domain/reservation"
	"open-fridge/internal/infra"
	"open-fridge/internal/infra/db"
	"open-fridge/internal/pkg/pgconv"
	"open-fridge/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ReservationRepository struct{}

func NewReservationRepository() *ReservationRepository {
	return &ReservationRepository{}
}

// Create inserts the reservation. The partial unique index on
// (listing_id, organisation_id) WHERE NOT collected backstops the duplicate
// precheck done under the listing lock.
func (r *ReservationRepository) Create(ctx context.Context, tx db.DBTX, res *reservation.Reservation) error {
	const q = `
		INSERT INTO reservations (
			id, listing_id, organisation_id, portions_reserved,
			deposit_amount, deposit_status, collected
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := tx.Exec(ctx, q,
		res.ID(),
		res.ListingID(),
		res.OrganisationID(),
		int32(res.PortionsReserved()),
		int32(res.DepositAmount()),
		res.DepositStatus().String(),
		res.Collected(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to create reservation", err)
	}
	return nil
}

const reservationSnapshotColumns = `
	id, listing_id, organisation_id, portions_reserved,
	deposit_amount, deposit_status, collected, collected_at, created_at`

// FindForUpdate locks the reservation row so a concurrent fulfillment of
// the same reservation serializes behind this transaction.
func (r *ReservationRepository) FindForUpdate(ctx context.Context, tx db.DBTX, id uuid.UUID) (*commands.ReservationSnapshot, error) {
	q := `SELECT` + reservationSnapshotColumns + ` FROM reservations WHERE id = $1 FOR UPDATE`

	snap, err := scanReservationSnapshot(tx.QueryRow(ctx, q, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("reservation not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to lock reservation", err)
	}
	return snap, nil
}

func (r *ReservationRepository) ExistsUncollected(ctx context.Context, tx db.DBTX, listingID, organisationID uuid.UUID) (bool, error) {
	const q = `
		SELECT EXISTS (
			SELECT 1 FROM reservations
			WHERE listing_id = $1 AND organisation_id = $2 AND NOT collected
		)`

	var exists bool
	if err := tx.QueryRow(ctx, q, listingID, organisationID).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check for uncollected reservation", err)
	}
	return exists, nil
}

// MarkCollected flips the reservation to collected. The guards mirror the
// domain validation done under the row lock; zero rows is a conflict.
func (r *ReservationRepository) MarkCollected(ctx context.Context, tx db.DBTX, id uuid.UUID, now time.Time) error {
	const q = `
		UPDATE reservations
		SET collected = true, collected_at = $2
		WHERE id = $1 AND NOT collected AND deposit_status = 'paid'`

	tag, err := tx.Exec(ctx, q, id, now)
	if err != nil {
		return infra.WrapRepoErr("failed to mark reservation collected", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("reservation state changed during fulfillment", nil, infra.KindConflict)
	}
	return nil
}

func scanReservationSnapshot(row rowScanner) (*commands.ReservationSnapshot, error) {
	var (
		snap        commands.ReservationSnapshot
		collectedAt pgtype.Timestamptz
	)
	err := row.Scan(
		&snap.ID,
		&snap.ListingID,
		&snap.OrganisationID,
		&snap.PortionsReserved,
		&snap.DepositAmount,
		&snap.DepositStatus,
		&snap.Collected,
		&collectedAt,
		&snap.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	snap.CollectedAt = pgconv.TimePtrFromPgtype(collectedAt)
	return &snap, nil
}
