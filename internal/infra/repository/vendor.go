package repository

import (
	"context"

	"open-fridge/internal/infra"
	"open-fridge/internal/infra/db"
	"open-fridge/internal/pkg/pgconv"
	"open-fridge/internal/usecase/commands"
)

type VendorRepository struct{}

func NewVendorRepository() *VendorRepository {
	return &VendorRepository{}
}

// FindByQRCode resolves a scanned QR payload to its vendor. The payload is
// an opaque stable string printed on the vendor's fridge; an unknown code is
// the scan flow's first failure mode.
func (r *VendorRepository) FindByQRCode(ctx context.Context, tx db.DBTX, qrCode string) (*commands.VendorSnapshot, error) {
	const q = `SELECT id, name, qr_code FROM vendors WHERE qr_code = $1`

	var snap commands.VendorSnapshot
	if err := tx.QueryRow(ctx, q, qrCode).Scan(&snap.ID, &snap.Name, &snap.QRCode); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("vendor not found for qr code", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to resolve qr code", err)
	}
	return &snap, nil
}
