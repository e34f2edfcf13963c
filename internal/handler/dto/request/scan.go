package request

import (
	"strings"

	"github.com/google/uuid"
)

// ScanRequest carries one QR scan. Portions is required for consumer
// scans, ReservationID for organisation scans; the role decides which.
type ScanRequest struct {
	QRCode        string     `json:"qr_code" binding:"required"`
	Portions      *int       `json:"portions,omitempty"`
	ReservationID *uuid.UUID `json:"reservation_id,omitempty"`
}

func (r ScanRequest) GetQRCode() string {
	return strings.TrimSpace(r.QRCode)
}
