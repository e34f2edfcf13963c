package commands

import "open-fridge/internal/pkg/errs"

var (
	ErrListingNotFound         = errs.New("listing not found")
	ErrListingNotActive        = errs.New("listing is not active")
	ErrAlreadyTerminal         = errs.New("listing is already terminal")
	ErrNotListingOwner         = errs.New("listing belongs to another vendor")
	ErrInsufficientPortions    = errs.New("insufficient portions")
	ErrInvalidPortionCount     = errs.New("invalid portion count")
	ErrExceedsReservationCap   = errs.New("exceeds reservation cap")
	ErrDuplicateReservation    = errs.New("duplicate reservation")
	ErrReservationNotFound     = errs.New("reservation not found")
	ErrAlreadyCollected        = errs.New("reservation already collected")
	ErrDepositNotPaid          = errs.New("deposit not paid")
	ErrDepositChargeFailed     = errs.New("deposit charge failed")
	ErrInvalidQRCode           = errs.New("invalid qr code")
	ErrNoActiveListing         = errs.New("no active listing for vendor")
	ErrUnsupportedRole         = errs.New("unsupported role")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrConflict                = errs.New("concurrent update conflict")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)
