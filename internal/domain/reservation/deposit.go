package reservation

import (
	"context"

	"github.com/google/uuid"
)

// DepositCharger charges the flat reservation deposit. The production system
// has no payment gateway; the charge is simulated and succeeds synchronously.
type DepositCharger interface {
	Charge(ctx context.Context, organisationID uuid.UUID, amount int) error
}

type SimulatedDepositCharger struct{}

func NewSimulatedDepositCharger() *SimulatedDepositCharger {
	return &SimulatedDepositCharger{}
}

func (c *SimulatedDepositCharger) Charge(_ context.Context, _ uuid.UUID, amount int) error {
	if amount < 0 {
		return ErrInvalidDeposit
	}
	return nil
}
