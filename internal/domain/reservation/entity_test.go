//go:build unit

package reservation_test

import (
	"testing"
	"time"

	"open-fridge/internal/domain/reservation"
	"open-fridge/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.ReservationBuilder)
	errIs  error
}

func TestReservation(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewReservationBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, 5, actual.PortionsReserved())
		assert.Equal(t, 50, actual.DepositAmount())
		assert.Equal(t, reservation.DepositPaid, actual.DepositStatus())
		assert.False(t, actual.Collected())
		assert.Nil(t, actual.CollectedAt())
	})

	t.Run("creation validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "zero portions",
				mutate: func(b *builder.ReservationBuilder) { b.PortionsReserved = 0 },
				errIs:  reservation.ErrInvalidPortions,
			},
			{
				name:   "negative portions",
				mutate: func(b *builder.ReservationBuilder) { b.PortionsReserved = -3 },
				errIs:  reservation.ErrInvalidPortions,
			},
			{
				name:   "negative deposit",
				mutate: func(b *builder.ReservationBuilder) { b.DepositAmount = -1 },
				errIs:  reservation.ErrInvalidDeposit,
			},
			{
				name:   "zero deposit is allowed",
				mutate: func(b *builder.ReservationBuilder) { b.DepositAmount = 0 },
			},
		})
	})
}

func TestReservationFulfill(t *testing.T) {
	t.Run("fulfill marks collected once", func(t *testing.T) {
		ent := builder.NewReservationBuilder().BuildReconstructed()
		now := time.Now().UTC()

		require.NoError(t, ent.Fulfill(now))
		assert.True(t, ent.Collected())
		require.NotNil(t, ent.CollectedAt())
		assert.Equal(t, now, *ent.CollectedAt())

		assert.ErrorIs(t, ent.Fulfill(now.Add(time.Minute)), reservation.ErrAlreadyCollected)
	})

	t.Run("already collected", func(t *testing.T) {
		collectedAt := time.Now().UTC().Add(-time.Hour)
		ent := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
			b.Collected = true
			b.CollectedAt = &collectedAt
		}).BuildReconstructed()

		assert.ErrorIs(t, ent.ValidateFulfill(), reservation.ErrAlreadyCollected)
	})

	t.Run("deposit not paid", func(t *testing.T) {
		ent := builder.NewReservationBuilder().With(func(b *builder.ReservationBuilder) {
			b.DepositStatus = "pending"
		}).BuildReconstructed()

		assert.ErrorIs(t, ent.ValidateFulfill(), reservation.ErrDepositNotPaid)
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewReservationBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
