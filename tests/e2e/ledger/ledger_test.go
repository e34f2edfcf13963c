//go:build e2e

package ledger_test

import (
	"context"
	"net/http"
	nethttptest "net/http/httptest"
	"sync"
	"testing"

	"open-fridge/internal/domain/user"
	"open-fridge/internal/handler/dto/request"
	"open-fridge/internal/handler/dto/response"
	"open-fridge/internal/infra/repository"
	"open-fridge/internal/usecase/commands"
	"open-fridge/tests/common/authtest"
	"open-fridge/tests/common/builder"
	"open-fridge/tests/common/dbtest"
	"open-fridge/tests/common/httptest"
	"open-fridge/tests/e2e"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

const (
	listingsURL     = "/api/listings"
	reservationsURL = "/api/reservations"
	scanURL         = "/api/scan"
)

type LedgerSuite struct {
	e2e.SharedSuite
	jwt *authtest.JWTHelper
}

func (s *LedgerSuite) SetupSuite() {
	s.SharedSuite.SetupSuite()
	s.jwt = authtest.NewJWTHelper(s.Config.JWT)
}

func TestLedgerSuite(t *testing.T) {
	t.Parallel()
	suite.Run(t, new(LedgerSuite))
}

func (s *LedgerSuite) vendorToken(t *testing.T, vendorID uuid.UUID) string {
	return s.jwt.GenerateToken(t, vendorID, user.RoleVendor)
}

func (s *LedgerSuite) createListing(t *testing.T, vendorID uuid.UUID, portions int, priority bool) response.ListingResponse {
	reqBody := builder.NewListingBuilder().With(func(b *builder.ListingBuilder) {
		b.TotalPortions = portions
		b.PriorityRequested = priority
	}).BuildCreateRequestDTO()

	w := httptest.PerformRequest(t, s.Router, http.MethodPost, listingsURL, reqBody, s.vendorToken(t, vendorID))
	require.Equal(t, http.StatusCreated, w.Code, "Should create listing successfully: %s", w.Body.String())

	var created response.ListingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &created))
	return created
}

func (s *LedgerSuite) reserve(t *testing.T, orgID, listingID uuid.UUID, portions int) *nethttptest.ResponseRecorder {
	reqBody := request.CreateReservationRequest{ListingID: listingID, Portions: portions}
	token := s.jwt.GenerateToken(t, orgID, user.RoleOrganisation)
	return httptest.PerformRequest(t, s.Router, http.MethodPost, reservationsURL, reqBody, token)
}

// =============================================================================
// TestListingLifecycle - publish, reserve, collect, fulfill
// =============================================================================

func (s *LedgerSuite) TestListingLifecycle() {
	s.Run("Normal case: full lifecycle keeps the portion counters consistent", func() {
		t := s.T()

		vendorID := dbtest.CreateTestVendor(t, s.DB, "Lifecycle Bakery", "QR-LIFECYCLE")
		created := s.createListing(t, vendorID, 10, true)

		require.Equal(t, int32(10), created.TotalPortions)
		require.Equal(t, int32(10), created.RemainingPortions)
		require.Equal(t, int32(0), created.ReservedPortions)
		require.True(t, created.PriorityActive, "Priority window should be active right after creation")
		require.Greater(t, created.PrioritySeconds, int64(0))

		// Organisation reserves 5 of the 10 portions
		orgID := uuid.New()
		w := s.reserve(t, orgID, created.ID, 5)
		require.Equal(t, http.StatusCreated, w.Code, "Should reserve within the cap: %s", w.Body.String())

		var reservation response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &reservation))

		expected := &response.ReservationResponse{
			ListingID:        created.ID,
			ListingTitle:     created.Title,
			VendorName:       "Lifecycle Bakery",
			OrganisationID:   orgID,
			PortionsReserved: 5,
			DepositAmount:    int32(s.Config.Ledger.DepositAmount),
			DepositStatus:    "paid",
			Collected:        false,
		}
		opts := []cmp.Option{
			cmpopts.IgnoreFields(response.ReservationResponse{}, "ID", "CollectedAt", "CreatedAt"),
		}
		if diff := cmp.Diff(expected, &reservation, opts...); diff != "" {
			t.Errorf("Reservation response mismatch (-want +got):\n%s", diff)
		}

		// Consumer collects 3 portions at the fridge
		consumerID := uuid.New()
		consumerToken := s.jwt.GenerateToken(t, consumerID, user.RoleConsumer)
		portions := 3
		scanBody := request.ScanRequest{QRCode: "QR-LIFECYCLE", Portions: &portions}

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, scanURL, scanBody, consumerToken)
		require.Equal(t, http.StatusOK, w.Code, "Consumer scan should succeed: %s", w.Body.String())

		var scanRes response.ScanResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &scanRes))
		require.Equal(t, "portions_collected", scanRes.Outcome)
		require.Equal(t, 7, scanRes.RemainingPortions)
		require.False(t, scanRes.ListingCompleted)
		require.NotNil(t, scanRes.CollectionID)

		// Organisation fulfills its reservation
		orgToken := s.jwt.GenerateToken(t, orgID, user.RoleOrganisation)
		fulfillBody := request.ScanRequest{QRCode: "QR-LIFECYCLE", ReservationID: &reservation.ID}

		w = httptest.PerformRequest(t, s.Router, http.MethodPost, scanURL, fulfillBody, orgToken)
		require.Equal(t, http.StatusOK, w.Code, "Organisation scan should fulfill: %s", w.Body.String())

		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &scanRes))
		require.Equal(t, "reservation_fulfilled", scanRes.Outcome)
		require.Equal(t, 2, scanRes.RemainingPortions)
		require.False(t, scanRes.ListingCompleted)

		// Both counters moved in one step: 10 - 3 - 5 = 2 remaining, nothing reserved
		detail := s.getListing(t, created.ID, orgToken)
		require.Equal(t, int32(2), detail.RemainingPortions)
		require.Equal(t, int32(0), detail.ReservedPortions)
		require.Equal(t, int32(2), detail.AvailablePortions)
		require.Equal(t, "active", detail.Status)

		// A second fulfillment of the same reservation is rejected
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, scanURL, fulfillBody, orgToken)
		require.Equal(t, http.StatusConflict, w.Code, "Reservation must only be collectable once")
	})

	s.Run("Normal case: listing completes when the last portion is taken", func() {
		t := s.T()

		vendorID := dbtest.CreateTestVendor(t, s.DB, "Small Batch Deli", "QR-SMALL-BATCH")
		created := s.createListing(t, vendorID, 2, false)

		consumerToken := s.jwt.GenerateToken(t, uuid.New(), user.RoleConsumer)
		portions := 2
		scanBody := request.ScanRequest{QRCode: "QR-SMALL-BATCH", Portions: &portions}

		w := httptest.PerformRequest(t, s.Router, http.MethodPost, scanURL, scanBody, consumerToken)
		require.Equal(t, http.StatusOK, w.Code)

		var scanRes response.ScanResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &scanRes))
		require.Equal(t, 0, scanRes.RemainingPortions)
		require.True(t, scanRes.ListingCompleted, "Listing should complete at zero remaining portions")

		detail := s.getListing(t, created.ID, consumerToken)
		require.Equal(t, "completed", detail.Status)

		// Nothing active at the fridge anymore
		portions = 1
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, scanURL,
			request.ScanRequest{QRCode: "QR-SMALL-BATCH", Portions: &portions}, consumerToken)
		require.Equal(t, http.StatusNotFound, w.Code, "Completed listing should no longer accept scans")
	})
}

// =============================================================================
// TestReservationCap - the 85% cap over available portions
// =============================================================================

func (s *LedgerSuite) TestReservationCap() {
	s.Run("Boundary: cap admits 85 of 100 and recomputes on the remainder", func() {
		t := s.T()

		vendorID := dbtest.CreateTestVendor(t, s.DB, "Warehouse Kitchen", "QR-WAREHOUSE")
		created := s.createListing(t, vendorID, 100, false)
		require.Equal(t, int32(85), created.ReservationCap)

		// 86 portions exceed the cap
		w := s.reserve(t, uuid.New(), created.ID, 86)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, "86 of 100 must exceed the cap")

		// 85 is exactly allowed
		w = s.reserve(t, uuid.New(), created.ID, 85)
		require.Equal(t, http.StatusCreated, w.Code, "85 of 100 is exactly the cap: %s", w.Body.String())

		// 15 available now; cap = floor(15 * 0.85) = 12
		orgToken := s.jwt.GenerateToken(t, uuid.New(), user.RoleOrganisation)
		detail := s.getListing(t, created.ID, orgToken)
		require.Equal(t, int32(15), detail.AvailablePortions)
		require.Equal(t, int32(12), detail.ReservationCap)

		w = s.reserve(t, uuid.New(), created.ID, 13)
		require.Equal(t, http.StatusUnprocessableEntity, w.Code, "Cap shrinks with existing holds")

		w = s.reserve(t, uuid.New(), created.ID, 12)
		require.Equal(t, http.StatusCreated, w.Code, "12 fits the recomputed cap: %s", w.Body.String())
	})

	s.Run("Error case: duplicate uncollected reservation on the same listing", func() {
		t := s.T()

		vendorID := dbtest.CreateTestVendor(t, s.DB, "Duplicate Deli", "QR-DUPLICATE")
		created := s.createListing(t, vendorID, 50, false)

		orgID := uuid.New()
		w := s.reserve(t, orgID, created.ID, 5)
		require.Equal(t, http.StatusCreated, w.Code)

		w = s.reserve(t, orgID, created.ID, 3)
		require.Equal(t, http.StatusConflict, w.Code, "One uncollected reservation per organisation per listing")

		// A different organisation is unaffected
		w = s.reserve(t, uuid.New(), created.ID, 3)
		require.Equal(t, http.StatusCreated, w.Code)
	})

	s.Run("Error case: reservation on a missing listing", func() {
		t := s.T()

		w := s.reserve(t, uuid.New(), uuid.New(), 5)
		require.Equal(t, http.StatusNotFound, w.Code)
	})
}

// =============================================================================
// TestPriorityWindow - visibility during the charity-priority window
// =============================================================================

func (s *LedgerSuite) TestPriorityWindow() {
	s.Run("Normal case: consumers do not see priority listings, organisations do", func() {
		t := s.T()

		vendorID := dbtest.CreateTestVendor(t, s.DB, "Priority Grocer", "QR-PRIORITY")
		prioritised := s.createListing(t, vendorID, 10, true)
		open := s.createListing(t, vendorID, 10, false)

		consumerToken := s.jwt.GenerateToken(t, uuid.New(), user.RoleConsumer)
		orgToken := s.jwt.GenerateToken(t, uuid.New(), user.RoleOrganisation)

		consumerIDs := s.listListingIDs(t, consumerToken)
		require.NotContains(t, consumerIDs, prioritised.ID, "Priority listing should be hidden from consumers")
		require.Contains(t, consumerIDs, open.ID)

		orgIDs := s.listListingIDs(t, orgToken)
		require.Contains(t, orgIDs, prioritised.ID, "Organisations see listings during the priority window")
		require.Contains(t, orgIDs, open.ID)
	})

	s.Run("Normal case: organisations can reserve while the window is open", func() {
		t := s.T()

		vendorID := dbtest.CreateTestVendor(t, s.DB, "Priority Grocer 2", "QR-PRIORITY-2")
		created := s.createListing(t, vendorID, 20, true)

		w := s.reserve(t, uuid.New(), created.ID, 10)
		require.Equal(t, http.StatusCreated, w.Code, "Priority window should not block reservations: %s", w.Body.String())
	})

	s.Run("Boundary: the listing opens to consumers once the window elapses", func() {
		t := s.T()

		vendorID := dbtest.CreateTestVendor(t, s.DB, "Elapsed Grocer", "QR-ELAPSED")
		created := s.createListing(t, vendorID, 10, true)

		consumerToken := s.jwt.GenerateToken(t, uuid.New(), user.RoleConsumer)
		require.NotContains(t, s.listListingIDs(t, consumerToken), created.ID)

		_, err := s.DB.Exec(context.Background(),
			"UPDATE listings SET priority_until = now() - interval '1 minute' WHERE id = $1", created.ID)
		require.NoError(t, err)

		require.Contains(t, s.listListingIDs(t, consumerToken), created.ID,
			"An elapsed window must not keep hiding the listing from consumers")

		orgToken := s.jwt.GenerateToken(t, uuid.New(), user.RoleOrganisation)
		require.Contains(t, s.listListingIDs(t, orgToken), created.ID)
	})
}

// =============================================================================
// TestCancelListing - vendor-side cancellation
// =============================================================================

func (s *LedgerSuite) TestCancelListing() {
	s.Run("Normal case: vendor cancels an active listing", func() {
		t := s.T()

		vendorID := dbtest.CreateTestVendor(t, s.DB, "Cancelling Cafe", "QR-CANCEL")
		created := s.createListing(t, vendorID, 10, false)
		token := s.vendorToken(t, vendorID)

		cancelURL := listingsURL + "/" + created.ID.String() + "/cancel"
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, cancelURL, nil, token)
		require.Equal(t, http.StatusNoContent, w.Code)

		detail := s.getListing(t, created.ID, token)
		require.Equal(t, "cancelled", detail.Status)

		// Cancelling twice is a conflict, not a silent success
		w = httptest.PerformRequest(t, s.Router, http.MethodPost, cancelURL, nil, token)
		require.Equal(t, http.StatusConflict, w.Code)

		// No reservations against a cancelled listing
		rw := s.reserve(t, uuid.New(), created.ID, 2)
		require.Equal(t, http.StatusConflict, rw.Code)
	})

	s.Run("Error case: another vendor cannot cancel the listing", func() {
		t := s.T()

		ownerID := dbtest.CreateTestVendor(t, s.DB, "Owner Cafe", "QR-OWNER")
		otherID := dbtest.CreateTestVendor(t, s.DB, "Other Cafe", "QR-OTHER")
		created := s.createListing(t, ownerID, 10, false)

		w := httptest.PerformRequest(t, s.Router, http.MethodPost,
			listingsURL+"/"+created.ID.String()+"/cancel", nil, s.vendorToken(t, otherID))
		require.Equal(t, http.StatusForbidden, w.Code)
	})
}

// =============================================================================
// TestScanErrors - scan endpoint edge cases and role gates
// =============================================================================

func (s *LedgerSuite) TestScanErrors() {
	s.Run("Error case: unknown QR code", func() {
		t := s.T()

		token := s.jwt.GenerateToken(t, uuid.New(), user.RoleConsumer)
		portions := 1
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, scanURL,
			request.ScanRequest{QRCode: "QR-NOWHERE", Portions: &portions}, token)
		require.Equal(t, http.StatusNotFound, w.Code)
	})

	s.Run("Error case: consumer portion count out of range", func() {
		t := s.T()

		vendorID := dbtest.CreateTestVendor(t, s.DB, "Range Cafe", "QR-RANGE")
		s.createListing(t, vendorID, 10, false)

		token := s.jwt.GenerateToken(t, uuid.New(), user.RoleConsumer)
		portions := 6
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, scanURL,
			request.ScanRequest{QRCode: "QR-RANGE", Portions: &portions}, token)
		require.Equal(t, http.StatusBadRequest, w.Code, "More than five portions per scan is rejected")
	})

	s.Run("Error case: collecting more than remains", func() {
		t := s.T()

		vendorID := dbtest.CreateTestVendor(t, s.DB, "Scarce Cafe", "QR-SCARCE")
		s.createListing(t, vendorID, 2, false)

		token := s.jwt.GenerateToken(t, uuid.New(), user.RoleConsumer)
		portions := 3
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, scanURL,
			request.ScanRequest{QRCode: "QR-SCARCE", Portions: &portions}, token)
		require.Equal(t, http.StatusConflict, w.Code, "Cannot take more portions than remain")
	})

	s.Run("Error case: vendor role is rejected at the route", func() {
		t := s.T()

		vendorID := dbtest.CreateTestVendor(t, s.DB, "Scanning Vendor", "QR-VENDOR-SCAN")
		portions := 1
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, scanURL,
			request.ScanRequest{QRCode: "QR-VENDOR-SCAN", Portions: &portions}, s.vendorToken(t, vendorID))
		require.Equal(t, http.StatusForbidden, w.Code)
	})

	s.Run("Error case: fulfilling another organisation's reservation reads as not found", func() {
		t := s.T()

		vendorID := dbtest.CreateTestVendor(t, s.DB, "Privacy Cafe", "QR-PRIVACY")
		created := s.createListing(t, vendorID, 20, false)

		w := s.reserve(t, uuid.New(), created.ID, 5)
		require.Equal(t, http.StatusCreated, w.Code)
		var reservation response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &reservation))

		intruderToken := s.jwt.GenerateToken(t, uuid.New(), user.RoleOrganisation)
		sw := httptest.PerformRequest(t, s.Router, http.MethodPost, scanURL,
			request.ScanRequest{QRCode: "QR-PRIVACY", ReservationID: &reservation.ID}, intruderToken)
		require.Equal(t, http.StatusNotFound, sw.Code, "Foreign reservations must not be observable")
	})

	s.Run("Error case: expired token is rejected", func() {
		t := s.T()

		token := s.jwt.CreateExpiredToken(t, uuid.New(), user.RoleConsumer)
		portions := 1
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, scanURL,
			request.ScanRequest{QRCode: dbtest.DefaultVendorQR, Portions: &portions}, token)
		require.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

// =============================================================================
// TestExpirySweep - best-before driven expiry of overdue listings
// =============================================================================

func (s *LedgerSuite) TestExpirySweep() {
	s.Run("Normal case: overdue listings flip to expired and stop accepting scans", func() {
		t := s.T()
		ctx := context.Background()

		overdueVendor := dbtest.CreateTestVendor(t, s.DB, "Overdue Bakery", "QR-OVERDUE")
		freshVendor := dbtest.CreateTestVendor(t, s.DB, "Fresh Bakery", "QR-FRESH")
		overdue := s.createListing(t, overdueVendor, 10, false)
		fresh := s.createListing(t, freshVendor, 10, false)

		_, err := s.DB.Exec(ctx,
			"UPDATE listings SET best_before = now() - interval '1 hour' WHERE id = $1", overdue.ID)
		require.NoError(t, err)

		sweeper := commands.NewSweepCommands(
			repository.NewListingRepository(), repository.NewChangeFeedRepository(), s.DB)

		ids, err := sweeper.ExpireOverdueListings(ctx)
		require.NoError(t, err)
		require.Contains(t, ids, overdue.ID)
		require.NotContains(t, ids, fresh.ID, "Listings still within best-before stay active")

		require.Equal(t, "expired", s.getListing(t, overdue.ID, s.vendorToken(t, overdueVendor)).Status)
		require.Equal(t, "active", s.getListing(t, fresh.ID, s.vendorToken(t, freshVendor)).Status)

		var events int
		err = s.DB.QueryRow(ctx,
			"SELECT count(*) FROM change_events WHERE entity = 'listing' AND entity_id = $1 AND op = 'expired'",
			overdue.ID).Scan(&events)
		require.NoError(t, err)
		require.Equal(t, 1, events, "Each expired listing emits exactly one change event")

		// Expired listings no longer resolve from a scan
		portions := 2
		w := httptest.PerformRequest(t, s.Router, http.MethodPost, scanURL,
			request.ScanRequest{QRCode: "QR-OVERDUE", Portions: &portions},
			s.jwt.GenerateToken(t, uuid.New(), user.RoleConsumer))
		require.Equal(t, http.StatusNotFound, w.Code, "Scan body: %s", w.Body.String())
	})

	s.Run("Normal case: a second sweep finds nothing left to expire", func() {
		t := s.T()
		ctx := context.Background()

		vendorID := dbtest.CreateTestVendor(t, s.DB, "Repeat Bakery", "QR-REPEAT")
		created := s.createListing(t, vendorID, 5, false)

		_, err := s.DB.Exec(ctx,
			"UPDATE listings SET best_before = now() - interval '1 hour' WHERE id = $1", created.ID)
		require.NoError(t, err)

		sweeper := commands.NewSweepCommands(
			repository.NewListingRepository(), repository.NewChangeFeedRepository(), s.DB)

		ids, err := sweeper.ExpireOverdueListings(ctx)
		require.NoError(t, err)
		require.Contains(t, ids, created.ID)

		ids, err = sweeper.ExpireOverdueListings(ctx)
		require.NoError(t, err)
		require.Empty(t, ids)
	})
}

// =============================================================================
// TestConcurrentScans - serialized counter updates under parallel load
// =============================================================================

func (s *LedgerSuite) TestConcurrentScans() {
	s.Run("Concurrency: portions are never over-collected", func() {
		t := s.T()

		vendorID := dbtest.CreateTestVendor(t, s.DB, "Contended Cafe", "QR-CONTENDED")
		created := s.createListing(t, vendorID, 5, false)

		const attempts = 5
		codes := make(chan int, attempts)
		var wg sync.WaitGroup
		for range attempts {
			wg.Add(1)
			go func() {
				defer wg.Done()
				token := s.jwt.GenerateToken(t, uuid.New(), user.RoleConsumer)
				portions := 2
				w := httptest.PerformRequest(t, s.Router, http.MethodPost, scanURL,
					request.ScanRequest{QRCode: "QR-CONTENDED", Portions: &portions}, token)
				codes <- w.Code
			}()
		}
		wg.Wait()
		close(codes)

		succeeded := 0
		for code := range codes {
			if code == http.StatusOK {
				succeeded++
			} else {
				require.Equal(t, http.StatusConflict, code, "Losers must fail with a conflict, not corrupt state")
			}
		}
		require.Equal(t, 2, succeeded, "Only floor(5/2) scans of 2 portions can win")

		detail := s.getListing(t, created.ID, s.jwt.GenerateToken(t, uuid.New(), user.RoleConsumer))
		require.Equal(t, int32(1), detail.RemainingPortions, "5 - 2*2 = 1 portion left")
	})

	s.Run("Concurrency: a reservation is fulfilled exactly once", func() {
		t := s.T()

		vendorID := dbtest.CreateTestVendor(t, s.DB, "Race Cafe", "QR-RACE")
		created := s.createListing(t, vendorID, 10, false)

		orgID := uuid.New()
		w := s.reserve(t, orgID, created.ID, 4)
		require.Equal(t, http.StatusCreated, w.Code)
		var reservation response.ReservationResponse
		require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &reservation))

		token := s.jwt.GenerateToken(t, orgID, user.RoleOrganisation)

		const attempts = 4
		codes := make(chan int, attempts)
		var wg sync.WaitGroup
		for range attempts {
			wg.Add(1)
			go func() {
				defer wg.Done()
				sw := httptest.PerformRequest(t, s.Router, http.MethodPost, scanURL,
					request.ScanRequest{QRCode: "QR-RACE", ReservationID: &reservation.ID}, token)
				codes <- sw.Code
			}()
		}
		wg.Wait()
		close(codes)

		succeeded := 0
		for code := range codes {
			if code == http.StatusOK {
				succeeded++
			} else {
				require.Equal(t, http.StatusConflict, code)
			}
		}
		require.Equal(t, 1, succeeded, "Exactly one fulfillment must win")

		detail := s.getListing(t, created.ID, token)
		require.Equal(t, int32(6), detail.RemainingPortions)
		require.Equal(t, int32(0), detail.ReservedPortions)
	})
}

// =============================================================================
// helpers
// =============================================================================

func (s *LedgerSuite) getListing(t *testing.T, id uuid.UUID, token string) response.ListingResponse {
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, listingsURL+"/"+id.String(), nil, token)
	require.Equal(t, http.StatusOK, w.Code, "Should fetch listing detail: %s", w.Body.String())

	var detail response.ListingResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &detail))
	return detail
}

func (s *LedgerSuite) listListingIDs(t *testing.T, token string) []uuid.UUID {
	w := httptest.PerformRequest(t, s.Router, http.MethodGet, listingsURL, nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	var items []response.ListingListResponse
	require.NoError(t, httptest.DecodeResponseBody(t, w.Body, &items))

	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.ID)
	}
	return ids
}
