//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"open-fridge/internal/domain/user"
	"open-fridge/internal/handler/api"
	resdto "open-fridge/internal/handler/dto/response"
	"open-fridge/internal/usecase/commands"
	"open-fridge/tests/common/httptest"
	"open-fridge/tests/common/testutil"
	commandsmock "open-fridge/tests/mock/commands"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ScanHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockScanCommands
	handler      *api.ScanHandler

	authUserID uuid.UUID
	authRole   user.Role
}

func (s *ScanHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockScanCommands(s.mockCtrl)
	s.handler = api.NewScanHandler(s.mockCommands)

	s.authUserID = uuid.New()
	s.authRole = user.RoleConsumer

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("user_id", s.authUserID)
		c.Set("user_role", s.authRole)
		c.Next()
	}

	s.router.POST("/scan", authMiddleware, s.handler.Scan)
}

func (s *ScanHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestScanHandlerSuite(t *testing.T) {
	suite.Run(t, new(ScanHandlerTestSuite))
}

func (s *ScanHandlerTestSuite) TestScan() {
	url := "/scan"
	listingID := uuid.New()
	collectionID := uuid.New()
	reservationID := uuid.New()

	portions := 2
	consumerBody := map[string]any{"qr_code": "QR-FRIDGE-7", "portions": portions}
	orgBody := map[string]any{"qr_code": "QR-FRIDGE-7", "reservation_id": reservationID.String()}

	s.Run("success: consumer collection returns 200 with outcome", func() {
		result := &commands.ScanResult{
			Outcome:           commands.OutcomePortionsCollected,
			ListingID:         listingID,
			RemainingPortions: 8,
			CollectionID:      &collectionID,
		}
		s.mockCommands.EXPECT().Scan(gomock.Any(), s.authUserID, user.RoleConsumer, gomock.Any()).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, consumerBody, "bearer-token")

		var response resdto.ScanResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(string(commands.OutcomePortionsCollected), response.Outcome)
		s.Equal(listingID, response.ListingID)
		s.Equal(8, response.RemainingPortions)
		s.False(response.ListingCompleted)
		s.Equal(&collectionID, response.CollectionID)
		s.Nil(response.ReservationID)
	})

	s.Run("success: organisation fulfillment returns 200 with outcome", func() {
		s.authRole = user.RoleOrganisation
		defer func() { s.authRole = user.RoleConsumer }()

		result := &commands.ScanResult{
			Outcome:           commands.OutcomeReservationFulfilled,
			ListingID:         listingID,
			RemainingPortions: 0,
			ListingCompleted:  true,
			ReservationID:     &reservationID,
		}
		s.mockCommands.EXPECT().Scan(gomock.Any(), s.authUserID, user.RoleOrganisation, gomock.Any()).
			Return(result, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, orgBody, "bearer-token")

		var response resdto.ScanResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(string(commands.OutcomeReservationFulfilled), response.Outcome)
		s.True(response.ListingCompleted)
		s.Equal(&reservationID, response.ReservationID)
	})

	s.Run("error: 400 Bad Request when qr_code is missing", func() {
		requestMap := testutil.DtoMap(s.T(), consumerBody, testutil.Field("qr_code", nil))
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request format")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, consumerBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "role cannot scan",
				commandsError:  commands.ErrUnsupportedRole,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "cannot collect",
			},
			{
				name:           "invalid portion count",
				commandsError:  commands.ErrInvalidPortionCount,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "between 1 and 5",
			},
			{
				name:           "unknown QR code",
				commandsError:  commands.ErrInvalidQRCode,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Unknown QR code",
			},
			{
				name:           "no active listing at the fridge",
				commandsError:  commands.ErrNoActiveListing,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "No active listing",
			},
			{
				name:           "insufficient portions",
				commandsError:  commands.ErrInsufficientPortions,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "Not enough portions",
			},
			{
				name:           "reservation not found",
				commandsError:  commands.ErrReservationNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Reservation not found",
			},
			{
				name:           "reservation already collected",
				commandsError:  commands.ErrAlreadyCollected,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "already been collected",
			},
			{
				name:           "deposit not paid",
				commandsError:  commands.ErrDepositNotPaid,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "deposit is not paid",
			},
			{
				name:           "concurrent update conflict",
				commandsError:  commands.ErrConflict,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "retry the scan",
			},
			{
				name:           "internal server error",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Internal server error",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Scan(gomock.Any(), s.authUserID, s.authRole, gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, consumerBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}
