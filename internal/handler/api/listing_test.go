//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"strings"
	"testing"

	"open-fridge/internal/domain/user"
	"open-fridge/internal/handler/api"
	resdto "open-fridge/internal/handler/dto/response"
	"open-fridge/internal/infra"
	"open-fridge/internal/usecase/commands"
	"open-fridge/tests/common/builder"
	"open-fridge/tests/common/httptest"
	"open-fridge/tests/common/testutil"
	commandsmock "open-fridge/tests/mock/commands"
	queriesmock "open-fridge/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type ListingHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockListingCommands
	mockQueries  *queriesmock.MockListingQueries
	handler      *api.ListingHandler

	authUserID uuid.UUID
	authRole   user.Role
}

func (s *ListingHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockListingCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockListingQueries(s.mockCtrl)
	s.handler = api.NewListingHandler(s.mockCommands, s.mockQueries)

	s.authUserID = uuid.New()
	s.authRole = user.RoleVendor

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

	// Setup routes
	s.router.POST("/listings", authMiddleware, s.handler.CreateListing)
	s.router.GET("/listings", authMiddleware, s.handler.GetListings)
	s.router.GET("/listings/mine", authMiddleware, s.handler.GetOwnListings)
	s.router.GET("/listings/:id", authMiddleware, s.handler.GetListing)
	s.router.POST("/listings/:id/cancel", authMiddleware, s.handler.CancelListing)
}

func (s *ListingHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestListingHandlerSuite(t *testing.T) {
	suite.Run(t, new(ListingHandlerTestSuite))
}

type testCaseListing struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCreateListing
// ================================================================================

func (s *ListingHandlerTestSuite) TestCreateListing() {
	url := "/listings"

	reqBody := builder.NewListingBuilder().BuildCreateRequestDTO()
	returnView := builder.NewListingBuilder().BuildView()

	s.Run("success: returns 201 Created for valid request", func() {
		s.mockCommands.EXPECT().CreateListing(gomock.Any(), s.authUserID, gomock.Any()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var response resdto.ListingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &response)
		s.Equal(returnView.ID, response.ID)
		s.Equal(returnView.Title, response.Title)
		s.Equal(returnView.TotalPortions, response.TotalPortions)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		testCases := []testCaseListing{
			{name: "missing field: title (required)", mutate: testutil.Field("title", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: total_portions (required)", mutate: testutil.Field("total_portions", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: best_before (required)", mutate: testutil.Field("best_before", nil), expectCode: http.StatusBadRequest},
			{name: "zero total portions", mutate: testutil.Field("total_portions", 0), expectCode: http.StatusBadRequest},
			{name: "negative total portions", mutate: testutil.Field("total_portions", -5), expectCode: http.StatusBadRequest},
			{name: "single portion OK", mutate: testutil.Field("total_portions", 1), expectCode: http.StatusCreated},
			{name: "long title passes binding (length is a domain rule)", mutate: testutil.Field("title", strings.Repeat("a", 300)), expectCode: http.StatusCreated},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)

				if tc.expectCode == http.StatusCreated {
					s.mockCommands.EXPECT().CreateListing(gomock.Any(), s.authUserID, gomock.Any()).
						Return(returnView, nil).Times(1)
				}
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				if tc.expectCode == http.StatusCreated {
					httptest.AssertSuccessResponse(s.T(), rec, tc.expectCode, nil)
				} else {
					httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
				}
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
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
				name:           "domain validation error",
				commandsError:  commands.ErrDomainValidation,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid listing parameters",
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
				s.mockCommands.EXPECT().CreateListing(gomock.Any(), s.authUserID, gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestCancelListing
// ================================================================================

func (s *ListingHandlerTestSuite) TestCancelListing() {
	listingID := uuid.New()
	url := "/listings/" + listingID.String() + "/cancel"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().CancelListing(gomock.Any(), s.authUserID, listingID).
			Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/listings/not-a-uuid/cancel", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid listing ID")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "listing not found",
				commandsError:  commands.ErrListingNotFound,
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Listing not found",
			},
			{
				name:           "listing owned by another vendor",
				commandsError:  commands.ErrNotListingOwner,
				expectedStatus: http.StatusForbidden,
				expectedMsg:    "another vendor",
			},
			{
				name:           "listing already terminal",
				commandsError:  commands.ErrAlreadyTerminal,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "already finished",
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
				s.mockCommands.EXPECT().CancelListing(gomock.Any(), s.authUserID, listingID).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestGetListings
// ================================================================================

func (s *ListingHandlerTestSuite) TestGetListings() {
	url := "/listings"

	s.Run("success: passes the caller's role to the query", func() {
		s.authRole = user.RoleConsumer
		s.mockQueries.EXPECT().ListActive(gomock.Any(), user.RoleConsumer).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 500 when query fails", func() {
		s.authRole = user.RoleOrganisation
		s.mockQueries.EXPECT().ListActive(gomock.Any(), user.RoleOrganisation).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestGetListing
// ================================================================================

func (s *ListingHandlerTestSuite) TestGetListing() {
	listingID := uuid.New()
	url := "/listings/" + listingID.String()

	returnView := builder.NewListingBuilder().BuildView()
	returnView.ID = listingID

	s.Run("success: returns 200 OK with ListingResponse", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), listingID).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var response resdto.ListingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &response)
		s.Equal(listingID, response.ID)
		s.Equal(returnView.RemainingPortions, response.RemainingPortions)
		s.Equal(returnView.AvailablePortions, response.AvailablePortions)
		s.Equal(returnView.ReservationCap, response.ReservationCap)
	})

	s.Run("error: 400 Bad Request for invalid UUID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/listings/invalid-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid listing ID")
	})

	s.Run("error: 404 Not Found for missing listing", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), listingID).
			Return(nil, infra.WrapRepoErr("listing not found", nil, infra.KindNotFound)).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Listing not found")
	})

	s.Run("error: 500 on other query failures", func() {
		s.mockQueries.EXPECT().GetByID(gomock.Any(), listingID).
			Return(nil, infra.WrapRepoErr("query failed", errors.New("connection reset"))).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

// ================================================================================
// TestGetOwnListings
// ================================================================================

func (s *ListingHandlerTestSuite) TestGetOwnListings() {
	url := "/listings/mine"

	s.Run("success: queries by the calling vendor", func() {
		s.mockQueries.EXPECT().ListByVendor(gomock.Any(), s.authUserID).
			Return(nil, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 500 when query fails", func() {
		s.mockQueries.EXPECT().ListByVendor(gomock.Any(), s.authUserID).
			Return(nil, errors.New("database error")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
