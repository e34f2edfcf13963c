package api

import (
	"errors"
	"net/http"

	reqdto "open-fridge/internal/handler/dto/request"
	resdto "open-fridge/internal/handler/dto/response"
	"open-fridge/internal/handler/middleware"
	"open-fridge/internal/infra"
	"open-fridge/internal/usecase/commands"
	"open-fridge/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ListingHandler struct {
	listingCommands commands.ListingCommands
	listingQueries  queries.ListingQueries
}

func NewListingHandler(listingCommands commands.ListingCommands, listingQueries queries.ListingQueries) *ListingHandler {
	return &ListingHandler{
		listingCommands: listingCommands,
		listingQueries:  listingQueries,
	}
}

// @Summary Create listing
// @Description Publish surplus portions for collection
// @Tags listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateListingRequest true "Listing request"
// @Success 201 {object} resdto.ListingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /listings [post]
func (h *ListingHandler) CreateListing(c *gin.Context) {
	vendorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateListingRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	params := commands.CreateListingParams{
		Title:             req.GetTitle(),
		TotalPortions:     req.TotalPortions,
		BestBefore:        req.BestBefore,
		PriorityRequested: req.PriorityForCharities,
		ImageURL:          req.GetImageURL(),
	}

	view, err := h.listingCommands.CreateListing(c.Request.Context(), vendorID, params)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid listing parameters",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromListingView(view))
}

// @Summary Cancel listing
// @Description Cancel an active listing owned by the caller
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 204
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /listings/{id}/cancel [post]
func (h *ListingHandler) CancelListing(c *gin.Context) {
	vendorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid listing ID format",
		})
		return
	}

	if err := h.listingCommands.CancelListing(c.Request.Context(), vendorID, listingID); err != nil {
		switch {
		case errors.Is(err, commands.ErrListingNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Listing not found",
			})
		case errors.Is(err, commands.ErrNotListingOwner):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Listing belongs to another vendor",
			})
		case errors.Is(err, commands.ErrAlreadyTerminal):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Listing is already finished",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// @Summary List active listings
// @Description List active listings visible to the caller's role
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ListingListResponse
// @Failure 401 {object} map[string]string
// @Router /listings [get]
func (h *ListingHandler) GetListings(c *gin.Context) {
	role, ok := middleware.GetUserRole(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	items, err := h.listingQueries.ListActive(c.Request.Context(), role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromListingListItems(items))
}

// @Summary Get listing
// @Description Get listing by ID
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Listing ID"
// @Success 200 {object} resdto.ListingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /listings/{id} [get]
func (h *ListingHandler) GetListing(c *gin.Context) {
	listingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid listing ID format",
		})
		return
	}

	view, err := h.listingQueries.GetByID(c.Request.Context(), listingID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Listing not found",
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromListingView(view))
}

// @Summary List own listings
// @Description List all listings published by the calling vendor
// @Tags listings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.ListingListResponse
// @Failure 401 {object} map[string]string
// @Router /listings/mine [get]
func (h *ListingHandler) GetOwnListings(c *gin.Context) {
	vendorID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	items, err := h.listingQueries.ListByVendor(c.Request.Context(), vendorID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	c.JSON(http.StatusOK, resdto.FromListingListItems(items))
}
