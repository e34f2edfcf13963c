package api

import (
	"errors"
	"net/http"

	reqdto "open-fridge/internal/handler/dto/request"
	resdto "open-fridge/internal/handler/dto/response"
	"open-fridge/internal/handler/middleware"
	"open-fridge/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type ScanHandler struct {
	scanCommands commands.ScanCommands
}

func NewScanHandler(scanCommands commands.ScanCommands) *ScanHandler {
	return &ScanHandler{
		scanCommands: scanCommands,
	}
}

// @Summary Process QR scan
// @Description Collect portions (consumer) or fulfill a reservation (organisation) at a fridge
// @Tags scan
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.ScanRequest true "Scan request"
// @Success 200 {object} resdto.ScanResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /scan [post]
func (h *ScanHandler) Scan(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}
	role, ok := middleware.GetUserRole(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.ScanRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	params := commands.ScanParams{
		QRCode:        req.GetQRCode(),
		Portions:      req.Portions,
		ReservationID: req.ReservationID,
	}

	result, err := h.scanCommands.Scan(c.Request.Context(), userID, role, params)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrUnsupportedRole):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Role cannot collect via scan",
			})
		case errors.Is(err, commands.ErrInvalidPortionCount):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Portions must be between 1 and 5",
			})
		case errors.Is(err, commands.ErrInvalidQRCode):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Unknown QR code",
			})
		case errors.Is(err, commands.ErrNoActiveListing):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "No active listing at this fridge",
			})
		case errors.Is(err, commands.ErrInsufficientPortions):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Not enough portions remaining",
			})
		case errors.Is(err, commands.ErrReservationNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Reservation not found",
			})
		case errors.Is(err, commands.ErrAlreadyCollected):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Reservation has already been collected",
			})
		case errors.Is(err, commands.ErrDepositNotPaid):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Reservation deposit is not paid",
			})
		case errors.Is(err, commands.ErrConflict):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Listing changed concurrently, retry the scan",
			})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{
				"error": "Invalid scan parameters",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromScanResult(result))
}
