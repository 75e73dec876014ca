package api

import (
	"context"
	"errors"
	"net/http"

	"rentmart/internal/domain/rental"
	reqdto "rentmart/internal/handler/dto/request"
	resdto "rentmart/internal/handler/dto/response"
	"rentmart/internal/handler/middleware"
	"rentmart/internal/pkg/errs"
	"rentmart/internal/usecase/commands"
	"rentmart/internal/usecase/queries"
	"rentmart/internal/usecase/shared"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type RentalHandler struct {
	bookingCommands commands.BookingCommands
	rentalQueries   queries.RentalQueries
}

func NewRentalHandler(bookingCommands commands.BookingCommands, rentalQueries queries.RentalQueries) *RentalHandler {
	return &RentalHandler{
		bookingCommands: bookingCommands,
		rentalQueries:   rentalQueries,
	}
}

// @Summary Create rental
// @Description Book an item for a date range
// @Tags rentals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateRentalRequest true "Booking request"
// @Success 201 {object} resdto.RentalResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Router /rentals [post]
func (h *RentalHandler) CreateRental(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	var req reqdto.CreateRentalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	view, err := h.bookingCommands.CreateBooking(c.Request.Context(), actor, commands.CreateBookingInput{
		ItemID:    req.ItemID,
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Quantity:  req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrItemNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Item not found",
			})
		case errors.Is(err, errs.ErrItemUnavailable):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Requested quantity is not available",
			})
		case errors.Is(err, errs.ErrDomainValidation):
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error": "Domain validation failed",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusCreated, resdto.FromRentalView(view))
}

// @Summary Get rental
// @Description Get rental by ID; only the renter, the vendor, or an admin may view it
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Success 200 {object} resdto.RentalResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /rentals/{id} [get]
func (h *RentalHandler) GetRental(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid rental ID format",
		})
		return
	}

	view, err := h.rentalQueries.GetByID(c.Request.Context(), actor, id)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrRentalNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Rental not found",
			})
		case errors.Is(err, errs.ErrNotRentalParty):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not a party to this rental",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRentalView(view))
}

// @Summary List my rentals
// @Description List rentals where the current user is the renter
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.RentalListResponse
// @Failure 401 {object} map[string]string
// @Router /rentals [get]
func (h *RentalHandler) ListMyRentals(c *gin.Context) {
	h.listRentals(c, h.rentalQueries.ListByRenter)
}

// @Summary List vendor rentals
// @Description List rentals of the current vendor's items
// @Tags rentals
// @Produce json
// @Security BearerAuth
// @Success 200 {array} resdto.RentalListResponse
// @Failure 401 {object} map[string]string
// @Router /rentals/vendor [get]
func (h *RentalHandler) ListVendorRentals(c *gin.Context) {
	h.listRentals(c, h.rentalQueries.ListByVendor)
}

// @Summary Update rental status
// @Description Move a rental through its lifecycle
// @Tags rentals
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Rental ID"
// @Param request body reqdto.UpdateRentalStatusRequest true "Target status"
// @Success 200 {object} resdto.RentalResponse
// @Failure 400 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /rentals/{id}/status [patch]
func (h *RentalHandler) UpdateRentalStatus(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid rental ID format",
		})
		return
	}

	var req reqdto.UpdateRentalStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid request format",
		})
		return
	}

	next, err := rental.NewStatus(req.Status)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid rental status",
		})
		return
	}

	view, err := h.bookingCommands.UpdateRentalStatus(c.Request.Context(), actor, id, next)
	if err != nil {
		switch {
		case errors.Is(err, errs.ErrRentalNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Rental not found",
			})
		case errors.Is(err, errs.ErrForbidden):
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Not allowed to change this rental",
			})
		case errors.Is(err, errs.ErrInvalidTransition):
			c.JSON(http.StatusConflict, gin.H{
				"error": "Invalid status transition",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromRentalView(view))
}

func (h *RentalHandler) listRentals(c *gin.Context, list func(ctx context.Context, actor shared.Actor) ([]*queries.RentalListItem, error)) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	items, err := list(c.Request.Context(), actor)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "Internal server error",
		})
		return
	}

	response := make([]*resdto.RentalListResponse, len(items))
	for i, item := range items {
		response[i] = resdto.FromRentalListItem(item)
	}

	c.JSON(http.StatusOK, response)
}
