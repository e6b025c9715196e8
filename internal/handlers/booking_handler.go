package handlers

import (
	"net/http"

	"trailbook_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type BookingHandler struct {
	*BaseHandler
	bookingService services.BookingService
	authMiddleware gin.HandlerFunc
}

func NewBookingHandler(
	base *BaseHandler,
	bookingService services.BookingService,
	authMiddleware gin.HandlerFunc,
) *BookingHandler {
	return &BookingHandler{
		BaseHandler:    base,
		bookingService: bookingService,
		authMiddleware: authMiddleware,
	}
}

func (h *BookingHandler) RegisterRoutes(r *gin.RouterGroup) {
	bookings := r.Group("/hikes")
	bookings.Use(h.authMiddleware)
	{
		bookings.POST("/:hikeId/join", h.JoinHike)
		bookings.DELETE("/:hikeId/join", h.LeaveHike)
	}
}

// JoinHike reserves a seat. Race losers get 409 (hike full / already
// joined), never a retried success: the capacity failure stays observable.
func (h *BookingHandler) JoinHike(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	booking, err := h.bookingService.JoinHike(userID, c.Param("hikeId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, booking)
}

func (h *BookingHandler) LeaveHike(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.bookingService.LeaveHike(userID, c.Param("hikeId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Booking cancelled"})
}
