package handlers

import (
	"net/http"

	"trailbook_backend/internal/services"
	"trailbook_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	*BaseHandler
	userService        services.UserService
	bookingService     services.BookingService
	roleRequestService services.RoleRequestService
	authMiddleware     gin.HandlerFunc
}

func NewUserHandler(
	base *BaseHandler,
	userService services.UserService,
	bookingService services.BookingService,
	roleRequestService services.RoleRequestService,
	authMiddleware gin.HandlerFunc,
) *UserHandler {
	return &UserHandler{
		BaseHandler:        base,
		userService:        userService,
		bookingService:     bookingService,
		roleRequestService: roleRequestService,
		authMiddleware:     authMiddleware,
	}
}

func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	me := r.Group("/me")
	me.Use(h.authMiddleware)
	{
		me.GET("", h.GetProfile)
		me.GET("/bookings", h.GetMyBookings)
		me.GET("/role-request", h.GetMyRoleRequest)
		me.POST("/request-guide-role", h.RequestGuideRole)
	}
}

func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	user, err := h.userService.GetUser(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) GetMyBookings(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)

	bookings, err := h.bookingService.GetMyBookings(userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, bookings)
}

func (h *UserHandler) GetMyRoleRequest(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	request, err := h.roleRequestService.GetMyLatest(userID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *UserHandler) RequestGuideRole(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateRoleRequestRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	request, err := h.roleRequestService.RequestGuideRole(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, request)
}
