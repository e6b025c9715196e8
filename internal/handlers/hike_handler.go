package handlers

import (
	"net/http"

	"trailbook_backend/internal/middleware"
	"trailbook_backend/internal/models"
	"trailbook_backend/internal/services"
	"trailbook_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type HikeHandler struct {
	*BaseHandler
	hikeService    services.HikeService
	bookingService services.BookingService
	authMiddleware gin.HandlerFunc
}

func NewHikeHandler(
	base *BaseHandler,
	hikeService services.HikeService,
	bookingService services.BookingService,
	authMiddleware gin.HandlerFunc,
) *HikeHandler {
	return &HikeHandler{
		BaseHandler:    base,
		hikeService:    hikeService,
		bookingService: bookingService,
		authMiddleware: authMiddleware,
	}
}

func (h *HikeHandler) RegisterRoutes(r *gin.RouterGroup) {
	// Public reads
	public := r.Group("/hikes")
	{
		public.GET("", h.ListHikes)
		public.GET("/:hikeId", h.GetHike)
	}

	// Authenticated reads
	authed := r.Group("/hikes")
	authed.Use(h.authMiddleware)
	{
		authed.GET("/:hikeId/participants", h.GetParticipants)
	}

	// Guide-only management
	guides := r.Group("/hikes")
	guides.Use(h.authMiddleware, middleware.RequireRoles(models.UserRoleGuide, models.UserRoleAdmin))
	{
		guides.POST("", h.CreateHike)
		guides.GET("/mine", h.ListMyHikes)
		guides.PUT("/:hikeId", h.UpdateHike)
		guides.POST("/:hikeId/cancel", h.CancelHike)
	}
}

func (h *HikeHandler) ListHikes(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	hikes, err := h.hikeService.ListUpcoming(page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, hikes)
}

func (h *HikeHandler) GetHike(c *gin.Context) {
	hike, err := h.hikeService.GetHike(c.Param("hikeId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, hike)
}

func (h *HikeHandler) GetParticipants(c *gin.Context) {
	participants, err := h.bookingService.GetParticipants(c.Param("hikeId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"participants": participants})
}

func (h *HikeHandler) CreateHike(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateHikeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	hike, err := h.hikeService.CreateHike(userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, hike)
}

func (h *HikeHandler) ListMyHikes(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	page, pageSize := ParsePagination(c)

	hikes, err := h.hikeService.ListMine(userID, page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, hikes)
}

func (h *HikeHandler) UpdateHike(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateHikeRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	hike, err := h.hikeService.UpdateHike(userID, c.Param("hikeId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, hike)
}

func (h *HikeHandler) CancelHike(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	if err := h.hikeService.CancelHike(userID, c.Param("hikeId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Hike cancelled"})
}
