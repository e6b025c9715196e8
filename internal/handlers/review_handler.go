package handlers

import (
	"net/http"

	"trailbook_backend/internal/services"
	"trailbook_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	*BaseHandler
	reviewService  services.ReviewService
	authMiddleware gin.HandlerFunc
}

func NewReviewHandler(
	base *BaseHandler,
	reviewService services.ReviewService,
	authMiddleware gin.HandlerFunc,
) *ReviewHandler {
	return &ReviewHandler{
		BaseHandler:    base,
		reviewService:  reviewService,
		authMiddleware: authMiddleware,
	}
}

func (h *ReviewHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/hikes/:hikeId/reviews", h.ListReviews)

	authed := r.Group("/hikes")
	authed.Use(h.authMiddleware)
	{
		authed.POST("/:hikeId/reviews", h.CreateReview)
		authed.GET("/:hikeId/can-review", h.CanReview)
	}
}

func (h *ReviewHandler) ListReviews(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	reviews, err := h.reviewService.ListHikeReviews(c.Param("hikeId"), page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reviews)
}

func (h *ReviewHandler) CreateReview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReviewRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	review, err := h.reviewService.CreateReview(userID, c.Param("hikeId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, review)
}

func (h *ReviewHandler) CanReview(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	result, err := h.reviewService.CanReview(userID, c.Param("hikeId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
