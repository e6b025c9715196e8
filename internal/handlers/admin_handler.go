package handlers

import (
	"net/http"

	"trailbook_backend/internal/middleware"
	"trailbook_backend/internal/models"
	"trailbook_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AdminHandler struct {
	*BaseHandler
	roleRequestService services.RoleRequestService
	lifecycleService   services.AccountLifecycleService
	authMiddleware     gin.HandlerFunc
}

func NewAdminHandler(
	base *BaseHandler,
	roleRequestService services.RoleRequestService,
	lifecycleService services.AccountLifecycleService,
	authMiddleware gin.HandlerFunc,
) *AdminHandler {
	return &AdminHandler{
		BaseHandler:        base,
		roleRequestService: roleRequestService,
		lifecycleService:   lifecycleService,
		authMiddleware:     authMiddleware,
	}
}

func (h *AdminHandler) RegisterRoutes(r *gin.RouterGroup) {
	admin := r.Group("/admin")
	admin.Use(h.authMiddleware, middleware.RequireRoles(models.UserRoleAdmin))
	{
		admin.GET("/role-requests", h.ListPendingRoleRequests)
		admin.POST("/role-requests/:requestId/approve", h.ApproveRoleRequest)
		admin.POST("/role-requests/:requestId/reject", h.RejectRoleRequest)
		admin.DELETE("/users/:userId", h.DeleteUser)
		admin.DELETE("/guides/:userId", h.DeleteGuide)
	}
}

func (h *AdminHandler) ListPendingRoleRequests(c *gin.Context) {
	page, pageSize := ParsePagination(c)

	requests, err := h.roleRequestService.ListPending(page, pageSize)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, requests)
}

func (h *AdminHandler) ApproveRoleRequest(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	result, err := h.roleRequestService.Approve(adminID, c.Param("requestId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *AdminHandler) RejectRoleRequest(c *gin.Context) {
	adminID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	request, err := h.roleRequestService.Reject(adminID, c.Param("requestId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, request)
}

func (h *AdminHandler) DeleteUser(c *gin.Context) {
	if err := h.lifecycleService.SoftDeleteUser(c.Param("userId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

func (h *AdminHandler) DeleteGuide(c *gin.Context) {
	if err := h.lifecycleService.SoftDeleteGuide(c.Param("userId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Guide deleted"})
}
