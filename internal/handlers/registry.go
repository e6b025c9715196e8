package handlers

import (
	"trailbook_backend/internal/services"
	"trailbook_backend/internal/validator"

	"github.com/gin-gonic/gin"
)

// AppHandlers groups every HTTP handler behind a single wiring point.
type AppHandlers struct {
	Hike    *HikeHandler
	Booking *BookingHandler
	Review  *ReviewHandler
	User    *UserHandler
	Admin   *AdminHandler
}

func NewAppHandlers(
	v *validator.Validator,
	svc *services.ServiceContainer,
	authMiddleware gin.HandlerFunc,
) *AppHandlers {
	base := NewBaseHandler(v)

	return &AppHandlers{
		Hike:    NewHikeHandler(base, svc.HikeService, svc.BookingService, authMiddleware),
		Booking: NewBookingHandler(base, svc.BookingService, authMiddleware),
		Review:  NewReviewHandler(base, svc.ReviewService, authMiddleware),
		User:    NewUserHandler(base, svc.UserService, svc.BookingService, svc.RoleRequestService, authMiddleware),
		Admin:   NewAdminHandler(base, svc.RoleRequestService, svc.LifecycleService, authMiddleware),
	}
}
