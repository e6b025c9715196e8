package services

// ServiceContainer bundles the constructed services for wiring.
type ServiceContainer struct {
	UserService         UserService
	HikeService         HikeService
	BookingService      BookingService
	RoleRequestService  RoleRequestService
	ReviewService       ReviewService
	LifecycleService    AccountLifecycleService
	NotificationService NotificationService
}
