package services

import (
	"fmt"

	"trailbook_backend/internal/email"
	"trailbook_backend/internal/logger"
	"trailbook_backend/internal/models"
)

// NotificationService tells users about booking and role events. Delivery
// is best-effort: a failed send is logged and never fails the operation
// that triggered it.
type NotificationService interface {
	BookingConfirmed(user *models.User, hike *models.Hike)
	HikeCancelled(user *models.User, hike *models.Hike)
	RoleRequestDecided(user *models.User, approved bool)
}

type notificationService struct {
	provider email.Provider
}

func NewNotificationService(provider email.Provider) NotificationService {
	return &notificationService{provider: provider}
}

func (s *notificationService) BookingConfirmed(user *models.User, hike *models.Hike) {
	s.send(user, "Your seat is booked",
		fmt.Sprintf("You are booked on %q (%s).", hike.Title, hike.Date.Format("2006-01-02")))
}

func (s *notificationService) HikeCancelled(user *models.User, hike *models.Hike) {
	s.send(user, "Hike cancelled",
		fmt.Sprintf("The hike %q on %s has been cancelled.", hike.Title, hike.Date.Format("2006-01-02")))
}

func (s *notificationService) RoleRequestDecided(user *models.User, approved bool) {
	if approved {
		s.send(user, "You are now a guide", "Your guide application was approved.")
		return
	}
	s.send(user, "Guide application update", "Your guide application was not approved this time.")
}

func (s *notificationService) send(user *models.User, subject, body string) {
	if user == nil || user.Status == models.UserStatusDeleted {
		return
	}
	err := s.provider.Send(&email.Email{
		To:      []string{user.Email},
		Subject: subject,
		Body:    body,
	})
	if err != nil {
		logger.Warn("notification delivery failed", "user_id", user.ID, "subject", subject, "error", err)
	}
}
