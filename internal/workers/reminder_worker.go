package workers

import (
	"context"
	"fmt"
	"time"

	"trailbook_backend/internal/email"
	"trailbook_backend/internal/logger"
	"trailbook_backend/internal/models"

	"gorm.io/gorm"
)

// ReminderWorker emails active participants the day before their hike.
type ReminderWorker struct {
	db       *gorm.DB
	provider email.Provider
	interval time.Duration
}

func NewReminderWorker(db *gorm.DB, provider email.Provider) *ReminderWorker {
	return &ReminderWorker{
		db:       db,
		provider: provider,
		interval: time.Hour,
	}
}

func (w *ReminderWorker) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *ReminderWorker) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("Reminder worker stopped")
			return
		case <-ticker.C:
			w.sendReminders(time.Now())
		}
	}
}

// sendReminders covers hikes starting within one tick of 24h from now,
// so each hike falls into exactly one reminder window.
func (w *ReminderWorker) sendReminders(now time.Time) {
	windowStart := now.Add(24 * time.Hour)
	windowEnd := windowStart.Add(w.interval)

	var hikes []models.Hike
	err := w.db.
		Where("status = ? AND date >= ? AND date < ?", models.HikeStatusActive, windowStart, windowEnd).
		Find(&hikes).Error
	if err != nil {
		logger.Error("Reminder worker query failed", "error", err)
		return
	}

	for _, hike := range hikes {
		var bookings []models.Booking
		err := w.db.Preload("User").
			Where("hike_id = ? AND status = ?", hike.ID, models.BookingStatusActive).
			Find(&bookings).Error
		if err != nil {
			logger.Error("Reminder worker failed to load participants", "hike_id", hike.ID, "error", err)
			continue
		}

		sent := 0
		for _, booking := range bookings {
			if booking.User == nil || booking.User.Status != models.UserStatusActive {
				continue
			}
			msg := &email.Email{
				To:      []string{booking.User.Email},
				Subject: fmt.Sprintf("Reminder: %s is tomorrow", hike.Title),
				Body: fmt.Sprintf(
					"Hi %s,\n\nYour hike %q starts %s at %s. See you there!\n",
					booking.User.DisplayName, hike.Title,
					hike.Date.Format("Monday, 2 January"), hike.Location,
				),
			}
			if err := w.provider.Send(msg); err != nil {
				logger.Warn("Reminder email failed", "to", booking.User.Email, "error", err)
				continue
			}
			sent++
		}
		if sent > 0 {
			logger.Info("Sent hike reminders", "hike_id", hike.ID, "count", sent)
		}
	}
}
