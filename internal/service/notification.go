package service

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/repository"
)

// notificationService emails customers about their bookings. Admins control
// it entirely through app settings: the email_notifications and
// booking_notifications toggles gate sending, and SMTP credentials stored in
// settings take precedence over the boot-time provider.
type notificationService struct {
	configRepo  repository.AppConfigRepository
	fallback    EmailSender
	defaultFrom string
	log         *slog.Logger
}

func NewNotificationService(configRepo repository.AppConfigRepository, fallback EmailSender, defaultFrom string) NotificationService {
	return &notificationService{
		configRepo:  configRepo,
		fallback:    fallback,
		defaultFrom: defaultFrom,
		log:         logger.WithService("notification"),
	}
}

// resolve decides whether to send at all and through which sender.
func (s *notificationService) resolve(ctx context.Context) (EmailSender, string, bool) {
	configs, err := s.configRepo.List(ctx)
	if err != nil {
		s.log.Warn("Failed to load settings for notification", "error", err)
		return nil, "", false
	}
	settings := make(map[string]string, len(configs))
	for _, cfg := range configs {
		settings[cfg.Key] = cfg.Value
	}

	if settings["email_notifications"] != "true" || settings["booking_notifications"] != "true" {
		return nil, "", false
	}

	from := settings["smtp_from_email"]
	if from == "" {
		from = s.defaultFrom
	}
	if from == "" {
		return nil, "", false
	}

	if settings["smtp_enabled"] == "true" && settings["smtp_host"] != "" {
		port, _ := strconv.Atoi(settings["smtp_port"])
		if port == 0 {
			port = 587
		}
		return NewSMTPSender(settings["smtp_host"], port, settings["smtp_user"], settings["smtp_password"]), from, true
	}

	if s.fallback == nil {
		return nil, "", false
	}
	return s.fallback, from, true
}

func (s *notificationService) BookingCreated(ctx context.Context, b *domain.Booking) {
	sender, from, ok := s.resolve(ctx)
	if !ok {
		return
	}

	subject := fmt.Sprintf("Booking received: %s", b.CarName)
	body := fmt.Sprintf(
		"Hello %s,\n\nWe received your booking for %s from %s to %s.\n\nTotal price: %.2f\nDeposit due: %.2f\n\nWe will contact you once the booking is verified.",
		b.CustomerName, b.CarName,
		b.StartDate.Format("2006-01-02"), b.EndDate.Format("2006-01-02"),
		b.TotalPrice, b.DepositAmount,
	)
	if err := sender.Send(ctx, from, b.CustomerEmail, subject, body); err != nil {
		s.log.Warn("Failed to send booking confirmation email", "booking_id", b.ID, "error", err)
	}
}

func (s *notificationService) BookingStatusChanged(ctx context.Context, b *domain.Booking) {
	sender, from, ok := s.resolve(ctx)
	if !ok {
		return
	}

	subject := fmt.Sprintf("Booking update: %s", b.CarName)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour booking for %s is now %q.",
		b.CustomerName, b.CarName, b.Status,
	)
	if err := sender.Send(ctx, from, b.CustomerEmail, subject, body); err != nil {
		s.log.Warn("Failed to send booking status email", "booking_id", b.ID, "error", err)
	}
}

func (s *notificationService) SendPickupReminder(ctx context.Context, b *domain.Booking) error {
	sender, from, ok := s.resolve(ctx)
	if !ok {
		return nil
	}

	subject := fmt.Sprintf("Pickup reminder: %s", b.CarName)
	body := fmt.Sprintf(
		"Hello %s,\n\nA reminder that your rental of %s starts on %s.",
		b.CustomerName, b.CarName, b.StartDate.Format("2006-01-02"),
	)
	return sender.Send(ctx, from, b.CustomerEmail, subject, body)
}

func (s *notificationService) SendReturnReminder(ctx context.Context, b *domain.Booking) error {
	sender, from, ok := s.resolve(ctx)
	if !ok {
		return nil
	}

	subject := fmt.Sprintf("Return reminder: %s", b.CarName)
	body := fmt.Sprintf(
		"Hello %s,\n\nYour rental of %s was due back on %s. Please return the car or contact us.",
		b.CustomerName, b.CarName, b.EndDate.Format("2006-01-02"),
	)
	return sender.Send(ctx, from, b.CustomerEmail, subject, body)
}
