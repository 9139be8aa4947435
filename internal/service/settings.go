package service

import (
	"context"
	"database/sql"
	"errors"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

// settingKeys is the whitelist of keys the settings endpoint accepts.
var settingKeys = map[string]struct{}{
	// SMTP
	"smtp_enabled":    {},
	"smtp_host":       {},
	"smtp_port":       {},
	"smtp_secure":     {},
	"smtp_user":       {},
	"smtp_password":   {},
	"smtp_from_email": {},
	"smtp_from_name":  {},

	// General
	"site_name":        {},
	"site_description": {},
	"contact_email":    {},
	"contact_phone":    {},

	// Booking rules
	"min_booking_days":      {},
	"max_booking_days":      {},
	"advance_booking_days":  {},
	"auto_approve_bookings": {},

	// Notifications
	"email_notifications":   {},
	"sms_notifications":     {},
	"booking_notifications": {},
	"payment_notifications": {},

	// Security
	"require_email_verification": {},
	"require_phone_verification": {},
	"enable_two_factor":          {},
	"session_timeout":            {},
}

type settingsService struct {
	configRepo repository.AppConfigRepository
}

func NewSettingsService(configRepo repository.AppConfigRepository) SettingsService {
	return &settingsService{configRepo: configRepo}
}

func (s *settingsService) GetSettings(ctx context.Context) (map[string]string, error) {
	configs, err := s.configRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	settings := make(map[string]string, len(configs))
	for _, cfg := range configs {
		settings[cfg.Key] = cfg.Value
	}
	return settings, nil
}

func (s *settingsService) UpdateSettings(ctx context.Context, values map[string]string) error {
	for key := range values {
		if _, ok := settingKeys[key]; !ok {
			return ErrUnknownSettingKey
		}
	}
	for key, value := range values {
		if err := s.configRepo.Upsert(ctx, key, value); err != nil {
			return err
		}
	}
	return nil
}

func (s *settingsService) GetSetting(ctx context.Context, key string) (*domain.AppConfig, error) {
	cfg, err := s.configRepo.Get(ctx, key)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return cfg, nil
}

func (s *settingsService) IsConfigured(ctx context.Context) (bool, error) {
	cfg, err := s.configRepo.Get(ctx, domain.ConfigKeyConfigured)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}
	return cfg.Value == "true", nil
}
