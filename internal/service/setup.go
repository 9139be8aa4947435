package service

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type setupService struct {
	configRepo repository.AppConfigRepository
	userRepo   repository.UserRepository
}

func NewSetupService(configRepo repository.AppConfigRepository, userRepo repository.UserRepository) SetupService {
	return &setupService{
		configRepo: configRepo,
		userRepo:   userRepo,
	}
}

func (s *setupService) Status(ctx context.Context) (*SetupStatus, error) {
	configs, err := s.configRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	values := make(map[string]string, len(configs))
	for _, cfg := range configs {
		values[cfg.Key] = cfg.Value
	}

	status := &SetupStatus{
		Configured: values[domain.ConfigKeyConfigured] == "true",
		AppURL:     values["app_url"],
		DBMode:     values["db_mode"],
	}
	if v := values["server_port"]; v != "" {
		status.ServerPort, _ = strconv.Atoi(v)
	}
	if v := values["client_port"]; v != "" {
		status.ClientPort, _ = strconv.Atoi(v)
	}
	return status, nil
}

func (s *setupService) Run(ctx context.Context, in *SetupInput) error {
	updates := []domain.AppConfig{
		{Key: "app_url", Value: in.AppURL},
		{Key: "server_port", Value: strconv.Itoa(in.ServerPort)},
		{Key: "client_port", Value: strconv.Itoa(in.ClientPort)},
		{Key: "db_mode", Value: in.DBMode},
	}
	if in.DBMode == "external" {
		sslMode := in.DBSSLMode
		if sslMode == "" {
			sslMode = "prefer"
		}
		updates = append(updates,
			domain.AppConfig{Key: "db_host", Value: in.DBHost},
			domain.AppConfig{Key: "db_port", Value: strconv.Itoa(in.DBPort)},
			domain.AppConfig{Key: "db_name", Value: in.DBName},
			domain.AppConfig{Key: "db_user", Value: in.DBUser},
			domain.AppConfig{Key: "db_sslmode", Value: sslMode},
		)
	}
	for _, cfg := range updates {
		if err := s.configRepo.Upsert(ctx, cfg.Key, cfg.Value); err != nil {
			return err
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.AdminPassword), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	admin := &domain.User{
		Email:        in.AdminEmail,
		Name:         in.AdminName,
		PasswordHash: string(hash),
		IsAdmin:      true,
	}
	if err := s.userRepo.UpsertByEmail(ctx, admin); err != nil {
		return err
	}

	// Flipping the flag last keeps the guard closed if anything above fails.
	return s.configRepo.Upsert(ctx, domain.ConfigKeyConfigured, "true")
}

func (s *setupService) TestDatabase(ctx context.Context, in *TestDBInput) error {
	sslMode := in.SSLMode
	if sslMode == "" {
		sslMode = "prefer"
	}
	connStr := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		in.User, in.Password, in.Host, in.Port, in.Name, sslMode)

	db, err := sql.Open("postgres", connStr)
	if err != nil {
		return err
	}
	defer db.Close()

	return db.PingContext(ctx)
}
