package service

import (
	"context"
	"database/sql"
	"errors"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

type userService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) UserService {
	return &userService{userRepo: userRepo}
}

func (s *userService) GetProfile(ctx context.Context, userID string) (*domain.User, error) {
	return s.getUser(ctx, userID)
}

func (s *userService) UpdateProfile(ctx context.Context, userID, name, phone, address string) (*domain.User, error) {
	user, err := s.getUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if name != "" {
		user.Name = name
	}
	if phone != "" {
		user.Phone = phone
	}
	if address != "" {
		user.Address = address
	}
	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UploadDocuments(ctx context.Context, userID string, idCardURL, driverLicenseURL *string) (*domain.User, error) {
	// Uploading any document (re-)enters the review queue, including after
	// a rejection.
	err := s.userRepo.UpdateDocuments(ctx, userID, idCardURL, driverLicenseURL, domain.VerificationStatusPending)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.getUser(ctx, userID)
}

func (s *userService) SetVerification(ctx context.Context, userID string, status domain.VerificationStatus, note string) (*domain.User, error) {
	switch status {
	case domain.VerificationStatusPending, domain.VerificationStatusVerified, domain.VerificationStatusRejected:
	default:
		return nil, ErrInvalidStatus
	}
	if status == domain.VerificationStatusRejected && note == "" {
		return nil, ErrRejectionNoteRequired
	}

	if err := s.userRepo.UpdateVerification(ctx, userID, status, note); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s.getUser(ctx, userID)
}

func (s *userService) ListUsers(ctx context.Context, page, limit int) ([]domain.User, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return s.userRepo.List(ctx, page, limit)
}

func (s *userService) ListPendingVerification(ctx context.Context) ([]domain.User, error) {
	return s.userRepo.ListPendingVerification(ctx)
}

func (s *userService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	return s.getUser(ctx, id)
}

func (s *userService) CreateUser(ctx context.Context, email, name, password string, isAdmin bool) (*domain.User, error) {
	if _, err := s.userRepo.GetByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		Name:         name,
		PasswordHash: string(hash),
		IsAdmin:      isAdmin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) UpdateUser(ctx context.Context, id string, email, name, password *string, isAdmin *bool) (*domain.User, error) {
	user, err := s.getUser(ctx, id)
	if err != nil {
		return nil, err
	}

	if email != nil {
		user.Email = *email
	}
	if name != nil {
		user.Name = *name
	}
	if password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if isAdmin != nil {
		user.IsAdmin = *isAdmin
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *userService) DeleteUser(ctx context.Context, id, requesterID string) error {
	if id == requesterID {
		return ErrSelfDeletion
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return err
	}
	return nil
}

func (s *userService) GetStats(ctx context.Context) (*domain.UserStats, error) {
	return s.userRepo.Stats(ctx)
}

func (s *userService) getUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return user, nil
}
