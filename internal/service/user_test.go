package service

import (
	"context"
	"database/sql"
	"testing"

	"carrental-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUploadDocuments_MovesUserToPending(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo)

	idCard := "/uploads/abc.jpg"
	userRepo.On("UpdateDocuments", mock.Anything, "u-1", &idCard, (*string)(nil), domain.VerificationStatusPending).
		Return(nil)
	userRepo.On("GetByID", mock.Anything, "u-1").Return(&domain.User{
		ID:                 "u-1",
		IDCardURL:          &idCard,
		VerificationStatus: domain.VerificationStatusPending,
	}, nil)

	user, err := svc.UploadDocuments(context.Background(), "u-1", &idCard, nil)
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationStatusPending, user.VerificationStatus)
	userRepo.AssertExpectations(t)
}

func TestSetVerification_RejectionRequiresNote(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo)

	_, err := svc.SetVerification(context.Background(), "u-1", domain.VerificationStatusRejected, "")
	assert.ErrorIs(t, err, ErrRejectionNoteRequired)
	userRepo.AssertNotCalled(t, "UpdateVerification", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSetVerification_Approve(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo)

	userRepo.On("UpdateVerification", mock.Anything, "u-1", domain.VerificationStatusVerified, "").Return(nil)
	userRepo.On("GetByID", mock.Anything, "u-1").Return(&domain.User{
		ID:                 "u-1",
		VerificationStatus: domain.VerificationStatusVerified,
	}, nil)

	user, err := svc.SetVerification(context.Background(), "u-1", domain.VerificationStatusVerified, "")
	require.NoError(t, err)
	assert.Equal(t, domain.VerificationStatusVerified, user.VerificationStatus)
}

func TestSetVerification_UnknownStatus(t *testing.T) {
	svc := NewUserService(new(mockUserRepo))

	_, err := svc.SetVerification(context.Background(), "u-1", domain.VerificationStatus("vouched"), "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestDeleteUser_RejectsSelfDeletion(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo)

	err := svc.DeleteUser(context.Background(), "admin-1", "admin-1")
	assert.ErrorIs(t, err, ErrSelfDeletion)
	userRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteUser_NotFound(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo)

	userRepo.On("Delete", mock.Anything, "ghost").Return(sql.ErrNoRows)

	err := svc.DeleteUser(context.Background(), "ghost", "admin-1")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateUser_PartialUpdate(t *testing.T) {
	userRepo := new(mockUserRepo)
	svc := NewUserService(userRepo)

	userRepo.On("GetByID", mock.Anything, "u-1").Return(&domain.User{
		ID:    "u-1",
		Email: "old@example.com",
		Name:  "Old Name",
	}, nil)
	userRepo.On("Update", mock.Anything, mock.MatchedBy(func(u *domain.User) bool {
		return u.Email == "old@example.com" && u.Name == "New Name" && u.IsAdmin
	})).Return(nil)

	name := "New Name"
	isAdmin := true
	user, err := svc.UpdateUser(context.Background(), "u-1", nil, &name, nil, &isAdmin)
	require.NoError(t, err)
	assert.Equal(t, "New Name", user.Name)
	userRepo.AssertExpectations(t)
}
