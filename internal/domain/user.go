package domain

import "time"

type VerificationStatus string

const (
	VerificationStatusUnverified VerificationStatus = "unverified"
	VerificationStatusPending    VerificationStatus = "pending"
	VerificationStatusVerified   VerificationStatus = "verified"
	VerificationStatusRejected   VerificationStatus = "rejected"
)

type User struct {
	ID                 string             `json:"id"`
	Email              string             `json:"email"`
	PasswordHash       string             `json:"-"`
	Name               string             `json:"name"`
	Phone              string             `json:"phone,omitempty"`
	Address            string             `json:"address,omitempty"`
	IsAdmin            bool               `json:"isAdmin"`
	IDCardURL          *string            `json:"idCardUrl,omitempty"`
	DriverLicenseURL   *string            `json:"driverLicenseUrl,omitempty"`
	VerificationStatus VerificationStatus `json:"verificationStatus"`
	VerificationNotes  string             `json:"verificationNotes,omitempty"`
	CreatedAt          time.Time          `json:"createdAt"`
	UpdatedAt          time.Time          `json:"updatedAt"`
}

// UserStats aggregates user counts for the admin dashboard
type UserStats struct {
	TotalUsers    int `json:"totalUsers"`
	AdminUsers    int `json:"adminUsers"`
	RegularUsers  int `json:"regularUsers"`
	VerifiedUsers int `json:"verifiedUsers"`
	PendingUsers  int `json:"pendingUsers"`
}
