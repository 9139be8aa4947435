package postgres

import (
	"context"
	"database/sql"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"

	"github.com/google/uuid"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

const userColumns = `id, email, password_hash, name, phone, address, is_admin, id_card_url, driver_license_url, verification_status, verification_notes, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	u := &domain.User{}
	var idCard, license sql.NullString
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.Phone, &u.Address, &u.IsAdmin, &idCard, &license, &u.VerificationStatus, &u.VerificationNotes, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if idCard.Valid {
		u.IDCardURL = &idCard.String
	}
	if license.Valid {
		u.DriverLicenseURL = &license.String
	}
	return u, nil
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.VerificationStatus == "" {
		u.VerificationStatus = domain.VerificationStatusUnverified
	}
	now := time.Now()
	u.CreatedAt = now
	u.UpdatedAt = now
	query := `INSERT INTO users (id, email, password_hash, name, phone, address, is_admin, verification_status, verification_notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.db.ExecContext(ctx, query, u.ID, u.Email, u.PasswordHash, u.Name, u.Phone, u.Address, u.IsAdmin, u.VerificationStatus, u.VerificationNotes, u.CreatedAt, u.UpdatedAt)
	return err
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email=$1, password_hash=$2, name=$3, phone=$4, address=$5, is_admin=$6, updated_at=$7 WHERE id=$8`
	_, err := r.db.ExecContext(ctx, query, u.Email, u.PasswordHash, u.Name, u.Phone, u.Address, u.IsAdmin, time.Now(), u.ID)
	return err
}

func (r *userRepository) UpsertByEmail(ctx context.Context, u *domain.User) error {
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	if u.VerificationStatus == "" {
		u.VerificationStatus = domain.VerificationStatusUnverified
	}
	now := time.Now()
	query := `INSERT INTO users (id, email, password_hash, name, phone, address, is_admin, verification_status, verification_notes, created_at, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	          ON CONFLICT (email) DO UPDATE SET password_hash = EXCLUDED.password_hash, name = EXCLUDED.name, is_admin = EXCLUDED.is_admin, updated_at = EXCLUDED.updated_at`
	_, err := r.db.ExecContext(ctx, query, u.ID, u.Email, u.PasswordHash, u.Name, u.Phone, u.Address, u.IsAdmin, u.VerificationStatus, u.VerificationNotes, now, now)
	return err
}

func (r *userRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *userRepository) List(ctx context.Context, page, limit int) ([]domain.User, int, error) {
	var count int
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM users`).Scan(&count); err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	query := `SELECT ` + userColumns + ` FROM users ORDER BY created_at DESC LIMIT $1 OFFSET $2`
	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, 0, err
		}
		users = append(users, *u)
	}
	return users, count, rows.Err()
}

func (r *userRepository) ListPendingVerification(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE verification_status = $1 ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query, domain.VerificationStatusPending)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, rows.Err()
}

func (r *userRepository) UpdateDocuments(ctx context.Context, id string, idCardURL, driverLicenseURL *string, status domain.VerificationStatus) error {
	// Nil URLs keep the stored document, so a re-upload of one document
	// does not drop the other.
	query := `UPDATE users SET id_card_url = COALESCE($1, id_card_url), driver_license_url = COALESCE($2, driver_license_url), verification_status = $3, updated_at = $4 WHERE id = $5`
	res, err := r.db.ExecContext(ctx, query, idCardURL, driverLicenseURL, status, time.Now(), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *userRepository) UpdateVerification(ctx context.Context, id string, status domain.VerificationStatus, notes string) error {
	query := `UPDATE users SET verification_status = $1, verification_notes = $2, updated_at = $3 WHERE id = $4`
	res, err := r.db.ExecContext(ctx, query, status, notes, time.Now(), id)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *userRepository) Stats(ctx context.Context) (*domain.UserStats, error) {
	stats := &domain.UserStats{}
	query := `SELECT
	            count(*),
	            count(*) FILTER (WHERE is_admin),
	            count(*) FILTER (WHERE NOT is_admin),
	            count(*) FILTER (WHERE verification_status = 'verified'),
	            count(*) FILTER (WHERE verification_status = 'pending')
	          FROM users`
	err := r.db.QueryRowContext(ctx, query).Scan(&stats.TotalUsers, &stats.AdminUsers, &stats.RegularUsers, &stats.VerifiedUsers, &stats.PendingUsers)
	if err != nil {
		return nil, err
	}
	return stats, nil
}
