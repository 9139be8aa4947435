package postgres

import (
	"database/sql"
	"strconv"

	"carrental-backend/internal/repository"

	_ "github.com/lib/pq"
)

// itoa shortens positional-placeholder construction in dynamic queries.
func itoa(i int) string {
	return strconv.Itoa(i)
}

type Store struct {
	db *sql.DB
	repository.UserRepository
	repository.CarRepository
	repository.BookingRepository
	repository.AppConfigRepository
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db:                  db,
		UserRepository:      NewUserRepository(db),
		CarRepository:       NewCarRepository(db),
		BookingRepository:   NewBookingRepository(db),
		AppConfigRepository: NewAppConfigRepository(db),
	}
}

// Ping verifies the database connection, used by the health endpoint.
func (s *Store) Ping() error {
	return s.db.Ping()
}
