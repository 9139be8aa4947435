package postgres

import (
	"context"
	"database/sql"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/repository"
)

type appConfigRepository struct {
	db *sql.DB
}

func NewAppConfigRepository(db *sql.DB) repository.AppConfigRepository {
	return &appConfigRepository{db: db}
}

func (r *appConfigRepository) Get(ctx context.Context, key string) (*domain.AppConfig, error) {
	cfg := &domain.AppConfig{}
	query := `SELECT key, value FROM app_config WHERE key = $1`
	err := r.db.QueryRowContext(ctx, query, key).Scan(&cfg.Key, &cfg.Value)
	if err != nil {
		return nil, err
	}
	return cfg, nil
}

func (r *appConfigRepository) List(ctx context.Context) ([]domain.AppConfig, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT key, value FROM app_config ORDER BY key`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var configs []domain.AppConfig
	for rows.Next() {
		var cfg domain.AppConfig
		if err := rows.Scan(&cfg.Key, &cfg.Value); err != nil {
			return nil, err
		}
		configs = append(configs, cfg)
	}
	return configs, rows.Err()
}

func (r *appConfigRepository) Upsert(ctx context.Context, key, value string) error {
	query := `INSERT INTO app_config (key, value) VALUES ($1, $2)
	          ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`
	_, err := r.db.ExecContext(ctx, query, key, value)
	return err
}
