package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/jejakkarbon/plantid/internal/models"
)

// PostgresStore implements Store on PostgreSQL. The plant list is stored as
// a JSONB document, mirroring the whole-list-replace contract of the
// Firebase backend.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// NewPostgresStore opens a connection pool and verifies connectivity.
func NewPostgresStore(ctx context.Context, connString string, logger *zap.Logger) (*PostgresStore, error) {
	if connString == "" {
		return nil, fmt.Errorf("database.url not configured")
	}

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &PostgresStore{pool: pool, logger: logger}, nil
}

// Close releases the connection pool.
func (s *PostgresStore) Close() {
	s.pool.Close()
}

// Migrate creates the user_histories table. Run by the setup command.
func (s *PostgresStore) Migrate(ctx context.Context) error {
	migrationSQL := `
		CREATE TABLE IF NOT EXISTS user_histories (
		    uuid UUID PRIMARY KEY,
		    user_id VARCHAR(128) NOT NULL,
		    email VARCHAR(255) NOT NULL DEFAULT '',
		    name VARCHAR(255) NOT NULL DEFAULT '',
		    plant JSONB NOT NULL DEFAULT '[]'
		);

		CREATE INDEX IF NOT EXISTS idx_user_histories_user_id ON user_histories(user_id);
	`

	if _, err := s.pool.Exec(ctx, migrationSQL); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// FindByUserID implements Store.FindByUserID.
func (s *PostgresStore) FindByUserID(ctx context.Context, userID string) (*models.UserHistory, error) {
	row := s.pool.QueryRow(ctx,
		`SELECT uuid, user_id, email, name, plant FROM user_histories WHERE user_id = $1 LIMIT 1`,
		userID)

	var rec models.UserHistory
	var plantJSON []byte
	if err := row.Scan(&rec.UUID, &rec.UserID, &rec.Email, &rec.Name, &plantJSON); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to query history for user %s: %w", userID, err)
	}

	// PlantList decoding also handles legacy lone-object documents.
	if err := json.Unmarshal(plantJSON, &rec.Plants); err != nil {
		return nil, fmt.Errorf("failed to decode plant list: %w", err)
	}

	return &rec, nil
}

// Create implements Store.Create.
func (s *PostgresStore) Create(ctx context.Context, rec *models.UserHistory) error {
	plantJSON, err := json.Marshal(rec.Plants)
	if err != nil {
		return fmt.Errorf("failed to encode plant list: %w", err)
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO user_histories (uuid, user_id, email, name, plant) VALUES ($1, $2, $3, $4, $5)`,
		rec.UUID, rec.UserID, rec.Email, rec.Name, plantJSON)
	if err != nil {
		return fmt.Errorf("failed to create history record %s: %w", rec.UUID, err)
	}

	s.logger.Debug("history record created", zap.String("uuid", rec.UUID), zap.String("user_id", rec.UserID))
	return nil
}

// UpdatePlants implements Store.UpdatePlants.
func (s *PostgresStore) UpdatePlants(ctx context.Context, recordID string, plants models.PlantList) error {
	plantJSON, err := json.Marshal(plants)
	if err != nil {
		return fmt.Errorf("failed to encode plant list: %w", err)
	}

	tag, err := s.pool.Exec(ctx,
		`UPDATE user_histories SET plant = $2 WHERE uuid = $1`,
		recordID, plantJSON)
	if err != nil {
		return fmt.Errorf("failed to update plants for record %s: %w", recordID, err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
