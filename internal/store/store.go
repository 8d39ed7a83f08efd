// Package store persists per-user plant histories. Two backends implement
// the same contract: the Firebase Realtime Database (production) and
// PostgreSQL (self-hosted deployments). The backend is selected by the
// store.driver config key.
package store

import (
	"context"
	"errors"

	"github.com/jejakkarbon/plantid/internal/models"
)

// ErrNotFound is returned when no history record exists for an identity.
var ErrNotFound = errors.New("history record not found")

// Driver names accepted by the store.driver config key.
const (
	DriverFirebase = "firebase"
	DriverPostgres = "postgres"
)

// Store defines the history persistence contract.
//
// Neither backend supports positional array edits, so plant mutations are
// read-full-list, mutate, write-full-list. Concurrent mutations on the same
// record can lose updates; that is an accepted limitation.
type Store interface {
	// FindByUserID returns the first record whose user_id field equals
	// userID, in the backend's native iteration order. Returns ErrNotFound
	// when there is none.
	FindByUserID(ctx context.Context, userID string) (*models.UserHistory, error)

	// Create writes a brand-new record keyed by its UUID.
	Create(ctx context.Context, rec *models.UserHistory) error

	// UpdatePlants replaces the entire plant list of an existing record.
	UpdatePlants(ctx context.Context, recordID string, plants models.PlantList) error
}
