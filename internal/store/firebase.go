package store

import (
	"context"
	"fmt"

	"firebase.google.com/go/v4/db"
	"go.uber.org/zap"

	"github.com/jejakkarbon/plantid/internal/models"
)

const usersPath = "users"

// FirebaseStore implements Store on the Firebase Realtime Database. Records
// live under the users node, keyed by their UUID, with an index on user_id.
type FirebaseStore struct {
	client *db.Client
	logger *zap.Logger
}

// NewFirebaseStore wraps an initialized Realtime Database client.
func NewFirebaseStore(client *db.Client, logger *zap.Logger) *FirebaseStore {
	return &FirebaseStore{client: client, logger: logger}
}

// FindByUserID implements Store.FindByUserID.
func (s *FirebaseStore) FindByUserID(ctx context.Context, userID string) (*models.UserHistory, error) {
	q := s.client.NewRef(usersPath).OrderByChild("user_id").EqualTo(userID).LimitToFirst(1)

	nodes, err := q.GetOrdered(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to query history for user %s: %w", userID, err)
	}
	if len(nodes) == 0 {
		return nil, ErrNotFound
	}

	var rec models.UserHistory
	if err := nodes[0].Unmarshal(&rec); err != nil {
		return nil, fmt.Errorf("failed to decode history record: %w", err)
	}
	// The node key is the storage id; it wins over whatever the uuid field
	// holds in older records.
	rec.UUID = nodes[0].Key()

	return &rec, nil
}

// Create implements Store.Create.
func (s *FirebaseStore) Create(ctx context.Context, rec *models.UserHistory) error {
	if err := s.client.NewRef(usersPath+"/"+rec.UUID).Set(ctx, rec); err != nil {
		return fmt.Errorf("failed to create history record %s: %w", rec.UUID, err)
	}
	s.logger.Debug("history record created", zap.String("uuid", rec.UUID), zap.String("user_id", rec.UserID))
	return nil
}

// UpdatePlants implements Store.UpdatePlants.
func (s *FirebaseStore) UpdatePlants(ctx context.Context, recordID string, plants models.PlantList) error {
	update := map[string]interface{}{"plant": plants}
	if err := s.client.NewRef(usersPath+"/"+recordID).Update(ctx, update); err != nil {
		return fmt.Errorf("failed to update plants for record %s: %w", recordID, err)
	}
	return nil
}
