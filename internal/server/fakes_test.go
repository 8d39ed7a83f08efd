package server

import (
	"context"
	"errors"
	"image"
	"sort"
	"sync"

	"github.com/jejakkarbon/plantid/internal/identity"
	"github.com/jejakkarbon/plantid/internal/models"
	"github.com/jejakkarbon/plantid/internal/store"
)

// fakeProvider maps bearer tokens to identities in memory.
type fakeProvider struct {
	tokens      map[string]identity.Identity
	expired     map[string]bool
	registerErr error

	mu         sync.Mutex
	registered []string
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{
		tokens:  make(map[string]identity.Identity),
		expired: make(map[string]bool),
	}
}

func (f *fakeProvider) Verify(_ context.Context, token string) (identity.Identity, error) {
	if f.expired[token] {
		return identity.Identity{}, identity.ErrTokenExpired
	}
	ident, ok := f.tokens[token]
	if !ok {
		return identity.Identity{}, identity.ErrUnauthorized
	}
	return ident, nil
}

func (f *fakeProvider) Register(_ context.Context, email, _, _ string) error {
	if f.registerErr != nil {
		return f.registerErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	f.registered = append(f.registered, email)
	return nil
}

// fakeStore keeps history records in a map keyed by uuid, like the real
// backends. FindByUserID walks keys in sorted order so "first match" is
// deterministic.
type fakeStore struct {
	mu      sync.Mutex
	records map[string]*models.UserHistory
}

func newFakeStore() *fakeStore {
	return &fakeStore{records: make(map[string]*models.UserHistory)}
}

func (f *fakeStore) FindByUserID(_ context.Context, userID string) (*models.UserHistory, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	keys := make([]string, 0, len(f.records))
	for k := range f.records {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, k := range keys {
		if f.records[k].UserID == userID {
			cp := *f.records[k]
			cp.Plants = append(models.PlantList(nil), f.records[k].Plants...)
			return &cp, nil
		}
	}
	return nil, store.ErrNotFound
}

func (f *fakeStore) Create(_ context.Context, rec *models.UserHistory) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	cp := *rec
	cp.Plants = append(models.PlantList(nil), rec.Plants...)
	f.records[rec.UUID] = &cp
	return nil
}

func (f *fakeStore) UpdatePlants(_ context.Context, recordID string, plants models.PlantList) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	rec, ok := f.records[recordID]
	if !ok {
		return store.ErrNotFound
	}
	rec.Plants = append(models.PlantList(nil), plants...)
	return nil
}

// fakeClassifier returns scripted labels in order.
type fakeClassifier struct {
	labels []string
	err    error

	mu    sync.Mutex
	calls int
}

func (f *fakeClassifier) Classify(_ image.Image) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.calls >= len(f.labels) {
		return "", errors.New("no scripted label left")
	}
	label := f.labels[f.calls]
	f.calls++
	return label, nil
}
