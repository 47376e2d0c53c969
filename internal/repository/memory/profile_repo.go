package memory

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"wellness/planner/internal/domain"
	"wellness/planner/internal/repository"
)

// ProfileRepo keeps profiles as JSON so callers never share maps or slices
// with the store.
type ProfileRepo struct {
	mu       sync.RWMutex
	profiles map[string][]byte
}

func NewProfileRepo() *ProfileRepo {
	return &ProfileRepo{profiles: make(map[string][]byte)}
}

var _ repository.ProfileRepository = (*ProfileRepo)(nil)

func (r *ProfileRepo) Get(_ context.Context, userID string) (*domain.UserProfile, error) {
	r.mu.RLock()
	raw, ok := r.profiles[userID]
	r.mu.RUnlock()
	if !ok {
		return nil, repository.ErrNotFound
	}
	var p domain.UserProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *ProfileRepo) Upsert(_ context.Context, p *domain.UserProfile) error {
	if p.UserID == "" {
		return errors.New("profile requires a user id")
	}
	p.UpdatedAt = time.Now().UTC()
	raw, err := json.Marshal(p)
	if err != nil {
		return err
	}
	r.mu.Lock()
	r.profiles[p.UserID] = raw
	r.mu.Unlock()
	return nil
}
