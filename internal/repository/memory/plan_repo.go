// Package memory holds in-process repositories. They back the "memory" plan
// store, the local fallback when the primary plan store is unavailable, and
// tests.
package memory

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"wellness/planner/internal/domain"
	"wellness/planner/internal/repository"
)

type PlanRepo struct {
	mu    sync.RWMutex
	plans map[string]domain.PlanRecord
}

func NewPlanRepo() *PlanRepo {
	return &PlanRepo{plans: make(map[string]domain.PlanRecord)}
}

var _ repository.PlanRepository = (*PlanRepo)(nil)

func clonePlan(p domain.PlanRecord) domain.PlanRecord {
	p.PlanData = append([]byte(nil), p.PlanData...)
	return p
}

func (r *PlanRepo) Save(_ context.Context, plan *domain.PlanRecord) error {
	if plan.UserID == "" || len(plan.PlanData) == 0 {
		return errors.New("plan requires userId and planData")
	}
	if plan.ID == "" {
		plan.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if plan.CreatedAt.IsZero() {
		plan.CreatedAt = now
	}
	plan.UpdatedAt = now

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.plans[plan.ID]; ok {
		return repository.ErrDuplicate
	}
	r.plans[plan.ID] = clonePlan(*plan)
	return nil
}

// sorted returns the user's plans, newest selection first.
func (r *PlanRepo) sorted(userID string) []domain.PlanRecord {
	var out []domain.PlanRecord
	for _, p := range r.plans {
		if p.UserID == userID {
			out = append(out, clonePlan(p))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].SelectedAt.Equal(out[j].SelectedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].SelectedAt.After(out[j].SelectedAt)
	})
	return out
}

func (r *PlanRepo) GetActive(_ context.Context, userID string) (*domain.PlanRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, p := range r.sorted(userID) {
		if p.Status == domain.PlanActive {
			return &p, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *PlanRepo) GetByID(_ context.Context, userID, planID string) (*domain.PlanRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.plans[planID]
	if !ok || p.UserID != userID {
		return nil, repository.ErrNotFound
	}
	p = clonePlan(p)
	return &p, nil
}

func (r *PlanRepo) ListByUser(_ context.Context, userID string) ([]domain.PlanRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := r.sorted(userID)
	if out == nil {
		out = []domain.PlanRecord{}
	}
	return out, nil
}

func (r *PlanRepo) DeactivatePriorActive(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now().UTC()
	for id, p := range r.plans {
		if p.UserID == userID && p.Status == domain.PlanActive {
			p.Status = domain.PlanPaused
			p.UpdatedAt = now
			r.plans[id] = p
		}
	}
	return nil
}
