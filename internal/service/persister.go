package service

import (
	"context"
	"errors"

	"wellness/planner/internal/domain"
	"wellness/planner/internal/logger"
	"wellness/planner/internal/repository"
)

// PersistResult reports where a plan ended up. Fallback is true when the
// primary store was unavailable and the record lives only in the local
// in-process store.
type PersistResult struct {
	Record   domain.PlanRecord
	Fallback bool
}

// Persister makes a record the user's single active plan.
type Persister struct {
	primary repository.PlanRepository
	local   repository.PlanRepository
	logger  *logger.Logger
}

func NewPersister(primary, local repository.PlanRepository, log *logger.Logger) *Persister {
	return &Persister{primary: primary, local: local, logger: log.With("service", "Persister")}
}

// Persist pauses the user's current active plan and saves rec as active.
func (p *Persister) Persist(ctx context.Context, rec domain.PlanRecord) (PersistResult, error) {
	rec.Status = domain.PlanActive

	err := p.save(ctx, p.primary, &rec)
	if err == nil {
		return PersistResult{Record: rec}, nil
	}
	if !errors.Is(err, repository.ErrStoreUnavailable) || ctx.Err() != nil {
		return PersistResult{}, err
	}

	p.logger.Warn("Plan store unavailable, saving locally", "userId", rec.UserID, "error", err)
	if err := p.save(ctx, p.local, &rec); err != nil {
		return PersistResult{}, err
	}
	return PersistResult{Record: rec, Fallback: true}, nil
}

func (p *Persister) save(ctx context.Context, repo repository.PlanRepository, rec *domain.PlanRecord) error {
	if err := repo.DeactivatePriorActive(ctx, rec.UserID); err != nil {
		return err
	}
	return repo.Save(ctx, rec)
}

// readPlans runs fn against the primary store, or the local one when the primary
// is unavailable.
func readPlans[T any](ctx context.Context, p *Persister, fn func(repository.PlanRepository) (T, error)) (T, error) {
	v, err := fn(p.primary)
	if errors.Is(err, repository.ErrStoreUnavailable) && ctx.Err() == nil {
		p.logger.Warn("Plan store unavailable, reading locally", "error", err)
		return fn(p.local)
	}
	return v, err
}
