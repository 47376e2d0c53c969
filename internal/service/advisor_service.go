package service

import (
	"context"

	"wellness/planner/internal/domain"
	"wellness/planner/internal/planning"
)

// AdvisorService runs the stateless generation variants. Nothing it produces
// is persisted.
type AdvisorService interface {
	HealthScore(ctx context.Context, profile domain.UserProfile, pc planning.PromptContext) (planning.Outcome[domain.HealthScore], error)
	PlanOptions(ctx context.Context, profile domain.UserProfile, pc planning.PromptContext) (planning.Outcome[domain.PlanOptions], error)
	SchedulePlans(ctx context.Context, profile domain.UserProfile, pc planning.PromptContext) (planning.Outcome[domain.SchedulePlans], error)
	PlanActivities(ctx context.Context, profile domain.UserProfile, pc planning.PromptContext) (planning.Outcome[domain.WeeklyActivities], error)
}

type advisorService struct {
	generator *planning.Generator
}

func NewAdvisorService(gen *planning.Generator) AdvisorService {
	return &advisorService{generator: gen}
}

func (s *advisorService) HealthScore(ctx context.Context, p domain.UserProfile, pc planning.PromptContext) (planning.Outcome[domain.HealthScore], error) {
	return planning.Generate(ctx, s.generator, planning.HealthScore, p, pc)
}

func (s *advisorService) PlanOptions(ctx context.Context, p domain.UserProfile, pc planning.PromptContext) (planning.Outcome[domain.PlanOptions], error) {
	return planning.Generate(ctx, s.generator, planning.PlanOptions, p, pc)
}

func (s *advisorService) SchedulePlans(ctx context.Context, p domain.UserProfile, pc planning.PromptContext) (planning.Outcome[domain.SchedulePlans], error) {
	return planning.Generate(ctx, s.generator, planning.SchedulePlans, p, pc)
}

func (s *advisorService) PlanActivities(ctx context.Context, p domain.UserProfile, pc planning.PromptContext) (planning.Outcome[domain.WeeklyActivities], error) {
	return planning.Generate(ctx, s.generator, planning.PlanActivities, p, pc)
}
