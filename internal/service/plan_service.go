package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strconv"
	"strings"
	"time"

	"wellness/planner/internal/domain"
	"wellness/planner/internal/lock"
	"wellness/planner/internal/logger"
	"wellness/planner/internal/planning"
	"wellness/planner/internal/repository"
	"wellness/planner/internal/storage"
)

var (
	ErrPlanNotFound = errors.New("plan not found")
	ErrExportFailed = errors.New("failed to export plan")
)

const (
	twoDayPlanName     = "Two-Day Wellness Plan"
	defaultPrimaryGoal = "General Health"
	exportContentType  = "application/json"
)

// TwoDayRequest asks for the user's two-day plan. Without Regenerate an
// existing active two-day plan is returned as is.
type TwoDayRequest struct {
	Regenerate bool
	Context    planning.PromptContext
}

// PlanResult is a persisted plan together with how it was produced.
type PlanResult struct {
	Record domain.PlanRecord
	// Source is generated, fallback or selected.
	Source domain.PlanSource
	Model  string
	// Reused is set when an existing active plan was returned.
	Reused bool
	// StoredLocally mirrors PersistResult.Fallback.
	StoredLocally bool
	Reason        string
}

type ExportResult struct {
	ObjectKey   string `json:"objectKey"`
	DownloadURL string `json:"downloadUrl"`
	ExpiresIn   string `json:"expiresIn"`
}

type PlanService interface {
	GenerateTwoDay(ctx context.Context, userID string, req TwoDayRequest) (*PlanResult, error)
	Select(ctx context.Context, userID string, option domain.PlanOption) (*PlanResult, error)
	GetActive(ctx context.Context, userID string) (*domain.PlanRecord, error)
	List(ctx context.Context, userID string) ([]domain.PlanRecord, error)
	Export(ctx context.Context, userID, planID string) (*ExportResult, error)
}

type planService struct {
	profiles  ProfileService
	generator *planning.Generator
	persister *Persister
	locker    lock.Locker
	files     storage.FileStorage
	now       func() time.Time
	logger    *logger.Logger
}

func NewPlanService(profiles ProfileService, gen *planning.Generator, persister *Persister, locker lock.Locker, files storage.FileStorage, log *logger.Logger) PlanService {
	return &planService{
		profiles:  profiles,
		generator: gen,
		persister: persister,
		locker:    locker,
		files:     files,
		now:       time.Now,
		logger:    log.With("service", "PlanService"),
	}
}

func planLockKey(userID string) string { return "plan:" + userID }

// GenerateTwoDay holds the user's plan lock from the active-plan check to
// the write, so concurrent calls for one user run one after the other.
func (s *planService) GenerateTwoDay(ctx context.Context, userID string, req TwoDayRequest) (*PlanResult, error) {
	unlock, err := s.locker.Lock(ctx, planLockKey(userID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	existing, err := s.GetActive(ctx, userID)
	if err != nil && !errors.Is(err, ErrPlanNotFound) {
		return nil, err
	}
	if existing != nil && existing.PlanType == domain.PlanTypeTwoDay && !req.Regenerate {
		return &PlanResult{Record: *existing, Source: existing.Source, Reused: true}, nil
	}

	profile, err := s.profiles.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	pc := req.Context
	if existing != nil && existing.PlanType == domain.PlanTypeTwoDay {
		if prior, err := existing.TwoDay(); err == nil && prior.Day2 != nil {
			pc.PreviousActivities = prior.Day2.Activities
		}
	}

	outcome, err := planning.Generate(ctx, s.generator, planning.TwoDay, profile, pc)
	if err != nil {
		return nil, err
	}

	data, err := json.Marshal(outcome.Document)
	if err != nil {
		return nil, err
	}
	rec := domain.PlanRecord{
		UserID:      userID,
		PlanName:    twoDayPlanName,
		PlanType:    domain.PlanTypeTwoDay,
		PrimaryGoal: firstOr(outcome.Document.OverallGoals, defaultPrimaryGoal),
		PlanData:    data,
		Source:      outcome.Source,
		SelectedAt:  s.now().UTC(),
	}
	if d := outcome.Document.Day1; d != nil {
		rec.StartDate = d.Date
	}
	if d := outcome.Document.Day2; d != nil {
		rec.EndDate = d.Date
	}

	// A caller that went away gets nothing persisted.
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	res, err := s.persister.Persist(ctx, rec)
	if err != nil {
		return nil, err
	}

	result := &PlanResult{
		Record:        res.Record,
		Source:        outcome.Source,
		Model:         outcome.Model,
		StoredLocally: res.Fallback,
	}
	if outcome.Reason != nil {
		result.Reason = outcome.Reason.Error()
	}
	s.logger.Info("Two-day plan saved", "userId", userID, "planId", res.Record.ID, "source", outcome.Source, "local", res.Fallback)
	return result, nil
}

// Select makes a chosen plan option the user's active plan.
func (s *planService) Select(ctx context.Context, userID string, option domain.PlanOption) (*PlanResult, error) {
	if strings.TrimSpace(option.Title) == "" {
		return nil, fmt.Errorf("%w: plan title is required", ErrInvalidInput)
	}
	data, err := json.Marshal(option)
	if err != nil {
		return nil, err
	}

	unlock, err := s.locker.Lock(ctx, planLockKey(userID))
	if err != nil {
		return nil, err
	}
	defer unlock()

	now := s.now().UTC()
	rec := domain.PlanRecord{
		UserID:      userID,
		PlanName:    option.Title,
		PlanType:    PlanTypeForDifficulty(option.Difficulty),
		PrimaryGoal: firstOr(option.FocusAreas, defaultPrimaryGoal),
		PlanData:    data,
		Source:      domain.SourceSelected,
		SelectedAt:  now,
		StartDate:   now.Format(time.DateOnly),
	}
	if weeks := leadingInt(option.Duration); weeks > 0 && strings.Contains(strings.ToLower(option.Duration), "week") {
		rec.EndDate = now.AddDate(0, 0, weeks*7-1).Format(time.DateOnly)
	}

	res, err := s.persister.Persist(ctx, rec)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Plan option selected", "userId", userID, "planId", res.Record.ID, "planType", rec.PlanType)
	return &PlanResult{Record: res.Record, Source: domain.SourceSelected, StoredLocally: res.Fallback}, nil
}

func (s *planService) GetActive(ctx context.Context, userID string) (*domain.PlanRecord, error) {
	rec, err := readPlans(ctx, s.persister, func(r repository.PlanRepository) (*domain.PlanRecord, error) {
		return r.GetActive(ctx, userID)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPlanNotFound
	}
	return rec, err
}

func (s *planService) List(ctx context.Context, userID string) ([]domain.PlanRecord, error) {
	return readPlans(ctx, s.persister, func(r repository.PlanRepository) ([]domain.PlanRecord, error) {
		return r.ListByUser(ctx, userID)
	})
}

// Export uploads the plan as JSON and returns a short-lived download link.
func (s *planService) Export(ctx context.Context, userID, planID string) (*ExportResult, error) {
	rec, err := readPlans(ctx, s.persister, func(r repository.PlanRepository) (*domain.PlanRecord, error) {
		return r.GetByID(ctx, userID, planID)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrPlanNotFound
	}
	if err != nil {
		return nil, err
	}

	body, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, err
	}
	key := path.Join("exports", userID, fmt.Sprintf("%s-%d.json", rec.ID, s.now().Unix()))
	if err := s.files.PutObject(ctx, key, body, exportContentType); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	url, err := s.files.GeneratePresignedDownloadURL(ctx, key, storage.DefaultPresignedURLExpiry)
	if err != nil {
		if delErr := s.files.DeleteObject(context.WithoutCancel(ctx), key); delErr != nil {
			s.logger.Warn("export cleanup failed", "key", key, "error", delErr)
		}
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return &ExportResult{ObjectKey: key, DownloadURL: url, ExpiresIn: storage.DefaultPresignedURLExpiry.String()}, nil
}

// PlanTypeForDifficulty maps a plan option's difficulty label to the stored
// plan type.
func PlanTypeForDifficulty(difficulty string) string {
	switch strings.ToLower(strings.TrimSpace(difficulty)) {
	case "intermediate":
		return domain.PlanTypeHealthTransformation
	case "advanced":
		return domain.PlanTypeLifestyleChange
	default:
		return domain.PlanTypeHabitFormation
	}
}

func firstOr(items []string, def string) string {
	for _, it := range items {
		if s := strings.TrimSpace(it); s != "" {
			return s
		}
	}
	return def
}

// leadingInt parses the number at the start of s ("8 weeks" -> 8).
func leadingInt(s string) int {
	s = strings.TrimSpace(s)
	end := 0
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	n, _ := strconv.Atoi(s[:end])
	return n
}
