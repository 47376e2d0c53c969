package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"wellness/planner/internal/domain"
	"wellness/planner/internal/repository"
)

const (
	pgUndefinedTable  = "42P01"
	pgUniqueViolation = "23505"
)

// planRow maps the user_selected_health_plans table.
type planRow struct {
	ID          string         `gorm:"column:id;primaryKey"`
	UserID      string         `gorm:"column:user_id;index"`
	PlanName    string         `gorm:"column:plan_name"`
	PlanType    string         `gorm:"column:plan_type"`
	PrimaryGoal string         `gorm:"column:primary_goal"`
	PlanData    datatypes.JSON `gorm:"column:plan_data"`
	Status      string         `gorm:"column:status"`
	Source      string         `gorm:"column:source"`
	SelectedAt  time.Time      `gorm:"column:selected_at"`
	StartDate   *string        `gorm:"column:start_date"`
	EndDate     *string        `gorm:"column:end_date"`
	CreatedAt   time.Time      `gorm:"column:created_at"`
	UpdatedAt   time.Time      `gorm:"column:updated_at"`
}

func (planRow) TableName() string { return "user_selected_health_plans" }

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func toRow(p *domain.PlanRecord) *planRow {
	return &planRow{
		ID:          p.ID,
		UserID:      p.UserID,
		PlanName:    p.PlanName,
		PlanType:    p.PlanType,
		PrimaryGoal: p.PrimaryGoal,
		PlanData:    datatypes.JSON(p.PlanData),
		Status:      string(p.Status),
		Source:      string(p.Source),
		SelectedAt:  p.SelectedAt,
		StartDate:   optional(p.StartDate),
		EndDate:     optional(p.EndDate),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func (r *planRow) record() domain.PlanRecord {
	return domain.PlanRecord{
		ID:          r.ID,
		UserID:      r.UserID,
		PlanName:    r.PlanName,
		PlanType:    r.PlanType,
		PrimaryGoal: r.PrimaryGoal,
		PlanData:    []byte(r.PlanData),
		Status:      domain.PlanStatus(r.Status),
		Source:      domain.PlanSource(r.Source),
		SelectedAt:  r.SelectedAt,
		StartDate:   deref(r.StartDate),
		EndDate:     deref(r.EndDate),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type PlanRepo struct {
	db *gorm.DB
}

func NewPlanRepo(db *gorm.DB) *PlanRepo {
	return &PlanRepo{db: db}
}

var _ repository.PlanRepository = (*PlanRepo)(nil)

// mapErr classifies driver errors. A missing table or an unreachable server
// becomes repository.ErrStoreUnavailable.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repository.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUndefinedTable:
			return errors.Join(repository.ErrStoreUnavailable, err)
		case pgUniqueViolation:
			return repository.ErrDuplicate
		}
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return errors.Join(repository.ErrStoreUnavailable, err)
	}
	return err
}

func (r *PlanRepo) Save(ctx context.Context, plan *domain.PlanRecord) error {
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
	return mapErr(r.db.WithContext(ctx).Create(toRow(plan)).Error)
}

func (r *PlanRepo) GetActive(ctx context.Context, userID string) (*domain.PlanRecord, error) {
	var row planRow
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND status = ?", userID, string(domain.PlanActive)).
		Order("selected_at DESC").
		First(&row).Error
	if err != nil {
		return nil, mapErr(err)
	}
	rec := row.record()
	return &rec, nil
}

func (r *PlanRepo) GetByID(ctx context.Context, userID, planID string) (*domain.PlanRecord, error) {
	var row planRow
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", planID, userID).
		First(&row).Error
	if err != nil {
		return nil, mapErr(err)
	}
	rec := row.record()
	return &rec, nil
}

func (r *PlanRepo) ListByUser(ctx context.Context, userID string) ([]domain.PlanRecord, error) {
	var rows []planRow
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("selected_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, mapErr(err)
	}
	out := make([]domain.PlanRecord, 0, len(rows))
	for i := range rows {
		out = append(out, rows[i].record())
	}
	return out, nil
}

func (r *PlanRepo) DeactivatePriorActive(ctx context.Context, userID string) error {
	err := r.db.WithContext(ctx).
		Model(&planRow{}).
		Where("user_id = ? AND status = ?", userID, string(domain.PlanActive)).
		Updates(map[string]interface{}{
			"status":     string(domain.PlanPaused),
			"updated_at": time.Now().UTC(),
		}).Error
	return mapErr(err)
}
