package repository

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive" // For using ObjectIDs

	"wellness/planner/internal/domain" // Import our defined domain models
)

// Error constants for repository layer
var (
	ErrNotFound     = RepositoryError("not found")
	ErrDuplicate    = RepositoryError("already exists")
	ErrUpdateFailed = RepositoryError("update failed")
	// ErrStoreUnavailable means the backing store cannot serve the request at
	// all (missing table or collection, unreachable server). Callers may fall
	// back to a local store.
	ErrStoreUnavailable = RepositoryError("store unavailable")
)

// RepositoryError helps distinguish repository errors
type RepositoryError string

func (e RepositoryError) Error() string {
	return string(e)
}

// UserRepository defines the interface for interacting with user accounts.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) (primitive.ObjectID, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*domain.User, error)
}

// ProfileRepository stores one onboarding profile per user.
type ProfileRepository interface {
	// Get returns ErrNotFound when the user never saved a profile.
	Get(ctx context.Context, userID string) (*domain.UserProfile, error)
	// Upsert replaces the whole profile.
	Upsert(ctx context.Context, profile *domain.UserProfile) error
}

// PlanRepository persists plan records. At most one record per user is
// active; DeactivatePriorActive followed by Save keeps it that way.
type PlanRepository interface {
	Save(ctx context.Context, plan *domain.PlanRecord) error
	GetActive(ctx context.Context, userID string) (*domain.PlanRecord, error)
	GetByID(ctx context.Context, userID, planID string) (*domain.PlanRecord, error)
	ListByUser(ctx context.Context, userID string) ([]domain.PlanRecord, error)
	// DeactivatePriorActive pauses every active plan of the user.
	DeactivatePriorActive(ctx context.Context, userID string) error
}
