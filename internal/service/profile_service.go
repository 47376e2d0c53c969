package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"golang.org/x/sync/singleflight"

	"wellness/planner/internal/cache"
	"wellness/planner/internal/domain"
	"wellness/planner/internal/logger"
	"wellness/planner/internal/repository"
)

type ProfileService interface {
	// Get returns the user's profile. A user who never completed onboarding
	// gets an empty profile, not an error.
	Get(ctx context.Context, userID string) (domain.UserProfile, error)
	Update(ctx context.Context, profile domain.UserProfile) (domain.UserProfile, error)
}

type profileService struct {
	repo   repository.ProfileRepository
	cache  cache.Cache
	ttl    time.Duration
	group  singleflight.Group
	logger *logger.Logger
}

func NewProfileService(repo repository.ProfileRepository, c cache.Cache, ttl time.Duration, log *logger.Logger) ProfileService {
	return &profileService{
		repo:   repo,
		cache:  c,
		ttl:    ttl,
		logger: log.With("service", "ProfileService"),
	}
}

func profileKey(userID string) string { return "profile:" + userID }

func (s *profileService) Get(ctx context.Context, userID string) (domain.UserProfile, error) {
	if raw, ok, err := s.cache.Get(ctx, profileKey(userID)); err != nil {
		s.logger.Warn("Profile cache read failed", "userId", userID, "error", err)
	} else if ok {
		var p domain.UserProfile
		if err := json.Unmarshal(raw, &p); err == nil {
			return p, nil
		}
		s.logger.Warn("Dropping undecodable cached profile", "userId", userID)
	}

	// Concurrent misses for one user share a single store read.
	v, err, _ := s.group.Do(userID, func() (interface{}, error) {
		p, err := s.repo.Get(ctx, userID)
		switch {
		case errors.Is(err, repository.ErrNotFound):
			p = &domain.UserProfile{UserID: userID}
		case err != nil:
			return nil, err
		}
		s.store(ctx, *p)
		return *p, nil
	})
	if err != nil {
		return domain.UserProfile{}, err
	}
	return v.(domain.UserProfile), nil
}

func (s *profileService) Update(ctx context.Context, p domain.UserProfile) (domain.UserProfile, error) {
	if p.UserID == "" {
		return domain.UserProfile{}, ErrInvalidInput
	}
	if err := s.repo.Upsert(ctx, &p); err != nil {
		return domain.UserProfile{}, err
	}
	if err := s.cache.Delete(ctx, profileKey(p.UserID)); err != nil {
		s.logger.Warn("Profile cache invalidation failed", "userId", p.UserID, "error", err)
	}
	return p, nil
}

func (s *profileService) store(ctx context.Context, p domain.UserProfile) {
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	if err := s.cache.Put(ctx, profileKey(p.UserID), raw, s.ttl); err != nil {
		s.logger.Warn("Profile cache write failed", "userId", p.UserID, "error", err)
	}
}
