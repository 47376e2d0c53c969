package service

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wellness/planner/internal/cache"
	"wellness/planner/internal/domain"
	"wellness/planner/internal/logger"
	"wellness/planner/internal/repository/memory"
)

// countingProfiles counts store reads.
type countingProfiles struct {
	*memory.ProfileRepo
	reads atomic.Int32
	delay time.Duration
}

func (c *countingProfiles) Get(ctx context.Context, userID string) (*domain.UserProfile, error) {
	c.reads.Add(1)
	time.Sleep(c.delay)
	return c.ProfileRepo.Get(ctx, userID)
}

func newProfileFixture(t *testing.T) (ProfileService, *countingProfiles) {
	t.Helper()
	c := cache.NewMemory(time.Minute)
	t.Cleanup(func() { _ = c.Close() })
	repo := &countingProfiles{ProfileRepo: memory.NewProfileRepo()}
	return NewProfileService(repo, c, time.Minute, logger.Nop()), repo
}

func TestProfileGet_MissingProfileIsEmpty(t *testing.T) {
	svc, _ := newProfileFixture(t)

	p, err := svc.Get(context.Background(), "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", p.UserID)
	assert.Nil(t, p.Age)
	assert.False(t, p.OnboardingCompleted)
}

func TestProfileGet_ServedFromCacheUntilUpdated(t *testing.T) {
	ctx := context.Background()
	svc, repo := newProfileFixture(t)
	require.NoError(t, repo.Upsert(ctx, &domain.UserProfile{UserID: "u1", Age: domain.NewText("34")}))

	p, err := svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "34", p.Age.String())

	_, err = svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.EqualValues(t, 1, repo.reads.Load())

	_, err = svc.Update(ctx, domain.UserProfile{UserID: "u1", Age: domain.NewText("35")})
	require.NoError(t, err)

	p, err = svc.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "35", p.Age.String())
	assert.EqualValues(t, 2, repo.reads.Load())
}

func TestProfileGet_ConcurrentMissesShareOneRead(t *testing.T) {
	ctx := context.Background()
	svc, repo := newProfileFixture(t)
	repo.delay = 50 * time.Millisecond
	require.NoError(t, repo.Upsert(ctx, &domain.UserProfile{UserID: "u1", DietType: domain.NewText("vegan")}))

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := svc.Get(ctx, "u1")
			assert.NoError(t, err)
			assert.Equal(t, "vegan", p.DietType.String())
		}()
	}
	wg.Wait()
	assert.Less(t, repo.reads.Load(), int32(10))
}

func TestProfileUpdate_RequiresUserID(t *testing.T) {
	svc, _ := newProfileFixture(t)
	_, err := svc.Update(context.Background(), domain.UserProfile{})
	assert.ErrorIs(t, err, ErrInvalidInput)
}
