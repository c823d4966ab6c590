package instructors

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lotus-studio/lotus/internal/shared"
)

type countingRepo struct {
	instructors []Instructor
	listCalls   int
	getCalls    int
}

func (c *countingRepo) FindAll(ctx context.Context) ([]Instructor, error) {
	c.listCalls++
	return c.instructors, nil
}

func (c *countingRepo) FindByID(ctx context.Context, id int64) (*Instructor, error) {
	c.getCalls++
	for i := range c.instructors {
		if c.instructors[i].ID == id {
			return &c.instructors[i], nil
		}
	}
	return nil, shared.ErrNotFound
}

func newCachedService(t *testing.T, repo Repository) *Service {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return NewService(repo, NewCache(client, time.Minute))
}

func TestFindAllUsesCache(t *testing.T) {
	repo := &countingRepo{instructors: []Instructor{
		{ID: 1, FirstName: "Margot", LastName: "Delahaye"},
		{ID: 2, FirstName: "Helene", LastName: "Thiercelin"},
	}}
	service := newCachedService(t, repo)
	ctx := context.Background()

	first, err := service.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, first, 2)

	second, err := service.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, repo.listCalls)
}

func TestFindByIDUsesCache(t *testing.T) {
	repo := &countingRepo{instructors: []Instructor{{ID: 1, FirstName: "Margot", LastName: "Delahaye"}}}
	service := newCachedService(t, repo)
	ctx := context.Background()

	got, err := service.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Margot", got.FirstName)

	_, err = service.FindByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, repo.getCalls)
}

func TestFindByIDNotFoundIsNotCached(t *testing.T) {
	repo := &countingRepo{}
	service := newCachedService(t, repo)
	ctx := context.Background()

	_, err := service.FindByID(ctx, 404)
	assert.ErrorIs(t, err, shared.ErrNotFound)

	_, err = service.FindByID(ctx, 404)
	assert.ErrorIs(t, err, shared.ErrNotFound)
	assert.Equal(t, 2, repo.getCalls)
}

func TestCacheOutageDegradesToRepository(t *testing.T) {
	repo := &countingRepo{instructors: []Instructor{{ID: 1, FirstName: "Margot"}}}
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	service := NewService(repo, NewCache(client, time.Minute))
	mr.Close()

	list, err := service.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.Equal(t, 1, repo.listCalls)
}

func TestNilCacheLoadsDirectly(t *testing.T) {
	repo := &countingRepo{instructors: []Instructor{{ID: 1}}}
	service := NewService(repo, nil)

	list, err := service.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
