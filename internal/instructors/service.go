package instructors

import (
	"context"
	"fmt"

	"golang.org/x/sync/singleflight"
)

const listCacheKey = "instructors:all"

// Service handles instructor lookups with a read-through cache.
type Service struct {
	repo  Repository
	cache *Cache
	group singleflight.Group
}

// NewService builds a Service instance.
func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// FindAll returns every instructor. Concurrent cache misses collapse into a
// single repository load.
func (s *Service) FindAll(ctx context.Context) ([]Instructor, error) {
	result, err, _ := s.group.Do(listCacheKey, func() (any, error) {
		var list []Instructor
		err := s.cache.FetchJSON(ctx, listCacheKey, &list, func(ctx context.Context) (any, error) {
			return s.repo.FindAll(ctx)
		})
		return list, err
	})
	if err != nil {
		return nil, err
	}
	return result.([]Instructor), nil
}

// FindByID returns one instructor. NotFound is never cached.
func (s *Service) FindByID(ctx context.Context, id int64) (*Instructor, error) {
	key := fmt.Sprintf("instructors:%d", id)
	result, err, _ := s.group.Do(key, func() (any, error) {
		var t Instructor
		err := s.cache.FetchJSON(ctx, key, &t, func(ctx context.Context) (any, error) {
			return s.repo.FindByID(ctx, id)
		})
		return &t, err
	})
	if err != nil {
		return nil, err
	}
	return result.(*Instructor), nil
}
