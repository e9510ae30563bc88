package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobspy-client/cache"
	"jobspy-client/models"
	"jobspy-client/utils"
)

type stubMetadata struct {
	mu        sync.Mutex
	calls     map[string]int
	failSites int
	countries error
}

func (s *stubMetadata) hit(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.calls == nil {
		s.calls = make(map[string]int)
	}
	s.calls[name]++
	return s.calls[name]
}

func (s *stubMetadata) count(name string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[name]
}

func (s *stubMetadata) Sites(context.Context) ([]models.Option, error) {
	if n := s.hit("sites"); n <= s.failSites {
		return nil, errors.New("502 bad gateway")
	}
	return []models.Option{{Value: "indeed", Label: "Indeed"}, {Value: "linkedin", Label: "LinkedIn"}}, nil
}

func (s *stubMetadata) JobTypes(context.Context) ([]models.Option, error) {
	s.hit("job-types")
	return []models.Option{{Value: "fulltime", Label: "Full Time"}}, nil
}

func (s *stubMetadata) Countries(context.Context) ([]models.Option, error) {
	s.hit("countries")
	if s.countries != nil {
		return nil, s.countries
	}
	return []models.Option{{Value: "usa", Label: "USA"}}, nil
}

func testRetry() *utils.RetryConfig {
	return &utils.RetryConfig{MaxAttempts: 3, BaseDelay: time.Millisecond}
}

func TestMetadataPrefetch(t *testing.T) {
	src := &stubMetadata{failSites: 1}
	m := NewMetadataService(src, nil, testRetry(), 3, utils.NewNopLogger())

	cat := m.Prefetch(context.Background())

	assert.Len(t, cat.Sites, 2)
	assert.Equal(t, "fulltime", cat.JobTypes[0].Value)
	assert.Equal(t, "usa", cat.Countries[0].Value)
	assert.Equal(t, 2, src.count("sites"))
}

func TestMetadataFailureDegradesToEmpty(t *testing.T) {
	src := &stubMetadata{countries: errors.New("connection refused")}
	m := NewMetadataService(src, nil, testRetry(), 1, utils.NewNopLogger())

	cat := m.Prefetch(context.Background())

	assert.NotNil(t, cat.Countries)
	assert.Empty(t, cat.Countries)
	assert.Len(t, cat.Sites, 2)
	assert.Equal(t, 3, src.count("countries"))
}

func TestMetadataUsesCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := cache.NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	c := cache.NewRedisCache(rdb, time.Hour)
	t.Cleanup(func() { _ = c.Close() })

	src := &stubMetadata{}
	m := NewMetadataService(src, c, testRetry(), 3, utils.NewNopLogger())

	first := m.Prefetch(context.Background())
	second := m.Prefetch(context.Background())

	assert.Equal(t, first, second)
	assert.Equal(t, 1, src.count("sites"))
	assert.Equal(t, 1, src.count("job-types"))
	assert.Equal(t, 1, src.count("countries"))
	assert.True(t, mr.Exists("jobspy:meta:countries"))
}

func TestMetadataFailuresAreNotCached(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb, err := cache.NewRedisClient(context.Background(), "redis://"+mr.Addr())
	require.NoError(t, err)
	c := cache.NewRedisCache(rdb, time.Hour)
	t.Cleanup(func() { _ = c.Close() })

	src := &stubMetadata{countries: errors.New("down")}
	m := NewMetadataService(src, c, &utils.RetryConfig{MaxAttempts: 1}, 3, utils.NewNopLogger())

	m.Prefetch(context.Background())
	assert.False(t, mr.Exists("jobspy:meta:countries"))
}

func TestMetadataLookup(t *testing.T) {
	m := NewMetadataService(&stubMetadata{}, cache.Nop{}, nil, 1, utils.NewNopLogger())

	assert.Len(t, m.Lookup(context.Background(), "sites"), 2)
	assert.Len(t, m.Lookup(context.Background(), "job-types"), 1)
	assert.Empty(t, m.Lookup(context.Background(), "salaries"))
}
