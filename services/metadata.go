package services

import (
	"context"

	"jobspy-client/cache"
	"jobspy-client/models"
	"jobspy-client/utils"
)

// MetadataSource serves the selectable options of the search form.
type MetadataSource interface {
	Sites(ctx context.Context) ([]models.Option, error)
	JobTypes(ctx context.Context) ([]models.Option, error)
	Countries(ctx context.Context) ([]models.Option, error)
}

// Catalog is the set of option lists. A list that could not be loaded is empty.
type Catalog struct {
	Sites     []models.Option
	JobTypes  []models.Option
	Countries []models.Option
}

// MetadataService loads the option lists. Failures never propagate: a missing
// list degrades to an empty one.
type MetadataService struct {
	source      MetadataSource
	cache       cache.MetadataCache
	retry       *utils.RetryConfig
	concurrency int
	logger      *utils.Logger
}

// NewMetadataService creates a MetadataService. A nil cache disables caching.
func NewMetadataService(
	source MetadataSource,
	c cache.MetadataCache,
	retry *utils.RetryConfig,
	concurrency int,
	logger *utils.Logger,
) *MetadataService {
	if c == nil {
		c = cache.Nop{}
	}
	if concurrency < 1 {
		concurrency = 1
	}
	if retry == nil {
		retry = &utils.RetryConfig{MaxAttempts: 1, Logger: logger}
	}
	return &MetadataService{
		source:      source,
		cache:       c,
		retry:       retry,
		concurrency: concurrency,
		logger:      logger,
	}
}

// Prefetch loads every list concurrently.
func (m *MetadataService) Prefetch(ctx context.Context) Catalog {
	var cat Catalog
	pool := utils.NewWorkerPool(m.concurrency, 0)

	pool.Submit(func() { cat.Sites = m.load(ctx, "sites", m.source.Sites) })
	pool.Submit(func() { cat.JobTypes = m.load(ctx, "job-types", m.source.JobTypes) })
	pool.Submit(func() { cat.Countries = m.load(ctx, "countries", m.source.Countries) })
	pool.Wait()

	m.logger.Debug("[metadata] Loaded %d sites, %d job types, %d countries",
		len(cat.Sites), len(cat.JobTypes), len(cat.Countries))
	return cat
}

// Lookup loads a single list by name: "sites", "job-types" or "countries".
// Unknown names yield an empty list.
func (m *MetadataService) Lookup(ctx context.Context, name string) []models.Option {
	switch name {
	case "sites":
		return m.load(ctx, name, m.source.Sites)
	case "job-types":
		return m.load(ctx, name, m.source.JobTypes)
	case "countries":
		return m.load(ctx, name, m.source.Countries)
	}
	return []models.Option{}
}

func (m *MetadataService) load(
	ctx context.Context,
	name string,
	fetch func(context.Context) ([]models.Option, error),
) []models.Option {
	if opts, ok, err := m.cache.Get(ctx, name); err != nil {
		m.logger.Debug("[metadata] cache read %s: %v", name, err)
	} else if ok {
		return opts
	}

	var opts []models.Option
	err := m.retry.Do(ctx, "GET "+name, func(ctx context.Context) error {
		var err error
		opts, err = fetch(ctx)
		return err
	})
	if err != nil {
		m.logger.Warn("[metadata] %s unavailable, continuing without options: %v", name, err)
		return []models.Option{}
	}
	if opts == nil {
		opts = []models.Option{}
	}

	if err := m.cache.Set(ctx, name, opts); err != nil {
		m.logger.Debug("[metadata] cache write %s: %v", name, err)
	}
	return opts
}
