package cmd

import (
	"context"
	"fmt"
	"time"

	"jobspy-client/cache"
	"jobspy-client/config"
	"jobspy-client/scraper/jobspy"
	"jobspy-client/services"
	"jobspy-client/storage"
	"jobspy-client/utils"
)

// redisConnectTimeout bounds the initial cache ping.
const redisConnectTimeout = 3 * time.Second

// commandDeps holds the collaborators shared by every command.
type commandDeps struct {
	Config   *config.Config
	Logger   *utils.Logger
	Client   *jobspy.Client
	Exporter *services.Exporter
	Metadata *services.MetadataService
	Insights *services.InsightService

	sink    *storage.PostgresWriter
	closers []func() error
}

func newCommandDeps(ctx context.Context) (*commandDeps, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, err
	}

	level := cfg.LogLevel
	if debug {
		level = "debug"
	}
	logger := utils.NewLoggerWithLevel(level)

	client := jobspy.NewClient(cfg.APIBaseURL, cfg.RequestTimeout, cfg.ExportTimeout, logger)
	d := &commandDeps{
		Config:   cfg,
		Logger:   logger,
		Client:   client,
		Exporter: services.NewExporter(storage.NewDirSaver(cfg.OutputDir), client, logger),
		Insights: services.NewInsightService(logger),
	}

	retry := &utils.RetryConfig{
		MaxAttempts: cfg.MaxRetries,
		BaseDelay:   cfg.RetryBaseDelay,
		Logger:      logger,
	}
	d.Metadata = services.NewMetadataService(client, d.metadataCache(ctx), retry, cfg.MetadataConcurrency, logger)

	logger.Debug("[cmd] Using search service at %s", cfg.APIBaseURL)
	return d, nil
}

// metadataCache connects to Redis when configured. A cache that cannot be
// reached is skipped.
func (d *commandDeps) metadataCache(ctx context.Context) cache.MetadataCache {
	if !d.Config.CacheEnabled() {
		return cache.Nop{}
	}

	ctx, cancel := context.WithTimeout(ctx, redisConnectTimeout)
	defer cancel()

	rdb, err := cache.NewRedisClient(ctx, d.Config.RedisURL)
	if err != nil {
		d.Logger.Warn("[cmd] Metadata cache disabled: %v", err)
		return cache.Nop{}
	}

	c := cache.NewRedisCache(rdb, d.Config.MetadataCacheTTL)
	d.closers = append(d.closers, c.Close)
	return c
}

// exportSink connects the Postgres export sink on first use.
func (d *commandDeps) exportSink() error {
	if d.sink != nil {
		return nil
	}
	if !d.Config.DatabaseExportEnabled() {
		return services.ErrSinkUnavailable
	}

	sink, err := storage.NewPostgresWriter(d.Config.ExportDatabaseURL)
	if err != nil {
		return fmt.Errorf("connect export database: %w", err)
	}
	d.sink = sink
	d.Exporter.WithSink(sink)
	d.closers = append(d.closers, sink.Close)
	return nil
}

// Close releases every connection opened by the dependencies.
func (d *commandDeps) Close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			d.Logger.Warn("[cmd] Close: %v", err)
		}
	}
	_ = d.Logger.Sync()
}
