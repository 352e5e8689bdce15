package server

import (
	"context"
	"encoding/json"

	bolt "go.etcd.io/bbolt"
	"go.uber.org/zap"

	"github.com/msaldanha/taskflow/cache"
	"github.com/msaldanha/taskflow/config"
	"github.com/msaldanha/taskflow/errorreport"
	"github.com/msaldanha/taskflow/server/rest"
	"github.com/msaldanha/taskflow/storage"
	"github.com/msaldanha/taskflow/tasks"
)

const (
	cacheBucket  = "cache"
	errorsBucket = "errors"
	maxRetries   = 3
)

type Options struct {
	Config config.Config
	// Logger defaults to a production logger in production and a development one otherwise.
	Logger *zap.Logger
}

type Server struct {
	opts        Options
	db          *bolt.DB
	logger      *zap.Logger
	raw         *cache.Expiring[json.RawMessage]
	reporter    *errorreport.Reporter
	janitor     *cache.Janitor
	restService *rest.Server
}

func NewLogger(cfg config.Config) (*zap.Logger, error) {
	if cfg.Production() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}

func NewServer(opts Options) (*Server, error) {
	cfg := opts.Config
	logger := opts.Logger
	if logger == nil {
		var er error
		logger, er = NewLogger(cfg)
		if er != nil {
			return nil, er
		}
	}

	db, er := storage.OpenBolt(cfg.DB)
	if er != nil {
		return nil, er
	}
	s, er := build(opts, db, logger)
	if er != nil {
		_ = db.Close()
		return nil, er
	}
	return s, nil
}

func build(opts Options, db *bolt.DB, logger *zap.Logger) (*Server, error) {
	cfg := opts.Config

	cacheStore, er := storage.NewBoltKeyValueStore(db, storage.BoltKeyValueStoreOptions{
		BucketName: cacheBucket,
		MaxBytes:   cfg.Cache.MaxBytes,
		Logger:     logger,
	})
	if er != nil {
		return nil, er
	}
	errorStore, er := storage.NewBoltKeyValueStore(db, storage.BoltKeyValueStoreOptions{
		BucketName: errorsBucket,
		Logger:     logger,
	})
	if er != nil {
		return nil, er
	}

	cacheOpts := cache.Options{
		Prefix:     cfg.Cache.Prefix,
		DefaultTTL: cfg.CacheTTL(),
		Logger:     logger,
	}
	taskCache, er := cache.NewExpiring[[]tasks.Task](cacheStore, cacheOpts)
	if er != nil {
		return nil, er
	}
	teamCache, er := cache.NewExpiring[[]tasks.Assignee](cacheStore, cacheOpts)
	if er != nil {
		return nil, er
	}
	raw, er := cache.NewExpiring[json.RawMessage](cacheStore, cacheOpts)
	if er != nil {
		return nil, er
	}

	reporter := errorreport.NewReporter(errorreport.Options{
		APIURL:      cfg.APIURL,
		Production:  cfg.Production(),
		MinSeverity: errorreport.ParseSeverity(cfg.LogLevel),
		Fallback:    errorStore,
		MaxRetries:  maxRetries,
		Logger:      logger,
	})

	restServer, er := rest.NewServer(rest.Options{
		Url:      cfg.Addr,
		Board:    tasks.NewBoard(tasks.Options{Logger: logger}),
		Tasks:    taskCache,
		Team:     teamCache,
		CacheTTL: cfg.CacheTTL(),
		Reporter: reporter,
		Secret:   cfg.JWTSecret,
		Logger:   logger,
	})
	if er != nil {
		return nil, er
	}

	return &Server{
		opts:        opts,
		db:          db,
		logger:      logger,
		raw:         raw,
		reporter:    reporter,
		janitor:     cache.NewJanitor(raw, cfg.SweepInterval(), logger),
		restService: restServer,
	}, nil
}

// Cache gives access to the stored cache entries as raw JSON.
func (s *Server) Cache() *cache.Expiring[json.RawMessage] {
	return s.raw
}

func (s *Server) Reporter() *errorreport.Reporter {
	return s.reporter
}

// Run starts the janitor and serves the API until ctx is done.
func (s *Server) Run(ctx context.Context) error {
	go s.janitor.Run(ctx)
	s.logger.Info("serving", zap.String("addr", s.opts.Config.Addr), zap.Bool("production", s.opts.Config.Production()))
	return s.restService.Run(ctx)
}

func (s *Server) Close() error {
	_ = s.logger.Sync()
	return s.db.Close()
}
