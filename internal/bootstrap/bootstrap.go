// Package bootstrap builds the stores and pipeline components from the
// environment configuration. The server and the CLI share it.
package bootstrap

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/Harshitk-cp/semprove/internal/config"
	"github.com/Harshitk-cp/semprove/internal/derivation"
	"github.com/Harshitk-cp/semprove/internal/prover"
	"github.com/Harshitk-cp/semprove/internal/semantics"
	"github.com/Harshitk-cp/semprove/internal/store"
	"github.com/Harshitk-cp/semprove/internal/store/sqlite"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"
)

// OpenStores connects to the configured database and applies the schema.
// The returned func releases the connection.
func OpenStores(ctx context.Context, logger *zap.Logger) (*store.Set, func(), error) {
	switch driver := config.StoreDriver(); driver {
	case "postgres":
		dbURL := config.DatabaseURL()
		if dbURL == "" {
			return nil, nil, fmt.Errorf("DATABASE_URL is required for the postgres store")
		}
		pool, err := pgxpool.New(ctx, dbURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect to database: %w", err)
		}
		if err := pool.Ping(ctx); err != nil {
			pool.Close()
			return nil, nil, fmt.Errorf("ping database: %w", err)
		}
		if err := store.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, nil, err
		}
		logger.Info("connected to database", zap.String("driver", driver))
		return store.NewSet(pool), pool.Close, nil

	case "sqlite":
		path := config.SQLitePath()
		if path != ":memory:" {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, nil, fmt.Errorf("create database directory: %w", err)
			}
		}
		db, err := sqlite.Open(path, logger)
		if err != nil {
			return nil, nil, err
		}
		if err := sqlite.Migrate(ctx, db); err != nil {
			db.Close()
			return nil, nil, err
		}
		return sqlite.NewSet(db), func() { _ = db.Close() }, nil

	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", driver)
	}
}

// Pipeline is the read-only composition and proof machinery.
type Pipeline struct {
	Source       derivation.Source
	Composer     *semantics.Composer
	Orchestrator *prover.Orchestrator
	NBest        int
}

// NewPipeline loads the lexicon and builds the derivation source and prover
// named by the configuration.
func NewPipeline(logger *zap.Logger) (*Pipeline, error) {
	lex, err := semantics.LoadLexicon(config.TemplatesPath())
	if err != nil {
		return nil, err
	}
	logger.Info("template lexicon loaded", zap.String("path", config.TemplatesPath()), zap.Int("templates", lex.Len()))

	source, err := NewSource(config.ParserCommand(), config.DerivationsDir(), config.ParserTimeout(), config.ParserCacheTTL(), logger)
	if err != nil {
		return nil, err
	}
	orch, err := NewOrchestrator(config.ProverBackend(), config.ProverCommand(), config.ProverTimeout(), logger)
	if err != nil {
		return nil, err
	}
	return &Pipeline{
		Source:       source,
		Composer:     semantics.NewComposer(lex, config.ComposeWorkers(), logger),
		Orchestrator: orch,
		NBest:        config.NBest(),
	}, nil
}

// NewSource runs command when it is set and reads dir otherwise. A positive
// ttl caches loaded documents.
func NewSource(command, dir string, timeout, ttl time.Duration, logger *zap.Logger) (derivation.Source, error) {
	if command == "" {
		return derivation.NewFileSource(dir), nil
	}
	cs, err := derivation.NewCommandSource(command, timeout, logger)
	if err != nil {
		return nil, err
	}
	// Parser output depends only on the text, so repeated sentences share it.
	if ttl > 0 {
		return derivation.NewCachedSource(cs, ttl), nil
	}
	return cs, nil
}

// NewOrchestrator builds a proof orchestrator over the named backend.
func NewOrchestrator(backend, command string, timeout time.Duration, logger *zap.Logger) (*prover.Orchestrator, error) {
	var b prover.Backend
	switch backend {
	case "command":
		cb, err := prover.NewCommandBackend(command, logger)
		if err != nil {
			return nil, fmt.Errorf("PROVER_COMMAND: %w", err)
		}
		b = cb
	case "datalog":
		b = prover.NewDatalogBackend(logger)
	default:
		return nil, fmt.Errorf("unknown PROVER_BACKEND %q", backend)
	}
	return prover.NewOrchestrator(b, timeout, logger), nil
}
