package repo

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"productstudio/internal/domain"
	"productstudio/internal/infra"
)

// Stores bundles the repositories backed by the configured database.
type Stores struct {
	Products domain.ProductRepository
	History  domain.GenerationLogRepository
	close    func(context.Context) error
}

// Close releases the underlying database connections.
func (s *Stores) Close(ctx context.Context) error {
	if s == nil || s.close == nil {
		return nil
	}
	return s.close(ctx)
}

// Open connects to the database selected by cfg.StoreDriver and prepares its
// schema or indexes.
func Open(ctx context.Context, cfg *infra.Config, logger zerolog.Logger) (*Stores, error) {
	switch cfg.StoreDriver {
	case infra.StoreDriverMongo:
		client, db, err := infra.NewMongoDatabase(ctx, cfg)
		if err != nil {
			return nil, err
		}
		products := NewProductRepositoryMongo(db)
		if err := products.EnsureIndexes(ctx); err != nil {
			_ = client.Disconnect(ctx)
			return nil, err
		}
		logger.Info().Str("database", cfg.DatabaseName).Msg("using mongo store")
		return &Stores{
			Products: products,
			History:  NewGenerationLogRepositoryMongo(db),
			close:    client.Disconnect,
		}, nil

	case infra.StoreDriverPostgres:
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		runner := infra.NewSQLRunner(pool, logger)
		if err := EnsureSchema(ctx, runner); err != nil {
			pool.Close()
			return nil, err
		}
		logger.Info().Msg("using postgres store")
		return &Stores{
			Products: NewProductRepositoryPG(runner),
			History:  NewGenerationLogRepositoryPG(runner),
			close: func(context.Context) error {
				pool.Close()
				return nil
			},
		}, nil
	}
	return nil, fmt.Errorf("unsupported store driver %q", cfg.StoreDriver)
}
