package datasource

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/logging"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/models"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/retry"
)

// DatasourceAdapterFactory creates introspectors from the registry.
type DatasourceAdapterFactory interface {
	// NewIntrospector opens an introspector for the database named by db.URL.
	// Transient connection failures are retried with backoff.
	NewIntrospector(ctx context.Context, db *models.DBDefinition) (Introspector, error)

	// ListTypes returns info for all registered adapter types.
	ListTypes() []DatasourceAdapterInfo
}

type registryFactory struct {
	retry  *retry.Config
	logger *zap.Logger
}

// NewDatasourceAdapterFactory returns a factory that uses the global registry.
func NewDatasourceAdapterFactory(logger *zap.Logger) DatasourceAdapterFactory {
	return &registryFactory{
		retry:  retry.DefaultConfig(),
		logger: logger.Named("datasource"),
	}
}

func (f *registryFactory) NewIntrospector(ctx context.Context, db *models.DBDefinition) (Introspector, error) {
	cfg, err := ParseConnection(db)
	if err != nil {
		return nil, err
	}
	factory := GetFactory(cfg.Dialect)
	if factory == nil {
		return nil, fmt.Errorf("unsupported datasource type: %s (not compiled in)", cfg.Dialect)
	}
	f.logger.Debug("Opening introspector",
		zap.String("dialect", cfg.Dialect),
		zap.String("url", logging.SanitizeConnectionString(db.URL)))
	attempt := 0
	return retry.DoIfRetryable(ctx, f.retry, func() (Introspector, error) {
		attempt++
		in, err := factory(ctx, cfg, f.logger)
		if err != nil && retry.IsRetryable(err) {
			f.logger.Warn("Transient connection failure",
				zap.Int("attempt", attempt),
				zap.String("error", logging.SanitizeError(err)))
		}
		return in, err
	})
}

func (f *registryFactory) ListTypes() []DatasourceAdapterInfo {
	return RegisteredAdapters()
}

// Ensure registryFactory implements DatasourceAdapterFactory at compile time.
var _ DatasourceAdapterFactory = (*registryFactory)(nil)
