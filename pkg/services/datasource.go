package services

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/adapters/datasource"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/logging"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/models"
)

// DatasourceService checks database descriptors before they are used for a run.
type DatasourceService interface {
	// TestConnection opens the database described by db, pings it and closes it.
	TestConnection(ctx context.Context, db *models.DBDefinition) error

	// ListTypes returns the database types this build can introspect.
	ListTypes() []datasource.DatasourceAdapterInfo
}

type datasourceService struct {
	adapterFactory datasource.DatasourceAdapterFactory
	logger         *zap.Logger
}

// NewDatasourceService creates a DatasourceService.
func NewDatasourceService(adapterFactory datasource.DatasourceAdapterFactory, logger *zap.Logger) DatasourceService {
	return &datasourceService{
		adapterFactory: adapterFactory,
		logger:         logger.Named("datasource-service"),
	}
}

func (s *datasourceService) TestConnection(ctx context.Context, db *models.DBDefinition) error {
	if err := db.Validate(); err != nil {
		return err
	}

	introspector, err := s.adapterFactory.NewIntrospector(ctx, db)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}
	defer func() {
		if err := introspector.Close(); err != nil {
			s.logger.Warn("Failed to close connection", zap.Error(err))
		}
	}()

	if err := introspector.TestConnection(ctx); err != nil {
		s.logger.Info("Connection test failed",
			zap.String("url", logging.SanitizeConnectionString(db.URL)),
			zap.String("error", logging.SanitizeError(err)))
		return fmt.Errorf("connection test failed: %w", err)
	}
	return nil
}

func (s *datasourceService) ListTypes() []datasource.DatasourceAdapterInfo {
	return s.adapterFactory.ListTypes()
}

var _ DatasourceService = (*datasourceService)(nil)
