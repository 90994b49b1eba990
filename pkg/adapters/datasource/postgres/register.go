package postgres

import (
	"context"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/adapters/datasource"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/models"
)

func init() {
	datasource.Register(datasource.DatasourceAdapterRegistration{
		Info: datasource.DatasourceAdapterInfo{
			Type:        models.DialectPostgres,
			DisplayName: "PostgreSQL",
			DriverClass: "org.postgresql.Driver",
		},
		Factory: func(ctx context.Context, cc *datasource.ConnectionConfig, logger *zap.Logger) (datasource.Introspector, error) {
			cfg, err := FromConnection(cc)
			if err != nil {
				return nil, err
			}
			return NewAdapter(ctx, cfg, logger)
		},
	})
}
