package mssql

import (
	"context"

	"go.uber.org/zap"

	"github.com/ekaya-inc/ekaya-scaffold/pkg/adapters/datasource"
	"github.com/ekaya-inc/ekaya-scaffold/pkg/models"
)

func init() {
	datasource.Register(datasource.DatasourceAdapterRegistration{
		Info: datasource.DatasourceAdapterInfo{
			Type:        models.DialectSQLServer,
			DisplayName: "Microsoft SQL Server",
			DriverClass: "com.microsoft.sqlserver.jdbc.SQLServerDriver",
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
