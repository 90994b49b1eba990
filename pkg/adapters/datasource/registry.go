package datasource

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
)

// DatasourceAdapterInfo describes a registered adapter.
type DatasourceAdapterInfo struct {
	Type        string `json:"type"`         // "mysql", "postgres", "sqlserver"
	DisplayName string `json:"display_name"` // "MySQL", "PostgreSQL"
	DriverClass string `json:"driver_class"` // JDBC driver written to generated config
}

// IntrospectorFactoryFunc opens an Introspector for a parsed connection.
type IntrospectorFactoryFunc func(ctx context.Context, cfg *ConnectionConfig, logger *zap.Logger) (Introspector, error)

// DatasourceAdapterRegistration contains info + factory for one dialect.
type DatasourceAdapterRegistration struct {
	Info    DatasourceAdapterInfo
	Factory IntrospectorFactoryFunc
}

var (
	registryMu sync.RWMutex
	registry   = make(map[string]DatasourceAdapterRegistration)
)

// Register is called by each adapter's init() function.
func Register(reg DatasourceAdapterRegistration) {
	registryMu.Lock()
	defer registryMu.Unlock()
	registry[reg.Info.Type] = reg
}

// RegisteredAdapters returns info for all registered adapters, sorted by type.
func RegisteredAdapters() []DatasourceAdapterInfo {
	registryMu.RLock()
	defer registryMu.RUnlock()

	result := make([]DatasourceAdapterInfo, 0, len(registry))
	for _, reg := range registry {
		result = append(result, reg.Info)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Type < result[j].Type })
	return result
}

// GetFactory returns the introspector factory for a dialect, or nil.
func GetFactory(dialect string) IntrospectorFactoryFunc {
	registryMu.RLock()
	defer registryMu.RUnlock()

	if reg, ok := registry[dialect]; ok {
		return reg.Factory
	}
	return nil
}

// IsRegistered checks if an adapter type is available.
func IsRegistered(dialect string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := registry[dialect]
	return ok
}
