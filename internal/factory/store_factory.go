package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/jobsy/jobmail-analyzer/internal/adapters/store"
	"github.com/jobsy/jobmail-analyzer/internal/config"
	"github.com/jobsy/jobmail-analyzer/internal/core"
	"go.uber.org/zap"
)

// StoreFactory creates application stores based on configuration
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateApplicationStore creates an application store based on the configuration
func (f *StoreFactory) CreateApplicationStore() (core.ApplicationStore, error) {
	storeCfg := f.cfg.GetStore()

	switch storeCfg.Type {
	case "memory":
		return store.NewMemoryStore(f.logger), nil
	case "sqlite":
		if err := os.MkdirAll(filepath.Dir(storeCfg.SQLitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return store.NewSQLiteStore(storeCfg.SQLitePath, f.logger)
	case "mysql":
		return store.NewMySQLStore(storeCfg.MySQLDSN, f.logger)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeCfg.Type)
	}
}
