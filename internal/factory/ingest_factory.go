package factory

import (
	"github.com/jobsy/jobmail-analyzer/internal/adapters/ingest"
	"github.com/jobsy/jobmail-analyzer/internal/config"
	"github.com/jobsy/jobmail-analyzer/internal/core"
	"github.com/jobsy/jobmail-analyzer/internal/ports"
	"go.uber.org/zap"
)

// IngestFactory creates email ingestors
type IngestFactory struct {
	cfg     *config.Config
	logger  *zap.Logger
	service *core.AnalyzerService
}

// NewIngestFactory creates a new ingest factory
func NewIngestFactory(cfg *config.Config, logger *zap.Logger, service *core.AnalyzerService) *IngestFactory {
	return &IngestFactory{
		cfg:     cfg,
		logger:  logger,
		service: service,
	}
}

// CreateEmailIngestor creates the SMTP ingest front-end
func (f *IngestFactory) CreateEmailIngestor() (ports.EmailIngestor, error) {
	ingestCfg := f.cfg.GetIngest()
	return ingest.NewSMTPIngestor(
		f.service,
		f.logger,
		ingestCfg.ListenAddress,
		ingestCfg.DefaultUser,
	), nil
}
