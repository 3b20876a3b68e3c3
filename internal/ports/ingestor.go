package ports

// EmailIngestor defines the interface for an email intake front-end
type EmailIngestor interface {
	// Start starts the ingest service
	Start() error

	// Stop stops the ingest service
	Stop() error
}
