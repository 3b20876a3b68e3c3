package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/jobsy/jobmail-analyzer/internal/core"
	"github.com/jobsy/jobmail-analyzer/internal/di"
	"github.com/jobsy/jobmail-analyzer/internal/ports"
	"go.uber.org/zap"
)

func main() {
	// Build the dependency injection container
	container, err := di.BuildContainer()
	if err != nil {
		fmt.Printf("Failed to build dependency container: %v\n", err)
		os.Exit(1)
	}

	// Run the application
	if err := container.Invoke(run); err != nil {
		fmt.Printf("Application error: %v\n", err)
		os.Exit(1)
	}
}

// run is the main application function that gets all dependencies injected
func run(
	logger *zap.Logger,
	ingestor ports.EmailIngestor,
	llmClient core.LLMClient,
	store core.ApplicationStore,
) error {
	defer logger.Sync()

	// Start the ingestor
	if err := ingestor.Start(); err != nil {
		logger.Fatal("Failed to start ingestor", zap.Error(err))
		return err
	}

	// Handle graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	<-sigCh
	logger.Info("Shutting down...")

	// Stop the ingestor
	if err := ingestor.Stop(); err != nil {
		logger.Error("Failed to stop ingestor", zap.Error(err))
	}

	// Close any resources that need closing
	if closer, ok := llmClient.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			logger.Error("Failed to close LLM client", zap.Error(err))
		}
	}

	// Stop the store if needed
	if stopper, ok := store.(interface{ Stop() }); ok {
		stopper.Stop()
	}

	logger.Info("Shutdown complete")
	return nil
}
