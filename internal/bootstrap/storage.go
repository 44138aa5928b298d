package bootstrap

import (
	"log/slog"

	"github.com/collabhub/collabhub-api/config"
	"github.com/collabhub/collabhub-api/internal/adapters/storage"
)

// BuildStorageClient creates the object storage client for profile images.
// Returns nil when storage is not configured; onboarding then skips uploads.
func BuildStorageClient(cfg config.StorageConfig, logger *slog.Logger) *storage.Client {
	if cfg.BaseURL == "" {
		if logger != nil {
			logger.Warn("object storage disabled: STORAGE_BASE_URL not set")
		}
		return nil
	}

	client, err := storage.NewClient(storage.Config{
		BaseURL:    cfg.BaseURL,
		ServiceKey: cfg.ServiceKey,
		Timeout:    cfg.Timeout,
	})
	if err != nil {
		if logger != nil {
			logger.Warn("failed to create storage client, uploads disabled", "error", err)
		}
		return nil
	}

	return client
}
