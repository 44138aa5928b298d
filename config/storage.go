package config

import "time"

// StorageConfig contains object storage configuration for profile images.
// An empty BaseURL disables uploads; onboarding then proceeds without images.
type StorageConfig struct {
	// BaseURL is the storage service root (e.g., "https://xyz.supabase.co/storage/v1").
	BaseURL string `env:"BASE_URL"`

	// ServiceKey authenticates bucket and object operations.
	ServiceKey string `env:"SERVICE_KEY"`

	// Bucket is the bucket that holds profile pictures and brand logos.
	Bucket string `env:"BUCKET" envDefault:"profile-images"`

	// Timeout bounds each storage request.
	Timeout time.Duration `env:"TIMEOUT" envDefault:"15s"`
}
