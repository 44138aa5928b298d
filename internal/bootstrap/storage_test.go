package bootstrap

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/collabhub/collabhub-api/config"
)

func TestBuildStorageClient(t *testing.T) {
	assert.Nil(t, BuildStorageClient(config.StorageConfig{}, nil), "no base URL disables storage")

	client := BuildStorageClient(config.StorageConfig{
		BaseURL: "https://storage.example.com/storage/v1",
		Bucket:  "profile-images",
	}, nil)
	assert.NotNil(t, client)
}
