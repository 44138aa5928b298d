package ports

import "context"

// UploadInput groups parameters for an object upload.
type UploadInput struct {
	Bucket      string
	Path        string
	ContentType string
	Data        []byte
}

// ObjectStorage is the contract for the hosted object store used for profile
// images. EnsureBucket is idempotent: "already exists" is success.
type ObjectStorage interface {
	EnsureBucket(ctx context.Context, bucket string) error
	Upload(ctx context.Context, in UploadInput) error
	PublicURL(bucket, path string) string
}
