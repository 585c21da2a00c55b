package attendance

import "context"

// BucketRepository persists monthly buckets. Implementations must apply
// Merge atomically per bucket: fields absent from the patch, and days absent
// from the patch, are never touched.
type BucketRepository interface {
	// Get returns the bucket, or an empty bucket when none exists.
	Get(ctx context.Context, userID string, yearMonth string) (Bucket, error)

	// Merge recursively merges patch into the bucket, creating it if needed.
	Merge(ctx context.Context, userID string, yearMonth string, patch Bucket) error

	// Replace overwrites the whole bucket. Only the key migration uses it.
	Replace(ctx context.Context, userID string, yearMonth string, bucket Bucket) error

	// Delete removes the bucket. Deleting a missing bucket is not an error.
	Delete(ctx context.Context, userID string, yearMonth string) error

	// List enumerates every stored bucket.
	List(ctx context.Context) ([]BucketRef, error)
}
