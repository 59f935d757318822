package cachegw

import (
	"context"
	"fmt"
	"io"

	gos3 "turbocache/pkg/s3"
)

// User-metadata keys stored alongside each artifact object.
const (
	metaDuration = "duration"
	metaTag      = "tag"
)

// ObjectStore is the storage capability the gateway needs: one-shot
// put/get/head against a bucket. *gos3.Client satisfies it; tests swap in a
// map-backed fake.
type ObjectStore interface {
	PutObject(ctx context.Context, bucket, key string, body io.Reader, size int64, metadata map[string]string) error
	GetObject(ctx context.Context, bucket, key string) (io.ReadCloser, gos3.ObjectInfo, error)
	HeadObject(ctx context.Context, bucket, key string) (gos3.ObjectInfo, error)
}

// artifactKey builds the team-scoped storage key for a hash.
func artifactKey(team, hash string) string {
	return fmt.Sprintf("artifacts/%s/%s", team, hash)
}
