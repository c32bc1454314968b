// Package snapshot reads and writes precomputed briefing payloads.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"briefing/internal/fetcher"
)

// Well-known snapshot keys.
const (
	FeedKey     = "feed.json"
	ClustersKey = "clusters.json"
	TrendsKey   = "trends.json"
)

var (
	// ErrNotExist is returned when a key has no backing object.
	ErrNotExist = errors.New("snapshot object does not exist")
	// ErrReadOnly is returned by stores that cannot be written.
	ErrReadOnly = errors.New("snapshot store is read-only")
	// ErrInvalidKey is returned for keys that escape the store root.
	ErrInvalidKey = errors.New("invalid snapshot key")
)

// Store is the interface for snapshot object access.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Put(ctx context.Context, key string, data []byte) error
}

// ArticleKey returns the key of a single article payload.
func ArticleKey(id string) string {
	return "articles/" + id + ".json"
}

// ValidID reports whether id can be used as a single path segment.
func ValidID(id string) bool {
	if id == "" || id == "." || id == ".." {
		return false
	}
	return !strings.ContainsAny(id, `/\`)
}

// Options configures the stores created by Open.
type Options struct {
	// HTTPClient is used for http(s) sources. Defaults to http.DefaultClient.
	HTTPClient fetcher.HTTPClient
	S3         S3Config
}

// Open returns the store for a source. Sources starting with s3:// select an
// S3 bucket and optional prefix, http:// and https:// select a read-only
// HTTP base URL, anything else is a local directory.
func Open(ctx context.Context, source string, opts Options) (Store, error) {
	switch {
	case source == "":
		return nil, fmt.Errorf("snapshot source is empty")
	case strings.HasPrefix(source, "s3://"):
		bucket, prefix, _ := strings.Cut(strings.TrimPrefix(source, "s3://"), "/")
		if bucket == "" {
			return nil, fmt.Errorf("snapshot source %q has no bucket", source)
		}
		return NewS3Store(ctx, opts.S3, bucket, prefix)
	case strings.HasPrefix(source, "http://"), strings.HasPrefix(source, "https://"):
		client := opts.HTTPClient
		if client == nil {
			client = http.DefaultClient
		}
		return NewHTTPStore(client, source), nil
	default:
		return NewDirStore(source), nil
	}
}
