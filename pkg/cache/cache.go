// Package cache provides artifact caching for rendered dependency trees.
//
// Rendering DOT to SVG runs Graphviz through a WebAssembly runtime, which is
// by far the slowest stage of the pipeline. Because all rendering is
// deterministic, artifacts can be cached keyed by a content hash of the DOT
// they were rendered from.
//
// Two implementations are provided: [FileCache] for CLI usage (entries as
// JSON files under a directory) and [NullCache] to disable caching.
package cache

import (
	"context"
	"time"
)

// Cache stores rendered artifacts keyed by string.
type Cache interface {
	// Get retrieves a value. The second return reports whether the key
	// was present and unexpired.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. A ttl of zero means the entry never expires.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases any resources held by the cache.
	Close() error
}

// ArtifactKey generates the cache key for a rendered artifact: the output
// format plus the hash of the DOT source it was rendered from.
func ArtifactKey(dotHash, format string) string {
	return "artifact:" + format + ":" + dotHash
}
