// Package source fetches raw drawing bytes by id. An id is a local path, an
// http(s) URL or an s3://bucket/key object reference.
package source

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrSourceUnavailable wraps every fetch failure.
	ErrSourceUnavailable = errors.New("source unavailable")
	// ErrNotFound marks a source that does not exist. It always comes
	// wrapped together with ErrSourceUnavailable.
	ErrNotFound = errors.New("not found")
)

// Fetcher returns the bytes behind a drawing id.
type Fetcher interface {
	Fetch(ctx context.Context, id string) ([]byte, error)
}

// FetcherFunc adapts a function to Fetcher.
type FetcherFunc func(ctx context.Context, id string) ([]byte, error)

// Fetch calls f.
func (f FetcherFunc) Fetch(ctx context.Context, id string) ([]byte, error) {
	return f(ctx, id)
}

func unavailable(id string, err error) error {
	return fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, id, err)
}

func notFound(id string) error {
	return fmt.Errorf("%w: %s: %w", ErrSourceUnavailable, id, ErrNotFound)
}
