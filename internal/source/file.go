package source

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// FileFetcher reads drawings from the local filesystem. Relative ids are
// resolved against Root.
type FileFetcher struct {
	Root string
}

// Fetch reads the file named by id. A file:// prefix is accepted.
func (f FileFetcher) Fetch(ctx context.Context, id string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, unavailable(id, err)
	}
	path := strings.TrimPrefix(id, "file://")
	if !filepath.IsAbs(path) && f.Root != "" {
		path = filepath.Join(f.Root, path)
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, notFound(id)
	}
	if err != nil {
		return nil, unavailable(id, err)
	}
	return data, nil
}
