package loader

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
)

func loadFromFS(ctx context.Context, files fs.FS, name string) ([]byte, error) {
	if name == "" {
		return nil, errors.New("dictionary loader: fs path is required")
	}
	if files == nil {
		return nil, errors.New("dictionary loader: filesystem is not configured")
	}
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	data, err := fs.ReadFile(files, name)
	if err != nil {
		return nil, fmt.Errorf("dictionary loader: %w", err)
	}
	return data, nil
}
