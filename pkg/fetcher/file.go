package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
)

// File fetches symbols from a directory-backed store such as a file share.
type File struct{}

func NewFile() *File {
	return &File{}
}

func (f *File) Fetch(_ context.Context, remote string, dst io.Writer) (int64, error) {
	src, err := os.Open(remote)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return 0, &StatusError{Code: http.StatusNotFound, Path: remote}
		}
		return 0, fmt.Errorf("open %s: %w", remote, err)
	}
	defer src.Close()

	n, err := io.Copy(dst, src)
	if err != nil {
		return n, fmt.Errorf("copy file: %w", err)
	}

	return n, nil
}
