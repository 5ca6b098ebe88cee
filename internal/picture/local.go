package picture

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"mime"
	"os"
	"path/filepath"
)

// Local keeps pictures in a directory on disk.
type Local struct {
	Dir string
}

func NewLocal(dir string) *Local { return &Local{Dir: dir} }

func (l *Local) Save(_ context.Context, name string, data []byte, _ string) error {
	if err := os.MkdirAll(l.Dir, 0o755); err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(l.Dir, filepath.Base(name)), data, 0o644)
}

func (l *Local) Open(_ context.Context, name string) (io.ReadCloser, string, error) {
	f, err := os.Open(filepath.Join(l.Dir, filepath.Base(name)))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, "", ErrNotFound
		}
		return nil, "", err
	}
	return f, mime.TypeByExtension(filepath.Ext(name)), nil
}
