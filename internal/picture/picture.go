// Package picture stores profile pictures and serves them back over HTTP.
package picture

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"path"
	"path/filepath"
	"strconv"
	"strings"
)

var ErrNotFound = errors.New("picture not found")

type Storage interface {
	Save(ctx context.Context, name string, data []byte, contentType string) error
	Open(ctx context.Context, name string) (io.ReadCloser, string, error)
}

// FileName derives the stored name for a person's picture: "{id}.{ext}",
// with the extension taken from the uploaded name and lower-cased.
func FileName(personID int64, original string) string {
	ext := strings.TrimPrefix(strings.ToLower(filepath.Ext(original)), ".")
	return strconv.FormatInt(personID, 10) + "." + ext
}

// Handler serves stored pictures by name, e.g. mounted at /pictures/.
func Handler(st Storage) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
			return
		}
		name := path.Base(r.URL.Path)
		if name == "." || name == "/" || name == "" {
			http.NotFound(w, r)
			return
		}
		body, contentType, err := st.Open(r.Context(), name)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				http.NotFound(w, r)
				return
			}
			slog.Error("open picture", "name", name, "error", err)
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}
		defer body.Close()
		if contentType == "" {
			contentType = mime.TypeByExtension(path.Ext(name))
		}
		if contentType != "" {
			w.Header().Set("Content-Type", contentType)
		}
		w.WriteHeader(http.StatusOK)
		if r.Method == http.MethodGet {
			_, _ = io.Copy(w, body)
		}
	})
}
