package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"nexus-api/internal/domain"
	"nexus-api/internal/dto"
	obsmw "nexus-api/internal/observability/middleware"

	"github.com/go-chi/chi/v5"
)

const maxJSONBody = 1 << 20

// decodeJSON reads a single JSON object into v, rejecting unknown fields, and
// runs the struct validation tags.
func decodeJSON(r *http.Request, v any) error {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxJSONBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		slog.Debug("decode body", "error", err, "path", r.URL.Path,
			"request_id", obsmw.RequestIDFromContext(r.Context()), "trace_id", obsmw.TraceIDFromContext(r.Context()))
		return domain.ErrMalformedBody
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return domain.ErrMalformedBody
	}
	return dto.Validate(v)
}

// pathID parses the {id} URL parameter as a non-negative integer. Fractional
// values such as "1.5" are rejected as non-numeric since ids are integers.
func pathID(r *http.Request) (int64, error) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		return 0, domain.ErrIDNotNumeric
	}
	if id < 0 {
		return 0, domain.ErrIDNegative
	}
	return id, nil
}
