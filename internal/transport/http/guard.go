package http

import (
	"context"
	"log/slog"
	"net/http"
	"strings"

	"nexus-api/internal/domain"
	"nexus-api/internal/dto"
	"nexus-api/internal/httpx"
	"nexus-api/internal/observability/metrics"
	obsmw "nexus-api/internal/observability/middleware"
	"nexus-api/internal/service"
)

// Guard admits requests carrying a valid bearer access token and stores the
// decoded payload in the request context.
type Guard struct {
	tokens service.TokenService
}

func NewGuard(tokens service.TokenService) *Guard {
	return &Guard{tokens: tokens}
}

func (g *Guard) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		result := "success"
		defer func() { metrics.AuthenticationAttemptsTotal.WithLabelValues(result).Inc() }()
		reqID := obsmw.RequestIDFromContext(r.Context())
		traceID := obsmw.TraceIDFromContext(r.Context())

		raw, ok := bearerToken(r)
		if !ok {
			result = "failure"
			slog.Warn("guard missing bearer", "path", r.URL.Path, "request_id", reqID, "trace_id", traceID)
			httpx.WriteError(w, r, domain.ErrNotLoggedIn)
			return
		}

		payload, err := g.tokens.Verify(r.Context(), raw)
		if err != nil {
			result = "failure"
			slog.Warn("guard invalid token", "error", err, "path", r.URL.Path, "request_id", reqID, "trace_id", traceID)
			httpx.WriteError(w, r, domain.ErrInvalidToken)
			return
		}

		slog.Debug("guard passed", "person_id", payload.Sub, "request_id", reqID, "trace_id", traceID)
		next.ServeHTTP(w, r.WithContext(withPayload(r.Context(), payload)))
	})
}

// bearerToken extracts the token from "Authorization: Bearer <token>".
func bearerToken(r *http.Request) (string, bool) {
	scheme, token, found := strings.Cut(r.Header.Get("Authorization"), " ")
	if !found || scheme != "Bearer" {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

type payloadKey struct{}

func withPayload(ctx context.Context, p *dto.TokenPayload) context.Context {
	return context.WithValue(ctx, payloadKey{}, p)
}

// PayloadFrom returns the token payload attached by the guard.
func PayloadFrom(ctx context.Context) (*dto.TokenPayload, bool) {
	p, ok := ctx.Value(payloadKey{}).(*dto.TokenPayload)
	return p, ok && p != nil
}

// callerID is only used behind the guard, which guarantees a payload.
func callerID(r *http.Request) domain.PersonID {
	if p, ok := PayloadFrom(r.Context()); ok {
		return p.Sub
	}
	return 0
}
