package impl

import (
	"context"
	"log/slog"

	"nexus-api/internal/domain"
	"nexus-api/internal/dto"
	"nexus-api/internal/jwtsigner"
	"nexus-api/internal/observability/metrics"
	"nexus-api/internal/observability/middleware"
	"nexus-api/internal/service"
	"nexus-api/internal/store"
)

type AuthServiceImpl struct {
	Store           dataStore
	PasswordService service.PasswordService
	TService        service.TokenService
}

func NewAuthServiceImpl(store *store.Store, passwordService service.PasswordService, tokenService service.TokenService) *AuthServiceImpl {
	return &AuthServiceImpl{
		Store:           gormStoreAdapter{store: store},
		PasswordService: passwordService,
		TService:        tokenService,
	}
}

// Login exchanges e-mail and password of an active person for a token pair.
func (a *AuthServiceImpl) Login(ctx context.Context, r dto.LoginRequest) (_ *dto.TokenResponse, err error) {
	defer func() { metrics.LoginsTotal.WithLabelValues(metrics.Result(err)).Inc() }()
	reqID := middleware.RequestIDFromContext(ctx)
	traceID := middleware.TraceIDFromContext(ctx)

	person, err := a.Store.Persons().GetActiveByEmail(ctx, r.Email)
	if err != nil {
		err = notFoundAs(err, domain.ErrUserNotAuthorized)
		slog.Warn("login rejected", "reason", "unknown or inactive person", "request_id", reqID, "trace_id", traceID)
		return nil, err
	}
	if !a.PasswordService.Compare(r.Password, person.PasswordHash) {
		slog.Warn("login rejected", "reason", "password mismatch", "person_id", person.ID, "request_id", reqID, "trace_id", traceID)
		return nil, domain.ErrInvalidPassword
	}

	res, err := a.issue(ctx, person, "login")
	if err != nil {
		return nil, err
	}
	slog.Info("login succeeded", "person_id", person.ID, "request_id", reqID, "trace_id", traceID)
	return res, nil
}

// Refresh mints a new pair from a valid token of a still-active person. The
// presented token stays valid until it expires.
func (a *AuthServiceImpl) Refresh(ctx context.Context, r dto.RefreshRequest) (*dto.TokenResponse, error) {
	reqID := middleware.RequestIDFromContext(ctx)
	traceID := middleware.TraceIDFromContext(ctx)

	payload, err := a.TService.Verify(ctx, r.RefreshToken)
	if err != nil {
		metrics.TokensIssuedTotal.WithLabelValues("refresh", "failure").Inc()
		slog.Warn("refresh rejected", "error", err, "request_id", reqID, "trace_id", traceID)
		return nil, domain.Unauthorized(jwtsigner.Reason(err))
	}

	person, err := a.Store.Persons().GetActiveByID(ctx, payload.Sub)
	if err != nil {
		metrics.TokensIssuedTotal.WithLabelValues("refresh", "failure").Inc()
		slog.Warn("refresh rejected", "reason", "person not found", "person_id", payload.Sub, "request_id", reqID, "trace_id", traceID)
		return nil, notFoundAs(err, domain.ErrRefreshUserMissing)
	}

	res, err := a.issue(ctx, person, "refresh")
	if err != nil {
		return nil, err
	}
	slog.Info("tokens refreshed", "person_id", person.ID, "request_id", reqID, "trace_id", traceID)
	return res, nil
}

func (a *AuthServiceImpl) issue(ctx context.Context, person *domain.Person, flow string) (*dto.TokenResponse, error) {
	res, err := a.TService.Issue(ctx, person)
	metrics.TokensIssuedTotal.WithLabelValues(flow, metrics.Result(err)).Inc()
	return res, err
}
