package impl

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"nexus-api/internal/domain"
	"nexus-api/internal/dto"
	"nexus-api/internal/jwtsigner"
	"nexus-api/internal/observability/middleware"

	"github.com/golang-jwt/jwt/v5"
)

type TokenConfig struct {
	Issuer     string
	Audience   string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	SigningKey string // HS256 secret
}

type TokenServiceImpl struct {
	cfg    TokenConfig
	signer *jwtsigner.Signer
	now    func() time.Time
}

func NewTokenServiceHS256(cfg TokenConfig) *TokenServiceImpl {
	return &TokenServiceImpl{
		cfg:    cfg,
		signer: jwtsigner.New(cfg.SigningKey, cfg.Issuer, cfg.Audience),
		now:    time.Now,
	}
}

// Issue signs an access token carrying the e-mail and a refresh token carrying
// the issue time in milliseconds, so two refresh tokens never collide.
func (t *TokenServiceImpl) Issue(ctx context.Context, person *domain.Person) (*dto.TokenResponse, error) {
	now := t.now().UTC()
	sub := strconv.FormatInt(person.ID, 10)

	access, err := t.signer.Sign(sub, t.cfg.AccessTTL, now, jwtsigner.Claims{Email: person.Email})
	if err != nil {
		return nil, err
	}
	refresh, err := t.signer.Sign(sub, t.cfg.RefreshTTL, now, jwtsigner.Claims{Timestamp: now.UnixMilli()})
	if err != nil {
		return nil, err
	}

	slog.Debug("signed token pair", "person_id", person.ID,
		"request_id", middleware.RequestIDFromContext(ctx), "trace_id", middleware.TraceIDFromContext(ctx))

	return &dto.TokenResponse{AccessToken: access, RefreshToken: refresh}, nil
}

func (t *TokenServiceImpl) Verify(_ context.Context, raw string) (*dto.TokenPayload, error) {
	claims, err := t.signer.Verify(raw)
	if err != nil {
		return nil, err
	}
	sub, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: subject %q is not a person id", jwt.ErrTokenMalformed, claims.Subject)
	}
	payload := &dto.TokenPayload{
		Sub:    sub,
		Email:  claims.Email,
		Issuer: claims.Issuer,
	}
	if len(claims.Audience) > 0 {
		payload.Audience = claims.Audience[0]
	}
	if claims.IssuedAt != nil {
		payload.IssuedAt = claims.IssuedAt.Unix()
	}
	if claims.ExpiresAt != nil {
		payload.ExpiresAt = claims.ExpiresAt.Unix()
	}
	return payload, nil
}
