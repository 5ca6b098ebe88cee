package service

import (
	"context"

	"nexus-api/internal/domain"
	"nexus-api/internal/dto"
)

type TokenService interface {
	Issue(ctx context.Context, person *domain.Person) (*dto.TokenResponse, error)
	// Verify returns the raw verification error so callers decide how much
	// of it to reveal.
	Verify(ctx context.Context, raw string) (*dto.TokenPayload, error)
}
