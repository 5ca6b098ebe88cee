package service

import (
	"context"

	"nexus-api/internal/domain"
	"nexus-api/internal/dto"
)

type MessageService interface {
	Create(ctx context.Context, req dto.CreateMessageRequest, callerID domain.PersonID) (*dto.MessageResponse, error)
	FindAll(ctx context.Context, page dto.Pagination) ([]dto.MessageResponse, error)
	FindOne(ctx context.Context, id domain.MessageID) (*dto.MessageResponse, error)
	Update(ctx context.Context, id domain.MessageID, req dto.UpdateMessageRequest, callerID domain.PersonID) (*dto.MessageResponse, error)
	Remove(ctx context.Context, id domain.MessageID, callerID domain.PersonID) (*dto.MessageResponse, error)
}
