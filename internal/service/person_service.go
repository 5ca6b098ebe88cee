package service

import (
	"context"

	"nexus-api/internal/domain"
	"nexus-api/internal/dto"
)

type PersonService interface {
	Create(ctx context.Context, req dto.CreatePersonRequest) (*domain.Person, error)
	FindAll(ctx context.Context, page dto.Pagination) ([]domain.Person, error)
	FindOne(ctx context.Context, id domain.PersonID) (*domain.Person, error)
	Update(ctx context.Context, id domain.PersonID, req dto.UpdatePersonRequest, callerID domain.PersonID) (*domain.Person, error)
	Remove(ctx context.Context, id domain.PersonID, callerID domain.PersonID) (*domain.Person, error)
	UploadPicture(ctx context.Context, file dto.PictureUpload, callerID domain.PersonID) (*domain.Person, error)
}
