package impl

import (
	"context"
	"errors"
	"log/slog"

	"nexus-api/internal/domain"
	"nexus-api/internal/dto"
	"nexus-api/internal/observability/metrics"
	"nexus-api/internal/observability/middleware"
	"nexus-api/internal/picture"
	"nexus-api/internal/service"
	"nexus-api/internal/store"
)

// MinPictureSize is the smallest accepted upload in bytes.
const MinPictureSize = 1024

type PersonServiceImpl struct {
	Store           dataStore
	PasswordService service.PasswordService
	Pictures        picture.Storage
}

func NewPersonServiceImpl(store *store.Store, passwordService service.PasswordService, pictures picture.Storage) *PersonServiceImpl {
	return &PersonServiceImpl{
		Store:           gormStoreAdapter{store: store},
		PasswordService: passwordService,
		Pictures:        pictures,
	}
}

func (p *PersonServiceImpl) Create(ctx context.Context, r dto.CreatePersonRequest) (_ *domain.Person, err error) {
	defer func() { metrics.RegistrationsTotal.WithLabelValues(metrics.Result(err)).Inc() }()

	hash, err := p.PasswordService.Hash(r.Password)
	if err != nil {
		return nil, err
	}
	person := &domain.Person{
		Email:        r.Email,
		PasswordHash: hash,
		Name:         r.Name,
		Active:       true,
	}
	if err := p.Store.Persons().Create(ctx, person); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	slog.Info("person created", "person_id", person.ID,
		"request_id", middleware.RequestIDFromContext(ctx), "trace_id", middleware.TraceIDFromContext(ctx))
	return person, nil
}

// FindAll lists persons by ascending id. An empty page is reported as not found.
func (p *PersonServiceImpl) FindAll(ctx context.Context, page dto.Pagination) ([]domain.Person, error) {
	persons, err := p.Store.Persons().List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	if len(persons) == 0 {
		return nil, domain.ErrPersonsNotFound
	}
	return persons, nil
}

func (p *PersonServiceImpl) FindOne(ctx context.Context, id domain.PersonID) (*domain.Person, error) {
	person, err := p.Store.Persons().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrPersonNotFound)
	}
	return person, nil
}

// Update applies the supplied fields. Only the person themselves may do it.
func (p *PersonServiceImpl) Update(ctx context.Context, id domain.PersonID, r dto.UpdatePersonRequest, callerID domain.PersonID) (*domain.Person, error) {
	var hash string
	if r.Password != nil {
		h, err := p.PasswordService.Hash(*r.Password)
		if err != nil {
			return nil, err
		}
		hash = h
	}

	person, err := p.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if person.ID != callerID {
		p.warnDenied(ctx, "update", id, callerID)
		return nil, domain.ErrPersonUpdateDenied
	}

	if r.Name != nil {
		person.Name = *r.Name
	}
	if r.Email != nil {
		person.Email = *r.Email
	}
	if hash != "" {
		person.PasswordHash = hash
	}
	if err := p.Store.Persons().Update(ctx, person); err != nil {
		if errors.Is(err, store.ErrDuplicateKey) {
			return nil, domain.ErrEmailTaken
		}
		return nil, err
	}
	slog.Info("person updated", "person_id", person.ID,
		"request_id", middleware.RequestIDFromContext(ctx), "trace_id", middleware.TraceIDFromContext(ctx))
	return person, nil
}

// Remove deletes the person and returns the record as it was.
func (p *PersonServiceImpl) Remove(ctx context.Context, id domain.PersonID, callerID domain.PersonID) (*domain.Person, error) {
	person, err := p.FindOne(ctx, id)
	if err != nil {
		return nil, err
	}
	if person.ID != callerID {
		p.warnDenied(ctx, "delete", id, callerID)
		return nil, domain.ErrPersonDeleteDenied
	}
	if err := p.Store.Persons().Delete(ctx, person.ID); err != nil {
		return nil, notFoundAs(err, domain.ErrPersonNotFound)
	}
	slog.Info("person deleted", "person_id", person.ID,
		"request_id", middleware.RequestIDFromContext(ctx), "trace_id", middleware.TraceIDFromContext(ctx))
	return person, nil
}

// UploadPicture stores the file as "{callerID}.{ext}" and records the name on
// the caller's person record. Content type and upper size bound are checked
// by the HTTP layer.
func (p *PersonServiceImpl) UploadPicture(ctx context.Context, file dto.PictureUpload, callerID domain.PersonID) (*domain.Person, error) {
	if file.Size < MinPictureSize {
		return nil, domain.ErrPictureTooSmall
	}
	person, err := p.FindOne(ctx, callerID)
	if err != nil {
		return nil, err
	}

	name := picture.FileName(callerID, file.Filename)
	if err := p.Pictures.Save(ctx, name, file.Data, file.ContentType); err != nil {
		return nil, err
	}

	person.Picture = name
	if err := p.Store.Persons().Update(ctx, person); err != nil {
		return nil, err
	}
	slog.Info("picture uploaded", "person_id", person.ID, "file", name, "bytes", file.Size,
		"request_id", middleware.RequestIDFromContext(ctx), "trace_id", middleware.TraceIDFromContext(ctx))
	return person, nil
}

func (p *PersonServiceImpl) warnDenied(ctx context.Context, op string, id, callerID domain.PersonID) {
	slog.Warn("person ownership check failed", "op", op, "person_id", id, "caller_id", callerID,
		"request_id", middleware.RequestIDFromContext(ctx), "trace_id", middleware.TraceIDFromContext(ctx))
}
