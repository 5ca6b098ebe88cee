package impl

import (
	"context"
	"errors"

	"nexus-api/internal/domain"
	"nexus-api/internal/store"
)

type dataStore interface {
	Persons() personStore
	Messages() messageStore
	WithTx(ctx context.Context, fn func(tx dataStore) error) error
}

type personStore interface {
	Create(ctx context.Context, person *domain.Person) error
	List(ctx context.Context, limit, offset int) ([]domain.Person, error)
	GetByID(ctx context.Context, id domain.PersonID) (*domain.Person, error)
	GetActiveByID(ctx context.Context, id domain.PersonID) (*domain.Person, error)
	GetActiveByEmail(ctx context.Context, email string) (*domain.Person, error)
	Update(ctx context.Context, person *domain.Person) error
	Delete(ctx context.Context, id domain.PersonID) error
}

type messageStore interface {
	Create(ctx context.Context, msg *domain.Message) error
	List(ctx context.Context, limit, offset int) ([]domain.Message, error)
	GetByID(ctx context.Context, id domain.MessageID) (*domain.Message, error)
	Update(ctx context.Context, msg *domain.Message) error
	Delete(ctx context.Context, id domain.MessageID) error
}

type gormStoreAdapter struct {
	store *store.Store
}

func (g gormStoreAdapter) Persons() personStore   { return g.store.Persons() }
func (g gormStoreAdapter) Messages() messageStore { return g.store.Messages() }

func (g gormStoreAdapter) WithTx(ctx context.Context, fn func(tx dataStore) error) error {
	if g.store == nil {
		return errors.New("nil store")
	}
	return g.store.WithTx(ctx, func(tx *store.Store) error {
		return fn(gormStoreAdapter{store: tx})
	})
}

// notFoundAs swaps a missing-record error for the domain error of the lookup.
func notFoundAs(err, domainErr error) error {
	if errors.Is(err, store.ErrRecordNotFound) {
		return domainErr
	}
	return err
}
