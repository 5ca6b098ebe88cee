package store

import (
	"context"

	"nexus-api/internal/domain"

	"gorm.io/gorm"
)

type PersonStore struct{ db *gorm.DB }

func (s *Store) Persons() *PersonStore { return &PersonStore{db: s.DB} }

func (p *PersonStore) Create(ctx context.Context, person *domain.Person) error {
	return translate(p.db.WithContext(ctx).Create(person).Error)
}

// List returns persons ordered by ascending id. A non-positive limit means no limit.
func (p *PersonStore) List(ctx context.Context, limit, offset int) ([]domain.Person, error) {
	var persons []domain.Person
	tx := p.db.WithContext(ctx).Order("id asc").Offset(offset)
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if err := tx.Find(&persons).Error; err != nil {
		return nil, translate(err)
	}
	return persons, nil
}

func (p *PersonStore) GetByID(ctx context.Context, id domain.PersonID) (*domain.Person, error) {
	var person domain.Person
	if err := p.db.WithContext(ctx).First(&person, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &person, nil
}

func (p *PersonStore) GetActiveByID(ctx context.Context, id domain.PersonID) (*domain.Person, error) {
	var person domain.Person
	if err := p.db.WithContext(ctx).First(&person, "id = ? AND active = ?", id, true).Error; err != nil {
		return nil, translate(err)
	}
	return &person, nil
}

func (p *PersonStore) GetActiveByEmail(ctx context.Context, email string) (*domain.Person, error) {
	var person domain.Person
	if err := p.db.WithContext(ctx).First(&person, "email = ? AND active = ?", email, true).Error; err != nil {
		return nil, translate(err)
	}
	return &person, nil
}

// Update writes every column of person, including zero values.
func (p *PersonStore) Update(ctx context.Context, person *domain.Person) error {
	return translate(p.db.WithContext(ctx).Save(person).Error)
}

func (p *PersonStore) Delete(ctx context.Context, id domain.PersonID) error {
	res := p.db.WithContext(ctx).Delete(&domain.Person{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
