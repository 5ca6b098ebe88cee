package store

import (
	"context"

	"nexus-api/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MessageStore struct{ db *gorm.DB }

func (s *Store) Messages() *MessageStore { return &MessageStore{db: s.DB} }

// participants loads only id and name of the sender and recipient.
func participants(db *gorm.DB) *gorm.DB {
	narrow := func(tx *gorm.DB) *gorm.DB { return tx.Select("id", "name") }
	return db.Preload("From", narrow).Preload("To", narrow)
}

func (m *MessageStore) Create(ctx context.Context, msg *domain.Message) error {
	return translate(m.db.WithContext(ctx).Omit(clause.Associations).Create(msg).Error)
}

// List returns messages newest first. A non-positive limit means no limit.
func (m *MessageStore) List(ctx context.Context, limit, offset int) ([]domain.Message, error) {
	var msgs []domain.Message
	tx := participants(m.db.WithContext(ctx)).Order("id desc").Offset(offset)
	if limit > 0 {
		tx = tx.Limit(limit)
	}
	if err := tx.Find(&msgs).Error; err != nil {
		return nil, translate(err)
	}
	return msgs, nil
}

func (m *MessageStore) GetByID(ctx context.Context, id domain.MessageID) (*domain.Message, error) {
	var msg domain.Message
	if err := participants(m.db.WithContext(ctx)).First(&msg, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &msg, nil
}

func (m *MessageStore) Update(ctx context.Context, msg *domain.Message) error {
	return translate(m.db.WithContext(ctx).Omit(clause.Associations).Save(msg).Error)
}

func (m *MessageStore) Delete(ctx context.Context, id domain.MessageID) error {
	res := m.db.WithContext(ctx).Delete(&domain.Message{}, "id = ?", id)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrRecordNotFound
	}
	return nil
}
