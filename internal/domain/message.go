package domain

import "time"

type Message struct {
	ID        MessageID `gorm:"primaryKey;autoIncrement"`
	Text      string    `gorm:"type:varchar(255);not null"`
	Read      bool      `gorm:"not null;default:false"`
	Date      time.Time `gorm:"not null"`
	FromID    PersonID  `gorm:"not null;index:idx_message_from"`
	From      Person    `gorm:"foreignKey:FromID;constraint:OnDelete:CASCADE"`
	ToID      PersonID  `gorm:"not null;index:idx_message_to"`
	To        Person    `gorm:"foreignKey:ToID;constraint:OnDelete:CASCADE"`
	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

func (Message) TableName() string { return "message" }

// IsSentBy reports whether personID authored the message.
func (m *Message) IsSentBy(personID PersonID) bool {
	return m.FromID == personID
}
