package domain

import "time"

type Person struct {
	ID           PersonID  `gorm:"primaryKey;autoIncrement" json:"id"`
	Email        string    `gorm:"type:varchar(255);not null;uniqueIndex:ux_person_email" json:"email"`
	PasswordHash string    `gorm:"type:varchar(100);not null" json:"passwordHash"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
	Picture      string    `gorm:"type:varchar(255);not null;default:''" json:"picture"`
	CreatedAt    time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt    time.Time `gorm:"not null" json:"updatedAt"`
}

func (Person) TableName() string { return "person" }

// PersonRef is the public slice of a Person embedded in message payloads.
type PersonRef struct {
	ID   PersonID `json:"id"`
	Name string   `json:"name"`
}

func (p *Person) Ref() PersonRef {
	return PersonRef{ID: p.ID, Name: p.Name}
}
