package dto

import (
	"testing"
	"time"

	"nexus-api/internal/domain"
)

func TestNewMessageResponseNarrowsParticipants(t *testing.T) {
	msg := &domain.Message{
		ID:     3,
		Text:   "olá",
		Date:   time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC),
		FromID: 1,
		From:   domain.Person{ID: 1, Name: "Ana", Email: "ana@example.com", PasswordHash: "h"},
		ToID:   2,
		To:     domain.Person{ID: 2, Name: "Bia", Email: "bia@example.com", PasswordHash: "h"},
	}
	res := NewMessageResponse(msg)
	if res.From != (domain.PersonRef{ID: 1, Name: "Ana"}) || res.To != (domain.PersonRef{ID: 2, Name: "Bia"}) {
		t.Fatalf("unexpected participants from=%+v to=%+v", res.From, res.To)
	}
	if res.ID != 3 || res.Text != "olá" || res.Read {
		t.Fatalf("unexpected response %+v", res)
	}
}
