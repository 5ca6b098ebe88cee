package dto

import (
	"time"

	"nexus-api/internal/domain"
)

type CreateMessageRequest struct {
	Text string `json:"text" validate:"required,min=3,max=255"`
	ToID int64  `json:"toId" validate:"required,gt=0"`
}

type UpdateMessageRequest struct {
	Text *string `json:"text,omitempty" validate:"omitempty,min=3,max=255"`
	Read *bool   `json:"read,omitempty"`
}

type MessageResponse struct {
	ID        int64            `json:"id"`
	Text      string           `json:"text"`
	Read      bool             `json:"read"`
	Date      time.Time        `json:"date"`
	CreatedAt time.Time        `json:"createdAt"`
	UpdatedAt time.Time        `json:"updatedAt"`
	From      domain.PersonRef `json:"from"`
	To        domain.PersonRef `json:"to"`
}

// NewMessageResponse narrows sender and recipient to their id and name.
func NewMessageResponse(m *domain.Message) MessageResponse {
	return MessageResponse{
		ID:        m.ID,
		Text:      m.Text,
		Read:      m.Read,
		Date:      m.Date,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		From:      m.From.Ref(),
		To:        m.To.Ref(),
	}
}

func NewMessageResponses(msgs []domain.Message) []MessageResponse {
	out := make([]MessageResponse, 0, len(msgs))
	for i := range msgs {
		out = append(out, NewMessageResponse(&msgs[i]))
	}
	return out
}
