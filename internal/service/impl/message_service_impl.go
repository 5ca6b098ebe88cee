package impl

import (
	"context"
	"log/slog"
	"time"

	"nexus-api/internal/domain"
	"nexus-api/internal/dto"
	"nexus-api/internal/observability/metrics"
	"nexus-api/internal/observability/middleware"
	"nexus-api/internal/store"
)

type MessageServiceImpl struct {
	Store dataStore
	Now   func() time.Time
}

func NewMessageServiceImpl(store *store.Store) *MessageServiceImpl {
	return &MessageServiceImpl{
		Store: gormStoreAdapter{store: store},
		Now:   time.Now,
	}
}

// Create resolves sender then recipient and stores an unread message. The
// lookups and insert share one transaction so neither party can vanish
// between them.
func (m *MessageServiceImpl) Create(ctx context.Context, r dto.CreateMessageRequest, callerID domain.PersonID) (_ *dto.MessageResponse, err error) {
	defer func() { metrics.MessagesTotal.WithLabelValues("create", metrics.Result(err)).Inc() }()

	var msg domain.Message
	err = m.Store.WithTx(ctx, func(tx dataStore) error {
		from, err := tx.Persons().GetByID(ctx, callerID)
		if err != nil {
			return notFoundAs(err, domain.ErrSenderNotFound)
		}
		to, err := tx.Persons().GetByID(ctx, r.ToID)
		if err != nil {
			return notFoundAs(err, domain.ErrRecipientNotFound)
		}
		msg = domain.Message{
			Text:   r.Text,
			Read:   false,
			Date:   m.Now().UTC(),
			FromID: from.ID,
			ToID:   to.ID,
		}
		if err := tx.Messages().Create(ctx, &msg); err != nil {
			return err
		}
		msg.From = *from
		msg.To = *to
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.Info("message created", "message_id", msg.ID, "from", msg.FromID, "to", msg.ToID,
		"request_id", middleware.RequestIDFromContext(ctx), "trace_id", middleware.TraceIDFromContext(ctx))
	res := dto.NewMessageResponse(&msg)
	return &res, nil
}

// FindAll lists messages newest first. An empty page is reported as not found.
func (m *MessageServiceImpl) FindAll(ctx context.Context, page dto.Pagination) ([]dto.MessageResponse, error) {
	msgs, err := m.Store.Messages().List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	if len(msgs) == 0 {
		return nil, domain.ErrMessagesNotFound
	}
	return dto.NewMessageResponses(msgs), nil
}

func (m *MessageServiceImpl) FindOne(ctx context.Context, id domain.MessageID) (*dto.MessageResponse, error) {
	msg, err := m.find(ctx, id)
	if err != nil {
		return nil, err
	}
	res := dto.NewMessageResponse(msg)
	return &res, nil
}

// Update lets the sender edit text or the read flag.
func (m *MessageServiceImpl) Update(ctx context.Context, id domain.MessageID, r dto.UpdateMessageRequest, callerID domain.PersonID) (_ *dto.MessageResponse, err error) {
	defer func() { metrics.MessagesTotal.WithLabelValues("update", metrics.Result(err)).Inc() }()

	msg, err := m.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !msg.IsSentBy(callerID) {
		m.warnDenied(ctx, "update", id, callerID)
		return nil, domain.ErrMessageUpdateDenied
	}
	if r.Text != nil {
		msg.Text = *r.Text
	}
	if r.Read != nil {
		msg.Read = *r.Read
	}
	if err := m.Store.Messages().Update(ctx, msg); err != nil {
		return nil, err
	}
	res := dto.NewMessageResponse(msg)
	return &res, nil
}

// Remove deletes a message authored by the caller and returns it as it was.
func (m *MessageServiceImpl) Remove(ctx context.Context, id domain.MessageID, callerID domain.PersonID) (_ *dto.MessageResponse, err error) {
	defer func() { metrics.MessagesTotal.WithLabelValues("delete", metrics.Result(err)).Inc() }()

	msg, err := m.find(ctx, id)
	if err != nil {
		return nil, err
	}
	if !msg.IsSentBy(callerID) {
		m.warnDenied(ctx, "delete", id, callerID)
		return nil, domain.ErrMessageDeleteDenied
	}
	if err := m.Store.Messages().Delete(ctx, msg.ID); err != nil {
		return nil, notFoundAs(err, domain.ErrMessageNotFound)
	}
	res := dto.NewMessageResponse(msg)
	return &res, nil
}

func (m *MessageServiceImpl) find(ctx context.Context, id domain.MessageID) (*domain.Message, error) {
	msg, err := m.Store.Messages().GetByID(ctx, id)
	if err != nil {
		return nil, notFoundAs(err, domain.ErrMessageNotFound)
	}
	return msg, nil
}

func (m *MessageServiceImpl) warnDenied(ctx context.Context, op string, id domain.MessageID, callerID domain.PersonID) {
	slog.Warn("message ownership check failed", "op", op, "message_id", id, "caller_id", callerID,
		"request_id", middleware.RequestIDFromContext(ctx), "trace_id", middleware.TraceIDFromContext(ctx))
}
