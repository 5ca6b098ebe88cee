package http

import (
	"net/http"

	"nexus-api/internal/dto"
	"nexus-api/internal/httpx"
	"nexus-api/internal/service"
)

type messageHandler struct {
	messages service.MessageService
}

func (h *messageHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	msg, err := h.messages.Create(r.Context(), req, callerID(r))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, msg)
}

func (h *messageHandler) list(w http.ResponseWriter, r *http.Request) {
	page, err := dto.PaginationFromQuery(r.URL.Query())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	msgs, err := h.messages.FindAll(r.Context(), page)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, msgs)
}

func (h *messageHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	msg, err := h.messages.FindOne(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, msg)
}

func (h *messageHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	var req dto.UpdateMessageRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	msg, err := h.messages.Update(r.Context(), id, req, callerID(r))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, msg)
}

func (h *messageHandler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	msg, err := h.messages.Remove(r.Context(), id, callerID(r))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, msg)
}
