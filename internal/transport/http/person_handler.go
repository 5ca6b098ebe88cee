package http

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"regexp"

	"nexus-api/internal/domain"
	"nexus-api/internal/dto"
	"nexus-api/internal/httpx"
	obsmw "nexus-api/internal/observability/middleware"
	"nexus-api/internal/service"
)

const (
	maxPictureSize = 10 << 20
	pictureField   = "file"
)

var pictureContentType = regexp.MustCompile(`^image/(jpeg|jpg|png)$`)

type personHandler struct {
	persons service.PersonService
}

func (h *personHandler) create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePersonRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	person, err := h.persons.Create(r.Context(), req)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, person)
}

func (h *personHandler) list(w http.ResponseWriter, r *http.Request) {
	page, err := dto.PaginationFromQuery(r.URL.Query())
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	persons, err := h.persons.FindAll(r.Context(), page)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, persons)
}

func (h *personHandler) get(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	person, err := h.persons.FindOne(r.Context(), id)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, person)
}

func (h *personHandler) update(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	var req dto.UpdatePersonRequest
	if err := decodeJSON(r, &req); err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	person, err := h.persons.Update(r.Context(), id, req, callerID(r))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, person)
}

func (h *personHandler) remove(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	person, err := h.persons.Remove(r.Context(), id, callerID(r))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusOK, person)
}

// uploadPicture accepts a multipart "file" part holding a jpeg or png of at
// most 10 MiB. The lower size bound is enforced by the service.
func (h *personHandler) uploadPicture(w http.ResponseWriter, r *http.Request) {
	upload, err := readPicture(w, r)
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	person, err := h.persons.UploadPicture(r.Context(), upload, callerID(r))
	if err != nil {
		httpx.WriteError(w, r, err)
		return
	}
	httpx.WriteJSON(w, http.StatusCreated, person)
}

func readPicture(w http.ResponseWriter, r *http.Request) (dto.PictureUpload, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxPictureSize+1<<20)
	if err := r.ParseMultipartForm(maxPictureSize); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return dto.PictureUpload{}, domain.ErrPictureInvalid
		}
		slog.Debug("parse multipart", "error", err,
			"request_id", obsmw.RequestIDFromContext(r.Context()), "trace_id", obsmw.TraceIDFromContext(r.Context()))
		return dto.PictureUpload{}, domain.ErrPictureMissing
	}
	file, header, err := r.FormFile(pictureField)
	if err != nil {
		return dto.PictureUpload{}, domain.ErrPictureMissing
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !pictureContentType.MatchString(contentType) || header.Size > maxPictureSize {
		return dto.PictureUpload{}, domain.ErrPictureInvalid
	}
	data, err := io.ReadAll(file)
	if err != nil {
		return dto.PictureUpload{}, err
	}
	return dto.PictureUpload{
		Filename:    header.Filename,
		ContentType: contentType,
		Size:        int64(len(data)),
		Data:        data,
	}, nil
}
