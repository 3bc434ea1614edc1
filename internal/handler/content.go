package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/SchoolApp/content-service/internal/dto"
	"github.com/SchoolApp/content-service/internal/model"
	"github.com/SchoolApp/content-service/internal/service"
	"github.com/google/uuid"
)

func (h *Handler) contentList(user *model.User, w http.ResponseWriter, r *http.Request) {
	if user == nil {
		return
	}

	list, err := h.services.Content.List(r.Context(), time.Now())
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusInternalServerError)
		return
	}

	h.Respond(w, list, http.StatusOK)
}

func (h *Handler) contentCreate(admin *model.User, w http.ResponseWriter, r *http.Request) {
	if admin == nil {
		return
	}

	var input dto.CreateContent
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	item, err := h.services.Content.Create(r.Context(), input, admin.ID)
	if errors.Is(err, service.ErrInvalidContent) || errors.Is(err, service.ErrInvalidSchedule) {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusInternalServerError)
		return
	}

	h.Respond(w, item, http.StatusCreated)
}

func (h *Handler) contentUpdate(admin *model.User, w http.ResponseWriter, r *http.Request) {
	if admin == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	var input dto.UpdateContent
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	if err := h.services.Content.Update(r.Context(), id, input); err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusInternalServerError)
		return
	}

	h.Respond(w, Resp{}, http.StatusOK)
}

func (h *Handler) contentPin(admin *model.User, w http.ResponseWriter, r *http.Request) {
	h.setPinned(admin, w, r, true)
}

func (h *Handler) contentUnpin(admin *model.User, w http.ResponseWriter, r *http.Request) {
	h.setPinned(admin, w, r, false)
}

func (h *Handler) setPinned(admin *model.User, w http.ResponseWriter, r *http.Request, pinned bool) {
	if admin == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	if err := h.services.Content.SetPinned(r.Context(), id, pinned, time.Now()); err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusInternalServerError)
		return
	}

	h.Respond(w, Resp{}, http.StatusOK)
}

func (h *Handler) contentComplete(admin *model.User, w http.ResponseWriter, r *http.Request) {
	if admin == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	if err := h.services.Content.MarkCompleted(r.Context(), id); err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusInternalServerError)
		return
	}

	h.Respond(w, Resp{}, http.StatusOK)
}

func (h *Handler) contentSoftDelete(admin *model.User, w http.ResponseWriter, r *http.Request) {
	if admin == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	entry, err := h.services.Recycle.SoftDelete(r.Context(), id, time.Now())
	if errors.Is(err, service.ErrItemNotFound) {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusNotFound)
		return
	}
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusInternalServerError)
		return
	}

	h.Respond(w, entry, http.StatusOK)
}

func pathID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		return uuid.Nil, errInvalidID
	}
	return id, nil
}
