package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/SchoolApp/content-service/internal/model"
	"github.com/SchoolApp/content-service/internal/service"
)

func (h *Handler) recycleList(admin *model.User, w http.ResponseWriter, r *http.Request) {
	if admin == nil {
		return
	}

	entries, err := h.services.Recycle.ListEntries(r.Context())
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusInternalServerError)
		return
	}

	h.Respond(w, entries, http.StatusOK)
}

func (h *Handler) recycleRestore(admin *model.User, w http.ResponseWriter, r *http.Request) {
	if admin == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	item, err := h.services.Recycle.Restore(r.Context(), id, time.Now())
	if errors.Is(err, service.ErrEntryNotFound) {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusNotFound)
		return
	}
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusInternalServerError)
		return
	}

	h.Respond(w, item, http.StatusCreated)
}

func (h *Handler) recyclePurge(admin *model.User, w http.ResponseWriter, r *http.Request) {
	if admin == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	if err := h.services.Recycle.PermanentlyDelete(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrEntryNotFound) {
			h.Respond(w, Resp{"error": err.Error()}, http.StatusNotFound)
			return
		}
		h.Respond(w, Resp{"error": err.Error()}, http.StatusInternalServerError)
		return
	}

	h.Respond(w, Resp{}, http.StatusOK)
}
