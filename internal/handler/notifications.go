package handler

import (
	"net/http"
	"strconv"

	"github.com/SchoolApp/content-service/internal/model"
)

func (h *Handler) notificationsFeed(user *model.User, w http.ResponseWriter, r *http.Request) {
	if user == nil {
		return
	}

	limit, err0 := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, err1 := strconv.Atoi(r.URL.Query().Get("offset"))
	if err0 != nil || err1 != nil {
		h.Respond(w, Resp{"error": "'limit' and 'offset' parameters must be set and be numbers."}, http.StatusBadRequest)
		return
	}

	feed, err := h.services.Views.Feed(r.Context(), user, limit, offset)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusInternalServerError)
		return
	}

	h.Respond(w, feed, http.StatusOK)
}

func (h *Handler) notificationsMarkRead(user *model.User, w http.ResponseWriter, r *http.Request) {
	if user == nil {
		return
	}

	notificationIDString := r.PathValue("nId")
	if notificationIDString == "" {
		return
	}
	notificationID, err := strconv.Atoi(notificationIDString)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	if err := h.services.Views.MarkRead(r.Context(), user.ID, int64(notificationID)); err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusInternalServerError)
		return
	}

	h.Respond(w, Resp{}, http.StatusOK)
}

func (h *Handler) notificationsMarkAllRead(user *model.User, w http.ResponseWriter, r *http.Request) {
	if user == nil {
		return
	}

	if err := h.services.Views.MarkAllRead(r.Context(), user.ID); err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusInternalServerError)
		return
	}

	h.Respond(w, Resp{}, http.StatusOK)
}

func (h *Handler) notificationsArchive(user *model.User, w http.ResponseWriter, r *http.Request) {
	if user == nil {
		return
	}

	notificationIDString := r.PathValue("nId")
	if notificationIDString == "" {
		return
	}
	notificationID, err := strconv.Atoi(notificationIDString)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	if err := h.services.Views.Archive(r.Context(), user.ID, int64(notificationID)); err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusInternalServerError)
		return
	}

	h.Respond(w, Resp{}, http.StatusOK)
}
