package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/SchoolApp/content-service/internal/dto"
	"github.com/SchoolApp/content-service/internal/model"
	"github.com/SchoolApp/content-service/internal/service"
)

func (h *Handler) submissionsCreate(user *model.User, w http.ResponseWriter, r *http.Request) {
	if user == nil {
		return
	}

	var input dto.SubmitContent
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	sub, err := h.services.Moderation.Submit(r.Context(), input, user.ID)
	if errors.Is(err, service.ErrInvalidContent) || errors.Is(err, service.ErrInvalidSchedule) {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusInternalServerError)
		return
	}

	h.Respond(w, sub, http.StatusCreated)
}

func (h *Handler) submissionsList(admin *model.User, w http.ResponseWriter, r *http.Request) {
	if admin == nil {
		return
	}

	subs, err := h.services.Moderation.ListPending(r.Context())
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusInternalServerError)
		return
	}

	h.Respond(w, subs, http.StatusOK)
}

func (h *Handler) submissionsApprove(admin *model.User, w http.ResponseWriter, r *http.Request) {
	if admin == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	// A body is optional: when it carries edited_body the approval
	// substitutes it for the submitted one.
	var input dto.ApproveSubmission
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil && err != io.EOF {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	var item *model.ContentItem
	if input.EditedBody != nil {
		item, err = h.services.Moderation.EditAndApprove(r.Context(), id, *input.EditedBody)
	} else {
		item, err = h.services.Moderation.Approve(r.Context(), id)
	}
	if errors.Is(err, service.ErrSubmissionNotFound) {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusNotFound)
		return
	}
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusInternalServerError)
		return
	}

	h.Respond(w, item, http.StatusCreated)
}

func (h *Handler) submissionsReject(admin *model.User, w http.ResponseWriter, r *http.Request) {
	if admin == nil {
		return
	}

	id, err := pathID(r)
	if err != nil {
		h.Respond(w, Resp{"error": err.Error()}, http.StatusBadRequest)
		return
	}

	if err := h.services.Moderation.Reject(r.Context(), id); err != nil {
		if errors.Is(err, service.ErrSubmissionNotFound) {
			h.Respond(w, Resp{"error": err.Error()}, http.StatusNotFound)
			return
		}
		h.Respond(w, Resp{"error": err.Error()}, http.StatusInternalServerError)
		return
	}

	h.Respond(w, Resp{}, http.StatusOK)
}
