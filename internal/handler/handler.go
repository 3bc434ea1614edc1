package handler

import (
	"encoding/json"
	"net/http"

	"github.com/SchoolApp/content-service/internal/model"
	"github.com/SchoolApp/content-service/internal/service"
)

type Resp map[string]interface{}

type Handler struct {
	services *service.Service
}

func New(services *service.Service) *Handler {
	return &Handler{
		services: services,
	}
}

func (h *Handler) SetupRoutes() http.Handler {
	mux := http.NewServeMux()

	// Notifications
	mux.HandleFunc("GET /api/v1/notifications", h.withAuth(h.notificationsFeed))
	mux.HandleFunc("POST /api/v1/notifications/{nId}/read", h.withAuth(h.notificationsMarkRead))
	mux.HandleFunc("POST /api/v1/notifications/read-all", h.withAuth(h.notificationsMarkAllRead))
	mux.HandleFunc("POST /api/v1/notifications/{nId}/archive", h.withAuth(h.notificationsArchive))
	mux.HandleFunc("GET /api/v1/notifications/ws", h.notificationsWS)

	// Content
	mux.HandleFunc("GET /api/v1/content", h.withAuth(h.contentList))
	mux.HandleFunc("POST /api/v1/content", h.withAdmin(h.contentCreate))
	mux.HandleFunc("PATCH /api/v1/content/{id}", h.withAdmin(h.contentUpdate))
	mux.HandleFunc("POST /api/v1/content/{id}/pin", h.withAdmin(h.contentPin))
	mux.HandleFunc("POST /api/v1/content/{id}/unpin", h.withAdmin(h.contentUnpin))
	mux.HandleFunc("POST /api/v1/content/{id}/complete", h.withAdmin(h.contentComplete))
	mux.HandleFunc("DELETE /api/v1/content/{id}", h.withAdmin(h.contentSoftDelete))

	// Recycle bin
	mux.HandleFunc("GET /api/v1/recycle", h.withAdmin(h.recycleList))
	mux.HandleFunc("POST /api/v1/recycle/{id}/restore", h.withAdmin(h.recycleRestore))
	mux.HandleFunc("DELETE /api/v1/recycle/{id}", h.withAdmin(h.recyclePurge))

	// Moderation
	mux.HandleFunc("POST /api/v1/submissions", h.withAuth(h.submissionsCreate))
	mux.HandleFunc("GET /api/v1/submissions", h.withAdmin(h.submissionsList))
	mux.HandleFunc("POST /api/v1/submissions/{id}/approve", h.withAdmin(h.submissionsApprove))
	mux.HandleFunc("POST /api/v1/submissions/{id}/reject", h.withAdmin(h.submissionsReject))

	return mux
}

func (h *Handler) withAuth(next func(user *model.User, w http.ResponseWriter, r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := h.authMiddleware(r)
		if err != nil {
			h.Respond(w, Resp{"error": err.Error()}, http.StatusUnauthorized)
			return
		}

		next(user, w, r)
	}
}

func (h *Handler) withAdmin(next func(admin *model.User, w http.ResponseWriter, r *http.Request)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		admin, err := h.adminMiddleware(r)
		if err != nil {
			h.Respond(w, Resp{"error": err.Error()}, http.StatusUnauthorized)
			return
		}

		next(admin, w, r)
	}
}

func (h *Handler) Respond(w http.ResponseWriter, resp any, statusCode int) {
	respJSON, _ := json.Marshal(resp)
	w.WriteHeader(statusCode)
	w.Write(respJSON)
}
