package dto

import (
	"time"

	"github.com/SchoolApp/content-service/internal/model"
)

type CreateContent struct {
	Kind       string         `json:"kind"`
	Title      string         `json:"title"`
	Body       string         `json:"body"`
	Audience   model.Audience `json:"audience"`
	ScheduleAt *time.Time     `json:"schedule_at"`
	ExpireAt   *time.Time     `json:"expire_at"`
}

type SubmitContent struct {
	Kind       string         `json:"kind"`
	Title      string         `json:"title"`
	Body       string         `json:"body"`
	Audience   model.Audience `json:"audience"`
	ScheduleAt *time.Time     `json:"schedule_at"`
	ExpireAt   *time.Time     `json:"expire_at"`
}

type UpdateContent struct {
	Title *string `json:"title"`
	Body  *string `json:"body"`
}

type ApproveSubmission struct {
	EditedBody *string `json:"edited_body"`
}
