package model

import (
	"time"

	"github.com/google/uuid"
)

// PendingSubmission is content awaiting moderation. Approve and Reject are
// terminal: the row is deleted either way and no history is kept.
type PendingSubmission struct {
	ID          uuid.UUID  `json:"id"`
	Kind        string     `json:"kind"`
	Title       string     `json:"title"`
	Body        string     `json:"body"`
	Audience    Audience   `json:"audience"`
	ScheduleAt  *time.Time `json:"schedule_at"`
	ExpireAt    *time.Time `json:"expire_at"`
	SubmittedBy uuid.UUID  `json:"submitted_by"`
	SubmittedAt time.Time  `json:"submitted_at"`
}
