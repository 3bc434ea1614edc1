package model

import (
	"time"

	"github.com/google/uuid"
)

// RecycleEntry is a soft-deleted copy of a content item. ItemID keeps the
// original id for cascade archival; a restore always mints a fresh id.
type RecycleEntry struct {
	ID         uuid.UUID  `json:"id"`
	ItemID     uuid.UUID  `json:"item_id"`
	Kind       string     `json:"kind"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	Audience   Audience   `json:"audience"`
	PostedBy   uuid.UUID  `json:"posted_by"`
	ScheduleAt *time.Time `json:"schedule_at"`
	ExpireAt   *time.Time `json:"expire_at"`
	Completed  bool       `json:"completed"`
	Pinned     bool       `json:"pinned"`
	PinnedAt   *time.Time `json:"pinned_at"`
	CreatedAt  time.Time  `json:"created_at"`
	DeletedAt  time.Time  `json:"deleted_at"`
}
