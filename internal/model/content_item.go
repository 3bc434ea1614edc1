package model

import (
	"time"

	"github.com/google/uuid"
)

// Audience selects who a content item is fanned out to.
type Audience string

const (
	AudienceAll      Audience = "all"
	AudienceTeachers Audience = "teachers"
	AudienceParents  Audience = "parents"
)

func (a Audience) Valid() bool {
	return a == AudienceAll || a == AudienceTeachers || a == AudienceParents
}

// Content kinds double as notification categories.
const (
	KindAnnouncement = "announcement"
	KindActivity     = "activity"
	KindLostFound    = "lost_found"
)

type ContentItem struct {
	ID         uuid.UUID  `json:"id"`
	Kind       string     `json:"kind"`
	Title      string     `json:"title"`
	Body       string     `json:"body"`
	Audience   Audience   `json:"audience"`
	PostedBy   uuid.UUID  `json:"posted_by"` // attribution only, not ownership
	ScheduleAt *time.Time `json:"schedule_at"`
	ExpireAt   *time.Time `json:"expire_at"`
	Completed  bool       `json:"completed"`
	Pinned     bool       `json:"pinned"`
	PinnedAt   *time.Time `json:"pinned_at"`
	CreatedAt  time.Time  `json:"created_at"`
}
