package model

import (
	"time"

	"github.com/google/uuid"
)

// Notification categories produced outside of content kinds.
const (
	CategoryApproved          = "approved"
	CategoryRejected          = "rejected"
	CategoryClassroomAddition = "classroom_addition"
)

// Archive reasons distinguish a recipient hiding a notification from a
// source-item deletion sweeping its notifications away.
const (
	ArchivedManual  = "manual"
	ArchivedCascade = "cascade"
)

type NotificationRecord struct {
	ID             int64      `json:"id"`
	RecipientID    uuid.UUID  `json:"recipient_id"`
	Title          string     `json:"title"`
	Message        string     `json:"message"`
	Category       string     `json:"category"`
	SourceItemID   *uuid.UUID `json:"source_item_id"`
	Read           bool       `json:"read"`
	Archived       bool       `json:"archived"`
	ArchivedReason string     `json:"archived_reason"`
	CreatedAt      time.Time  `json:"created_at"`
}

type NotificationDelivery struct {
	RecipientID uuid.UUID
	Category    string
	Title       string
	Message     string
}
