package dto

import "github.com/google/uuid"

// MQClassroomAddition is published by the classroom module of the portal when
// a student is placed into a classroom; each listed parent gets a
// classroom_addition notification.
type MQClassroomAddition struct {
	StudentName   string      `json:"student_name"`
	ClassroomName string      `json:"classroom_name"`
	ParentIDs     []uuid.UUID `json:"parent_ids"`
}

// MQModerationOutcomeMail is consumed by the mailer.
type MQModerationOutcomeMail struct {
	Email    string `json:"email"`
	Title    string `json:"title"`
	Approved bool   `json:"approved"`
}
