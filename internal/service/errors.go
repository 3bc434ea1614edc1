package service

import "errors"

var (
	ErrInternal           = errors.New("internal server error")
	ErrStoreWriteFailed   = errors.New("no notification writes succeeded")
	ErrSubmissionNotFound = errors.New("submission not found or already resolved")
	ErrItemNotFound       = errors.New("content item not found")
	ErrEntryNotFound      = errors.New("recycle entry not found")
	ErrInvalidSchedule    = errors.New("schedule_at must be before expire_at")
	ErrInvalidContent     = errors.New("title is required and must not be over 255, audience must be valid")
)
