package dto

import "github.com/SchoolApp/content-service/internal/model"

// Buckets every non-archived notification is sorted into for presentation.
type FeedBucket string

const (
	BucketActivities    FeedBucket = "activities"
	BucketAnnouncements FeedBucket = "announcements"
	BucketRequests      FeedBucket = "requests"
	BucketGeneral       FeedBucket = "general"
)

type NotificationFeed struct {
	Buckets map[FeedBucket][]*model.NotificationRecord `json:"buckets"`
	Unread  int                                        `json:"unread"`
}

type ContentList struct {
	Recent    []model.ContentItem `json:"recent"`
	Active    []model.ContentItem `json:"active"`
	Scheduled []model.ContentItem `json:"scheduled"`
	Expired   []model.ContentItem `json:"expired"`
	Completed []model.ContentItem `json:"completed"`
}
