package postgres

import (
	"context"
	"time"

	"github.com/SchoolApp/content-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type User interface {
	Create(ctx context.Context, user model.User) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
	FindByRole(ctx context.Context, role model.Role) ([]*model.User, error)
	UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
}

type Content interface {
	Create(ctx context.Context, item model.ContentItem) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.ContentItem, error)
	FindAll(ctx context.Context) ([]model.ContentItem, error)
	FindExpiredBefore(ctx context.Context, cutoff time.Time) ([]model.ContentItem, error)
	UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type Submission interface {
	Create(ctx context.Context, sub model.PendingSubmission) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.PendingSubmission, error)
	FindAll(ctx context.Context) ([]*model.PendingSubmission, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type Notification interface {
	Create(ctx context.Context, n model.NotificationRecord) error
	FindActiveByRecipient(ctx context.Context, recipientID uuid.UUID, limit, offset int) ([]*model.NotificationRecord, error)
	MarkRead(ctx context.Context, recipientID uuid.UUID, notificationID int64) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) error
	Archive(ctx context.Context, recipientID uuid.UUID, notificationID int64, reason string) error
	ArchiveBySourceItem(ctx context.Context, itemID uuid.UUID, reason string) (int64, error)
}

type Recycle interface {
	Create(ctx context.Context, entry model.RecycleEntry) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.RecycleEntry, error)
	FindAll(ctx context.Context) ([]*model.RecycleEntry, error)
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
	DeleteOlderThan(ctx context.Context, days int) error
}

type PGRepo struct {
	User
	Content
	Submission
	Notification
	Recycle
}

func New(db *pgxpool.Pool) *PGRepo {
	return &PGRepo{
		User:         newUserRepo(db),
		Content:      newContentRepo(db),
		Submission:   newSubmissionRepo(db),
		Notification: newNotificationRepo(db),
		Recycle:      newRecycleRepo(db),
	}
}
