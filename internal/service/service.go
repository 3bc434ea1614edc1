package service

import (
	"context"
	"time"

	"github.com/SchoolApp/content-service/internal/directory"
	"github.com/SchoolApp/content-service/internal/dto"
	"github.com/SchoolApp/content-service/internal/model"
	"github.com/SchoolApp/content-service/internal/rabbitmq"
	"github.com/SchoolApp/content-service/internal/repository"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Content interface {
	Create(ctx context.Context, input dto.CreateContent, postedBy uuid.UUID) (*model.ContentItem, error)
	List(ctx context.Context, now time.Time) (*dto.ContentList, error)
	Update(ctx context.Context, id uuid.UUID, input dto.UpdateContent) error
	SetPinned(ctx context.Context, id uuid.UUID, pinned bool, now time.Time) error
	MarkCompleted(ctx context.Context, id uuid.UUID) error
}

type Moderation interface {
	Submit(ctx context.Context, input dto.SubmitContent, submittedBy uuid.UUID) (*model.PendingSubmission, error)
	ListPending(ctx context.Context) ([]*model.PendingSubmission, error)
	Approve(ctx context.Context, submissionID uuid.UUID) (*model.ContentItem, error)
	EditAndApprove(ctx context.Context, submissionID uuid.UUID, editedBody string) (*model.ContentItem, error)
	Reject(ctx context.Context, submissionID uuid.UUID) error
}

type Fanout interface {
	FanoutItem(ctx context.Context, item model.ContentItem) (int, error)
	FanoutToRecipients(ctx context.Context, recipients []uuid.UUID, category, title, body string, sourceItemID *uuid.UUID) (int, error)
	RegisterConnection(userID uuid.UUID, conn *websocket.Conn)
	UnregisterConnection(userID uuid.UUID)
	StartProcessingClassroomAdditions(ctx context.Context)
}

type Recycle interface {
	SoftDelete(ctx context.Context, itemID uuid.UUID, now time.Time) (*model.RecycleEntry, error)
	Restore(ctx context.Context, entryID uuid.UUID, now time.Time) (*model.ContentItem, error)
	PermanentlyDelete(ctx context.Context, entryID uuid.UUID) error
	CascadeArchiveNotifications(ctx context.Context, itemID uuid.UUID) (int64, error)
	ListEntries(ctx context.Context) ([]*model.RecycleEntry, error)
	StartJobs()
}

type Views interface {
	Feed(ctx context.Context, user *model.User, limit, offset int) (*dto.NotificationFeed, error)
	MarkRead(ctx context.Context, recipientID uuid.UUID, notificationID int64) error
	MarkAllRead(ctx context.Context, recipientID uuid.UUID) error
	Archive(ctx context.Context, recipientID uuid.UUID, notificationID int64) error
}

type User interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type Service struct {
	Content
	Moderation
	Fanout
	Recycle
	Views
	User
}

func New(logger *zap.Logger, repo *repository.Repository, rdb *redis.Client, mq *rabbitmq.MQConn) *Service {
	resolver := directory.New(repo.Postgres.User)
	fanout := newFanoutService(logger, repo, rdb, resolver, mq)

	return &Service{
		Content:    newContentService(logger, repo, fanout),
		Moderation: newModerationService(logger, repo, fanout, mq),
		Fanout:     fanout,
		Recycle:    newRecycleService(logger, repo),
		Views:      newViewsService(logger, repo, rdb),
		User:       newUserService(repo),
	}
}
