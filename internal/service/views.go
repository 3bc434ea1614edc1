package service

import (
	"context"
	"strings"
	"time"

	"github.com/SchoolApp/content-service/internal/dto"
	"github.com/SchoolApp/content-service/internal/model"
	"github.com/SchoolApp/content-service/internal/repository"
	"github.com/SchoolApp/content-service/internal/repository/redisrepo"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const FEED_CACHE_TTL = time.Minute * 2

type viewsService struct {
	logger   *zap.Logger
	repo     *repository.Repository
	rdb      *redis.Client
	keywords []string
}

func newViewsService(logger *zap.Logger, repo *repository.Repository, rdb *redis.Client) Views {
	keywords := viper.GetStringSlice("notifications.suppressed_keywords")
	for i, kw := range keywords {
		keywords[i] = strings.ToLower(kw)
	}

	return &viewsService{
		logger:   logger,
		repo:     repo,
		rdb:      rdb,
		keywords: keywords,
	}
}

// Feed shapes what one recipient sees: suppression first, then bucketing,
// then the unread count over whatever survived.
func (s *viewsService) Feed(ctx context.Context, user *model.User, limit, offset int) (*dto.NotificationFeed, error) {
	cacheKey := redisrepo.RecipientFeedKey(user.ID.String(), limit, offset)
	feedCache, err := redisrepo.Get[dto.NotificationFeed](s.rdb, ctx, cacheKey)
	if err == nil {
		return feedCache, nil
	}
	if err != redis.Nil {
		s.logger.Sugar().Warnf("failed to get recipient(%s)'s feed from redis: %s", user.ID.String(), err.Error())
	}

	notifications, err := s.repo.Postgres.Notification.FindActiveByRecipient(ctx, user.ID, limit, offset)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to get recipient(%s)'s notifications from postgres: %s", user.ID.String(), err.Error())
		return nil, ErrInternal
	}

	feed := &dto.NotificationFeed{
		Buckets: map[dto.FeedBucket][]*model.NotificationRecord{},
	}
	for _, n := range notifications {
		if s.suppressed(user.Role, n) {
			continue
		}

		bucket := bucketFor(n.Category)
		feed.Buckets[bucket] = append(feed.Buckets[bucket], n)
		if !n.Read {
			feed.Unread++
		}
	}

	if err := redisrepo.SetJSON(s.rdb, ctx, cacheKey, feed, FEED_CACHE_TTL); err != nil {
		s.logger.Sugar().Warnf("failed to set recipient(%s)'s feed in redis cache: %s", user.ID.String(), err.Error())
	}

	return feed, nil
}

// suppressed hides enrollment-related notifications from parents. The
// classroom_addition category overrides the keyword list and is always shown.
// Matching is a case-insensitive substring check over title, message and
// category independently.
func (s *viewsService) suppressed(role model.Role, n *model.NotificationRecord) bool {
	if role != model.RoleParent {
		return false
	}
	if n.Category == model.CategoryClassroomAddition {
		return false
	}

	for _, kw := range s.keywords {
		if strings.Contains(strings.ToLower(n.Title), kw) ||
			strings.Contains(strings.ToLower(n.Message), kw) ||
			strings.Contains(strings.ToLower(n.Category), kw) {
			return true
		}
	}
	return false
}

func bucketFor(category string) dto.FeedBucket {
	switch category {
	case model.KindActivity:
		return dto.BucketActivities
	case model.KindAnnouncement:
		return dto.BucketAnnouncements
	case model.KindLostFound, model.CategoryApproved, model.CategoryRejected:
		return dto.BucketRequests
	default:
		return dto.BucketGeneral
	}
}

func (s *viewsService) MarkRead(ctx context.Context, recipientID uuid.UUID, notificationID int64) error {
	if err := s.repo.Postgres.Notification.MarkRead(ctx, recipientID, notificationID); err != nil {
		s.logger.Sugar().Errorf("failed to mark notification(%d) read for recipient(%s): %s", notificationID, recipientID.String(), err.Error())
		return ErrInternal
	}

	s.invalidateFeedCache(ctx, recipientID)
	return nil
}

func (s *viewsService) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	if err := s.repo.Postgres.Notification.MarkAllRead(ctx, recipientID); err != nil {
		s.logger.Sugar().Errorf("failed to mark all notifications read for recipient(%s): %s", recipientID.String(), err.Error())
		return ErrInternal
	}

	s.invalidateFeedCache(ctx, recipientID)
	return nil
}

func (s *viewsService) Archive(ctx context.Context, recipientID uuid.UUID, notificationID int64) error {
	if err := s.repo.Postgres.Notification.Archive(ctx, recipientID, notificationID, model.ArchivedManual); err != nil {
		s.logger.Sugar().Errorf("failed to archive notification(%d) for recipient(%s): %s", notificationID, recipientID.String(), err.Error())
		return ErrInternal
	}

	s.invalidateFeedCache(ctx, recipientID)
	return nil
}

func (s *viewsService) invalidateFeedCache(ctx context.Context, recipientID uuid.UUID) {
	if err := redisrepo.DeleteByPattern(s.rdb, ctx, redisrepo.RecipientFeedPattern(recipientID.String())); err != nil {
		s.logger.Sugar().Warnf("failed to invalidate recipient(%s)'s feed cache: %s", recipientID.String(), err.Error())
	}
}
