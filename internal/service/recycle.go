package service

import (
	"context"
	"time"

	"github.com/SchoolApp/content-service/internal/model"
	"github.com/SchoolApp/content-service/internal/repository"
	"github.com/go-co-op/gocron/v2"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	DEFAULT_RECYCLE_RETENTION_DAYS = 30
	DEFAULT_EXPIRY_GRACE_DAYS      = 14
)

type recycleService struct {
	logger        *zap.Logger
	repo          *repository.Repository
	scheduler     gocron.Scheduler
	retentionDays int
	graceDays     int
}

func newRecycleService(logger *zap.Logger, repo *repository.Repository) Recycle {
	scheduler, err := gocron.NewScheduler()
	if err != nil {
		panic(err)
	}

	retentionDays := viper.GetInt("recycle.retention_days")
	if retentionDays <= 0 {
		retentionDays = DEFAULT_RECYCLE_RETENTION_DAYS
	}
	graceDays := viper.GetInt("recycle.expiry_grace_days")
	if graceDays <= 0 {
		graceDays = DEFAULT_EXPIRY_GRACE_DAYS
	}

	return &recycleService{
		logger:        logger,
		repo:          repo,
		scheduler:     scheduler,
		retentionDays: retentionDays,
		graceDays:     graceDays,
	}
}

// SoftDelete copies the item into recycle storage before deleting the
// original. If the delete fails after the copy, the duplicate in recycle
// storage is acceptable; the reverse order would risk losing the item.
func (s *recycleService) SoftDelete(ctx context.Context, itemID uuid.UUID, now time.Time) (*model.RecycleEntry, error) {
	item, err := s.repo.Postgres.Content.FindByID(ctx, itemID)
	if err == pgx.ErrNoRows {
		return nil, ErrItemNotFound
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find item(%s) for soft delete: %s", itemID.String(), err.Error())
		return nil, ErrInternal
	}

	entry := model.RecycleEntry{
		ID:         uuid.New(),
		ItemID:     item.ID,
		Kind:       item.Kind,
		Title:      item.Title,
		Body:       item.Body,
		Audience:   item.Audience,
		PostedBy:   item.PostedBy,
		ScheduleAt: item.ScheduleAt,
		ExpireAt:   item.ExpireAt,
		Completed:  item.Completed,
		Pinned:     item.Pinned,
		PinnedAt:   item.PinnedAt,
		CreatedAt:  item.CreatedAt,
		DeletedAt:  now,
	}
	if err := s.repo.Postgres.Recycle.Create(ctx, entry); err != nil {
		s.logger.Sugar().Errorf("failed to copy item(%s) into recycle storage: %s", itemID.String(), err.Error())
		return nil, ErrInternal
	}

	if _, err := s.repo.Postgres.Content.Delete(ctx, itemID); err != nil {
		// The copy exists, the original survived. Manual cleanup beats data loss.
		s.logger.Sugar().Warnf("failed to delete item(%s) after recycle copy: %s", itemID.String(), err.Error())
		return &entry, nil
	}

	if _, err := s.CascadeArchiveNotifications(ctx, itemID); err != nil {
		s.logger.Sugar().Errorf("failed to cascade-archive notifications for item(%s): %s", itemID.String(), err.Error())
	}

	return &entry, nil
}

// Restore creates a fresh item from the entry. The new item has a new id, so
// archived notifications pointing at the original stay archived.
func (s *recycleService) Restore(ctx context.Context, entryID uuid.UUID, now time.Time) (*model.ContentItem, error) {
	entry, err := s.repo.Postgres.Recycle.FindByID(ctx, entryID)
	if err == pgx.ErrNoRows {
		return nil, ErrEntryNotFound
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find recycle entry(%s): %s", entryID.String(), err.Error())
		return nil, ErrInternal
	}

	item := model.ContentItem{
		ID:         uuid.New(),
		Kind:       entry.Kind,
		Title:      entry.Title,
		Body:       entry.Body,
		Audience:   entry.Audience,
		PostedBy:   entry.PostedBy,
		ScheduleAt: entry.ScheduleAt,
		ExpireAt:   entry.ExpireAt,
		Completed:  entry.Completed,
		Pinned:     entry.Pinned,
		PinnedAt:   entry.PinnedAt,
		CreatedAt:  now,
	}
	if err := s.repo.Postgres.Content.Create(ctx, item); err != nil {
		s.logger.Sugar().Errorf("failed to restore recycle entry(%s): %s", entryID.String(), err.Error())
		return nil, ErrInternal
	}

	if _, err := s.repo.Postgres.Recycle.Delete(ctx, entryID); err != nil {
		s.logger.Sugar().Warnf("failed to delete restored recycle entry(%s): %s", entryID.String(), err.Error())
	}

	return &item, nil
}

func (s *recycleService) PermanentlyDelete(ctx context.Context, entryID uuid.UUID) error {
	removed, err := s.repo.Postgres.Recycle.Delete(ctx, entryID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to permanently delete recycle entry(%s): %s", entryID.String(), err.Error())
		return ErrInternal
	}
	if !removed {
		return ErrEntryNotFound
	}
	return nil
}

// CascadeArchiveNotifications hides every notification that points at a gone
// item from active views, keeping the records themselves for audit. Read
// state is untouched.
func (s *recycleService) CascadeArchiveNotifications(ctx context.Context, itemID uuid.UUID) (int64, error) {
	count, err := s.repo.Postgres.Notification.ArchiveBySourceItem(ctx, itemID, model.ArchivedCascade)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *recycleService) ListEntries(ctx context.Context) ([]*model.RecycleEntry, error) {
	entries, err := s.repo.Postgres.Recycle.FindAll(ctx)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to list recycle entries: %s", err.Error())
		return nil, ErrInternal
	}
	return entries, nil
}

func (s *recycleService) newPurgeRecycleJob() {
	s.scheduler.NewJob(gocron.DurationJob(time.Hour*12), gocron.NewTask(func(ctx context.Context) {
		if err := s.repo.Postgres.Recycle.DeleteOlderThan(ctx, s.retentionDays); err != nil {
			s.logger.Sugar().Errorf("failed to purge old recycle entries: %s", err.Error())
		}
	}))
}

// Items whose expire_at passed the grace window get swept into the recycle
// bin, cascading their notifications along the way.
func (s *recycleService) newExpirySweepJob() {
	s.scheduler.NewJob(gocron.DurationJob(time.Hour*12), gocron.NewTask(func(ctx context.Context) {
		now := time.Now()
		expired, err := s.repo.Postgres.Content.FindExpiredBefore(ctx, now.AddDate(0, 0, -s.graceDays))
		if err != nil {
			s.logger.Sugar().Errorf("failed to find expired items: %s", err.Error())
			return
		}

		for _, item := range expired {
			if _, err := s.SoftDelete(ctx, item.ID, now); err != nil {
				s.logger.Sugar().Errorf("failed to sweep expired item(%s): %s", item.ID.String(), err.Error())
			}
		}
	}))
}

func (s *recycleService) StartJobs() {
	s.newPurgeRecycleJob()
	s.newExpirySweepJob()

	s.scheduler.Start()
}
