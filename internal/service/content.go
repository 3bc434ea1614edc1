package service

import (
	"context"
	"time"

	"github.com/SchoolApp/content-service/internal/dto"
	"github.com/SchoolApp/content-service/internal/lifecycle"
	"github.com/SchoolApp/content-service/internal/model"
	"github.com/SchoolApp/content-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type contentService struct {
	logger *zap.Logger
	repo   *repository.Repository
	fanout Fanout
}

func newContentService(logger *zap.Logger, repo *repository.Repository, fanout Fanout) Content {
	return &contentService{
		logger: logger,
		repo:   repo,
		fanout: fanout,
	}
}

func validateContentFields(title string, audience model.Audience, scheduleAt, expireAt *time.Time) error {
	if title == "" || len(title) > 255 || !audience.Valid() {
		return ErrInvalidContent
	}
	if scheduleAt != nil && expireAt != nil && !scheduleAt.Before(*expireAt) {
		return ErrInvalidSchedule
	}
	return nil
}

// Create posts the item and fans it out once. Notification delivery is
// best-effort: a failed fanout is logged but the authored item stands.
func (s *contentService) Create(ctx context.Context, input dto.CreateContent, postedBy uuid.UUID) (*model.ContentItem, error) {
	if err := validateContentFields(input.Title, input.Audience, input.ScheduleAt, input.ExpireAt); err != nil {
		return nil, err
	}

	item := model.ContentItem{
		ID:         uuid.New(),
		Kind:       input.Kind,
		Title:      input.Title,
		Body:       input.Body,
		Audience:   input.Audience,
		PostedBy:   postedBy,
		ScheduleAt: input.ScheduleAt,
		ExpireAt:   input.ExpireAt,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.Postgres.Content.Create(ctx, item); err != nil {
		s.logger.Sugar().Errorf("failed to create content item: %s", err.Error())
		return nil, ErrInternal
	}

	count, err := s.fanout.FanoutItem(ctx, item)
	if err != nil {
		s.logger.Sugar().Errorf("failed to fan out item(%s): %s", item.ID.String(), err.Error())
	} else {
		s.logger.Sugar().Infof("fanned out item(%s) to %d recipients", item.ID.String(), count)
	}

	return &item, nil
}

func (s *contentService) List(ctx context.Context, now time.Time) (*dto.ContentList, error) {
	items, err := s.repo.Postgres.Content.FindAll(ctx)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to list content items: %s", err.Error())
		return nil, ErrInternal
	}

	active := lifecycle.FilterPhase(items, lifecycle.PhaseActive, now)
	recent, rest := lifecycle.Split(active)

	return &dto.ContentList{
		Recent:    recent,
		Active:    rest,
		Scheduled: lifecycle.FilterPhase(items, lifecycle.PhaseScheduled, now),
		Expired:   lifecycle.FilterPhase(items, lifecycle.PhaseExpired, now),
		Completed: lifecycle.FilterPhase(items, lifecycle.PhaseCompleted, now),
	}, nil
}

func (s *contentService) Update(ctx context.Context, id uuid.UUID, input dto.UpdateContent) error {
	updates := map[string]interface{}{}
	if input.Title != nil {
		if *input.Title == "" || len(*input.Title) > 255 {
			return ErrInvalidContent
		}
		updates["title"] = *input.Title
	}
	if input.Body != nil {
		updates["body"] = *input.Body
	}
	if len(updates) == 0 {
		return nil
	}

	if err := s.repo.Postgres.Content.UpdateByID(ctx, id, updates); err != nil {
		s.logger.Sugar().Errorf("failed to update item(%s): %s", id.String(), err.Error())
		return ErrInternal
	}
	return nil
}

func (s *contentService) SetPinned(ctx context.Context, id uuid.UUID, pinned bool, now time.Time) error {
	updates := map[string]interface{}{"pinned": pinned}
	if pinned {
		updates["pinned_at"] = now
	} else {
		updates["pinned_at"] = nil
	}

	if err := s.repo.Postgres.Content.UpdateByID(ctx, id, updates); err != nil {
		s.logger.Sugar().Errorf("failed to set pinned on item(%s): %s", id.String(), err.Error())
		return ErrInternal
	}
	return nil
}

func (s *contentService) MarkCompleted(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Postgres.Content.UpdateByID(ctx, id, map[string]interface{}{"completed": true}); err != nil {
		s.logger.Sugar().Errorf("failed to mark item(%s) completed: %s", id.String(), err.Error())
		return ErrInternal
	}
	return nil
}
