package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/SchoolApp/content-service/internal/dto"
	"github.com/SchoolApp/content-service/internal/model"
	"github.com/SchoolApp/content-service/internal/rabbitmq"
	"github.com/SchoolApp/content-service/internal/repository"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type publisher interface {
	Publish(queue string, body []byte) error
}

type moderationService struct {
	logger *zap.Logger
	repo   *repository.Repository
	fanout Fanout
	mq     publisher
}

func newModerationService(logger *zap.Logger, repo *repository.Repository, fanout Fanout, mq publisher) Moderation {
	return &moderationService{
		logger: logger,
		repo:   repo,
		fanout: fanout,
		mq:     mq,
	}
}

func (s *moderationService) Submit(ctx context.Context, input dto.SubmitContent, submittedBy uuid.UUID) (*model.PendingSubmission, error) {
	if err := validateContentFields(input.Title, input.Audience, input.ScheduleAt, input.ExpireAt); err != nil {
		return nil, err
	}

	sub := model.PendingSubmission{
		ID:          uuid.New(),
		Kind:        input.Kind,
		Title:       input.Title,
		Body:        input.Body,
		Audience:    input.Audience,
		ScheduleAt:  input.ScheduleAt,
		ExpireAt:    input.ExpireAt,
		SubmittedBy: submittedBy,
		SubmittedAt: time.Now(),
	}
	if err := s.repo.Postgres.Submission.Create(ctx, sub); err != nil {
		s.logger.Sugar().Errorf("failed to create submission from user(%s): %s", submittedBy.String(), err.Error())
		return nil, ErrInternal
	}

	return &sub, nil
}

func (s *moderationService) ListPending(ctx context.Context) ([]*model.PendingSubmission, error) {
	subs, err := s.repo.Postgres.Submission.FindAll(ctx)
	if err != nil && err != pgx.ErrNoRows {
		s.logger.Sugar().Errorf("failed to list pending submissions: %s", err.Error())
		return nil, ErrInternal
	}
	return subs, nil
}

func (s *moderationService) Approve(ctx context.Context, submissionID uuid.UUID) (*model.ContentItem, error) {
	sub, err := s.findSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	return s.approve(ctx, sub, sub.Body)
}

func (s *moderationService) EditAndApprove(ctx context.Context, submissionID uuid.UUID, editedBody string) (*model.ContentItem, error) {
	sub, err := s.findSubmission(ctx, submissionID)
	if err != nil {
		return nil, err
	}
	return s.approve(ctx, sub, editedBody)
}

// approve creates the content item before deleting the submission, so a
// failed create leaves the submission visibly pending. The conditional delete
// is the race guard: of two concurrent approvals only one removes the row,
// and the loser compensates by removing its duplicate item.
func (s *moderationService) approve(ctx context.Context, sub *model.PendingSubmission, body string) (*model.ContentItem, error) {
	item := model.ContentItem{
		ID:         uuid.New(),
		Kind:       sub.Kind,
		Title:      sub.Title,
		Body:       body,
		Audience:   sub.Audience,
		PostedBy:   sub.SubmittedBy,
		ScheduleAt: sub.ScheduleAt,
		ExpireAt:   sub.ExpireAt,
		CreatedAt:  time.Now(),
	}
	if err := s.repo.Postgres.Content.Create(ctx, item); err != nil {
		s.logger.Sugar().Errorf("failed to create content item from submission(%s): %s", sub.ID.String(), err.Error())
		return nil, ErrInternal
	}

	removed, err := s.repo.Postgres.Submission.Delete(ctx, sub.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to delete approved submission(%s): %s", sub.ID.String(), err.Error())
		return nil, ErrInternal
	}
	if !removed {
		s.logger.Sugar().Warnf("submission(%s) was resolved concurrently, dropping duplicate item(%s)", sub.ID.String(), item.ID.String())
		if _, err := s.repo.Postgres.Content.Delete(ctx, item.ID); err != nil {
			s.logger.Sugar().Errorf("failed to drop duplicate item(%s): %s", item.ID.String(), err.Error())
		}
		return nil, ErrSubmissionNotFound
	}

	itemID := item.ID
	if _, err := s.fanout.FanoutToRecipients(
		ctx,
		[]uuid.UUID{sub.SubmittedBy},
		model.CategoryApproved,
		fmt.Sprintf("Your %s was approved", sub.Kind),
		fmt.Sprintf("%q has been posted.", sub.Title),
		&itemID,
	); err != nil {
		s.logger.Sugar().Errorf("failed to notify submitter(%s) about approval: %s", sub.SubmittedBy.String(), err.Error())
	}

	audienceCount, err := s.fanout.FanoutItem(ctx, item)
	if err != nil {
		s.logger.Sugar().Errorf("failed to fan out approved item(%s): %s", item.ID.String(), err.Error())
	} else {
		s.logger.Sugar().Infof("fanned out approved item(%s) to %d recipients", item.ID.String(), audienceCount)
	}

	s.publishOutcomeMail(ctx, sub, true)

	return &item, nil
}

func (s *moderationService) Reject(ctx context.Context, submissionID uuid.UUID) error {
	sub, err := s.findSubmission(ctx, submissionID)
	if err != nil {
		return err
	}

	removed, err := s.repo.Postgres.Submission.Delete(ctx, sub.ID)
	if err != nil {
		s.logger.Sugar().Errorf("failed to delete rejected submission(%s): %s", sub.ID.String(), err.Error())
		return ErrInternal
	}
	if !removed {
		s.logger.Sugar().Warnf("submission(%s) was resolved concurrently", sub.ID.String())
		return ErrSubmissionNotFound
	}

	if _, err := s.fanout.FanoutToRecipients(
		ctx,
		[]uuid.UUID{sub.SubmittedBy},
		model.CategoryRejected,
		fmt.Sprintf("Your %s was rejected", sub.Kind),
		fmt.Sprintf("%q was not approved for posting.", sub.Title),
		nil,
	); err != nil {
		s.logger.Sugar().Errorf("failed to notify submitter(%s) about rejection: %s", sub.SubmittedBy.String(), err.Error())
	}

	s.publishOutcomeMail(ctx, sub, false)

	return nil
}

func (s *moderationService) findSubmission(ctx context.Context, id uuid.UUID) (*model.PendingSubmission, error) {
	sub, err := s.repo.Postgres.Submission.FindByID(ctx, id)
	if err == pgx.ErrNoRows {
		s.logger.Sugar().Warnf("moderation action on missing submission(%s)", id.String())
		return nil, ErrSubmissionNotFound
	}
	if err != nil {
		s.logger.Sugar().Errorf("failed to find submission(%s): %s", id.String(), err.Error())
		return nil, ErrInternal
	}
	return sub, nil
}

// Outcome mail is best-effort: a mail queue hiccup never fails the
// moderation action itself.
func (s *moderationService) publishOutcomeMail(ctx context.Context, sub *model.PendingSubmission, approved bool) {
	submitter, err := s.repo.Postgres.User.FindByID(ctx, sub.SubmittedBy)
	if err != nil {
		s.logger.Sugar().Warnf("failed to find submitter(%s) for outcome mail: %s", sub.SubmittedBy.String(), err.Error())
		return
	}

	job, err := json.Marshal(dto.MQModerationOutcomeMail{
		Email:    submitter.Email,
		Title:    sub.Title,
		Approved: approved,
	})
	if err != nil {
		return
	}

	if err := s.mq.Publish(rabbitmq.MODERATION_OUTCOME_MAIL_QUEUE, job); err != nil {
		s.logger.Sugar().Warnf("failed to publish outcome mail for submitter(%s): %s", sub.SubmittedBy.String(), err.Error())
	}
}
