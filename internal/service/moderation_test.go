package service

import (
	"context"
	"testing"
	"time"

	"github.com/SchoolApp/content-service/internal/directory"
	"github.com/SchoolApp/content-service/internal/dto"
	"github.com/SchoolApp/content-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type moderationFixture struct {
	moderation Moderation
	users      *fakeUserRepo
	content    *fakeContentRepo
	subs       *fakeSubmissionRepo
	notifs     *fakeNotificationRepo
	mq         *fakePublisher
}

func newModerationFixture(t *testing.T) *moderationFixture {
	t.Helper()
	repo, users, content, subs, notifs, _ := newTestRepo()
	fanout := newFanoutService(testLogger(), repo, newTestRedis(), directory.New(users), nil)
	mq := &fakePublisher{}
	return &moderationFixture{
		moderation: newModerationService(testLogger(), repo, fanout, mq),
		users:      users,
		content:    content,
		subs:       subs,
		notifs:     notifs,
		mq:         mq,
	}
}

func (f *moderationFixture) submit(t *testing.T) (*model.PendingSubmission, *model.User) {
	t.Helper()
	submitter := f.users.add(model.RoleTeacher)
	sub, err := f.moderation.Submit(context.Background(), dto.SubmitContent{
		Kind:     model.KindActivity,
		Title:    "Museum visit",
		Body:     "A class trip to the natural history museum.",
		Audience: model.AudienceParents,
	}, submitter.ID)
	require.NoError(t, err)
	return sub, submitter
}

func TestSubmit_RejectsInvertedSchedule(t *testing.T) {
	f := newModerationFixture(t)
	submitter := f.users.add(model.RoleTeacher)

	schedule := time.Now().Add(time.Hour)
	expire := schedule.Add(-time.Minute)
	_, err := f.moderation.Submit(context.Background(), dto.SubmitContent{
		Kind:       model.KindActivity,
		Title:      "t",
		Audience:   model.AudienceAll,
		ScheduleAt: &schedule,
		ExpireAt:   &expire,
	}, submitter.ID)

	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestApprove_ProducesItemAndDeletesSubmission(t *testing.T) {
	f := newModerationFixture(t)
	sub, submitter := f.submit(t)

	item, err := f.moderation.Approve(context.Background(), sub.ID)
	require.NoError(t, err)

	assert.Equal(t, sub.Title, item.Title)
	assert.Equal(t, sub.Body, item.Body)
	assert.Equal(t, sub.Audience, item.Audience)
	assert.Equal(t, submitter.ID, item.PostedBy)
	assert.NotEqual(t, sub.ID, item.ID)

	_, err = f.subs.FindByID(context.Background(), sub.ID)
	assert.Equal(t, pgx.ErrNoRows, err)

	stored, err := f.content.FindByID(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, sub.Title, stored.Title)
}

func TestApprove_NotifiesSubmitterWithApprovedCategory(t *testing.T) {
	f := newModerationFixture(t)
	sub, submitter := f.submit(t)

	item, err := f.moderation.Approve(context.Background(), sub.ID)
	require.NoError(t, err)

	var approved *model.NotificationRecord
	for _, n := range f.notifs.byRecipient(submitter.ID) {
		if n.Category == model.CategoryApproved {
			approved = &n
			break
		}
	}
	require.NotNil(t, approved)
	assert.Equal(t, item.ID, *approved.SourceItemID)

	assert.Len(t, f.mq.published, 1)
}

func TestEditAndApprove_SubstitutesBody(t *testing.T) {
	f := newModerationFixture(t)
	sub, _ := f.submit(t)

	item, err := f.moderation.EditAndApprove(context.Background(), sub.ID, "edited body")
	require.NoError(t, err)

	assert.Equal(t, "edited body", item.Body)
	assert.Equal(t, sub.Title, item.Title)
}

func TestApprove_MissingSubmissionIsNotFound(t *testing.T) {
	f := newModerationFixture(t)

	_, err := f.moderation.Approve(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrSubmissionNotFound)
}

func TestApprove_LostRaceDropsDuplicateItem(t *testing.T) {
	f := newModerationFixture(t)
	sub, _ := f.submit(t)

	f.subs.noDelete = true
	_, err := f.moderation.Approve(context.Background(), sub.ID)
	assert.ErrorIs(t, err, ErrSubmissionNotFound)

	items, err := f.content.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestReject_DeletesSubmissionWithoutProducingItem(t *testing.T) {
	f := newModerationFixture(t)
	sub, submitter := f.submit(t)

	require.NoError(t, f.moderation.Reject(context.Background(), sub.ID))

	_, err := f.subs.FindByID(context.Background(), sub.ID)
	assert.Equal(t, pgx.ErrNoRows, err)

	items, err := f.content.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, items)

	records := f.notifs.byRecipient(submitter.ID)
	require.Len(t, records, 1)
	assert.Equal(t, model.CategoryRejected, records[0].Category)
	assert.Nil(t, records[0].SourceItemID)
}
