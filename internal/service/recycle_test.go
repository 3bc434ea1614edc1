package service

import (
	"context"
	"testing"
	"time"

	"github.com/SchoolApp/content-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecycleFixture(t *testing.T) (Recycle, *fakeContentRepo, *fakeNotificationRepo, *fakeRecycleRepo) {
	t.Helper()
	repo, _, content, _, notifs, recycleRepo := newTestRepo()
	return newRecycleService(testLogger(), repo), content, notifs, recycleRepo
}

func seedItem(t *testing.T, content *fakeContentRepo) model.ContentItem {
	t.Helper()
	expire := time.Now().Add(48 * time.Hour)
	item := model.ContentItem{
		ID:        uuid.New(),
		Kind:      model.KindAnnouncement,
		Title:     "Bake sale",
		Body:      "Saturday in the gym.",
		Audience:  model.AudienceAll,
		PostedBy:  uuid.New(),
		ExpireAt:  &expire,
		CreatedAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, content.Create(context.Background(), item))
	return item
}

func TestSoftDelete_CopiesThenDeletes(t *testing.T) {
	recycle, content, _, entries := newRecycleFixture(t)
	item := seedItem(t, content)

	entry, err := recycle.SoftDelete(context.Background(), item.ID, time.Now())
	require.NoError(t, err)

	assert.Equal(t, item.ID, entry.ItemID)
	assert.Equal(t, item.Title, entry.Title)
	assert.NotEqual(t, item.ID, entry.ID)

	_, err = content.FindByID(context.Background(), item.ID)
	assert.Equal(t, pgx.ErrNoRows, err)

	stored, err := entries.FindByID(context.Background(), entry.ID)
	require.NoError(t, err)
	assert.Equal(t, item.Body, stored.Body)
}

func TestSoftDelete_MissingItem(t *testing.T) {
	recycle, _, _, _ := newRecycleFixture(t)

	_, err := recycle.SoftDelete(context.Background(), uuid.New(), time.Now())
	assert.ErrorIs(t, err, ErrItemNotFound)
}

func TestSoftDelete_CascadeArchivesNotifications(t *testing.T) {
	recycle, content, notifs, _ := newRecycleFixture(t)
	item := seedItem(t, content)

	recipient := uuid.New()
	itemID := item.ID
	for i := 0; i < 2; i++ {
		require.NoError(t, notifs.Create(context.Background(), model.NotificationRecord{
			RecipientID:  recipient,
			Category:     model.KindAnnouncement,
			SourceItemID: &itemID,
			Read:         i == 0,
		}))
	}
	// Unrelated notification stays untouched.
	require.NoError(t, notifs.Create(context.Background(), model.NotificationRecord{RecipientID: recipient, Category: "general"}))

	_, err := recycle.SoftDelete(context.Background(), item.ID, time.Now())
	require.NoError(t, err)

	records := notifs.byRecipient(recipient)
	require.Len(t, records, 3)
	for _, n := range records {
		if n.SourceItemID != nil && *n.SourceItemID == item.ID {
			assert.True(t, n.Archived)
			assert.Equal(t, model.ArchivedCascade, n.ArchivedReason)
		} else {
			assert.False(t, n.Archived)
		}
	}

	// Read state survives cascade archival.
	assert.True(t, records[0].Read)
	assert.False(t, records[1].Read)
}

func TestRestore_MintsFreshIDWithIdenticalFields(t *testing.T) {
	recycle, content, _, entries := newRecycleFixture(t)
	item := seedItem(t, content)

	entry, err := recycle.SoftDelete(context.Background(), item.ID, time.Now())
	require.NoError(t, err)

	restored, err := recycle.Restore(context.Background(), entry.ID, time.Now())
	require.NoError(t, err)

	assert.NotEqual(t, item.ID, restored.ID)
	assert.Equal(t, item.Title, restored.Title)
	assert.Equal(t, item.Body, restored.Body)
	assert.Equal(t, item.Audience, restored.Audience)
	assert.Equal(t, item.PostedBy, restored.PostedBy)

	_, err = entries.FindByID(context.Background(), entry.ID)
	assert.Equal(t, pgx.ErrNoRows, err)
}

func TestPermanentlyDelete(t *testing.T) {
	recycle, content, _, entries := newRecycleFixture(t)
	item := seedItem(t, content)

	entry, err := recycle.SoftDelete(context.Background(), item.ID, time.Now())
	require.NoError(t, err)

	require.NoError(t, recycle.PermanentlyDelete(context.Background(), entry.ID))
	_, err = entries.FindByID(context.Background(), entry.ID)
	assert.Equal(t, pgx.ErrNoRows, err)

	assert.ErrorIs(t, recycle.PermanentlyDelete(context.Background(), entry.ID), ErrEntryNotFound)
}

func TestCascadeArchiveNotifications_ReturnsAffectedCount(t *testing.T) {
	recycle, _, notifs, _ := newRecycleFixture(t)

	itemID := uuid.New()
	for i := 0; i < 4; i++ {
		id := itemID
		require.NoError(t, notifs.Create(context.Background(), model.NotificationRecord{RecipientID: uuid.New(), SourceItemID: &id}))
	}

	count, err := recycle.CascadeArchiveNotifications(context.Background(), itemID)
	require.NoError(t, err)
	assert.EqualValues(t, 4, count)

	// Re-running archives nothing new.
	count, err = recycle.CascadeArchiveNotifications(context.Background(), itemID)
	require.NoError(t, err)
	assert.EqualValues(t, 0, count)
}
