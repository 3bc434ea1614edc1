package service

import (
	"context"
	"sync"
	"time"

	"github.com/SchoolApp/content-service/internal/model"
	"github.com/SchoolApp/content-service/internal/repository"
	"github.com/SchoolApp/content-service/internal/repository/postgres"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// newTestRepo builds a repository over in-memory fakes. The redis client
// points at a closed port so every cache call fails and the services fall
// through to the fakes.
func newTestRepo() (*repository.Repository, *fakeUserRepo, *fakeContentRepo, *fakeSubmissionRepo, *fakeNotificationRepo, *fakeRecycleRepo) {
	users := &fakeUserRepo{users: map[uuid.UUID]*model.User{}}
	content := &fakeContentRepo{items: map[uuid.UUID]model.ContentItem{}}
	subs := &fakeSubmissionRepo{subs: map[uuid.UUID]model.PendingSubmission{}}
	notifs := &fakeNotificationRepo{}
	recycle := &fakeRecycleRepo{entries: map[uuid.UUID]model.RecycleEntry{}}

	repo := &repository.Repository{
		Postgres: &postgres.PGRepo{
			User:         users,
			Content:      content,
			Submission:   subs,
			Notification: notifs,
			Recycle:      recycle,
		},
	}
	return repo, users, content, subs, notifs, recycle
}

func newTestRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"})
}

func testLogger() *zap.Logger {
	return zap.NewNop()
}

type fakeUserRepo struct {
	mu      sync.Mutex
	users   map[uuid.UUID]*model.User
	roleErr error
}

func (f *fakeUserRepo) add(role model.Role) *model.User {
	f.mu.Lock()
	defer f.mu.Unlock()
	user := &model.User{ID: uuid.New(), Username: "u-" + uuid.NewString()[:8], Email: "u@example.com", Role: role}
	f.users[user.ID] = user
	return user
}

func (f *fakeUserRepo) Create(ctx context.Context, user model.User) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.users[user.ID] = &user
	return nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	user, ok := f.users[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return user, nil
}

func (f *fakeUserRepo) FindByRole(ctx context.Context, role model.Role) ([]*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.roleErr != nil {
		return nil, f.roleErr
	}
	var out []*model.User
	for _, user := range f.users {
		if user.Role == role {
			out = append(out, user)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	return nil
}

type fakeContentRepo struct {
	mu        sync.Mutex
	items     map[uuid.UUID]model.ContentItem
	createErr error
}

func (f *fakeContentRepo) Create(ctx context.Context, item model.ContentItem) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.items[item.ID] = item
	return nil
}

func (f *fakeContentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ContentItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &item, nil
}

func (f *fakeContentRepo) FindAll(ctx context.Context) ([]model.ContentItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.ContentItem
	for _, item := range f.items {
		out = append(out, item)
	}
	return out, nil
}

func (f *fakeContentRepo) FindExpiredBefore(ctx context.Context, cutoff time.Time) ([]model.ContentItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.ContentItem
	for _, item := range f.items {
		if item.ExpireAt != nil && !item.ExpireAt.After(cutoff) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (f *fakeContentRepo) UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	item, ok := f.items[id]
	if !ok {
		return nil
	}
	for column, value := range updates {
		switch column {
		case "title":
			item.Title = value.(string)
		case "body":
			item.Body = value.(string)
		case "completed":
			item.Completed = value.(bool)
		case "pinned":
			item.Pinned = value.(bool)
		case "pinned_at":
			if value == nil {
				item.PinnedAt = nil
			} else {
				t := value.(time.Time)
				item.PinnedAt = &t
			}
		}
	}
	f.items[id] = item
	return nil
}

func (f *fakeContentRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.items[id]
	delete(f.items, id)
	return ok, nil
}

type fakeSubmissionRepo struct {
	mu       sync.Mutex
	subs     map[uuid.UUID]model.PendingSubmission
	noDelete bool // Delete reports no row removed, simulating a lost moderation race
}

func (f *fakeSubmissionRepo) Create(ctx context.Context, sub model.PendingSubmission) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.subs[sub.ID] = sub
	return nil
}

func (f *fakeSubmissionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PendingSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	sub, ok := f.subs[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &sub, nil
}

func (f *fakeSubmissionRepo) FindAll(ctx context.Context) ([]*model.PendingSubmission, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.PendingSubmission
	for id := range f.subs {
		sub := f.subs[id]
		out = append(out, &sub)
	}
	return out, nil
}

func (f *fakeSubmissionRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.noDelete {
		return false, nil
	}
	_, ok := f.subs[id]
	delete(f.subs, id)
	return ok, nil
}

type fakeNotificationRepo struct {
	mu        sync.Mutex
	records   []model.NotificationRecord
	nextID    int64
	createErr error
}

func (f *fakeNotificationRepo) Create(ctx context.Context, n model.NotificationRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.nextID++
	n.ID = f.nextID
	f.records = append(f.records, n)
	return nil
}

func (f *fakeNotificationRepo) FindActiveByRecipient(ctx context.Context, recipientID uuid.UUID, limit, offset int) ([]*model.NotificationRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.NotificationRecord
	for i := range f.records {
		if f.records[i].RecipientID == recipientID && !f.records[i].Archived {
			n := f.records[i]
			out = append(out, &n)
		}
	}
	return out, nil
}

func (f *fakeNotificationRepo) MarkRead(ctx context.Context, recipientID uuid.UUID, notificationID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID == notificationID && f.records[i].RecipientID == recipientID && !f.records[i].Read {
			f.records[i].Read = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].RecipientID == recipientID {
			f.records[i].Read = true
		}
	}
	return nil
}

func (f *fakeNotificationRepo) Archive(ctx context.Context, recipientID uuid.UUID, notificationID int64, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].ID == notificationID && f.records[i].RecipientID == recipientID && !f.records[i].Archived {
			f.records[i].Archived = true
			f.records[i].ArchivedReason = reason
		}
	}
	return nil
}

func (f *fakeNotificationRepo) ArchiveBySourceItem(ctx context.Context, itemID uuid.UUID, reason string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var count int64
	for i := range f.records {
		if f.records[i].SourceItemID != nil && *f.records[i].SourceItemID == itemID && !f.records[i].Archived {
			f.records[i].Archived = true
			f.records[i].ArchivedReason = reason
			count++
		}
	}
	return count, nil
}

func (f *fakeNotificationRepo) byRecipient(recipientID uuid.UUID) []model.NotificationRecord {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []model.NotificationRecord
	for _, n := range f.records {
		if n.RecipientID == recipientID {
			out = append(out, n)
		}
	}
	return out
}

type fakeRecycleRepo struct {
	mu      sync.Mutex
	entries map[uuid.UUID]model.RecycleEntry
}

func (f *fakeRecycleRepo) Create(ctx context.Context, entry model.RecycleEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[entry.ID] = entry
	return nil
}

func (f *fakeRecycleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.RecycleEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return &entry, nil
}

func (f *fakeRecycleRepo) FindAll(ctx context.Context) ([]*model.RecycleEntry, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*model.RecycleEntry
	for id := range f.entries {
		entry := f.entries[id]
		out = append(out, &entry)
	}
	return out, nil
}

func (f *fakeRecycleRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.entries[id]
	delete(f.entries, id)
	return ok, nil
}

func (f *fakeRecycleRepo) DeleteOlderThan(ctx context.Context, days int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cutoff := time.Now().AddDate(0, 0, -days)
	for id, entry := range f.entries {
		if entry.DeletedAt.Before(cutoff) {
			delete(f.entries, id)
		}
	}
	return nil
}

type fakePublisher struct {
	mu        sync.Mutex
	published [][]byte
}

func (f *fakePublisher) Publish(queue string, body []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.published = append(f.published, body)
	return nil
}
