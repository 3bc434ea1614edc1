package postgres

import (
	"context"

	"github.com/SchoolApp/content-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

const GET_NOTIFICATIONS_MAX_LIMIT = 200

type notificationRepo struct {
	db *pgxpool.Pool
}

func newNotificationRepo(db *pgxpool.Pool) Notification {
	return &notificationRepo{
		db: db,
	}
}

func (r *notificationRepo) Create(ctx context.Context, n model.NotificationRecord) error {
	_, err := r.db.Exec(
		ctx,
		`
		INSERT INTO notifications(recipient_id, title, message, category, source_item_id, read, archived, archived_reason, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
		n.RecipientID, n.Title, n.Message, n.Category, n.SourceItemID, n.Read, n.Archived, n.ArchivedReason, n.CreatedAt,
	)
	return err
}

func (r *notificationRepo) FindActiveByRecipient(ctx context.Context, recipientID uuid.UUID, limit, offset int) ([]*model.NotificationRecord, error) {
	if limit <= 0 || limit > GET_NOTIFICATIONS_MAX_LIMIT {
		limit = GET_NOTIFICATIONS_MAX_LIMIT
	}

	rows, err := r.db.Query(
		ctx,
		`
		SELECT n.id, n.title, n.message, n.category, n.source_item_id, n.read, n.archived_reason, n.created_at
		FROM notifications n
		WHERE n.recipient_id = $1 AND n.archived = false
		ORDER BY n.created_at DESC
		LIMIT $2
		OFFSET $3
		`,
		recipientID, limit, offset,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*model.NotificationRecord
	for rows.Next() {
		var n model.NotificationRecord
		if err := rows.Scan(&n.ID, &n.Title, &n.Message, &n.Category, &n.SourceItemID, &n.Read, &n.ArchivedReason, &n.CreatedAt); err != nil {
			return nil, err
		}
		n.RecipientID = recipientID

		notifications = append(notifications, &n)
	}

	return notifications, rows.Err()
}

// MarkRead is idempotent: re-marking an already-read record matches zero rows
// in the WHERE clause and still succeeds.
func (r *notificationRepo) MarkRead(ctx context.Context, recipientID uuid.UUID, notificationID int64) error {
	_, err := r.db.Exec(ctx, "UPDATE notifications SET read = true WHERE id = $1 AND recipient_id = $2 AND read = false", notificationID, recipientID)
	return err
}

func (r *notificationRepo) MarkAllRead(ctx context.Context, recipientID uuid.UUID) error {
	_, err := r.db.Exec(ctx, "UPDATE notifications SET read = true WHERE recipient_id = $1 AND read = false", recipientID)
	return err
}

func (r *notificationRepo) Archive(ctx context.Context, recipientID uuid.UUID, notificationID int64, reason string) error {
	_, err := r.db.Exec(ctx, "UPDATE notifications SET archived = true, archived_reason = $1 WHERE id = $2 AND recipient_id = $3 AND archived = false", reason, notificationID, recipientID)
	return err
}

// ArchiveBySourceItem leaves read state untouched: archival hides history from
// active views without destroying it.
func (r *notificationRepo) ArchiveBySourceItem(ctx context.Context, itemID uuid.UUID, reason string) (int64, error) {
	tag, err := r.db.Exec(ctx, "UPDATE notifications SET archived = true, archived_reason = $1 WHERE source_item_id = $2 AND archived = false", reason, itemID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}
