package postgres

import (
	"context"

	"github.com/SchoolApp/content-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type recycleRepo struct {
	db *pgxpool.Pool
}

func newRecycleRepo(db *pgxpool.Pool) Recycle {
	return &recycleRepo{
		db: db,
	}
}

const recycleColumns = "e.id, e.item_id, e.kind, e.title, e.body, e.audience, e.posted_by, e.schedule_at, e.expire_at, e.completed, e.pinned, e.pinned_at, e.created_at, e.deleted_at"

func (r *recycleRepo) Create(ctx context.Context, entry model.RecycleEntry) error {
	_, err := r.db.Exec(
		ctx,
		`
		INSERT INTO recycle_entries(id, item_id, kind, title, body, audience, posted_by, schedule_at, expire_at, completed, pinned, pinned_at, created_at, deleted_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
		`,
		entry.ID, entry.ItemID, entry.Kind, entry.Title, entry.Body, entry.Audience, entry.PostedBy, entry.ScheduleAt, entry.ExpireAt, entry.Completed, entry.Pinned, entry.PinnedAt, entry.CreatedAt, entry.DeletedAt,
	)
	return err
}

func (r *recycleRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.RecycleEntry, error) {
	var entry model.RecycleEntry
	if err := r.db.QueryRow(ctx, "SELECT "+recycleColumns+" FROM recycle_entries e WHERE e.id = $1", id).Scan(
		&entry.ID,
		&entry.ItemID,
		&entry.Kind,
		&entry.Title,
		&entry.Body,
		&entry.Audience,
		&entry.PostedBy,
		&entry.ScheduleAt,
		&entry.ExpireAt,
		&entry.Completed,
		&entry.Pinned,
		&entry.PinnedAt,
		&entry.CreatedAt,
		&entry.DeletedAt,
	); err != nil {
		return nil, err
	}

	return &entry, nil
}

func (r *recycleRepo) FindAll(ctx context.Context) ([]*model.RecycleEntry, error) {
	rows, err := r.db.Query(ctx, "SELECT "+recycleColumns+" FROM recycle_entries e ORDER BY e.deleted_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*model.RecycleEntry
	for rows.Next() {
		var entry model.RecycleEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.ItemID,
			&entry.Kind,
			&entry.Title,
			&entry.Body,
			&entry.Audience,
			&entry.PostedBy,
			&entry.ScheduleAt,
			&entry.ExpireAt,
			&entry.Completed,
			&entry.Pinned,
			&entry.PinnedAt,
			&entry.CreatedAt,
			&entry.DeletedAt,
		); err != nil {
			return nil, err
		}

		entries = append(entries, &entry)
	}

	return entries, rows.Err()
}

func (r *recycleRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM recycle_entries WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *recycleRepo) DeleteOlderThan(ctx context.Context, days int) error {
	_, err := r.db.Exec(ctx, "DELETE FROM recycle_entries WHERE deleted_at < NOW() - MAKE_INTERVAL(days => $1)", days)
	return err
}
