package postgres

import (
	"context"
	"strconv"
	"time"

	"github.com/SchoolApp/content-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type contentRepo struct {
	db *pgxpool.Pool
}

func newContentRepo(db *pgxpool.Pool) Content {
	return &contentRepo{
		db: db,
	}
}

const contentColumns = "c.id, c.kind, c.title, c.body, c.audience, c.posted_by, c.schedule_at, c.expire_at, c.completed, c.pinned, c.pinned_at, c.created_at"

func (r *contentRepo) Create(ctx context.Context, item model.ContentItem) error {
	_, err := r.db.Exec(
		ctx,
		`
		INSERT INTO content_items(id, kind, title, body, audience, posted_by, schedule_at, expire_at, completed, pinned, pinned_at, created_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		`,
		item.ID, item.Kind, item.Title, item.Body, item.Audience, item.PostedBy, item.ScheduleAt, item.ExpireAt, item.Completed, item.Pinned, item.PinnedAt, item.CreatedAt,
	)
	return err
}

func (r *contentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.ContentItem, error) {
	var item model.ContentItem
	if err := r.db.QueryRow(ctx, "SELECT "+contentColumns+" FROM content_items c WHERE c.id = $1", id).Scan(
		&item.ID,
		&item.Kind,
		&item.Title,
		&item.Body,
		&item.Audience,
		&item.PostedBy,
		&item.ScheduleAt,
		&item.ExpireAt,
		&item.Completed,
		&item.Pinned,
		&item.PinnedAt,
		&item.CreatedAt,
	); err != nil {
		return nil, err
	}

	return &item, nil
}

func (r *contentRepo) FindAll(ctx context.Context) ([]model.ContentItem, error) {
	rows, err := r.db.Query(ctx, "SELECT "+contentColumns+" FROM content_items c ORDER BY c.created_at DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContentItems(rows)
}

func (r *contentRepo) FindExpiredBefore(ctx context.Context, cutoff time.Time) ([]model.ContentItem, error) {
	rows, err := r.db.Query(ctx, "SELECT "+contentColumns+" FROM content_items c WHERE c.expire_at IS NOT NULL AND c.expire_at <= $1", cutoff)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return scanContentItems(rows)
}

func scanContentItems(rows pgx.Rows) ([]model.ContentItem, error) {
	var items []model.ContentItem
	for rows.Next() {
		var item model.ContentItem
		if err := rows.Scan(
			&item.ID,
			&item.Kind,
			&item.Title,
			&item.Body,
			&item.Audience,
			&item.PostedBy,
			&item.ScheduleAt,
			&item.ExpireAt,
			&item.Completed,
			&item.Pinned,
			&item.PinnedAt,
			&item.CreatedAt,
		); err != nil {
			return nil, err
		}

		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *contentRepo) UpdateByID(ctx context.Context, id uuid.UUID, updates map[string]interface{}) error {
	query := "UPDATE content_items SET "
	args := []interface{}{}
	i := 1

	for column, value := range updates {
		query += (column + " = $" + strconv.Itoa(i) + ", ")
		args = append(args, value)
		i++
	}

	query = query[:len(query)-2] + " WHERE id = $" + strconv.Itoa(i) + " RETURNING id"
	args = append(args, id)

	var returnedID uuid.UUID
	err := r.db.QueryRow(ctx, query, args...).Scan(&returnedID)
	if err == pgx.ErrNoRows {
		return nil
	}
	return err
}

// Delete reports whether a row was actually removed, so callers racing on the
// same item can tell winner from loser.
func (r *contentRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM content_items WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
