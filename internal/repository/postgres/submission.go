package postgres

import (
	"context"

	"github.com/SchoolApp/content-service/internal/model"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
)

type submissionRepo struct {
	db *pgxpool.Pool
}

func newSubmissionRepo(db *pgxpool.Pool) Submission {
	return &submissionRepo{
		db: db,
	}
}

const submissionColumns = "s.id, s.kind, s.title, s.body, s.audience, s.schedule_at, s.expire_at, s.submitted_by, s.submitted_at"

func (r *submissionRepo) Create(ctx context.Context, sub model.PendingSubmission) error {
	_, err := r.db.Exec(
		ctx,
		`
		INSERT INTO pending_submissions(id, kind, title, body, audience, schedule_at, expire_at, submitted_by, submitted_at)
		VALUES($1, $2, $3, $4, $5, $6, $7, $8, $9)
		`,
		sub.ID, sub.Kind, sub.Title, sub.Body, sub.Audience, sub.ScheduleAt, sub.ExpireAt, sub.SubmittedBy, sub.SubmittedAt,
	)
	return err
}

func (r *submissionRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.PendingSubmission, error) {
	var sub model.PendingSubmission
	if err := r.db.QueryRow(ctx, "SELECT "+submissionColumns+" FROM pending_submissions s WHERE s.id = $1", id).Scan(
		&sub.ID,
		&sub.Kind,
		&sub.Title,
		&sub.Body,
		&sub.Audience,
		&sub.ScheduleAt,
		&sub.ExpireAt,
		&sub.SubmittedBy,
		&sub.SubmittedAt,
	); err != nil {
		return nil, err
	}

	return &sub, nil
}

func (r *submissionRepo) FindAll(ctx context.Context) ([]*model.PendingSubmission, error) {
	rows, err := r.db.Query(ctx, "SELECT "+submissionColumns+" FROM pending_submissions s ORDER BY s.submitted_at ASC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var subs []*model.PendingSubmission
	for rows.Next() {
		var sub model.PendingSubmission
		if err := rows.Scan(
			&sub.ID,
			&sub.Kind,
			&sub.Title,
			&sub.Body,
			&sub.Audience,
			&sub.ScheduleAt,
			&sub.ExpireAt,
			&sub.SubmittedBy,
			&sub.SubmittedAt,
		); err != nil {
			return nil, err
		}

		subs = append(subs, &sub)
	}

	return subs, rows.Err()
}

// Delete is the moderation race guard: of two concurrent approvals only one
// sees a row removed here.
func (r *submissionRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := r.db.Exec(ctx, "DELETE FROM pending_submissions WHERE id = $1", id)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
