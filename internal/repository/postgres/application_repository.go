package postgres

import (
	"context"
	"database/sql"

	"jobpulse/internal/common"
	"jobpulse/internal/domain/application"
)

type ApplicationRepository struct {
	db *sql.DB
}

func NewApplicationRepository(db *sql.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

func (r *ApplicationRepository) CountByPosting(ctx context.Context, postingID common.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM applications WHERE posting_id = $1`, postingID).Scan(&count)
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count applications", err)
	}
	return count, nil
}

func (r *ApplicationRepository) ListByPosting(ctx context.Context, postingID common.UUID) ([]application.Application, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, posting_id, candidate_id, status, created_at, updated_at
		FROM applications WHERE posting_id = $1 ORDER BY created_at DESC`, postingID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list applications", err)
	}
	defer rows.Close()
	var items []application.Application
	for rows.Next() {
		var a application.Application
		if err := rows.Scan(&a.ID, &a.PostingID, &a.CandidateID, &a.Status, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan application", err)
		}
		items = append(items, a)
	}
	return items, nil
}
