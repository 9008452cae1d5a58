package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"jobpulse/internal/common"
	"jobpulse/internal/domain/candidate"
)

type CandidateRepository struct {
	db *sql.DB
}

func NewCandidateRepository(db *sql.DB) *CandidateRepository {
	return &CandidateRepository{db: db}
}

func (r *CandidateRepository) GetByID(ctx context.Context, id common.UUID) (*candidate.Candidate, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, email, skills, years_experience, degree, location
		FROM candidates WHERE id = $1`, id)
	var c candidate.Candidate
	if err := row.Scan(&c.ID, &c.Name, &c.Email, pq.Array(&c.Skills), &c.Years, &c.Degree, &c.Location); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "candidate not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load candidate", err)
	}
	return &c, nil
}

func (r *CandidateRepository) ListByIDs(ctx context.Context, ids []common.UUID) ([]candidate.Candidate, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	values := make([]string, 0, len(ids))
	for _, id := range ids {
		values = append(values, id.String())
	}
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, email, skills, years_experience, degree, location
		FROM candidates WHERE id = ANY($1::uuid[])`, pq.Array(values))
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list candidates", err)
	}
	defer rows.Close()
	var items []candidate.Candidate
	for rows.Next() {
		var c candidate.Candidate
		if err := rows.Scan(&c.ID, &c.Name, &c.Email, pq.Array(&c.Skills), &c.Years, &c.Degree, &c.Location); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan candidate", err)
		}
		items = append(items, c)
	}
	return items, nil
}
