package postgres

import (
	"context"
	"database/sql"
	"errors"

	"jobpulse/internal/common"
	"jobpulse/internal/domain/employer"
)

type EmployerRepository struct {
	db *sql.DB
}

func NewEmployerRepository(db *sql.DB) *EmployerRepository {
	return &EmployerRepository{db: db}
}

func (r *EmployerRepository) GetByID(ctx context.Context, id common.UUID) (*employer.Employer, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, email FROM employers WHERE id = $1`, id)
	var e employer.Employer
	if err := row.Scan(&e.ID, &e.Name, &e.Email); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "employer not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load employer", err)
	}
	return &e, nil
}
