package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"jobpulse/internal/common"
	"jobpulse/internal/domain/posting"
)

const postingColumns = `id, owner_id, company_name, position, location, description, qualifications, deadline, status, created_at, updated_at`

type PostingRepository struct {
	db *sql.DB
}

func NewPostingRepository(db *sql.DB) *PostingRepository {
	return &PostingRepository{db: db}
}

func scanPosting(row interface{ Scan(...interface{}) error }) (*posting.Posting, error) {
	var p posting.Posting
	err := row.Scan(&p.ID, &p.OwnerID, &p.CompanyName, &p.Position, &p.Location, &p.Description, &p.Qualifications, &p.Deadline, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PostingRepository) Create(ctx context.Context, p posting.Posting) (*posting.Posting, error) {
	p.ID = common.NewUUID()
	now := time.Now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	_, err := r.db.ExecContext(ctx, `INSERT INTO postings (`+postingColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		p.ID, p.OwnerID, p.CompanyName, p.Position, p.Location, p.Description, p.Qualifications, p.Deadline, p.Status, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create posting", err)
	}
	return &p, nil
}

func (r *PostingRepository) Update(ctx context.Context, p posting.Posting) (*posting.Posting, error) {
	p.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx, `UPDATE postings SET company_name = $1, position = $2, location = $3, description = $4, qualifications = $5, deadline = $6, updated_at = $7
		WHERE id = $8 AND owner_id = $9`,
		p.CompanyName, p.Position, p.Location, p.Description, p.Qualifications, p.Deadline, p.UpdatedAt, p.ID, p.OwnerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to update posting", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return nil, common.NewError(common.CodeNotFound, "posting not found", sql.ErrNoRows)
	}
	return &p, nil
}

func (r *PostingRepository) GetByOwner(ctx context.Context, ownerID, id common.UUID) (*posting.Posting, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+postingColumns+` FROM postings WHERE id = $1 AND owner_id = $2`, id, ownerID)
	p, err := scanPosting(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "posting not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load posting", err)
	}
	return p, nil
}

func (r *PostingRepository) GetByID(ctx context.Context, id common.UUID) (*posting.Posting, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+postingColumns+` FROM postings WHERE id = $1`, id)
	p, err := scanPosting(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "posting not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to load posting", err)
	}
	return p, nil
}

func (r *PostingRepository) ListByOwner(ctx context.Context, ownerID common.UUID) ([]posting.Posting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+postingColumns+` FROM postings WHERE owner_id = $1 ORDER BY created_at DESC`, ownerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list postings", err)
	}
	defer rows.Close()
	return collectPostings(rows)
}

func (r *PostingRepository) Delete(ctx context.Context, ownerID, id common.UUID) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM postings WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return common.NewError(common.CodeInternal, "failed to delete posting", err)
	}
	rows, err := result.RowsAffected()
	if err == nil && rows == 0 {
		return common.NewError(common.CodeNotFound, "posting not found", sql.ErrNoRows)
	}
	return nil
}

func (r *PostingRepository) CountActiveByOwner(ctx context.Context, ownerID common.UUID) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM postings WHERE owner_id = $1 AND status = $2`, ownerID, posting.StatusActive).Scan(&count)
	if err != nil {
		return 0, common.NewError(common.CodeInternal, "failed to count active postings", err)
	}
	return count, nil
}

func (r *PostingRepository) SetStatus(ctx context.Context, ownerID, id common.UUID, status posting.Status) (*posting.Posting, error) {
	row := r.db.QueryRowContext(ctx, `UPDATE postings SET status = $1, updated_at = $2 WHERE id = $3 AND owner_id = $4
		RETURNING `+postingColumns, status, time.Now().UTC(), id, ownerID)
	p, err := scanPosting(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "posting not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to update posting status", err)
	}
	return p, nil
}

// PublishWithinQuota locks the owner's postings, re-counts the active ones and
// flips the target to active in the same transaction. This closes the
// check-then-act window between the quota read and the status write.
func (r *PostingRepository) PublishWithinQuota(ctx context.Context, ownerID, id common.UUID, limit int) (*posting.Posting, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to begin transaction", err)
	}
	defer func() { _ = tx.Rollback() }()

	rows, err := tx.QueryContext(ctx, `SELECT status FROM postings WHERE owner_id = $1 FOR UPDATE`, ownerID)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to lock postings", err)
	}
	active := 0
	for rows.Next() {
		var status posting.Status
		if err := rows.Scan(&status); err != nil {
			rows.Close()
			return nil, common.NewError(common.CodeInternal, "failed to scan posting status", err)
		}
		if status == posting.StatusActive {
			active++
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to read posting statuses", err)
	}
	if active >= limit {
		return nil, common.NewError(common.CodeQuotaExceeded, "active posting limit reached", nil)
	}

	row := tx.QueryRowContext(ctx, `UPDATE postings SET status = $1, updated_at = $2
		WHERE id = $3 AND owner_id = $4 AND status = $5
		RETURNING `+postingColumns,
		posting.StatusActive, time.Now().UTC(), id, ownerID, posting.StatusDraft)
	p, err := scanPosting(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "posting not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to publish posting", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to commit publish", err)
	}
	return p, nil
}

func (r *PostingRepository) ListExpiringBetween(ctx context.Context, from, to time.Time) ([]posting.Posting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+postingColumns+` FROM postings
		WHERE status = $1 AND deadline >= $2 AND deadline <= $3 ORDER BY deadline ASC`,
		posting.StatusActive, from, to)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list expiring postings", err)
	}
	defer rows.Close()
	return collectPostings(rows)
}

func (r *PostingRepository) ListExpired(ctx context.Context, asOf time.Time) ([]posting.Posting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+postingColumns+` FROM postings
		WHERE status = $1 AND deadline < $2 ORDER BY deadline ASC`,
		posting.StatusActive, asOf)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list expired postings", err)
	}
	defer rows.Close()
	return collectPostings(rows)
}

func (r *PostingRepository) MarkExpired(ctx context.Context, id common.UUID) (*posting.Posting, error) {
	row := r.db.QueryRowContext(ctx, `UPDATE postings SET status = $1, updated_at = $2
		WHERE id = $3 AND status = $4 RETURNING `+postingColumns,
		posting.StatusExpired, time.Now().UTC(), id, posting.StatusActive)
	p, err := scanPosting(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.NewError(common.CodeNotFound, "posting not found", err)
		}
		return nil, common.NewError(common.CodeInternal, "failed to expire posting", err)
	}
	return p, nil
}

func (r *PostingRepository) SearchSimilar(ctx context.Context, position, description string, excludeID common.UUID, limit int) ([]posting.Posting, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+postingColumns+` FROM postings
		WHERE status = $1 AND id <> $2
		  AND to_tsvector('english', position || ' ' || description) @@ plainto_tsquery('english', $3)
		ORDER BY created_at DESC LIMIT $4`,
		posting.StatusActive, excludeID, position+" "+description, limit)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to search similar postings", err)
	}
	defer rows.Close()
	return collectPostings(rows)
}

func collectPostings(rows *sql.Rows) ([]posting.Posting, error) {
	var items []posting.Posting
	for rows.Next() {
		p, err := scanPosting(rows)
		if err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan posting", err)
		}
		items = append(items, *p)
	}
	return items, nil
}
