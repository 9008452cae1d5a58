package postgres

import (
	"context"
	"database/sql"
	"time"

	"jobpulse/internal/common"
	"jobpulse/internal/domain/event"
)

type EventRepository struct {
	db *sql.DB
}

func NewEventRepository(db *sql.DB) *EventRepository {
	return &EventRepository{db: db}
}

func (r *EventRepository) Create(ctx context.Context, e event.Event) (*event.Event, error) {
	e.ID = common.NewUUID()
	e.CreatedAt = time.Now().UTC()
	_, err := r.db.ExecContext(ctx, `INSERT INTO job_fair_events (id, owner_id, title, description, starts_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		e.ID, e.OwnerID, e.Title, e.Description, e.StartsAt, e.CreatedAt)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to create event", err)
	}
	return &e, nil
}

func (r *EventRepository) ListUpcoming(ctx context.Context, asOf time.Time, limit int) ([]event.Event, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, owner_id, title, description, starts_at, created_at
		FROM job_fair_events WHERE starts_at >= $1 ORDER BY starts_at ASC LIMIT $2`, asOf, limit)
	if err != nil {
		return nil, common.NewError(common.CodeInternal, "failed to list events", err)
	}
	defer rows.Close()
	var items []event.Event
	for rows.Next() {
		var e event.Event
		if err := rows.Scan(&e.ID, &e.OwnerID, &e.Title, &e.Description, &e.StartsAt, &e.CreatedAt); err != nil {
			return nil, common.NewError(common.CodeInternal, "failed to scan event", err)
		}
		items = append(items, e)
	}
	return items, nil
}
