package candidate

import (
	"context"

	"jobpulse/internal/common"
)

type Repository interface {
	GetByID(ctx context.Context, id common.UUID) (*Candidate, error)
	ListByIDs(ctx context.Context, ids []common.UUID) ([]Candidate, error)
}
