package application

import (
	"context"

	"jobpulse/internal/common"
)

// Repository reads application aggregates. Applications themselves are owned
// by the surrounding platform; this core never writes them.
type Repository interface {
	CountByPosting(ctx context.Context, postingID common.UUID) (int, error)
	ListByPosting(ctx context.Context, postingID common.UUID) ([]Application, error)
}
