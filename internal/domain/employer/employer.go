package employer

import (
	"context"

	"jobpulse/internal/common"
)

type Employer struct {
	ID    common.UUID `json:"id"`
	Name  string      `json:"name"`
	Email string      `json:"email"`
}

type Repository interface {
	GetByID(ctx context.Context, id common.UUID) (*Employer, error)
}
