package uow

import (
	"context"

	"onboarding-service/internal/domain/submission"
)

type Repos struct {
	Submissions submission.Repository
}

type UnitOfWork interface {
	// WithinTx commits when fn returns nil and rolls back otherwise.
	WithinTx(ctx context.Context, fn func(r Repos) error) error
}
