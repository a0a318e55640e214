package submission

import "context"

type Repository interface {
	// Create inserts a new record; ID and timestamps are filled in on success.
	Create(ctx context.Context, r *Record) error

	// ListByPlace returns every record for placeID in insertion order.
	ListByPlace(ctx context.Context, placeID string) ([]Record, error)
}
