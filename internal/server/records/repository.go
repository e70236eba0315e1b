package records

import "context"

// Repository is row-oriented access to the user_data table. Rows travel as
// field bags in the storage vocabulary; the service layer applies the
// mapper and normalizer around these calls.
type Repository interface {
	// Get returns the stored row for userID, or common.ErrorNotFound.
	// If storage defensively returns duplicates, the first row wins.
	Get(ctx context.Context, userID string) (Fields, error)

	// Exists reports whether a row for userID is present.
	Exists(ctx context.Context, userID string) (bool, error)

	// Insert writes a new row. The row must carry user_id, created_at and
	// updated_at.
	Insert(ctx context.Context, row Fields) error

	// Update overwrites the given columns of the row matching userID.
	Update(ctx context.Context, userID string, row Fields) error
}
