// Package snapshots maintains the shared once-per-day content digest
// (finance news, health tips, education info) shown on every dashboard.
// Snapshots are generated at most once per calendar day, stored in Postgres
// and fronted by a Redis day cache.
package snapshots

import (
	"context"

	"github.com/qianzhu/lifeplanner/internal/server/models"
)

type Repository interface {
	// GetByDate returns the snapshot for the given ISO date, or
	// common.ErrorNotFound.
	GetByDate(ctx context.Context, date string) (*models.DailySnapshot, error)

	// Insert writes a new snapshot row. Rows are immutable once written.
	Insert(ctx context.Context, snap *models.DailySnapshot) error
}
