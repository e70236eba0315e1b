package snapshots

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/qianzhu/lifeplanner/internal/common"
	"github.com/qianzhu/lifeplanner/internal/dbx"
	"github.com/qianzhu/lifeplanner/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

func (r *PostgresRepository) GetByDate(ctx context.Context, date string) (*models.DailySnapshot, error) {
	query := `SELECT date, finance_news, health_tips, education_info, created_at
		FROM daily_updates WHERE date = $1`

	var snap models.DailySnapshot
	err := r.db.QueryRowContext(ctx, query, date).Scan(
		&snap.Date, &snap.FinanceNews, &snap.HealthTips, &snap.EducationInfo, &snap.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, common.ErrorNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("db error: %w", err)
	}
	return &snap, nil
}

func (r *PostgresRepository) Insert(ctx context.Context, snap *models.DailySnapshot) error {
	query := `INSERT INTO daily_updates (date, finance_news, health_tips, education_info, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	_, err := r.db.ExecContext(ctx, query,
		snap.Date, snap.FinanceNews, snap.HealthTips, snap.EducationInfo, snap.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	return nil
}
