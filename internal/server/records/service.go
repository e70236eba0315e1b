package records

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/qianzhu/lifeplanner/internal/common"
	"github.com/qianzhu/lifeplanner/internal/logging"
)

// Origin reports how a loaded record was produced, so callers and tests can
// distinguish "defaults used because nothing is stored" from "defaults used
// because storage failed".
type Origin int

const (
	// OriginStored: the record came from a stored row.
	OriginStored Origin = iota
	// OriginDefault: no row exists yet; an empty-but-valid default was returned.
	OriginDefault
	// OriginFallback: the storage call failed; the default was returned fail-open.
	OriginFallback
)

// Service is the record store adapter: it wraps the repository with the
// field mapper and normalizer on both directions and implements the
// upsert-by-existence-check save policy. The check-then-write upsert can
// race with a concurrent writer for the same user; with one user per
// account that risk is accepted instead of introducing locking.
type Service struct {
	repo   Repository
	logger logging.Logger
	now    func() time.Time
}

func NewService(repo Repository, logger logging.Logger) *Service {
	return &Service{repo: repo, logger: logger, now: time.Now}
}

// Load fetches, unmaps and sanitizes the record for userID. It fails open:
// a missing row yields the default record with OriginDefault, a storage
// failure yields the default record with OriginFallback plus the error.
func (s *Service) Load(ctx context.Context, userID string) (Fields, Origin, error) {
	row, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return DefaultRecord(), OriginDefault, nil
		}
		s.logger.Error(ctx, "record load failed", "user_id", userID, "error", err)
		return DefaultRecord(), OriginFallback, err
	}
	return SanitizeForRead(FromStorage(row)), OriginStored, nil
}

// LoadRaw returns the stored record in the application vocabulary without
// sanitizing, so callers can tell never-stored fields (absent or nil) from
// stored zero values. A missing row yields an empty bag.
func (s *Service) LoadRaw(ctx context.Context, userID string) (Fields, error) {
	row, err := s.repo.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return Fields{}, nil
		}
		return Fields{}, err
	}
	return FromStorage(row), nil
}

// Save normalizes the field bag, maps it to the storage vocabulary, filters
// it through the allow-list and upserts it by existence check, stamping
// created_at on first insert and updated_at always.
func (s *Service) Save(ctx context.Context, userID string, fields Fields) error {
	if userID == "" {
		return fmt.Errorf("save: %w", common.ErrorUnauthorized)
	}

	row := FilterWritable(ToStorage(NormalizeForWrite(fields)))
	row["updated_at"] = s.now()

	exists, err := s.repo.Exists(ctx, userID)
	if err != nil {
		return fmt.Errorf("record existence check: %w", err)
	}

	if exists {
		if err := s.repo.Update(ctx, userID, row); err != nil {
			return fmt.Errorf("record update: %w", err)
		}
		return nil
	}

	row["user_id"] = userID
	row["created_at"] = row["updated_at"]
	if err := s.repo.Insert(ctx, row); err != nil {
		return fmt.Errorf("record insert: %w", err)
	}
	return nil
}
