package numbering

import (
	"context"
	"fmt"
	"time"

	"gorm.io/gorm"

	"skywrench/internal/infrastructure/persistence/models"
	"skywrench/internal/shared/biztime"
	"skywrench/internal/shared/constants"
	"skywrench/internal/shared/db"
)

const maxAttempts = 5

// IncidentNumberGenerator hands out numbers like UAV-2026-0042, sequential
// within the calendar year. Concurrent raises can race on the count, so the
// candidate is re-checked and bumped a few times before falling back to a
// timestamp suffix that cannot collide.
type IncidentNumberGenerator struct {
	db *gorm.DB
}

func NewIncidentNumberGenerator(db *gorm.DB) *IncidentNumberGenerator {
	return &IncidentNumberGenerator{db: db}
}

func (g *IncidentNumberGenerator) Next(ctx context.Context) (string, error) {
	return nextNumber(ctx, g.db, constants.IncidentNumberPrefix, &models.IncidentModel{})
}

// WorkOrderNumberGenerator issues WO-2026-0042 style numbers.
type WorkOrderNumberGenerator struct {
	db *gorm.DB
}

func NewWorkOrderNumberGenerator(db *gorm.DB) *WorkOrderNumberGenerator {
	return &WorkOrderNumberGenerator{db: db}
}

func (g *WorkOrderNumberGenerator) Next(ctx context.Context) (string, error) {
	return nextNumber(ctx, g.db, constants.WorkOrderNumberPrefix, &models.WorkOrderModel{})
}

func nextNumber(ctx context.Context, gdb *gorm.DB, prefix string, model interface{}) (string, error) {
	tx := db.GetTxFromContext(ctx, gdb)
	year := biztime.NowUTC().Year()
	yearPrefix := fmt.Sprintf("%s-%d-", prefix, year)

	var count int64
	if err := tx.
		Model(model).
		Where("number LIKE ?", yearPrefix+"%").
		Count(&count).Error; err != nil {
		return "", fmt.Errorf("failed to count %s numbers: %w", prefix, err)
	}

	for attempt := 0; attempt < maxAttempts; attempt++ {
		candidate := fmt.Sprintf("%s%04d", yearPrefix, count+1+int64(attempt))

		var existing int64
		if err := tx.
			Model(model).
			Where("number = ?", candidate).
			Count(&existing).Error; err != nil {
			return "", fmt.Errorf("failed to check %s number: %w", prefix, err)
		}
		if existing == 0 {
			return candidate, nil
		}
	}

	// Sequence contention exhausted the retries; a nanosecond suffix is unique
	// enough and still sorts within the year.
	return fmt.Sprintf("%s%d", yearPrefix, time.Now().UnixNano()%1_000_000_000), nil
}
