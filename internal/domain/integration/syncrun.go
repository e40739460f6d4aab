package integration

import (
	"context"
	"strings"
	"time"

	"skywrench/internal/shared/biztime"
	"skywrench/internal/shared/errors"
)

// SyncRun records one execution of a connector sync for auditing.
type SyncRun struct {
	id               uint
	connectorName    string
	entityType       string
	success          bool
	recordsProcessed int
	recordsSuccess   int
	recordsError     int
	errorDetail      string
	startedAt        time.Time
	finishedAt       time.Time
}

// NewSyncRun captures the outcome of a finished sync.
func NewSyncRun(connectorName, entityType string, result *SyncResult, startedAt time.Time) (*SyncRun, error) {
	connectorName = strings.TrimSpace(connectorName)
	if connectorName == "" {
		return nil, errors.NewValidationError("connector name is required")
	}
	if result == nil {
		return nil, errors.NewValidationError("sync result is required")
	}
	return &SyncRun{
		connectorName:    connectorName,
		entityType:       strings.TrimSpace(entityType),
		success:          result.Success,
		recordsProcessed: result.RecordsProcessed,
		recordsSuccess:   result.RecordsSuccess,
		recordsError:     result.RecordsError,
		errorDetail:      strings.Join(result.Errors, "; "),
		startedAt:        startedAt,
		finishedAt:       biztime.NowUTC(),
	}, nil
}

// ReconstructSyncRun rebuilds a run from persistence.
func ReconstructSyncRun(id uint, connectorName, entityType string, success bool, processed, succeeded, failed int, errorDetail string, startedAt, finishedAt time.Time) *SyncRun {
	return &SyncRun{
		id:               id,
		connectorName:    connectorName,
		entityType:       entityType,
		success:          success,
		recordsProcessed: processed,
		recordsSuccess:   succeeded,
		recordsError:     failed,
		errorDetail:      errorDetail,
		startedAt:        startedAt,
		finishedAt:       finishedAt,
	}
}

func (s *SyncRun) ID() uint              { return s.id }
func (s *SyncRun) ConnectorName() string { return s.connectorName }
func (s *SyncRun) EntityType() string    { return s.entityType }
func (s *SyncRun) Success() bool         { return s.success }
func (s *SyncRun) RecordsProcessed() int { return s.recordsProcessed }
func (s *SyncRun) RecordsSuccess() int   { return s.recordsSuccess }
func (s *SyncRun) RecordsError() int     { return s.recordsError }
func (s *SyncRun) ErrorDetail() string   { return s.errorDetail }
func (s *SyncRun) StartedAt() time.Time  { return s.startedAt }
func (s *SyncRun) FinishedAt() time.Time { return s.finishedAt }

func (s *SyncRun) SetID(id uint) error {
	if s.id != 0 {
		return errors.NewInternalError("sync run ID already set")
	}
	s.id = id
	return nil
}

// Repository persists sync run records.
type Repository interface {
	SaveRun(ctx context.Context, run *SyncRun) error
	ListRuns(ctx context.Context, connectorName string, offset, limit int) ([]*SyncRun, int64, error)
}
