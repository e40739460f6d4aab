package usecases

import (
	"context"
	"time"

	"skywrench/internal/domain/incident"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type ListActivitiesQuery struct {
	IncidentID   uint
	CustomerView bool
}

type ActivityEntry struct {
	ID              uint
	ActorID         *uint
	Action          string
	Detail          string
	CustomerVisible bool
	CreatedAt       time.Time
}

type ListActivitiesUseCase struct {
	incidentRepo incident.Repository
	logger       logger.Interface
}

func NewListActivitiesUseCase(incidentRepo incident.Repository, logger logger.Interface) *ListActivitiesUseCase {
	return &ListActivitiesUseCase{incidentRepo: incidentRepo, logger: logger}
}

// Execute returns the incident timeline. CustomerView filters the log to
// customer-visible rows.
func (uc *ListActivitiesUseCase) Execute(ctx context.Context, q ListActivitiesQuery) ([]ActivityEntry, error) {
	if q.IncidentID == 0 {
		return nil, errors.NewValidationError("incident ID is required")
	}
	if _, err := uc.incidentRepo.FindByID(ctx, q.IncidentID); err != nil {
		return nil, err
	}

	activities, err := uc.incidentRepo.ListActivities(ctx, q.IncidentID)
	if err != nil {
		uc.logger.Errorw("failed to list activities", "incident_id", q.IncidentID, "error", err)
		return nil, err
	}

	entries := make([]ActivityEntry, 0, len(activities))
	for _, act := range activities {
		if q.CustomerView && !act.CustomerVisible() {
			continue
		}
		entries = append(entries, ActivityEntry{
			ID:              act.ID(),
			ActorID:         act.ActorID(),
			Action:          act.Action(),
			Detail:          act.Detail(),
			CustomerVisible: act.CustomerVisible(),
			CreatedAt:       act.CreatedAt(),
		})
	}
	return entries, nil
}
