package usecases

import (
	"context"

	incidentuc "skywrench/internal/application/incident/usecases"
	"skywrench/internal/domain/incident"
	"skywrench/internal/domain/maintenance"
	"skywrench/internal/shared/logger"
)

// Scheduler creates preventive maintenance plans out of closed service
// incidents.
type Scheduler struct {
	repo   maintenance.Repository
	logger logger.Interface
}

var _ incidentuc.MaintenanceScheduler = (*Scheduler)(nil)

func NewScheduler(repo maintenance.Repository, logger logger.Interface) *Scheduler {
	return &Scheduler{repo: repo, logger: logger}
}

func (s *Scheduler) CreateForIncident(ctx context.Context, inc *incident.Incident, intervalType string, flightHoursInterval float64, dayInterval int, description string) (uint, error) {
	it, err := maintenance.NewIntervalType(intervalType)
	if err != nil {
		return 0, err
	}

	incidentID := inc.ID()
	schedule, err := maintenance.NewSchedule(maintenance.NewScheduleParams{
		UAVModel:            inc.UAVModel(),
		UAVSerial:           inc.UAVSerial(),
		CustomerID:          inc.CustomerID(),
		IntervalType:        it,
		FlightHoursInterval: flightHoursInterval,
		DayInterval:         dayInterval,
		Description:         description,
		IncidentID:          &incidentID,
	})
	if err != nil {
		return 0, err
	}

	if err := s.repo.Save(ctx, schedule); err != nil {
		s.logger.Errorw("failed to save maintenance schedule", "incident_id", incidentID, "error", err)
		return 0, err
	}

	s.logger.Infow("maintenance schedule created",
		"schedule_id", schedule.ID(), "incident_id", incidentID, "interval_type", it)
	return schedule.ID(), nil
}
