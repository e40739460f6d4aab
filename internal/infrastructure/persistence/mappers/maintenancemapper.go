package mappers

import (
	"skywrench/internal/domain/maintenance"
	"skywrench/internal/infrastructure/persistence/models"
)

type MaintenanceMapper interface {
	ToModel(s *maintenance.Schedule) *models.MaintenanceScheduleModel
	ToDomain(model *models.MaintenanceScheduleModel) *maintenance.Schedule
}

type MaintenanceMapperImpl struct{}

func NewMaintenanceMapper() MaintenanceMapper {
	return &MaintenanceMapperImpl{}
}

func (m *MaintenanceMapperImpl) ToModel(s *maintenance.Schedule) *models.MaintenanceScheduleModel {
	return &models.MaintenanceScheduleModel{
		ID:                  s.ID(),
		UAVModel:            s.UAVModel(),
		UAVSerial:           s.UAVSerial(),
		CustomerID:          s.CustomerID(),
		IntervalType:        string(s.IntervalType()),
		FlightHoursInterval: s.FlightHoursInterval(),
		DayInterval:         s.DayInterval(),
		CurrentFlightHours:  s.CurrentFlightHours(),
		LastFlightHours:     s.LastFlightHours(),
		Description:         s.Description(),
		Active:              s.IsActive(),
		LastPerformedAt:     timePtrToMillis(s.LastPerformedAt()),
		NextDueAt:           timePtrToMillis(s.NextDueAt()),
		NotificationSent:    s.NotificationSent(),
		IncidentID:          s.IncidentID(),
		CreatedAt:           s.CreatedAt().UnixMilli(),
		UpdatedAt:           s.UpdatedAt().UnixMilli(),
	}
}

func (m *MaintenanceMapperImpl) ToDomain(model *models.MaintenanceScheduleModel) *maintenance.Schedule {
	return maintenance.ReconstructSchedule(maintenance.ReconstructedSchedule{
		ID:                  model.ID,
		UAVModel:            model.UAVModel,
		UAVSerial:           model.UAVSerial,
		CustomerID:          model.CustomerID,
		IntervalType:        maintenance.IntervalType(model.IntervalType),
		FlightHoursInterval: model.FlightHoursInterval,
		DayInterval:         model.DayInterval,
		CurrentFlightHours:  model.CurrentFlightHours,
		LastFlightHours:     model.LastFlightHours,
		Description:         model.Description,
		Active:              model.Active,
		LastPerformedAt:     millisPtrToTime(model.LastPerformedAt),
		NextDueAt:           millisPtrToTime(model.NextDueAt),
		NotificationSent:    model.NotificationSent,
		IncidentID:          model.IncidentID,
		CreatedAt:           millisToTime(model.CreatedAt),
		UpdatedAt:           millisToTime(model.UpdatedAt),
	})
}
