package usecases

import (
	"context"
	"time"

	"skywrench/internal/domain/maintenance"
	"skywrench/internal/shared/biztime"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
	"skywrench/internal/shared/utils"
)

type CreateScheduleCommand struct {
	UAVModel            string
	UAVSerial           string
	CustomerID          uint
	IntervalType        string
	FlightHoursInterval float64
	DayInterval         int
	CurrentFlightHours  float64
	Description         string
}

type ScheduleResult struct {
	ID                  uint
	UAVModel            string
	UAVSerial           string
	CustomerID          uint
	IntervalType        string
	FlightHoursInterval float64
	DayInterval         int
	CurrentFlightHours  float64
	LastFlightHours     float64
	Description         string
	Active              bool
	Due                 bool
	LastPerformedAt     *time.Time
	NextDueAt           *time.Time
	IncidentID          *uint
}

type CreateScheduleUseCase struct {
	repo   maintenance.Repository
	logger logger.Interface
}

func NewCreateScheduleUseCase(repo maintenance.Repository, logger logger.Interface) *CreateScheduleUseCase {
	return &CreateScheduleUseCase{repo: repo, logger: logger}
}

func (uc *CreateScheduleUseCase) Execute(ctx context.Context, cmd CreateScheduleCommand) (*ScheduleResult, error) {
	it, err := maintenance.NewIntervalType(cmd.IntervalType)
	if err != nil {
		return nil, err
	}

	schedule, err := maintenance.NewSchedule(maintenance.NewScheduleParams{
		UAVModel:            cmd.UAVModel,
		UAVSerial:           cmd.UAVSerial,
		CustomerID:          cmd.CustomerID,
		IntervalType:        it,
		FlightHoursInterval: cmd.FlightHoursInterval,
		DayInterval:         cmd.DayInterval,
		CurrentFlightHours:  cmd.CurrentFlightHours,
		Description:         cmd.Description,
	})
	if err != nil {
		return nil, err
	}

	if err := uc.repo.Save(ctx, schedule); err != nil {
		uc.logger.Errorw("failed to save maintenance schedule", "uav_serial", cmd.UAVSerial, "error", err)
		return nil, err
	}

	uc.logger.Infow("maintenance schedule created", "schedule_id", schedule.ID(), "uav_serial", schedule.UAVSerial())
	return scheduleToResult(schedule, biztime.NowUTC()), nil
}

type UpdateScheduleCommand struct {
	ScheduleID          uint
	IntervalType        string
	FlightHoursInterval float64
	DayInterval         int
	Description         string
	Active              *bool
}

type UpdateScheduleUseCase struct {
	repo   maintenance.Repository
	logger logger.Interface
}

func NewUpdateScheduleUseCase(repo maintenance.Repository, logger logger.Interface) *UpdateScheduleUseCase {
	return &UpdateScheduleUseCase{repo: repo, logger: logger}
}

func (uc *UpdateScheduleUseCase) Execute(ctx context.Context, cmd UpdateScheduleCommand) (*ScheduleResult, error) {
	if cmd.ScheduleID == 0 {
		return nil, errors.NewValidationError("schedule ID is required")
	}

	schedule, err := uc.repo.FindByID(ctx, cmd.ScheduleID)
	if err != nil {
		return nil, err
	}

	it, err := maintenance.NewIntervalType(cmd.IntervalType)
	if err != nil {
		return nil, err
	}
	if err := schedule.UpdateDetails(it, cmd.FlightHoursInterval, cmd.DayInterval, cmd.Description); err != nil {
		return nil, err
	}
	if cmd.Active != nil {
		if *cmd.Active {
			schedule.Activate()
		} else {
			schedule.Deactivate()
		}
	}

	if err := uc.repo.Update(ctx, schedule); err != nil {
		uc.logger.Errorw("failed to update maintenance schedule", "schedule_id", cmd.ScheduleID, "error", err)
		return nil, err
	}
	return scheduleToResult(schedule, biztime.NowUTC()), nil
}

type RecordFlightHoursCommand struct {
	ScheduleID uint
	TotalHours float64
}

// RecordFlightHoursUseCase books the airframe's accumulated flight hours
// against its maintenance plan.
type RecordFlightHoursUseCase struct {
	repo   maintenance.Repository
	logger logger.Interface
}

func NewRecordFlightHoursUseCase(repo maintenance.Repository, logger logger.Interface) *RecordFlightHoursUseCase {
	return &RecordFlightHoursUseCase{repo: repo, logger: logger}
}

func (uc *RecordFlightHoursUseCase) Execute(ctx context.Context, cmd RecordFlightHoursCommand) (*ScheduleResult, error) {
	if cmd.ScheduleID == 0 {
		return nil, errors.NewValidationError("schedule ID is required")
	}

	schedule, err := uc.repo.FindByID(ctx, cmd.ScheduleID)
	if err != nil {
		return nil, err
	}
	if err := schedule.RecordFlightHours(cmd.TotalHours); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, schedule); err != nil {
		return nil, err
	}

	now := biztime.NowUTC()
	if schedule.IsDue(now) {
		uc.logger.Infow("maintenance schedule came due",
			"schedule_id", schedule.ID(), "uav_serial", schedule.UAVSerial(), "hours", cmd.TotalHours)
	}
	return scheduleToResult(schedule, now), nil
}

type MarkPerformedCommand struct {
	ScheduleID  uint
	PerformedAt *time.Time
}

// MarkPerformedUseCase records a completed service and re-arms the plan.
type MarkPerformedUseCase struct {
	repo   maintenance.Repository
	logger logger.Interface
}

func NewMarkPerformedUseCase(repo maintenance.Repository, logger logger.Interface) *MarkPerformedUseCase {
	return &MarkPerformedUseCase{repo: repo, logger: logger}
}

func (uc *MarkPerformedUseCase) Execute(ctx context.Context, cmd MarkPerformedCommand) (*ScheduleResult, error) {
	if cmd.ScheduleID == 0 {
		return nil, errors.NewValidationError("schedule ID is required")
	}

	schedule, err := uc.repo.FindByID(ctx, cmd.ScheduleID)
	if err != nil {
		return nil, err
	}

	at := biztime.NowUTC()
	if cmd.PerformedAt != nil {
		at = *cmd.PerformedAt
	}
	if err := schedule.MarkPerformed(at); err != nil {
		return nil, err
	}
	if err := uc.repo.Update(ctx, schedule); err != nil {
		uc.logger.Errorw("failed to mark maintenance performed", "schedule_id", cmd.ScheduleID, "error", err)
		return nil, err
	}

	uc.logger.Infow("maintenance performed", "schedule_id", schedule.ID(), "performed_at", at)
	return scheduleToResult(schedule, biztime.NowUTC()), nil
}

type ListSchedulesQuery struct {
	CustomerID uint
	ActiveOnly bool
	Pagination utils.Pagination
}

type ListSchedulesResult struct {
	Schedules []ScheduleResult
	Total     int64
}

type ListSchedulesUseCase struct {
	repo   maintenance.Repository
	logger logger.Interface
}

func NewListSchedulesUseCase(repo maintenance.Repository, logger logger.Interface) *ListSchedulesUseCase {
	return &ListSchedulesUseCase{repo: repo, logger: logger}
}

func (uc *ListSchedulesUseCase) Execute(ctx context.Context, q ListSchedulesQuery) (*ListSchedulesResult, error) {
	p := utils.ValidatePagination(q.Pagination.Page, q.Pagination.PageSize)

	schedules, total, err := uc.repo.List(ctx, q.CustomerID, q.ActiveOnly, p.Offset(), p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list maintenance schedules", "error", err)
		return nil, err
	}

	now := biztime.NowUTC()
	out := make([]ScheduleResult, 0, len(schedules))
	for _, s := range schedules {
		out = append(out, *scheduleToResult(s, now))
	}
	return &ListSchedulesResult{Schedules: out, Total: total}, nil
}

// ListDueSchedulesUseCase returns every active schedule that is due right
// now, regardless of pagination. The reminder job and the due endpoint
// share it.
type ListDueSchedulesUseCase struct {
	repo   maintenance.Repository
	logger logger.Interface
}

func NewListDueSchedulesUseCase(repo maintenance.Repository, logger logger.Interface) *ListDueSchedulesUseCase {
	return &ListDueSchedulesUseCase{repo: repo, logger: logger}
}

func (uc *ListDueSchedulesUseCase) Execute(ctx context.Context) ([]ScheduleResult, error) {
	now := biztime.NowUTC()
	schedules, err := uc.repo.ListDue(ctx, now)
	if err != nil {
		uc.logger.Errorw("failed to list due maintenance schedules", "error", err)
		return nil, err
	}

	out := make([]ScheduleResult, 0, len(schedules))
	for _, s := range schedules {
		out = append(out, *scheduleToResult(s, now))
	}
	return out, nil
}

func scheduleToResult(s *maintenance.Schedule, now time.Time) *ScheduleResult {
	return &ScheduleResult{
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
		Due:                 s.IsDue(now),
		LastPerformedAt:     s.LastPerformedAt(),
		NextDueAt:           s.NextDueAt(),
		IncidentID:          s.IncidentID(),
	}
}
