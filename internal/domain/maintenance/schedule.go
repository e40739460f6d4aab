package maintenance

import (
	"strings"
	"time"

	"skywrench/internal/shared/biztime"
	"skywrench/internal/shared/errors"
)

// IntervalType selects how maintenance comes due: by accumulated flight
// hours, by calendar days, or whichever happens first.
type IntervalType string

const (
	IntervalFlightHours IntervalType = "FLIGHT_HOURS"
	IntervalTimeBased   IntervalType = "TIME_BASED"
	IntervalBoth        IntervalType = "BOTH"
)

func (i IntervalType) IsValid() bool {
	switch i {
	case IntervalFlightHours, IntervalTimeBased, IntervalBoth:
		return true
	}
	return false
}

func NewIntervalType(s string) (IntervalType, error) {
	it := IntervalType(s)
	if !it.IsValid() {
		return "", errors.NewValidationError("invalid maintenance interval type: " + s)
	}
	return it, nil
}

// Schedule is a recurring preventive maintenance plan for one airframe.
type Schedule struct {
	id                  uint
	uavModel            string
	uavSerial           string
	customerID          uint
	intervalType        IntervalType
	flightHoursInterval float64
	dayInterval         int
	currentFlightHours  float64
	lastFlightHours     float64
	description         string
	active              bool
	lastPerformedAt     *time.Time
	nextDueAt           *time.Time
	notificationSent    bool
	incidentID          *uint
	createdAt           time.Time
	updatedAt           time.Time
}

// NewScheduleParams carries the attributes of a new maintenance plan.
// incidentID links back to the service incident that spawned the plan,
// when there is one.
type NewScheduleParams struct {
	UAVModel            string
	UAVSerial           string
	CustomerID          uint
	IntervalType        IntervalType
	FlightHoursInterval float64
	DayInterval         int
	CurrentFlightHours  float64
	Description         string
	IncidentID          *uint
}

// NewSchedule creates an active plan and computes its first due point.
func NewSchedule(p NewScheduleParams) (*Schedule, error) {
	uavSerial := strings.TrimSpace(p.UAVSerial)
	if uavSerial == "" {
		return nil, errors.NewValidationError("uav serial is required")
	}
	if p.CustomerID == 0 {
		return nil, errors.NewValidationError("customer is required")
	}
	if !p.IntervalType.IsValid() {
		return nil, errors.NewValidationError("invalid maintenance interval type")
	}
	usesHours := p.IntervalType == IntervalFlightHours || p.IntervalType == IntervalBoth
	usesDays := p.IntervalType == IntervalTimeBased || p.IntervalType == IntervalBoth
	if usesHours && p.FlightHoursInterval <= 0 {
		return nil, errors.NewValidationError("flight hours interval must be positive")
	}
	if usesDays && p.DayInterval <= 0 {
		return nil, errors.NewValidationError("day interval must be positive")
	}
	if p.CurrentFlightHours < 0 {
		return nil, errors.NewValidationError("flight hours cannot be negative")
	}

	now := biztime.NowUTC()
	s := &Schedule{
		uavModel:            strings.TrimSpace(p.UAVModel),
		uavSerial:           uavSerial,
		customerID:          p.CustomerID,
		intervalType:        p.IntervalType,
		flightHoursInterval: p.FlightHoursInterval,
		dayInterval:         p.DayInterval,
		currentFlightHours:  p.CurrentFlightHours,
		lastFlightHours:     p.CurrentFlightHours,
		description:         strings.TrimSpace(p.Description),
		active:              true,
		incidentID:          p.IncidentID,
		createdAt:           now,
		updatedAt:           now,
	}
	s.recalculateNextDue(now)
	return s, nil
}

// ReconstructedSchedule carries every persisted field.
type ReconstructedSchedule struct {
	ID                  uint
	UAVModel            string
	UAVSerial           string
	CustomerID          uint
	IntervalType        IntervalType
	FlightHoursInterval float64
	DayInterval         int
	CurrentFlightHours  float64
	LastFlightHours     float64
	Description         string
	Active              bool
	LastPerformedAt     *time.Time
	NextDueAt           *time.Time
	NotificationSent    bool
	IncidentID          *uint
	CreatedAt           time.Time
	UpdatedAt           time.Time
}

func ReconstructSchedule(r ReconstructedSchedule) *Schedule {
	return &Schedule{
		id:                  r.ID,
		uavModel:            r.UAVModel,
		uavSerial:           r.UAVSerial,
		customerID:          r.CustomerID,
		intervalType:        r.IntervalType,
		flightHoursInterval: r.FlightHoursInterval,
		dayInterval:         r.DayInterval,
		currentFlightHours:  r.CurrentFlightHours,
		lastFlightHours:     r.LastFlightHours,
		description:         r.Description,
		active:              r.Active,
		lastPerformedAt:     r.LastPerformedAt,
		nextDueAt:           r.NextDueAt,
		notificationSent:    r.NotificationSent,
		incidentID:          r.IncidentID,
		createdAt:           r.CreatedAt,
		updatedAt:           r.UpdatedAt,
	}
}

func (s *Schedule) ID() uint                    { return s.id }
func (s *Schedule) UAVModel() string            { return s.uavModel }
func (s *Schedule) UAVSerial() string           { return s.uavSerial }
func (s *Schedule) CustomerID() uint            { return s.customerID }
func (s *Schedule) IntervalType() IntervalType  { return s.intervalType }
func (s *Schedule) FlightHoursInterval() float64 { return s.flightHoursInterval }
func (s *Schedule) DayInterval() int            { return s.dayInterval }
func (s *Schedule) CurrentFlightHours() float64 { return s.currentFlightHours }
func (s *Schedule) LastFlightHours() float64    { return s.lastFlightHours }
func (s *Schedule) Description() string         { return s.description }
func (s *Schedule) IsActive() bool              { return s.active }
func (s *Schedule) LastPerformedAt() *time.Time { return s.lastPerformedAt }
func (s *Schedule) NextDueAt() *time.Time       { return s.nextDueAt }
func (s *Schedule) NotificationSent() bool      { return s.notificationSent }
func (s *Schedule) IncidentID() *uint           { return s.incidentID }
func (s *Schedule) CreatedAt() time.Time        { return s.createdAt }
func (s *Schedule) UpdatedAt() time.Time        { return s.updatedAt }

func (s *Schedule) SetID(id uint) error {
	if s.id != 0 {
		return errors.NewInternalError("schedule ID already set")
	}
	s.id = id
	return nil
}

// IsDue reports whether the plan needs service at the given time. For
// flight-hour plans the accumulated hours since the last service decide;
// for BOTH, either trigger suffices.
func (s *Schedule) IsDue(now time.Time) bool {
	if !s.active {
		return false
	}
	hoursDue := s.flightHoursInterval > 0 &&
		s.currentFlightHours-s.lastFlightHours >= s.flightHoursInterval
	timeDue := s.nextDueAt != nil && !now.Before(*s.nextDueAt)

	switch s.intervalType {
	case IntervalFlightHours:
		return hoursDue
	case IntervalTimeBased:
		return timeDue
	case IntervalBoth:
		return hoursDue || timeDue
	}
	return false
}

// RecordFlightHours updates the airframe's accumulated flight hours.
func (s *Schedule) RecordFlightHours(total float64) error {
	if total < s.currentFlightHours {
		return errors.NewValidationError("flight hours cannot decrease")
	}
	s.currentFlightHours = total
	s.updatedAt = biztime.NowUTC()
	return nil
}

// MarkPerformed records a completed service, resets the flight-hour
// baseline and rolls the calendar due date forward.
func (s *Schedule) MarkPerformed(at time.Time) error {
	if !s.active {
		return errors.NewConflictError("schedule is inactive")
	}
	s.lastPerformedAt = &at
	s.lastFlightHours = s.currentFlightHours
	s.notificationSent = false
	s.recalculateNextDue(at)
	s.updatedAt = biztime.NowUTC()
	return nil
}

// MarkNotified records that the due reminder has gone out, so the scan job
// does not mail again before the next service.
func (s *Schedule) MarkNotified() {
	s.notificationSent = true
	s.updatedAt = biztime.NowUTC()
}

func (s *Schedule) Activate() {
	s.active = true
	s.updatedAt = biztime.NowUTC()
}

func (s *Schedule) Deactivate() {
	s.active = false
	s.updatedAt = biztime.NowUTC()
}

// UpdateDetails replaces the editable attributes of the plan and
// recomputes the due point.
func (s *Schedule) UpdateDetails(intervalType IntervalType, flightHoursInterval float64, dayInterval int, description string) error {
	if !intervalType.IsValid() {
		return errors.NewValidationError("invalid maintenance interval type")
	}
	usesHours := intervalType == IntervalFlightHours || intervalType == IntervalBoth
	usesDays := intervalType == IntervalTimeBased || intervalType == IntervalBoth
	if usesHours && flightHoursInterval <= 0 {
		return errors.NewValidationError("flight hours interval must be positive")
	}
	if usesDays && dayInterval <= 0 {
		return errors.NewValidationError("day interval must be positive")
	}
	s.intervalType = intervalType
	s.flightHoursInterval = flightHoursInterval
	s.dayInterval = dayInterval
	s.description = strings.TrimSpace(description)
	from := s.createdAt
	if s.lastPerformedAt != nil {
		from = *s.lastPerformedAt
	}
	s.recalculateNextDue(from)
	s.updatedAt = biztime.NowUTC()
	return nil
}

func (s *Schedule) recalculateNextDue(from time.Time) {
	if s.intervalType == IntervalTimeBased || s.intervalType == IntervalBoth {
		due := from.AddDate(0, 0, s.dayInterval)
		s.nextDueAt = &due
		return
	}
	s.nextDueAt = nil
}
