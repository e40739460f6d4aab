package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skywrench/internal/domain/maintenance"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type mockScheduleRepo struct {
	byID    map[uint]*maintenance.Schedule
	nextID  uint
	updated []uint
}

func newMockScheduleRepo() *mockScheduleRepo {
	return &mockScheduleRepo{byID: map[uint]*maintenance.Schedule{}, nextID: 20}
}

func (m *mockScheduleRepo) Save(ctx context.Context, s *maintenance.Schedule) error {
	m.nextID++
	_ = s.SetID(m.nextID)
	m.byID[s.ID()] = s
	return nil
}

func (m *mockScheduleRepo) Update(ctx context.Context, s *maintenance.Schedule) error {
	m.byID[s.ID()] = s
	m.updated = append(m.updated, s.ID())
	return nil
}

func (m *mockScheduleRepo) Delete(ctx context.Context, id uint) error {
	delete(m.byID, id)
	return nil
}

func (m *mockScheduleRepo) FindByID(ctx context.Context, id uint) (*maintenance.Schedule, error) {
	if s, ok := m.byID[id]; ok {
		return s, nil
	}
	return nil, errors.NewNotFoundError("maintenance schedule not found")
}

func (m *mockScheduleRepo) List(ctx context.Context, customerID uint, activeOnly bool, offset, limit int) ([]*maintenance.Schedule, int64, error) {
	var out []*maintenance.Schedule
	for _, s := range m.byID {
		if customerID != 0 && s.CustomerID() != customerID {
			continue
		}
		if activeOnly && !s.IsActive() {
			continue
		}
		out = append(out, s)
	}
	return out, int64(len(out)), nil
}

func (m *mockScheduleRepo) ListDue(ctx context.Context, at time.Time) ([]*maintenance.Schedule, error) {
	var out []*maintenance.Schedule
	for _, s := range m.byID {
		if s.IsDue(at) {
			out = append(out, s)
		}
	}
	return out, nil
}

func seedSchedule(t *testing.T, repo *mockScheduleRepo, params maintenance.NewScheduleParams) *maintenance.Schedule {
	t.Helper()
	s, err := maintenance.NewSchedule(params)
	require.NoError(t, err)
	require.NoError(t, repo.Save(context.Background(), s))
	return s
}

func hoursParams() maintenance.NewScheduleParams {
	return maintenance.NewScheduleParams{
		UAVModel:            "AgriWing X4",
		UAVSerial:           "AWX4-0042",
		CustomerID:          7,
		IntervalType:        maintenance.IntervalFlightHours,
		FlightHoursInterval: 50,
		CurrentFlightHours:  120,
	}
}

func TestCreateScheduleUseCase(t *testing.T) {
	log := logger.NewLogger()

	t.Run("creates an active schedule", func(t *testing.T) {
		repo := newMockScheduleRepo()
		uc := NewCreateScheduleUseCase(repo, log)

		result, err := uc.Execute(context.Background(), CreateScheduleCommand{
			UAVModel:            "AgriWing X4",
			UAVSerial:           "AWX4-0042",
			CustomerID:          7,
			IntervalType:        "FLIGHT_HOURS",
			FlightHoursInterval: 50,
			CurrentFlightHours:  120,
		})

		require.NoError(t, err)
		assert.NotZero(t, result.ID)
		assert.True(t, result.Active)
		assert.False(t, result.Due)
		assert.Equal(t, 120.0, result.CurrentFlightHours)
	})

	t.Run("rejects unknown interval type", func(t *testing.T) {
		repo := newMockScheduleRepo()
		uc := NewCreateScheduleUseCase(repo, log)

		_, err := uc.Execute(context.Background(), CreateScheduleCommand{
			UAVSerial:    "AWX4-0042",
			CustomerID:   7,
			IntervalType: "WEEKLY",
		})

		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
		assert.Empty(t, repo.byID)
	})
}

func TestRecordFlightHoursUseCase(t *testing.T) {
	log := logger.NewLogger()

	t.Run("schedule comes due once the interval is flown", func(t *testing.T) {
		repo := newMockScheduleRepo()
		s := seedSchedule(t, repo, hoursParams())
		uc := NewRecordFlightHoursUseCase(repo, log)

		result, err := uc.Execute(context.Background(), RecordFlightHoursCommand{
			ScheduleID: s.ID(),
			TotalHours: 171,
		})

		require.NoError(t, err)
		assert.True(t, result.Due)
		assert.Equal(t, 171.0, result.CurrentFlightHours)
	})

	t.Run("rejects decreasing hours", func(t *testing.T) {
		repo := newMockScheduleRepo()
		s := seedSchedule(t, repo, hoursParams())
		uc := NewRecordFlightHoursUseCase(repo, log)

		_, err := uc.Execute(context.Background(), RecordFlightHoursCommand{
			ScheduleID: s.ID(),
			TotalHours: 100,
		})

		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
		assert.Empty(t, repo.updated)
	})

	t.Run("missing schedule", func(t *testing.T) {
		repo := newMockScheduleRepo()
		uc := NewRecordFlightHoursUseCase(repo, log)

		_, err := uc.Execute(context.Background(), RecordFlightHoursCommand{ScheduleID: 404, TotalHours: 10})

		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
	})
}

func TestMarkPerformedUseCase(t *testing.T) {
	log := logger.NewLogger()

	t.Run("rearms a due schedule", func(t *testing.T) {
		repo := newMockScheduleRepo()
		s := seedSchedule(t, repo, hoursParams())
		require.NoError(t, s.RecordFlightHours(180))
		require.True(t, s.IsDue(time.Now().UTC()))
		uc := NewMarkPerformedUseCase(repo, log)

		result, err := uc.Execute(context.Background(), MarkPerformedCommand{ScheduleID: s.ID()})

		require.NoError(t, err)
		assert.False(t, result.Due)
		assert.NotNil(t, result.LastPerformedAt)
		assert.Equal(t, result.CurrentFlightHours, result.LastFlightHours)
	})

	t.Run("refuses on inactive schedule", func(t *testing.T) {
		repo := newMockScheduleRepo()
		s := seedSchedule(t, repo, hoursParams())
		s.Deactivate()
		uc := NewMarkPerformedUseCase(repo, log)

		_, err := uc.Execute(context.Background(), MarkPerformedCommand{ScheduleID: s.ID()})

		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeConflict))
	})
}

func TestUpdateScheduleUseCase(t *testing.T) {
	log := logger.NewLogger()

	t.Run("deactivates a schedule", func(t *testing.T) {
		repo := newMockScheduleRepo()
		s := seedSchedule(t, repo, hoursParams())
		uc := NewUpdateScheduleUseCase(repo, log)

		inactive := false
		result, err := uc.Execute(context.Background(), UpdateScheduleCommand{
			ScheduleID:          s.ID(),
			IntervalType:        "FLIGHT_HOURS",
			FlightHoursInterval: 25,
			Active:              &inactive,
		})

		require.NoError(t, err)
		assert.False(t, result.Active)
		assert.Equal(t, 25.0, result.FlightHoursInterval)
	})
}

func TestListDueSchedulesUseCase(t *testing.T) {
	log := logger.NewLogger()

	t.Run("returns only due schedules", func(t *testing.T) {
		repo := newMockScheduleRepo()
		due := seedSchedule(t, repo, hoursParams())
		require.NoError(t, due.RecordFlightHours(200))

		fresh := hoursParams()
		fresh.UAVSerial = "AWX4-0043"
		seedSchedule(t, repo, fresh)

		uc := NewListDueSchedulesUseCase(repo, log)
		results, err := uc.Execute(context.Background())

		require.NoError(t, err)
		require.Len(t, results, 1)
		assert.Equal(t, due.ID(), results[0].ID)
		assert.True(t, results[0].Due)
	})
}
