package maintenance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func timeBasedSchedule(t *testing.T, days int) *Schedule {
	t.Helper()
	s, err := NewSchedule(NewScheduleParams{
		UAVModel:     "AgriScan X4",
		UAVSerial:    "AX4-00931",
		CustomerID:   42,
		IntervalType: IntervalTimeBased,
		DayInterval:  days,
	})
	require.NoError(t, err)
	return s
}

func TestNewSchedule_Validation(t *testing.T) {
	tests := []struct {
		name   string
		params NewScheduleParams
	}{
		{"missing serial", NewScheduleParams{CustomerID: 1, IntervalType: IntervalTimeBased, DayInterval: 30}},
		{"missing customer", NewScheduleParams{UAVSerial: "S", IntervalType: IntervalTimeBased, DayInterval: 30}},
		{"bad interval type", NewScheduleParams{UAVSerial: "S", CustomerID: 1, IntervalType: "WEEKLY"}},
		{"hours type without hours", NewScheduleParams{UAVSerial: "S", CustomerID: 1, IntervalType: IntervalFlightHours}},
		{"time type without days", NewScheduleParams{UAVSerial: "S", CustomerID: 1, IntervalType: IntervalTimeBased}},
		{"both needs both", NewScheduleParams{UAVSerial: "S", CustomerID: 1, IntervalType: IntervalBoth, DayInterval: 30}},
		{"negative hours", NewScheduleParams{UAVSerial: "S", CustomerID: 1, IntervalType: IntervalTimeBased, DayInterval: 30, CurrentFlightHours: -1}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewSchedule(tt.params)
			assert.Error(t, err)
		})
	}
}

func TestSchedule_TimeBasedDue(t *testing.T) {
	s := timeBasedSchedule(t, 30)
	require.NotNil(t, s.NextDueAt())

	due := *s.NextDueAt()
	assert.False(t, s.IsDue(due.Add(-time.Hour)))
	assert.True(t, s.IsDue(due), "due exactly at next due")
	assert.True(t, s.IsDue(due.Add(time.Hour)))

	s.Deactivate()
	assert.False(t, s.IsDue(due.Add(time.Hour)), "inactive plans are never due")
}

func TestSchedule_FlightHoursDue(t *testing.T) {
	s, err := NewSchedule(NewScheduleParams{
		UAVSerial:           "AX4-00931",
		CustomerID:          42,
		IntervalType:        IntervalFlightHours,
		FlightHoursInterval: 50,
		CurrentFlightHours:  120,
	})
	require.NoError(t, err)
	assert.Nil(t, s.NextDueAt(), "pure flight-hour plans have no calendar due date")

	now := time.Now().UTC()
	assert.False(t, s.IsDue(now))

	require.NoError(t, s.RecordFlightHours(169))
	assert.False(t, s.IsDue(now))

	require.NoError(t, s.RecordFlightHours(170))
	assert.True(t, s.IsDue(now))

	assert.Error(t, s.RecordFlightHours(100), "hours cannot decrease")
}

func TestSchedule_BothEitherTriggerSuffices(t *testing.T) {
	s, err := NewSchedule(NewScheduleParams{
		UAVSerial:           "AX4-00931",
		CustomerID:          42,
		IntervalType:        IntervalBoth,
		FlightHoursInterval: 50,
		DayInterval:         90,
	})
	require.NoError(t, err)
	require.NotNil(t, s.NextDueAt())

	early := s.NextDueAt().Add(-24 * time.Hour)
	assert.False(t, s.IsDue(early))

	require.NoError(t, s.RecordFlightHours(50))
	assert.True(t, s.IsDue(early), "flight hours trigger before the calendar date")
}

func TestSchedule_MarkPerformed(t *testing.T) {
	s, err := NewSchedule(NewScheduleParams{
		UAVSerial:           "AX4-00931",
		CustomerID:          42,
		IntervalType:        IntervalBoth,
		FlightHoursInterval: 50,
		DayInterval:         90,
		CurrentFlightHours:  10,
	})
	require.NoError(t, err)
	require.NoError(t, s.RecordFlightHours(60))
	s.MarkNotified()
	assert.True(t, s.NotificationSent())

	performed := time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, s.MarkPerformed(performed))

	require.NotNil(t, s.LastPerformedAt())
	assert.Equal(t, performed, *s.LastPerformedAt())
	require.NotNil(t, s.NextDueAt())
	assert.Equal(t, performed.AddDate(0, 0, 90), *s.NextDueAt())
	assert.Equal(t, 60.0, s.LastFlightHours(), "flight-hour baseline reset")
	assert.False(t, s.NotificationSent(), "reminder re-armed")
	assert.False(t, s.IsDue(performed.Add(time.Hour)))

	s.Deactivate()
	assert.Error(t, s.MarkPerformed(performed))
}

func TestSchedule_UpdateDetails(t *testing.T) {
	s := timeBasedSchedule(t, 30)

	require.NoError(t, s.UpdateDetails(IntervalTimeBased, 0, 60, "quarterly-ish"))
	assert.Equal(t, 60, s.DayInterval())

	assert.Error(t, s.UpdateDetails(IntervalFlightHours, 0, 0, ""))
	assert.Error(t, s.UpdateDetails("WEEKLY", 0, 0, ""))
}
