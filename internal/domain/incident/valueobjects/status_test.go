package valueobjects

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkflowStatus_CanTransitionTo(t *testing.T) {
	tests := []struct {
		name string
		from WorkflowStatus
		to   WorkflowStatus
		want bool
	}{
		{"raised to diagnosis", StatusIncidentRaised, StatusDiagnosisWO, true},
		{"raised cannot skip to repair", StatusIncidentRaised, StatusRepairMaintenance, false},
		{"raised cannot close directly", StatusIncidentRaised, StatusClosed, false},
		{"diagnosis to approval", StatusDiagnosisWO, StatusWOApproval, true},
		{"diagnosis straight to repair", StatusDiagnosisWO, StatusRepairMaintenance, true},
		{"diagnosis cannot jump to quality check", StatusDiagnosisWO, StatusQualityCheck, false},
		{"approval to repair", StatusWOApproval, StatusRepairMaintenance, true},
		{"approval rejected back to diagnosis", StatusWOApproval, StatusDiagnosisWO, true},
		{"approval cannot close", StatusWOApproval, StatusClosed, false},
		{"repair to quality check", StatusRepairMaintenance, StatusQualityCheck, true},
		{"repair cannot go backwards", StatusRepairMaintenance, StatusDiagnosisWO, false},
		{"quality check to preventive", StatusQualityCheck, StatusPreventiveMaintenance, true},
		{"quality check to closed", StatusQualityCheck, StatusClosed, true},
		{"preventive to closed", StatusPreventiveMaintenance, StatusClosed, true},
		{"closed is terminal", StatusClosed, StatusIncidentRaised, false},
		{"closed cannot reopen to diagnosis", StatusClosed, StatusDiagnosisWO, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.from.CanTransitionTo(tt.to))
		})
	}
}

func TestWorkflowStatus_Step(t *testing.T) {
	assert.Equal(t, 1, StatusIncidentRaised.Step())
	assert.Equal(t, 2, StatusDiagnosisWO.Step())
	assert.Equal(t, 2, StatusWOApproval.Step())
	assert.Equal(t, 3, StatusRepairMaintenance.Step())
	assert.Equal(t, 4, StatusQualityCheck.Step())
	assert.Equal(t, 5, StatusPreventiveMaintenance.Step())
	assert.Equal(t, 6, StatusClosed.Step())
}

func TestWorkflowStatus_ProgressPercent(t *testing.T) {
	assert.InDelta(t, 100.0, StatusClosed.ProgressPercent(), 0.001)
	assert.InDelta(t, 50.0, StatusRepairMaintenance.ProgressPercent(), 0.001)
	assert.InDelta(t, 100.0/6, StatusIncidentRaised.ProgressPercent(), 0.001)
}

func TestWorkflowStatus_ResolutionReached(t *testing.T) {
	assert.False(t, StatusIncidentRaised.ResolutionReached())
	assert.False(t, StatusRepairMaintenance.ResolutionReached())
	assert.True(t, StatusQualityCheck.ResolutionReached())
	assert.True(t, StatusPreventiveMaintenance.ResolutionReached())
	assert.True(t, StatusClosed.ResolutionReached())
}

func TestNewWorkflowStatus(t *testing.T) {
	s, err := NewWorkflowStatus("QUALITY_CHECK")
	assert.NoError(t, err)
	assert.Equal(t, StatusQualityCheck, s)

	_, err = NewWorkflowStatus("IN_PROGRESS")
	assert.Error(t, err)
}
