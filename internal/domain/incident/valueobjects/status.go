package valueobjects

import "fmt"

// WorkflowStatus is the incident's stage in the fixed service pipeline.
type WorkflowStatus string

const (
	StatusIncidentRaised        WorkflowStatus = "INCIDENT_RAISED"
	StatusDiagnosisWO           WorkflowStatus = "DIAGNOSIS_WO"
	StatusWOApproval            WorkflowStatus = "WO_APPROVAL"
	StatusRepairMaintenance     WorkflowStatus = "REPAIR_MAINTENANCE"
	StatusQualityCheck          WorkflowStatus = "QUALITY_CHECK"
	StatusPreventiveMaintenance WorkflowStatus = "PREVENTIVE_MAINTENANCE"
	StatusClosed                WorkflowStatus = "CLOSED"
)

var validWorkflowStatuses = map[WorkflowStatus]bool{
	StatusIncidentRaised:        true,
	StatusDiagnosisWO:           true,
	StatusWOApproval:            true,
	StatusRepairMaintenance:     true,
	StatusQualityCheck:          true,
	StatusPreventiveMaintenance: true,
	StatusClosed:                true,
}

// workflowTransitions is the authoritative transition table. Stage jumps not
// listed here are rejected; the approval gate branches out of DIAGNOSIS_WO
// and rejoins at REPAIR_MAINTENANCE.
var workflowTransitions = map[WorkflowStatus][]WorkflowStatus{
	StatusIncidentRaised: {
		StatusDiagnosisWO,
	},
	StatusDiagnosisWO: {
		StatusWOApproval,
		StatusRepairMaintenance,
	},
	StatusWOApproval: {
		StatusRepairMaintenance,
		StatusDiagnosisWO,
	},
	StatusRepairMaintenance: {
		StatusQualityCheck,
	},
	StatusQualityCheck: {
		StatusPreventiveMaintenance,
		StatusClosed,
	},
	StatusPreventiveMaintenance: {
		StatusClosed,
	},
	StatusClosed: {},
}

// workflowSteps maps every status onto the customer-facing six step
// pipeline. WO_APPROVAL is a gate inside the diagnosis stage and shares its
// step number.
var workflowSteps = map[WorkflowStatus]int{
	StatusIncidentRaised:        1,
	StatusDiagnosisWO:           2,
	StatusWOApproval:            2,
	StatusRepairMaintenance:     3,
	StatusQualityCheck:          4,
	StatusPreventiveMaintenance: 5,
	StatusClosed:                6,
}

// StepCount is the number of customer-facing workflow steps.
const StepCount = 6

var stepNames = map[WorkflowStatus]string{
	StatusIncidentRaised:        "Incident / Service Request",
	StatusDiagnosisWO:           "Diagnosis & Work Order",
	StatusWOApproval:            "Work Order Approval",
	StatusRepairMaintenance:     "Repair / Maintenance",
	StatusQualityCheck:          "Quality Check & Handover",
	StatusPreventiveMaintenance: "Preventive Maintenance",
	StatusClosed:                "Closed",
}

func (s WorkflowStatus) String() string {
	return string(s)
}

func (s WorkflowStatus) IsValid() bool {
	return validWorkflowStatuses[s]
}

func (s WorkflowStatus) CanTransitionTo(next WorkflowStatus) bool {
	allowed, ok := workflowTransitions[s]
	if !ok {
		return false
	}
	for _, a := range allowed {
		if a == next {
			return true
		}
	}
	return false
}

// Step returns the 1-based workflow step for the status. Total over the
// valid status set.
func (s WorkflowStatus) Step() int {
	if step, ok := workflowSteps[s]; ok {
		return step
	}
	return workflowSteps[StatusIncidentRaised]
}

// StepName returns the display name of the stage.
func (s WorkflowStatus) StepName() string {
	if name, ok := stepNames[s]; ok {
		return name
	}
	return stepNames[StatusIncidentRaised]
}

// ProgressPercent returns the approximate pipeline completion percentage.
func (s WorkflowStatus) ProgressPercent() float64 {
	return float64(s.Step()) / float64(StepCount) * 100
}

func (s WorkflowStatus) IsClosed() bool {
	return s == StatusClosed
}

// ResolutionReached reports whether the repair work has finished, which
// freezes the SLA clock.
func (s WorkflowStatus) ResolutionReached() bool {
	switch s {
	case StatusQualityCheck, StatusPreventiveMaintenance, StatusClosed:
		return true
	}
	return false
}

func NewWorkflowStatus(s string) (WorkflowStatus, error) {
	ws := WorkflowStatus(s)
	if !ws.IsValid() {
		return "", fmt.Errorf("invalid workflow status: %s", s)
	}
	return ws, nil
}
