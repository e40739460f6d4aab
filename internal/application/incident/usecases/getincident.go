package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"skywrench/internal/domain/incident"
	vo "skywrench/internal/domain/incident/valueobjects"
	"skywrench/internal/shared/biztime"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type GetIncidentQuery struct {
	IncidentID uint
	Number     string
}

// IncidentDetails is the read model for one incident, including the
// derived SLA health and workflow progress.
type IncidentDetails struct {
	ID              uint
	Number          string
	Title           string
	Description     string
	Category        string
	Priority        string
	SLACategory     string
	SLAStatus       string
	Status          string
	StepNumber      int
	StepName        string
	ProgressPercent float64
	Department      string
	UAVModel        string
	UAVSerial       string
	UnderWarranty   bool
	CustomerID      uint
	TechnicianID    *uint
	GroupID         *uint
	WorkOrderType   string
	DiagnosisNotes  string
	RepairNotes     string
	QualityNotes    string
	LaborHours      decimal.Decimal
	EstimatedCost   decimal.Decimal
	ActualCost      decimal.Decimal
	RaisedAt        time.Time
	ClosedAt        *time.Time
	UpdatedAt       time.Time
}

// GetIncidentUseCase loads one incident by id or number.
type GetIncidentUseCase struct {
	incidentRepo  incident.Repository
	slaThresholds vo.SLAThresholds
	logger        logger.Interface
}

func NewGetIncidentUseCase(incidentRepo incident.Repository, slaThresholds vo.SLAThresholds, logger logger.Interface) *GetIncidentUseCase {
	return &GetIncidentUseCase{
		incidentRepo:  incidentRepo,
		slaThresholds: slaThresholds,
		logger:        logger,
	}
}

func (uc *GetIncidentUseCase) Execute(ctx context.Context, q GetIncidentQuery) (*IncidentDetails, error) {
	var (
		inc *incident.Incident
		err error
	)
	switch {
	case q.IncidentID != 0:
		inc, err = uc.incidentRepo.FindByID(ctx, q.IncidentID)
	case q.Number != "":
		inc, err = uc.incidentRepo.FindByNumber(ctx, q.Number)
	default:
		return nil, errors.NewValidationError("incident ID or number is required")
	}
	if err != nil {
		return nil, err
	}

	return uc.toDetails(inc), nil
}

func (uc *GetIncidentUseCase) toDetails(inc *incident.Incident) *IncidentDetails {
	status := inc.Status()
	return &IncidentDetails{
		ID:              inc.ID(),
		Number:          inc.Number(),
		Title:           inc.Title(),
		Description:     inc.Description(),
		Category:        inc.Category().String(),
		Priority:        inc.Priority().String(),
		SLACategory:     inc.SLACategory().String(),
		SLAStatus:       string(inc.SLAStatus(biztime.NowUTC(), uc.slaThresholds)),
		Status:          status.String(),
		StepNumber:      status.Step(),
		StepName:        status.StepName(),
		ProgressPercent: status.ProgressPercent(),
		Department:      inc.Department(),
		UAVModel:        inc.UAVModel(),
		UAVSerial:       inc.UAVSerial(),
		UnderWarranty:   inc.UnderWarranty(),
		CustomerID:      inc.CustomerID(),
		TechnicianID:    inc.TechnicianID(),
		GroupID:         inc.GroupID(),
		WorkOrderType:   string(inc.WorkOrderType()),
		DiagnosisNotes:  inc.DiagnosisNotes(),
		RepairNotes:     inc.RepairNotes(),
		QualityNotes:    inc.QualityNotes(),
		LaborHours:      inc.LaborHours(),
		EstimatedCost:   inc.EstimatedCost(),
		ActualCost:      inc.ActualCost(),
		RaisedAt:        inc.RaisedAt(),
		ClosedAt:        inc.ClosedAt(),
		UpdatedAt:       inc.UpdatedAt(),
	}
}
