package usecases

import (
	"context"

	"skywrench/internal/domain/incident"
	vo "skywrench/internal/domain/incident/valueobjects"
	"skywrench/internal/shared/biztime"
	"skywrench/internal/shared/logger"
	"skywrench/internal/shared/utils"
)

type ListIncidentsQuery struct {
	Status       string
	Category     string
	Priority     string
	CustomerID   uint
	TechnicianID uint
	GroupID      uint
	Search       string
	Pagination   utils.Pagination
	OrderBy      string
}

// IncidentSummary is the list read model.
type IncidentSummary struct {
	ID           uint
	Number       string
	Title        string
	Category     string
	Priority     string
	SLACategory  string
	SLAStatus    string
	Status       string
	StepNumber   int
	CustomerID   uint
	TechnicianID *uint
	RaisedAt     string
}

type ListIncidentsResult struct {
	Incidents []IncidentSummary
	Total     int64
}

type ListIncidentsUseCase struct {
	incidentRepo  incident.Repository
	slaThresholds vo.SLAThresholds
	logger        logger.Interface
}

func NewListIncidentsUseCase(incidentRepo incident.Repository, slaThresholds vo.SLAThresholds, logger logger.Interface) *ListIncidentsUseCase {
	return &ListIncidentsUseCase{
		incidentRepo:  incidentRepo,
		slaThresholds: slaThresholds,
		logger:        logger,
	}
}

func (uc *ListIncidentsUseCase) Execute(ctx context.Context, q ListIncidentsQuery) (*ListIncidentsResult, error) {
	p := utils.ValidatePagination(q.Pagination.Page, q.Pagination.PageSize)

	filter := incident.ListFilter{
		Status:       vo.WorkflowStatus(q.Status),
		Category:     vo.ServiceCategory(q.Category),
		Priority:     vo.Priority(q.Priority),
		CustomerID:   q.CustomerID,
		TechnicianID: q.TechnicianID,
		GroupID:      q.GroupID,
		Search:       q.Search,
	}

	incidents, total, err := uc.incidentRepo.List(ctx, filter, p.Offset(), p.PageSize, q.OrderBy)
	if err != nil {
		uc.logger.Errorw("failed to list incidents", "error", err)
		return nil, err
	}

	now := biztime.NowUTC()
	summaries := make([]IncidentSummary, 0, len(incidents))
	for _, inc := range incidents {
		summaries = append(summaries, IncidentSummary{
			ID:           inc.ID(),
			Number:       inc.Number(),
			Title:        inc.Title(),
			Category:     inc.Category().String(),
			Priority:     inc.Priority().String(),
			SLACategory:  inc.SLACategory().String(),
			SLAStatus:    string(inc.SLAStatus(now, uc.slaThresholds)),
			Status:       inc.Status().String(),
			StepNumber:   inc.Status().Step(),
			CustomerID:   inc.CustomerID(),
			TechnicianID: inc.TechnicianID(),
			RaisedAt:     inc.RaisedAt().Format("2006-01-02T15:04:05Z07:00"),
		})
	}

	return &ListIncidentsResult{Incidents: summaries, Total: total}, nil
}
