package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skywrench/internal/application/integration/usecases"
	"skywrench/internal/shared/logger"
	"skywrench/internal/shared/utils"
)

type IntegrationHandler struct {
	registry         *usecases.Registry
	runSyncUC        *usecases.RunSyncUseCase
	testConnectionUC *usecases.TestConnectionUseCase
	listSyncRunsUC   *usecases.ListSyncRunsUseCase
	logger           logger.Interface
}

func NewIntegrationHandler(
	registry *usecases.Registry,
	runSyncUC *usecases.RunSyncUseCase,
	testConnectionUC *usecases.TestConnectionUseCase,
	listSyncRunsUC *usecases.ListSyncRunsUseCase,
) *IntegrationHandler {
	return &IntegrationHandler{
		registry:         registry,
		runSyncUC:        runSyncUC,
		testConnectionUC: testConnectionUC,
		listSyncRunsUC:   listSyncRunsUC,
		logger:           logger.NewLogger(),
	}
}

type RunSyncRequest struct {
	EntityType  string `json:"entity_type"`
	ForceUpdate bool   `json:"force_update"`
}

type SyncRunResponse struct {
	RunID            uint      `json:"run_id"`
	ConnectorName    string    `json:"connector_name"`
	EntityType       string    `json:"entity_type,omitempty"`
	Success          bool      `json:"success"`
	RecordsProcessed int       `json:"records_processed"`
	RecordsSuccess   int       `json:"records_success"`
	RecordsError     int       `json:"records_error"`
	ErrorDetail      string    `json:"error_detail,omitempty"`
	StartedAt        time.Time `json:"started_at"`
	FinishedAt       time.Time `json:"finished_at"`
}

func syncRunToResponse(r *usecases.SyncRunResult) SyncRunResponse {
	return SyncRunResponse{
		RunID:            r.RunID,
		ConnectorName:    r.ConnectorName,
		EntityType:       r.EntityType,
		Success:          r.Success,
		RecordsProcessed: r.RecordsProcessed,
		RecordsSuccess:   r.RecordsSuccess,
		RecordsError:     r.RecordsError,
		ErrorDetail:      r.ErrorDetail,
		StartedAt:        r.StartedAt,
		FinishedAt:       r.FinishedAt,
	}
}

// ListConnectors returns the names of the registered connectors.
func (h *IntegrationHandler) ListConnectors(c *gin.Context) {
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"connectors": h.registry.Names()})
}

func (h *IntegrationHandler) TestConnection(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "connector name is required")
		return
	}

	if err := h.testConnectionUC.Execute(c.Request.Context(), name); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "connection ok", gin.H{"connector": name})
}

func (h *IntegrationHandler) RunSync(c *gin.Context) {
	name := c.Param("name")
	if name == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "connector name is required")
		return
	}

	var req RunSyncRequest
	if err := c.ShouldBindJSON(&req); err != nil && err.Error() != "EOF" {
		h.logger.Warnw("invalid request body for run sync", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid sync payload")
		return
	}

	result, err := h.runSyncUC.Execute(c.Request.Context(), usecases.RunSyncCommand{
		ConnectorName: name,
		EntityType:    req.EntityType,
		ForceUpdate:   req.ForceUpdate,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "sync finished", syncRunToResponse(result))
}

func (h *IntegrationHandler) ListSyncRuns(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.listSyncRunsUC.Execute(c.Request.Context(), usecases.ListSyncRunsQuery{
		ConnectorName: c.Query("connector"),
		Pagination:    p,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	runs := make([]SyncRunResponse, 0, len(result.Runs))
	for i := range result.Runs {
		runs = append(runs, syncRunToResponse(&result.Runs[i]))
	}

	utils.ListSuccessResponse(c, runs, result.Total, p.Page, p.PageSize)
}
