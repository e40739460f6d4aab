package integration

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"skywrench/internal/domain/incident"
	"skywrench/internal/domain/incident/valueobjects"
	domain "skywrench/internal/domain/integration"
	sharedConfig "skywrench/internal/shared/config"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

const (
	jiraHTTPTimeout = 30 * time.Second
	jiraExportPage  = 100
)

// JiraConnector exports closed incidents as issues in a Jira-compatible
// tracker. The incident number doubles as an issue label for idempotency.
type JiraConnector struct {
	cfg        sharedConfig.IssueTrackerConfig
	incidents  incident.Repository
	httpClient *http.Client
	logger     logger.Interface
}

var _ domain.Connector = (*JiraConnector)(nil)

func NewJiraConnector(cfg sharedConfig.IssueTrackerConfig, incidents incident.Repository, lg logger.Interface) *JiraConnector {
	return &JiraConnector{
		cfg:       cfg,
		incidents: incidents,
		httpClient: &http.Client{
			Timeout: jiraHTTPTimeout,
		},
		logger: lg,
	}
}

func (c *JiraConnector) Name() string {
	return "jira"
}

func (c *JiraConnector) TestConnection(ctx context.Context) error {
	status, _, err := c.get(ctx, "/rest/api/2/serverInfo")
	if err != nil {
		return err
	}
	if status != http.StatusOK {
		return fmt.Errorf("tracker returned status %d", status)
	}
	return nil
}

func (c *JiraConnector) Authenticate(ctx context.Context) error {
	status, _, err := c.get(ctx, "/rest/api/2/myself")
	if err != nil {
		return err
	}
	switch status {
	case http.StatusOK:
		return nil
	case http.StatusUnauthorized:
		return fmt.Errorf("invalid tracker credentials")
	case http.StatusForbidden:
		return fmt.Errorf("tracker access denied")
	default:
		return fmt.Errorf("tracker returned status %d", status)
	}
}

func (c *JiraConnector) SyncData(ctx context.Context, entityType string, forceUpdate bool) (*domain.SyncResult, error) {
	if entityType != "" && entityType != "incidents" {
		return nil, errors.NewValidationError(fmt.Sprintf("unsupported entity type: %s", entityType))
	}

	result := &domain.SyncResult{}
	filter := incident.ListFilter{Status: valueobjects.StatusClosed}

	offset := 0
	for {
		closed, total, err := c.incidents.List(ctx, filter, offset, jiraExportPage, "raised_at")
		if err != nil {
			return nil, fmt.Errorf("failed to list closed incidents: %w", err)
		}

		for _, inc := range closed {
			result.RecordsProcessed++
			if err := c.exportIncident(ctx, inc, forceUpdate); err != nil {
				result.RecordsError++
				result.Errors = append(result.Errors, err.Error())
				c.logger.Errorw("failed to export incident",
					"incident_number", inc.Number(), "error", err)
				continue
			}
			result.RecordsSuccess++
		}

		offset += jiraExportPage
		if int64(offset) >= total {
			break
		}
	}

	result.Success = result.RecordsError == 0
	return result, nil
}

func (c *JiraConnector) exportIncident(ctx context.Context, inc *incident.Incident, forceUpdate bool) error {
	exists, err := c.issueExists(ctx, inc.Number())
	if err != nil {
		return err
	}
	if exists && !forceUpdate {
		return nil
	}

	label := issueLabel(inc.Number())
	payload := map[string]interface{}{
		"fields": map[string]interface{}{
			"project":     map[string]string{"key": c.cfg.Project},
			"summary":     fmt.Sprintf("[%s] %s", inc.Number(), inc.Title()),
			"description": c.issueDescription(inc),
			"issuetype":   map[string]string{"name": "Task"},
			"labels":      []string{label},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to encode issue payload: %w", err)
	}

	status, respBody, err := c.post(ctx, "/rest/api/2/issue", body)
	if err != nil {
		return err
	}
	if status != http.StatusCreated && status != http.StatusOK {
		return fmt.Errorf("issue create for %s returned status %d: %s",
			inc.Number(), status, strings.TrimSpace(string(respBody)))
	}
	return nil
}

func (c *JiraConnector) issueExists(ctx context.Context, number string) (bool, error) {
	jql := fmt.Sprintf("project = %q AND labels = %q", c.cfg.Project, issueLabel(number))
	path := "/rest/api/2/search?maxResults=1&fields=key&jql=" + url.QueryEscape(jql)

	status, body, err := c.get(ctx, path)
	if err != nil {
		return false, err
	}
	if status != http.StatusOK {
		return false, fmt.Errorf("issue search returned status %d", status)
	}

	var parsed struct {
		Total int `json:"total"`
	}
	if err := json.Unmarshal(body, &parsed); err != nil {
		return false, fmt.Errorf("failed to decode search response: %w", err)
	}
	return parsed.Total > 0, nil
}

func (c *JiraConnector) issueDescription(inc *incident.Incident) string {
	var b strings.Builder
	fmt.Fprintf(&b, "UAV: %s (%s)\n", inc.UAVModel(), inc.UAVSerial())
	fmt.Fprintf(&b, "Category: %s\n", inc.Category())
	fmt.Fprintf(&b, "Priority: %s\n", inc.Priority())
	fmt.Fprintf(&b, "Raised: %s\n", inc.RaisedAt().Format(time.RFC3339))
	if closedAt := inc.ClosedAt(); closedAt != nil {
		fmt.Fprintf(&b, "Closed: %s\n", closedAt.Format(time.RFC3339))
	}
	if notes := inc.RepairNotes(); notes != "" {
		fmt.Fprintf(&b, "\nRepair notes:\n%s\n", notes)
	}
	return b.String()
}

func (c *JiraConnector) get(ctx context.Context, path string) (int, []byte, error) {
	return c.do(ctx, http.MethodGet, path, nil)
}

func (c *JiraConnector) post(ctx context.Context, path string, body []byte) (int, []byte, error) {
	return c.do(ctx, http.MethodPost, path, body)
}

func (c *JiraConnector) do(ctx context.Context, method, path string, body []byte) (int, []byte, error) {
	endpoint := strings.TrimRight(c.cfg.BaseURL, "/") + path

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
	if err != nil {
		return 0, nil, fmt.Errorf("failed to build tracker request: %w", err)
	}
	req.SetBasicAuth(c.cfg.Username, c.cfg.APIToken)
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("tracker request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("failed to read tracker response: %w", err)
	}
	return resp.StatusCode, respBody, nil
}

// issueLabel derives a Jira-safe label from an incident number.
func issueLabel(number string) string {
	return "skywrench-" + strings.ToLower(number)
}
