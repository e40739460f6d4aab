package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skywrench/internal/domain/integration"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type mockConnector struct {
	name       string
	connectErr error
	authErr    error
	syncResult *integration.SyncResult
	syncErr    error
	syncCalls  []string
}

func (m *mockConnector) Name() string { return m.name }

func (m *mockConnector) TestConnection(ctx context.Context) error { return m.connectErr }

func (m *mockConnector) Authenticate(ctx context.Context) error { return m.authErr }

func (m *mockConnector) SyncData(ctx context.Context, entityType string, forceUpdate bool) (*integration.SyncResult, error) {
	m.syncCalls = append(m.syncCalls, entityType)
	if m.syncErr != nil {
		return nil, m.syncErr
	}
	return m.syncResult, nil
}

type mockRunRepo struct {
	runs    []*integration.SyncRun
	saveErr error
}

func (m *mockRunRepo) SaveRun(ctx context.Context, run *integration.SyncRun) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	_ = run.SetID(uint(len(m.runs) + 1))
	m.runs = append(m.runs, run)
	return nil
}

func (m *mockRunRepo) ListRuns(ctx context.Context, connectorName string, offset, limit int) ([]*integration.SyncRun, int64, error) {
	var out []*integration.SyncRun
	for _, run := range m.runs {
		if connectorName != "" && run.ConnectorName() != connectorName {
			continue
		}
		out = append(out, run)
	}
	return out, int64(len(out)), nil
}

func testLogger() logger.Interface {
	return logger.NewLogger()
}

func TestRunSyncUseCase_Execute(t *testing.T) {
	t.Run("records a successful run", func(t *testing.T) {
		connector := &mockConnector{
			name: "ldap",
			syncResult: &integration.SyncResult{
				Success:          true,
				RecordsProcessed: 12,
				RecordsSuccess:   11,
				RecordsError:     1,
				Errors:           []string{"uid=broken: missing mail attribute"},
			},
		}
		repo := &mockRunRepo{}
		uc := NewRunSyncUseCase(NewRegistry(connector), repo, testLogger())

		result, err := uc.Execute(context.Background(), RunSyncCommand{ConnectorName: "ldap", EntityType: "users"})

		require.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, 12, result.RecordsProcessed)
		assert.Equal(t, "uid=broken: missing mail attribute", result.ErrorDetail)
		assert.Equal(t, []string{"users"}, connector.syncCalls)
		require.Len(t, repo.runs, 1)
		assert.Equal(t, "ldap", repo.runs[0].ConnectorName())
	})

	t.Run("unreachable connector still leaves an audit row", func(t *testing.T) {
		connector := &mockConnector{name: "jira", connectErr: fmt.Errorf("dial tcp: timeout")}
		repo := &mockRunRepo{}
		uc := NewRunSyncUseCase(NewRegistry(connector), repo, testLogger())

		result, err := uc.Execute(context.Background(), RunSyncCommand{ConnectorName: "jira", EntityType: "issues"})

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Contains(t, result.ErrorDetail, "connection failed")
		require.Len(t, repo.runs, 1)
		assert.Empty(t, connector.syncCalls)
	})

	t.Run("sync error is captured on the run", func(t *testing.T) {
		connector := &mockConnector{name: "jira", syncErr: fmt.Errorf("remote rejected batch")}
		repo := &mockRunRepo{}
		uc := NewRunSyncUseCase(NewRegistry(connector), repo, testLogger())

		result, err := uc.Execute(context.Background(), RunSyncCommand{ConnectorName: "jira", EntityType: "issues"})

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "remote rejected batch", result.ErrorDetail)
	})

	t.Run("unknown connector", func(t *testing.T) {
		uc := NewRunSyncUseCase(NewRegistry(), &mockRunRepo{}, testLogger())

		_, err := uc.Execute(context.Background(), RunSyncCommand{ConnectorName: "nope"})

		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
	})
}

func TestTestConnectionUseCase_Execute(t *testing.T) {
	t.Run("checks reachability then credentials", func(t *testing.T) {
		connector := &mockConnector{name: "ldap"}
		uc := NewTestConnectionUseCase(NewRegistry(connector), testLogger())

		require.NoError(t, uc.Execute(context.Background(), "ldap"))
	})

	t.Run("bad credentials", func(t *testing.T) {
		connector := &mockConnector{name: "ldap", authErr: fmt.Errorf("invalid bind")}
		uc := NewTestConnectionUseCase(NewRegistry(connector), testLogger())

		err := uc.Execute(context.Background(), "ldap")

		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeExternalService))
	})
}

func TestRegistry_Names(t *testing.T) {
	registry := NewRegistry(&mockConnector{name: "ldap"}, &mockConnector{name: "jira"})
	assert.Equal(t, []string{"jira", "ldap"}, registry.Names())
}
