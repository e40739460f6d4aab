package usecases

import (
	"context"
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skywrench/internal/domain/workorder"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type mockWorkOrderRepo struct {
	orders    map[uint]*workorder.WorkOrder
	approvals []*workorder.Approval
	nextID    uint
}

func newMockWorkOrderRepo() *mockWorkOrderRepo {
	return &mockWorkOrderRepo{orders: make(map[uint]*workorder.WorkOrder)}
}

func (m *mockWorkOrderRepo) Save(ctx context.Context, wo *workorder.WorkOrder) error {
	m.nextID++
	if err := wo.SetID(m.nextID); err != nil {
		return err
	}
	m.orders[wo.ID()] = wo
	return nil
}

func (m *mockWorkOrderRepo) Update(ctx context.Context, wo *workorder.WorkOrder) error {
	m.orders[wo.ID()] = wo
	return nil
}

func (m *mockWorkOrderRepo) FindByID(ctx context.Context, id uint) (*workorder.WorkOrder, error) {
	if wo, ok := m.orders[id]; ok {
		return wo, nil
	}
	return nil, errors.NewNotFoundError("work order not found")
}

func (m *mockWorkOrderRepo) FindByIncidentID(ctx context.Context, incidentID uint) (*workorder.WorkOrder, error) {
	for _, wo := range m.orders {
		if wo.IncidentID() == incidentID {
			return wo, nil
		}
	}
	return nil, errors.NewNotFoundError("work order not found")
}

func (m *mockWorkOrderRepo) List(ctx context.Context, status workorder.Status, offset, limit int) ([]*workorder.WorkOrder, int64, error) {
	var out []*workorder.WorkOrder
	for _, wo := range m.orders {
		if status == "" || wo.Status() == status {
			out = append(out, wo)
		}
	}
	return out, int64(len(out)), nil
}

func (m *mockWorkOrderRepo) SaveApproval(ctx context.Context, a *workorder.Approval) error {
	m.approvals = append(m.approvals, a)
	return nil
}

func (m *mockWorkOrderRepo) ListApprovals(ctx context.Context, workOrderID uint) ([]*workorder.Approval, error) {
	var out []*workorder.Approval
	for _, a := range m.approvals {
		if a.WorkOrderID() == workOrderID {
			out = append(out, a)
		}
	}
	return out, nil
}

type seqNumberGen struct{ n int }

func (g *seqNumberGen) Next(ctx context.Context) (string, error) {
	g.n++
	return fmt.Sprintf("WO-2026-%04d", g.n), nil
}

func TestService_OpenForIncident(t *testing.T) {
	repo := newMockWorkOrderRepo()
	svc := NewService(repo, &seqNumberGen{}, logger.NewLogger())

	id, err := svc.OpenForIncident(context.Background(), 7, string(workorder.TypeRepair), "replace dampers", nil, decimal.NewFromInt(400))

	require.NoError(t, err)
	wo := repo.orders[id]
	require.NotNil(t, wo)
	assert.Equal(t, "WO-2026-0001", wo.Number())
	assert.Equal(t, workorder.StatusOpen, wo.Status())
	assert.Equal(t, uint(7), wo.IncidentID())

	t.Run("invalid type is rejected", func(t *testing.T) {
		_, err := svc.OpenForIncident(context.Background(), 7, "DEMOLISH", "", nil, decimal.Zero)
		require.Error(t, err)
	})
}

func TestService_RecordApproval(t *testing.T) {
	t.Run("approval starts the order", func(t *testing.T) {
		repo := newMockWorkOrderRepo()
		svc := NewService(repo, &seqNumberGen{}, logger.NewLogger())
		id, err := svc.OpenForIncident(context.Background(), 7, string(workorder.TypeRepair), "", nil, decimal.NewFromInt(400))
		require.NoError(t, err)

		require.NoError(t, svc.RecordApproval(context.Background(), 7, 99, true, "go ahead"))

		assert.Equal(t, workorder.StatusInProgress, repo.orders[id].Status())
		require.Len(t, repo.approvals, 1)
		assert.Equal(t, workorder.DecisionApproved, repo.approvals[0].Decision())
	})

	t.Run("rejection needs a comment and leaves the order open", func(t *testing.T) {
		repo := newMockWorkOrderRepo()
		svc := NewService(repo, &seqNumberGen{}, logger.NewLogger())
		id, err := svc.OpenForIncident(context.Background(), 7, string(workorder.TypeRepair), "", nil, decimal.NewFromInt(400))
		require.NoError(t, err)

		err = svc.RecordApproval(context.Background(), 7, 99, false, "")
		require.Error(t, err)

		require.NoError(t, svc.RecordApproval(context.Background(), 7, 99, false, "estimate too high"))
		assert.Equal(t, workorder.StatusOpen, repo.orders[id].Status())
	})
}

func TestService_CompleteForIncident(t *testing.T) {
	repo := newMockWorkOrderRepo()
	svc := NewService(repo, &seqNumberGen{}, logger.NewLogger())
	id, err := svc.OpenForIncident(context.Background(), 7, string(workorder.TypeRepair), "", nil, decimal.NewFromInt(400))
	require.NoError(t, err)

	require.NoError(t, svc.CompleteForIncident(context.Background(), 7, decimal.NewFromInt(450)))

	wo := repo.orders[id]
	assert.Equal(t, workorder.StatusCompleted, wo.Status())
	assert.True(t, wo.ActualCost().Equal(decimal.NewFromInt(450)))

	t.Run("completing twice fails", func(t *testing.T) {
		require.Error(t, svc.CompleteForIncident(context.Background(), 7, decimal.NewFromInt(450)))
	})

	t.Run("unknown incident", func(t *testing.T) {
		err := svc.CompleteForIncident(context.Background(), 999, decimal.Zero)
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
	})
}
