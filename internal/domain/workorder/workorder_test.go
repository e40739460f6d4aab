package workorder

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWorkOrder_Lifecycle(t *testing.T) {
	wo, err := NewWorkOrder(77, TypeRepair, "replace gimbal motor", nil, decimal.NewFromInt(850))
	require.NoError(t, err)
	assert.Equal(t, StatusOpen, wo.Status())

	require.NoError(t, wo.SetNumber("WO-2026-0001"))
	assert.Error(t, wo.SetNumber("WO-2026-0002"))

	require.NoError(t, wo.Assign(9))
	require.NoError(t, wo.Start())
	assert.Equal(t, StatusInProgress, wo.Status())
	assert.NotNil(t, wo.StartedAt())
	assert.Error(t, wo.Start(), "cannot start twice")

	require.NoError(t, wo.Complete(decimal.NewFromInt(910)))
	assert.Equal(t, StatusCompleted, wo.Status())
	assert.NotNil(t, wo.CompletedAt())
	assert.Error(t, wo.Complete(decimal.Zero), "cannot complete twice")
	assert.Error(t, wo.Assign(4), "cannot reassign after completion")
}

func TestWorkOrder_CompleteFromOpen(t *testing.T) {
	// Incidents closing without an explicit repair start still complete
	// their work order.
	wo, err := NewWorkOrder(77, TypeMaintenance, "", nil, decimal.Zero)
	require.NoError(t, err)
	require.NoError(t, wo.Complete(decimal.Zero))
	assert.Equal(t, StatusCompleted, wo.Status())
}

func TestNewWorkOrder_Validation(t *testing.T) {
	_, err := NewWorkOrder(0, TypeRepair, "", nil, decimal.Zero)
	assert.Error(t, err)
	_, err = NewWorkOrder(77, "INSPECTION", "", nil, decimal.Zero)
	assert.Error(t, err)
	_, err = NewWorkOrder(77, TypeRepair, "", nil, decimal.NewFromInt(-1))
	assert.Error(t, err)
}

func TestNewApproval(t *testing.T) {
	a, err := NewApproval(5, 3, DecisionApproved, "")
	require.NoError(t, err)
	assert.Equal(t, DecisionApproved, a.Decision())

	_, err = NewApproval(5, 3, DecisionRejected, "")
	assert.Error(t, err, "rejection requires a comment")

	a, err = NewApproval(5, 3, DecisionRejected, "estimate too high")
	require.NoError(t, err)
	assert.Equal(t, "estimate too high", a.Comment())

	_, err = NewApproval(0, 3, DecisionApproved, "")
	assert.Error(t, err)
	_, err = NewApproval(5, 0, DecisionApproved, "")
	assert.Error(t, err)
	_, err = NewApproval(5, 3, "MAYBE", "")
	assert.Error(t, err)
}
