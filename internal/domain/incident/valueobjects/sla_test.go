package valueobjects

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSLACategory_Budgets(t *testing.T) {
	assert.Equal(t, 4*time.Hour, SLAExpress.ResponseBudget())
	assert.Equal(t, 24*time.Hour, SLAExpress.ResolutionBudget())
	assert.Equal(t, 24*time.Hour, SLAStandard.ResponseBudget())
	assert.Equal(t, 72*time.Hour, SLAStandard.ResolutionBudget())
	assert.Equal(t, 48*time.Hour, SLAEconomy.ResponseBudget())
	assert.Equal(t, 168*time.Hour, SLAEconomy.ResolutionBudget())
}

func TestEvaluateSLA(t *testing.T) {
	raised := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	th := DefaultSLAThresholds()

	tests := []struct {
		name     string
		category SLACategory
		elapsed  time.Duration
		want     SLAStatus
	}{
		{"standard fresh", SLAStandard, 1 * time.Hour, SLAOnTrack},
		{"standard inside warning band", SLAStandard, 62 * time.Hour, SLAWarning},
		{"standard inside critical band", SLAStandard, 69 * time.Hour, SLACritical},
		{"standard over budget", SLAStandard, 80 * time.Hour, SLABreached},
		{"standard exactly at budget", SLAStandard, 72 * time.Hour, SLACritical},
		{"express breaches fast", SLAExpress, 25 * time.Hour, SLABreached},
		{"economy still on track", SLAEconomy, 80 * time.Hour, SLAOnTrack},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateSLA(tt.category, raised, raised.Add(tt.elapsed), nil, th)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEvaluateSLA_ClockFrozenAtResolution(t *testing.T) {
	raised := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	resolved := raised.Add(20 * time.Hour)
	th := DefaultSLAThresholds()

	// Long after the budget would have expired, the frozen clock keeps the
	// incident out of BREACHED.
	now := raised.Add(200 * time.Hour)
	got := EvaluateSLA(SLAStandard, raised, now, &resolved, th)
	assert.Equal(t, SLAOnTrack, got)
}

func TestEvaluateSLA_BreachIsSticky(t *testing.T) {
	raised := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	th := DefaultSLAThresholds()

	first := EvaluateSLA(SLAStandard, raised, raised.Add(73*time.Hour), nil, th)
	later := EvaluateSLA(SLAStandard, raised, raised.Add(500*time.Hour), nil, th)
	assert.Equal(t, SLABreached, first)
	assert.Equal(t, SLABreached, later)
}

func TestEvaluateSLA_ZeroThresholdsFallBack(t *testing.T) {
	raised := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	got := EvaluateSLA(SLAStandard, raised, raised.Add(65*time.Hour), nil, SLAThresholds{})
	assert.Equal(t, SLAWarning, got)
}
