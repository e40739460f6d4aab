package valueobjects

import (
	"fmt"
	"time"
)

// SLACategory selects the response and resolution time budgets for an
// incident. Budgets are fixed per tier.
type SLACategory string

const (
	SLAExpress  SLACategory = "EXPRESS"
	SLAStandard SLACategory = "STANDARD"
	SLAEconomy  SLACategory = "ECONOMY"
)

type slaBudget struct {
	response   time.Duration
	resolution time.Duration
}

var slaBudgets = map[SLACategory]slaBudget{
	SLAExpress:  {response: 4 * time.Hour, resolution: 24 * time.Hour},
	SLAStandard: {response: 24 * time.Hour, resolution: 72 * time.Hour},
	SLAEconomy:  {response: 48 * time.Hour, resolution: 168 * time.Hour},
}

func (c SLACategory) String() string {
	return string(c)
}

func (c SLACategory) IsValid() bool {
	_, ok := slaBudgets[c]
	return ok
}

// ResponseBudget is the time allowed before a technician is assigned.
func (c SLACategory) ResponseBudget() time.Duration {
	return slaBudgets[c].response
}

// ResolutionBudget is the time allowed before the repair is complete.
func (c SLACategory) ResolutionBudget() time.Duration {
	return slaBudgets[c].resolution
}

func NewSLACategory(s string) (SLACategory, error) {
	c := SLACategory(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid SLA category: %s", s)
	}
	return c, nil
}

// SLAStatus is the derived health of an incident against its resolution
// budget.
type SLAStatus string

const (
	SLAOnTrack  SLAStatus = "ON_TRACK"
	SLAWarning  SLAStatus = "WARNING"
	SLACritical SLAStatus = "CRITICAL"
	SLABreached SLAStatus = "BREACHED"
)

// SLAThresholds carries the remaining-time cutoffs for the WARNING and
// CRITICAL bands. Both zero values fall back to the defaults.
type SLAThresholds struct {
	WarningRemaining  time.Duration
	CriticalRemaining time.Duration
}

// DefaultSLAThresholds mirrors the standard escalation windows.
func DefaultSLAThresholds() SLAThresholds {
	return SLAThresholds{
		WarningRemaining:  12 * time.Hour,
		CriticalRemaining: 4 * time.Hour,
	}
}

// EvaluateSLA computes the SLA status for an incident raised at raisedAt.
// resolvedAt freezes the clock once the repair has finished; pass nil for
// open incidents. The status is monotone over time for a fixed resolvedAt:
// once BREACHED it never improves.
func EvaluateSLA(category SLACategory, raisedAt, now time.Time, resolvedAt *time.Time, th SLAThresholds) SLAStatus {
	if th.WarningRemaining == 0 {
		th.WarningRemaining = DefaultSLAThresholds().WarningRemaining
	}
	if th.CriticalRemaining == 0 {
		th.CriticalRemaining = DefaultSLAThresholds().CriticalRemaining
	}

	at := now
	if resolvedAt != nil && resolvedAt.Before(now) {
		at = *resolvedAt
	}

	elapsed := at.Sub(raisedAt)
	budget := category.ResolutionBudget()
	remaining := budget - elapsed

	switch {
	case remaining < 0:
		return SLABreached
	case remaining <= th.CriticalRemaining:
		return SLACritical
	case remaining <= th.WarningRemaining:
		return SLAWarning
	default:
		return SLAOnTrack
	}
}
