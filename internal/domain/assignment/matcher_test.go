package assignment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skywrench/internal/domain/incident/valueobjects"
)

func mustRule(t *testing.T, name string, prio int, cond Conditions, action ActionType, userID, groupID *uint) *Rule {
	t.Helper()
	r, err := NewRule(name, "", prio, cond, action, userID, groupID)
	require.NoError(t, err)
	return r
}

func uintPtr(v uint) *uint { return &v }

func TestMatcher_PriorityOrderFirstMatchWins(t *testing.T) {
	m := NewMatcher()
	battery := mustRule(t, "battery to anna", 10, Conditions{Category: valueobjects.CategoryBattery}, ActionSpecificUser, uintPtr(4), nil)
	catchAll := mustRule(t, "catch all", 100, Conditions{}, ActionAssignmentGroup, nil, uintPtr(1))

	// Order in the slice must not matter, priority does.
	got := m.Match([]*Rule{catchAll, battery}, MatchInput{
		Category: valueobjects.CategoryBattery,
		Priority: valueobjects.PriorityMedium,
	})
	require.NotNil(t, got)
	assert.Equal(t, "battery to anna", got.Name())
}

func TestMatcher_BlankConditionsAreWildcards(t *testing.T) {
	m := NewMatcher()
	catchAll := mustRule(t, "catch all", 100, Conditions{}, ActionAssignmentGroup, nil, uintPtr(1))

	got := m.Match([]*Rule{catchAll}, MatchInput{
		Category:   valueobjects.CategoryOther,
		Priority:   valueobjects.PriorityLow,
		Department: "field-ops",
	})
	assert.NotNil(t, got)
}

func TestMatcher_AllConditionsMustHold(t *testing.T) {
	m := NewMatcher()
	cond := Conditions{
		Category:   valueobjects.CategoryCrashRepair,
		Priority:   valueobjects.PriorityUrgent,
		Department: "field-ops",
	}
	r := mustRule(t, "urgent field crashes", 5, cond, ActionRoundRobin, nil, uintPtr(2))

	got := m.Match([]*Rule{r}, MatchInput{
		Category:   valueobjects.CategoryCrashRepair,
		Priority:   valueobjects.PriorityLow,
		Department: "field-ops",
	})
	assert.Nil(t, got)

	got = m.Match([]*Rule{r}, MatchInput{
		Category:   valueobjects.CategoryCrashRepair,
		Priority:   valueobjects.PriorityUrgent,
		Department: "Field-Ops",
	})
	assert.NotNil(t, got, "department matches case-insensitively")
}

func TestMatcher_SkipsInactiveRules(t *testing.T) {
	m := NewMatcher()
	r := mustRule(t, "catch all", 1, Conditions{}, ActionAssignmentGroup, nil, uintPtr(1))
	r.Deactivate()

	got := m.Match([]*Rule{r}, MatchInput{Category: valueobjects.CategoryBattery})
	assert.Nil(t, got)
}

func TestMatcher_OrderedMatchesForResolutionFallthrough(t *testing.T) {
	m := NewMatcher()
	first := mustRule(t, "first", 1, Conditions{}, ActionSpecificUser, uintPtr(4), nil)
	second := mustRule(t, "second", 2, Conditions{}, ActionAssignmentGroup, nil, uintPtr(1))
	unrelated := mustRule(t, "camera only", 3, Conditions{Category: valueobjects.CategoryCamera}, ActionSpecificUser, uintPtr(9), nil)

	matches := m.OrderedMatches([]*Rule{unrelated, second, first}, MatchInput{
		Category: valueobjects.CategoryBattery,
	})
	require.Len(t, matches, 2)
	assert.Equal(t, "first", matches[0].Name())
	assert.Equal(t, "second", matches[1].Name())
}

func TestMatcher_NoRules(t *testing.T) {
	m := NewMatcher()
	assert.Nil(t, m.Match(nil, MatchInput{}))
}

func TestRule_RecordTrigger(t *testing.T) {
	r := mustRule(t, "catch all", 1, Conditions{}, ActionAssignmentGroup, nil, uintPtr(1))
	assert.Equal(t, 0, r.TimesTriggered())
	assert.Nil(t, r.LastTriggeredAt())

	r.RecordTrigger()
	r.RecordTrigger()
	assert.Equal(t, 2, r.TimesTriggered())
	assert.NotNil(t, r.LastTriggeredAt())
}

func TestNewRule_Validation(t *testing.T) {
	_, err := NewRule("no user", "", 1, Conditions{}, ActionSpecificUser, nil, nil)
	assert.Error(t, err)

	_, err = NewRule("no group", "", 1, Conditions{}, ActionRoundRobin, nil, nil)
	assert.Error(t, err)

	_, err = NewRule("bad action", "", 1, Conditions{}, "broadcast", nil, nil)
	assert.Error(t, err)

	_, err = NewRule("bad category", "", 1, Conditions{Category: "PROPELLER"}, ActionAssignmentGroup, nil, uintPtr(1))
	assert.Error(t, err)
}

func TestGroup_RoundRobinRotation(t *testing.T) {
	g, err := NewGroup("field", "field techs", "", []uint{10, 11, 12})
	require.NoError(t, err)

	var got []uint
	for i := 0; i < 5; i++ {
		id, err := g.NextRoundRobinMember()
		require.NoError(t, err)
		got = append(got, id)
	}
	assert.Equal(t, []uint{11, 12, 10, 11, 12}, got)
}

func TestGroup_RoundRobinSurvivesMemberRemoval(t *testing.T) {
	g, err := NewGroup("field", "field techs", "", []uint{10, 11, 12})
	require.NoError(t, err)

	_, err = g.NextRoundRobinMember()
	require.NoError(t, err)
	_, err = g.NextRoundRobinMember()
	require.NoError(t, err)

	require.NoError(t, g.RemoveMember(12))
	id, err := g.NextRoundRobinMember()
	require.NoError(t, err)
	assert.Contains(t, []uint{10, 11}, id)
}

func TestGroup_EmptyRoundRobin(t *testing.T) {
	g, err := NewGroup("empty", "empty group", "", nil)
	require.NoError(t, err)
	_, err = g.NextRoundRobinMember()
	assert.Error(t, err)
	_, err = g.FirstMember()
	assert.Error(t, err)
}

func TestGroup_Members(t *testing.T) {
	g, err := NewGroup("field", "field techs", "", []uint{10, 10, 0, 11})
	require.NoError(t, err)
	assert.Equal(t, []uint{10, 11}, g.MemberIDs())

	assert.Error(t, g.AddMember(10))
	require.NoError(t, g.AddMember(12))
	require.NoError(t, g.RemoveMember(10))
	assert.Error(t, g.RemoveMember(99))

	first, err := g.FirstMember()
	require.NoError(t, err)
	assert.Equal(t, uint(11), first)
}
