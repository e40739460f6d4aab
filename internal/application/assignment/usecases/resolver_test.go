package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skywrench/internal/domain/assignment"
	"skywrench/internal/domain/incident"
	vo "skywrench/internal/domain/incident/valueobjects"
	"skywrench/internal/shared/biztime"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type mockRuleRepo struct {
	rules   []*assignment.Rule
	updated []*assignment.Rule
}

func (m *mockRuleRepo) Save(ctx context.Context, rule *assignment.Rule) error {
	return rule.SetID(uint(len(m.rules) + 1))
}

func (m *mockRuleRepo) Update(ctx context.Context, rule *assignment.Rule) error {
	m.updated = append(m.updated, rule)
	return nil
}

func (m *mockRuleRepo) Delete(ctx context.Context, id uint) error { return nil }

func (m *mockRuleRepo) FindByID(ctx context.Context, id uint) (*assignment.Rule, error) {
	for _, r := range m.rules {
		if r.ID() == id {
			return r, nil
		}
	}
	return nil, errors.NewNotFoundError("rule not found")
}

func (m *mockRuleRepo) ListActive(ctx context.Context) ([]*assignment.Rule, error) {
	var out []*assignment.Rule
	for _, r := range m.rules {
		if r.IsActive() {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *mockRuleRepo) List(ctx context.Context, offset, limit int) ([]*assignment.Rule, int64, error) {
	return m.rules, int64(len(m.rules)), nil
}

type mockGroupRepo struct {
	groups  []*assignment.Group
	updated []*assignment.Group
}

func (m *mockGroupRepo) Save(ctx context.Context, group *assignment.Group) error {
	return group.SetID(uint(len(m.groups) + 1))
}

func (m *mockGroupRepo) Update(ctx context.Context, group *assignment.Group) error {
	m.updated = append(m.updated, group)
	return nil
}

func (m *mockGroupRepo) Delete(ctx context.Context, id uint) error { return nil }

func (m *mockGroupRepo) FindByID(ctx context.Context, id uint) (*assignment.Group, error) {
	for _, g := range m.groups {
		if g.ID() == id {
			return g, nil
		}
	}
	return nil, errors.NewNotFoundError("group not found")
}

func (m *mockGroupRepo) List(ctx context.Context, offset, limit int) ([]*assignment.Group, int64, error) {
	return m.groups, int64(len(m.groups)), nil
}

type mockUserDirectory struct {
	active map[uint]bool
}

func (m *mockUserDirectory) IsActiveUser(ctx context.Context, userID uint) (bool, error) {
	return m.active[userID], nil
}

func newTestIncident(t *testing.T, category vo.ServiceCategory, priority vo.Priority, department string) *incident.Incident {
	t.Helper()
	inc, err := incident.NewIncident(incident.NewIncidentParams{
		Title:       "test incident",
		Category:    category,
		Priority:    priority,
		SLACategory: vo.SLAStandard,
		Department:  department,
		CustomerID:  1,
	})
	require.NoError(t, err)
	return inc
}

func specificUserRule(t *testing.T, id uint, name string, priority int, cond assignment.Conditions, userID uint) *assignment.Rule {
	t.Helper()
	rule, err := assignment.NewRule(name, "", priority, cond, assignment.ActionSpecificUser, &userID, nil)
	require.NoError(t, err)
	require.NoError(t, rule.SetID(id))
	return rule
}

func groupRule(t *testing.T, id uint, name string, priority int, cond assignment.Conditions, action assignment.ActionType, groupID uint) *assignment.Rule {
	t.Helper()
	rule, err := assignment.NewRule(name, "", priority, cond, action, nil, &groupID)
	require.NoError(t, err)
	require.NoError(t, rule.SetID(id))
	return rule
}

func TestResolver_Resolve(t *testing.T) {
	batteryCond := assignment.Conditions{Category: vo.CategoryBattery}

	t.Run("routes to a specific user", func(t *testing.T) {
		ruleRepo := &mockRuleRepo{rules: []*assignment.Rule{
			specificUserRule(t, 1, "battery bench", 1, batteryCond, 11),
		}}
		users := &mockUserDirectory{active: map[uint]bool{11: true}}
		r := NewResolver(ruleRepo, &mockGroupRepo{}, users, logger.NewLogger())

		resolved, err := r.Resolve(context.Background(), newTestIncident(t, vo.CategoryBattery, vo.PriorityMedium, ""))

		require.NoError(t, err)
		require.NotNil(t, resolved)
		assert.Equal(t, uint(1), resolved.RuleID)
		require.NotNil(t, resolved.TechnicianID)
		assert.Equal(t, uint(11), *resolved.TechnicianID)
		require.Len(t, ruleRepo.updated, 1)
		assert.Equal(t, 1, ruleRepo.updated[0].TimesTriggered())
	})

	t.Run("falls through past an inactive target user", func(t *testing.T) {
		ruleRepo := &mockRuleRepo{rules: []*assignment.Rule{
			specificUserRule(t, 1, "on leave", 1, batteryCond, 11),
			specificUserRule(t, 2, "backup", 2, batteryCond, 12),
		}}
		users := &mockUserDirectory{active: map[uint]bool{12: true}}
		r := NewResolver(ruleRepo, &mockGroupRepo{}, users, logger.NewLogger())

		resolved, err := r.Resolve(context.Background(), newTestIncident(t, vo.CategoryBattery, vo.PriorityMedium, ""))

		require.NoError(t, err)
		require.NotNil(t, resolved)
		assert.Equal(t, uint(2), resolved.RuleID)
		assert.Equal(t, uint(12), *resolved.TechnicianID)
	})

	t.Run("round robin rotates through the group and persists the cursor", func(t *testing.T) {
		group := assignment.ReconstructGroup(5, "bench-a", "Bench A", "", true, []uint{21, 22, 23}, 0, biztime.NowUTC(), biztime.NowUTC())
		groupRepo := &mockGroupRepo{groups: []*assignment.Group{group}}
		ruleRepo := &mockRuleRepo{rules: []*assignment.Rule{
			groupRule(t, 1, "rotate bench a", 1, batteryCond, assignment.ActionRoundRobin, 5),
		}}
		r := NewResolver(ruleRepo, groupRepo, &mockUserDirectory{}, logger.NewLogger())

		var picks []uint
		for i := 0; i < 4; i++ {
			resolved, err := r.Resolve(context.Background(), newTestIncident(t, vo.CategoryBattery, vo.PriorityMedium, ""))
			require.NoError(t, err)
			require.NotNil(t, resolved)
			require.NotNil(t, resolved.TechnicianID)
			picks = append(picks, *resolved.TechnicianID)
		}

		assert.Equal(t, []uint{22, 23, 21, 22}, picks)
		assert.Len(t, groupRepo.updated, 4)
	})

	t.Run("plain group routing leaves technician unset", func(t *testing.T) {
		group := assignment.ReconstructGroup(5, "bench-a", "Bench A", "", true, []uint{21}, 0, biztime.NowUTC(), biztime.NowUTC())
		groupRepo := &mockGroupRepo{groups: []*assignment.Group{group}}
		ruleRepo := &mockRuleRepo{rules: []*assignment.Rule{
			groupRule(t, 1, "queue bench a", 1, batteryCond, assignment.ActionAssignmentGroup, 5),
		}}
		r := NewResolver(ruleRepo, groupRepo, &mockUserDirectory{}, logger.NewLogger())

		resolved, err := r.Resolve(context.Background(), newTestIncident(t, vo.CategoryBattery, vo.PriorityMedium, ""))

		require.NoError(t, err)
		require.NotNil(t, resolved)
		assert.Nil(t, resolved.TechnicianID)
		require.NotNil(t, resolved.GroupID)
		assert.Equal(t, uint(5), *resolved.GroupID)
	})

	t.Run("inactive or empty groups do not stop the scan", func(t *testing.T) {
		inactive := assignment.ReconstructGroup(5, "closed", "Closed", "", false, []uint{21}, 0, biztime.NowUTC(), biztime.NowUTC())
		empty := assignment.ReconstructGroup(6, "empty", "Empty", "", true, nil, 0, biztime.NowUTC(), biztime.NowUTC())
		groupRepo := &mockGroupRepo{groups: []*assignment.Group{inactive, empty}}
		ruleRepo := &mockRuleRepo{rules: []*assignment.Rule{
			groupRule(t, 1, "closed bench", 1, batteryCond, assignment.ActionAssignmentGroup, 5),
			groupRule(t, 2, "empty bench", 2, batteryCond, assignment.ActionRoundRobin, 6),
			specificUserRule(t, 3, "fallback", 3, batteryCond, 11),
		}}
		users := &mockUserDirectory{active: map[uint]bool{11: true}}
		r := NewResolver(ruleRepo, groupRepo, users, logger.NewLogger())

		resolved, err := r.Resolve(context.Background(), newTestIncident(t, vo.CategoryBattery, vo.PriorityMedium, ""))

		require.NoError(t, err)
		require.NotNil(t, resolved)
		assert.Equal(t, uint(3), resolved.RuleID)
	})

	t.Run("no matching rule returns nil", func(t *testing.T) {
		ruleRepo := &mockRuleRepo{rules: []*assignment.Rule{
			specificUserRule(t, 1, "battery only", 1, batteryCond, 11),
		}}
		r := NewResolver(ruleRepo, &mockGroupRepo{}, &mockUserDirectory{}, logger.NewLogger())

		resolved, err := r.Resolve(context.Background(), newTestIncident(t, vo.CategoryCamera, vo.PriorityMedium, ""))

		require.NoError(t, err)
		assert.Nil(t, resolved)
	})
}
