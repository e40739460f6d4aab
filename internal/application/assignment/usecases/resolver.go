package usecases

import (
	"context"

	incidentuc "skywrench/internal/application/incident/usecases"
	"skywrench/internal/domain/assignment"
	"skywrench/internal/domain/incident"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

// Resolver routes new incidents through the assignment rules. It walks
// matching rules in priority order until one action resolves: a rule
// pointing at an inactive user or group does not stop the scan. The
// chosen rule's trigger counters and, for round robin, the group cursor
// are persisted as part of the caller's transaction.
type Resolver struct {
	ruleRepo  assignment.RuleRepository
	groupRepo assignment.GroupRepository
	users     UserDirectory
	matcher   *assignment.Matcher
	logger    logger.Interface
}

var _ incidentuc.AssignmentResolver = (*Resolver)(nil)

func NewResolver(
	ruleRepo assignment.RuleRepository,
	groupRepo assignment.GroupRepository,
	users UserDirectory,
	logger logger.Interface,
) *Resolver {
	return &Resolver{
		ruleRepo:  ruleRepo,
		groupRepo: groupRepo,
		users:     users,
		matcher:   assignment.NewMatcher(),
		logger:    logger,
	}
}

func (r *Resolver) Resolve(ctx context.Context, inc *incident.Incident) (*incidentuc.ResolvedAssignment, error) {
	rules, err := r.ruleRepo.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	in := assignment.MatchInput{
		Category:   inc.Category(),
		Priority:   inc.Priority(),
		Department: inc.Department(),
	}

	for _, rule := range r.matcher.OrderedMatches(rules, in) {
		resolved, err := r.resolveAction(ctx, rule)
		if err != nil {
			return nil, err
		}
		if resolved == nil {
			r.logger.Debugw("assignment rule not resolvable, trying next",
				"rule_id", rule.ID(), "rule_name", rule.Name())
			continue
		}

		rule.RecordTrigger()
		if err := r.ruleRepo.Update(ctx, rule); err != nil {
			return nil, err
		}
		r.logger.Infow("incident routed by assignment rule",
			"rule_id", rule.ID(), "rule_name", rule.Name(), "action", rule.Action())
		return resolved, nil
	}
	return nil, nil
}

func (r *Resolver) resolveAction(ctx context.Context, rule *assignment.Rule) (*incidentuc.ResolvedAssignment, error) {
	switch rule.Action() {
	case assignment.ActionSpecificUser:
		active, err := r.users.IsActiveUser(ctx, *rule.TargetUserID())
		if err != nil {
			return nil, err
		}
		if !active {
			return nil, nil
		}
		return &incidentuc.ResolvedAssignment{
			RuleID:       rule.ID(),
			RuleName:     rule.Name(),
			TechnicianID: rule.TargetUserID(),
		}, nil

	case assignment.ActionAssignmentGroup:
		group, err := r.activeGroup(ctx, *rule.GroupID())
		if err != nil || group == nil {
			return nil, err
		}
		groupID := group.ID()
		return &incidentuc.ResolvedAssignment{
			RuleID:   rule.ID(),
			RuleName: rule.Name(),
			GroupID:  &groupID,
		}, nil

	case assignment.ActionRoundRobin:
		group, err := r.activeGroup(ctx, *rule.GroupID())
		if err != nil || group == nil {
			return nil, err
		}
		memberID, err := group.NextRoundRobinMember()
		if err != nil {
			return nil, nil
		}
		if err := r.groupRepo.Update(ctx, group); err != nil {
			return nil, err
		}
		groupID := group.ID()
		return &incidentuc.ResolvedAssignment{
			RuleID:       rule.ID(),
			RuleName:     rule.Name(),
			TechnicianID: &memberID,
			GroupID:      &groupID,
		}, nil
	}
	return nil, nil
}

// activeGroup returns nil without error when the group is missing or
// deactivated, so the caller falls through to the next rule.
func (r *Resolver) activeGroup(ctx context.Context, groupID uint) (*assignment.Group, error) {
	group, err := r.groupRepo.FindByID(ctx, groupID)
	if err != nil {
		if errors.IsType(err, errors.ErrorTypeNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !group.IsActive() {
		return nil, nil
	}
	return group, nil
}
