package assignment

import (
	"strings"
	"time"

	"skywrench/internal/domain/incident/valueobjects"
	"skywrench/internal/shared/biztime"
	"skywrench/internal/shared/errors"
)

// ActionType selects how a matched rule routes an incident.
type ActionType string

const (
	ActionSpecificUser    ActionType = "specific_user"
	ActionAssignmentGroup ActionType = "assignment_group"
	ActionRoundRobin      ActionType = "round_robin"
)

func (a ActionType) IsValid() bool {
	switch a {
	case ActionSpecificUser, ActionAssignmentGroup, ActionRoundRobin:
		return true
	}
	return false
}

// Conditions are the attribute matchers of a rule. Blank fields act as
// wildcards, so a rule with every condition blank matches any incident.
type Conditions struct {
	Category   valueobjects.ServiceCategory
	Priority   valueobjects.Priority
	Department string
}

// Validate rejects non-blank conditions carrying unknown values.
func (c Conditions) Validate() error {
	if c.Category != "" && !c.Category.IsValid() {
		return errors.NewValidationError("invalid category condition")
	}
	if c.Priority != "" && !c.Priority.IsValid() {
		return errors.NewValidationError("invalid priority condition")
	}
	return nil
}

// Rule routes incoming incidents. Priority 1 is evaluated first.
type Rule struct {
	id          uint
	name        string
	description string
	priority    int
	active      bool
	conditions  Conditions

	action       ActionType
	targetUserID *uint
	groupID      *uint

	timesTriggered  int
	lastTriggeredAt *time.Time

	createdAt time.Time
	updatedAt time.Time
}

// NewRule builds an active rule.
func NewRule(name, description string, priority int, cond Conditions, action ActionType, targetUserID, groupID *uint) (*Rule, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, errors.NewValidationError("rule name is required")
	}
	if err := cond.Validate(); err != nil {
		return nil, err
	}
	if !action.IsValid() {
		return nil, errors.NewValidationError("invalid rule action")
	}
	switch action {
	case ActionSpecificUser:
		if targetUserID == nil || *targetUserID == 0 {
			return nil, errors.NewValidationError("specific_user action requires a target user")
		}
	case ActionAssignmentGroup, ActionRoundRobin:
		if groupID == nil || *groupID == 0 {
			return nil, errors.NewValidationError("group action requires a group")
		}
	}

	cond.Department = strings.TrimSpace(cond.Department)
	now := biztime.NowUTC()
	return &Rule{
		name:         name,
		description:  strings.TrimSpace(description),
		priority:     priority,
		active:       true,
		conditions:   cond,
		action:       action,
		targetUserID: targetUserID,
		groupID:      groupID,
		createdAt:    now,
		updatedAt:    now,
	}, nil
}

// ReconstructRule rebuilds a rule from persistence.
func ReconstructRule(
	id uint,
	name, description string,
	priority int,
	active bool,
	cond Conditions,
	action ActionType,
	targetUserID, groupID *uint,
	timesTriggered int,
	lastTriggeredAt *time.Time,
	createdAt, updatedAt time.Time,
) *Rule {
	return &Rule{
		id:              id,
		name:            name,
		description:     description,
		priority:        priority,
		active:          active,
		conditions:      cond,
		action:          action,
		targetUserID:    targetUserID,
		groupID:         groupID,
		timesTriggered:  timesTriggered,
		lastTriggeredAt: lastTriggeredAt,
		createdAt:       createdAt,
		updatedAt:       updatedAt,
	}
}

func (r *Rule) ID() uint                    { return r.id }
func (r *Rule) Name() string                { return r.name }
func (r *Rule) Description() string         { return r.description }
func (r *Rule) Priority() int               { return r.priority }
func (r *Rule) IsActive() bool              { return r.active }
func (r *Rule) Conditions() Conditions      { return r.conditions }
func (r *Rule) Action() ActionType          { return r.action }
func (r *Rule) TargetUserID() *uint         { return r.targetUserID }
func (r *Rule) GroupID() *uint              { return r.groupID }
func (r *Rule) TimesTriggered() int         { return r.timesTriggered }
func (r *Rule) LastTriggeredAt() *time.Time { return r.lastTriggeredAt }
func (r *Rule) CreatedAt() time.Time        { return r.createdAt }
func (r *Rule) UpdatedAt() time.Time        { return r.updatedAt }

func (r *Rule) SetID(id uint) error {
	if r.id != 0 {
		return errors.NewInternalError("rule ID already set")
	}
	r.id = id
	return nil
}

func (r *Rule) Activate() {
	r.active = true
	r.updatedAt = biztime.NowUTC()
}

func (r *Rule) Deactivate() {
	r.active = false
	r.updatedAt = biztime.NowUTC()
}

// UpdateDetails replaces the editable attributes of the rule.
func (r *Rule) UpdateDetails(name, description string, priority int, cond Conditions) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errors.NewValidationError("rule name is required")
	}
	if err := cond.Validate(); err != nil {
		return err
	}
	cond.Department = strings.TrimSpace(cond.Department)
	r.name = name
	r.description = strings.TrimSpace(description)
	r.priority = priority
	r.conditions = cond
	r.updatedAt = biztime.NowUTC()
	return nil
}

// Matches reports whether every non-blank condition equals the incident
// attribute. Department comparison is case-insensitive.
func (r *Rule) Matches(category valueobjects.ServiceCategory, priority valueobjects.Priority, department string) bool {
	if r.conditions.Category != "" && r.conditions.Category != category {
		return false
	}
	if r.conditions.Priority != "" && r.conditions.Priority != priority {
		return false
	}
	if r.conditions.Department != "" && !strings.EqualFold(r.conditions.Department, strings.TrimSpace(department)) {
		return false
	}
	return true
}

// RecordTrigger bumps the usage counters after the rule fires.
func (r *Rule) RecordTrigger() {
	now := biztime.NowUTC()
	r.timesTriggered++
	r.lastTriggeredAt = &now
	r.updatedAt = now
}
