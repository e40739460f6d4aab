package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"skywrench/internal/domain/assignment"
	vo "skywrench/internal/domain/incident/valueobjects"
	"skywrench/internal/infrastructure/persistence/models"
)

type AssignmentMapper interface {
	RuleToModel(rule *assignment.Rule) *models.AssignmentRuleModel
	RuleToDomain(model *models.AssignmentRuleModel) *assignment.Rule
	GroupToModel(group *assignment.Group) *models.AssignmentGroupModel
	GroupToDomain(model *models.AssignmentGroupModel) (*assignment.Group, error)
}

type AssignmentMapperImpl struct{}

func NewAssignmentMapper() AssignmentMapper {
	return &AssignmentMapperImpl{}
}

func (m *AssignmentMapperImpl) RuleToModel(rule *assignment.Rule) *models.AssignmentRuleModel {
	cond := rule.Conditions()
	return &models.AssignmentRuleModel{
		ID:                  rule.ID(),
		Name:                rule.Name(),
		Description:         rule.Description(),
		Priority:            rule.Priority(),
		Active:              rule.IsActive(),
		ConditionCategory:   cond.Category.String(),
		ConditionPriority:   cond.Priority.String(),
		ConditionDepartment: cond.Department,
		Action:              string(rule.Action()),
		TargetUserID:        rule.TargetUserID(),
		GroupID:             rule.GroupID(),
		TimesTriggered:      rule.TimesTriggered(),
		LastTriggeredAt:     timePtrToMillis(rule.LastTriggeredAt()),
		CreatedAt:           rule.CreatedAt().UnixMilli(),
		UpdatedAt:           rule.UpdatedAt().UnixMilli(),
	}
}

func (m *AssignmentMapperImpl) RuleToDomain(model *models.AssignmentRuleModel) *assignment.Rule {
	return assignment.ReconstructRule(
		model.ID,
		model.Name,
		model.Description,
		model.Priority,
		model.Active,
		assignment.Conditions{
			Category:   vo.ServiceCategory(model.ConditionCategory),
			Priority:   vo.Priority(model.ConditionPriority),
			Department: model.ConditionDepartment,
		},
		assignment.ActionType(model.Action),
		model.TargetUserID,
		model.GroupID,
		model.TimesTriggered,
		millisPtrToTime(model.LastTriggeredAt),
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}

func (m *AssignmentMapperImpl) GroupToModel(group *assignment.Group) *models.AssignmentGroupModel {
	model := &models.AssignmentGroupModel{
		ID:               group.ID(),
		Code:             group.Code(),
		Name:             group.Name(),
		Description:      group.Description(),
		Active:           group.IsActive(),
		RoundRobinCursor: group.RoundRobinCursor(),
		CreatedAt:        group.CreatedAt().UnixMilli(),
		UpdatedAt:        group.UpdatedAt().UnixMilli(),
	}

	if len(group.MemberIDs()) > 0 {
		membersJSON, _ := json.Marshal(group.MemberIDs())
		model.MemberIDs = datatypes.JSON(membersJSON)
	}

	return model
}

func (m *AssignmentMapperImpl) GroupToDomain(model *models.AssignmentGroupModel) (*assignment.Group, error) {
	var memberIDs []uint
	if len(model.MemberIDs) > 0 {
		if err := json.Unmarshal(model.MemberIDs, &memberIDs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal group members (id=%d): %w", model.ID, err)
		}
	}

	return assignment.ReconstructGroup(
		model.ID,
		model.Code,
		model.Name,
		model.Description,
		model.Active,
		memberIDs,
		model.RoundRobinCursor,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	), nil
}
