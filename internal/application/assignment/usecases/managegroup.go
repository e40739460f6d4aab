package usecases

import (
	"context"

	"skywrench/internal/domain/assignment"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
	"skywrench/internal/shared/utils"
)

type CreateGroupCommand struct {
	Code        string
	Name        string
	Description string
	MemberIDs   []uint
}

type GroupResult struct {
	ID          uint
	Code        string
	Name        string
	Description string
	Active      bool
	MemberIDs   []uint
}

type CreateGroupUseCase struct {
	groupRepo assignment.GroupRepository
	logger    logger.Interface
}

func NewCreateGroupUseCase(groupRepo assignment.GroupRepository, logger logger.Interface) *CreateGroupUseCase {
	return &CreateGroupUseCase{groupRepo: groupRepo, logger: logger}
}

func (uc *CreateGroupUseCase) Execute(ctx context.Context, cmd CreateGroupCommand) (*GroupResult, error) {
	group, err := assignment.NewGroup(cmd.Code, cmd.Name, cmd.Description, cmd.MemberIDs)
	if err != nil {
		return nil, err
	}
	if err := uc.groupRepo.Save(ctx, group); err != nil {
		uc.logger.Errorw("failed to save assignment group", "code", cmd.Code, "error", err)
		return nil, err
	}
	uc.logger.Infow("assignment group created", "group_id", group.ID(), "code", group.Code())
	return groupToResult(group), nil
}

type UpdateGroupCommand struct {
	GroupID       uint
	Active        *bool
	AddMembers    []uint
	RemoveMembers []uint
}

type UpdateGroupUseCase struct {
	groupRepo assignment.GroupRepository
	logger    logger.Interface
}

func NewUpdateGroupUseCase(groupRepo assignment.GroupRepository, logger logger.Interface) *UpdateGroupUseCase {
	return &UpdateGroupUseCase{groupRepo: groupRepo, logger: logger}
}

func (uc *UpdateGroupUseCase) Execute(ctx context.Context, cmd UpdateGroupCommand) (*GroupResult, error) {
	if cmd.GroupID == 0 {
		return nil, errors.NewValidationError("group ID is required")
	}

	group, err := uc.groupRepo.FindByID(ctx, cmd.GroupID)
	if err != nil {
		return nil, err
	}

	for _, userID := range cmd.AddMembers {
		if err := group.AddMember(userID); err != nil {
			return nil, err
		}
	}
	for _, userID := range cmd.RemoveMembers {
		if err := group.RemoveMember(userID); err != nil {
			return nil, err
		}
	}
	if cmd.Active != nil {
		if *cmd.Active {
			group.Activate()
		} else {
			group.Deactivate()
		}
	}

	if err := uc.groupRepo.Update(ctx, group); err != nil {
		uc.logger.Errorw("failed to update assignment group", "group_id", cmd.GroupID, "error", err)
		return nil, err
	}
	return groupToResult(group), nil
}

type ListGroupsQuery struct {
	Pagination utils.Pagination
}

type ListGroupsResult struct {
	Groups []GroupResult
	Total  int64
}

type ListGroupsUseCase struct {
	groupRepo assignment.GroupRepository
	logger    logger.Interface
}

func NewListGroupsUseCase(groupRepo assignment.GroupRepository, logger logger.Interface) *ListGroupsUseCase {
	return &ListGroupsUseCase{groupRepo: groupRepo, logger: logger}
}

func (uc *ListGroupsUseCase) Execute(ctx context.Context, q ListGroupsQuery) (*ListGroupsResult, error) {
	p := utils.ValidatePagination(q.Pagination.Page, q.Pagination.PageSize)

	groups, total, err := uc.groupRepo.List(ctx, p.Offset(), p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list assignment groups", "error", err)
		return nil, err
	}

	out := make([]GroupResult, 0, len(groups))
	for _, group := range groups {
		out = append(out, *groupToResult(group))
	}
	return &ListGroupsResult{Groups: out, Total: total}, nil
}

func groupToResult(group *assignment.Group) *GroupResult {
	return &GroupResult{
		ID:          group.ID(),
		Code:        group.Code(),
		Name:        group.Name(),
		Description: group.Description(),
		Active:      group.IsActive(),
		MemberIDs:   group.MemberIDs(),
	}
}
