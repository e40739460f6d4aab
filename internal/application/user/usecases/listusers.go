package usecases

import (
	"context"

	"skywrench/internal/domain/user"
	"skywrench/internal/shared/logger"
	"skywrench/internal/shared/utils"
)

type ListUsersQuery struct {
	Search     string
	ActiveOnly bool
	Pagination utils.Pagination
}

type ListUsersResult struct {
	Users []UserResult
	Total int64
}

type ListUsersUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewListUsersUseCase(userRepo user.Repository, logger logger.Interface) *ListUsersUseCase {
	return &ListUsersUseCase{userRepo: userRepo, logger: logger}
}

func (uc *ListUsersUseCase) Execute(ctx context.Context, q ListUsersQuery) (*ListUsersResult, error) {
	p := utils.ValidatePagination(q.Pagination.Page, q.Pagination.PageSize)

	users, total, err := uc.userRepo.List(ctx, q.Search, q.ActiveOnly, p.Offset(), p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list users", "error", err)
		return nil, err
	}

	out := make([]UserResult, 0, len(users))
	for _, u := range users {
		out = append(out, *userToResult(u))
	}
	return &ListUsersResult{Users: out, Total: total}, nil
}

type GetUserUseCase struct {
	userRepo user.Repository
	logger   logger.Interface
}

func NewGetUserUseCase(userRepo user.Repository, logger logger.Interface) *GetUserUseCase {
	return &GetUserUseCase{userRepo: userRepo, logger: logger}
}

func (uc *GetUserUseCase) Execute(ctx context.Context, userID uint) (*UserResult, error) {
	u, err := uc.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return userToResult(u), nil
}
