package mappers

import (
	"skywrench/internal/domain/user"
	"skywrench/internal/infrastructure/persistence/models"
	"skywrench/internal/shared/authorization"
)

type UserMapper interface {
	ToModel(u *user.User) *models.UserModel
	ToDomain(model *models.UserModel) *user.User
}

type UserMapperImpl struct{}

func NewUserMapper() UserMapper {
	return &UserMapperImpl{}
}

func (m *UserMapperImpl) ToModel(u *user.User) *models.UserModel {
	return &models.UserModel{
		ID:           u.ID(),
		Username:     u.Username(),
		Email:        u.Email(),
		PasswordHash: u.PasswordHash(),
		FullName:     u.FullName(),
		Role:         u.Role().String(),
		Department:   u.Department(),
		Active:       u.IsActive(),
		LastLoginAt:  timePtrToMillis(u.LastLoginAt()),
		CreatedAt:    u.CreatedAt().UnixMilli(),
		UpdatedAt:    u.UpdatedAt().UnixMilli(),
	}
}

func (m *UserMapperImpl) ToDomain(model *models.UserModel) *user.User {
	return user.ReconstructUser(
		model.ID,
		model.Username,
		model.Email,
		model.PasswordHash,
		model.FullName,
		authorization.UserRole(model.Role),
		model.Department,
		model.Active,
		millisPtrToTime(model.LastLoginAt),
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}
