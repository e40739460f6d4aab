package usecases

import (
	"context"
	"time"

	"skywrench/internal/domain/product"
	"skywrench/internal/shared/logger"
)

type CompanyCommand struct {
	Name               string
	RegistrationNumber string
	Website            string
	Email              string
	Phone              string
	Address            string
	City               string
	Country            string
}

type CompanyResult struct {
	ID                 uint
	Name               string
	RegistrationNumber string
	Website            string
	Email              string
	Phone              string
	Address            string
	City               string
	Country            string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

type ManageCompaniesUseCase struct {
	companyRepo product.CompanyRepository
	logger      logger.Interface
}

func NewManageCompaniesUseCase(companyRepo product.CompanyRepository, logger logger.Interface) *ManageCompaniesUseCase {
	return &ManageCompaniesUseCase{companyRepo: companyRepo, logger: logger}
}

func (uc *ManageCompaniesUseCase) Create(ctx context.Context, cmd CompanyCommand) (*CompanyResult, error) {
	c, err := product.NewCompany(companyParams(cmd))
	if err != nil {
		return nil, err
	}
	if err := uc.companyRepo.Save(ctx, c); err != nil {
		uc.logger.Errorw("failed to save company", "name", cmd.Name, "error", err)
		return nil, err
	}
	uc.logger.Infow("company created", "company_id", c.ID(), "name", c.Name())
	return companyToResult(c), nil
}

func (uc *ManageCompaniesUseCase) Update(ctx context.Context, companyID uint, cmd CompanyCommand) (*CompanyResult, error) {
	c, err := uc.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if err := c.UpdateDetails(companyParams(cmd)); err != nil {
		return nil, err
	}
	if err := uc.companyRepo.Update(ctx, c); err != nil {
		uc.logger.Errorw("failed to update company", "company_id", companyID, "error", err)
		return nil, err
	}
	return companyToResult(c), nil
}

func (uc *ManageCompaniesUseCase) Get(ctx context.Context, companyID uint) (*CompanyResult, error) {
	c, err := uc.companyRepo.FindByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return companyToResult(c), nil
}

func (uc *ManageCompaniesUseCase) List(ctx context.Context, offset, limit int) ([]*CompanyResult, int64, error) {
	companies, total, err := uc.companyRepo.List(ctx, offset, limit)
	if err != nil {
		return nil, 0, err
	}
	results := make([]*CompanyResult, 0, len(companies))
	for _, c := range companies {
		results = append(results, companyToResult(c))
	}
	return results, total, nil
}

type CategoryCommand struct {
	Code        string
	Name        string
	Description string
}

type CategoryResult struct {
	ID          uint
	Code        string
	Name        string
	Description string
}

type ManageCategoriesUseCase struct {
	categoryRepo product.CategoryRepository
	logger       logger.Interface
}

func NewManageCategoriesUseCase(categoryRepo product.CategoryRepository, logger logger.Interface) *ManageCategoriesUseCase {
	return &ManageCategoriesUseCase{categoryRepo: categoryRepo, logger: logger}
}

func (uc *ManageCategoriesUseCase) Create(ctx context.Context, cmd CategoryCommand) (*CategoryResult, error) {
	c, err := product.NewCategory(cmd.Code, cmd.Name, cmd.Description)
	if err != nil {
		return nil, err
	}
	if err := uc.categoryRepo.Save(ctx, c); err != nil {
		uc.logger.Errorw("failed to save product category", "name", cmd.Name, "error", err)
		return nil, err
	}
	uc.logger.Infow("product category created", "category_id", c.ID(), "name", c.Name())
	return categoryToResult(c), nil
}

func (uc *ManageCategoriesUseCase) Update(ctx context.Context, categoryID uint, cmd CategoryCommand) (*CategoryResult, error) {
	c, err := uc.categoryRepo.FindByID(ctx, categoryID)
	if err != nil {
		return nil, err
	}
	if err := c.UpdateDetails(cmd.Code, cmd.Name, cmd.Description); err != nil {
		return nil, err
	}
	if err := uc.categoryRepo.Update(ctx, c); err != nil {
		uc.logger.Errorw("failed to update product category", "category_id", categoryID, "error", err)
		return nil, err
	}
	return categoryToResult(c), nil
}

func (uc *ManageCategoriesUseCase) List(ctx context.Context) ([]*CategoryResult, error) {
	categories, err := uc.categoryRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	results := make([]*CategoryResult, 0, len(categories))
	for _, c := range categories {
		results = append(results, categoryToResult(c))
	}
	return results, nil
}

func companyParams(cmd CompanyCommand) product.NewCompanyParams {
	return product.NewCompanyParams{
		Name:               cmd.Name,
		RegistrationNumber: cmd.RegistrationNumber,
		Website:            cmd.Website,
		Email:              cmd.Email,
		Phone:              cmd.Phone,
		Address:            cmd.Address,
		City:               cmd.City,
		Country:            cmd.Country,
	}
}

func companyToResult(c *product.Company) *CompanyResult {
	return &CompanyResult{
		ID:                 c.ID(),
		Name:               c.Name(),
		RegistrationNumber: c.RegistrationNumber(),
		Website:            c.Website(),
		Email:              c.Email(),
		Phone:              c.Phone(),
		Address:            c.Address(),
		City:               c.City(),
		Country:            c.Country(),
		CreatedAt:          c.CreatedAt(),
		UpdatedAt:          c.UpdatedAt(),
	}
}

func categoryToResult(c *product.Category) *CategoryResult {
	return &CategoryResult{
		ID:          c.ID(),
		Code:        c.Code(),
		Name:        c.Name(),
		Description: c.Description(),
	}
}
