package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skywrench/internal/domain/product"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type mockProductRepo struct {
	products map[uint]*product.Product
	nextID   uint
	updated  []uint
	deleted  []uint
}

func newMockProductRepo() *mockProductRepo {
	return &mockProductRepo{products: make(map[uint]*product.Product), nextID: 10}
}

func (m *mockProductRepo) Save(ctx context.Context, p *product.Product) error {
	m.nextID++
	if err := p.SetID(m.nextID); err != nil {
		return err
	}
	m.products[p.ID()] = p
	return nil
}

func (m *mockProductRepo) Update(ctx context.Context, p *product.Product) error {
	m.updated = append(m.updated, p.ID())
	m.products[p.ID()] = p
	return nil
}

func (m *mockProductRepo) Delete(ctx context.Context, id uint) error {
	delete(m.products, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockProductRepo) FindByID(ctx context.Context, id uint) (*product.Product, error) {
	if p, ok := m.products[id]; ok {
		return p, nil
	}
	return nil, errors.NewNotFoundError("product not found")
}

func (m *mockProductRepo) FindByCode(ctx context.Context, code string) (*product.Product, error) {
	for _, p := range m.products {
		if p.Code() == code {
			return p, nil
		}
	}
	return nil, errors.NewNotFoundError("product not found")
}

func (m *mockProductRepo) List(ctx context.Context, search string, categoryID *uint, activeOnly bool, offset, limit int) ([]*product.Product, int64, error) {
	var out []*product.Product
	for _, p := range m.products {
		if activeOnly && !p.IsActive() {
			continue
		}
		out = append(out, p)
	}
	return out, int64(len(out)), nil
}

type mockCompanyRepo struct {
	companies map[uint]*product.Company
}

func newMockCompanyRepo(ids ...uint) *mockCompanyRepo {
	m := &mockCompanyRepo{companies: make(map[uint]*product.Company)}
	for _, id := range ids {
		c, _ := product.NewCompany(product.NewCompanyParams{Name: "AgriWing GmbH"})
		_ = c.SetID(id)
		m.companies[id] = c
	}
	return m
}

func (m *mockCompanyRepo) Save(ctx context.Context, c *product.Company) error {
	if err := c.SetID(uint(len(m.companies) + 1)); err != nil {
		return err
	}
	m.companies[c.ID()] = c
	return nil
}

func (m *mockCompanyRepo) Update(ctx context.Context, c *product.Company) error {
	m.companies[c.ID()] = c
	return nil
}

func (m *mockCompanyRepo) FindByID(ctx context.Context, id uint) (*product.Company, error) {
	if c, ok := m.companies[id]; ok {
		return c, nil
	}
	return nil, errors.NewNotFoundError("company not found")
}

func (m *mockCompanyRepo) List(ctx context.Context, offset, limit int) ([]*product.Company, int64, error) {
	var out []*product.Company
	for _, c := range m.companies {
		out = append(out, c)
	}
	return out, int64(len(out)), nil
}

type mockCategoryRepo struct {
	categories map[uint]*product.Category
}

func newMockCategoryRepo() *mockCategoryRepo {
	return &mockCategoryRepo{categories: make(map[uint]*product.Category)}
}

func (m *mockCategoryRepo) Save(ctx context.Context, c *product.Category) error {
	if err := c.SetID(uint(len(m.categories) + 1)); err != nil {
		return err
	}
	m.categories[c.ID()] = c
	return nil
}

func (m *mockCategoryRepo) Update(ctx context.Context, c *product.Category) error {
	m.categories[c.ID()] = c
	return nil
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id uint) (*product.Category, error) {
	if c, ok := m.categories[id]; ok {
		return c, nil
	}
	return nil, errors.NewNotFoundError("category not found")
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]*product.Category, error) {
	var out []*product.Category
	for _, c := range m.categories {
		out = append(out, c)
	}
	return out, nil
}

func awx4Command() ProductCommand {
	return ProductCommand{
		Code:            "AWX4",
		Name:            "AgriWing X4",
		Manufacturer:    "AgriWing",
		ModelYear:       2025,
		BatteryCapacity: 6800,
		Price:           decimal.NewFromInt(4200),
		CompanyID:       3,
	}
}

func TestCreateProductUseCase(t *testing.T) {
	t.Run("creates a catalog product", func(t *testing.T) {
		repo := newMockProductRepo()
		uc := NewCreateProductUseCase(repo, newMockCompanyRepo(3), logger.NewLogger())

		result, err := uc.Execute(context.Background(), awx4Command())

		require.NoError(t, err)
		assert.Equal(t, "AWX4", result.Code)
		assert.Equal(t, "AVAILABLE", result.Availability)
		assert.True(t, result.Active)
		assert.NotZero(t, result.ID)
	})

	t.Run("rejects a duplicate code", func(t *testing.T) {
		repo := newMockProductRepo()
		uc := NewCreateProductUseCase(repo, newMockCompanyRepo(3), logger.NewLogger())

		_, err := uc.Execute(context.Background(), awx4Command())
		require.NoError(t, err)

		_, err = uc.Execute(context.Background(), awx4Command())
		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeConflict))
	})

	t.Run("rejects an unknown owning company", func(t *testing.T) {
		uc := NewCreateProductUseCase(newMockProductRepo(), newMockCompanyRepo(), logger.NewLogger())

		_, err := uc.Execute(context.Background(), awx4Command())

		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
	})
}

func TestUpdateProductUseCase(t *testing.T) {
	repo := newMockProductRepo()
	companies := newMockCompanyRepo(3)
	created, err := NewCreateProductUseCase(repo, companies, logger.NewLogger()).Execute(context.Background(), awx4Command())
	require.NoError(t, err)

	uc := NewUpdateProductUseCase(repo, companies, logger.NewLogger())
	inactive := false
	cmd := awx4Command()
	cmd.Name = "AgriWing X4 Pro"
	cmd.Availability = "DISCONTINUED"

	result, err := uc.Execute(context.Background(), UpdateProductCommand{
		ProductID:      created.ID,
		ProductCommand: cmd,
		Active:         &inactive,
	})

	require.NoError(t, err)
	assert.Equal(t, "AgriWing X4 Pro", result.Name)
	assert.Equal(t, "DISCONTINUED", result.Availability)
	assert.False(t, result.Active)
	assert.Contains(t, repo.updated, created.ID)
}

func TestRecordProductServiceUseCase(t *testing.T) {
	repo := newMockProductRepo()
	created, err := NewCreateProductUseCase(repo, newMockCompanyRepo(3), logger.NewLogger()).Execute(context.Background(), awx4Command())
	require.NoError(t, err)

	uc := NewRecordProductServiceUseCase(repo, logger.NewLogger())
	serviced := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

	result, err := uc.Execute(context.Background(), created.ID, serviced)

	require.NoError(t, err)
	require.NotNil(t, result.NextServiceDueAt)
	assert.Equal(t, serviced.AddDate(0, 0, 90), *result.NextServiceDueAt)

	_, err = uc.Execute(context.Background(), 999, serviced)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}

func TestDeleteProductUseCase(t *testing.T) {
	repo := newMockProductRepo()
	created, err := NewCreateProductUseCase(repo, newMockCompanyRepo(3), logger.NewLogger()).Execute(context.Background(), awx4Command())
	require.NoError(t, err)

	uc := NewDeleteProductUseCase(repo, logger.NewLogger())

	require.NoError(t, uc.Execute(context.Background(), created.ID))
	assert.Contains(t, repo.deleted, created.ID)

	err = uc.Execute(context.Background(), created.ID)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}

func TestManageCompaniesUseCase(t *testing.T) {
	uc := NewManageCompaniesUseCase(newMockCompanyRepo(), logger.NewLogger())

	created, err := uc.Create(context.Background(), CompanyCommand{Name: "AgriWing GmbH", Country: "Germany"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	updated, err := uc.Update(context.Background(), created.ID, CompanyCommand{Name: "AgriWing AG", Country: "Germany"})
	require.NoError(t, err)
	assert.Equal(t, "AgriWing AG", updated.Name)

	_, err = uc.Create(context.Background(), CompanyCommand{})
	assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
}

func TestManageCategoriesUseCase(t *testing.T) {
	uc := NewManageCategoriesUseCase(newMockCategoryRepo(), logger.NewLogger())

	created, err := uc.Create(context.Background(), CategoryCommand{Code: "agri", Name: "Agricultural"})
	require.NoError(t, err)
	assert.Equal(t, "AGRI", created.Code)

	list, err := uc.List(context.Background())
	require.NoError(t, err)
	assert.Len(t, list, 1)

	_, err = uc.Update(context.Background(), 999, CategoryCommand{Name: "Survey"})
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}
