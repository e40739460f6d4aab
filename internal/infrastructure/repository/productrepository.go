package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"skywrench/internal/domain/product"
	"skywrench/internal/infrastructure/persistence/mappers"
	"skywrench/internal/infrastructure/persistence/models"
	"skywrench/internal/shared/db"
	"skywrench/internal/shared/errors"
)

type ProductRepository struct {
	db     *gorm.DB
	mapper mappers.ProductMapper
}

func NewProductRepository(db *gorm.DB) *ProductRepository {
	return &ProductRepository{
		db:     db,
		mapper: mappers.NewProductMapper(),
	}
}

func (r *ProductRepository) Save(ctx context.Context, p *product.Product) error {
	model := r.mapper.ToModel(p)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save product: %w", err)
	}

	return p.SetID(model.ID)
}

func (r *ProductRepository) Update(ctx context.Context, p *product.Product) error {
	model := r.mapper.ToModel(p)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.ProductModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update product: %w", result.Error)
	}

	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.ProductModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete product: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("product not found")
	}
	return nil
}

func (r *ProductRepository) FindByID(ctx context.Context, id uint) (*product.Product, error) {
	var model models.ProductModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("product not found")
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *ProductRepository) FindByCode(ctx context.Context, code string) (*product.Product, error) {
	var model models.ProductModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("code = ?", code).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("product not found")
		}
		return nil, fmt.Errorf("failed to find product: %w", err)
	}

	return r.mapper.ToDomain(&model)
}

func (r *ProductRepository) List(ctx context.Context, search string, categoryID *uint, activeOnly bool, offset, limit int) ([]*product.Product, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.ProductModel{})

	if search != "" {
		like := "%" + search + "%"
		tx = tx.Where("code LIKE ? OR name LIKE ? OR manufacturer LIKE ?", like, like, like)
	}
	if categoryID != nil {
		tx = tx.Where("category_id = ?", *categoryID)
	}
	if activeOnly {
		tx = tx.Where("active = ?", true)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count products: %w", err)
	}

	var rows []models.ProductModel
	if err := tx.
		Order("code ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list products: %w", err)
	}

	products := make([]*product.Product, 0, len(rows))
	for i := range rows {
		p, err := r.mapper.ToDomain(&rows[i])
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}

	return products, total, nil
}

type CompanyRepository struct {
	db     *gorm.DB
	mapper mappers.ProductMapper
}

func NewCompanyRepository(db *gorm.DB) *CompanyRepository {
	return &CompanyRepository{
		db:     db,
		mapper: mappers.NewProductMapper(),
	}
}

func (r *CompanyRepository) Save(ctx context.Context, c *product.Company) error {
	model := r.mapper.CompanyToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save company: %w", err)
	}

	return c.SetID(model.ID)
}

func (r *CompanyRepository) Update(ctx context.Context, c *product.Company) error {
	model := r.mapper.CompanyToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.CompanyModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update company: %w", result.Error)
	}

	return nil
}

func (r *CompanyRepository) FindByID(ctx context.Context, id uint) (*product.Company, error) {
	var model models.CompanyModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("company not found")
		}
		return nil, fmt.Errorf("failed to find company: %w", err)
	}

	return r.mapper.CompanyToDomain(&model), nil
}

func (r *CompanyRepository) List(ctx context.Context, offset, limit int) ([]*product.Company, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.CompanyModel{})

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count companies: %w", err)
	}

	var rows []models.CompanyModel
	if err := tx.
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list companies: %w", err)
	}

	companies := make([]*product.Company, 0, len(rows))
	for i := range rows {
		companies = append(companies, r.mapper.CompanyToDomain(&rows[i]))
	}

	return companies, total, nil
}

type ProductCategoryRepository struct {
	db     *gorm.DB
	mapper mappers.ProductMapper
}

func NewProductCategoryRepository(db *gorm.DB) *ProductCategoryRepository {
	return &ProductCategoryRepository{
		db:     db,
		mapper: mappers.NewProductMapper(),
	}
}

func (r *ProductCategoryRepository) Save(ctx context.Context, c *product.Category) error {
	model := r.mapper.CategoryToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save product category: %w", err)
	}

	return c.SetID(model.ID)
}

func (r *ProductCategoryRepository) Update(ctx context.Context, c *product.Category) error {
	model := r.mapper.CategoryToModel(c)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.ProductCategoryModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update product category: %w", result.Error)
	}

	return nil
}

func (r *ProductCategoryRepository) FindByID(ctx context.Context, id uint) (*product.Category, error) {
	var model models.ProductCategoryModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("category not found")
		}
		return nil, fmt.Errorf("failed to find product category: %w", err)
	}

	return r.mapper.CategoryToDomain(&model), nil
}

func (r *ProductCategoryRepository) List(ctx context.Context) ([]*product.Category, error) {
	tx := db.GetTxFromContext(ctx, r.db)

	var rows []models.ProductCategoryModel
	if err := tx.Order("name ASC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list product categories: %w", err)
	}

	categories := make([]*product.Category, 0, len(rows))
	for i := range rows {
		categories = append(categories, r.mapper.CategoryToDomain(&rows[i]))
	}

	return categories, nil
}
