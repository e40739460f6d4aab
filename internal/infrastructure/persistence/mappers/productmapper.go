package mappers

import (
	"encoding/json"
	"fmt"

	"gorm.io/datatypes"

	"skywrench/internal/domain/product"
	"skywrench/internal/infrastructure/persistence/models"
)

type ProductMapper interface {
	ToModel(p *product.Product) *models.ProductModel
	ToDomain(model *models.ProductModel) (*product.Product, error)
	CompanyToModel(c *product.Company) *models.CompanyModel
	CompanyToDomain(model *models.CompanyModel) *product.Company
	CategoryToModel(c *product.Category) *models.ProductCategoryModel
	CategoryToDomain(model *models.ProductCategoryModel) *product.Category
}

type ProductMapperImpl struct{}

func NewProductMapper() ProductMapper {
	return &ProductMapperImpl{}
}

func (m *ProductMapperImpl) ToModel(p *product.Product) *models.ProductModel {
	model := &models.ProductModel{
		ID:               p.ID(),
		Code:             p.Code(),
		Name:             p.Name(),
		SerialNumber:     p.SerialNumber(),
		Description:      p.Description(),
		Manufacturer:     p.Manufacturer(),
		ModelYear:        p.ModelYear(),
		WeightGrams:      p.WeightGrams(),
		MaxFlightTimeMin: p.MaxFlightTimeMin(),
		BatteryCapacity:  p.BatteryCapacity(),
		Price:            p.Price().String(),
		CategoryID:       p.CategoryID(),
		CompanyID:        p.CompanyID(),
		Availability:     string(p.Availability()),
		Active:           p.IsActive(),
		LastServicedAt:   timePtrToMillis(p.LastServicedAt()),
		NextServiceDueAt: timePtrToMillis(p.NextServiceDueAt()),
		CreatedAt:        p.CreatedAt().UnixMilli(),
		UpdatedAt:        p.UpdatedAt().UnixMilli(),
	}

	if len(p.Specifications()) > 0 {
		specsJSON, _ := json.Marshal(p.Specifications())
		model.Specifications = datatypes.JSON(specsJSON)
	}

	return model
}

func (m *ProductMapperImpl) ToDomain(model *models.ProductModel) (*product.Product, error) {
	var specs []product.Specification
	if len(model.Specifications) > 0 {
		if err := json.Unmarshal(model.Specifications, &specs); err != nil {
			return nil, fmt.Errorf("failed to unmarshal product specifications (id=%d): %w", model.ID, err)
		}
	}

	return product.ReconstructProduct(product.ReconstructedProduct{
		ID:               model.ID,
		Code:             model.Code,
		Name:             model.Name,
		SerialNumber:     model.SerialNumber,
		Description:      model.Description,
		Manufacturer:     model.Manufacturer,
		ModelYear:        model.ModelYear,
		WeightGrams:      model.WeightGrams,
		MaxFlightTimeMin: model.MaxFlightTimeMin,
		BatteryCapacity:  model.BatteryCapacity,
		Price:            parseDecimal(model.Price),
		CategoryID:       model.CategoryID,
		CompanyID:        model.CompanyID,
		Specifications:   specs,
		Availability:     product.Availability(model.Availability),
		Active:           model.Active,
		LastServicedAt:   millisPtrToTime(model.LastServicedAt),
		NextServiceDueAt: millisPtrToTime(model.NextServiceDueAt),
		CreatedAt:        millisToTime(model.CreatedAt),
		UpdatedAt:        millisToTime(model.UpdatedAt),
	}), nil
}

func (m *ProductMapperImpl) CompanyToModel(c *product.Company) *models.CompanyModel {
	return &models.CompanyModel{
		ID:                 c.ID(),
		Name:               c.Name(),
		RegistrationNumber: c.RegistrationNumber(),
		Website:            c.Website(),
		Email:              c.Email(),
		Phone:              c.Phone(),
		Address:            c.Address(),
		City:               c.City(),
		Country:            c.Country(),
		CreatedAt:          c.CreatedAt().UnixMilli(),
		UpdatedAt:          c.UpdatedAt().UnixMilli(),
	}
}

func (m *ProductMapperImpl) CompanyToDomain(model *models.CompanyModel) *product.Company {
	return product.ReconstructCompany(
		model.ID,
		model.Name,
		model.RegistrationNumber,
		model.Website,
		model.Email,
		model.Phone,
		model.Address,
		model.City,
		model.Country,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}

func (m *ProductMapperImpl) CategoryToModel(c *product.Category) *models.ProductCategoryModel {
	return &models.ProductCategoryModel{
		ID:          c.ID(),
		Code:        c.Code(),
		Name:        c.Name(),
		Description: c.Description(),
	}
}

func (m *ProductMapperImpl) CategoryToDomain(model *models.ProductCategoryModel) *product.Category {
	return product.ReconstructCategory(model.ID, model.Code, model.Name, model.Description)
}
