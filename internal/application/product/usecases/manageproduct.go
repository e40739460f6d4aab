package usecases

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"skywrench/internal/domain/product"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type ProductCommand struct {
	Code             string
	Name             string
	SerialNumber     string
	Description      string
	Manufacturer     string
	ModelYear        int
	WeightGrams      int
	MaxFlightTimeMin int
	BatteryCapacity  int
	Price            decimal.Decimal
	CategoryID       *uint
	CompanyID        uint
	Specifications   []product.Specification
	Availability     string
}

type ProductResult struct {
	ID               uint
	Code             string
	Name             string
	SerialNumber     string
	Description      string
	Manufacturer     string
	ModelYear        int
	WeightGrams      int
	MaxFlightTimeMin int
	BatteryCapacity  int
	Price            decimal.Decimal
	CategoryID       *uint
	CompanyID        uint
	Specifications   []product.Specification
	Availability     string
	Active           bool
	LastServicedAt   *time.Time
	NextServiceDueAt *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

type CreateProductUseCase struct {
	productRepo product.Repository
	companyRepo product.CompanyRepository
	logger      logger.Interface
}

func NewCreateProductUseCase(productRepo product.Repository, companyRepo product.CompanyRepository, logger logger.Interface) *CreateProductUseCase {
	return &CreateProductUseCase{productRepo: productRepo, companyRepo: companyRepo, logger: logger}
}

func (uc *CreateProductUseCase) Execute(ctx context.Context, cmd ProductCommand) (*ProductResult, error) {
	if _, err := uc.productRepo.FindByCode(ctx, cmd.Code); err == nil {
		return nil, errors.NewConflictError("a product with this code already exists")
	} else if !errors.IsType(err, errors.ErrorTypeNotFound) {
		return nil, err
	}
	if cmd.CompanyID != 0 {
		if _, err := uc.companyRepo.FindByID(ctx, cmd.CompanyID); err != nil {
			return nil, err
		}
	}

	p, err := product.NewProduct(commandToParams(cmd))
	if err != nil {
		return nil, err
	}
	if err := uc.productRepo.Save(ctx, p); err != nil {
		uc.logger.Errorw("failed to save product", "code", cmd.Code, "error", err)
		return nil, err
	}

	uc.logger.Infow("product created", "product_id", p.ID(), "code", p.Code())
	return productToResult(p), nil
}

type UpdateProductUseCase struct {
	productRepo product.Repository
	companyRepo product.CompanyRepository
	logger      logger.Interface
}

func NewUpdateProductUseCase(productRepo product.Repository, companyRepo product.CompanyRepository, logger logger.Interface) *UpdateProductUseCase {
	return &UpdateProductUseCase{productRepo: productRepo, companyRepo: companyRepo, logger: logger}
}

type UpdateProductCommand struct {
	ProductID uint
	ProductCommand
	Active *bool
}

func (uc *UpdateProductUseCase) Execute(ctx context.Context, cmd UpdateProductCommand) (*ProductResult, error) {
	if cmd.ProductID == 0 {
		return nil, errors.NewValidationError("product id is required")
	}

	p, err := uc.productRepo.FindByID(ctx, cmd.ProductID)
	if err != nil {
		return nil, err
	}
	if cmd.CompanyID != 0 && cmd.CompanyID != p.CompanyID() {
		if _, err := uc.companyRepo.FindByID(ctx, cmd.CompanyID); err != nil {
			return nil, err
		}
	}

	if err := p.UpdateDetails(commandToParams(cmd.ProductCommand)); err != nil {
		return nil, err
	}
	if cmd.Active != nil {
		if *cmd.Active {
			p.Activate()
		} else {
			p.Deactivate()
		}
	}

	if err := uc.productRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to update product", "product_id", cmd.ProductID, "error", err)
		return nil, err
	}
	return productToResult(p), nil
}

type RecordProductServiceUseCase struct {
	productRepo product.Repository
	logger      logger.Interface
}

func NewRecordProductServiceUseCase(productRepo product.Repository, logger logger.Interface) *RecordProductServiceUseCase {
	return &RecordProductServiceUseCase{productRepo: productRepo, logger: logger}
}

// Execute stamps a completed routine service; the next due date rolls
// forward automatically.
func (uc *RecordProductServiceUseCase) Execute(ctx context.Context, productID uint, servicedAt time.Time) (*ProductResult, error) {
	p, err := uc.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := p.RecordService(servicedAt); err != nil {
		return nil, err
	}
	if err := uc.productRepo.Update(ctx, p); err != nil {
		uc.logger.Errorw("failed to record product service", "product_id", productID, "error", err)
		return nil, err
	}
	uc.logger.Infow("product service recorded", "product_id", productID, "next_due", p.NextServiceDueAt())
	return productToResult(p), nil
}

type GetProductUseCase struct {
	productRepo product.Repository
}

func NewGetProductUseCase(productRepo product.Repository) *GetProductUseCase {
	return &GetProductUseCase{productRepo: productRepo}
}

func (uc *GetProductUseCase) Execute(ctx context.Context, productID uint) (*ProductResult, error) {
	p, err := uc.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	return productToResult(p), nil
}

type ListProductsQuery struct {
	Search     string
	CategoryID *uint
	ActiveOnly bool
	Offset     int
	Limit      int
}

type ListProductsUseCase struct {
	productRepo product.Repository
}

func NewListProductsUseCase(productRepo product.Repository) *ListProductsUseCase {
	return &ListProductsUseCase{productRepo: productRepo}
}

func (uc *ListProductsUseCase) Execute(ctx context.Context, q ListProductsQuery) ([]*ProductResult, int64, error) {
	products, total, err := uc.productRepo.List(ctx, q.Search, q.CategoryID, q.ActiveOnly, q.Offset, q.Limit)
	if err != nil {
		return nil, 0, err
	}
	results := make([]*ProductResult, 0, len(products))
	for _, p := range products {
		results = append(results, productToResult(p))
	}
	return results, total, nil
}

type DeleteProductUseCase struct {
	productRepo product.Repository
	logger      logger.Interface
}

func NewDeleteProductUseCase(productRepo product.Repository, logger logger.Interface) *DeleteProductUseCase {
	return &DeleteProductUseCase{productRepo: productRepo, logger: logger}
}

func (uc *DeleteProductUseCase) Execute(ctx context.Context, productID uint) error {
	if _, err := uc.productRepo.FindByID(ctx, productID); err != nil {
		return err
	}
	if err := uc.productRepo.Delete(ctx, productID); err != nil {
		uc.logger.Errorw("failed to delete product", "product_id", productID, "error", err)
		return err
	}
	uc.logger.Infow("product deleted", "product_id", productID)
	return nil
}

func commandToParams(cmd ProductCommand) product.NewProductParams {
	return product.NewProductParams{
		Code:             cmd.Code,
		Name:             cmd.Name,
		SerialNumber:     cmd.SerialNumber,
		Description:      cmd.Description,
		Manufacturer:     cmd.Manufacturer,
		ModelYear:        cmd.ModelYear,
		WeightGrams:      cmd.WeightGrams,
		MaxFlightTimeMin: cmd.MaxFlightTimeMin,
		BatteryCapacity:  cmd.BatteryCapacity,
		Price:            cmd.Price,
		CategoryID:       cmd.CategoryID,
		CompanyID:        cmd.CompanyID,
		Specifications:   cmd.Specifications,
		Availability:     product.Availability(cmd.Availability),
	}
}

func productToResult(p *product.Product) *ProductResult {
	return &ProductResult{
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
		Price:            p.Price(),
		CategoryID:       p.CategoryID(),
		CompanyID:        p.CompanyID(),
		Specifications:   p.Specifications(),
		Availability:     string(p.Availability()),
		Active:           p.IsActive(),
		LastServicedAt:   p.LastServicedAt(),
		NextServiceDueAt: p.NextServiceDueAt(),
		CreatedAt:        p.CreatedAt(),
		UpdatedAt:        p.UpdatedAt(),
	}
}
