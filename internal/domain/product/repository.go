package product

import "context"

// Repository persists catalog products.
type Repository interface {
	Save(ctx context.Context, p *Product) error
	Update(ctx context.Context, p *Product) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*Product, error)
	FindByCode(ctx context.Context, code string) (*Product, error)
	List(ctx context.Context, search string, categoryID *uint, activeOnly bool, offset, limit int) ([]*Product, int64, error)
}

// CompanyRepository persists product-owning companies.
type CompanyRepository interface {
	Save(ctx context.Context, c *Company) error
	Update(ctx context.Context, c *Company) error
	FindByID(ctx context.Context, id uint) (*Company, error)
	List(ctx context.Context, offset, limit int) ([]*Company, int64, error)
}

// CategoryRepository persists product categories.
type CategoryRepository interface {
	Save(ctx context.Context, c *Category) error
	Update(ctx context.Context, c *Category) error
	FindByID(ctx context.Context, id uint) (*Category, error)
	List(ctx context.Context) ([]*Category, error)
}
