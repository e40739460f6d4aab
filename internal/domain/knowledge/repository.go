package knowledge

import "context"

// Repository persists knowledge base articles.
type Repository interface {
	Save(ctx context.Context, a *Article) error
	Update(ctx context.Context, a *Article) error
	Delete(ctx context.Context, id uint) error
	FindByID(ctx context.Context, id uint) (*Article, error)
	FindBySlug(ctx context.Context, slug string) (*Article, error)
	List(ctx context.Context, category, search string, publishedOnly bool, offset, limit int) ([]*Article, int64, error)
	IncrementViewCount(ctx context.Context, id uint) error
}
