package repository

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"skywrench/internal/domain/knowledge"
	"skywrench/internal/infrastructure/persistence/mappers"
	"skywrench/internal/infrastructure/persistence/models"
	"skywrench/internal/shared/db"
	"skywrench/internal/shared/errors"
)

type KnowledgeRepository struct {
	db     *gorm.DB
	mapper mappers.KnowledgeMapper
}

func NewKnowledgeRepository(db *gorm.DB) *KnowledgeRepository {
	return &KnowledgeRepository{
		db:     db,
		mapper: mappers.NewKnowledgeMapper(),
	}
}

func (r *KnowledgeRepository) Save(ctx context.Context, a *knowledge.Article) error {
	model := r.mapper.ToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Create(model).Error; err != nil {
		return fmt.Errorf("failed to save article: %w", err)
	}

	return a.SetID(model.ID)
}

func (r *KnowledgeRepository) Update(ctx context.Context, a *knowledge.Article) error {
	model := r.mapper.ToModel(a)
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.
		Model(&models.ArticleModel{}).
		Where("id = ?", model.ID).
		Select("*").
		Omit("id", "created_at", "view_count").
		Updates(model)

	if result.Error != nil {
		return fmt.Errorf("failed to update article: %w", result.Error)
	}

	return nil
}

func (r *KnowledgeRepository) Delete(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	result := tx.Delete(&models.ArticleModel{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete article: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("article not found")
	}
	return nil
}

func (r *KnowledgeRepository) FindByID(ctx context.Context, id uint) (*knowledge.Article, error) {
	var model models.ArticleModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.First(&model, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("article not found")
		}
		return nil, fmt.Errorf("failed to find article: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

func (r *KnowledgeRepository) FindBySlug(ctx context.Context, slug string) (*knowledge.Article, error) {
	var model models.ArticleModel
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.Where("slug = ?", slug).First(&model).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.NewNotFoundError("article not found")
		}
		return nil, fmt.Errorf("failed to find article: %w", err)
	}

	return r.mapper.ToDomain(&model), nil
}

func (r *KnowledgeRepository) List(ctx context.Context, category, search string, publishedOnly bool, offset, limit int) ([]*knowledge.Article, int64, error) {
	tx := db.GetTxFromContext(ctx, r.db).Model(&models.ArticleModel{})

	if category != "" {
		tx = tx.Where("category = ?", category)
	}
	if search != "" {
		like := "%" + search + "%"
		tx = tx.Where("title LIKE ? OR body LIKE ?", like, like)
	}
	if publishedOnly {
		tx = tx.Where("published = ?", true)
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	var rows []models.ArticleModel
	if err := tx.
		Order("updated_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}

	articles := make([]*knowledge.Article, 0, len(rows))
	for i := range rows {
		articles = append(articles, r.mapper.ToDomain(&rows[i]))
	}

	return articles, total, nil
}

func (r *KnowledgeRepository) IncrementViewCount(ctx context.Context, id uint) error {
	tx := db.GetTxFromContext(ctx, r.db)

	if err := tx.
		Model(&models.ArticleModel{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + 1")).Error; err != nil {
		return fmt.Errorf("failed to increment view count: %w", err)
	}
	return nil
}
