package mappers

import (
	"skywrench/internal/domain/knowledge"
	"skywrench/internal/infrastructure/persistence/models"
)

type KnowledgeMapper interface {
	ToModel(a *knowledge.Article) *models.ArticleModel
	ToDomain(model *models.ArticleModel) *knowledge.Article
}

type KnowledgeMapperImpl struct{}

func NewKnowledgeMapper() KnowledgeMapper {
	return &KnowledgeMapperImpl{}
}

func (m *KnowledgeMapperImpl) ToModel(a *knowledge.Article) *models.ArticleModel {
	return &models.ArticleModel{
		ID:        a.ID(),
		Slug:      a.Slug(),
		Title:     a.Title(),
		Body:      a.Body(),
		Category:  a.Category(),
		AuthorID:  a.AuthorID(),
		Published: a.IsPublished(),
		ViewCount: a.ViewCount(),
		CreatedAt: a.CreatedAt().UnixMilli(),
		UpdatedAt: a.UpdatedAt().UnixMilli(),
	}
}

func (m *KnowledgeMapperImpl) ToDomain(model *models.ArticleModel) *knowledge.Article {
	return knowledge.ReconstructArticle(
		model.ID,
		model.Slug,
		model.Title,
		model.Body,
		model.Category,
		model.AuthorID,
		model.Published,
		model.ViewCount,
		millisToTime(model.CreatedAt),
		millisToTime(model.UpdatedAt),
	)
}
