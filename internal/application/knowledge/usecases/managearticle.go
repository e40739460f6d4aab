package usecases

import (
	"context"
	"strings"
	"time"

	"skywrench/internal/domain/knowledge"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type CreateArticleCommand struct {
	Title    string
	Body     string
	Category string
	AuthorID uint
	Publish  bool
}

type ArticleResult struct {
	ID        uint
	Slug      string
	Title     string
	Category  string
	AuthorID  uint
	Published bool
	ViewCount int
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateArticleUseCase struct {
	articleRepo knowledge.Repository
	logger      logger.Interface
}

func NewCreateArticleUseCase(articleRepo knowledge.Repository, logger logger.Interface) *CreateArticleUseCase {
	return &CreateArticleUseCase{articleRepo: articleRepo, logger: logger}
}

func (uc *CreateArticleUseCase) Execute(ctx context.Context, cmd CreateArticleCommand) (*ArticleResult, error) {
	slug := knowledge.Slugify(cmd.Title)
	if slug == "" {
		return nil, errors.NewValidationError("title is required")
	}

	// A slug collision means an article with essentially the same title
	// already exists; surface that instead of silently suffixing.
	if _, err := uc.articleRepo.FindBySlug(ctx, slug); err == nil {
		return nil, errors.NewConflictError("an article with this title already exists")
	} else if !errors.IsType(err, errors.ErrorTypeNotFound) {
		return nil, err
	}

	a, err := knowledge.NewArticle(slug, cmd.Title, cmd.Body, cmd.Category, cmd.AuthorID)
	if err != nil {
		return nil, err
	}
	if cmd.Publish {
		a.Publish()
	}
	if err := uc.articleRepo.Save(ctx, a); err != nil {
		uc.logger.Errorw("failed to save article", "slug", slug, "error", err)
		return nil, err
	}

	uc.logger.Infow("article created", "article_id", a.ID(), "slug", a.Slug(), "published", a.IsPublished())
	return articleToResult(a), nil
}

type UpdateArticleCommand struct {
	ArticleID uint
	Title     string
	Body      string
	Category  string
	Published *bool
}

type UpdateArticleUseCase struct {
	articleRepo knowledge.Repository
	logger      logger.Interface
}

func NewUpdateArticleUseCase(articleRepo knowledge.Repository, logger logger.Interface) *UpdateArticleUseCase {
	return &UpdateArticleUseCase{articleRepo: articleRepo, logger: logger}
}

func (uc *UpdateArticleUseCase) Execute(ctx context.Context, cmd UpdateArticleCommand) (*ArticleResult, error) {
	if cmd.ArticleID == 0 {
		return nil, errors.NewValidationError("article id is required")
	}

	a, err := uc.articleRepo.FindByID(ctx, cmd.ArticleID)
	if err != nil {
		return nil, err
	}

	if strings.TrimSpace(cmd.Title) != "" || strings.TrimSpace(cmd.Body) != "" {
		title := cmd.Title
		if strings.TrimSpace(title) == "" {
			title = a.Title()
		}
		body := cmd.Body
		if strings.TrimSpace(body) == "" {
			body = a.Body()
		}
		category := cmd.Category
		if category == "" {
			category = a.Category()
		}
		if err := a.UpdateContent(title, body, category); err != nil {
			return nil, err
		}
	}
	if cmd.Published != nil {
		if *cmd.Published {
			a.Publish()
		} else {
			a.Unpublish()
		}
	}

	if err := uc.articleRepo.Update(ctx, a); err != nil {
		uc.logger.Errorw("failed to update article", "article_id", cmd.ArticleID, "error", err)
		return nil, err
	}
	return articleToResult(a), nil
}

type DeleteArticleUseCase struct {
	articleRepo knowledge.Repository
	logger      logger.Interface
}

func NewDeleteArticleUseCase(articleRepo knowledge.Repository, logger logger.Interface) *DeleteArticleUseCase {
	return &DeleteArticleUseCase{articleRepo: articleRepo, logger: logger}
}

func (uc *DeleteArticleUseCase) Execute(ctx context.Context, articleID uint) error {
	if _, err := uc.articleRepo.FindByID(ctx, articleID); err != nil {
		return err
	}
	if err := uc.articleRepo.Delete(ctx, articleID); err != nil {
		uc.logger.Errorw("failed to delete article", "article_id", articleID, "error", err)
		return err
	}
	uc.logger.Infow("article deleted", "article_id", articleID)
	return nil
}

func articleToResult(a *knowledge.Article) *ArticleResult {
	return &ArticleResult{
		ID:        a.ID(),
		Slug:      a.Slug(),
		Title:     a.Title(),
		Category:  a.Category(),
		AuthorID:  a.AuthorID(),
		Published: a.IsPublished(),
		ViewCount: a.ViewCount(),
		CreatedAt: a.CreatedAt(),
		UpdatedAt: a.UpdatedAt(),
	}
}
