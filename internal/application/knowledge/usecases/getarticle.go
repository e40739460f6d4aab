package usecases

import (
	"context"

	"skywrench/internal/domain/knowledge"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
	"skywrench/internal/shared/utils"
)

// ArticleView is the read model for a single article, with the body
// rendered to sanitized HTML.
type ArticleView struct {
	ArticleResult
	BodyMarkdown string
	BodyHTML     string
}

type GetArticleQuery struct {
	Slug string
	// StaffView lets unpublished drafts through and skips view counting.
	StaffView bool
}

type GetArticleUseCase struct {
	articleRepo knowledge.Repository
	renderer    BodyRenderer
	logger      logger.Interface
}

func NewGetArticleUseCase(articleRepo knowledge.Repository, renderer BodyRenderer, logger logger.Interface) *GetArticleUseCase {
	return &GetArticleUseCase{articleRepo: articleRepo, renderer: renderer, logger: logger}
}

func (uc *GetArticleUseCase) Execute(ctx context.Context, q GetArticleQuery) (*ArticleView, error) {
	a, err := uc.articleRepo.FindBySlug(ctx, q.Slug)
	if err != nil {
		return nil, err
	}
	if !a.IsPublished() && !q.StaffView {
		return nil, errors.NewNotFoundError("article not found")
	}

	html, err := uc.renderer.Render(a.Body())
	if err != nil {
		uc.logger.Errorw("failed to render article body", "slug", q.Slug, "error", err)
		return nil, errors.NewInternalError("failed to render article")
	}

	if !q.StaffView {
		a.RecordView()
		if err := uc.articleRepo.IncrementViewCount(ctx, a.ID()); err != nil {
			uc.logger.Warnw("failed to bump view count", "article_id", a.ID(), "error", err)
		}
	}

	return &ArticleView{
		ArticleResult: *articleToResult(a),
		BodyMarkdown:  a.Body(),
		BodyHTML:      html,
	}, nil
}

type ListArticlesQuery struct {
	Category      string
	Search        string
	PublishedOnly bool
	Pagination    utils.Pagination
}

type ListArticlesResult struct {
	Articles []ArticleResult
	Total    int64
}

type ListArticlesUseCase struct {
	articleRepo knowledge.Repository
	logger      logger.Interface
}

func NewListArticlesUseCase(articleRepo knowledge.Repository, logger logger.Interface) *ListArticlesUseCase {
	return &ListArticlesUseCase{articleRepo: articleRepo, logger: logger}
}

func (uc *ListArticlesUseCase) Execute(ctx context.Context, q ListArticlesQuery) (*ListArticlesResult, error) {
	p := utils.ValidatePagination(q.Pagination.Page, q.Pagination.PageSize)

	articles, total, err := uc.articleRepo.List(ctx, q.Category, q.Search, q.PublishedOnly, p.Offset(), p.PageSize)
	if err != nil {
		uc.logger.Errorw("failed to list articles", "error", err)
		return nil, err
	}

	out := make([]ArticleResult, 0, len(articles))
	for _, a := range articles {
		out = append(out, *articleToResult(a))
	}
	return &ListArticlesResult{Articles: out, Total: total}, nil
}
