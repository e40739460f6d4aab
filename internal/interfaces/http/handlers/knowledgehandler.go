package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"skywrench/internal/application/knowledge/usecases"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
	"skywrench/internal/shared/utils"
)

type KnowledgeHandler struct {
	createArticleUC *usecases.CreateArticleUseCase
	updateArticleUC *usecases.UpdateArticleUseCase
	deleteArticleUC *usecases.DeleteArticleUseCase
	getArticleUC    *usecases.GetArticleUseCase
	listArticlesUC  *usecases.ListArticlesUseCase
	logger          logger.Interface
}

func NewKnowledgeHandler(
	createArticleUC *usecases.CreateArticleUseCase,
	updateArticleUC *usecases.UpdateArticleUseCase,
	deleteArticleUC *usecases.DeleteArticleUseCase,
	getArticleUC *usecases.GetArticleUseCase,
	listArticlesUC *usecases.ListArticlesUseCase,
) *KnowledgeHandler {
	return &KnowledgeHandler{
		createArticleUC: createArticleUC,
		updateArticleUC: updateArticleUC,
		deleteArticleUC: deleteArticleUC,
		getArticleUC:    getArticleUC,
		listArticlesUC:  listArticlesUC,
		logger:          logger.NewLogger(),
	}
}

type CreateArticleRequest struct {
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
	Category string `json:"category" binding:"required"`
	Publish  bool   `json:"publish"`
}

type UpdateArticleRequest struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	Category  string `json:"category"`
	Published *bool  `json:"published"`
}

type ArticleResponse struct {
	ID        uint      `json:"id"`
	Slug      string    `json:"slug"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	AuthorID  uint      `json:"author_id"`
	Published bool      `json:"published"`
	ViewCount int       `json:"view_count"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ArticleViewResponse struct {
	ArticleResponse
	BodyMarkdown string `json:"body_markdown"`
	BodyHTML     string `json:"body_html"`
}

func articleToResponse(r *usecases.ArticleResult) ArticleResponse {
	return ArticleResponse{
		ID:        r.ID,
		Slug:      r.Slug,
		Title:     r.Title,
		Category:  r.Category,
		AuthorID:  r.AuthorID,
		Published: r.Published,
		ViewCount: r.ViewCount,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
}

func (h *KnowledgeHandler) CreateArticle(c *gin.Context) {
	var req CreateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for create article", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid article payload")
		return
	}

	result, err := h.createArticleUC.Execute(c.Request.Context(), usecases.CreateArticleCommand{
		Title:    req.Title,
		Body:     req.Body,
		Category: req.Category,
		AuthorID: utils.CurrentUserID(c),
		Publish:  req.Publish,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, articleToResponse(result), "article created")
}

// UpdateArticle addresses the article by slug like the read side does and
// resolves it to an id before updating.
func (h *KnowledgeHandler) UpdateArticle(c *gin.Context) {
	articleID, err := h.resolveSlug(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	var req UpdateArticleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warnw("invalid request body for update article", "error", err)
		utils.ErrorResponse(c, http.StatusBadRequest, "invalid article payload")
		return
	}

	result, err := h.updateArticleUC.Execute(c.Request.Context(), usecases.UpdateArticleCommand{
		ArticleID: articleID,
		Title:     req.Title,
		Body:      req.Body,
		Category:  req.Category,
		Published: req.Published,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "article updated", articleToResponse(result))
}

func (h *KnowledgeHandler) DeleteArticle(c *gin.Context) {
	articleID, err := h.resolveSlug(c)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	if err := h.deleteArticleUC.Execute(c.Request.Context(), articleID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "article deleted", nil)
}

// GetArticle serves a single article by slug. Staff see drafts and do not
// bump the view counter; customers only see published articles.
func (h *KnowledgeHandler) GetArticle(c *gin.Context) {
	slug := c.Param("slug")
	if slug == "" {
		utils.ErrorResponse(c, http.StatusBadRequest, "article slug is required")
		return
	}

	view, err := h.getArticleUC.Execute(c.Request.Context(), usecases.GetArticleQuery{
		Slug:      slug,
		StaffView: currentUserRole(c).IsStaff(),
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", ArticleViewResponse{
		ArticleResponse: articleToResponse(&view.ArticleResult),
		BodyMarkdown:    view.BodyMarkdown,
		BodyHTML:        view.BodyHTML,
	})
}

func (h *KnowledgeHandler) resolveSlug(c *gin.Context) (uint, error) {
	slug := c.Param("slug")
	if slug == "" {
		return 0, errors.NewValidationError("article slug is required")
	}
	view, err := h.getArticleUC.Execute(c.Request.Context(), usecases.GetArticleQuery{Slug: slug, StaffView: true})
	if err != nil {
		return 0, err
	}
	return view.ID, nil
}

func (h *KnowledgeHandler) ListArticles(c *gin.Context) {
	p := utils.ParsePagination(c)

	result, err := h.listArticlesUC.Execute(c.Request.Context(), usecases.ListArticlesQuery{
		Category:      c.Query("category"),
		Search:        c.Query("search"),
		PublishedOnly: !currentUserRole(c).IsStaff(),
		Pagination:    p,
	})
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	articles := make([]ArticleResponse, 0, len(result.Articles))
	for i := range result.Articles {
		articles = append(articles, articleToResponse(&result.Articles[i]))
	}

	utils.ListSuccessResponse(c, articles, result.Total, p.Page, p.PageSize)
}
