package knowledge

import (
	"regexp"
	"strings"
	"time"

	"skywrench/internal/shared/biztime"
	"skywrench/internal/shared/errors"
)

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL slug from a title.
func Slugify(title string) string {
	s := slugPattern.ReplaceAllString(strings.ToLower(strings.TrimSpace(title)), "-")
	return strings.Trim(s, "-")
}

// Article is a knowledge base entry with a markdown body. Rendering to
// sanitized HTML happens in the markdown service, not here.
type Article struct {
	id        uint
	slug      string
	title     string
	body      string
	category  string
	authorID  uint
	published bool
	viewCount int
	createdAt time.Time
	updatedAt time.Time
}

// NewArticle creates an unpublished draft. The slug derives from the title
// unless one is supplied.
func NewArticle(slug, title, body, category string, authorID uint) (*Article, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, errors.NewValidationError("title is required")
	}
	if strings.TrimSpace(body) == "" {
		return nil, errors.NewValidationError("body is required")
	}
	if authorID == 0 {
		return nil, errors.NewValidationError("author is required")
	}
	slug = strings.TrimSpace(slug)
	if slug == "" {
		slug = Slugify(title)
	} else {
		slug = Slugify(slug)
	}
	if slug == "" {
		return nil, errors.NewValidationError("slug cannot be derived from title")
	}
	now := biztime.NowUTC()
	return &Article{
		slug:      slug,
		title:     title,
		body:      body,
		category:  strings.TrimSpace(category),
		authorID:  authorID,
		createdAt: now,
		updatedAt: now,
	}, nil
}

// ReconstructArticle rebuilds an article from persistence.
func ReconstructArticle(id uint, slug, title, body, category string, authorID uint, published bool, viewCount int, createdAt, updatedAt time.Time) *Article {
	return &Article{
		id:        id,
		slug:      slug,
		title:     title,
		body:      body,
		category:  category,
		authorID:  authorID,
		published: published,
		viewCount: viewCount,
		createdAt: createdAt,
		updatedAt: updatedAt,
	}
}

func (a *Article) ID() uint             { return a.id }
func (a *Article) Slug() string         { return a.slug }
func (a *Article) Title() string        { return a.title }
func (a *Article) Body() string         { return a.body }
func (a *Article) Category() string     { return a.category }
func (a *Article) AuthorID() uint       { return a.authorID }
func (a *Article) IsPublished() bool    { return a.published }
func (a *Article) ViewCount() int       { return a.viewCount }
func (a *Article) CreatedAt() time.Time { return a.createdAt }
func (a *Article) UpdatedAt() time.Time { return a.updatedAt }

func (a *Article) SetID(id uint) error {
	if a.id != 0 {
		return errors.NewInternalError("article ID already set")
	}
	a.id = id
	return nil
}

func (a *Article) Publish() {
	a.published = true
	a.updatedAt = biztime.NowUTC()
}

func (a *Article) Unpublish() {
	a.published = false
	a.updatedAt = biztime.NowUTC()
}

// RecordView bumps the view counter.
func (a *Article) RecordView() {
	a.viewCount++
}

// UpdateContent replaces the editable attributes. The slug is stable after
// creation so links keep working.
func (a *Article) UpdateContent(title, body, category string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return errors.NewValidationError("title is required")
	}
	if strings.TrimSpace(body) == "" {
		return errors.NewValidationError("body is required")
	}
	a.title = title
	a.body = body
	a.category = strings.TrimSpace(category)
	a.updatedAt = biztime.NowUTC()
	return nil
}
