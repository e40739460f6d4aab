package usecases

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"skywrench/internal/domain/knowledge"
	"skywrench/internal/shared/errors"
	"skywrench/internal/shared/logger"
)

type mockArticleRepo struct {
	byID      map[uint]*knowledge.Article
	bySlug    map[string]*knowledge.Article
	nextID    uint
	deleted   []uint
	viewBumps []uint
}

func newMockArticleRepo() *mockArticleRepo {
	return &mockArticleRepo{
		byID:   map[uint]*knowledge.Article{},
		bySlug: map[string]*knowledge.Article{},
		nextID: 10,
	}
}

func (m *mockArticleRepo) add(a *knowledge.Article) {
	m.byID[a.ID()] = a
	m.bySlug[a.Slug()] = a
}

func (m *mockArticleRepo) Save(ctx context.Context, a *knowledge.Article) error {
	m.nextID++
	_ = a.SetID(m.nextID)
	m.add(a)
	return nil
}

func (m *mockArticleRepo) Update(ctx context.Context, a *knowledge.Article) error {
	m.add(a)
	return nil
}

func (m *mockArticleRepo) Delete(ctx context.Context, id uint) error {
	if a, ok := m.byID[id]; ok {
		delete(m.bySlug, a.Slug())
		delete(m.byID, id)
	}
	m.deleted = append(m.deleted, id)
	return nil
}

func (m *mockArticleRepo) FindByID(ctx context.Context, id uint) (*knowledge.Article, error) {
	if a, ok := m.byID[id]; ok {
		return a, nil
	}
	return nil, errors.NewNotFoundError("article not found")
}

func (m *mockArticleRepo) FindBySlug(ctx context.Context, slug string) (*knowledge.Article, error) {
	if a, ok := m.bySlug[slug]; ok {
		return a, nil
	}
	return nil, errors.NewNotFoundError("article not found")
}

func (m *mockArticleRepo) List(ctx context.Context, category, search string, publishedOnly bool, offset, limit int) ([]*knowledge.Article, int64, error) {
	var out []*knowledge.Article
	for _, a := range m.byID {
		if category != "" && a.Category() != category {
			continue
		}
		if publishedOnly && !a.IsPublished() {
			continue
		}
		out = append(out, a)
	}
	return out, int64(len(out)), nil
}

func (m *mockArticleRepo) IncrementViewCount(ctx context.Context, id uint) error {
	m.viewBumps = append(m.viewBumps, id)
	return nil
}

type mockRenderer struct {
	renderErr error
}

func (m *mockRenderer) Render(markdown string) (string, error) {
	if m.renderErr != nil {
		return "", m.renderErr
	}
	return "<p>" + markdown + "</p>", nil
}

func testLogger() logger.Interface {
	return logger.NewLogger()
}

func publishedArticle(t *testing.T, id uint, title string) *knowledge.Article {
	t.Helper()
	a, err := knowledge.NewArticle(knowledge.Slugify(title), title, "Check the propeller seating.", "troubleshooting", 3)
	require.NoError(t, err)
	require.NoError(t, a.SetID(id))
	a.Publish()
	return a
}

func TestCreateArticleUseCase_Execute(t *testing.T) {
	t.Run("creates a draft with a generated slug", func(t *testing.T) {
		repo := newMockArticleRepo()
		uc := NewCreateArticleUseCase(repo, testLogger())

		result, err := uc.Execute(context.Background(), CreateArticleCommand{
			Title:    "Gimbal Calibration After Crash",
			Body:     "Run the IMU calibration first.",
			Category: "repair",
			AuthorID: 3,
		})

		require.NoError(t, err)
		assert.Equal(t, "gimbal-calibration-after-crash", result.Slug)
		assert.False(t, result.Published)
	})

	t.Run("publish flag publishes immediately", func(t *testing.T) {
		uc := NewCreateArticleUseCase(newMockArticleRepo(), testLogger())

		result, err := uc.Execute(context.Background(), CreateArticleCommand{
			Title: "Firmware Rollback", Body: "b", Category: "firmware", AuthorID: 3, Publish: true,
		})

		require.NoError(t, err)
		assert.True(t, result.Published)
	})

	t.Run("duplicate title conflicts on slug", func(t *testing.T) {
		repo := newMockArticleRepo()
		repo.add(publishedArticle(t, 5, "Firmware Rollback"))
		uc := NewCreateArticleUseCase(repo, testLogger())

		_, err := uc.Execute(context.Background(), CreateArticleCommand{
			Title: "Firmware Rollback", Body: "b", Category: "firmware", AuthorID: 3,
		})

		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeConflict))
	})

	t.Run("empty title", func(t *testing.T) {
		uc := NewCreateArticleUseCase(newMockArticleRepo(), testLogger())

		_, err := uc.Execute(context.Background(), CreateArticleCommand{Body: "b", AuthorID: 3})

		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeValidation))
	})
}

func TestGetArticleUseCase_Execute(t *testing.T) {
	t.Run("renders and counts a public view", func(t *testing.T) {
		repo := newMockArticleRepo()
		repo.add(publishedArticle(t, 5, "Firmware Rollback"))
		uc := NewGetArticleUseCase(repo, &mockRenderer{}, testLogger())

		view, err := uc.Execute(context.Background(), GetArticleQuery{Slug: "firmware-rollback"})

		require.NoError(t, err)
		assert.Equal(t, "<p>Check the propeller seating.</p>", view.BodyHTML)
		assert.Equal(t, "Check the propeller seating.", view.BodyMarkdown)
		assert.Equal(t, []uint{5}, repo.viewBumps)
		assert.Equal(t, 1, view.ViewCount)
	})

	t.Run("staff view skips the counter and sees drafts", func(t *testing.T) {
		repo := newMockArticleRepo()
		draft, err := knowledge.NewArticle("draft-note", "Draft Note", "wip", "repair", 3)
		require.NoError(t, err)
		require.NoError(t, draft.SetID(6))
		repo.add(draft)
		uc := NewGetArticleUseCase(repo, &mockRenderer{}, testLogger())

		view, err := uc.Execute(context.Background(), GetArticleQuery{Slug: "draft-note", StaffView: true})

		require.NoError(t, err)
		assert.False(t, view.Published)
		assert.Empty(t, repo.viewBumps)
	})

	t.Run("drafts are hidden from the public", func(t *testing.T) {
		repo := newMockArticleRepo()
		draft, err := knowledge.NewArticle("draft-note", "Draft Note", "wip", "repair", 3)
		require.NoError(t, err)
		require.NoError(t, draft.SetID(6))
		repo.add(draft)
		uc := NewGetArticleUseCase(repo, &mockRenderer{}, testLogger())

		_, err = uc.Execute(context.Background(), GetArticleQuery{Slug: "draft-note"})

		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
	})
}

func TestUpdateArticleUseCase_Execute(t *testing.T) {
	t.Run("edits content and unpublishes", func(t *testing.T) {
		repo := newMockArticleRepo()
		repo.add(publishedArticle(t, 5, "Firmware Rollback"))
		uc := NewUpdateArticleUseCase(repo, testLogger())

		unpublish := false
		result, err := uc.Execute(context.Background(), UpdateArticleCommand{
			ArticleID: 5,
			Body:      "Use the vendor tool instead.",
			Published: &unpublish,
		})

		require.NoError(t, err)
		assert.False(t, result.Published)
		assert.Equal(t, "Firmware Rollback", result.Title)
		updated, _ := repo.FindByID(context.Background(), 5)
		assert.Equal(t, "Use the vendor tool instead.", updated.Body())
	})

	t.Run("unknown article", func(t *testing.T) {
		uc := NewUpdateArticleUseCase(newMockArticleRepo(), testLogger())

		_, err := uc.Execute(context.Background(), UpdateArticleCommand{ArticleID: 404, Title: "x"})

		require.Error(t, err)
		assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
	})
}

func TestDeleteArticleUseCase_Execute(t *testing.T) {
	repo := newMockArticleRepo()
	repo.add(publishedArticle(t, 5, "Firmware Rollback"))
	uc := NewDeleteArticleUseCase(repo, testLogger())

	require.NoError(t, uc.Execute(context.Background(), 5))
	assert.Equal(t, []uint{5}, repo.deleted)

	err := uc.Execute(context.Background(), 5)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.ErrorTypeNotFound))
}
