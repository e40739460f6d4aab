package knowledge

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Battery Care 101", "battery-care-101"},
		{"  Gimbal / Camera FAQ  ", "gimbal-camera-faq"},
		{"UPPER", "upper"},
		{"---", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Slugify(tt.in))
	}
}

func TestNewArticle(t *testing.T) {
	a, err := NewArticle("", "Battery Care 101", "# Storage\nKeep cells at 3.8V.", "batteries", 3)
	require.NoError(t, err)
	assert.Equal(t, "battery-care-101", a.Slug())
	assert.False(t, a.IsPublished())
	assert.Equal(t, 0, a.ViewCount())

	a, err = NewArticle("Custom Slug!", "Battery Care 101", "body", "", 3)
	require.NoError(t, err)
	assert.Equal(t, "custom-slug", a.Slug())

	_, err = NewArticle("", "  ", "body", "", 3)
	assert.Error(t, err)
	_, err = NewArticle("", "title", " ", "", 3)
	assert.Error(t, err)
	_, err = NewArticle("", "title", "body", "", 0)
	assert.Error(t, err)
	_, err = NewArticle("", "!!!", "body", "", 3)
	assert.Error(t, err, "unsluggable title")
}

func TestArticle_PublishAndViews(t *testing.T) {
	a, err := NewArticle("", "Battery Care 101", "body", "", 3)
	require.NoError(t, err)

	a.Publish()
	assert.True(t, a.IsPublished())
	a.Unpublish()
	assert.False(t, a.IsPublished())

	a.RecordView()
	a.RecordView()
	assert.Equal(t, 2, a.ViewCount())
}

func TestArticle_UpdateContentKeepsSlug(t *testing.T) {
	a, err := NewArticle("", "Battery Care 101", "body", "", 3)
	require.NoError(t, err)

	require.NoError(t, a.UpdateContent("Battery Care 201", "new body", "batteries"))
	assert.Equal(t, "battery-care-101", a.Slug())
	assert.Equal(t, "Battery Care 201", a.Title())

	assert.Error(t, a.UpdateContent("", "body", ""))
	assert.Error(t, a.UpdateContent("title", "", ""))
}
