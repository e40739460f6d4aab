package models

type ArticleModel struct {
	ID        uint   `gorm:"primaryKey"`
	Slug      string `gorm:"uniqueIndex;size:200;not null"`
	Title     string `gorm:"size:200;not null"`
	Body      string `gorm:"type:text;not null"`
	Category  string `gorm:"size:50;index"`
	AuthorID  uint   `gorm:"not null;index"`
	Published bool   `gorm:"not null;default:false;index"`
	ViewCount int    `gorm:"not null;default:0"`
	CreatedAt int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (ArticleModel) TableName() string {
	return "knowledge_articles"
}
