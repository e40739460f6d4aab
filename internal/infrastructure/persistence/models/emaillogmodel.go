package models

type EmailLogModel struct {
	ID           uint   `gorm:"primaryKey"`
	Recipient    string `gorm:"size:255;not null;index"`
	Subject      string `gorm:"size:500"`
	TemplateType string `gorm:"size:50;not null;index"`
	Status       string `gorm:"size:20;not null;index"`
	ErrorDetail  string `gorm:"size:500"`
	CreatedAt    int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (EmailLogModel) TableName() string {
	return "email_logs"
}
