package models

type InboundRuleModel struct {
	ID                 uint   `gorm:"primaryKey"`
	Name               string `gorm:"size:100;not null"`
	Priority           int    `gorm:"not null;default:100;index"`
	Active             bool   `gorm:"not null;default:true;index"`
	FromPattern        string `gorm:"size:255"`
	ToPattern          string `gorm:"size:255"`
	SubjectPattern     string `gorm:"size:255"`
	BodyKeywords       string `gorm:"size:500"`
	RequireAttachment  bool   `gorm:"not null;default:false"`
	DefaultPriority    string `gorm:"size:20"`
	DefaultCategory    string `gorm:"size:50"`
	DefaultSLACategory string `gorm:"size:20"`
	AutoAssignUserID   *uint  `gorm:"index"`
	EmailsProcessed    int    `gorm:"not null;default:0"`
	IncidentsCreated   int    `gorm:"not null;default:0"`
	LastProcessedAt    *int64
	CreatedAt          int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt          int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (InboundRuleModel) TableName() string {
	return "mailroom_inbound_rules"
}

type ProcessedEmailModel struct {
	ID              uint   `gorm:"primaryKey"`
	MessageID       string `gorm:"uniqueIndex;size:255;not null"`
	FromAddress     string `gorm:"size:255"`
	ToAddress       string `gorm:"size:255"`
	Subject         string `gorm:"size:500"`
	BodyPreview     string `gorm:"size:500"`
	AttachmentCount int    `gorm:"not null;default:0"`
	RuleID          *uint  `gorm:"index"`
	Outcome         string `gorm:"size:30;not null;index"`
	ErrorDetail     string `gorm:"size:500"`
	IncidentID      *uint  `gorm:"index"`
	CreatedAt       int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (ProcessedEmailModel) TableName() string {
	return "mailroom_processed_emails"
}
