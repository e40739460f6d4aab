package models

type SyncRunModel struct {
	ID               uint   `gorm:"primaryKey"`
	ConnectorName    string `gorm:"size:50;not null;index"`
	EntityType       string `gorm:"size:50"`
	Success          bool   `gorm:"not null;default:false"`
	RecordsProcessed int    `gorm:"not null;default:0"`
	RecordsSuccess   int    `gorm:"not null;default:0"`
	RecordsError     int    `gorm:"not null;default:0"`
	ErrorDetail      string `gorm:"type:text"`
	StartedAt        int64  `gorm:"not null"`
	FinishedAt       int64  `gorm:"not null;index"`
	CreatedAt        int64  `gorm:"autoCreateTime:milli;not null"`
}

func (SyncRunModel) TableName() string {
	return "integration_sync_runs"
}
