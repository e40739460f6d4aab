package models

type IncidentModel struct {
	ID             uint   `gorm:"primaryKey"`
	Number         string `gorm:"uniqueIndex;size:50;not null"`
	Title          string `gorm:"size:200;not null"`
	Description    string `gorm:"type:text;not null"`
	Category       string `gorm:"size:50;not null;index"`
	Priority       string `gorm:"size:20;not null;index"`
	SLACategory    string `gorm:"size:20;not null"`
	Status         string `gorm:"size:30;not null;index"`
	Department     string `gorm:"size:100"`
	UAVModel       string `gorm:"size:100"`
	UAVSerial      string `gorm:"size:100;index"`
	UnderWarranty  bool   `gorm:"not null;default:false"`
	CustomerID     uint   `gorm:"not null;index"`
	TechnicianID   *uint  `gorm:"index"`
	GroupID        *uint  `gorm:"index"`
	WorkOrderType  string `gorm:"size:20"`
	DiagnosisNotes string `gorm:"type:text"`
	RepairNotes    string `gorm:"type:text"`
	QualityNotes   string `gorm:"type:text"`
	LaborHours     string `gorm:"size:32;not null;default:'0'"`
	EstimatedCost  string `gorm:"size:32;not null;default:'0'"`
	ActualCost     string `gorm:"size:32;not null;default:'0'"`
	ApprovedBy     *uint
	RejectedReason string `gorm:"size:500"`

	RaisedAt              int64 `gorm:"not null;index"`
	TechnicianAssignedAt  *int64
	DiagnosisCompletedAt  *int64
	WorkOrderApprovedAt   *int64
	RepairStartedAt       *int64
	RepairCompletedAt     *int64
	QualityCheckAt        *int64
	HandedOverAt          *int64
	PreventiveScheduledAt *int64
	ClosedAt              *int64

	Version   int   `gorm:"not null;default:1"`
	CreatedAt int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt int64 `gorm:"autoUpdateTime:milli;not null"`

	// Note: No foreign key constraints or associations.
	// All relationships are managed by application business logic.
}

func (IncidentModel) TableName() string {
	return "incidents"
}

type IncidentActivityModel struct {
	ID              uint   `gorm:"primaryKey"`
	IncidentID      uint   `gorm:"not null;index"`
	ActorID         *uint  `gorm:"index"`
	Action          string `gorm:"size:50;not null"`
	Detail          string `gorm:"type:text"`
	CustomerVisible bool   `gorm:"not null;default:false"`
	CreatedAt       int64  `gorm:"autoCreateTime:milli;not null;index"`
}

func (IncidentActivityModel) TableName() string {
	return "incident_activities"
}
