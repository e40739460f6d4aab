package models

type WorkOrderModel struct {
	ID            uint   `gorm:"primaryKey"`
	Number        string `gorm:"uniqueIndex;size:50;not null"`
	IncidentID    uint   `gorm:"not null;index"`
	Type          string `gorm:"size:20;not null"`
	Status        string `gorm:"size:20;not null;index"`
	Description   string `gorm:"type:text"`
	AssigneeID    *uint  `gorm:"index"`
	EstimatedCost string `gorm:"size:32;not null;default:'0'"`
	ActualCost    string `gorm:"size:32;not null;default:'0'"`
	StartedAt     *int64
	CompletedAt   *int64
	CreatedAt     int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt     int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (WorkOrderModel) TableName() string {
	return "work_orders"
}

type WorkOrderApprovalModel struct {
	ID          uint   `gorm:"primaryKey"`
	WorkOrderID uint   `gorm:"not null;index"`
	ApproverID  uint   `gorm:"not null;index"`
	Decision    string `gorm:"size:20;not null"`
	Comment     string `gorm:"size:500"`
	CreatedAt   int64  `gorm:"autoCreateTime:milli;not null"`
}

func (WorkOrderApprovalModel) TableName() string {
	return "work_order_approvals"
}
