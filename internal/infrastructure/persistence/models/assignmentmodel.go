package models

import "gorm.io/datatypes"

type AssignmentRuleModel struct {
	ID                  uint   `gorm:"primaryKey"`
	Name                string `gorm:"size:100;not null"`
	Description         string `gorm:"size:500"`
	Priority            int    `gorm:"not null;default:100;index"`
	Active              bool   `gorm:"not null;default:true;index"`
	ConditionCategory   string `gorm:"size:50"`
	ConditionPriority   string `gorm:"size:20"`
	ConditionDepartment string `gorm:"size:100"`
	Action              string `gorm:"size:30;not null"`
	TargetUserID        *uint  `gorm:"index"`
	GroupID             *uint  `gorm:"index"`
	TimesTriggered      int    `gorm:"not null;default:0"`
	LastTriggeredAt     *int64
	CreatedAt           int64 `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt           int64 `gorm:"autoUpdateTime:milli;not null"`
}

func (AssignmentRuleModel) TableName() string {
	return "assignment_rules"
}

type AssignmentGroupModel struct {
	ID               uint   `gorm:"primaryKey"`
	Code             string `gorm:"uniqueIndex;size:50;not null"`
	Name             string `gorm:"size:100;not null"`
	Description      string `gorm:"size:500"`
	Active           bool   `gorm:"not null;default:true"`
	MemberIDs        datatypes.JSON
	RoundRobinCursor int    `gorm:"not null;default:0"`
	CreatedAt        int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt        int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (AssignmentGroupModel) TableName() string {
	return "assignment_groups"
}
