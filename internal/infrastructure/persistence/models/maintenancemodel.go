package models

type MaintenanceScheduleModel struct {
	ID                  uint    `gorm:"primaryKey"`
	UAVModel            string  `gorm:"size:100;not null"`
	UAVSerial           string  `gorm:"size:100;not null;index"`
	CustomerID          uint    `gorm:"not null;index"`
	IntervalType        string  `gorm:"size:20;not null"`
	FlightHoursInterval float64 `gorm:"not null;default:0"`
	DayInterval         int     `gorm:"not null;default:0"`
	CurrentFlightHours  float64 `gorm:"not null;default:0"`
	LastFlightHours     float64 `gorm:"not null;default:0"`
	Description         string  `gorm:"size:500"`
	Active              bool    `gorm:"not null;default:true;index"`
	LastPerformedAt     *int64
	NextDueAt           *int64 `gorm:"index"`
	NotificationSent    bool   `gorm:"not null;default:false"`
	IncidentID          *uint  `gorm:"index"`
	CreatedAt           int64  `gorm:"autoCreateTime:milli;not null"`
	UpdatedAt           int64  `gorm:"autoUpdateTime:milli;not null"`
}

func (MaintenanceScheduleModel) TableName() string {
	return "maintenance_schedules"
}
