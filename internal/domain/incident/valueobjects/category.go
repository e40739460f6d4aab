package valueobjects

import "fmt"

// ServiceCategory classifies the kind of UAV work requested.
type ServiceCategory string

const (
	CategoryBattery            ServiceCategory = "BATTERY"
	CategoryCamera             ServiceCategory = "CAMERA"
	CategoryCrashRepair        ServiceCategory = "CRASH_REPAIR"
	CategoryRoutineMaintenance ServiceCategory = "ROUTINE_MAINTENANCE"
	CategoryOther              ServiceCategory = "OTHER"
)

var validServiceCategories = map[ServiceCategory]bool{
	CategoryBattery:            true,
	CategoryCamera:             true,
	CategoryCrashRepair:        true,
	CategoryRoutineMaintenance: true,
	CategoryOther:              true,
}

func (c ServiceCategory) String() string {
	return string(c)
}

func (c ServiceCategory) IsValid() bool {
	return validServiceCategories[c]
}

func NewServiceCategory(s string) (ServiceCategory, error) {
	c := ServiceCategory(s)
	if !c.IsValid() {
		return "", fmt.Errorf("invalid service category: %s", s)
	}
	return c, nil
}
