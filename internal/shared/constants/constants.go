package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// Default pagination
	DefaultPage     = 1
	DefaultPageSize = 20
	MaxPageSize     = 100

	// Context keys
	ContextKeyUserID   = "user_id"
	ContextKeyUserRole = "user_role"

	// Incident number prefix, e.g. UAV-2026-0042
	IncidentNumberPrefix = "UAV"

	// Work order number prefix, e.g. WO-2026-0042
	WorkOrderNumberPrefix = "WO"
)
