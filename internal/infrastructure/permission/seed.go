package permission

import (
	"fmt"

	"skywrench/internal/shared/logger"
)

// SeedDefaultPolicies installs the role policies every deployment starts
// with. AddPolicy is a no-op for rows that already exist, so seeding is
// idempotent across restarts.
func SeedDefaultPolicies(e *Enforcer, log logger.Interface) error {
	policies := [][]string{
		// Customers raise incidents and follow their own.
		{"customer", "incident", "create"},
		{"customer", "incident", "read"},
		{"customer", "knowledge", "read"},

		// Technicians work the pipeline.
		{"technician", "incident", "read"},
		{"technician", "incident", "create"},
		{"technician", "incident", "advance"},
		{"technician", "inventory", "read"},
		{"technician", "inventory", "consume"},
		{"technician", "workorder", "read"},
		{"technician", "maintenance", "read"},
		{"technician", "product", "read"},
		{"technician", "knowledge", "read"},

		// Service managers additionally approve and administer the flow.
		{"service_manager", "incident", "read"},
		{"service_manager", "incident", "create"},
		{"service_manager", "incident", "advance"},
		{"service_manager", "incident", "approve"},
		{"service_manager", "incident", "assign"},
		{"service_manager", "inventory", "read"},
		{"service_manager", "inventory", "write"},
		{"service_manager", "inventory", "consume"},
		{"service_manager", "workorder", "read"},
		{"service_manager", "assignment_rule", "read"},
		{"service_manager", "assignment_rule", "write"},
		{"service_manager", "assignment_group", "read"},
		{"service_manager", "assignment_group", "write"},
		{"service_manager", "maintenance", "read"},
		{"service_manager", "maintenance", "write"},
		{"service_manager", "product", "read"},
		{"service_manager", "product", "write"},
		{"service_manager", "knowledge", "read"},
		{"service_manager", "knowledge", "write"},
		{"service_manager", "mailroom", "read"},
		{"service_manager", "integration", "read"},
	}

	// Admin holds every staff permission plus the system surfaces.
	adminExtras := [][]string{
		{"admin", "mailroom", "write"},
		{"admin", "integration", "execute"},
		{"admin", "user", "read"},
		{"admin", "user", "write"},
	}
	seen := make(map[string]bool)
	for _, p := range policies {
		key := p[1] + "/" + p[2]
		if seen[key] {
			continue
		}
		seen[key] = true
		adminExtras = append(adminExtras, []string{"admin", p[1], p[2]})
	}
	policies = append(policies, adminExtras...)

	enforcer := e.Raw()
	for _, policy := range policies {
		if _, err := enforcer.AddPolicy(policy); err != nil {
			return fmt.Errorf("failed to add policy [%s, %s, %s]: %w",
				policy[0], policy[1], policy[2], err)
		}
	}

	if err := enforcer.SavePolicy(); err != nil {
		return fmt.Errorf("failed to save seeded policies: %w", err)
	}

	log.Infow("default permission policies seeded", "count", len(policies))
	return nil
}
