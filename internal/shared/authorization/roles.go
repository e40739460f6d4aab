package authorization

// UserRole is the coarse role a user holds. Fine-grained access is decided
// by the permission enforcer; roles exist so policies can be grouped and so
// a handful of hard gates (admin-only CRUD) stay cheap.
type UserRole string

const (
	RoleAdmin          UserRole = "admin"
	RoleServiceManager UserRole = "service_manager"
	RoleTechnician     UserRole = "technician"
	RoleCustomer       UserRole = "customer"
)

func (r UserRole) String() string {
	return string(r)
}

func (r UserRole) IsAdmin() bool {
	return r == RoleAdmin
}

func (r UserRole) IsStaff() bool {
	return r == RoleAdmin || r == RoleServiceManager || r == RoleTechnician
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleAdmin, RoleServiceManager, RoleTechnician, RoleCustomer:
		return true
	}
	return false
}

func ParseUserRole(s string) UserRole {
	role := UserRole(s)
	if role.IsValid() {
		return role
	}
	return RoleCustomer
}
