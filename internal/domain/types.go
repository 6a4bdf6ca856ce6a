package domain

// Role is the admin role carried in token claims.
type Role string

const (
	RoleSuperAdmin Role = "super_admin"
	RoleAdmin      Role = "admin"
	RoleFinance    Role = "finance"
	RoleSupport    Role = "support"
	RoleOperator   Role = "operator"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleAdmin, RoleFinance, RoleSupport, RoleOperator:
		return true
	}
	return false
}

func (r Role) IsSuper() bool { return r == RoleSuperAdmin }

// Principal is the authenticated admin identity attached to a request.
// It is built once from verified token claims and never mutated.
// Invariant: CountryID and CityID are nil only for super admins.
type Principal struct {
	ID        int64
	Role      Role
	CountryID *int64
	CityID    *int64
}
