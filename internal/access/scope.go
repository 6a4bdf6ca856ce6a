package access

import (
	"foodadmin/internal/domain"
)

// Scope is the read/write location boundary derived from a Principal. A nil
// CountryID means no country predicate is applied (super admin without
// explicit filters); CityID is only ever set together with CountryID.
type Scope struct {
	CountryID *int64
	CityID    *int64
}

func (s Scope) Unrestricted() bool { return s.CountryID == nil && s.CityID == nil }

// Resolve computes the scope for read queries. Super admins pass
// caller-supplied country/city filters through verbatim; everyone else is
// pinned to their own assignment and the filters are ignored.
func Resolve(p domain.Principal, countryFilter, cityFilter *int64) Scope {
	if p.Role.IsSuper() {
		return Scope{CountryID: countryFilter, CityID: cityFilter}
	}
	return Scope{CountryID: p.CountryID, CityID: p.CityID}
}

// AuthorizeMutation decides whether the Principal may write a row located at
// (targetCountry, targetCity). countryWide marks entity types whose rows may
// carry a null city and be edited by any admin of the matching country.
func AuthorizeMutation(p domain.Principal, targetCountry int64, targetCity *int64, countryWide bool) error {
	if p.Role.IsSuper() {
		return nil
	}
	if p.CountryID == nil || *p.CountryID != targetCountry {
		return domain.ForbiddenError{Msg: "target belongs to another country"}
	}
	if p.CityID == nil {
		return nil
	}
	if targetCity == nil {
		if countryWide {
			return nil
		}
		return domain.ForbiddenError{Msg: "target is outside your city"}
	}
	if *targetCity != *p.CityID {
		return domain.ForbiddenError{Msg: "target belongs to another city"}
	}
	return nil
}

// AuthorizeCountryAdmin gates country records, which only super admins may
// create, update, or delete.
func AuthorizeCountryAdmin(p domain.Principal) error {
	if !p.Role.IsSuper() {
		return domain.ForbiddenError{Msg: "only super admins may manage countries"}
	}
	return nil
}

// AuthorizeAdminChange guards admin-account writes: only a super admin may
// grant the super-admin role or modify an existing super-admin account.
func AuthorizeAdminChange(p domain.Principal, targetRole, newRole domain.Role) error {
	if p.Role.IsSuper() {
		return nil
	}
	if targetRole == domain.RoleSuperAdmin {
		return domain.ForbiddenError{Msg: "only super admins may modify a super admin account"}
	}
	if newRole == domain.RoleSuperAdmin {
		return domain.ForbiddenError{Msg: "only super admins may grant the super admin role"}
	}
	return nil
}

// AuthorizeAdminDelete adds the self-protection rule: nobody deletes their
// own account, regardless of role.
func AuthorizeAdminDelete(p domain.Principal, targetID int64, targetRole domain.Role) error {
	if targetID == p.ID {
		return domain.ForbiddenError{Msg: "you cannot delete your own account"}
	}
	return AuthorizeAdminChange(p, targetRole, targetRole)
}

// ValidateAssignment enforces the role/location invariant on stored admins:
// super admins carry no location, every other role needs a country.
func ValidateAssignment(role domain.Role, countryID, cityID *int64) error {
	if role == domain.RoleSuperAdmin {
		if countryID != nil || cityID != nil {
			return domain.ValidationError{Field: "role", Msg: "super admins must not have a country or city"}
		}
		return nil
	}
	if countryID == nil {
		return domain.ValidationError{Field: "countryId", Msg: "required for non super admin roles"}
	}
	return nil
}
