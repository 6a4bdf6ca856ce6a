package access

import (
	"testing"

	"foodadmin/internal/domain"
)

func ptr(v int64) *int64 { return &v }

func TestResolveSuperAdminPassesFiltersThrough(t *testing.T) {
	p := domain.Principal{ID: 1, Role: domain.RoleSuperAdmin}

	sc := Resolve(p, ptr(3), ptr(7))
	if sc.CountryID == nil || *sc.CountryID != 3 {
		t.Fatalf("country filter not passed through, got %v", sc.CountryID)
	}
	if sc.CityID == nil || *sc.CityID != 7 {
		t.Fatalf("city filter not passed through, got %v", sc.CityID)
	}

	sc = Resolve(p, nil, nil)
	if !sc.Unrestricted() {
		t.Fatalf("super admin without filters should be unrestricted")
	}
}

func TestResolvePinsRestrictedAdminToAssignment(t *testing.T) {
	p := domain.Principal{ID: 2, Role: domain.RoleAdmin, CountryID: ptr(1), CityID: ptr(5)}

	// the caller-supplied filters must be ignored
	sc := Resolve(p, ptr(9), ptr(9))
	if sc.CountryID == nil || *sc.CountryID != 1 {
		t.Fatalf("scope not pinned to own country, got %v", sc.CountryID)
	}
	if sc.CityID == nil || *sc.CityID != 5 {
		t.Fatalf("scope not pinned to own city, got %v", sc.CityID)
	}
}

func TestAuthorizeMutation(t *testing.T) {
	cases := []struct {
		name        string
		p           domain.Principal
		country     int64
		city        *int64
		countryWide bool
		wantErr     bool
	}{
		{
			name:    "super admin writes anywhere",
			p:       domain.Principal{Role: domain.RoleSuperAdmin},
			country: 4, city: ptr(9),
		},
		{
			name:    "country admin inside own country",
			p:       domain.Principal{Role: domain.RoleAdmin, CountryID: ptr(1)},
			country: 1, city: ptr(5),
		},
		{
			name:    "country admin outside own country",
			p:       domain.Principal{Role: domain.RoleAdmin, CountryID: ptr(1)},
			country: 2, city: ptr(5),
			wantErr: true,
		},
		{
			name:    "city admin inside own city",
			p:       domain.Principal{Role: domain.RoleAdmin, CountryID: ptr(1), CityID: ptr(5)},
			country: 1, city: ptr(5),
		},
		{
			name:    "city admin other city",
			p:       domain.Principal{Role: domain.RoleAdmin, CountryID: ptr(1), CityID: ptr(5)},
			country: 1, city: ptr(6),
			wantErr: true,
		},
		{
			name:    "city admin on null-city row of a country-wide type",
			p:       domain.Principal{Role: domain.RoleAdmin, CountryID: ptr(1), CityID: ptr(5)},
			country: 1, city: nil, countryWide: true,
		},
		{
			name:    "city admin on null-city row of a city-bound type",
			p:       domain.Principal{Role: domain.RoleAdmin, CountryID: ptr(1), CityID: ptr(5)},
			country: 1, city: nil,
			wantErr: true,
		},
		{
			name:    "admin without assignment",
			p:       domain.Principal{Role: domain.RoleAdmin},
			country: 1, city: ptr(5),
			wantErr: true,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := AuthorizeMutation(tc.p, tc.country, tc.city, tc.countryWide)
			if tc.wantErr && err == nil {
				t.Fatalf("expected forbidden, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("expected allowed, got %v", err)
			}
			if tc.wantErr && !domain.IsForbidden(err) {
				t.Fatalf("expected ForbiddenError, got %T", err)
			}
		})
	}
}

func TestAuthorizeCountryAdmin(t *testing.T) {
	if err := AuthorizeCountryAdmin(domain.Principal{Role: domain.RoleSuperAdmin}); err != nil {
		t.Fatalf("super admin should manage countries, got %v", err)
	}
	if err := AuthorizeCountryAdmin(domain.Principal{Role: domain.RoleAdmin, CountryID: ptr(1)}); !domain.IsForbidden(err) {
		t.Fatalf("country admin should be forbidden, got %v", err)
	}
}

func TestAuthorizeAdminChangeElevation(t *testing.T) {
	admin := domain.Principal{Role: domain.RoleAdmin, CountryID: ptr(1)}

	if err := AuthorizeAdminChange(admin, domain.RoleOperator, domain.RoleSuperAdmin); !domain.IsForbidden(err) {
		t.Fatalf("granting super admin should be forbidden, got %v", err)
	}
	if err := AuthorizeAdminChange(admin, domain.RoleSuperAdmin, domain.RoleAdmin); !domain.IsForbidden(err) {
		t.Fatalf("modifying a super admin should be forbidden, got %v", err)
	}
	if err := AuthorizeAdminChange(admin, domain.RoleOperator, domain.RoleSupport); err != nil {
		t.Fatalf("plain role change should be allowed, got %v", err)
	}
	super := domain.Principal{Role: domain.RoleSuperAdmin}
	if err := AuthorizeAdminChange(super, domain.RoleOperator, domain.RoleSuperAdmin); err != nil {
		t.Fatalf("super admin may grant super admin, got %v", err)
	}
}

func TestAuthorizeAdminDeleteSelfProtection(t *testing.T) {
	p := domain.Principal{ID: 10, Role: domain.RoleSuperAdmin}
	if err := AuthorizeAdminDelete(p, 10, domain.RoleSuperAdmin); !domain.IsForbidden(err) {
		t.Fatalf("deleting own account should be forbidden, got %v", err)
	}
	if err := AuthorizeAdminDelete(p, 11, domain.RoleAdmin); err != nil {
		t.Fatalf("deleting another account should be allowed, got %v", err)
	}
}

func TestValidateAssignment(t *testing.T) {
	if err := ValidateAssignment(domain.RoleSuperAdmin, ptr(1), nil); !domain.IsValidation(err) {
		t.Fatalf("super admin with a country should be invalid, got %v", err)
	}
	if err := ValidateAssignment(domain.RoleSuperAdmin, nil, nil); err != nil {
		t.Fatalf("unassigned super admin should be valid, got %v", err)
	}
	if err := ValidateAssignment(domain.RoleOperator, nil, nil); !domain.IsValidation(err) {
		t.Fatalf("operator without a country should be invalid, got %v", err)
	}
	if err := ValidateAssignment(domain.RoleOperator, ptr(1), ptr(2)); err != nil {
		t.Fatalf("assigned operator should be valid, got %v", err)
	}
}
