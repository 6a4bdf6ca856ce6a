package models

import "foodadmin/internal/domain"

type Admin struct {
	ID        int64       `json:"id"`
	Name      string      `json:"name"`
	Username  string      `json:"username"`
	Email     string      `json:"email"`
	Phone     string      `json:"phone"`
	Role      domain.Role `json:"role"`
	CountryID *int64      `json:"countryId"`
	CityID    *int64      `json:"cityId"`
	Status    string      `json:"status"`

	CountryName string `json:"countryName,omitempty"`
	CityName    string `json:"cityName,omitempty"`
}

// Principal projects the stored row into the request identity shape.
func (a Admin) Principal() domain.Principal {
	return domain.Principal{
		ID:        a.ID,
		Role:      a.Role,
		CountryID: a.CountryID,
		CityID:    a.CityID,
	}
}
