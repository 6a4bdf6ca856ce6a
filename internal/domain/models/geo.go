package models

type Country struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Currency string `json:"currency"`
	IsActive bool   `json:"isActive"`
}

type City struct {
	ID        int64  `json:"id"`
	CountryID int64  `json:"countryId"`
	Name      string `json:"name"`
	IsActive  bool   `json:"isActive"`

	CountryName string `json:"countryName,omitempty"`
}

// Zone is a delivery area inside a city. DeliveryFee is in minor units.
type Zone struct {
	ID          int64  `json:"id"`
	CountryID   int64  `json:"countryId"`
	CityID      int64  `json:"cityId"`
	Name        string `json:"name"`
	DeliveryFee int64  `json:"deliveryFee"`
	IsActive    bool   `json:"isActive"`

	CityName string `json:"cityName,omitempty"`
}
