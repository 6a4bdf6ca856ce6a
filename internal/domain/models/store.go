package models

type Store struct {
	ID          int64  `json:"id"`
	CountryID   int64  `json:"countryId"`
	CityID      int64  `json:"cityId"`
	ZoneID      *int64 `json:"zoneId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Address     string `json:"address"`
	IsBusy      bool   `json:"isBusy"`
	IsActive    bool   `json:"isActive"`

	CityName string `json:"cityName,omitempty"`
	ZoneName string `json:"zoneName,omitempty"`
}

// Category groups items inside one store. Position drives menu ordering and
// is shifted server-side by a stored procedure on reposition.
type Category struct {
	ID       int64  `json:"id"`
	StoreID  int64  `json:"storeId"`
	Name     string `json:"name"`
	Position int    `json:"position"`

	StoreName string `json:"storeName,omitempty"`
	ItemCount int    `json:"itemCount,omitempty"`
}
