package models

// PaymentOption. CityID nil means country-wide.
type PaymentOption struct {
	ID        int64  `json:"id"`
	CountryID int64  `json:"countryId"`
	CityID    *int64 `json:"cityId"`
	Name      string `json:"name"`
	Kind      string `json:"kind"` // cash, card, wallet
	Position  int    `json:"position"`
	IsActive  bool   `json:"isActive"`
}

// Banner. CityID nil means country-wide; StoreID links a promoted store.
type Banner struct {
	ID        int64  `json:"id"`
	CountryID int64  `json:"countryId"`
	CityID    *int64 `json:"cityId"`
	StoreID   *int64 `json:"storeId"`
	Title     string `json:"title"`
	ImageURL  string `json:"imageUrl"`
	Position  int    `json:"position"`
	IsActive  bool   `json:"isActive"`
}
