package models

// ItemExtra is a paid add-on. Price is in minor units and is the catalog
// price of record: order lines must quote it exactly.
type ItemExtra struct {
	Name  string `json:"name"`
	Price int64  `json:"price"`
}

type Item struct {
	ID          int64       `json:"id"`
	StoreID     int64       `json:"storeId"`
	CategoryID  int64       `json:"categoryId"`
	Name        string      `json:"name"`
	Description string      `json:"description"`
	Price       int64       `json:"price"`
	IsAvailable bool        `json:"isAvailable"`
	Options     []string    `json:"options"`
	Extras      []ItemExtra `json:"extras"`

	StoreName    string `json:"storeName,omitempty"`
	CategoryName string `json:"categoryName,omitempty"`
}

// OffersOption reports whether the option is part of the current catalog.
func (i Item) OffersOption(name string) bool {
	for _, o := range i.Options {
		if o == name {
			return true
		}
	}
	return false
}

// FindExtra returns the catalog extra by name.
func (i Item) FindExtra(name string) (ItemExtra, bool) {
	for _, e := range i.Extras {
		if e.Name == name {
			return e, true
		}
	}
	return ItemExtra{}, false
}
