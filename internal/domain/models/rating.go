package models

type RatingStatus string

const (
	RatingPending  RatingStatus = "pending"
	RatingApproved RatingStatus = "approved"
	RatingRejected RatingStatus = "rejected"
)

func (s RatingStatus) Valid() bool {
	return s == RatingPending || s == RatingApproved || s == RatingRejected
}

// Rating. CityID nil means country-wide visibility for moderation.
type Rating struct {
	ID        int64        `json:"id"`
	CountryID int64        `json:"countryId"`
	CityID    *int64       `json:"cityId"`
	StoreID   int64        `json:"storeId"`
	OrderID   *int64       `json:"orderId"`
	Score     int          `json:"score"` // 1..5
	Comment   string       `json:"comment"`
	Status    RatingStatus `json:"status"`
	CreatedAt string       `json:"createdAt"`

	StoreName string `json:"storeName,omitempty"`
}
