package models

type OrderStatus string

const (
	OrderPending       OrderStatus = "pending"
	OrderPreparing     OrderStatus = "preparing"
	OrderDonePreparing OrderStatus = "done_preparing"
	OrderOnWay         OrderStatus = "on_way"
	OrderDelivered     OrderStatus = "delivered"
	OrderCancelled     OrderStatus = "cancelled"
)

// orderFlow is the only allowed forward-transition graph. delivered and
// cancelled are terminal.
var orderFlow = map[OrderStatus][]OrderStatus{
	OrderPending:       {OrderPreparing, OrderCancelled},
	OrderPreparing:     {OrderDonePreparing, OrderCancelled},
	OrderDonePreparing: {OrderOnWay, OrderCancelled},
	OrderOnWay:         {OrderDelivered, OrderCancelled},
}

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPreparing, OrderDonePreparing, OrderOnWay, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Terminal reports whether no further transition exists from s.
func (s OrderStatus) Terminal() bool {
	return len(orderFlow[s]) == 0
}

func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	for _, allowed := range orderFlow[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

type Order struct {
	ID              int64       `json:"id"`
	Code            string      `json:"code"`
	CountryID       int64       `json:"countryId"`
	CityID          int64       `json:"cityId"`
	StoreID         int64       `json:"storeId"`
	CustomerName    string      `json:"customerName"`
	CustomerPhone   string      `json:"customerPhone"`
	DeliveryAddress string      `json:"deliveryAddress"`
	PaymentOptionID int64       `json:"paymentOptionId"`
	PromoCodeID     *int64      `json:"promoCodeId"`
	DriverName      string      `json:"driverName"`
	Subtotal        int64       `json:"subtotal"`
	Discount        int64       `json:"discount"`
	DeliveryFee     int64       `json:"deliveryFee"`
	Total           int64       `json:"total"`
	Status          OrderStatus `json:"status"`
	CreatedAt       string      `json:"createdAt"`

	StoreName   string      `json:"storeName,omitempty"`
	PaymentName string      `json:"paymentName,omitempty"`
	Items       []OrderItem `json:"items,omitempty"`
}

// OrderItem snapshots the catalog at order time so later menu edits do not
// rewrite history.
type OrderItem struct {
	ID        int64       `json:"id"`
	OrderID   int64       `json:"orderId"`
	ItemID    int64       `json:"itemId"`
	Name      string      `json:"name"`
	UnitPrice int64       `json:"unitPrice"`
	Quantity  int         `json:"quantity"`
	Options   []string    `json:"options"`
	Extras    []ItemExtra `json:"extras"`
	LineTotal int64       `json:"lineTotal"`
}
