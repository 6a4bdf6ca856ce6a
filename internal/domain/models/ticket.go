package models

type TicketStatus string

const (
	TicketOpen   TicketStatus = "open"
	TicketClosed TicketStatus = "closed"
)

type Ticket struct {
	ID            int64        `json:"id"`
	Reference     string       `json:"reference"`
	CountryID     int64        `json:"countryId"`
	CityID        int64        `json:"cityId"`
	OrderID       *int64       `json:"orderId"`
	Subject       string       `json:"subject"`
	CustomerName  string       `json:"customerName"`
	CustomerPhone string       `json:"customerPhone"`
	Status        TicketStatus `json:"status"`
	CreatedAt     string       `json:"createdAt"`

	UnreadCount int `json:"unreadCount,omitempty"`
}

type TicketMessage struct {
	ID       int64  `json:"id"`
	TicketID int64  `json:"ticketId"`
	Sender   string `json:"sender"` // customer, admin
	AdminID  *int64 `json:"adminId"`
	Body     string `json:"body"`
	IsRead   bool   `json:"isRead"`
	SentAt   string `json:"sentAt"`
}
