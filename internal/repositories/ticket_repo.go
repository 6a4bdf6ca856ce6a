package repositories

import (
	"database/sql"

	"foodadmin/internal/access"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/query"
)

type TicketRepo struct {
	DB *sql.DB
}

type TicketFilter struct {
	Search string
	Status string
}

var ticketSortable = map[string]string{
	"id":         "tickets.id",
	"status":     "tickets.status",
	"created_at": "tickets.created_at",
}

const ticketColumns = `tickets.id, tickets.reference, tickets.country_id, tickets.city_id,
	tickets.order_id, tickets.subject, tickets.customer_name, tickets.customer_phone,
	tickets.status, DATE_FORMAT(tickets.created_at, '%Y-%m-%d %H:%i:%s'),
	(SELECT COUNT(*) FROM ticket_messages m WHERE m.ticket_id = tickets.id AND m.sender = 'customer' AND m.is_read = FALSE)`

func scanTicket(sc interface{ Scan(...any) error }) (models.Ticket, error) {
	var (
		t       models.Ticket
		orderID sql.NullInt64
	)
	err := sc.Scan(&t.ID, &t.Reference, &t.CountryID, &t.CityID, &orderID,
		&t.Subject, &t.CustomerName, &t.CustomerPhone, &t.Status, &t.CreatedAt, &t.UnreadCount)
	if err != nil {
		return models.Ticket{}, err
	}
	t.OrderID = int64Ptr(orderID)
	return t, nil
}

func (r TicketRepo) List(f TicketFilter, sc access.Scope, srt query.Sort, pg query.Page) ([]models.Ticket, query.PageMeta, error) {
	spec := query.New("tickets", ticketColumns).
		Search(f.Search, "tickets.reference", "tickets.subject", "tickets.customer_name").
		EqualStr("tickets.status", f.Status).
		Scope(sc, "tickets.country_id", "tickets.city_id", false)

	total, err := spec.Count(r.DB)
	if err != nil {
		return nil, query.PageMeta{}, err
	}

	rows, err := spec.Select(r.DB, ticketSortable, srt, pg)
	if err != nil {
		return nil, query.PageMeta{}, err
	}
	defer rows.Close()

	list := []models.Ticket{}
	for rows.Next() {
		t, err := scanTicket(rows)
		if err != nil {
			return nil, query.PageMeta{}, mapReadError("ticket", err)
		}
		list = append(list, t)
	}
	if err := rows.Err(); err != nil {
		return nil, query.PageMeta{}, mapReadError("ticket", err)
	}
	return list, query.NewPageMeta(total, pg), nil
}

func (r TicketRepo) GetByID(id int64) (models.Ticket, error) {
	row := r.DB.QueryRow(`SELECT `+ticketColumns+` FROM tickets WHERE tickets.id = ? LIMIT 1`, id)
	t, err := scanTicket(row)
	if err != nil {
		return models.Ticket{}, mapReadError("ticket", err)
	}
	return t, nil
}

func (r TicketRepo) Messages(ticketID int64) ([]models.TicketMessage, error) {
	rows, err := r.DB.Query(`
		SELECT id, ticket_id, sender, admin_id, body, is_read,
			DATE_FORMAT(sent_at, '%Y-%m-%d %H:%i:%s')
		FROM ticket_messages WHERE ticket_id = ? ORDER BY id ASC`, ticketID)
	if err != nil {
		return nil, mapReadError("ticket messages", err)
	}
	defer rows.Close()

	list := []models.TicketMessage{}
	for rows.Next() {
		var (
			m       models.TicketMessage
			adminID sql.NullInt64
		)
		if err := rows.Scan(&m.ID, &m.TicketID, &m.Sender, &adminID, &m.Body, &m.IsRead, &m.SentAt); err != nil {
			return nil, mapReadError("ticket messages", err)
		}
		m.AdminID = int64Ptr(adminID)
		list = append(list, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapReadError("ticket messages", err)
	}
	return list, nil
}

func (r TicketRepo) Create(t models.Ticket) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO tickets (reference, country_id, city_id, order_id, subject, customer_name, customer_phone, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		t.Reference, t.CountryID, t.CityID, NullInt64(t.OrderID),
		t.Subject, t.CustomerName, t.CustomerPhone, t.Status)
	if err != nil {
		return 0, mapWriteError("ticket", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r TicketRepo) AddMessage(m models.TicketMessage) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO ticket_messages (ticket_id, sender, admin_id, body, is_read, sent_at)
		VALUES (?, ?, ?, ?, ?, NOW())`,
		m.TicketID, m.Sender, NullInt64(m.AdminID), m.Body, m.IsRead)
	if err != nil {
		return 0, mapWriteError("ticket message", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// MarkMessagesRead flags every unread customer message on the ticket.
func (r TicketRepo) MarkMessagesRead(ticketID int64) error {
	_, err := r.DB.Exec(`
		UPDATE ticket_messages SET is_read = TRUE
		WHERE ticket_id = ? AND sender = 'customer' AND is_read = FALSE`, ticketID)
	return mapWriteError("ticket message", err)
}

func (r TicketRepo) SetStatus(id int64, status models.TicketStatus) error {
	_, err := r.DB.Exec(`UPDATE tickets SET status = ?, updated_at = NOW() WHERE id = ?`, status, id)
	return mapWriteError("ticket", err)
}
