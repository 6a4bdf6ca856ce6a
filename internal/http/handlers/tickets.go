package handlers

import (
	"net/http"
	"strings"

	"foodadmin/internal/access"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/repositories"
	"foodadmin/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type ticketPayload struct {
	CityID        int64  `json:"cityId" binding:"required"`
	OrderID       *int64 `json:"orderId"`
	Subject       string `json:"subject" binding:"required"`
	CustomerName  string `json:"customerName" binding:"required"`
	CustomerPhone string `json:"customerPhone" binding:"required"`
}

type ticketMessagePayload struct {
	Body string `json:"body" binding:"required"`
}

func (a *API) ticketForWrite(c *gin.Context, id int64) (models.Ticket, bool) {
	ticket, err := repositories.TicketRepo{DB: a.DB}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return models.Ticket{}, false
	}
	cityID := ticket.CityID
	if err := access.AuthorizeMutation(Principal(c), ticket.CountryID, &cityID, false); err != nil {
		RespondDomainError(c, err)
		return models.Ticket{}, false
	}
	return ticket, true
}

// GET /api/tickets
func (a *API) GetTickets(c *gin.Context) {
	repo := repositories.TicketRepo{DB: a.DB}
	srt, pg := ListParams(c, "created_at")

	list, meta, err := repo.List(repositories.TicketFilter{
		Search: c.Query("q"),
		Status: c.Query("status"),
	}, ScopeFromRequest(c), srt, pg)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, "tickets", list, meta)
}

// GET /api/tickets/:id returns the ticket together with its full thread.
func (a *API) GetTicketByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.TicketRepo{DB: a.DB}

	ticket, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	cityID := ticket.CityID
	if err := access.AuthorizeMutation(Principal(c), ticket.CountryID, &cityID, false); err != nil {
		RespondError(c, http.StatusNotFound, "ticket not found", nil)
		return
	}

	messages, err := repo.Messages(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "ticket", gin.H{
		"ticket":   ticket,
		"messages": messages,
	})
}

// POST /api/tickets
func (a *API) CreateTicket(c *gin.Context) {
	var req ticketPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	city, err := repositories.CityRepo{DB: a.DB}.GetByID(req.CityID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := access.AuthorizeMutation(Principal(c), city.CountryID, &city.ID, false); err != nil {
		RespondDomainError(c, err)
		return
	}
	if req.OrderID != nil {
		order, err := repositories.OrderRepo{DB: a.DB}.GetByID(*req.OrderID)
		if err != nil {
			RespondDomainError(c, err)
			return
		}
		if order.CityID != city.ID {
			RespondError(c, http.StatusBadRequest, "order does not belong to this city", nil)
			return
		}
	}

	repo := repositories.TicketRepo{DB: a.DB}
	id, err := repo.Create(models.Ticket{
		Reference:     "TCK-" + strings.ToUpper(uuid.NewString()[:8]),
		CountryID:     city.CountryID,
		CityID:        city.ID,
		OrderID:       req.OrderID,
		Subject:       utils.NormalizeSpace(req.Subject),
		CustomerName:  utils.TrimOrEmpty(req.CustomerName),
		CustomerPhone: utils.TrimOrEmpty(req.CustomerPhone),
		Status:        models.TicketOpen,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	ticket, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "ticket created", ticket)
}

// POST /api/tickets/:id/messages
func (a *API) AddTicketMessage(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	ticket, ok := a.ticketForWrite(c, id)
	if !ok {
		return
	}
	if ticket.Status == models.TicketClosed {
		RespondError(c, http.StatusConflict, "ticket is closed", nil)
		return
	}

	var req ticketMessagePayload
	if !BindJSONOrError(c, &req) {
		return
	}
	body := utils.TrimOrEmpty(req.Body)
	if body == "" {
		RespondError(c, http.StatusBadRequest, "body must not be empty", nil)
		return
	}

	repo := repositories.TicketRepo{DB: a.DB}
	adminID := Principal(c).ID
	if _, err := repo.AddMessage(models.TicketMessage{
		TicketID: id,
		Sender:   "admin",
		AdminID:  &adminID,
		Body:     body,
		IsRead:   true,
	}); err != nil {
		RespondDomainError(c, err)
		return
	}

	messages, err := repo.Messages(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "message sent", messages)
}

// PUT /api/tickets/:id/messages/read
func (a *API) MarkTicketRead(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if _, ok := a.ticketForWrite(c, id); !ok {
		return
	}

	repo := repositories.TicketRepo{DB: a.DB}
	if err := repo.MarkMessagesRead(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	ticket, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "messages marked read", ticket)
}

// PUT /api/tickets/:id/close
func (a *API) CloseTicket(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	ticket, ok := a.ticketForWrite(c, id)
	if !ok {
		return
	}
	if ticket.Status == models.TicketClosed {
		RespondError(c, http.StatusConflict, "ticket is already closed", nil)
		return
	}

	repo := repositories.TicketRepo{DB: a.DB}
	if err := repo.SetStatus(id, models.TicketClosed); err != nil {
		RespondDomainError(c, err)
		return
	}
	updated, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "ticket closed", updated)
}
