package handlers

import (
	"net/http"

	"foodadmin/internal/access"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/http/middleware"
	"foodadmin/internal/pdf"
	"foodadmin/internal/repositories"
	"foodadmin/internal/services"
	"foodadmin/internal/utils"

	"github.com/gin-gonic/gin"
)

type orderStatusPayload struct {
	Status string `json:"status" binding:"required"`
}

type assignDriverPayload struct {
	DriverName string `json:"driverName" binding:"required"`
}

func (a *API) orderService(c *gin.Context) services.OrderService {
	return services.OrderService{
		Stores:    repositories.StoreRepo{DB: a.DB},
		Zones:     repositories.ZoneRepo{DB: a.DB},
		Items:     repositories.ItemRepo{DB: a.DB},
		Promos:    repositories.PromoRepo{DB: a.DB},
		Payments:  repositories.PaymentOptionRepo{DB: a.DB},
		Orders:    repositories.OrderRepo{DB: a.DB},
		Validator: services.AcceptAllPayments{},
		RequestID: middleware.GetRequestID(c),
	}
}

// GET /api/orders
func (a *API) GetOrders(c *gin.Context) {
	repo := repositories.OrderRepo{DB: a.DB}
	srt, pg := ListParams(c, "created_at")

	list, meta, err := repo.List(repositories.OrderFilter{
		Search:   c.Query("q"),
		StoreID:  QueryInt64Ptr(c, "store_id"),
		Status:   c.Query("status"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}, ScopeFromRequest(c), srt, pg)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, "orders", list, meta)
}

// GET /api/orders/:id
func (a *API) GetOrderByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.OrderRepo{DB: a.DB}

	order, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	cityID := order.CityID
	if err := access.AuthorizeMutation(Principal(c), order.CountryID, &cityID, false); err != nil {
		RespondError(c, http.StatusNotFound, "order not found", nil)
		return
	}
	Respond(c, http.StatusOK, "order", order)
}

// POST /api/orders
func (a *API) CreateOrder(c *gin.Context) {
	var req services.CreateOrderInput
	if !BindJSONOrError(c, &req) {
		return
	}
	order, err := a.orderService(c).Create(Principal(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "order created", order)
}

// PUT /api/orders/:id/status
func (a *API) UpdateOrderStatus(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	var req orderStatusPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	order, err := a.orderService(c).Transition(Principal(c), id, models.OrderStatus(req.Status))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "order status updated", order)
}

// PUT /api/orders/:id/assign-driver
func (a *API) AssignOrderDriver(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.OrderRepo{DB: a.DB}

	order, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	cityID := order.CityID
	if err := access.AuthorizeMutation(Principal(c), order.CountryID, &cityID, false); err != nil {
		RespondDomainError(c, err)
		return
	}
	if order.Status.Terminal() {
		RespondError(c, http.StatusBadRequest, "order is already "+string(order.Status), nil)
		return
	}

	var req assignDriverPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	driver := utils.NormalizeSpace(req.DriverName)
	if driver == "" {
		RespondError(c, http.StatusBadRequest, "driverName must not be empty", nil)
		return
	}

	if err := repo.AssignDriver(id, driver); err != nil {
		RespondDomainError(c, err)
		return
	}
	updated, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "driver assigned", updated)
}

// GET /api/orders/:id/invoice
func (a *API) GetOrderInvoice(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.OrderRepo{DB: a.DB}

	order, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	cityID := order.CityID
	if err := access.AuthorizeMutation(Principal(c), order.CountryID, &cityID, false); err != nil {
		RespondError(c, http.StatusNotFound, "order not found", nil)
		return
	}

	doc, filename, err := pdf.BuildOrderInvoice(order)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/pdf", doc)
}
