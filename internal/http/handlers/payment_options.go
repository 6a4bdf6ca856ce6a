package handlers

import (
	"net/http"

	"foodadmin/internal/access"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/repositories"
	"foodadmin/internal/utils"

	"github.com/gin-gonic/gin"
)

type paymentOptionPayload struct {
	CountryID int64  `json:"countryId" binding:"required"`
	CityID    *int64 `json:"cityId"`
	Name      string `json:"name" binding:"required"`
	Kind      string `json:"kind" binding:"required"`
	IsActive  *bool  `json:"isActive"`
}

var paymentKinds = map[string]bool{
	"cash":   true,
	"card":   true,
	"wallet": true,
}

// GET /api/payment-options
func (a *API) GetPaymentOptions(c *gin.Context) {
	repo := repositories.PaymentOptionRepo{DB: a.DB}
	srt, pg := ListParams(c, "position")

	list, meta, err := repo.List(repositories.PaymentOptionFilter{
		Search:   c.Query("q"),
		Kind:     c.Query("kind"),
		IsActive: QueryBoolPtr(c, "is_active"),
	}, ScopeFromRequest(c), srt, pg)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, "payment options", list, meta)
}

// GET /api/payment-options/:id
func (a *API) GetPaymentOptionByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.PaymentOptionRepo{DB: a.DB}

	option, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := access.AuthorizeMutation(Principal(c), option.CountryID, option.CityID, true); err != nil {
		RespondError(c, http.StatusNotFound, "payment option not found", nil)
		return
	}
	Respond(c, http.StatusOK, "payment option", option)
}

// POST /api/payment-options
func (a *API) CreatePaymentOption(c *gin.Context) {
	var req paymentOptionPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if !paymentKinds[req.Kind] {
		RespondError(c, http.StatusBadRequest, "kind must be cash, card or wallet", nil)
		return
	}
	if err := access.AuthorizeMutation(Principal(c), req.CountryID, req.CityID, true); err != nil {
		RespondDomainError(c, err)
		return
	}
	if !a.cityInCountry(c, req.CityID, req.CountryID) {
		return
	}

	repo := repositories.PaymentOptionRepo{DB: a.DB}
	name := utils.NormalizeSpace(req.Name)
	if exists, err := repo.NameExists(req.CountryID, name, 0); err != nil {
		RespondDomainError(c, err)
		return
	} else if exists {
		RespondError(c, http.StatusConflict, "payment option name already exists in this country", nil)
		return
	}

	id, err := repo.Create(models.PaymentOption{
		CountryID: req.CountryID,
		CityID:    req.CityID,
		Name:      name,
		Kind:      req.Kind,
		IsActive:  req.IsActive == nil || *req.IsActive,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	option, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "payment option created", option)
}

// PUT /api/payment-options/:id
func (a *API) UpdatePaymentOption(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.PaymentOptionRepo{DB: a.DB}

	option, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := access.AuthorizeMutation(Principal(c), option.CountryID, option.CityID, true); err != nil {
		RespondDomainError(c, err)
		return
	}

	var req paymentOptionPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if !paymentKinds[req.Kind] {
		RespondError(c, http.StatusBadRequest, "kind must be cash, card or wallet", nil)
		return
	}
	// the requested placement must be in scope too, not just the current row
	if err := access.AuthorizeMutation(Principal(c), option.CountryID, req.CityID, true); err != nil {
		RespondDomainError(c, err)
		return
	}
	if !a.cityInCountry(c, req.CityID, option.CountryID) {
		return
	}

	option.CityID = req.CityID
	option.Name = utils.NormalizeSpace(req.Name)
	option.Kind = req.Kind
	if req.IsActive != nil {
		option.IsActive = *req.IsActive
	}

	if exists, err := repo.NameExists(option.CountryID, option.Name, id); err != nil {
		RespondDomainError(c, err)
		return
	} else if exists {
		RespondError(c, http.StatusConflict, "payment option name already exists in this country", nil)
		return
	}

	if err := repo.Update(option); err != nil {
		RespondDomainError(c, err)
		return
	}
	updated, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "payment option updated", updated)
}

// PUT /api/payment-options/:id/reposition
func (a *API) RepositionPaymentOption(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.PaymentOptionRepo{DB: a.DB}

	option, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := access.AuthorizeMutation(Principal(c), option.CountryID, option.CityID, true); err != nil {
		RespondDomainError(c, err)
		return
	}

	var req repositionPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := repo.Reposition(id, req.Position); err != nil {
		RespondDomainError(c, err)
		return
	}
	updated, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "payment option repositioned", updated)
}

// DELETE /api/payment-options/:id
func (a *API) DeletePaymentOption(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.PaymentOptionRepo{DB: a.DB}

	option, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := access.AuthorizeMutation(Principal(c), option.CountryID, option.CityID, true); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "payment option deleted", nil)
}
