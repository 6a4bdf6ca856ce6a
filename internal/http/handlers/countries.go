package handlers

import (
	"net/http"

	"foodadmin/internal/access"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/repositories"
	"foodadmin/internal/utils"

	"github.com/gin-gonic/gin"
)

type countryPayload struct {
	Name     string `json:"name" binding:"required"`
	Code     string `json:"code" binding:"required"`
	Currency string `json:"currency" binding:"required"`
	IsActive *bool  `json:"isActive"`
}

// GET /api/countries
func (a *API) GetCountries(c *gin.Context) {
	repo := repositories.CountryRepo{DB: a.DB}
	srt, pg := ListParams(c, "name")

	list, meta, err := repo.List(repositories.CountryFilter{
		Search:   c.Query("q"),
		IsActive: QueryBoolPtr(c, "is_active"),
	}, ScopeFromRequest(c), srt, pg)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, "countries", list, meta)
}

// GET /api/countries/:id
func (a *API) GetCountryByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.CountryRepo{DB: a.DB}

	country, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	sc := ScopeFromRequest(c)
	if sc.CountryID != nil && *sc.CountryID != country.ID {
		RespondError(c, http.StatusNotFound, "country not found", nil)
		return
	}
	Respond(c, http.StatusOK, "country", country)
}

// POST /api/countries
func (a *API) CreateCountry(c *gin.Context) {
	if err := access.AuthorizeCountryAdmin(Principal(c)); err != nil {
		RespondDomainError(c, err)
		return
	}

	var req countryPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	repo := repositories.CountryRepo{DB: a.DB}

	name := utils.NormalizeSpace(req.Name)
	code := utils.NormalizeCode(req.Code)
	if exists, err := repo.NameOrCodeExists(name, code, 0); err != nil {
		RespondDomainError(c, err)
		return
	} else if exists {
		RespondError(c, http.StatusConflict, "country name or code already exists", nil)
		return
	}

	id, err := repo.Create(models.Country{
		Name:     name,
		Code:     code,
		Currency: utils.NormalizeCode(req.Currency),
		IsActive: req.IsActive == nil || *req.IsActive,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	country, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "country created", country)
}

// PUT /api/countries/:id
func (a *API) UpdateCountry(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := access.AuthorizeCountryAdmin(Principal(c)); err != nil {
		RespondDomainError(c, err)
		return
	}

	repo := repositories.CountryRepo{DB: a.DB}
	country, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	var req countryPayload
	if !BindJSONOrError(c, &req) {
		return
	}

	country.Name = utils.NormalizeSpace(req.Name)
	country.Code = utils.NormalizeCode(req.Code)
	country.Currency = utils.NormalizeCode(req.Currency)
	if req.IsActive != nil {
		country.IsActive = *req.IsActive
	}

	if exists, err := repo.NameOrCodeExists(country.Name, country.Code, id); err != nil {
		RespondDomainError(c, err)
		return
	} else if exists {
		RespondError(c, http.StatusConflict, "country name or code already exists", nil)
		return
	}

	if err := repo.Update(country); err != nil {
		RespondDomainError(c, err)
		return
	}
	updated, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "country updated", updated)
}

// DELETE /api/countries/:id
func (a *API) DeleteCountry(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	if err := access.AuthorizeCountryAdmin(Principal(c)); err != nil {
		RespondDomainError(c, err)
		return
	}

	repo := repositories.CountryRepo{DB: a.DB}
	if _, err := repo.GetByID(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "country deleted", nil)
}
