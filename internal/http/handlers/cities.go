package handlers

import (
	"net/http"

	"foodadmin/internal/access"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/repositories"
	"foodadmin/internal/utils"

	"github.com/gin-gonic/gin"
)

type cityPayload struct {
	CountryID int64  `json:"countryId" binding:"required"`
	Name      string `json:"name" binding:"required"`
	IsActive  *bool  `json:"isActive"`
}

// GET /api/cities
func (a *API) GetCities(c *gin.Context) {
	repo := repositories.CityRepo{DB: a.DB}
	srt, pg := ListParams(c, "name")

	list, meta, err := repo.List(repositories.CityFilter{
		Search:    c.Query("q"),
		CountryID: QueryInt64Ptr(c, "country_id"),
		IsActive:  QueryBoolPtr(c, "is_active"),
	}, ScopeFromRequest(c), srt, pg)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, "cities", list, meta)
}

// GET /api/cities/:id
func (a *API) GetCityByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.CityRepo{DB: a.DB}

	city, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	cityID := city.ID
	if err := access.AuthorizeMutation(Principal(c), city.CountryID, &cityID, false); err != nil {
		RespondError(c, http.StatusNotFound, "city not found", nil)
		return
	}
	Respond(c, http.StatusOK, "city", city)
}

// POST /api/cities
func (a *API) CreateCity(c *gin.Context) {
	var req cityPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	// new cities are a country-level concern: city-restricted admins may not
	// add siblings
	if err := access.AuthorizeMutation(Principal(c), req.CountryID, nil, false); err != nil {
		RespondDomainError(c, err)
		return
	}

	repo := repositories.CityRepo{DB: a.DB}
	name := utils.NormalizeSpace(req.Name)
	if exists, err := repo.NameExists(req.CountryID, name, 0); err != nil {
		RespondDomainError(c, err)
		return
	} else if exists {
		RespondError(c, http.StatusConflict, "city name already exists in this country", nil)
		return
	}

	id, err := repo.Create(models.City{
		CountryID: req.CountryID,
		Name:      name,
		IsActive:  req.IsActive == nil || *req.IsActive,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	city, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "city created", city)
}

// PUT /api/cities/:id
func (a *API) UpdateCity(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.CityRepo{DB: a.DB}

	city, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	cityID := city.ID
	if err := access.AuthorizeMutation(Principal(c), city.CountryID, &cityID, false); err != nil {
		RespondDomainError(c, err)
		return
	}

	var req cityPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	city.Name = utils.NormalizeSpace(req.Name)
	if req.IsActive != nil {
		city.IsActive = *req.IsActive
	}

	if exists, err := repo.NameExists(city.CountryID, city.Name, id); err != nil {
		RespondDomainError(c, err)
		return
	} else if exists {
		RespondError(c, http.StatusConflict, "city name already exists in this country", nil)
		return
	}

	if err := repo.Update(city); err != nil {
		RespondDomainError(c, err)
		return
	}
	updated, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "city updated", updated)
}

// DELETE /api/cities/:id
func (a *API) DeleteCity(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.CityRepo{DB: a.DB}

	city, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	// deleting a city is country-level, same as creating one
	if err := access.AuthorizeMutation(Principal(c), city.CountryID, nil, false); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "city deleted", nil)
}
