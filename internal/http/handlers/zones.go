package handlers

import (
	"net/http"

	"foodadmin/internal/access"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/repositories"
	"foodadmin/internal/utils"

	"github.com/gin-gonic/gin"
)

type zonePayload struct {
	CityID      int64  `json:"cityId" binding:"required"`
	Name        string `json:"name" binding:"required"`
	DeliveryFee *int64 `json:"deliveryFee" binding:"required"`
	IsActive    *bool  `json:"isActive"`
}

// GET /api/zones
func (a *API) GetZones(c *gin.Context) {
	repo := repositories.ZoneRepo{DB: a.DB}
	srt, pg := ListParams(c, "name")

	list, meta, err := repo.List(repositories.ZoneFilter{
		Search:   c.Query("q"),
		CityID:   QueryInt64Ptr(c, "city_id"),
		IsActive: QueryBoolPtr(c, "is_active"),
	}, ScopeFromRequest(c), srt, pg)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, "zones", list, meta)
}

// GET /api/zones/:id
func (a *API) GetZoneByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.ZoneRepo{DB: a.DB}

	zone, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := access.AuthorizeMutation(Principal(c), zone.CountryID, &zone.CityID, false); err != nil {
		RespondError(c, http.StatusNotFound, "zone not found", nil)
		return
	}
	Respond(c, http.StatusOK, "zone", zone)
}

// POST /api/zones
func (a *API) CreateZone(c *gin.Context) {
	var req zonePayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if *req.DeliveryFee < 0 {
		RespondError(c, http.StatusBadRequest, "deliveryFee must not be negative", nil)
		return
	}

	cityRepo := repositories.CityRepo{DB: a.DB}
	city, err := cityRepo.GetByID(req.CityID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := access.AuthorizeMutation(Principal(c), city.CountryID, &city.ID, false); err != nil {
		RespondDomainError(c, err)
		return
	}

	repo := repositories.ZoneRepo{DB: a.DB}
	name := utils.NormalizeSpace(req.Name)
	if exists, err := repo.NameExists(city.ID, name, 0); err != nil {
		RespondDomainError(c, err)
		return
	} else if exists {
		RespondError(c, http.StatusConflict, "zone name already exists in this city", nil)
		return
	}

	id, err := repo.Create(models.Zone{
		CountryID:   city.CountryID,
		CityID:      city.ID,
		Name:        name,
		DeliveryFee: *req.DeliveryFee,
		IsActive:    req.IsActive == nil || *req.IsActive,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	zone, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "zone created", zone)
}

// PUT /api/zones/:id
func (a *API) UpdateZone(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.ZoneRepo{DB: a.DB}

	zone, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := access.AuthorizeMutation(Principal(c), zone.CountryID, &zone.CityID, false); err != nil {
		RespondDomainError(c, err)
		return
	}

	var req zonePayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if *req.DeliveryFee < 0 {
		RespondError(c, http.StatusBadRequest, "deliveryFee must not be negative", nil)
		return
	}

	zone.Name = utils.NormalizeSpace(req.Name)
	zone.DeliveryFee = *req.DeliveryFee
	if req.IsActive != nil {
		zone.IsActive = *req.IsActive
	}

	if exists, err := repo.NameExists(zone.CityID, zone.Name, id); err != nil {
		RespondDomainError(c, err)
		return
	} else if exists {
		RespondError(c, http.StatusConflict, "zone name already exists in this city", nil)
		return
	}

	if err := repo.Update(zone); err != nil {
		RespondDomainError(c, err)
		return
	}
	updated, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "zone updated", updated)
}

// DELETE /api/zones/:id
func (a *API) DeleteZone(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.ZoneRepo{DB: a.DB}

	zone, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := access.AuthorizeMutation(Principal(c), zone.CountryID, &zone.CityID, false); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "zone deleted", nil)
}
