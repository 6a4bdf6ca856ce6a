package handlers

import (
	"net/http"

	"foodadmin/internal/access"
	"foodadmin/internal/domain"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/repositories"
	"foodadmin/internal/utils"

	"github.com/gin-gonic/gin"
)

type storePayload struct {
	CityID      int64  `json:"cityId" binding:"required"`
	ZoneID      *int64 `json:"zoneId"`
	Name        string `json:"name" binding:"required"`
	Description string `json:"description"`
	Phone       string `json:"phone"`
	Address     string `json:"address" binding:"required"`
	IsActive    *bool  `json:"isActive"`
}

// GET /api/stores
func (a *API) GetStores(c *gin.Context) {
	repo := repositories.StoreRepo{DB: a.DB}
	srt, pg := ListParams(c, "name")

	list, meta, err := repo.List(repositories.StoreFilter{
		Search:   c.Query("q"),
		ZoneID:   QueryInt64Ptr(c, "zone_id"),
		IsActive: QueryBoolPtr(c, "is_active"),
		IsBusy:   QueryBoolPtr(c, "is_busy"),
	}, ScopeFromRequest(c), srt, pg)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, "stores", list, meta)
}

// GET /api/stores/:id
func (a *API) GetStoreByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.StoreRepo{DB: a.DB}

	store, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	// scoped-out rows read as absent, never as forbidden
	if err := access.AuthorizeMutation(Principal(c), store.CountryID, &store.CityID, false); err != nil {
		RespondError(c, http.StatusNotFound, "store not found", nil)
		return
	}
	Respond(c, http.StatusOK, "store", store)
}

// validateStoreZone checks the zone belongs to the store's city.
func (a *API) validateStoreZone(zoneID *int64, cityID int64) error {
	if zoneID == nil {
		return nil
	}
	zone, err := repositories.ZoneRepo{DB: a.DB}.GetByID(*zoneID)
	if err != nil {
		return err
	}
	if zone.CityID != cityID {
		return domain.ValidationError{Field: "zoneId", Msg: "zone does not belong to the store city"}
	}
	return nil
}

// POST /api/stores
func (a *API) CreateStore(c *gin.Context) {
	var req storePayload
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
	if err := a.validateStoreZone(req.ZoneID, city.ID); err != nil {
		RespondDomainError(c, err)
		return
	}

	repo := repositories.StoreRepo{DB: a.DB}
	name := utils.NormalizeSpace(req.Name)
	if exists, err := repo.NameExists(city.CountryID, city.ID, name, 0); err != nil {
		RespondDomainError(c, err)
		return
	} else if exists {
		RespondError(c, http.StatusConflict, "store name already exists in this city", nil)
		return
	}

	id, err := repo.Create(models.Store{
		CountryID:   city.CountryID,
		CityID:      city.ID,
		ZoneID:      req.ZoneID,
		Name:        name,
		Description: utils.TrimOrEmpty(req.Description),
		Phone:       utils.TrimOrEmpty(req.Phone),
		Address:     utils.TrimOrEmpty(req.Address),
		IsActive:    req.IsActive == nil || *req.IsActive,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	store, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "store created", store)
}

// PUT /api/stores/:id
func (a *API) UpdateStore(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.StoreRepo{DB: a.DB}

	store, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := access.AuthorizeMutation(Principal(c), store.CountryID, &store.CityID, false); err != nil {
		RespondDomainError(c, err)
		return
	}

	var req storePayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := a.validateStoreZone(req.ZoneID, store.CityID); err != nil {
		RespondDomainError(c, err)
		return
	}

	store.ZoneID = req.ZoneID
	store.Name = utils.NormalizeSpace(req.Name)
	store.Description = utils.TrimOrEmpty(req.Description)
	store.Phone = utils.TrimOrEmpty(req.Phone)
	store.Address = utils.TrimOrEmpty(req.Address)
	if req.IsActive != nil {
		store.IsActive = *req.IsActive
	}

	if exists, err := repo.NameExists(store.CountryID, store.CityID, store.Name, id); err != nil {
		RespondDomainError(c, err)
		return
	} else if exists {
		RespondError(c, http.StatusConflict, "store name already exists in this city", nil)
		return
	}

	if err := repo.Update(store); err != nil {
		RespondDomainError(c, err)
		return
	}
	updated, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "store updated", updated)
}

// PUT /api/stores/:id/toggle-busy
func (a *API) ToggleStoreBusy(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.StoreRepo{DB: a.DB}

	store, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := access.AuthorizeMutation(Principal(c), store.CountryID, &store.CityID, false); err != nil {
		RespondDomainError(c, err)
		return
	}

	if err := repo.SetBusy(id, !store.IsBusy); err != nil {
		RespondDomainError(c, err)
		return
	}
	updated, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "store busy flag toggled", updated)
}

// DELETE /api/stores/:id
func (a *API) DeleteStore(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.StoreRepo{DB: a.DB}

	store, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := access.AuthorizeMutation(Principal(c), store.CountryID, &store.CityID, false); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "store deleted", nil)
}
