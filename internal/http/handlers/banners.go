package handlers

import (
	"net/http"

	"foodadmin/internal/access"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/repositories"
	"foodadmin/internal/utils"

	"github.com/gin-gonic/gin"
)

type bannerPayload struct {
	CountryID int64  `json:"countryId" binding:"required"`
	CityID    *int64 `json:"cityId"`
	StoreID   *int64 `json:"storeId"`
	Title     string `json:"title" binding:"required"`
	ImageURL  string `json:"imageUrl" binding:"required,url"`
	IsActive  *bool  `json:"isActive"`
}

// validateBannerStore checks a promoted store actually sits inside the
// banner's placement.
func (a *API) validateBannerStore(c *gin.Context, storeID *int64, countryID int64, cityID *int64) bool {
	if storeID == nil {
		return true
	}
	store, err := repositories.StoreRepo{DB: a.DB}.GetByID(*storeID)
	if err != nil {
		RespondDomainError(c, err)
		return false
	}
	if store.CountryID != countryID {
		RespondError(c, http.StatusBadRequest, "store does not belong to this country", nil)
		return false
	}
	if cityID != nil && store.CityID != *cityID {
		RespondError(c, http.StatusBadRequest, "store does not belong to this city", nil)
		return false
	}
	return true
}

// GET /api/banners
func (a *API) GetBanners(c *gin.Context) {
	repo := repositories.BannerRepo{DB: a.DB}
	srt, pg := ListParams(c, "position")

	list, meta, err := repo.List(repositories.BannerFilter{
		Search:   c.Query("q"),
		StoreID:  QueryInt64Ptr(c, "store_id"),
		IsActive: QueryBoolPtr(c, "is_active"),
	}, ScopeFromRequest(c), srt, pg)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, "banners", list, meta)
}

// GET /api/banners/:id
func (a *API) GetBannerByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.BannerRepo{DB: a.DB}

	banner, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := access.AuthorizeMutation(Principal(c), banner.CountryID, banner.CityID, true); err != nil {
		RespondError(c, http.StatusNotFound, "banner not found", nil)
		return
	}
	Respond(c, http.StatusOK, "banner", banner)
}

// POST /api/banners
func (a *API) CreateBanner(c *gin.Context) {
	var req bannerPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if err := access.AuthorizeMutation(Principal(c), req.CountryID, req.CityID, true); err != nil {
		RespondDomainError(c, err)
		return
	}
	if !a.cityInCountry(c, req.CityID, req.CountryID) {
		return
	}
	if !a.validateBannerStore(c, req.StoreID, req.CountryID, req.CityID) {
		return
	}

	repo := repositories.BannerRepo{DB: a.DB}
	id, err := repo.Create(models.Banner{
		CountryID: req.CountryID,
		CityID:    req.CityID,
		StoreID:   req.StoreID,
		Title:     utils.NormalizeSpace(req.Title),
		ImageURL:  utils.TrimOrEmpty(req.ImageURL),
		IsActive:  req.IsActive == nil || *req.IsActive,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	banner, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "banner created", banner)
}

// PUT /api/banners/:id
func (a *API) UpdateBanner(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.BannerRepo{DB: a.DB}

	banner, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := access.AuthorizeMutation(Principal(c), banner.CountryID, banner.CityID, true); err != nil {
		RespondDomainError(c, err)
		return
	}

	var req bannerPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	// the requested placement must be in scope too, not just the current row
	if err := access.AuthorizeMutation(Principal(c), banner.CountryID, req.CityID, true); err != nil {
		RespondDomainError(c, err)
		return
	}
	if !a.cityInCountry(c, req.CityID, banner.CountryID) {
		return
	}
	if !a.validateBannerStore(c, req.StoreID, banner.CountryID, req.CityID) {
		return
	}

	banner.CityID = req.CityID
	banner.StoreID = req.StoreID
	banner.Title = utils.NormalizeSpace(req.Title)
	banner.ImageURL = utils.TrimOrEmpty(req.ImageURL)
	if req.IsActive != nil {
		banner.IsActive = *req.IsActive
	}

	if err := repo.Update(banner); err != nil {
		RespondDomainError(c, err)
		return
	}
	updated, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "banner updated", updated)
}

// PUT /api/banners/:id/reposition
func (a *API) RepositionBanner(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.BannerRepo{DB: a.DB}

	banner, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := access.AuthorizeMutation(Principal(c), banner.CountryID, banner.CityID, true); err != nil {
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
	Respond(c, http.StatusOK, "banner repositioned", updated)
}

// DELETE /api/banners/:id
func (a *API) DeleteBanner(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.BannerRepo{DB: a.DB}

	banner, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := access.AuthorizeMutation(Principal(c), banner.CountryID, banner.CityID, true); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "banner deleted", nil)
}
