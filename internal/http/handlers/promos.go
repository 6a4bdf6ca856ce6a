package handlers

import (
	"net/http"
	"time"

	"foodadmin/internal/access"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/repositories"
	"foodadmin/internal/utils"

	"github.com/gin-gonic/gin"
)

type promoPayload struct {
	CountryID       int64  `json:"countryId" binding:"required"`
	CityID          *int64 `json:"cityId"`
	Code            string `json:"code" binding:"required"`
	Type            string `json:"type" binding:"required"`
	DiscountAmount  *int64 `json:"discountAmount" binding:"required"`
	MaximumDiscount *int64 `json:"maximumDiscount"`
	StartsAt        string `json:"startsAt" binding:"required"`
	EndsAt          string `json:"endsAt" binding:"required"`
	MaxUses         *int64 `json:"maxUses"`
	IsActive        *bool  `json:"isActive"`
}

func validatePromoPayload(c *gin.Context, req promoPayload) bool {
	t := models.PromoType(req.Type)
	if !t.Valid() {
		RespondError(c, http.StatusBadRequest, "type must be percentage or fixed", nil)
		return false
	}
	if *req.DiscountAmount <= 0 {
		RespondError(c, http.StatusBadRequest, "discountAmount must be positive", nil)
		return false
	}
	if t == models.PromoPercentage && *req.DiscountAmount > 100 {
		RespondError(c, http.StatusBadRequest, "percentage discount cannot exceed 100", nil)
		return false
	}
	if req.MaximumDiscount != nil && *req.MaximumDiscount <= 0 {
		RespondError(c, http.StatusBadRequest, "maximumDiscount must be positive", nil)
		return false
	}
	if req.MaxUses != nil && *req.MaxUses <= 0 {
		RespondError(c, http.StatusBadRequest, "maxUses must be positive", nil)
		return false
	}
	start, err := time.Parse("2006-01-02", req.StartsAt)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "startsAt must be YYYY-MM-DD", err)
		return false
	}
	end, err := time.Parse("2006-01-02", req.EndsAt)
	if err != nil {
		RespondError(c, http.StatusBadRequest, "endsAt must be YYYY-MM-DD", err)
		return false
	}
	if end.Before(start) {
		RespondError(c, http.StatusBadRequest, "endsAt must not precede startsAt", nil)
		return false
	}
	return true
}

// cityInCountry rejects a city reference from another country.
func (a *API) cityInCountry(c *gin.Context, cityID *int64, countryID int64) bool {
	if cityID == nil {
		return true
	}
	city, err := repositories.CityRepo{DB: a.DB}.GetByID(*cityID)
	if err != nil {
		RespondDomainError(c, err)
		return false
	}
	if city.CountryID != countryID {
		RespondError(c, http.StatusBadRequest, "city does not belong to this country", nil)
		return false
	}
	return true
}

// GET /api/promo-codes
func (a *API) GetPromoCodes(c *gin.Context) {
	repo := repositories.PromoRepo{DB: a.DB}
	srt, pg := ListParams(c, "starts_at")

	list, meta, err := repo.List(repositories.PromoFilter{
		Search:   c.Query("q"),
		Type:     c.Query("type"),
		IsActive: QueryBoolPtr(c, "is_active"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
	}, ScopeFromRequest(c), srt, pg)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, "promo codes", list, meta)
}

// GET /api/promo-codes/:id
func (a *API) GetPromoCodeByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.PromoRepo{DB: a.DB}

	promo, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := access.AuthorizeMutation(Principal(c), promo.CountryID, promo.CityID, true); err != nil {
		RespondError(c, http.StatusNotFound, "promo code not found", nil)
		return
	}
	Respond(c, http.StatusOK, "promo code", promo)
}

// POST /api/promo-codes
func (a *API) CreatePromoCode(c *gin.Context) {
	var req promoPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if !validatePromoPayload(c, req) {
		return
	}
	if err := access.AuthorizeMutation(Principal(c), req.CountryID, req.CityID, true); err != nil {
		RespondDomainError(c, err)
		return
	}
	if !a.cityInCountry(c, req.CityID, req.CountryID) {
		return
	}

	repo := repositories.PromoRepo{DB: a.DB}
	code := utils.NormalizeCode(req.Code)
	if exists, err := repo.CodeExists(req.CountryID, code, 0); err != nil {
		RespondDomainError(c, err)
		return
	} else if exists {
		RespondError(c, http.StatusConflict, "promo code already exists in this country", nil)
		return
	}

	id, err := repo.Create(models.PromoCode{
		CountryID:       req.CountryID,
		CityID:          req.CityID,
		Code:            code,
		Type:            models.PromoType(req.Type),
		DiscountAmount:  *req.DiscountAmount,
		MaximumDiscount: req.MaximumDiscount,
		StartsAt:        req.StartsAt,
		EndsAt:          req.EndsAt,
		MaxUses:         req.MaxUses,
		IsActive:        req.IsActive == nil || *req.IsActive,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	promo, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "promo code created", promo)
}

// PUT /api/promo-codes/:id
func (a *API) UpdatePromoCode(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.PromoRepo{DB: a.DB}

	promo, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := access.AuthorizeMutation(Principal(c), promo.CountryID, promo.CityID, true); err != nil {
		RespondDomainError(c, err)
		return
	}

	var req promoPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if !validatePromoPayload(c, req) {
		return
	}
	// the requested placement must be in scope too, not just the current row
	if err := access.AuthorizeMutation(Principal(c), promo.CountryID, req.CityID, true); err != nil {
		RespondDomainError(c, err)
		return
	}
	// a code never migrates between countries
	if !a.cityInCountry(c, req.CityID, promo.CountryID) {
		return
	}

	code := utils.NormalizeCode(req.Code)
	if exists, err := repo.CodeExists(promo.CountryID, code, id); err != nil {
		RespondDomainError(c, err)
		return
	} else if exists {
		RespondError(c, http.StatusConflict, "promo code already exists in this country", nil)
		return
	}

	promo.CityID = req.CityID
	promo.Code = code
	promo.Type = models.PromoType(req.Type)
	promo.DiscountAmount = *req.DiscountAmount
	promo.MaximumDiscount = req.MaximumDiscount
	promo.StartsAt = req.StartsAt
	promo.EndsAt = req.EndsAt
	promo.MaxUses = req.MaxUses
	if req.IsActive != nil {
		promo.IsActive = *req.IsActive
	}

	if err := repo.Update(promo); err != nil {
		RespondDomainError(c, err)
		return
	}
	updated, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "promo code updated", updated)
}

// DELETE /api/promo-codes/:id
func (a *API) DeletePromoCode(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.PromoRepo{DB: a.DB}

	promo, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := access.AuthorizeMutation(Principal(c), promo.CountryID, promo.CityID, true); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "promo code deleted", nil)
}
