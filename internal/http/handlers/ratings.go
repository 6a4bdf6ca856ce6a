package handlers

import (
	"net/http"

	"foodadmin/internal/access"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/repositories"

	"github.com/gin-gonic/gin"
)

type moderateRatingPayload struct {
	Status string `json:"status" binding:"required"`
}

// GET /api/ratings
func (a *API) GetRatings(c *gin.Context) {
	repo := repositories.RatingRepo{DB: a.DB}
	srt, pg := ListParams(c, "created_at")

	list, meta, err := repo.List(repositories.RatingFilter{
		Search:   c.Query("q"),
		StoreID:  QueryInt64Ptr(c, "store_id"),
		Status:   c.Query("status"),
		ScoreMin: QueryInt64Ptr(c, "score_min"),
		ScoreMax: QueryInt64Ptr(c, "score_max"),
	}, ScopeFromRequest(c), srt, pg)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, "ratings", list, meta)
}

// GET /api/ratings/:id
func (a *API) GetRatingByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.RatingRepo{DB: a.DB}

	rating, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := access.AuthorizeMutation(Principal(c), rating.CountryID, rating.CityID, true); err != nil {
		RespondError(c, http.StatusNotFound, "rating not found", nil)
		return
	}
	Respond(c, http.StatusOK, "rating", rating)
}

// PUT /api/ratings/:id/moderate
func (a *API) ModerateRating(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.RatingRepo{DB: a.DB}

	rating, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := access.AuthorizeMutation(Principal(c), rating.CountryID, rating.CityID, true); err != nil {
		RespondDomainError(c, err)
		return
	}

	var req moderateRatingPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	status := models.RatingStatus(req.Status)
	if !status.Valid() {
		RespondError(c, http.StatusBadRequest, "status must be pending, approved or rejected", nil)
		return
	}

	if err := repo.Moderate(id, status); err != nil {
		RespondDomainError(c, err)
		return
	}
	updated, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "rating moderated", updated)
}

// DELETE /api/ratings/:id
func (a *API) DeleteRating(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.RatingRepo{DB: a.DB}

	rating, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := access.AuthorizeMutation(Principal(c), rating.CountryID, rating.CityID, true); err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "rating deleted", nil)
}
