package handlers

import (
	"net/http"

	"foodadmin/internal/access"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/repositories"
	"foodadmin/internal/utils"

	"github.com/gin-gonic/gin"
)

type categoryPayload struct {
	StoreID int64  `json:"storeId" binding:"required"`
	Name    string `json:"name" binding:"required"`
}

type repositionPayload struct {
	Position int `json:"position" binding:"required,min=1"`
}

// authorizeStore loads the store a child row hangs off and runs the scope
// check against its location.
func (a *API) authorizeStore(c *gin.Context, storeID int64) (models.Store, bool) {
	store, err := repositories.StoreRepo{DB: a.DB}.GetByID(storeID)
	if err != nil {
		RespondDomainError(c, err)
		return models.Store{}, false
	}
	if err := access.AuthorizeMutation(Principal(c), store.CountryID, &store.CityID, false); err != nil {
		RespondDomainError(c, err)
		return models.Store{}, false
	}
	return store, true
}

// GET /api/categories
func (a *API) GetCategories(c *gin.Context) {
	repo := repositories.CategoryRepo{DB: a.DB}
	srt, pg := ListParams(c, "position")

	list, meta, err := repo.List(repositories.CategoryFilter{
		Search:  c.Query("q"),
		StoreID: QueryInt64Ptr(c, "store_id"),
	}, ScopeFromRequest(c), srt, pg)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, "categories", list, meta)
}

// POST /api/categories
func (a *API) CreateCategory(c *gin.Context) {
	var req categoryPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if _, ok := a.authorizeStore(c, req.StoreID); !ok {
		return
	}

	repo := repositories.CategoryRepo{DB: a.DB}
	name := utils.NormalizeSpace(req.Name)
	if exists, err := repo.NameExists(req.StoreID, name, 0); err != nil {
		RespondDomainError(c, err)
		return
	} else if exists {
		RespondError(c, http.StatusConflict, "category name already exists in this store", nil)
		return
	}

	id, err := repo.Create(models.Category{StoreID: req.StoreID, Name: name})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	category, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "category created", category)
}

// PUT /api/categories/:id
func (a *API) UpdateCategory(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.CategoryRepo{DB: a.DB}

	category, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if _, ok := a.authorizeStore(c, category.StoreID); !ok {
		return
	}

	var req categoryPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	category.Name = utils.NormalizeSpace(req.Name)

	if exists, err := repo.NameExists(category.StoreID, category.Name, id); err != nil {
		RespondDomainError(c, err)
		return
	} else if exists {
		RespondError(c, http.StatusConflict, "category name already exists in this store", nil)
		return
	}

	if err := repo.Update(category); err != nil {
		RespondDomainError(c, err)
		return
	}
	updated, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "category updated", updated)
}

// PUT /api/categories/:id/reposition
func (a *API) RepositionCategory(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.CategoryRepo{DB: a.DB}

	category, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if _, ok := a.authorizeStore(c, category.StoreID); !ok {
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
	Respond(c, http.StatusOK, "category repositioned", updated)
}

// DELETE /api/categories/:id
func (a *API) DeleteCategory(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.CategoryRepo{DB: a.DB}

	category, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if _, ok := a.authorizeStore(c, category.StoreID); !ok {
		return
	}

	// a category with items still attached must not disappear under them
	count, err := repo.ItemCount(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if count > 0 {
		RespondError(c, http.StatusConflict, "category still has items attached", nil)
		return
	}

	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "category deleted", nil)
}
