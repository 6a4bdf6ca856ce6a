package handlers

import (
	"net/http"

	"foodadmin/internal/access"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/repositories"
	"foodadmin/internal/utils"

	"github.com/gin-gonic/gin"
)

type itemPayload struct {
	StoreID     int64              `json:"storeId" binding:"required"`
	CategoryID  int64              `json:"categoryId" binding:"required"`
	Name        string             `json:"name" binding:"required"`
	Description string             `json:"description"`
	Price       *int64             `json:"price" binding:"required"`
	IsAvailable *bool              `json:"isAvailable"`
	Options     []string           `json:"options"`
	Extras      []models.ItemExtra `json:"extras"`
}

func validateItemPayload(c *gin.Context, req itemPayload) bool {
	if *req.Price < 0 {
		RespondError(c, http.StatusBadRequest, "price must not be negative", nil)
		return false
	}
	for _, ex := range req.Extras {
		if utils.TrimOrEmpty(ex.Name) == "" {
			RespondError(c, http.StatusBadRequest, "extra name must not be empty", nil)
			return false
		}
		if ex.Price < 0 {
			RespondError(c, http.StatusBadRequest, "extra price must not be negative", nil)
			return false
		}
	}
	return true
}

// categoryBelongsToStore guards against attaching an item to a category from
// another store.
func (a *API) categoryBelongsToStore(c *gin.Context, categoryID, storeID int64) bool {
	category, err := repositories.CategoryRepo{DB: a.DB}.GetByID(categoryID)
	if err != nil {
		RespondDomainError(c, err)
		return false
	}
	if category.StoreID != storeID {
		RespondError(c, http.StatusBadRequest, "category does not belong to this store", nil)
		return false
	}
	return true
}

// GET /api/items
func (a *API) GetItems(c *gin.Context) {
	repo := repositories.ItemRepo{DB: a.DB}
	srt, pg := ListParams(c, "name")

	list, meta, err := repo.List(repositories.ItemFilter{
		Search:      c.Query("q"),
		StoreID:     QueryInt64Ptr(c, "store_id"),
		CategoryID:  QueryInt64Ptr(c, "category_id"),
		IsAvailable: QueryBoolPtr(c, "is_available"),
		PriceMin:    QueryInt64Ptr(c, "price_min"),
		PriceMax:    QueryInt64Ptr(c, "price_max"),
	}, ScopeFromRequest(c), srt, pg)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondList(c, "items", list, meta)
}

// GET /api/items/:id
func (a *API) GetItemByID(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.ItemRepo{DB: a.DB}

	item, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	store, err := repositories.StoreRepo{DB: a.DB}.GetByID(item.StoreID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if err := access.AuthorizeMutation(Principal(c), store.CountryID, &store.CityID, false); err != nil {
		RespondError(c, http.StatusNotFound, "item not found", nil)
		return
	}
	Respond(c, http.StatusOK, "item", item)
}

// POST /api/items
func (a *API) CreateItem(c *gin.Context) {
	var req itemPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if !validateItemPayload(c, req) {
		return
	}
	if _, ok := a.authorizeStore(c, req.StoreID); !ok {
		return
	}
	if !a.categoryBelongsToStore(c, req.CategoryID, req.StoreID) {
		return
	}

	repo := repositories.ItemRepo{DB: a.DB}
	name := utils.NormalizeSpace(req.Name)
	if exists, err := repo.NameExists(req.StoreID, name, 0); err != nil {
		RespondDomainError(c, err)
		return
	} else if exists {
		RespondError(c, http.StatusConflict, "item name already exists in this store", nil)
		return
	}

	id, err := repo.Create(models.Item{
		StoreID:     req.StoreID,
		CategoryID:  req.CategoryID,
		Name:        name,
		Description: utils.TrimOrEmpty(req.Description),
		Price:       *req.Price,
		IsAvailable: req.IsAvailable == nil || *req.IsAvailable,
		Options:     req.Options,
		Extras:      req.Extras,
	})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	item, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusCreated, "item created", item)
}

// PUT /api/items/:id
func (a *API) UpdateItem(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.ItemRepo{DB: a.DB}

	item, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if _, ok := a.authorizeStore(c, item.StoreID); !ok {
		return
	}

	var req itemPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	if !validateItemPayload(c, req) {
		return
	}
	// items never move between stores, only between categories of the same one
	if !a.categoryBelongsToStore(c, req.CategoryID, item.StoreID) {
		return
	}

	item.CategoryID = req.CategoryID
	item.Name = utils.NormalizeSpace(req.Name)
	item.Description = utils.TrimOrEmpty(req.Description)
	item.Price = *req.Price
	if req.IsAvailable != nil {
		item.IsAvailable = *req.IsAvailable
	}
	item.Options = req.Options
	item.Extras = req.Extras

	if exists, err := repo.NameExists(item.StoreID, item.Name, id); err != nil {
		RespondDomainError(c, err)
		return
	} else if exists {
		RespondError(c, http.StatusConflict, "item name already exists in this store", nil)
		return
	}

	if err := repo.Update(item); err != nil {
		RespondDomainError(c, err)
		return
	}
	updated, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "item updated", updated)
}

// DELETE /api/items/:id
func (a *API) DeleteItem(c *gin.Context) {
	id, ok := PathID(c)
	if !ok {
		return
	}
	repo := repositories.ItemRepo{DB: a.DB}

	item, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if _, ok := a.authorizeStore(c, item.StoreID); !ok {
		return
	}
	if err := repo.Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	Respond(c, http.StatusOK, "item deleted", nil)
}
