package repositories

import (
	"database/sql"

	"foodadmin/internal/access"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/query"
)

type ItemRepo struct {
	DB *sql.DB
}

type ItemFilter struct {
	Search      string
	StoreID     *int64
	CategoryID  *int64
	IsAvailable *bool
	PriceMin    *int64
	PriceMax    *int64
}

var itemSortable = map[string]string{
	"id":    "items.id",
	"name":  "items.name",
	"price": "items.price",
}

const itemColumns = `items.id, items.store_id, items.category_id, items.name, items.description,
	items.price, items.is_available, items.options, items.extras, stores.name, categories.name`

const itemJoins = `JOIN stores ON stores.id = items.store_id
	JOIN categories ON categories.id = items.category_id`

func scanItem(sc interface{ Scan(...any) error }) (models.Item, error) {
	var (
		it      models.Item
		options []byte
		extras  []byte
	)
	err := sc.Scan(&it.ID, &it.StoreID, &it.CategoryID, &it.Name, &it.Description,
		&it.Price, &it.IsAvailable, &options, &extras, &it.StoreName, &it.CategoryName)
	if err != nil {
		return models.Item{}, err
	}
	it.Options = []string{}
	it.Extras = []models.ItemExtra{}
	decodeJSON(options, &it.Options)
	decodeJSON(extras, &it.Extras)
	return it, nil
}

func (r ItemRepo) List(f ItemFilter, sc access.Scope, srt query.Sort, pg query.Page) ([]models.Item, query.PageMeta, error) {
	spec := query.New("items", itemColumns).
		Join(itemJoins).
		Search(f.Search, "items.name", "items.description").
		Equal("items.store_id", f.StoreID).
		Equal("items.category_id", f.CategoryID).
		Bool("items.is_available", f.IsAvailable).
		Scope(sc, "stores.country_id", "stores.city_id", false)

	if f.PriceMin != nil {
		spec.Where("items.price >= ?", *f.PriceMin)
	}
	if f.PriceMax != nil {
		spec.Where("items.price <= ?", *f.PriceMax)
	}

	total, err := spec.Count(r.DB)
	if err != nil {
		return nil, query.PageMeta{}, err
	}

	rows, err := spec.Select(r.DB, itemSortable, srt, pg)
	if err != nil {
		return nil, query.PageMeta{}, err
	}
	defer rows.Close()

	list := []models.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, query.PageMeta{}, mapReadError("item", err)
		}
		list = append(list, it)
	}
	if err := rows.Err(); err != nil {
		return nil, query.PageMeta{}, mapReadError("item", err)
	}
	return list, query.NewPageMeta(total, pg), nil
}

func (r ItemRepo) GetByID(id int64) (models.Item, error) {
	row := r.DB.QueryRow(`
		SELECT `+itemColumns+`
		FROM items `+itemJoins+`
		WHERE items.id = ? LIMIT 1`, id)
	it, err := scanItem(row)
	if err != nil {
		return models.Item{}, mapReadError("item", err)
	}
	return it, nil
}

// GetStoreCatalog loads every item of one store keyed by id, for order-line
// re-validation.
func (r ItemRepo) GetStoreCatalog(storeID int64) (map[int64]models.Item, error) {
	rows, err := r.DB.Query(`
		SELECT `+itemColumns+`
		FROM items `+itemJoins+`
		WHERE items.store_id = ?`, storeID)
	if err != nil {
		return nil, mapReadError("item", err)
	}
	defer rows.Close()

	catalog := map[int64]models.Item{}
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, mapReadError("item", err)
		}
		catalog[it.ID] = it
	}
	if err := rows.Err(); err != nil {
		return nil, mapReadError("item", err)
	}
	return catalog, nil
}

func (r ItemRepo) NameExists(storeID int64, name string, excludeID int64) (bool, error) {
	var n int
	err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM items
		WHERE store_id = ? AND name = ? AND id <> ?`, storeID, name, excludeID).Scan(&n)
	if err != nil {
		return false, mapReadError("item", err)
	}
	return n > 0, nil
}

func (r ItemRepo) Create(it models.Item) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO items (store_id, category_id, name, description, price, is_available, options, extras, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		it.StoreID, it.CategoryID, it.Name, it.Description, it.Price,
		it.IsAvailable, encodeJSON(it.Options), encodeJSON(it.Extras))
	if err != nil {
		return 0, mapWriteError("item", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r ItemRepo) Update(it models.Item) error {
	_, err := r.DB.Exec(`
		UPDATE items SET category_id = ?, name = ?, description = ?, price = ?,
			is_available = ?, options = ?, extras = ?, updated_at = NOW()
		WHERE id = ?`,
		it.CategoryID, it.Name, it.Description, it.Price,
		it.IsAvailable, encodeJSON(it.Options), encodeJSON(it.Extras), it.ID)
	return mapWriteError("item", err)
}

func (r ItemRepo) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM items WHERE id = ?`, id)
	return mapWriteError("item", err)
}
