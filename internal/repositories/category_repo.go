package repositories

import (
	"database/sql"

	"foodadmin/internal/access"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/query"
)

type CategoryRepo struct {
	DB *sql.DB
}

type CategoryFilter struct {
	Search  string
	StoreID *int64
}

var categorySortable = map[string]string{
	"id":       "categories.id",
	"name":     "categories.name",
	"position": "categories.position",
}

func (r CategoryRepo) List(f CategoryFilter, sc access.Scope, srt query.Sort, pg query.Page) ([]models.Category, query.PageMeta, error) {
	spec := query.New("categories",
		`categories.id, categories.store_id, categories.name, categories.position, stores.name,
		 (SELECT COUNT(*) FROM items WHERE items.category_id = categories.id)`).
		Join("JOIN stores ON stores.id = categories.store_id").
		Search(f.Search, "categories.name").
		Equal("categories.store_id", f.StoreID).
		Scope(sc, "stores.country_id", "stores.city_id", false)

	total, err := spec.Count(r.DB)
	if err != nil {
		return nil, query.PageMeta{}, err
	}

	rows, err := spec.Select(r.DB, categorySortable, srt, pg)
	if err != nil {
		return nil, query.PageMeta{}, err
	}
	defer rows.Close()

	list := []models.Category{}
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.StoreID, &c.Name, &c.Position, &c.StoreName, &c.ItemCount); err != nil {
			return nil, query.PageMeta{}, mapReadError("category", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, query.PageMeta{}, mapReadError("category", err)
	}
	return list, query.NewPageMeta(total, pg), nil
}

func (r CategoryRepo) GetByID(id int64) (models.Category, error) {
	var c models.Category
	err := r.DB.QueryRow(`
		SELECT categories.id, categories.store_id, categories.name, categories.position, stores.name
		FROM categories JOIN stores ON stores.id = categories.store_id
		WHERE categories.id = ? LIMIT 1`, id).
		Scan(&c.ID, &c.StoreID, &c.Name, &c.Position, &c.StoreName)
	if err != nil {
		return models.Category{}, mapReadError("category", err)
	}
	return c, nil
}

func (r CategoryRepo) NameExists(storeID int64, name string, excludeID int64) (bool, error) {
	var n int
	err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM categories
		WHERE store_id = ? AND name = ? AND id <> ?`, storeID, name, excludeID).Scan(&n)
	if err != nil {
		return false, mapReadError("category", err)
	}
	return n > 0, nil
}

func (r CategoryRepo) ItemCount(id int64) (int, error) {
	var n int
	err := r.DB.QueryRow(`SELECT COUNT(*) FROM items WHERE category_id = ?`, id).Scan(&n)
	if err != nil {
		return 0, mapReadError("category", err)
	}
	return n, nil
}

func (r CategoryRepo) Create(c models.Category) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO categories (store_id, name, position, created_at, updated_at)
		VALUES (?, ?, COALESCE((SELECT MAX(p.position)+1 FROM categories p WHERE p.store_id = ?), 1), NOW(), NOW())`,
		c.StoreID, c.Name, c.StoreID)
	if err != nil {
		return 0, mapWriteError("category", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r CategoryRepo) Update(c models.Category) error {
	_, err := r.DB.Exec(`
		UPDATE categories SET name = ?, updated_at = NOW() WHERE id = ?`, c.Name, c.ID)
	return mapWriteError("category", err)
}

// Reposition delegates the shift-and-insert sequence to the stored procedure,
// which serializes it server-side.
func (r CategoryRepo) Reposition(id int64, position int) error {
	_, err := r.DB.Exec(`CALL reposition_category(?, ?)`, id, position)
	return mapWriteError("category", err)
}

func (r CategoryRepo) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM categories WHERE id = ?`, id)
	return mapWriteError("category", err)
}
