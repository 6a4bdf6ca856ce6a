package repositories

import (
	"database/sql"

	"foodadmin/internal/access"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/query"
)

type StoreRepo struct {
	DB *sql.DB
}

type StoreFilter struct {
	Search   string
	ZoneID   *int64
	IsActive *bool
	IsBusy   *bool
}

var storeSortable = map[string]string{
	"id":   "stores.id",
	"name": "stores.name",
}

const storeColumns = `stores.id, stores.country_id, stores.city_id, stores.zone_id,
	stores.name, stores.description, stores.phone, stores.address,
	stores.is_busy, stores.is_active, cities.name, COALESCE(zones.name,'')`

const storeJoins = `JOIN cities ON cities.id = stores.city_id
	LEFT JOIN zones ON zones.id = stores.zone_id`

func scanStore(sc interface{ Scan(...any) error }) (models.Store, error) {
	var (
		s      models.Store
		zoneID sql.NullInt64
	)
	err := sc.Scan(&s.ID, &s.CountryID, &s.CityID, &zoneID,
		&s.Name, &s.Description, &s.Phone, &s.Address,
		&s.IsBusy, &s.IsActive, &s.CityName, &s.ZoneName)
	if err != nil {
		return models.Store{}, err
	}
	s.ZoneID = int64Ptr(zoneID)
	return s, nil
}

func (r StoreRepo) List(f StoreFilter, sc access.Scope, srt query.Sort, pg query.Page) ([]models.Store, query.PageMeta, error) {
	spec := query.New("stores", storeColumns).
		Join(storeJoins).
		Search(f.Search, "stores.name", "stores.phone", "stores.address").
		Equal("stores.zone_id", f.ZoneID).
		Bool("stores.is_active", f.IsActive).
		Bool("stores.is_busy", f.IsBusy).
		Scope(sc, "stores.country_id", "stores.city_id", false)

	total, err := spec.Count(r.DB)
	if err != nil {
		return nil, query.PageMeta{}, err
	}

	rows, err := spec.Select(r.DB, storeSortable, srt, pg)
	if err != nil {
		return nil, query.PageMeta{}, err
	}
	defer rows.Close()

	list := []models.Store{}
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, query.PageMeta{}, mapReadError("store", err)
		}
		list = append(list, s)
	}
	if err := rows.Err(); err != nil {
		return nil, query.PageMeta{}, mapReadError("store", err)
	}
	return list, query.NewPageMeta(total, pg), nil
}

func (r StoreRepo) GetByID(id int64) (models.Store, error) {
	row := r.DB.QueryRow(`
		SELECT `+storeColumns+`
		FROM stores `+storeJoins+`
		WHERE stores.id = ? LIMIT 1`, id)
	s, err := scanStore(row)
	if err != nil {
		return models.Store{}, mapReadError("store", err)
	}
	return s, nil
}

func (r StoreRepo) NameExists(countryID, cityID int64, name string, excludeID int64) (bool, error) {
	var n int
	err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM stores
		WHERE country_id = ? AND city_id = ? AND name = ? AND id <> ?`,
		countryID, cityID, name, excludeID).Scan(&n)
	if err != nil {
		return false, mapReadError("store", err)
	}
	return n > 0, nil
}

func (r StoreRepo) Create(s models.Store) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO stores (country_id, city_id, zone_id, name, description, phone, address, is_busy, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		s.CountryID, s.CityID, NullInt64(s.ZoneID), s.Name, s.Description,
		s.Phone, s.Address, s.IsBusy, s.IsActive)
	if err != nil {
		return 0, mapWriteError("store", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r StoreRepo) Update(s models.Store) error {
	_, err := r.DB.Exec(`
		UPDATE stores SET zone_id = ?, name = ?, description = ?, phone = ?, address = ?,
			is_busy = ?, is_active = ?, updated_at = NOW()
		WHERE id = ?`,
		NullInt64(s.ZoneID), s.Name, s.Description, s.Phone, s.Address,
		s.IsBusy, s.IsActive, s.ID)
	return mapWriteError("store", err)
}

func (r StoreRepo) SetBusy(id int64, busy bool) error {
	_, err := r.DB.Exec(`UPDATE stores SET is_busy = ?, updated_at = NOW() WHERE id = ?`, busy, id)
	return mapWriteError("store", err)
}

func (r StoreRepo) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM stores WHERE id = ?`, id)
	return mapWriteError("store", err)
}
