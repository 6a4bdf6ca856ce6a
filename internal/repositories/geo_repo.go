package repositories

import (
	"database/sql"

	"foodadmin/internal/access"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/query"
)

type CountryRepo struct {
	DB *sql.DB
}

type CountryFilter struct {
	Search   string
	IsActive *bool
}

var countrySortable = map[string]string{
	"id":   "countries.id",
	"name": "countries.name",
	"code": "countries.code",
}

func (r CountryRepo) List(f CountryFilter, sc access.Scope, srt query.Sort, pg query.Page) ([]models.Country, query.PageMeta, error) {
	spec := query.New("countries", "countries.id, countries.name, countries.code, countries.currency, countries.is_active").
		Search(f.Search, "countries.name", "countries.code").
		Bool("countries.is_active", f.IsActive).
		// a located admin only ever sees their own country row
		Equal("countries.id", sc.CountryID)

	total, err := spec.Count(r.DB)
	if err != nil {
		return nil, query.PageMeta{}, err
	}

	rows, err := spec.Select(r.DB, countrySortable, srt, pg)
	if err != nil {
		return nil, query.PageMeta{}, err
	}
	defer rows.Close()

	list := []models.Country{}
	for rows.Next() {
		var c models.Country
		if err := rows.Scan(&c.ID, &c.Name, &c.Code, &c.Currency, &c.IsActive); err != nil {
			return nil, query.PageMeta{}, mapReadError("country", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, query.PageMeta{}, mapReadError("country", err)
	}
	return list, query.NewPageMeta(total, pg), nil
}

func (r CountryRepo) GetByID(id int64) (models.Country, error) {
	var c models.Country
	err := r.DB.QueryRow(`
		SELECT id, name, code, currency, is_active
		FROM countries WHERE id = ? LIMIT 1`, id).
		Scan(&c.ID, &c.Name, &c.Code, &c.Currency, &c.IsActive)
	if err != nil {
		return models.Country{}, mapReadError("country", err)
	}
	return c, nil
}

func (r CountryRepo) NameOrCodeExists(name, code string, excludeID int64) (bool, error) {
	var n int
	err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM countries
		WHERE (name = ? OR code = ?) AND id <> ?`, name, code, excludeID).Scan(&n)
	if err != nil {
		return false, mapReadError("country", err)
	}
	return n > 0, nil
}

func (r CountryRepo) Create(c models.Country) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO countries (name, code, currency, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())`,
		c.Name, c.Code, c.Currency, c.IsActive)
	if err != nil {
		return 0, mapWriteError("country", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r CountryRepo) Update(c models.Country) error {
	_, err := r.DB.Exec(`
		UPDATE countries SET name = ?, code = ?, currency = ?, is_active = ?, updated_at = NOW()
		WHERE id = ?`,
		c.Name, c.Code, c.Currency, c.IsActive, c.ID)
	return mapWriteError("country", err)
}

func (r CountryRepo) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM countries WHERE id = ?`, id)
	return mapWriteError("country", err)
}

type CityRepo struct {
	DB *sql.DB
}

type CityFilter struct {
	Search    string
	CountryID *int64
	IsActive  *bool
}

var citySortable = map[string]string{
	"id":   "cities.id",
	"name": "cities.name",
}

func (r CityRepo) List(f CityFilter, sc access.Scope, srt query.Sort, pg query.Page) ([]models.City, query.PageMeta, error) {
	spec := query.New("cities", "cities.id, cities.country_id, cities.name, cities.is_active, countries.name").
		Join("JOIN countries ON countries.id = cities.country_id").
		Search(f.Search, "cities.name").
		Equal("cities.country_id", f.CountryID).
		Bool("cities.is_active", f.IsActive).
		Scope(sc, "cities.country_id", "cities.id", false)

	total, err := spec.Count(r.DB)
	if err != nil {
		return nil, query.PageMeta{}, err
	}

	rows, err := spec.Select(r.DB, citySortable, srt, pg)
	if err != nil {
		return nil, query.PageMeta{}, err
	}
	defer rows.Close()

	list := []models.City{}
	for rows.Next() {
		var c models.City
		if err := rows.Scan(&c.ID, &c.CountryID, &c.Name, &c.IsActive, &c.CountryName); err != nil {
			return nil, query.PageMeta{}, mapReadError("city", err)
		}
		list = append(list, c)
	}
	if err := rows.Err(); err != nil {
		return nil, query.PageMeta{}, mapReadError("city", err)
	}
	return list, query.NewPageMeta(total, pg), nil
}

func (r CityRepo) GetByID(id int64) (models.City, error) {
	var c models.City
	err := r.DB.QueryRow(`
		SELECT cities.id, cities.country_id, cities.name, cities.is_active, countries.name
		FROM cities JOIN countries ON countries.id = cities.country_id
		WHERE cities.id = ? LIMIT 1`, id).
		Scan(&c.ID, &c.CountryID, &c.Name, &c.IsActive, &c.CountryName)
	if err != nil {
		return models.City{}, mapReadError("city", err)
	}
	return c, nil
}

func (r CityRepo) NameExists(countryID int64, name string, excludeID int64) (bool, error) {
	var n int
	err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM cities
		WHERE country_id = ? AND name = ? AND id <> ?`, countryID, name, excludeID).Scan(&n)
	if err != nil {
		return false, mapReadError("city", err)
	}
	return n > 0, nil
}

func (r CityRepo) Create(c models.City) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO cities (country_id, name, is_active, created_at, updated_at)
		VALUES (?, ?, ?, NOW(), NOW())`,
		c.CountryID, c.Name, c.IsActive)
	if err != nil {
		return 0, mapWriteError("city", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r CityRepo) Update(c models.City) error {
	_, err := r.DB.Exec(`
		UPDATE cities SET name = ?, is_active = ?, updated_at = NOW() WHERE id = ?`,
		c.Name, c.IsActive, c.ID)
	return mapWriteError("city", err)
}

func (r CityRepo) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM cities WHERE id = ?`, id)
	return mapWriteError("city", err)
}

type ZoneRepo struct {
	DB *sql.DB
}

type ZoneFilter struct {
	Search   string
	CityID   *int64
	IsActive *bool
}

var zoneSortable = map[string]string{
	"id":           "zones.id",
	"name":         "zones.name",
	"delivery_fee": "zones.delivery_fee",
}

func (r ZoneRepo) List(f ZoneFilter, sc access.Scope, srt query.Sort, pg query.Page) ([]models.Zone, query.PageMeta, error) {
	spec := query.New("zones", "zones.id, zones.country_id, zones.city_id, zones.name, zones.delivery_fee, zones.is_active, cities.name").
		Join("JOIN cities ON cities.id = zones.city_id").
		Search(f.Search, "zones.name").
		Equal("zones.city_id", f.CityID).
		Bool("zones.is_active", f.IsActive).
		Scope(sc, "zones.country_id", "zones.city_id", false)

	total, err := spec.Count(r.DB)
	if err != nil {
		return nil, query.PageMeta{}, err
	}

	rows, err := spec.Select(r.DB, zoneSortable, srt, pg)
	if err != nil {
		return nil, query.PageMeta{}, err
	}
	defer rows.Close()

	list := []models.Zone{}
	for rows.Next() {
		var z models.Zone
		if err := rows.Scan(&z.ID, &z.CountryID, &z.CityID, &z.Name, &z.DeliveryFee, &z.IsActive, &z.CityName); err != nil {
			return nil, query.PageMeta{}, mapReadError("zone", err)
		}
		list = append(list, z)
	}
	if err := rows.Err(); err != nil {
		return nil, query.PageMeta{}, mapReadError("zone", err)
	}
	return list, query.NewPageMeta(total, pg), nil
}

func (r ZoneRepo) GetByID(id int64) (models.Zone, error) {
	var z models.Zone
	err := r.DB.QueryRow(`
		SELECT zones.id, zones.country_id, zones.city_id, zones.name, zones.delivery_fee, zones.is_active, cities.name
		FROM zones JOIN cities ON cities.id = zones.city_id
		WHERE zones.id = ? LIMIT 1`, id).
		Scan(&z.ID, &z.CountryID, &z.CityID, &z.Name, &z.DeliveryFee, &z.IsActive, &z.CityName)
	if err != nil {
		return models.Zone{}, mapReadError("zone", err)
	}
	return z, nil
}

func (r ZoneRepo) NameExists(cityID int64, name string, excludeID int64) (bool, error) {
	var n int
	err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM zones
		WHERE city_id = ? AND name = ? AND id <> ?`, cityID, name, excludeID).Scan(&n)
	if err != nil {
		return false, mapReadError("zone", err)
	}
	return n > 0, nil
}

func (r ZoneRepo) Create(z models.Zone) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO zones (country_id, city_id, name, delivery_fee, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, NOW(), NOW())`,
		z.CountryID, z.CityID, z.Name, z.DeliveryFee, z.IsActive)
	if err != nil {
		return 0, mapWriteError("zone", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r ZoneRepo) Update(z models.Zone) error {
	_, err := r.DB.Exec(`
		UPDATE zones SET name = ?, delivery_fee = ?, is_active = ?, updated_at = NOW()
		WHERE id = ?`,
		z.Name, z.DeliveryFee, z.IsActive, z.ID)
	return mapWriteError("zone", err)
}

func (r ZoneRepo) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM zones WHERE id = ?`, id)
	return mapWriteError("zone", err)
}
