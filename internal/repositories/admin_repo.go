package repositories

import (
	"database/sql"

	"foodadmin/internal/access"
	"foodadmin/internal/domain"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/query"
)

type AdminRepo struct {
	DB *sql.DB
}

type AdminFilter struct {
	Search string
	Role   string
	Status string
}

var adminSortable = map[string]string{
	"id":       "admins.id",
	"name":     "admins.name",
	"username": "admins.username",
	"role":     "admins.role",
}

const adminColumns = `admins.id, admins.name, admins.username, admins.email, admins.phone,
	admins.role, admins.country_id, admins.city_id, admins.status,
	COALESCE(countries.name,''), COALESCE(cities.name,'')`

const adminJoins = `LEFT JOIN countries ON countries.id = admins.country_id
	LEFT JOIN cities ON cities.id = admins.city_id`

func scanAdmin(sc interface{ Scan(...any) error }) (models.Admin, error) {
	var (
		a         models.Admin
		countryID sql.NullInt64
		cityID    sql.NullInt64
	)
	err := sc.Scan(&a.ID, &a.Name, &a.Username, &a.Email, &a.Phone,
		&a.Role, &countryID, &cityID, &a.Status, &a.CountryName, &a.CityName)
	if err != nil {
		return models.Admin{}, err
	}
	a.CountryID = int64Ptr(countryID)
	a.CityID = int64Ptr(cityID)
	return a, nil
}

func (r AdminRepo) List(f AdminFilter, sc access.Scope, srt query.Sort, pg query.Page) ([]models.Admin, query.PageMeta, error) {
	spec := query.New("admins", adminColumns).
		Join(adminJoins).
		Search(f.Search, "admins.name", "admins.username", "admins.email").
		EqualStr("admins.role", f.Role).
		EqualStr("admins.status", f.Status).
		Scope(sc, "admins.country_id", "admins.city_id", false)

	total, err := spec.Count(r.DB)
	if err != nil {
		return nil, query.PageMeta{}, err
	}

	rows, err := spec.Select(r.DB, adminSortable, srt, pg)
	if err != nil {
		return nil, query.PageMeta{}, err
	}
	defer rows.Close()

	list := []models.Admin{}
	for rows.Next() {
		a, err := scanAdmin(rows)
		if err != nil {
			return nil, query.PageMeta{}, mapReadError("admin", err)
		}
		list = append(list, a)
	}
	if err := rows.Err(); err != nil {
		return nil, query.PageMeta{}, mapReadError("admin", err)
	}
	return list, query.NewPageMeta(total, pg), nil
}

func (r AdminRepo) GetByID(id int64) (models.Admin, error) {
	row := r.DB.QueryRow(`
		SELECT `+adminColumns+`
		FROM admins `+adminJoins+`
		WHERE admins.id = ? LIMIT 1`, id)
	a, err := scanAdmin(row)
	if err != nil {
		return models.Admin{}, mapReadError("admin", err)
	}
	return a, nil
}

// GetForLogin also returns the stored bcrypt hash.
func (r AdminRepo) GetForLogin(login string) (models.Admin, string, error) {
	var (
		a         models.Admin
		hash      string
		countryID sql.NullInt64
		cityID    sql.NullInt64
	)
	err := r.DB.QueryRow(`
		SELECT id, name, username, email, phone, role, country_id, city_id, status, password_hash
		FROM admins
		WHERE username = ? OR email = ? LIMIT 1`, login, login).
		Scan(&a.ID, &a.Name, &a.Username, &a.Email, &a.Phone,
			&a.Role, &countryID, &cityID, &a.Status, &hash)
	if err != nil {
		return models.Admin{}, "", mapReadError("admin", err)
	}
	a.CountryID = int64Ptr(countryID)
	a.CityID = int64Ptr(cityID)
	return a, hash, nil
}

func (r AdminRepo) UsernameExists(username string, excludeID int64) (bool, error) {
	var n int
	err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM admins WHERE username = ? AND id <> ?`, username, excludeID).Scan(&n)
	if err != nil {
		return false, mapReadError("admin", err)
	}
	return n > 0, nil
}

func (r AdminRepo) Create(a models.Admin, passwordHash string) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO admins (name, username, email, phone, password_hash, role, country_id, city_id, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		a.Name, a.Username, a.Email, a.Phone, passwordHash,
		a.Role, NullInt64(a.CountryID), NullInt64(a.CityID), a.Status)
	if err != nil {
		return 0, mapWriteError("admin", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

// Update rewrites profile fields; the password only changes when a new hash
// is supplied.
func (r AdminRepo) Update(a models.Admin, passwordHash string) error {
	var err error
	if passwordHash != "" {
		_, err = r.DB.Exec(`
			UPDATE admins SET name = ?, username = ?, email = ?, phone = ?, password_hash = ?,
				role = ?, country_id = ?, city_id = ?, status = ?, updated_at = NOW()
			WHERE id = ?`,
			a.Name, a.Username, a.Email, a.Phone, passwordHash,
			a.Role, NullInt64(a.CountryID), NullInt64(a.CityID), a.Status, a.ID)
	} else {
		_, err = r.DB.Exec(`
			UPDATE admins SET name = ?, username = ?, email = ?, phone = ?,
				role = ?, country_id = ?, city_id = ?, status = ?, updated_at = NOW()
			WHERE id = ?`,
			a.Name, a.Username, a.Email, a.Phone,
			a.Role, NullInt64(a.CountryID), NullInt64(a.CityID), a.Status, a.ID)
	}
	return mapWriteError("admin", err)
}

func (r AdminRepo) Delete(id int64) error {
	res, err := r.DB.Exec(`DELETE FROM admins WHERE id = ?`, id)
	if err != nil {
		return mapWriteError("admin", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return domain.NotFoundError{Resource: "admin"}
	}
	return nil
}
