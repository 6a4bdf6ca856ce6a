package repositories

import (
	"database/sql"

	"foodadmin/internal/access"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/query"
)

type BannerRepo struct {
	DB *sql.DB
}

type BannerFilter struct {
	Search   string
	StoreID  *int64
	IsActive *bool
}

var bannerSortable = map[string]string{
	"id":       "banners.id",
	"title":    "banners.title",
	"position": "banners.position",
}

const bannerColumns = `banners.id, banners.country_id, banners.city_id, banners.store_id,
	banners.title, banners.image_url, banners.position, banners.is_active`

func scanBanner(sc interface{ Scan(...any) error }) (models.Banner, error) {
	var (
		b       models.Banner
		cityID  sql.NullInt64
		storeID sql.NullInt64
	)
	err := sc.Scan(&b.ID, &b.CountryID, &cityID, &storeID,
		&b.Title, &b.ImageURL, &b.Position, &b.IsActive)
	if err != nil {
		return models.Banner{}, err
	}
	b.CityID = int64Ptr(cityID)
	b.StoreID = int64Ptr(storeID)
	return b, nil
}

func (r BannerRepo) List(f BannerFilter, sc access.Scope, srt query.Sort, pg query.Page) ([]models.Banner, query.PageMeta, error) {
	spec := query.New("banners", bannerColumns).
		Search(f.Search, "banners.title").
		Equal("banners.store_id", f.StoreID).
		Bool("banners.is_active", f.IsActive).
		Scope(sc, "banners.country_id", "banners.city_id", true)

	total, err := spec.Count(r.DB)
	if err != nil {
		return nil, query.PageMeta{}, err
	}

	rows, err := spec.Select(r.DB, bannerSortable, srt, pg)
	if err != nil {
		return nil, query.PageMeta{}, err
	}
	defer rows.Close()

	list := []models.Banner{}
	for rows.Next() {
		b, err := scanBanner(rows)
		if err != nil {
			return nil, query.PageMeta{}, mapReadError("banner", err)
		}
		list = append(list, b)
	}
	if err := rows.Err(); err != nil {
		return nil, query.PageMeta{}, mapReadError("banner", err)
	}
	return list, query.NewPageMeta(total, pg), nil
}

func (r BannerRepo) GetByID(id int64) (models.Banner, error) {
	row := r.DB.QueryRow(`SELECT `+bannerColumns+` FROM banners WHERE banners.id = ? LIMIT 1`, id)
	b, err := scanBanner(row)
	if err != nil {
		return models.Banner{}, mapReadError("banner", err)
	}
	return b, nil
}

func (r BannerRepo) Create(b models.Banner) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO banners (country_id, city_id, store_id, title, image_url, position, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, COALESCE((SELECT MAX(q.position)+1 FROM banners q WHERE q.country_id = ?), 1), ?, NOW(), NOW())`,
		b.CountryID, NullInt64(b.CityID), NullInt64(b.StoreID),
		b.Title, b.ImageURL, b.CountryID, b.IsActive)
	if err != nil {
		return 0, mapWriteError("banner", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r BannerRepo) Update(b models.Banner) error {
	_, err := r.DB.Exec(`
		UPDATE banners SET city_id = ?, store_id = ?, title = ?, image_url = ?, is_active = ?, updated_at = NOW()
		WHERE id = ?`,
		NullInt64(b.CityID), NullInt64(b.StoreID), b.Title, b.ImageURL, b.IsActive, b.ID)
	return mapWriteError("banner", err)
}

func (r BannerRepo) Reposition(id int64, position int) error {
	_, err := r.DB.Exec(`CALL reposition_banner(?, ?)`, id, position)
	return mapWriteError("banner", err)
}

func (r BannerRepo) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM banners WHERE id = ?`, id)
	return mapWriteError("banner", err)
}
