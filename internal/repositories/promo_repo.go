package repositories

import (
	"database/sql"

	"foodadmin/internal/access"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/query"
)

type PromoRepo struct {
	DB *sql.DB
}

type PromoFilter struct {
	Search   string
	Type     string
	IsActive *bool
	DateFrom string
	DateTo   string
}

var promoSortable = map[string]string{
	"id":        "promo_codes.id",
	"code":      "promo_codes.code",
	"starts_at": "promo_codes.starts_at",
	"ends_at":   "promo_codes.ends_at",
}

const promoColumns = `promo_codes.id, promo_codes.country_id, promo_codes.city_id,
	promo_codes.code, promo_codes.type, promo_codes.discount_amount, promo_codes.maximum_discount,
	DATE_FORMAT(promo_codes.starts_at, '%Y-%m-%d'), DATE_FORMAT(promo_codes.ends_at, '%Y-%m-%d'),
	promo_codes.max_uses, promo_codes.used_count, promo_codes.is_active`

func scanPromo(sc interface{ Scan(...any) error }) (models.PromoCode, error) {
	var (
		p       models.PromoCode
		cityID  sql.NullInt64
		maxDisc sql.NullInt64
		maxUses sql.NullInt64
	)
	err := sc.Scan(&p.ID, &p.CountryID, &cityID, &p.Code, &p.Type,
		&p.DiscountAmount, &maxDisc, &p.StartsAt, &p.EndsAt,
		&maxUses, &p.UsedCount, &p.IsActive)
	if err != nil {
		return models.PromoCode{}, err
	}
	p.CityID = int64Ptr(cityID)
	p.MaximumDiscount = int64Ptr(maxDisc)
	p.MaxUses = int64Ptr(maxUses)
	return p, nil
}

func (r PromoRepo) List(f PromoFilter, sc access.Scope, srt query.Sort, pg query.Page) ([]models.PromoCode, query.PageMeta, error) {
	// promo codes are country-wide: a null city row is visible to every
	// admin of the country
	spec := query.New("promo_codes", promoColumns).
		Search(f.Search, "promo_codes.code").
		EqualStr("promo_codes.type", f.Type).
		Bool("promo_codes.is_active", f.IsActive).
		DateFrom("promo_codes.starts_at", f.DateFrom).
		DateTo("promo_codes.ends_at", f.DateTo).
		Scope(sc, "promo_codes.country_id", "promo_codes.city_id", true)

	total, err := spec.Count(r.DB)
	if err != nil {
		return nil, query.PageMeta{}, err
	}

	rows, err := spec.Select(r.DB, promoSortable, srt, pg)
	if err != nil {
		return nil, query.PageMeta{}, err
	}
	defer rows.Close()

	list := []models.PromoCode{}
	for rows.Next() {
		p, err := scanPromo(rows)
		if err != nil {
			return nil, query.PageMeta{}, mapReadError("promo code", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, query.PageMeta{}, mapReadError("promo code", err)
	}
	return list, query.NewPageMeta(total, pg), nil
}

func (r PromoRepo) GetByID(id int64) (models.PromoCode, error) {
	row := r.DB.QueryRow(`SELECT `+promoColumns+` FROM promo_codes WHERE promo_codes.id = ? LIMIT 1`, id)
	p, err := scanPromo(row)
	if err != nil {
		return models.PromoCode{}, mapReadError("promo code", err)
	}
	return p, nil
}

// GetByCode resolves a redemption attempt within one country.
func (r PromoRepo) GetByCode(countryID int64, code string) (models.PromoCode, error) {
	row := r.DB.QueryRow(`
		SELECT `+promoColumns+` FROM promo_codes
		WHERE promo_codes.country_id = ? AND promo_codes.code = ? LIMIT 1`, countryID, code)
	p, err := scanPromo(row)
	if err != nil {
		return models.PromoCode{}, mapReadError("promo code", err)
	}
	return p, nil
}

func (r PromoRepo) CodeExists(countryID int64, code string, excludeID int64) (bool, error) {
	var n int
	err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM promo_codes
		WHERE country_id = ? AND code = ? AND id <> ?`, countryID, code, excludeID).Scan(&n)
	if err != nil {
		return false, mapReadError("promo code", err)
	}
	return n > 0, nil
}

func (r PromoRepo) Create(p models.PromoCode) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO promo_codes (country_id, city_id, code, type, discount_amount, maximum_discount,
			starts_at, ends_at, max_uses, used_count, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, NOW(), NOW())`,
		p.CountryID, NullInt64(p.CityID), p.Code, p.Type, p.DiscountAmount,
		NullInt64(p.MaximumDiscount), p.StartsAt, p.EndsAt, NullInt64(p.MaxUses), p.IsActive)
	if err != nil {
		return 0, mapWriteError("promo code", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r PromoRepo) Update(p models.PromoCode) error {
	_, err := r.DB.Exec(`
		UPDATE promo_codes SET city_id = ?, code = ?, type = ?, discount_amount = ?,
			maximum_discount = ?, starts_at = ?, ends_at = ?, max_uses = ?, is_active = ?, updated_at = NOW()
		WHERE id = ?`,
		NullInt64(p.CityID), p.Code, p.Type, p.DiscountAmount,
		NullInt64(p.MaximumDiscount), p.StartsAt, p.EndsAt, NullInt64(p.MaxUses), p.IsActive, p.ID)
	return mapWriteError("promo code", err)
}

func (r PromoRepo) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM promo_codes WHERE id = ?`, id)
	return mapWriteError("promo code", err)
}
