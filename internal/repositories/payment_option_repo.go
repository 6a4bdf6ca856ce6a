package repositories

import (
	"database/sql"

	"foodadmin/internal/access"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/query"
)

type PaymentOptionRepo struct {
	DB *sql.DB
}

type PaymentOptionFilter struct {
	Search   string
	Kind     string
	IsActive *bool
}

var paymentOptionSortable = map[string]string{
	"id":       "payment_options.id",
	"name":     "payment_options.name",
	"position": "payment_options.position",
}

const paymentOptionColumns = `payment_options.id, payment_options.country_id, payment_options.city_id,
	payment_options.name, payment_options.kind, payment_options.position, payment_options.is_active`

func scanPaymentOption(sc interface{ Scan(...any) error }) (models.PaymentOption, error) {
	var (
		p      models.PaymentOption
		cityID sql.NullInt64
	)
	err := sc.Scan(&p.ID, &p.CountryID, &cityID, &p.Name, &p.Kind, &p.Position, &p.IsActive)
	if err != nil {
		return models.PaymentOption{}, err
	}
	p.CityID = int64Ptr(cityID)
	return p, nil
}

func (r PaymentOptionRepo) List(f PaymentOptionFilter, sc access.Scope, srt query.Sort, pg query.Page) ([]models.PaymentOption, query.PageMeta, error) {
	spec := query.New("payment_options", paymentOptionColumns).
		Search(f.Search, "payment_options.name").
		EqualStr("payment_options.kind", f.Kind).
		Bool("payment_options.is_active", f.IsActive).
		Scope(sc, "payment_options.country_id", "payment_options.city_id", true)

	total, err := spec.Count(r.DB)
	if err != nil {
		return nil, query.PageMeta{}, err
	}

	rows, err := spec.Select(r.DB, paymentOptionSortable, srt, pg)
	if err != nil {
		return nil, query.PageMeta{}, err
	}
	defer rows.Close()

	list := []models.PaymentOption{}
	for rows.Next() {
		p, err := scanPaymentOption(rows)
		if err != nil {
			return nil, query.PageMeta{}, mapReadError("payment option", err)
		}
		list = append(list, p)
	}
	if err := rows.Err(); err != nil {
		return nil, query.PageMeta{}, mapReadError("payment option", err)
	}
	return list, query.NewPageMeta(total, pg), nil
}

func (r PaymentOptionRepo) GetByID(id int64) (models.PaymentOption, error) {
	row := r.DB.QueryRow(`SELECT `+paymentOptionColumns+` FROM payment_options WHERE payment_options.id = ? LIMIT 1`, id)
	p, err := scanPaymentOption(row)
	if err != nil {
		return models.PaymentOption{}, mapReadError("payment option", err)
	}
	return p, nil
}

func (r PaymentOptionRepo) NameExists(countryID int64, name string, excludeID int64) (bool, error) {
	var n int
	err := r.DB.QueryRow(`
		SELECT COUNT(*) FROM payment_options
		WHERE country_id = ? AND name = ? AND id <> ?`, countryID, name, excludeID).Scan(&n)
	if err != nil {
		return false, mapReadError("payment option", err)
	}
	return n > 0, nil
}

func (r PaymentOptionRepo) Create(p models.PaymentOption) (int64, error) {
	res, err := r.DB.Exec(`
		INSERT INTO payment_options (country_id, city_id, name, kind, position, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, COALESCE((SELECT MAX(q.position)+1 FROM payment_options q WHERE q.country_id = ?), 1), ?, NOW(), NOW())`,
		p.CountryID, NullInt64(p.CityID), p.Name, p.Kind, p.CountryID, p.IsActive)
	if err != nil {
		return 0, mapWriteError("payment option", err)
	}
	id, _ := res.LastInsertId()
	return id, nil
}

func (r PaymentOptionRepo) Update(p models.PaymentOption) error {
	_, err := r.DB.Exec(`
		UPDATE payment_options SET city_id = ?, name = ?, kind = ?, is_active = ?, updated_at = NOW()
		WHERE id = ?`,
		NullInt64(p.CityID), p.Name, p.Kind, p.IsActive, p.ID)
	return mapWriteError("payment option", err)
}

// Reposition runs the server-side shift-and-insert procedure as one call.
func (r PaymentOptionRepo) Reposition(id int64, position int) error {
	_, err := r.DB.Exec(`CALL reposition_payment_option(?, ?)`, id, position)
	return mapWriteError("payment option", err)
}

func (r PaymentOptionRepo) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM payment_options WHERE id = ?`, id)
	return mapWriteError("payment option", err)
}
