package repositories

import (
	"database/sql"

	"foodadmin/internal/access"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/query"
)

type RatingRepo struct {
	DB *sql.DB
}

type RatingFilter struct {
	Search   string
	StoreID  *int64
	Status   string
	ScoreMin *int64
	ScoreMax *int64
}

var ratingSortable = map[string]string{
	"id":         "ratings.id",
	"score":      "ratings.score",
	"created_at": "ratings.created_at",
}

const ratingColumns = `ratings.id, ratings.country_id, ratings.city_id, ratings.store_id, ratings.order_id,
	ratings.score, ratings.comment, ratings.status,
	DATE_FORMAT(ratings.created_at, '%Y-%m-%d %H:%i:%s'), stores.name`

func scanRating(sc interface{ Scan(...any) error }) (models.Rating, error) {
	var (
		rt      models.Rating
		cityID  sql.NullInt64
		orderID sql.NullInt64
	)
	err := sc.Scan(&rt.ID, &rt.CountryID, &cityID, &rt.StoreID, &orderID,
		&rt.Score, &rt.Comment, &rt.Status, &rt.CreatedAt, &rt.StoreName)
	if err != nil {
		return models.Rating{}, err
	}
	rt.CityID = int64Ptr(cityID)
	rt.OrderID = int64Ptr(orderID)
	return rt, nil
}

func (r RatingRepo) List(f RatingFilter, sc access.Scope, srt query.Sort, pg query.Page) ([]models.Rating, query.PageMeta, error) {
	spec := query.New("ratings", ratingColumns).
		Join("JOIN stores ON stores.id = ratings.store_id").
		Search(f.Search, "ratings.comment", "stores.name").
		Equal("ratings.store_id", f.StoreID).
		EqualStr("ratings.status", f.Status).
		Scope(sc, "ratings.country_id", "ratings.city_id", true)

	if f.ScoreMin != nil {
		spec.Where("ratings.score >= ?", *f.ScoreMin)
	}
	if f.ScoreMax != nil {
		spec.Where("ratings.score <= ?", *f.ScoreMax)
	}

	total, err := spec.Count(r.DB)
	if err != nil {
		return nil, query.PageMeta{}, err
	}

	rows, err := spec.Select(r.DB, ratingSortable, srt, pg)
	if err != nil {
		return nil, query.PageMeta{}, err
	}
	defer rows.Close()

	list := []models.Rating{}
	for rows.Next() {
		rt, err := scanRating(rows)
		if err != nil {
			return nil, query.PageMeta{}, mapReadError("rating", err)
		}
		list = append(list, rt)
	}
	if err := rows.Err(); err != nil {
		return nil, query.PageMeta{}, mapReadError("rating", err)
	}
	return list, query.NewPageMeta(total, pg), nil
}

func (r RatingRepo) GetByID(id int64) (models.Rating, error) {
	row := r.DB.QueryRow(`
		SELECT `+ratingColumns+`
		FROM ratings JOIN stores ON stores.id = ratings.store_id
		WHERE ratings.id = ? LIMIT 1`, id)
	rt, err := scanRating(row)
	if err != nil {
		return models.Rating{}, mapReadError("rating", err)
	}
	return rt, nil
}

func (r RatingRepo) Moderate(id int64, status models.RatingStatus) error {
	_, err := r.DB.Exec(`UPDATE ratings SET status = ?, updated_at = NOW() WHERE id = ?`, status, id)
	return mapWriteError("rating", err)
}

func (r RatingRepo) Delete(id int64) error {
	_, err := r.DB.Exec(`DELETE FROM ratings WHERE id = ?`, id)
	return mapWriteError("rating", err)
}
