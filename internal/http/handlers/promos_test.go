package handlers

import (
	"net/http"
	"testing"

	"foodadmin/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func promoRow(cityID int64) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "country_id", "city_id", "code", "type", "discount_amount",
		"maximum_discount", "starts_at", "ends_at", "max_uses", "used_count", "is_active",
	}).AddRow(
		int64(3), int64(1), cityID, "SUMMER10", "percentage", int64(10),
		nil, "2026-01-01", "2026-12-31", nil, int64(0), true,
	)
}

func TestUpdatePromoCodeRejectsCityMoveOutsideScope(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// the fetch is the only statement; moving the code to a sibling city
	// must fail before any write
	mock.ExpectQuery("SELECT (.+) FROM promo_codes").WithArgs(int64(3)).
		WillReturnRows(promoRow(5))

	api := &API{DB: db}
	body := `{"countryId":1,"cityId":6,"code":"SUMMER10","type":"percentage","discountAmount":10,"startsAt":"2026-01-01","endsAt":"2026-12-31"}`
	c, w := putJSON(t, "/api/promo-codes/3", body,
		domain.Principal{ID: 4, Role: domain.RoleAdmin, CountryID: i64(1), CityID: i64(5)})
	c.Params = gin.Params{{Key: "id", Value: "3"}}

	api.UpdatePromoCode(c)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403: a city-5 admin moved the code into city 6", w.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database activity: %v", err)
	}
}

func TestUpdatePromoCodeAllowsOwnCity(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM promo_codes").WithArgs(int64(3)).
		WillReturnRows(promoRow(5))
	mock.ExpectQuery("SELECT (.+) FROM cities").WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "country_id", "name", "is_active", "country_name"}).
			AddRow(int64(5), int64(1), "Oslo", true, "Norway"))
	mock.ExpectQuery("SELECT COUNT(.+) FROM promo_codes").WithArgs(int64(1), "SUMMER10", int64(3)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("UPDATE promo_codes SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM promo_codes").WithArgs(int64(3)).
		WillReturnRows(promoRow(5))

	api := &API{DB: db}
	body := `{"countryId":1,"cityId":5,"code":"SUMMER10","type":"percentage","discountAmount":10,"startsAt":"2026-01-01","endsAt":"2026-12-31"}`
	c, w := putJSON(t, "/api/promo-codes/3", body,
		domain.Principal{ID: 4, Role: domain.RoleAdmin, CountryID: i64(1), CityID: i64(5)})
	c.Params = gin.Params{{Key: "id", Value: "3"}}

	api.UpdatePromoCode(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
