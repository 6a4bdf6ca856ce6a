package handlers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"foodadmin/internal/config"
	"foodadmin/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gin-gonic/gin"
)

func i64(v int64) *int64 { return &v }

// putJSON builds a test context the way the auth middleware leaves it: body
// bound, id param set, principal attached.
func putJSON(t *testing.T, target, body string, p domain.Principal) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req := httptest.NewRequest(http.MethodPut, target, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set("principal", p)
	return c, w
}

func adminRow() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "username", "email", "phone",
		"role", "country_id", "city_id", "status", "country_name", "city_name",
	}).AddRow(
		int64(7), "Ola", "ola", "ola@example.com", "0800",
		"admin", int64(1), nil, "active", "Norway", "",
	)
}

func TestUpdateAdminRejectsRelocationOutsideScope(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// only the fetch runs; the handler must bail before any write
	mock.ExpectQuery("SELECT (.+) FROM admins").WithArgs(int64(7)).
		WillReturnRows(adminRow())

	api := &API{DB: db, Env: config.Env{}}
	body := `{"name":"Ola","username":"ola","email":"ola@example.com","role":"admin","countryId":2}`
	c, w := putJSON(t, "/api/admins/7", body,
		domain.Principal{ID: 2, Role: domain.RoleAdmin, CountryID: i64(1)})
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	api.UpdateAdmin(c)

	if w.Code != http.StatusForbidden {
		t.Fatalf("status = %d, want 403: a country-1 admin moved an account into country 2", w.Code)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unexpected database activity: %v", err)
	}
}

func TestUpdateAdminKeepsInScopeAssignment(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM admins").WithArgs(int64(7)).
		WillReturnRows(adminRow())
	mock.ExpectQuery("SELECT COUNT(.+) FROM admins").WithArgs("ola", int64(7)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectExec("UPDATE admins SET").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM admins").WithArgs(int64(7)).
		WillReturnRows(adminRow())

	api := &API{DB: db, Env: config.Env{}}
	body := `{"name":"Ola","username":"ola","email":"ola@example.com","role":"admin","countryId":1}`
	c, w := putJSON(t, "/api/admins/7", body,
		domain.Principal{ID: 2, Role: domain.RoleAdmin, CountryID: i64(1)})
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	api.UpdateAdmin(c)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200, body %s", w.Code, w.Body.String())
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
