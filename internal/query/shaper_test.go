package query

import (
	"testing"

	"foodadmin/internal/access"
	"foodadmin/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
)

func int64p(v int64) *int64 { return &v }
func boolp(v bool) *bool    { return &v }

func TestParsePageDefaultsAndCap(t *testing.T) {
	cases := []struct {
		page, limit         string
		wantPage, wantLimit int
	}{
		{"", "", 1, 20},
		{"0", "-5", 1, 20},
		{"3", "50", 3, 50},
		{"2", "9999", 2, 200},
		{"abc", "xyz", 1, 20},
	}
	for _, tc := range cases {
		pg := ParsePage(tc.page, tc.limit)
		if pg.Page != tc.wantPage || pg.Limit != tc.wantLimit {
			t.Fatalf("ParsePage(%q,%q) = %+v, want page=%d limit=%d",
				tc.page, tc.limit, pg, tc.wantPage, tc.wantLimit)
		}
	}
}

func TestPageOffset(t *testing.T) {
	pg := Page{Page: 4, Limit: 25}
	if got := pg.Offset(); got != 75 {
		t.Fatalf("offset = %d, want 75", got)
	}
}

func TestNewPageMetaCeil(t *testing.T) {
	meta := NewPageMeta(41, Page{Page: 2, Limit: 20})
	if meta.TotalPages != 3 {
		t.Fatalf("total pages = %d, want 3", meta.TotalPages)
	}
	if meta.Total != 41 || meta.Page != 2 || meta.Limit != 20 {
		t.Fatalf("unexpected meta %+v", meta)
	}

	empty := NewPageMeta(0, Page{Page: 1, Limit: 20})
	if empty.TotalPages != 0 {
		t.Fatalf("empty set should have 0 pages, got %d", empty.TotalPages)
	}
}

func TestSelectRejectsUnknownSortField(t *testing.T) {
	db, _, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	spec := New("stores", "stores.id")
	_, err = spec.Select(db, map[string]string{"name": "stores.name"},
		Sort{Field: "password_hash"}, Page{Page: 1, Limit: 20})
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError for unknown sort field, got %v", err)
	}
}

func TestSelectOrdersAndWindows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT stores\.id FROM stores WHERE stores\.country_id = \? ORDER BY stores\.name DESC, stores\.id DESC LIMIT \? OFFSET \?`).
		WithArgs(int64(1), 20, 20).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(9)))

	spec := New("stores", "stores.id").
		Scope(access.Scope{CountryID: int64p(1)}, "stores.country_id", "stores.city_id", false)

	rows, err := spec.Select(db, map[string]string{"name": "stores.name"},
		Sort{Field: "name", Desc: true}, Page{Page: 2, Limit: 20})
	if err != nil {
		t.Fatalf("select failed: %v", err)
	}
	rows.Close()

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestScopeCountryWideKeepsNullCityRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM banners WHERE banners\.country_id = \? AND \(banners\.city_id = \? OR banners\.city_id IS NULL\)`).
		WithArgs(int64(1), int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	spec := New("banners", "banners.id").
		Scope(access.Scope{CountryID: int64p(1), CityID: int64p(5)}, "banners.country_id", "banners.city_id", true)

	total, err := spec.Count(db)
	if err != nil {
		t.Fatalf("count failed: %v", err)
	}
	if total != 3 {
		t.Fatalf("total = %d, want 3", total)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestBoolFilterIsTriState(t *testing.T) {
	spec := New("stores", "stores.id").Bool("stores.is_active", nil)
	if len(spec.where) != 0 {
		t.Fatalf("nil bool must not add a predicate, got %v", spec.where)
	}

	spec = New("stores", "stores.id").Bool("stores.is_active", boolp(false))
	if len(spec.where) != 1 {
		t.Fatalf("explicit false must add a predicate")
	}
	if spec.args[0] != false {
		t.Fatalf("predicate arg = %v, want false", spec.args[0])
	}
}

func TestSearchMatchesAnyColumn(t *testing.T) {
	spec := New("stores", "stores.id").Search("Pizza", "stores.name", "stores.description")
	if len(spec.where) != 1 {
		t.Fatalf("expected one OR-combined clause, got %v", spec.where)
	}
	if spec.where[0] != "(LOWER(stores.name) LIKE ? OR LOWER(stores.description) LIKE ?)" {
		t.Fatalf("unexpected clause %q", spec.where[0])
	}
	if spec.args[0] != "%pizza%" || spec.args[1] != "%pizza%" {
		t.Fatalf("search args not lowercased: %v", spec.args)
	}
}
