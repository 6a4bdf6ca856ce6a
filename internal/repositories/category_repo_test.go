package repositories

import (
	"testing"

	"foodadmin/internal/access"
	"foodadmin/internal/domain"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/query"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
)

func TestCategoryGetByIDNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM categories").WithArgs(int64(42)).
		WillReturnRows(sqlmock.NewRows([]string{"id", "store_id", "name", "position", "store_name"}))

	_, err = CategoryRepo{DB: db}.GetByID(42)
	if !domain.IsNotFound(err) {
		t.Fatalf("expected NotFoundError for missing row, got %v", err)
	}
}

func TestCategoryCreateAppendsAtEndOfStore(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`INSERT INTO categories \(store_id, name, position`).
		WithArgs(int64(3), "Drinks", int64(3)).
		WillReturnResult(sqlmock.NewResult(11, 1))

	id, err := CategoryRepo{DB: db}.Create(models.Category{StoreID: 3, Name: "Drinks"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if id != 11 {
		t.Fatalf("id = %d, want 11", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCategoryItemCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM items WHERE category_id = \?`).
		WithArgs(int64(5)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(4))

	n, err := CategoryRepo{DB: db}.ItemCount(5)
	if err != nil {
		t.Fatalf("item count failed: %v", err)
	}
	if n != 4 {
		t.Fatalf("count = %d, want 4", n)
	}
}

func TestCategoryRepositionCallsProcedure(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectExec(`CALL reposition_category\(\?, \?\)`).
		WithArgs(int64(5), 2).
		WillReturnResult(sqlmock.NewResult(0, 1))

	if err := (CategoryRepo{DB: db}).Reposition(5, 2); err != nil {
		t.Fatalf("reposition failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCategoryUpdateIdempotent(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	// the second run writes the same values; MySQL reports 0 affected rows
	// and the update still counts as a success
	mock.ExpectExec("UPDATE categories SET name").
		WithArgs("Drinks", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("UPDATE categories SET name").
		WithArgs("Drinks", int64(5)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := CategoryRepo{DB: db}
	cat := models.Category{ID: 5, Name: "Drinks"}

	if err := repo.Update(cat); err != nil {
		t.Fatalf("first update failed: %v", err)
	}
	if err := repo.Update(cat); err != nil {
		t.Fatalf("identical second update failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestCategoryListBeyondLastPage(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM categories`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))
	mock.ExpectQuery("SELECT (.+) FROM categories").
		WithArgs(20, 160).
		WillReturnRows(sqlmock.NewRows([]string{
			"id", "store_id", "name", "position", "store_name", "item_count",
		}))

	list, meta, err := CategoryRepo{DB: db}.List(CategoryFilter{}, access.Scope{},
		query.Sort{Field: "position"}, query.Page{Page: 9, Limit: 20})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(list) != 0 {
		t.Fatalf("page past the end must be empty, got %d rows", len(list))
	}
	if meta.Total != 3 || meta.TotalPages != 1 || meta.Page != 9 || meta.Limit != 20 {
		t.Fatalf("meta must stay intact past the end, got %+v", meta)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestMapWriteErrorDuplicateEntry(t *testing.T) {
	err := mapWriteError("category", &mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})
	if !domain.IsConflict(err) {
		t.Fatalf("expected ConflictError for error 1062, got %v", err)
	}

	err = mapWriteError("category", &mysql.MySQLError{Number: 1213, Message: "Deadlock found"})
	if !domain.IsInternal(err) {
		t.Fatalf("expected InternalError for other driver errors, got %v", err)
	}

	if err := mapWriteError("category", nil); err != nil {
		t.Fatalf("nil must stay nil, got %v", err)
	}
}
