package services

import (
	"testing"

	"foodadmin/internal/domain"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/repositories"

	"github.com/DATA-DOG/go-sqlmock"
)

func i64(v int64) *int64 { return &v }

func testCatalog() map[int64]models.Item {
	return map[int64]models.Item{
		1: {
			ID: 1, Name: "Burger", Price: 3000, IsAvailable: true,
			Options: []string{"no onion", "extra sauce"},
			Extras:  []models.ItemExtra{{Name: "cheese", Price: 500}},
		},
		2: {ID: 2, Name: "Soda", Price: 800, IsAvailable: true},
		3: {ID: 3, Name: "Soup", Price: 1500, IsAvailable: false},
	}
}

func TestPriceLinesComputesLineAndSubtotal(t *testing.T) {
	lines := []OrderLineInput{
		{ItemID: 1, Quantity: 2, Options: []string{"no onion"},
			Extras: []models.ItemExtra{{Name: "cheese", Price: 500}}},
		{ItemID: 2, Quantity: 3},
	}

	priced, subtotal, err := PriceLines(testCatalog(), lines)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	// (3000 + 500) * 2 = 7000, 800 * 3 = 2400
	if priced[0].LineTotal != 7000 {
		t.Fatalf("line 1 total = %d, want 7000", priced[0].LineTotal)
	}
	if priced[1].LineTotal != 2400 {
		t.Fatalf("line 2 total = %d, want 2400", priced[1].LineTotal)
	}
	if subtotal != 9400 {
		t.Fatalf("subtotal = %d, want 9400", subtotal)
	}
	if priced[0].UnitPrice != 3000 || priced[0].Name != "Burger" {
		t.Fatalf("line must snapshot the catalog item, got %+v", priced[0])
	}
}

func TestPriceLinesRejectsForeignItem(t *testing.T) {
	_, _, err := PriceLines(testCatalog(), []OrderLineInput{{ItemID: 99, Quantity: 1}})
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError for item outside the store, got %v", err)
	}
}

func TestPriceLinesRejectsUnavailableItem(t *testing.T) {
	_, _, err := PriceLines(testCatalog(), []OrderLineInput{{ItemID: 3, Quantity: 1}})
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError for unavailable item, got %v", err)
	}
}

func TestPriceLinesRejectsUnknownOption(t *testing.T) {
	_, _, err := PriceLines(testCatalog(), []OrderLineInput{
		{ItemID: 1, Quantity: 1, Options: []string{"gold leaf"}},
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError for option not on the menu, got %v", err)
	}
}

func TestPriceLinesRejectsTamperedExtraPrice(t *testing.T) {
	_, _, err := PriceLines(testCatalog(), []OrderLineInput{
		{ItemID: 1, Quantity: 1, Extras: []models.ItemExtra{{Name: "cheese", Price: 1}}},
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError for extra price mismatch, got %v", err)
	}
}

func TestPriceLinesRejectsUnknownExtra(t *testing.T) {
	_, _, err := PriceLines(testCatalog(), []OrderLineInput{
		{ItemID: 1, Quantity: 1, Extras: []models.ItemExtra{{Name: "truffle", Price: 500}}},
	})
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError for extra not on the menu, got %v", err)
	}
}

func orderRows(status models.OrderStatus) *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "code", "country_id", "city_id", "store_id",
		"customer_name", "customer_phone", "delivery_address",
		"payment_option_id", "promo_code_id", "driver_name",
		"subtotal", "discount", "delivery_fee", "total", "status",
		"created_at", "store_name", "payment_name",
	}).AddRow(
		int64(7), "AB12CD34", int64(1), int64(5), int64(3),
		"Jane", "0800", "Main St 1",
		int64(2), nil, "",
		int64(9400), int64(0), int64(600), int64(10000), string(status),
		"2026-08-01 10:00:00", "Burger Hub", "Cash",
	)
}

func emptyOrderItems() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "order_id", "item_id", "name", "unit_price", "quantity", "options", "extras", "line_total",
	})
}

func TestTransitionRejectsIllegalMove(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM orders").WithArgs(int64(7)).
		WillReturnRows(orderRows(models.OrderDelivered))
	mock.ExpectQuery("SELECT (.+) FROM order_items").WithArgs(int64(7)).
		WillReturnRows(emptyOrderItems())

	svc := OrderService{Orders: repositories.OrderRepo{DB: db}}
	p := domain.Principal{Role: domain.RoleSuperAdmin}

	_, err = svc.Transition(p, 7, models.OrderPreparing)
	if !domain.IsValidation(err) {
		t.Fatalf("expected ValidationError for delivered -> preparing, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTransitionUpdatesStatus(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM orders").WithArgs(int64(7)).
		WillReturnRows(orderRows(models.OrderPending))
	mock.ExpectQuery("SELECT (.+) FROM order_items").WithArgs(int64(7)).
		WillReturnRows(emptyOrderItems())
	mock.ExpectExec("UPDATE orders SET status").
		WithArgs("preparing", int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectQuery("SELECT (.+) FROM orders").WithArgs(int64(7)).
		WillReturnRows(orderRows(models.OrderPreparing))
	mock.ExpectQuery("SELECT (.+) FROM order_items").WithArgs(int64(7)).
		WillReturnRows(emptyOrderItems())

	svc := OrderService{Orders: repositories.OrderRepo{DB: db}}
	p := domain.Principal{Role: domain.RoleSuperAdmin}

	order, err := svc.Transition(p, 7, models.OrderPreparing)
	if err != nil {
		t.Fatalf("expected transition to succeed, got %v", err)
	}
	if order.Status != models.OrderPreparing {
		t.Fatalf("status = %s, want preparing", order.Status)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestTransitionDeniedOutsideScope(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectQuery("SELECT (.+) FROM orders").WithArgs(int64(7)).
		WillReturnRows(orderRows(models.OrderPending))
	mock.ExpectQuery("SELECT (.+) FROM order_items").WithArgs(int64(7)).
		WillReturnRows(emptyOrderItems())

	svc := OrderService{Orders: repositories.OrderRepo{DB: db}}
	p := domain.Principal{Role: domain.RoleAdmin, CountryID: i64(2)}

	_, err = svc.Transition(p, 7, models.OrderPreparing)
	if !domain.IsForbidden(err) {
		t.Fatalf("expected ForbiddenError for another country's order, got %v", err)
	}
}
