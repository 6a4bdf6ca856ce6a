package repositories

import (
	"testing"

	"foodadmin/internal/domain/models"

	"github.com/DATA-DOG/go-sqlmock"
)

func sampleOrder(promoID *int64) models.Order {
	return models.Order{
		Code:            "AB12CD34",
		CountryID:       1,
		CityID:          5,
		StoreID:         3,
		CustomerName:    "Jane",
		CustomerPhone:   "0800",
		DeliveryAddress: "Main St 1",
		PaymentOptionID: 2,
		PromoCodeID:     promoID,
		Subtotal:        9400,
		Discount:        400,
		DeliveryFee:     600,
		Total:           9600,
		Status:          models.OrderPending,
		Items: []models.OrderItem{
			{ItemID: 1, Name: "Burger", UnitPrice: 3000, Quantity: 2, LineTotal: 7000},
			{ItemID: 2, Name: "Soda", UnitPrice: 800, Quantity: 3, LineTotal: 2400},
		},
	}
}

func TestOrderCreateWritesHeaderLinesAndPromoInOneTx(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	promoID := int64(8)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WillReturnResult(sqlmock.NewResult(21, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectExec("UPDATE promo_codes SET used_count").
		WithArgs(promoID).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	id, err := OrderRepo{DB: db}.Create(sampleOrder(&promoID))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if id != 21 {
		t.Fatalf("id = %d, want 21", id)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOrderCreateSkipsPromoCounterWithoutCode(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WillReturnResult(sqlmock.NewResult(22, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WillReturnResult(sqlmock.NewResult(2, 1))
	mock.ExpectCommit()

	if _, err := (OrderRepo{DB: db}).Create(sampleOrder(nil)); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOrderCreateRollsBackWhenALineFails(t *testing.T) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO orders").
		WillReturnResult(sqlmock.NewResult(23, 1))
	mock.ExpectExec("INSERT INTO order_items").
		WillReturnError(errSentinel{})
	mock.ExpectRollback()

	if _, err := (OrderRepo{DB: db}).Create(sampleOrder(nil)); err == nil {
		t.Fatalf("expected error when a line insert fails")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

type errSentinel struct{}

func (errSentinel) Error() string { return "line insert failed" }
