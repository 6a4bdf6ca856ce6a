package repositories

import (
	"database/sql"

	"foodadmin/internal/access"
	"foodadmin/internal/domain"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/query"
)

type OrderRepo struct {
	DB *sql.DB
}

type OrderFilter struct {
	Search   string
	StoreID  *int64
	Status   string
	DateFrom string
	DateTo   string
}

var orderSortable = map[string]string{
	"id":         "orders.id",
	"total":      "orders.total",
	"status":     "orders.status",
	"created_at": "orders.created_at",
}

const orderColumns = `orders.id, orders.code, orders.country_id, orders.city_id, orders.store_id,
	orders.customer_name, orders.customer_phone, orders.delivery_address,
	orders.payment_option_id, orders.promo_code_id, COALESCE(orders.driver_name,''),
	orders.subtotal, orders.discount, orders.delivery_fee, orders.total, orders.status,
	DATE_FORMAT(orders.created_at, '%Y-%m-%d %H:%i:%s'),
	stores.name, payment_options.name`

const orderJoins = `JOIN stores ON stores.id = orders.store_id
	JOIN payment_options ON payment_options.id = orders.payment_option_id`

func scanOrder(sc interface{ Scan(...any) error }) (models.Order, error) {
	var (
		o       models.Order
		promoID sql.NullInt64
	)
	err := sc.Scan(&o.ID, &o.Code, &o.CountryID, &o.CityID, &o.StoreID,
		&o.CustomerName, &o.CustomerPhone, &o.DeliveryAddress,
		&o.PaymentOptionID, &promoID, &o.DriverName,
		&o.Subtotal, &o.Discount, &o.DeliveryFee, &o.Total, &o.Status,
		&o.CreatedAt, &o.StoreName, &o.PaymentName)
	if err != nil {
		return models.Order{}, err
	}
	o.PromoCodeID = int64Ptr(promoID)
	return o, nil
}

func (r OrderRepo) List(f OrderFilter, sc access.Scope, srt query.Sort, pg query.Page) ([]models.Order, query.PageMeta, error) {
	spec := query.New("orders", orderColumns).
		Join(orderJoins).
		Search(f.Search, "orders.code", "orders.customer_name", "orders.customer_phone").
		Equal("orders.store_id", f.StoreID).
		EqualStr("orders.status", f.Status).
		DateFrom("orders.created_at", f.DateFrom).
		DateTo("orders.created_at", f.DateTo).
		Scope(sc, "orders.country_id", "orders.city_id", false)

	total, err := spec.Count(r.DB)
	if err != nil {
		return nil, query.PageMeta{}, err
	}

	rows, err := spec.Select(r.DB, orderSortable, srt, pg)
	if err != nil {
		return nil, query.PageMeta{}, err
	}
	defer rows.Close()

	list := []models.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, query.PageMeta{}, mapReadError("order", err)
		}
		list = append(list, o)
	}
	if err := rows.Err(); err != nil {
		return nil, query.PageMeta{}, mapReadError("order", err)
	}
	return list, query.NewPageMeta(total, pg), nil
}

func (r OrderRepo) GetByID(id int64) (models.Order, error) {
	row := r.DB.QueryRow(`
		SELECT `+orderColumns+`
		FROM orders `+orderJoins+`
		WHERE orders.id = ? LIMIT 1`, id)
	o, err := scanOrder(row)
	if err != nil {
		return models.Order{}, mapReadError("order", err)
	}

	items, err := r.getItems(id)
	if err != nil {
		return models.Order{}, err
	}
	o.Items = items
	return o, nil
}

func (r OrderRepo) getItems(orderID int64) ([]models.OrderItem, error) {
	rows, err := r.DB.Query(`
		SELECT id, order_id, item_id, name, unit_price, quantity, options, extras, line_total
		FROM order_items WHERE order_id = ? ORDER BY id ASC`, orderID)
	if err != nil {
		return nil, mapReadError("order items", err)
	}
	defer rows.Close()

	items := []models.OrderItem{}
	for rows.Next() {
		var (
			it      models.OrderItem
			options []byte
			extras  []byte
		)
		if err := rows.Scan(&it.ID, &it.OrderID, &it.ItemID, &it.Name,
			&it.UnitPrice, &it.Quantity, &options, &extras, &it.LineTotal); err != nil {
			return nil, mapReadError("order items", err)
		}
		it.Options = []string{}
		it.Extras = []models.ItemExtra{}
		decodeJSON(options, &it.Options)
		decodeJSON(extras, &it.Extras)
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, mapReadError("order items", err)
	}
	return items, nil
}

// Create writes the order row and its lines in one transaction and bumps the
// promo usage counter when a code was applied.
func (r OrderRepo) Create(o models.Order) (int64, error) {
	tx, err := r.DB.Begin()
	if err != nil {
		return 0, domain.InternalError{Msg: "begin order tx failed", Err: err}
	}
	defer tx.Rollback()

	res, err := tx.Exec(`
		INSERT INTO orders (code, country_id, city_id, store_id, customer_name, customer_phone,
			delivery_address, payment_option_id, promo_code_id, subtotal, discount, delivery_fee,
			total, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`,
		o.Code, o.CountryID, o.CityID, o.StoreID, o.CustomerName, o.CustomerPhone,
		o.DeliveryAddress, o.PaymentOptionID, NullInt64(o.PromoCodeID),
		o.Subtotal, o.Discount, o.DeliveryFee, o.Total, o.Status)
	if err != nil {
		return 0, mapWriteError("order", err)
	}
	orderID, _ := res.LastInsertId()

	for _, it := range o.Items {
		if _, err := tx.Exec(`
			INSERT INTO order_items (order_id, item_id, name, unit_price, quantity, options, extras, line_total)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
			orderID, it.ItemID, it.Name, it.UnitPrice, it.Quantity,
			encodeJSON(it.Options), encodeJSON(it.Extras), it.LineTotal); err != nil {
			return 0, mapWriteError("order items", err)
		}
	}

	if o.PromoCodeID != nil {
		if _, err := tx.Exec(`
			UPDATE promo_codes SET used_count = used_count + 1 WHERE id = ?`, *o.PromoCodeID); err != nil {
			return 0, mapWriteError("promo code", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, domain.InternalError{Msg: "commit order tx failed", Err: err}
	}
	return orderID, nil
}

func (r OrderRepo) UpdateStatus(id int64, status models.OrderStatus) error {
	_, err := r.DB.Exec(`UPDATE orders SET status = ?, updated_at = NOW() WHERE id = ?`, status, id)
	return mapWriteError("order", err)
}

func (r OrderRepo) AssignDriver(id int64, driver string) error {
	_, err := r.DB.Exec(`UPDATE orders SET driver_name = ?, updated_at = NOW() WHERE id = ?`, driver, id)
	return mapWriteError("order", err)
}
