package services

import (
	"fmt"
	"strings"
	"time"

	"foodadmin/internal/access"
	"foodadmin/internal/domain"
	"foodadmin/internal/domain/models"
	"foodadmin/internal/repositories"
	"foodadmin/internal/utils"

	"github.com/google/uuid"
)

type OrderLineInput struct {
	ItemID   int64              `json:"itemId" binding:"required"`
	Quantity int                `json:"quantity" binding:"required,min=1"`
	Options  []string           `json:"options"`
	Extras   []models.ItemExtra `json:"extras"`
}

type CreateOrderInput struct {
	StoreID         int64            `json:"storeId" binding:"required"`
	CustomerName    string           `json:"customerName" binding:"required"`
	CustomerPhone   string           `json:"customerPhone" binding:"required"`
	DeliveryAddress string           `json:"deliveryAddress" binding:"required"`
	PaymentOptionID int64            `json:"paymentOptionId" binding:"required"`
	PromoCode       string           `json:"promoCode"`
	Lines           []OrderLineInput `json:"lines" binding:"required,min=1"`
}

// OrderService runs the order-creation pipeline: store/payment/promo
// preconditions, catalog re-validation of every line, totals, discount, and
// the payment collaborator, then one transactional write.
type OrderService struct {
	Stores    repositories.StoreRepo
	Zones     repositories.ZoneRepo
	Items     repositories.ItemRepo
	Promos    repositories.PromoRepo
	Payments  repositories.PaymentOptionRepo
	Orders    repositories.OrderRepo
	Validator PaymentValidator
	RequestID string
	Now       func() time.Time
}

func (s OrderService) now() time.Time {
	if s.Now != nil {
		return s.Now()
	}
	return time.Now()
}

func (s OrderService) Create(p domain.Principal, in CreateOrderInput) (models.Order, error) {
	store, err := s.Stores.GetByID(in.StoreID)
	if err != nil {
		return models.Order{}, err
	}
	if !store.IsActive {
		return models.Order{}, domain.ValidationError{Field: "storeId", Msg: "store is not active"}
	}
	if store.IsBusy {
		return models.Order{}, domain.ValidationError{Field: "storeId", Msg: "store is busy and not taking orders"}
	}
	cityID := store.CityID
	if err := access.AuthorizeMutation(p, store.CountryID, &cityID, false); err != nil {
		return models.Order{}, err
	}

	payment, err := s.Payments.GetByID(in.PaymentOptionID)
	if err != nil {
		return models.Order{}, err
	}
	if !payment.IsActive {
		return models.Order{}, domain.ValidationError{Field: "paymentOptionId", Msg: "payment option is not active"}
	}
	if payment.CountryID != store.CountryID ||
		(payment.CityID != nil && *payment.CityID != store.CityID) {
		return models.Order{}, domain.ValidationError{Field: "paymentOptionId", Msg: "payment option is not offered in the store location"}
	}

	catalog, err := s.Items.GetStoreCatalog(store.ID)
	if err != nil {
		return models.Order{}, err
	}
	lines, subtotal, err := PriceLines(catalog, in.Lines)
	if err != nil {
		return models.Order{}, err
	}

	var (
		promoID  *int64
		discount int64
	)
	if code := utils.NormalizeCode(in.PromoCode); code != "" {
		promo, err := s.Promos.GetByCode(store.CountryID, code)
		if err != nil {
			if domain.IsNotFound(err) {
				return models.Order{}, domain.ValidationError{Field: "promoCode", Msg: "unknown promo code"}
			}
			return models.Order{}, err
		}
		if promo.CityID != nil && *promo.CityID != store.CityID {
			return models.Order{}, domain.ValidationError{Field: "promoCode", Msg: "promo code is not valid in the store city"}
		}
		if !promo.ActiveAt(s.now()) {
			return models.Order{}, domain.ValidationError{Field: "promoCode", Msg: "promo code is not redeemable"}
		}
		discount = promo.Discount(subtotal)
		promoID = &promo.ID
	}

	var deliveryFee int64
	if store.ZoneID != nil {
		zone, err := s.Zones.GetByID(*store.ZoneID)
		if err != nil {
			return models.Order{}, err
		}
		deliveryFee = zone.DeliveryFee
	}

	total := subtotal - discount + deliveryFee
	if err := s.Validator.ValidatePayment(payment.Kind, total); err != nil {
		return models.Order{}, err
	}

	order := models.Order{
		Code:            strings.ToUpper(uuid.NewString()[:8]),
		CountryID:       store.CountryID,
		CityID:          store.CityID,
		StoreID:         store.ID,
		CustomerName:    utils.TrimOrEmpty(in.CustomerName),
		CustomerPhone:   utils.TrimOrEmpty(in.CustomerPhone),
		DeliveryAddress: utils.TrimOrEmpty(in.DeliveryAddress),
		PaymentOptionID: payment.ID,
		PromoCodeID:     promoID,
		Subtotal:        subtotal,
		Discount:        discount,
		DeliveryFee:     deliveryFee,
		Total:           total,
		Status:          models.OrderPending,
		Items:           lines,
	}

	id, err := s.Orders.Create(order)
	if err != nil {
		return models.Order{}, err
	}
	utils.LogEvent(s.RequestID, "order", "create", fmt.Sprintf("order_id=%d total=%d", id, total))

	return s.Orders.GetByID(id)
}

// PriceLines re-validates every line against the store's current catalog and
// computes (unit price + extras) * quantity per line. Options must be
// currently offered; an extra must quote the exact catalog price so a stale
// client cannot tamper with it.
func PriceLines(catalog map[int64]models.Item, lines []OrderLineInput) ([]models.OrderItem, int64, error) {
	priced := make([]models.OrderItem, 0, len(lines))
	var subtotal int64

	for i, line := range lines {
		item, ok := catalog[line.ItemID]
		if !ok {
			return nil, 0, domain.ValidationError{Field: "lines", Msg: fmt.Sprintf("line %d: item does not belong to this store", i+1)}
		}
		if !item.IsAvailable {
			return nil, 0, domain.ValidationError{Field: "lines", Msg: fmt.Sprintf("line %d: %s is not available", i+1, item.Name)}
		}
		if line.Quantity < 1 {
			return nil, 0, domain.ValidationError{Field: "lines", Msg: fmt.Sprintf("line %d: quantity must be at least 1", i+1)}
		}

		for _, opt := range line.Options {
			if !item.OffersOption(opt) {
				return nil, 0, domain.ValidationError{Field: "lines", Msg: fmt.Sprintf("line %d: option %q is not offered", i+1, opt)}
			}
		}

		var extrasTotal int64
		for _, ex := range line.Extras {
			catalogExtra, ok := item.FindExtra(ex.Name)
			if !ok {
				return nil, 0, domain.ValidationError{Field: "lines", Msg: fmt.Sprintf("line %d: extra %q is not offered", i+1, ex.Name)}
			}
			if catalogExtra.Price != ex.Price {
				return nil, 0, domain.ValidationError{Field: "lines", Msg: fmt.Sprintf("line %d: extra %q price does not match the menu", i+1, ex.Name)}
			}
			extrasTotal += catalogExtra.Price
		}

		lineTotal := (item.Price + extrasTotal) * int64(line.Quantity)
		subtotal += lineTotal

		priced = append(priced, models.OrderItem{
			ItemID:    item.ID,
			Name:      item.Name,
			UnitPrice: item.Price,
			Quantity:  line.Quantity,
			Options:   line.Options,
			Extras:    line.Extras,
			LineTotal: lineTotal,
		})
	}
	return priced, subtotal, nil
}

// Transition moves an order along the fixed forward graph.
func (s OrderService) Transition(p domain.Principal, orderID int64, next models.OrderStatus) (models.Order, error) {
	order, err := s.Orders.GetByID(orderID)
	if err != nil {
		return models.Order{}, err
	}
	cityID := order.CityID
	if err := access.AuthorizeMutation(p, order.CountryID, &cityID, false); err != nil {
		return models.Order{}, err
	}
	if !next.Valid() {
		return models.Order{}, domain.ValidationError{Field: "status", Msg: "unknown status " + string(next)}
	}
	if !order.Status.CanTransitionTo(next) {
		return models.Order{}, domain.ValidationError{
			Field: "status",
			Msg:   fmt.Sprintf("cannot move order from %s to %s", order.Status, next),
		}
	}
	if err := s.Orders.UpdateStatus(orderID, next); err != nil {
		return models.Order{}, err
	}
	utils.LogEvent(s.RequestID, "order", "transition", fmt.Sprintf("order_id=%d status=%s", orderID, next))
	return s.Orders.GetByID(orderID)
}
