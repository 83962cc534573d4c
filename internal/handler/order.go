package handler

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/shoplane/orders-api/internal/domain/order"
)

type addressJSON struct {
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

type createOrderRequest struct {
	UserID          string      `json:"user_id"`
	Items           []itemInput `json:"items"`
	ShippingAddress addressJSON `json:"shipping_address"`
}

type itemInput struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type orderItemJSON struct {
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	ProductSKU  string          `json:"product_sku"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Quantity    int             `json:"quantity"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

type orderJSON struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"order_number"`
	UserID          string          `json:"user_id"`
	Items           []orderItemJSON `json:"items"`
	Subtotal        decimal.Decimal `json:"subtotal"`
	TaxAmount       decimal.Decimal `json:"tax_amount"`
	ShippingCost    decimal.Decimal `json:"shipping_cost"`
	DiscountCode    string          `json:"discount_code,omitempty"`
	DiscountAmount  decimal.Decimal `json:"discount_amount"`
	Total           decimal.Decimal `json:"total"`
	Status          string          `json:"status"`
	PaymentStatus   string          `json:"payment_status"`
	TrackingNumber  string          `json:"tracking_number,omitempty"`
	ShippingAddress addressJSON     `json:"shipping_address"`
	CreatedAt       time.Time       `json:"created_at"`
	PaidAt          *time.Time      `json:"paid_at,omitempty"`
	ShippedAt       *time.Time      `json:"shipped_at,omitempty"`
	DeliveredAt     *time.Time      `json:"delivered_at,omitempty"`
	CancelledAt     *time.Time      `json:"cancelled_at,omitempty"`
}

func toOrderJSON(o *order.Order) orderJSON {
	items := make([]orderItemJSON, len(o.Items))
	for i, item := range o.Items {
		items[i] = orderItemJSON{
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			ProductSKU:  item.ProductSKU,
			UnitPrice:   item.UnitPrice,
			Quantity:    item.Quantity,
			Subtotal:    item.Subtotal,
		}
	}
	return orderJSON{
		ID:             o.ID,
		OrderNumber:    o.OrderNumber,
		UserID:         o.UserID,
		Items:          items,
		Subtotal:       o.Subtotal,
		TaxAmount:      o.TaxAmount,
		ShippingCost:   o.ShippingCost,
		DiscountCode:   o.DiscountCode,
		DiscountAmount: o.DiscountAmount,
		Total:          o.Total,
		Status:         string(o.Status),
		PaymentStatus:  string(o.PaymentStatus),
		TrackingNumber: o.TrackingNumber,
		ShippingAddress: addressJSON{
			Street:     o.ShippingAddress.Street,
			City:       o.ShippingAddress.City,
			State:      o.ShippingAddress.State,
			PostalCode: o.ShippingAddress.PostalCode,
			Country:    o.ShippingAddress.Country,
		},
		CreatedAt:   o.CreatedAt,
		PaidAt:      o.PaidAt,
		ShippedAt:   o.ShippedAt,
		DeliveredAt: o.DeliveredAt,
		CancelledAt: o.CancelledAt,
	}
}

// createOrder resolves catalog details for each requested product and
// delegates to the order service.
func (h *Handler) createOrder(w http.ResponseWriter, r *http.Request) {
	var req createOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	items := make([]order.OrderItem, len(req.Items))
	for i, in := range req.Items {
		p, err := h.products.GetProduct(r.Context(), in.ProductID)
		if err != nil {
			writeDomainError(w, r, err)
			return
		}
		items[i] = order.OrderItem{
			ProductID:   p.ID,
			ProductName: p.Name,
			ProductSKU:  p.SKU,
			UnitPrice:   p.Price,
			Quantity:    in.Quantity,
		}
	}

	o, err := h.orders.CreateOrder(r.Context(), order.CreateOrderRequest{
		UserID: req.UserID,
		Items:  items,
		ShippingAddress: order.Address{
			Street:     req.ShippingAddress.Street,
			City:       req.ShippingAddress.City,
			State:      req.ShippingAddress.State,
			PostalCode: req.ShippingAddress.PostalCode,
			Country:    req.ShippingAddress.Country,
		},
	})
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, toOrderJSON(o))
}

func (h *Handler) getOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.GetOrderByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderJSON(o))
}

func (h *Handler) listUserOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.orders.GetUserOrders(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}

	out := make([]orderJSON, len(orders))
	for i := range orders {
		out[i] = toOrderJSON(&orders[i])
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) confirmOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.ConfirmOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderJSON(o))
}

type processPaymentRequest struct {
	PaymentReference string `json:"payment_reference"`
}

func (h *Handler) processPayment(w http.ResponseWriter, r *http.Request) {
	var req processPaymentRequest
	if !decodeBody(w, r, &req) {
		return
	}

	o, err := h.orders.ProcessPayment(r.Context(), chi.URLParam(r, "id"), req.PaymentReference)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderJSON(o))
}

type shipOrderRequest struct {
	TrackingNumber string `json:"tracking_number"`
}

func (h *Handler) shipOrder(w http.ResponseWriter, r *http.Request) {
	var req shipOrderRequest
	if !decodeBody(w, r, &req) {
		return
	}

	o, err := h.orders.ShipOrder(r.Context(), chi.URLParam(r, "id"), req.TrackingNumber)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderJSON(o))
}

func (h *Handler) deliverOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.DeliverOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderJSON(o))
}

func (h *Handler) cancelOrder(w http.ResponseWriter, r *http.Request) {
	o, err := h.orders.CancelOrder(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderJSON(o))
}

type applyDiscountRequest struct {
	Code   string          `json:"code"`
	Amount decimal.Decimal `json:"amount"`
}

func (h *Handler) applyDiscount(w http.ResponseWriter, r *http.Request) {
	var req applyDiscountRequest
	if !decodeBody(w, r, &req) {
		return
	}

	o, err := h.orders.ApplyDiscount(r.Context(), chi.URLParam(r, "id"), req.Code, req.Amount)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrderJSON(o))
}

type orderTotalResponse struct {
	OrderID string          `json:"order_id"`
	Total   decimal.Decimal `json:"total"`
}

func (h *Handler) getOrderTotal(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	total, err := h.orders.GetOrderTotal(r.Context(), id)
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, orderTotalResponse{OrderID: id, Total: total})
}

type revenueResponse struct {
	TotalRevenue decimal.Decimal `json:"total_revenue"`
}

func (h *Handler) getRevenue(w http.ResponseWriter, r *http.Request) {
	revenue, err := h.orders.GetTotalRevenue(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, revenueResponse{TotalRevenue: revenue})
}

func (h *Handler) getOrderStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.orders.GetOrderStatistics(r.Context())
	if err != nil {
		writeDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
