package postgres

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/shoplane/orders-api/internal/domain/order"
)

var _ order.Repository = (*OrderRepository)(nil)

// orderColumns is the canonical column list; every statement that returns
// an order row uses it so scanOrder stays in sync.
const orderColumns = `id, order_number, user_id, items, subtotal, tax_amount, shipping_cost,
	discount_code, discount_amount, total, status, payment_status, tracking_number,
	shipping_address, created_at, paid_at, shipped_at, delivered_at, cancelled_at`

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists a new order. Line items and the shipping address are
// serialized to JSONB.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	const q = `INSERT INTO orders (` + orderColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`

	_, err := r.pool.Exec(ctx, q,
		o.ID, o.OrderNumber, o.UserID,
		encodeItems(o.Items),
		o.Subtotal, o.TaxAmount, o.ShippingCost,
		o.DiscountCode, o.DiscountAmount, o.Total,
		string(o.Status), string(o.PaymentStatus), o.TrackingNumber,
		encodeAddress(o.ShippingAddress),
		o.CreatedAt, o.PaidAt, o.ShippedAt, o.DeliveredAt, o.CancelledAt,
	)
	if err != nil {
		return errors.Wrapf(err, "create order %q", o.ID)
	}

	return nil
}

// FindByID returns the order or order.ErrNotFound.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	return scanOrder(r.pool.QueryRow(ctx, q, id))
}

// FindByUserID returns the user's orders newest first. A user with no
// orders yields an empty slice.
func (r *OrderRepository) FindByUserID(ctx context.Context, userID string) ([]order.Order, error) {
	const q = `SELECT ` + orderColumns + ` FROM orders WHERE user_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q, userID)
	if err != nil {
		return nil, errors.Wrap(err, "query user orders")
	}
	defer rows.Close()

	orders := []order.Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *o)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate user orders")
	}

	return orders, nil
}

// UpdateStatus writes the new lifecycle status.
func (r *OrderRepository) UpdateStatus(ctx context.Context, id string, status order.Status) (*order.Order, error) {
	const q = `UPDATE orders SET status = $2 WHERE id = $1 RETURNING ` + orderColumns

	return scanOrder(r.pool.QueryRow(ctx, q, id, string(status)))
}

// UpdatePaymentStatus writes the payment outcome. paid_at is stamped the
// first time the status becomes PAID and never rewritten afterwards.
func (r *OrderRepository) UpdatePaymentStatus(ctx context.Context, id string, status order.PaymentStatus) (*order.Order, error) {
	const q = `UPDATE orders SET payment_status = $2,
			paid_at = CASE WHEN $2 = 'PAID' THEN COALESCE(paid_at, now()) ELSE paid_at END
		WHERE id = $1 RETURNING ` + orderColumns

	return scanOrder(r.pool.QueryRow(ctx, q, id, string(status)))
}

// MarkAsShipped records the SHIPPED transition with its tracking number.
func (r *OrderRepository) MarkAsShipped(ctx context.Context, id, trackingNumber string) (*order.Order, error) {
	const q = `UPDATE orders SET status = 'SHIPPED', shipped_at = now(), tracking_number = $2
		WHERE id = $1 RETURNING ` + orderColumns

	return scanOrder(r.pool.QueryRow(ctx, q, id, trackingNumber))
}

// MarkAsDelivered records the DELIVERED transition.
func (r *OrderRepository) MarkAsDelivered(ctx context.Context, id string) (*order.Order, error) {
	const q = `UPDATE orders SET status = 'DELIVERED', delivered_at = now()
		WHERE id = $1 RETURNING ` + orderColumns

	return scanOrder(r.pool.QueryRow(ctx, q, id))
}

// CancelOrder records the CANCELLED transition.
func (r *OrderRepository) CancelOrder(ctx context.Context, id string) (*order.Order, error) {
	const q = `UPDATE orders SET status = 'CANCELLED', cancelled_at = now()
		WHERE id = $1 RETURNING ` + orderColumns

	return scanOrder(r.pool.QueryRow(ctx, q, id))
}

// Update applies the discount fields and the recomputed total.
func (r *OrderRepository) Update(ctx context.Context, id string, fields order.UpdateFields) (*order.Order, error) {
	const q = `UPDATE orders SET discount_code = $2, discount_amount = $3, total = $4
		WHERE id = $1 RETURNING ` + orderColumns

	return scanOrder(r.pool.QueryRow(ctx, q, id, fields.DiscountCode, fields.DiscountAmount, fields.Total))
}

// NextOrderNumber returns the next value of the order number sequence.
func (r *OrderRepository) NextOrderNumber(ctx context.Context) (int64, error) {
	var seq int64
	if err := r.pool.QueryRow(ctx, `SELECT nextval('order_number_seq')`).Scan(&seq); err != nil {
		return 0, errors.Wrap(err, "next order number")
	}
	return seq, nil
}

// TotalRevenue sums the totals of PAID orders.
func (r *OrderRepository) TotalRevenue(ctx context.Context) (decimal.Decimal, error) {
	const q = `SELECT COALESCE(SUM(total), 0) FROM orders WHERE payment_status = 'PAID'`

	var total decimal.Decimal
	if err := r.pool.QueryRow(ctx, q).Scan(&total); err != nil {
		return decimal.Zero, errors.Wrap(err, "total revenue")
	}
	return total, nil
}

// OrderStats returns per-status order counts. Statuses with no orders are
// absent from the result.
func (r *OrderRepository) OrderStats(ctx context.Context) ([]order.StatusCount, error) {
	const q = `SELECT status, COUNT(*) FROM orders GROUP BY status ORDER BY status`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, errors.Wrap(err, "query order stats")
	}
	defer rows.Close()

	stats := []order.StatusCount{}
	for rows.Next() {
		var sc order.StatusCount
		var status string
		if err := rows.Scan(&status, &sc.Count); err != nil {
			return nil, errors.Wrap(err, "scan order stats")
		}
		sc.Status = order.Status(status)
		stats = append(stats, sc)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "iterate order stats")
	}

	return stats, nil
}

// scanOrder reads one order row. pgx.ErrNoRows maps to order.ErrNotFound.
func scanOrder(row pgx.Row) (*order.Order, error) {
	var (
		o             order.Order
		status        string
		paymentStatus string
		itemsJSON     []byte
		addressJSON   []byte
	)

	err := row.Scan(
		&o.ID, &o.OrderNumber, &o.UserID, &itemsJSON,
		&o.Subtotal, &o.TaxAmount, &o.ShippingCost,
		&o.DiscountCode, &o.DiscountAmount, &o.Total,
		&status, &paymentStatus, &o.TrackingNumber,
		&addressJSON,
		&o.CreatedAt, &o.PaidAt, &o.ShippedAt, &o.DeliveredAt, &o.CancelledAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, errors.Wrap(err, "scan order")
	}

	o.Status = order.Status(status)
	o.PaymentStatus = order.PaymentStatus(paymentStatus)

	if o.Items, err = decodeItems(itemsJSON); err != nil {
		return nil, err
	}
	if o.ShippingAddress, err = decodeAddress(addressJSON); err != nil {
		return nil, err
	}

	return &o, nil
}
