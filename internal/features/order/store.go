package order

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/servererrors"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/storage"
)

var orderColumns = []string{
	"order_id",
	"ordered_quantity",
	"ordered_date",
	"delivery_date",
	"product_id",
}

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) FindByID(ctx context.Context, orderID int64) (*Order, error) {
	query, args, err := storage.Builder.
		Select(orderColumns...).
		From("order_details").
		Where(squirrel.Eq{"order_id": orderID}).
		ToSql()
	if err != nil {
		return nil, err
	}

	order := new(Order)
	err = scanIntoOrder(storage.RunnerFrom(ctx, s.db).QueryRowContext(ctx, query, args...), order)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf(
				"%w: order not found with ID: %d",
				servererrors.ErrResourceNotFound,
				orderID,
			)
		}

		return nil, fmt.Errorf("failed to scan order from order store: %w", err)
	}

	return order, nil
}

// Save inserts order when it has no id yet. Otherwise only the quantity and
// product are written back: the dates of a placed order never change.
func (s *Store) Save(ctx context.Context, order *Order) error {
	runner := storage.RunnerFrom(ctx, s.db)

	if order.OrderID == 0 {
		query, args, err := storage.Builder.
			Insert("order_details").
			Columns("ordered_quantity", "ordered_date", "delivery_date", "product_id").
			Values(order.OrderedQuantity, order.OrderedDate, order.DeliveryDate, order.ProductID).
			Suffix("RETURNING order_id").
			ToSql()
		if err != nil {
			return err
		}

		if err := runner.QueryRowContext(ctx, query, args...).Scan(&order.OrderID); err != nil {
			return fmt.Errorf("failed to insert new order in order store: %w", err)
		}

		return nil
	}

	query, args, err := storage.Builder.
		Update("order_details").
		Set("ordered_quantity", order.OrderedQuantity).
		Set("product_id", order.ProductID).
		Where(squirrel.Eq{"order_id": order.OrderID}).
		ToSql()
	if err != nil {
		return err
	}

	result, err := runner.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order in order store: %w", err)
	}

	if affected, err := result.RowsAffected(); err == nil && affected == 0 {
		return fmt.Errorf(
			"%w: order not found with ID: %d",
			servererrors.ErrResourceNotFound,
			order.OrderID,
		)
	}

	return nil
}

func (s *Store) findAll(ctx context.Context) ([]*Order, error) {
	return s.findWhere(ctx, nil)
}

func (s *Store) findAllByProductID(ctx context.Context, productID int64) ([]*Order, error) {
	return s.findWhere(ctx, squirrel.Eq{"product_id": productID})
}

func (s *Store) findWhere(ctx context.Context, pred any) ([]*Order, error) {
	builder := storage.Builder.
		Select(orderColumns...).
		From("order_details").
		OrderBy("order_id")
	if pred != nil {
		builder = builder.Where(pred)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders from order store: %w", err)
	}
	defer rows.Close()

	var orders []*Order
	for rows.Next() {
		order := new(Order)
		if err := scanIntoOrder(rows, order); err != nil {
			return nil, fmt.Errorf("failed to scan order from order store: %w", err)
		}
		orders = append(orders, order)
	}

	return orders, rows.Err()
}

func (s *Store) customerExists(ctx context.Context, customerID int64) (bool, error) {
	query, args, err := storage.Builder.
		Select("1").
		Prefix("SELECT EXISTS (").
		From("customers").
		Where(squirrel.Eq{"customer_id": customerID}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, err
	}

	var exists bool
	err = storage.RunnerFrom(ctx, s.db).QueryRowContext(ctx, query, args...).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to look up customer in order store: %w", err)
	}

	return exists, nil
}

func (s *Store) createPayment(ctx context.Context, payment *Payment) error {
	query, args, err := storage.Builder.
		Insert("payment_details").
		Columns("payment_status", "payment_amount").
		Values(payment.PaymentStatus, payment.PaymentAmount).
		Suffix("RETURNING payment_id, payment_date").
		ToSql()
	if err != nil {
		return err
	}

	err = storage.RunnerFrom(ctx, s.db).
		QueryRowContext(ctx, query, args...).
		Scan(&payment.PaymentID, &payment.PaymentDate)
	if err != nil {
		return fmt.Errorf("failed to insert payment in order store: %w", err)
	}

	return nil
}

func (s *Store) linkCustomer(ctx context.Context, customerID, orderID, paymentID int64) error {
	query, args, err := storage.Builder.
		Insert("customer_order_details").
		Columns("customer_id", "order_id", "payment_id").
		Values(customerID, orderID, paymentID).
		ToSql()
	if err != nil {
		return err
	}

	if _, err := storage.RunnerFrom(ctx, s.db).ExecContext(ctx, query, args...); err != nil {
		if storage.IsUniqueViolation(err) {
			return fmt.Errorf("%w: order %d is already linked to a customer", servererrors.ErrDuplicateEntry, orderID)
		}

		return fmt.Errorf("failed to link customer order in order store: %w", err)
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIntoOrder(row rowScanner, order *Order) error {
	return row.Scan(
		&order.OrderID,
		&order.OrderedQuantity,
		&order.OrderedDate,
		&order.DeliveryDate,
		&order.ProductID,
	)
}
