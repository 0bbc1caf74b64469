package inventory

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/storage"
)

type store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *store {
	return &store{
		db: db,
	}
}

func (s *store) createMovement(ctx context.Context, movement *StockMovement) error {
	query, args, err := storage.Builder.
		Insert("stock_movements").
		Columns("product_id", "order_id", "delta", "stock_after", "reason").
		Values(movement.ProductID, movement.OrderID, movement.Delta, movement.StockAfter, movement.Reason).
		Suffix("RETURNING movement_id, recorded_at").
		ToSql()
	if err != nil {
		return err
	}

	err = s.db.QueryRowContext(ctx, query, args...).Scan(&movement.MovementID, &movement.RecordedAt)
	if err != nil {
		return fmt.Errorf(
			"failed to insert stock movement in inventory store: %w",
			err,
		)
	}

	return nil
}

func (s *store) findMovementsByProductID(ctx context.Context, productID int64) ([]*StockMovement, error) {
	query, args, err := storage.Builder.
		Select("movement_id", "product_id", "order_id", "delta", "stock_after", "reason", "recorded_at").
		From("stock_movements").
		Where(squirrel.Eq{"product_id": productID}).
		OrderBy("movement_id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf(
			"failed to get stock movements from inventory store: %w",
			err,
		)
	}
	defer rows.Close()

	var movements []*StockMovement
	for rows.Next() {
		var (
			movement StockMovement
			orderID  sql.NullInt64
		)

		err := rows.Scan(
			&movement.MovementID,
			&movement.ProductID,
			&orderID,
			&movement.Delta,
			&movement.StockAfter,
			&movement.Reason,
			&movement.RecordedAt,
		)
		if err != nil {
			return nil, fmt.Errorf(
				"failed to scan stock movement from inventory store: %w",
				err,
			)
		}

		if orderID.Valid {
			movement.OrderID = &orderID.Int64
		}
		movements = append(movements, &movement)
	}

	return movements, rows.Err()
}
