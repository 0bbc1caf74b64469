package customer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/servererrors"
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

func (s *store) createOne(ctx context.Context, customer *Customer) error {
	query, args, err := storage.Builder.
		Insert("customers").
		Columns("username", "password_hash", "email", "city_id", "state_id", "country_id").
		Values(
			customer.Username,
			customer.PasswordHash,
			customer.Email,
			customer.CityID,
			customer.StateID,
			customer.CountryID,
		).
		Suffix("RETURNING customer_id").
		ToSql()
	if err != nil {
		return err
	}

	err = s.db.QueryRowContext(ctx, query, args...).Scan(&customer.CustomerID)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return fmt.Errorf("%w: username or email already registered", servererrors.ErrDuplicateEntry)
		}

		return fmt.Errorf("failed to insert new customer in customer store: %w", err)
	}

	return nil
}

func (s *store) findByUsername(ctx context.Context, username string) (*Customer, error) {
	query, args, err := storage.Builder.
		Select("customer_id", "username", "password_hash", "email", "city_id", "state_id", "country_id").
		From("customers").
		Where(squirrel.Eq{"username": username}).
		ToSql()
	if err != nil {
		return nil, err
	}

	customer := new(Customer)
	err = s.db.QueryRowContext(ctx, query, args...).Scan(
		&customer.CustomerID,
		&customer.Username,
		&customer.PasswordHash,
		&customer.Email,
		&customer.CityID,
		&customer.StateID,
		&customer.CountryID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: user not found", servererrors.ErrResourceNotFound)
		}

		return nil, fmt.Errorf("failed to scan customer from customer store: %w", err)
	}

	return customer, nil
}

func (s *store) existsBy(ctx context.Context, table, column, value string) (bool, error) {
	query, args, err := storage.Builder.
		Select("1").
		Prefix("SELECT EXISTS (").
		From(table).
		Where(squirrel.Eq{column: value}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, err
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check %s.%s in customer store: %w", table, column, err)
	}

	return exists, nil
}

func (s *store) existsByUsername(ctx context.Context, username string) (bool, error) {
	return s.existsBy(ctx, "customers", "username", username)
}

func (s *store) existsByEmail(ctx context.Context, email string) (bool, error) {
	return s.existsBy(ctx, "customers", "email", email)
}

func (s *store) locationExists(ctx context.Context, kind LocationKind, name string) (bool, error) {
	table, ok := locationTables[kind]
	if !ok {
		return false, fmt.Errorf("%w: unknown location kind %q", servererrors.ErrBadRequest, kind)
	}

	return s.existsBy(ctx, string(kind), table.nameColumn, name)
}

// findLocationID resolves a location name to its id.
func (s *store) findLocationID(ctx context.Context, kind LocationKind, name string) (int64, error) {
	table, ok := locationTables[kind]
	if !ok {
		return 0, fmt.Errorf("%w: unknown location kind %q", servererrors.ErrBadRequest, kind)
	}

	query, args, err := storage.Builder.
		Select(table.idColumn).
		From(string(kind)).
		Where(squirrel.Eq{table.nameColumn: name}).
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, fmt.Errorf("%w: %s %q not found", servererrors.ErrResourceNotFound, kind, name)
		}

		return 0, fmt.Errorf("failed to look up %s in customer store: %w", kind, err)
	}

	return id, nil
}
