package catalog

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/servererrors"
	"github.com/sowmyavarshini/Inventory-Management-System/internal/storage"
)

// Store keeps brands and categories. Both tables share the shape
// (id, unique name), so every query is built from a table descriptor.
type Store struct {
	db *sql.DB
}

type table struct {
	name     string
	idColumn string
	nameCol  string
}

var (
	brandsTable     = table{name: "brands", idColumn: "brand_id", nameCol: "brand_name"}
	categoriesTable = table{name: "categories", idColumn: "category_id", nameCol: "category_name"}
)

func NewStore(db *sql.DB) *Store {
	return &Store{
		db: db,
	}
}

func (s *Store) BrandExists(ctx context.Context, brandID int64) (bool, error) {
	return s.exists(ctx, brandsTable, brandID)
}

func (s *Store) CategoryExists(ctx context.Context, categoryID int64) (bool, error) {
	return s.exists(ctx, categoriesTable, categoryID)
}

func (s *Store) exists(ctx context.Context, t table, id int64) (bool, error) {
	query, args, err := storage.Builder.
		Select("1").
		Prefix("SELECT EXISTS (").
		From(t.name).
		Where(squirrel.Eq{t.idColumn: id}).
		Suffix(")").
		ToSql()
	if err != nil {
		return false, err
	}

	var exists bool
	err = storage.RunnerFrom(ctx, s.db).QueryRowContext(ctx, query, args...).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to look up %s in catalog store: %w", t.name, err)
	}

	return exists, nil
}

func (s *Store) insert(ctx context.Context, t table, name string) (int64, error) {
	query, args, err := storage.Builder.
		Insert(t.name).
		Columns(t.nameCol).
		Values(name).
		Suffix("RETURNING " + t.idColumn).
		ToSql()
	if err != nil {
		return 0, err
	}

	var id int64
	err = storage.RunnerFrom(ctx, s.db).QueryRowContext(ctx, query, args...).Scan(&id)
	if err != nil {
		if storage.IsUniqueViolation(err) {
			return 0, fmt.Errorf("%w: %q already exists", servererrors.ErrDuplicateEntry, name)
		}

		return 0, fmt.Errorf("failed to insert into %s in catalog store: %w", t.name, err)
	}

	return id, nil
}

func (s *Store) list(ctx context.Context, t table, scan func(id int64, name string)) error {
	query, args, err := storage.Builder.
		Select(t.idColumn, t.nameCol).
		From(t.name).
		OrderBy(t.idColumn).
		ToSql()
	if err != nil {
		return err
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to list %s from catalog store: %w", t.name, err)
	}
	defer rows.Close()

	for rows.Next() {
		var (
			id   int64
			name string
		)
		if err := rows.Scan(&id, &name); err != nil {
			return fmt.Errorf("failed to scan %s from catalog store: %w", t.name, err)
		}
		scan(id, name)
	}

	return rows.Err()
}

func (s *Store) createBrand(ctx context.Context, brand *Brand) error {
	id, err := s.insert(ctx, brandsTable, brand.BrandName)
	if err != nil {
		return err
	}

	brand.BrandID = id
	return nil
}

func (s *Store) createCategory(ctx context.Context, category *Category) error {
	id, err := s.insert(ctx, categoriesTable, category.CategoryName)
	if err != nil {
		return err
	}

	category.CategoryID = id
	return nil
}

func (s *Store) findAllBrands(ctx context.Context) ([]*Brand, error) {
	var brands []*Brand
	err := s.list(ctx, brandsTable, func(id int64, name string) {
		brands = append(brands, &Brand{BrandID: id, BrandName: name})
	})

	return brands, err
}

func (s *Store) findAllCategories(ctx context.Context) ([]*Category, error) {
	var categories []*Category
	err := s.list(ctx, categoriesTable, func(id int64, name string) {
		categories = append(categories, &Category{CategoryID: id, CategoryName: name})
	})

	return categories, err
}
