package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/brickyard-commerce/brickyard/internal/shared"
)

// Repository provides persistence for the product catalog.
type Repository interface {
	List(ctx context.Context, filters ListFilters) ([]Product, int, error)
	ListActiveIDs(ctx context.Context) ([]int64, error)
	Get(ctx context.Context, id int64) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, id int64, product Product) error
	Delete(ctx context.Context, id int64) error
}

type repository struct {
	db *pgxpool.Pool
}

// NewRepository builds the pgx-backed catalog repository.
func NewRepository(db *pgxpool.Pool) Repository {
	return &repository{db: db}
}

const productColumns = `id, sku, name, category_id, unit, base_price, quantity_slabs, dynamic_charges, is_active, created_at, updated_at`

func (r *repository) List(ctx context.Context, filters ListFilters) ([]Product, int, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE 1=1`
	countQuery := `SELECT COUNT(*) FROM products WHERE 1=1`
	args := []interface{}{}
	argCount := 0

	appendFilter := func(clause string, value interface{}) {
		argCount++
		placeholder := `$` + strconv.Itoa(argCount)
		query += ` AND ` + fmt.Sprintf(clause, placeholder)
		countQuery += ` AND ` + fmt.Sprintf(clause, placeholder)
		args = append(args, value)
	}

	if filters.CategoryID != nil {
		appendFilter(`category_id = %s`, *filters.CategoryID)
	}
	if filters.Search != "" {
		appendFilter(`(name ILIKE %[1]s OR sku ILIKE %[1]s)`, "%"+filters.Search+"%")
	}
	if filters.IsActive != nil {
		appendFilter(`is_active = %s`, *filters.IsActive)
	}

	var total int
	if err := r.db.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query += ` ORDER BY ` + sortOrder(filters.SortBy, filters.SortDir)

	if filters.Limit > 0 {
		argCount++
		query += ` LIMIT $` + strconv.Itoa(argCount)
		args = append(args, filters.Limit)

		argCount++
		query += ` OFFSET $` + strconv.Itoa(argCount)
		offset := (filters.Page - 1) * filters.Limit
		if offset < 0 {
			offset = 0
		}
		args = append(args, offset)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, 0, err
		}
		products = append(products, p)
	}
	return products, total, rows.Err()
}

func (r *repository) ListActiveIDs(ctx context.Context) ([]int64, error) {
	rows, err := r.db.Query(ctx, `SELECT id FROM products WHERE is_active ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (r *repository) Get(ctx context.Context, id int64) (Product, error) {
	row := r.db.QueryRow(ctx, `SELECT `+productColumns+` FROM products WHERE id = $1`, id)
	p, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, shared.ErrNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, product Product) (Product, error) {
	slabs, charges, err := marshalPricingColumns(product)
	if err != nil {
		return Product{}, err
	}
	now := time.Now()
	err = r.db.QueryRow(ctx,
		`INSERT INTO products (sku, name, category_id, unit, base_price, quantity_slabs, dynamic_charges, is_active, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10) RETURNING id`,
		product.SKU, product.Name, product.CategoryID, product.Unit, product.BasePrice, slabs, charges, product.IsActive, now, now,
	).Scan(&product.ID)
	if err != nil {
		return Product{}, err
	}
	product.CreatedAt = now
	product.UpdatedAt = now
	return product, nil
}

func (r *repository) Update(ctx context.Context, id int64, product Product) error {
	slabs, charges, err := marshalPricingColumns(product)
	if err != nil {
		return err
	}
	_, err = r.db.Exec(ctx,
		`UPDATE products SET sku = $1, name = $2, category_id = $3, unit = $4, base_price = $5, quantity_slabs = $6, dynamic_charges = $7, is_active = $8, updated_at = $9 WHERE id = $10`,
		product.SKU, product.Name, product.CategoryID, product.Unit, product.BasePrice, slabs, charges, product.IsActive, time.Now(), id,
	)
	return err
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	return err
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	var slabs, charges []byte
	err := row.Scan(&p.ID, &p.SKU, &p.Name, &p.CategoryID, &p.Unit, &p.BasePrice, &slabs, &charges, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return Product{}, err
	}
	if len(slabs) > 0 {
		if err := json.Unmarshal(slabs, &p.QuantitySlabs); err != nil {
			return Product{}, fmt.Errorf("decode quantity_slabs: %w", err)
		}
	}
	if len(charges) > 0 {
		var c Charges
		if err := json.Unmarshal(charges, &c); err != nil {
			return Product{}, fmt.Errorf("decode dynamic_charges: %w", err)
		}
		p.Charges = &c
	}
	return p, nil
}

func marshalPricingColumns(product Product) (slabs, charges []byte, err error) {
	if product.QuantitySlabs != nil {
		slabs, err = json.Marshal(product.QuantitySlabs)
		if err != nil {
			return nil, nil, fmt.Errorf("encode quantity_slabs: %w", err)
		}
	}
	if product.Charges != nil {
		charges, err = json.Marshal(product.Charges)
		if err != nil {
			return nil, nil, fmt.Errorf("encode dynamic_charges: %w", err)
		}
	}
	return slabs, charges, nil
}

func sortOrder(sortBy, sortDir string) string {
	dir := "ASC"
	if sortDir == "desc" {
		dir = "DESC"
	}
	switch sortBy {
	case "sku":
		return "sku " + dir
	case "name":
		return "name " + dir
	case "base_price":
		return "base_price " + dir
	case "created_at":
		return "created_at " + dir
	default:
		return "name " + dir
	}
}
