package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/NicolasBroyad/machine-dumping-api/internal/domain"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain/entity"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain/repository"
)

var _ repository.ProductRepository = (*ProductRepo)(nil)

// ProductRepo implementación del puerto ProductRepository sobre PostgreSQL.
// Acepta Querier para poder atarse a una transacción.
type ProductRepo struct {
	db Querier
}

// NewProductRepository construye el adaptador de productos.
func NewProductRepository(db Querier) *ProductRepo {
	return &ProductRepo{db: db}
}

// Create persiste un producto. ErrDuplicate si el barcode ya existe en el entorno.
func (r *ProductRepo) Create(ctx context.Context, p *entity.Product) error {
	query := `
		INSERT INTO products (id, environment_id, name, price, barcode, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.db.Exec(ctx, query,
		p.ID, p.EnvironmentID, p.Name, p.Price, p.Barcode, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

// GetByID obtiene un producto por ID. Devuelve nil sin error si no existe.
func (r *ProductRepo) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	query := `
		SELECT id, environment_id, name, price, barcode, created_at, updated_at
		FROM products WHERE id = $1`
	var p entity.Product
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID, &p.EnvironmentID, &p.Name, &p.Price, &p.Barcode, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get product by id: %w", err)
	}
	return &p, nil
}

// ListByEnvironment lista el catálogo de un entorno, más reciente primero.
func (r *ProductRepo) ListByEnvironment(ctx context.Context, environmentID string) ([]*entity.Product, error) {
	query := `
		SELECT id, environment_id, name, price, barcode, created_at, updated_at
		FROM products WHERE environment_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, environmentID)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	defer rows.Close()
	var list []*entity.Product
	for rows.Next() {
		var p entity.Product
		if err := rows.Scan(&p.ID, &p.EnvironmentID, &p.Name, &p.Price, &p.Barcode, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// Update actualiza nombre y precio. No toca el barcode ni el entorno.
func (r *ProductRepo) Update(ctx context.Context, p *entity.Product) error {
	query := `
		UPDATE products SET name = $2, price = $3, updated_at = $4
		WHERE id = $1`
	_, err := r.db.Exec(ctx, query, p.ID, p.Name, p.Price, p.UpdatedAt)
	if err != nil {
		return fmt.Errorf("update product: %w", err)
	}
	return nil
}

// Delete elimina un producto por ID. Los registros ya creados conservan su
// foto de precio (products_id en registers queda con ON DELETE SET NULL).
func (r *ProductRepo) Delete(ctx context.Context, id string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete product: %w", err)
	}
	return nil
}

// FindByBarcodeForClient busca el barcode solo dentro de los entornos a los
// que el cliente está unido. Puede devolver varias filas: el mismo barcode
// puede existir en más de un entorno.
func (r *ProductRepo) FindByBarcodeForClient(ctx context.Context, barcode, clientID string) ([]repository.ScannedProductResult, error) {
	query := `
		SELECT p.id, p.name, p.price, p.barcode, p.environment_id, e.name AS environment_name
		FROM products p
		JOIN environments e ON e.id = p.environment_id
		JOIN memberships m ON m.environment_id = p.environment_id
		WHERE p.barcode = $1 AND m.client_id = $2
		ORDER BY e.name ASC, p.id ASC`
	rows, err := r.db.Query(ctx, query, barcode, clientID)
	if err != nil {
		return nil, fmt.Errorf("find product by barcode: %w", err)
	}
	defer rows.Close()
	var list []repository.ScannedProductResult
	for rows.Next() {
		var row repository.ScannedProductResult
		if err := rows.Scan(&row.ID, &row.Name, &row.Price, &row.Barcode, &row.EnvironmentID, &row.EnvironmentName); err != nil {
			return nil, fmt.Errorf("scan scanned product: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
