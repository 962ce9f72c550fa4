package postgres

import (
	"context"
	"fmt"

	"github.com/NicolasBroyad/machine-dumping-api/internal/domain/entity"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain/repository"
)

var _ repository.RegisterRepository = (*RegisterRepo)(nil)

// RegisterRepo implementación del puerto RegisterRepository sobre PostgreSQL.
// Acepta Querier para poder atarse a una transacción.
type RegisterRepo struct {
	db Querier
}

// NewRegisterRepository construye el adaptador del libro de compras.
func NewRegisterRepository(db Querier) *RegisterRepo {
	return &RegisterRepo{db: db}
}

// Create persiste un registro de compra con su foto de precio.
func (r *RegisterRepo) Create(ctx context.Context, reg *entity.Register) error {
	query := `
		INSERT INTO registers (id, client_id, product_id, environment_id, price, datetime)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.db.Exec(ctx, query,
		reg.ID, reg.ClientID, reg.ProductID, reg.EnvironmentID, reg.Price, reg.Datetime,
	)
	if err != nil {
		return fmt.Errorf("insert register: %w", err)
	}
	return nil
}

// ListByClient historial de compras del cliente, más reciente primero.
// LEFT JOIN sobre products: borrar un producto del catálogo no borra el
// historial, el registro conserva su foto de precio.
func (r *RegisterRepo) ListByClient(ctx context.Context, clientID string) ([]repository.ClientRegisterResult, error) {
	query := `
		SELECT rg.id, rg.datetime, rg.price,
		       COALESCE(p.name, 'Producto eliminado') AS product_name,
		       COALESCE(p.price, rg.price) AS product_price,
		       e.name AS environment_name
		FROM registers rg
		LEFT JOIN products p ON p.id = rg.product_id
		JOIN environments e ON e.id = rg.environment_id
		WHERE rg.client_id = $1
		ORDER BY rg.datetime DESC`
	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list registers by client: %w", err)
	}
	defer rows.Close()
	var list []repository.ClientRegisterResult
	for rows.Next() {
		var row repository.ClientRegisterResult
		if err := rows.Scan(&row.ID, &row.Datetime, &row.Price, &row.ProductName, &row.ProductPrice, &row.EnvironmentName); err != nil {
			return nil, fmt.Errorf("scan client register: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// ListByCompany ventas de los entornos de la company, más reciente primero.
// environmentID vacío significa todos los entornos de la company.
func (r *RegisterRepo) ListByCompany(ctx context.Context, companyID, environmentID string) ([]repository.CompanyRegisterResult, error) {
	query := `
		SELECT rg.id, rg.datetime, rg.price,
		       COALESCE(p.name, 'Producto eliminado') AS product_name,
		       COALESCE(p.price, rg.price) AS product_price,
		       u.name AS username, u.email
		FROM registers rg
		LEFT JOIN products p ON p.id = rg.product_id
		JOIN environments e ON e.id = rg.environment_id
		JOIN users u ON u.id = rg.client_id
		WHERE e.company_id = $1
		  AND ($2 = '' OR rg.environment_id = $2)
		ORDER BY rg.datetime DESC`
	rows, err := r.db.Query(ctx, query, companyID, environmentID)
	if err != nil {
		return nil, fmt.Errorf("list registers by company: %w", err)
	}
	defer rows.Close()
	var list []repository.CompanyRegisterResult
	for rows.Next() {
		var row repository.CompanyRegisterResult
		if err := rows.Scan(&row.ID, &row.Datetime, &row.Price, &row.ProductName, &row.ProductPrice, &row.Username, &row.Email); err != nil {
			return nil, fmt.Errorf("scan company register: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}
