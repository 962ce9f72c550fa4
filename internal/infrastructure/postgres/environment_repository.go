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

var _ repository.EnvironmentRepository = (*EnvironmentRepo)(nil)

// EnvironmentRepo implementación del puerto EnvironmentRepository sobre
// PostgreSQL. Acepta Querier para poder atarse a una transacción.
type EnvironmentRepo struct {
	db Querier
}

// NewEnvironmentRepository construye el adaptador de entornos.
func NewEnvironmentRepository(db Querier) *EnvironmentRepo {
	return &EnvironmentRepo{db: db}
}

// Create persiste un nuevo entorno.
func (r *EnvironmentRepo) Create(ctx context.Context, env *entity.Environment) error {
	query := `
		INSERT INTO environments (id, name, company_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, query, env.ID, env.Name, env.CompanyID, env.CreatedAt, env.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert environment: %w", err)
	}
	return nil
}

// GetByID obtiene un entorno por ID. Devuelve nil sin error si no existe.
func (r *EnvironmentRepo) GetByID(ctx context.Context, id string) (*entity.Environment, error) {
	query := `
		SELECT id, name, company_id, created_at, updated_at
		FROM environments WHERE id = $1`
	var e entity.Environment
	err := r.db.QueryRow(ctx, query, id).Scan(&e.ID, &e.Name, &e.CompanyID, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get environment by id: %w", err)
	}
	return &e, nil
}

// ListByCompany lista los entornos de una company, más reciente primero.
func (r *EnvironmentRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Environment, error) {
	query := `
		SELECT id, name, company_id, created_at, updated_at
		FROM environments WHERE company_id = $1 ORDER BY created_at DESC`
	rows, err := r.db.Query(ctx, query, companyID)
	if err != nil {
		return nil, fmt.Errorf("list environments: %w", err)
	}
	defer rows.Close()
	var list []*entity.Environment
	for rows.Next() {
		var e entity.Environment
		if err := rows.Scan(&e.ID, &e.Name, &e.CompanyID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan environment: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// ListAllWithCompany lista todos los entornos con el nombre de su company.
func (r *EnvironmentRepo) ListAllWithCompany(ctx context.Context) ([]repository.EnvironmentWithCompanyResult, error) {
	query := `
		SELECT e.id, e.name, u.name AS company_name
		FROM environments e
		JOIN users u ON u.id = e.company_id
		ORDER BY e.created_at DESC`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list all environments: %w", err)
	}
	defer rows.Close()
	var list []repository.EnvironmentWithCompanyResult
	for rows.Next() {
		var row repository.EnvironmentWithCompanyResult
		if err := rows.Scan(&row.ID, &row.Name, &row.CompanyName); err != nil {
			return nil, fmt.Errorf("scan environment with company: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// Join crea la membresía cliente-entorno con sus puntos iniciales.
func (r *EnvironmentRepo) Join(ctx context.Context, m *entity.Membership) error {
	query := `
		INSERT INTO memberships (id, client_id, environment_id, points, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.db.Exec(ctx, query, m.ID, m.ClientID, m.EnvironmentID, m.Points, m.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert membership: %w", err)
	}
	return nil
}

// Leave borra la membresía. ErrNotFound si el cliente no estaba unido.
func (r *EnvironmentRepo) Leave(ctx context.Context, clientID, environmentID string) error {
	tag, err := r.db.Exec(ctx,
		`DELETE FROM memberships WHERE client_id = $1 AND environment_id = $2`,
		clientID, environmentID,
	)
	if err != nil {
		return fmt.Errorf("delete membership: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetMembership obtiene la membresía. Devuelve nil sin error si no existe.
func (r *EnvironmentRepo) GetMembership(ctx context.Context, clientID, environmentID string) (*entity.Membership, error) {
	query := `
		SELECT id, client_id, environment_id, points, created_at
		FROM memberships WHERE client_id = $1 AND environment_id = $2`
	var m entity.Membership
	err := r.db.QueryRow(ctx, query, clientID, environmentID).Scan(
		&m.ID, &m.ClientID, &m.EnvironmentID, &m.Points, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get membership: %w", err)
	}
	return &m, nil
}

// ListJoinedByClient lista los entornos a los que el cliente está unido,
// con el nombre de la company y los puntos de cada membresía.
func (r *EnvironmentRepo) ListJoinedByClient(ctx context.Context, clientID string) ([]repository.JoinedEnvironmentResult, error) {
	query := `
		SELECT e.id, e.name, u.name AS company_name, m.points
		FROM memberships m
		JOIN environments e ON e.id = m.environment_id
		JOIN users u ON u.id = e.company_id
		WHERE m.client_id = $1
		ORDER BY m.created_at DESC`
	rows, err := r.db.Query(ctx, query, clientID)
	if err != nil {
		return nil, fmt.Errorf("list joined environments: %w", err)
	}
	defer rows.Close()
	var list []repository.JoinedEnvironmentResult
	for rows.Next() {
		var row repository.JoinedEnvironmentResult
		if err := rows.Scan(&row.ID, &row.Name, &row.CompanyName, &row.Points); err != nil {
			return nil, fmt.Errorf("scan joined environment: %w", err)
		}
		list = append(list, row)
	}
	return list, rows.Err()
}

// AddPoints suma puntos a la membresía y devuelve el total resultante.
// ErrNotFound si la membresía no existe.
func (r *EnvironmentRepo) AddPoints(ctx context.Context, clientID, environmentID string, points int) (int, error) {
	query := `
		UPDATE memberships SET points = points + $3
		WHERE client_id = $1 AND environment_id = $2
		RETURNING points`
	var total int
	err := r.db.QueryRow(ctx, query, clientID, environmentID, points).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("add points: %w", err)
	}
	return total, nil
}
