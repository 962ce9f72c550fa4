package repository

import (
	"context"

	"github.com/NicolasBroyad/machine-dumping-api/internal/domain/entity"
)

// EnvironmentWithCompanyResult fila cruda del listado público de entornos.
type EnvironmentWithCompanyResult struct {
	ID          string
	Name        string
	CompanyName string
}

// JoinedEnvironmentResult fila cruda de los entornos a los que un cliente está unido,
// con los puntos de la membresía.
type JoinedEnvironmentResult struct {
	ID          string
	Name        string
	CompanyName string
	Points      int
}

// EnvironmentRepository define el puerto de persistencia para Environment
// y la relación de membresía Cliente↔Entorno.
type EnvironmentRepository interface {
	Create(ctx context.Context, env *entity.Environment) error
	GetByID(ctx context.Context, id string) (*entity.Environment, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Environment, error)
	ListAllWithCompany(ctx context.Context) ([]EnvironmentWithCompanyResult, error)

	// Join crea la membresía. Devuelve domain.ErrDuplicate si ya existe.
	Join(ctx context.Context, m *entity.Membership) error
	// Leave borra la membresía (los puntos se pierden). Devuelve
	// domain.ErrNotFound si el cliente no estaba unido.
	Leave(ctx context.Context, clientID, environmentID string) error
	GetMembership(ctx context.Context, clientID, environmentID string) (*entity.Membership, error)
	ListJoinedByClient(ctx context.Context, clientID string) ([]JoinedEnvironmentResult, error)
	// AddPoints suma puntos a la membresía y devuelve el total resultante.
	AddPoints(ctx context.Context, clientID, environmentID string, points int) (int, error)
}
