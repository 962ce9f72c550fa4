package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/NicolasBroyad/machine-dumping-api/internal/domain/entity"
)

// ClientRegisterResult fila cruda del historial de compras de un cliente.
type ClientRegisterResult struct {
	ID              string
	Datetime        time.Time
	Price           decimal.Decimal // foto histórica, no el precio vigente
	ProductName     string
	ProductPrice    decimal.Decimal // precio vigente del producto (informativo)
	EnvironmentName string
}

// CompanyRegisterResult fila cruda de las ventas vistas por la company.
type CompanyRegisterResult struct {
	ID           string
	Datetime     time.Time
	Price        decimal.Decimal
	ProductName  string
	ProductPrice decimal.Decimal
	Username     string
	Email        string
}

// RegisterRepository define el puerto de persistencia para el libro de
// compras. Los registros son inmutables: solo inserción y lectura.
type RegisterRepository interface {
	Create(ctx context.Context, register *entity.Register) error
	ListByClient(ctx context.Context, clientID string) ([]ClientRegisterResult, error)
	// ListByCompany lista las ventas de los entornos de la company;
	// environmentID vacío significa todos sus entornos.
	ListByCompany(ctx context.Context, companyID, environmentID string) ([]CompanyRegisterResult, error)
}
