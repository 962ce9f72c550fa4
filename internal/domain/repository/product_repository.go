package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/NicolasBroyad/machine-dumping-api/internal/domain/entity"
)

// ScannedProductResult fila cruda de la resolución de un código de barras:
// producto más el nombre del entorno al que pertenece, para que el cliente
// pueda desambiguar cuando hay coincidencias en varios entornos.
type ScannedProductResult struct {
	ID              string
	Name            string
	Price           decimal.Decimal
	Barcode         string
	EnvironmentID   string
	EnvironmentName string
}

// ProductRepository define el puerto de persistencia para Product (DIP).
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	ListByEnvironment(ctx context.Context, environmentID string) ([]*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	Delete(ctx context.Context, id string) error

	// FindByBarcodeForClient busca el barcode solo dentro de los entornos a los
	// que el cliente está unido. Puede devolver cero, una o varias filas.
	FindByBarcodeForClient(ctx context.Context, barcode, clientID string) ([]ScannedProductResult, error)
}
