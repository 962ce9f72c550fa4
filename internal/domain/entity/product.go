package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto con código de barras dentro de un entorno.
// El barcode es único por entorno pero NO global: el mismo código puede
// existir en entornos distintos y el escaneo debe desambiguar.
type Product struct {
	ID            string
	EnvironmentID string
	Name          string
	Price         decimal.Decimal // precio de venta vigente (mutable)
	Barcode       string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
