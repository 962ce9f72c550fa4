package entity

import "time"

// Environment es un ámbito creado por una Company: contiene su propio
// catálogo de productos y su propio libro de compras. Los Clientes se unen
// a entornos para participar.
type Environment struct {
	ID        string
	Name      string
	CompanyID string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// PointsPerPurchase puntos otorgados a la membresía por cada compra registrada.
const PointsPerPurchase = 10

// Membership es la relación Cliente↔Entorno. Points vive en esta fila:
// al abandonar el entorno la fila se borra y los puntos se pierden,
// no se recalculan desde los registros.
type Membership struct {
	ID            string
	ClientID      string
	EnvironmentID string
	Points        int
	CreatedAt     time.Time
}
