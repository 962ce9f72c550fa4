package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateRegisterRequest entrada para registrar una compra escaneada.
type CreateRegisterRequest struct {
	ProductID     string `json:"productId" validate:"required,uuid"`
	EnvironmentID string `json:"environmentId" validate:"required,uuid"`
}

// RegisterProductRef referencia embebida al producto en el historial.
type RegisterProductRef struct {
	Name  string          `json:"name"`
	Price decimal.Decimal `json:"price"` // precio vigente, solo informativo
}

// RegisterEnvironmentRef referencia embebida al entorno.
type RegisterEnvironmentRef struct {
	Name string `json:"name"`
}

// RegisterUserRef referencia embebida al comprador (vista de la company).
type RegisterUserRef struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

// RegisterClientRef envoltorio {user:{...}} que espera la app.
type RegisterClientRef struct {
	User RegisterUserRef `json:"user"`
}

// ClientRegisterResponse una compra del historial del cliente. Price es la
// foto histórica tomada al momento de la compra.
type ClientRegisterResponse struct {
	ID          string                 `json:"id"`
	Datetime    time.Time              `json:"datetime"`
	Price       decimal.Decimal        `json:"price"`
	Product     RegisterProductRef     `json:"product"`
	Environment RegisterEnvironmentRef `json:"environment"`
}

// CompanyRegisterResponse una venta vista por la company.
type CompanyRegisterResponse struct {
	ID       string             `json:"id"`
	Datetime time.Time          `json:"datetime"`
	Price    decimal.Decimal    `json:"price"`
	Product  RegisterProductRef `json:"product"`
	Client   RegisterClientRef  `json:"client"`
}

// CreateRegisterResponse confirmación de compra registrada.
type CreateRegisterResponse struct {
	ID       string          `json:"id"`
	Datetime time.Time       `json:"datetime"`
	Price    decimal.Decimal `json:"price"`
	Points   int             `json:"points"` // puntos de la membresía tras la compra
}
