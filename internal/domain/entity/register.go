package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Register es un registro de compra inmutable: Cliente + Producto + Entorno.
// Price es la foto del precio del producto al momento de la compra; las
// ediciones posteriores del producto no alteran este valor y toda estadística
// histórica se calcula sobre él, nunca sobre Product.Price.
type Register struct {
	ID            string
	ClientID      string
	ProductID     string
	EnvironmentID string
	Price         decimal.Decimal
	Datetime      time.Time
}
