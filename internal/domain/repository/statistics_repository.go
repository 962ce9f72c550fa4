package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ClientTotalResult fila cruda del ranking de clientes de un entorno.
// Viene ya ordenada por la DB: total desc, primera compra asc, id asc.
// La posición 1-based la asigna el use case.
type ClientTotalResult struct {
	ClientID string
	Username string
	Total    decimal.Decimal // suma de fotos históricas de precio
	Compras  int
}

// ProductSalesResult fila cruda del ranking de productos de un entorno.
// Orden: count desc, primera venta asc, id asc.
type ProductSalesResult struct {
	ProductID      string
	Name           string
	Count          int
	TotalRecaudado decimal.Decimal
	PrecioUnitario decimal.Decimal // precio vigente del catálogo (informativo)
}

// ClientProductResult fila cruda de las compras de un cliente agrupadas por
// producto (productos favoritos). Orden: count desc, primera compra asc, id asc.
type ClientProductResult struct {
	ProductID      string
	Name           string
	Count          int
	TotalGastado   decimal.Decimal
	PrecioUnitario decimal.Decimal
}

// DayTotalResult fila cruda de la agregación por día calendario. Solo incluye
// días con actividad; el use case rellena con ceros los días vacíos de la ventana.
type DayTotalResult struct {
	Fecha   time.Time // medianoche local del día
	Total   decimal.Decimal
	Compras int
}

// StatisticsRepository define las consultas de solo lectura del motor de
// estadísticas. Toda suma monetaria se hace sobre registers.price (la foto
// histórica), nunca sobre products.price.
type StatisticsRepository interface {
	// ClientRanking devuelve el gasto acumulado por cliente en el entorno,
	// ordenado para asignar posiciones deterministas.
	ClientRanking(ctx context.Context, environmentID string) ([]ClientTotalResult, error)

	// ProductRanking devuelve las ventas por producto en el entorno,
	// ordenado por cantidad vendida.
	ProductRanking(ctx context.Context, environmentID string) ([]ProductSalesResult, error)

	// ClientProducts agrupa las compras de un cliente por producto dentro del
	// entorno (base de "producto favorito").
	ClientProducts(ctx context.Context, environmentID, clientID string) ([]ClientProductResult, error)

	// DailyTotals agrega por día calendario dentro de [from, until). Si clientID
	// no es vacío restringe a ese cliente (gastos); si es vacío agrega todo el
	// entorno (recaudado).
	DailyTotals(ctx context.Context, environmentID, clientID string, from, to time.Time) ([]DayTotalResult, error)
}
