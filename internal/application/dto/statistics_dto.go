package dto

import "github.com/shopspring/decimal"

// ── Estadísticas del cliente ─────────────────────────────────────────────────

// ProductoFavoritoDTO producto más comprado por el cliente en el entorno.
type ProductoFavoritoDTO struct {
	Name  string          `json:"name"`
	Count int             `json:"count"`
	Price decimal.Decimal `json:"price"` // precio unitario vigente
}

// RankingPosicionDTO posición del cliente en el ranking del entorno.
type RankingPosicionDTO struct {
	Posicion           int             `json:"posicion"`
	TotalParticipantes int             `json:"totalParticipantes"`
	Total              decimal.Decimal `json:"total"` // gasto histórico acumulado
}

// ClientStatisticsResponse resumen del dashboard del cliente. Ambos campos
// son null cuando el cliente aún no compró nada en el entorno.
type ClientStatisticsResponse struct {
	ProductoFavorito *ProductoFavoritoDTO `json:"productoFavorito"`
	RankingPosicion  *RankingPosicionDTO  `json:"rankingPosicion"`
}

// ── Estadísticas de la company ───────────────────────────────────────────────

// ProductoMasCompradoDTO producto líder en ventas del entorno.
type ProductoMasCompradoDTO struct {
	Name  string          `json:"name"`
	Count int             `json:"count"`
	Price decimal.Decimal `json:"price"`
}

// MayorCompradorDTO cliente que más gastó en el entorno.
type MayorCompradorDTO struct {
	Username string          `json:"username"`
	Total    decimal.Decimal `json:"total"`
	Compras  int             `json:"compras"`
}

// CompanyStatisticsResponse resumen del dashboard de la company. Con cero
// ventas devuelve totales en cero y punteros null.
type CompanyStatisticsResponse struct {
	TotalRecaudado      decimal.Decimal         `json:"totalRecaudado"`
	CantidadVendidos    int                     `json:"cantidadVendidos"`
	ProductoMasComprado *ProductoMasCompradoDTO `json:"productoMasComprado"`
	MayorComprador      *MayorCompradorDTO      `json:"mayorComprador"`
}

// ── Rankings ─────────────────────────────────────────────────────────────────

// RankingClienteItemDTO entrada del leaderboard de clientes. posicion es
// 1-based y densa.
type RankingClienteItemDTO struct {
	ClientID string          `json:"clientId"`
	Username string          `json:"username"`
	Total    decimal.Decimal `json:"total"`
	Compras  int             `json:"compras"`
	Posicion int             `json:"posicion"`
}

// RankingResponse leaderboard de clientes visto por un cliente.
type RankingResponse struct {
	EnvironmentID      string                  `json:"environmentId"`
	EnvironmentName    string                  `json:"environmentName"`
	CompanyName        string                  `json:"companyName"`
	TotalParticipantes int                     `json:"totalParticipantes"`
	Ranking            []RankingClienteItemDTO `json:"ranking"`
}

// RankingClientesCompanyResponse leaderboard de clientes visto por la company.
type RankingClientesCompanyResponse struct {
	EnvironmentID   string                  `json:"environmentId"`
	EnvironmentName string                  `json:"environmentName"`
	TotalClientes   int                     `json:"totalClientes"`
	TotalRecaudado  decimal.Decimal         `json:"totalRecaudado"`
	Ranking         []RankingClienteItemDTO `json:"ranking"`
}

// RankingProductoItemDTO entrada del leaderboard de productos.
type RankingProductoItemDTO struct {
	ProductID      string          `json:"productId"`
	Name           string          `json:"name"`
	Count          int             `json:"count"`
	TotalRecaudado decimal.Decimal `json:"totalRecaudado"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
	Posicion       int             `json:"posicion"`
}

// RankingProductosCompanyResponse leaderboard de productos de la company.
type RankingProductosCompanyResponse struct {
	EnvironmentID          string                   `json:"environmentId"`
	EnvironmentName        string                   `json:"environmentName"`
	TotalProductosVendidos int                      `json:"totalProductosVendidos"`
	TotalVentas            int                      `json:"totalVentas"`
	TotalRecaudado         decimal.Decimal          `json:"totalRecaudado"`
	Ranking                []RankingProductoItemDTO `json:"ranking"`
}

// ProductoFavoritoItemDTO entrada del detalle de productos favoritos del cliente.
type ProductoFavoritoItemDTO struct {
	ProductID      string          `json:"productId"`
	Name           string          `json:"name"`
	Count          int             `json:"count"`
	TotalGastado   decimal.Decimal `json:"totalGastado"`
	PrecioUnitario decimal.Decimal `json:"precioUnitario"`
	Posicion       int             `json:"posicion"`
}

// ProductosFavoritosResponse detalle de todos los productos comprados por el
// cliente en el entorno, ordenados por frecuencia.
type ProductosFavoritosResponse struct {
	EnvironmentID           string                    `json:"environmentId"`
	EnvironmentName         string                    `json:"environmentName"`
	TotalProductosDistintos int                       `json:"totalProductosDistintos"`
	TotalCompras            int                       `json:"totalCompras"`
	TotalGastado            decimal.Decimal           `json:"totalGastado"`
	ProductosFavoritos      []ProductoFavoritoItemDTO `json:"productosFavoritos"`
}

// ── Series por día ───────────────────────────────────────────────────────────

// GastoDiaDTO cubeta de un día calendario del timeline de gastos. La ventana
// completa viaja rellena: los días sin compras van con total 0.
type GastoDiaDTO struct {
	Fecha   string          `json:"fecha"` // YYYY-MM-DD
	Total   decimal.Decimal `json:"total"`
	Compras int             `json:"compras"`
}

// GastosPorDiaResponse timeline de gasto del cliente en el entorno.
type GastosPorDiaResponse struct {
	EnvironmentID     string          `json:"environmentId"`
	EnvironmentName   string          `json:"environmentName"`
	Periodo           string          `json:"periodo"`
	TotalGastado      decimal.Decimal `json:"totalGastado"`
	TotalCompras      int             `json:"totalCompras"`
	PromedioPorCompra decimal.Decimal `json:"promedioPorCompra"`
	PromedioPorDia    decimal.Decimal `json:"promedioPorDia"`
	DiasConCompras    int             `json:"diasConCompras"`
	DiaMaxGasto       *GastoDiaDTO    `json:"diaMaxGasto"`
	GastosPorDia      []GastoDiaDTO   `json:"gastosPorDia"`
}

// RecaudadoDiaDTO cubeta de un día del timeline de recaudación.
type RecaudadoDiaDTO struct {
	Fecha  string          `json:"fecha"`
	Total  decimal.Decimal `json:"total"`
	Ventas int             `json:"ventas"`
}

// RecaudadoPorDiaResponse timeline de recaudación del entorno (company).
type RecaudadoPorDiaResponse struct {
	EnvironmentID    string            `json:"environmentId"`
	EnvironmentName  string            `json:"environmentName"`
	Periodo          string            `json:"periodo"`
	TotalRecaudado   decimal.Decimal   `json:"totalRecaudado"`
	TotalVentas      int               `json:"totalVentas"`
	PromedioPorVenta decimal.Decimal   `json:"promedioPorVenta"`
	PromedioPorDia   decimal.Decimal   `json:"promedioPorDia"`
	DiasConVentas    int               `json:"diasConVentas"`
	DiaMaxRecaudado  *RecaudadoDiaDTO  `json:"diaMaxRecaudado"`
	RecaudadoPorDia  []RecaudadoDiaDTO `json:"recaudadoPorDia"`
}
