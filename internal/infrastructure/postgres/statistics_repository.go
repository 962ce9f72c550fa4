package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/NicolasBroyad/machine-dumping-api/internal/domain/repository"
)

var _ repository.StatisticsRepository = (*StatisticsRepo)(nil)

// StatisticsRepo consultas de solo lectura del motor de estadísticas.
// Toda suma monetaria usa registers.price (la foto histórica del momento de
// la compra), nunca products.price.
type StatisticsRepo struct {
	pool *pgxpool.Pool
}

// NewStatisticsRepository construye el adaptador de estadísticas.
func NewStatisticsRepository(pool *pgxpool.Pool) *StatisticsRepo {
	return &StatisticsRepo{pool: pool}
}

// ClientRanking gasto acumulado por cliente en el entorno. El orden fija las
// posiciones: total desc, y en empate gana quien compró primero, luego el id.
func (r *StatisticsRepo) ClientRanking(ctx context.Context, environmentID string) ([]repository.ClientTotalResult, error) {
	const query = `
	SELECT
	    rg.client_id,
	    u.name              AS username,
	    SUM(rg.price)       AS total,
	    COUNT(*)            AS compras
	FROM registers rg
	JOIN users u ON u.id = rg.client_id
	WHERE rg.environment_id = $1
	GROUP BY rg.client_id, u.name
	ORDER BY total DESC, MIN(rg.datetime) ASC, rg.client_id ASC`

	rows, err := r.pool.Query(ctx, query, environmentID)
	if err != nil {
		return nil, fmt.Errorf("statistics.ClientRanking: %w", err)
	}
	defer rows.Close()

	var results []repository.ClientTotalResult
	for rows.Next() {
		var row repository.ClientTotalResult
		if err := rows.Scan(&row.ClientID, &row.Username, &row.Total, &row.Compras); err != nil {
			return nil, fmt.Errorf("statistics.ClientRanking scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ProductRanking ventas por producto del entorno, ordenado por cantidad.
// Agrupa por producto del registro, así que los productos borrados del
// catálogo siguen apareciendo con su histórico.
func (r *StatisticsRepo) ProductRanking(ctx context.Context, environmentID string) ([]repository.ProductSalesResult, error) {
	const query = `
	SELECT
	    COALESCE(rg.product_id::TEXT, 'deleted')        AS product_id,
	    COALESCE(p.name, 'Producto eliminado')          AS name,
	    COUNT(*)                                        AS count,
	    SUM(rg.price)                                   AS total_recaudado,
	    COALESCE(p.price, MAX(rg.price))                AS precio_unitario
	FROM registers rg
	LEFT JOIN products p ON p.id = rg.product_id
	WHERE rg.environment_id = $1
	GROUP BY rg.product_id, p.name, p.price
	ORDER BY count DESC, MIN(rg.datetime) ASC, product_id ASC`

	rows, err := r.pool.Query(ctx, query, environmentID)
	if err != nil {
		return nil, fmt.Errorf("statistics.ProductRanking: %w", err)
	}
	defer rows.Close()

	var results []repository.ProductSalesResult
	for rows.Next() {
		var row repository.ProductSalesResult
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Count, &row.TotalRecaudado, &row.PrecioUnitario); err != nil {
			return nil, fmt.Errorf("statistics.ProductRanking scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// ClientProducts compras de un cliente agrupadas por producto (base del
// producto favorito). Mismo criterio de orden que ProductRanking.
func (r *StatisticsRepo) ClientProducts(ctx context.Context, environmentID, clientID string) ([]repository.ClientProductResult, error) {
	const query = `
	SELECT
	    COALESCE(rg.product_id::TEXT, 'deleted')        AS product_id,
	    COALESCE(p.name, 'Producto eliminado')          AS name,
	    COUNT(*)                                        AS count,
	    SUM(rg.price)                                   AS total_gastado,
	    COALESCE(p.price, MAX(rg.price))                AS precio_unitario
	FROM registers rg
	LEFT JOIN products p ON p.id = rg.product_id
	WHERE rg.environment_id = $1 AND rg.client_id = $2
	GROUP BY rg.product_id, p.name, p.price
	ORDER BY count DESC, MIN(rg.datetime) ASC, product_id ASC`

	rows, err := r.pool.Query(ctx, query, environmentID, clientID)
	if err != nil {
		return nil, fmt.Errorf("statistics.ClientProducts: %w", err)
	}
	defer rows.Close()

	var results []repository.ClientProductResult
	for rows.Next() {
		var row repository.ClientProductResult
		if err := rows.Scan(&row.ProductID, &row.Name, &row.Count, &row.TotalGastado, &row.PrecioUnitario); err != nil {
			return nil, fmt.Errorf("statistics.ClientProducts scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}

// DailyTotals agrega por día calendario dentro de [from, until). Solo
// devuelve días con actividad; el use case rellena los vacíos con ceros.
// clientID vacío agrega todo el entorno.
func (r *StatisticsRepo) DailyTotals(ctx context.Context, environmentID, clientID string, from, until time.Time) ([]repository.DayTotalResult, error) {
	const query = `
	SELECT
	    DATE_TRUNC('day', rg.datetime)  AS fecha,
	    SUM(rg.price)                   AS total,
	    COUNT(*)                        AS compras
	FROM registers rg
	WHERE rg.environment_id = $1
	  AND ($2 = '' OR rg.client_id = $2)
	  AND rg.datetime >= $3
	  AND rg.datetime <  $4
	GROUP BY DATE_TRUNC('day', rg.datetime)
	ORDER BY fecha ASC`

	rows, err := r.pool.Query(ctx, query, environmentID, clientID, from, until)
	if err != nil {
		return nil, fmt.Errorf("statistics.DailyTotals: %w", err)
	}
	defer rows.Close()

	var results []repository.DayTotalResult
	for rows.Next() {
		var row repository.DayTotalResult
		if err := rows.Scan(&row.Fecha, &row.Total, &row.Compras); err != nil {
			return nil, fmt.Errorf("statistics.DailyTotals scan: %w", err)
		}
		results = append(results, row)
	}
	return results, rows.Err()
}
