package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/NicolasBroyad/machine-dumping-api/internal/application/dto"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain/entity"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain/repository"
)

// DefaultStatisticsDays ventana por defecto de las series por día.
const DefaultStatisticsDays = 30

// StatisticsPDFGenerator genera el reporte PDF de estadísticas de un entorno.
// Lo implementa infrastructure/pdf.
type StatisticsPDFGenerator interface {
	GenerateStatisticsPDF(
		ctx context.Context,
		env *entity.Environment,
		stats *dto.CompanyStatisticsResponse,
		clientes []dto.RankingClienteItemDTO,
		productos []dto.RankingProductoItemDTO,
	) ([]byte, error)
}

// StatisticsUseCase motor de estadísticas y rankings. Todas las vistas son de
// solo lectura sobre el libro de compras; las sumas usan la foto histórica de
// precio de cada registro, nunca el precio vigente del producto.
type StatisticsUseCase struct {
	statsRepo repository.StatisticsRepository
	envRepo   repository.EnvironmentRepository
	userRepo  repository.UserRepository
	pdfGen    StatisticsPDFGenerator
}

// NewStatisticsUseCase construye el motor. pdfGen puede ser nil si el
// despliegue no expone el reporte PDF.
func NewStatisticsUseCase(
	statsRepo repository.StatisticsRepository,
	envRepo repository.EnvironmentRepository,
	userRepo repository.UserRepository,
	pdfGen StatisticsPDFGenerator,
) *StatisticsUseCase {
	return &StatisticsUseCase{statsRepo: statsRepo, envRepo: envRepo, userRepo: userRepo, pdfGen: pdfGen}
}

// ── Vistas del cliente ───────────────────────────────────────────────────────

// GetClientStatistics resumen del dashboard: producto favorito y posición en
// el ranking. Ambos null si el cliente aún no compró en el entorno.
func (uc *StatisticsUseCase) GetClientStatistics(ctx context.Context, clientID, environmentID string) (*dto.ClientStatisticsResponse, error) {
	if _, err := uc.requireMembership(ctx, clientID, environmentID); err != nil {
		return nil, err
	}
	products, err := uc.statsRepo.ClientProducts(ctx, environmentID, clientID)
	if err != nil {
		return nil, err
	}
	out := &dto.ClientStatisticsResponse{}
	if len(products) > 0 {
		out.ProductoFavorito = &dto.ProductoFavoritoDTO{
			Name:  products[0].Name,
			Count: products[0].Count,
			Price: products[0].PrecioUnitario,
		}
	}
	ranking, err := uc.statsRepo.ClientRanking(ctx, environmentID)
	if err != nil {
		return nil, err
	}
	for i, row := range ranking {
		if row.ClientID == clientID {
			out.RankingPosicion = &dto.RankingPosicionDTO{
				Posicion:           i + 1,
				TotalParticipantes: len(ranking),
				Total:              row.Total,
			}
			break
		}
	}
	return out, nil
}

// GetRanking leaderboard completo del entorno visto por un cliente unido.
func (uc *StatisticsUseCase) GetRanking(ctx context.Context, clientID, environmentID string) (*dto.RankingResponse, error) {
	env, err := uc.requireMembership(ctx, clientID, environmentID)
	if err != nil {
		return nil, err
	}
	companyName := ""
	if company, err := uc.userRepo.GetByID(ctx, env.CompanyID); err != nil {
		return nil, err
	} else if company != nil {
		companyName = company.Name
	}
	rows, err := uc.statsRepo.ClientRanking(ctx, environmentID)
	if err != nil {
		return nil, err
	}
	return &dto.RankingResponse{
		EnvironmentID:      env.ID,
		EnvironmentName:    env.Name,
		CompanyName:        companyName,
		TotalParticipantes: len(rows),
		Ranking:            toClienteRanking(rows),
	}, nil
}

// GetProductosFavoritos detalle de todas las compras del cliente agrupadas
// por producto, ordenadas por frecuencia.
func (uc *StatisticsUseCase) GetProductosFavoritos(ctx context.Context, clientID, environmentID string) (*dto.ProductosFavoritosResponse, error) {
	env, err := uc.requireMembership(ctx, clientID, environmentID)
	if err != nil {
		return nil, err
	}
	rows, err := uc.statsRepo.ClientProducts(ctx, environmentID, clientID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductoFavoritoItemDTO, 0, len(rows))
	totalCompras := 0
	totalGastado := decimal.Zero
	for i, r := range rows {
		items = append(items, dto.ProductoFavoritoItemDTO{
			ProductID:      r.ProductID,
			Name:           r.Name,
			Count:          r.Count,
			TotalGastado:   r.TotalGastado,
			PrecioUnitario: r.PrecioUnitario,
			Posicion:       i + 1,
		})
		totalCompras += r.Count
		totalGastado = totalGastado.Add(r.TotalGastado)
	}
	return &dto.ProductosFavoritosResponse{
		EnvironmentID:           env.ID,
		EnvironmentName:         env.Name,
		TotalProductosDistintos: len(rows),
		TotalCompras:            totalCompras,
		TotalGastado:            totalGastado,
		ProductosFavoritos:      items,
	}, nil
}

// GetGastosPorDia timeline de gasto del cliente: una cubeta por día
// calendario de la ventana, con ceros en los días sin compras.
func (uc *StatisticsUseCase) GetGastosPorDia(ctx context.Context, clientID, environmentID string, days int) (*dto.GastosPorDiaResponse, error) {
	env, err := uc.requireMembership(ctx, clientID, environmentID)
	if err != nil {
		return nil, err
	}
	days = clampDays(days)
	from, until := dayWindow(days)
	rows, err := uc.statsRepo.DailyTotals(ctx, environmentID, clientID, from, until)
	if err != nil {
		return nil, err
	}
	buckets, total, count, diasActivos, diaMax := fillDayBuckets(from, days, rows)

	gastos := make([]dto.GastoDiaDTO, len(buckets))
	for i, b := range buckets {
		gastos[i] = dto.GastoDiaDTO{Fecha: b.Fecha, Total: b.Total, Compras: b.Compras}
	}
	out := &dto.GastosPorDiaResponse{
		EnvironmentID:     env.ID,
		EnvironmentName:   env.Name,
		Periodo:           fmt.Sprintf("Últimos %d días", days),
		TotalGastado:      total,
		TotalCompras:      count,
		PromedioPorCompra: safeDiv(total, count),
		PromedioPorDia:    safeDiv(total, days),
		DiasConCompras:    diasActivos,
		GastosPorDia:      gastos,
	}
	if diaMax != nil {
		out.DiaMaxGasto = &dto.GastoDiaDTO{Fecha: diaMax.Fecha, Total: diaMax.Total, Compras: diaMax.Compras}
	}
	return out, nil
}

// ── Vistas de la company ─────────────────────────────────────────────────────

// GetCompanyStatistics resumen del dashboard de la company. Se deriva de los
// rankings, así que cantidadVendidos coincide por construcción con la suma
// del ranking de productos.
func (uc *StatisticsUseCase) GetCompanyStatistics(ctx context.Context, companyID, environmentID string) (*dto.CompanyStatisticsResponse, error) {
	if _, err := uc.requireOwnership(ctx, companyID, environmentID); err != nil {
		return nil, err
	}
	return uc.companyStatistics(ctx, environmentID)
}

// GetRankingClientes leaderboard de clientes del entorno (company).
func (uc *StatisticsUseCase) GetRankingClientes(ctx context.Context, companyID, environmentID string) (*dto.RankingClientesCompanyResponse, error) {
	env, err := uc.requireOwnership(ctx, companyID, environmentID)
	if err != nil {
		return nil, err
	}
	rows, err := uc.statsRepo.ClientRanking(ctx, environmentID)
	if err != nil {
		return nil, err
	}
	totalRecaudado := decimal.Zero
	for _, r := range rows {
		totalRecaudado = totalRecaudado.Add(r.Total)
	}
	return &dto.RankingClientesCompanyResponse{
		EnvironmentID:   env.ID,
		EnvironmentName: env.Name,
		TotalClientes:   len(rows),
		TotalRecaudado:  totalRecaudado,
		Ranking:         toClienteRanking(rows),
	}, nil
}

// GetRankingProductos leaderboard de productos por cantidad vendida.
func (uc *StatisticsUseCase) GetRankingProductos(ctx context.Context, companyID, environmentID string) (*dto.RankingProductosCompanyResponse, error) {
	env, err := uc.requireOwnership(ctx, companyID, environmentID)
	if err != nil {
		return nil, err
	}
	rows, err := uc.statsRepo.ProductRanking(ctx, environmentID)
	if err != nil {
		return nil, err
	}
	totalVentas := 0
	totalRecaudado := decimal.Zero
	items := make([]dto.RankingProductoItemDTO, 0, len(rows))
	for i, r := range rows {
		items = append(items, dto.RankingProductoItemDTO{
			ProductID:      r.ProductID,
			Name:           r.Name,
			Count:          r.Count,
			TotalRecaudado: r.TotalRecaudado,
			PrecioUnitario: r.PrecioUnitario,
			Posicion:       i + 1,
		})
		totalVentas += r.Count
		totalRecaudado = totalRecaudado.Add(r.TotalRecaudado)
	}
	return &dto.RankingProductosCompanyResponse{
		EnvironmentID:          env.ID,
		EnvironmentName:        env.Name,
		TotalProductosVendidos: len(rows),
		TotalVentas:            totalVentas,
		TotalRecaudado:         totalRecaudado,
		Ranking:                items,
	}, nil
}

// GetRecaudadoPorDia timeline de recaudación del entorno completo.
func (uc *StatisticsUseCase) GetRecaudadoPorDia(ctx context.Context, companyID, environmentID string, days int) (*dto.RecaudadoPorDiaResponse, error) {
	env, err := uc.requireOwnership(ctx, companyID, environmentID)
	if err != nil {
		return nil, err
	}
	days = clampDays(days)
	from, until := dayWindow(days)
	rows, err := uc.statsRepo.DailyTotals(ctx, environmentID, "", from, until)
	if err != nil {
		return nil, err
	}
	buckets, total, count, diasActivos, diaMax := fillDayBuckets(from, days, rows)

	serie := make([]dto.RecaudadoDiaDTO, len(buckets))
	for i, b := range buckets {
		serie[i] = dto.RecaudadoDiaDTO{Fecha: b.Fecha, Total: b.Total, Ventas: b.Compras}
	}
	out := &dto.RecaudadoPorDiaResponse{
		EnvironmentID:    env.ID,
		EnvironmentName:  env.Name,
		Periodo:          fmt.Sprintf("Últimos %d días", days),
		TotalRecaudado:   total,
		TotalVentas:      count,
		PromedioPorVenta: safeDiv(total, count),
		PromedioPorDia:   safeDiv(total, days),
		DiasConVentas:    diasActivos,
		RecaudadoPorDia:  serie,
	}
	if diaMax != nil {
		out.DiaMaxRecaudado = &dto.RecaudadoDiaDTO{Fecha: diaMax.Fecha, Total: diaMax.Total, Ventas: diaMax.Compras}
	}
	return out, nil
}

// GetReportePDF arma el reporte PDF con el resumen y ambos rankings.
func (uc *StatisticsUseCase) GetReportePDF(ctx context.Context, companyID, environmentID string) ([]byte, error) {
	env, err := uc.requireOwnership(ctx, companyID, environmentID)
	if err != nil {
		return nil, err
	}
	if uc.pdfGen == nil {
		return nil, domain.ErrNotFound
	}
	stats, err := uc.companyStatistics(ctx, environmentID)
	if err != nil {
		return nil, err
	}
	clientes, err := uc.statsRepo.ClientRanking(ctx, environmentID)
	if err != nil {
		return nil, err
	}
	productosRaw, err := uc.statsRepo.ProductRanking(ctx, environmentID)
	if err != nil {
		return nil, err
	}
	productos := make([]dto.RankingProductoItemDTO, 0, len(productosRaw))
	for i, r := range productosRaw {
		productos = append(productos, dto.RankingProductoItemDTO{
			ProductID:      r.ProductID,
			Name:           r.Name,
			Count:          r.Count,
			TotalRecaudado: r.TotalRecaudado,
			PrecioUnitario: r.PrecioUnitario,
			Posicion:       i + 1,
		})
	}
	return uc.pdfGen.GenerateStatisticsPDF(ctx, env, stats, toClienteRanking(clientes), productos)
}

// ── Internos ─────────────────────────────────────────────────────────────────

func (uc *StatisticsUseCase) companyStatistics(ctx context.Context, environmentID string) (*dto.CompanyStatisticsResponse, error) {
	productRanking, err := uc.statsRepo.ProductRanking(ctx, environmentID)
	if err != nil {
		return nil, err
	}
	clientRanking, err := uc.statsRepo.ClientRanking(ctx, environmentID)
	if err != nil {
		return nil, err
	}
	out := &dto.CompanyStatisticsResponse{TotalRecaudado: decimal.Zero}
	for _, r := range productRanking {
		out.TotalRecaudado = out.TotalRecaudado.Add(r.TotalRecaudado)
		out.CantidadVendidos += r.Count
	}
	if len(productRanking) > 0 {
		out.ProductoMasComprado = &dto.ProductoMasCompradoDTO{
			Name:  productRanking[0].Name,
			Count: productRanking[0].Count,
			Price: productRanking[0].PrecioUnitario,
		}
	}
	if len(clientRanking) > 0 {
		out.MayorComprador = &dto.MayorCompradorDTO{
			Username: clientRanking[0].Username,
			Total:    clientRanking[0].Total,
			Compras:  clientRanking[0].Compras,
		}
	}
	return out, nil
}

// requireMembership valida que el entorno exista y el cliente esté unido.
func (uc *StatisticsUseCase) requireMembership(ctx context.Context, clientID, environmentID string) (*entity.Environment, error) {
	env, err := uc.envRepo.GetByID(ctx, environmentID)
	if err != nil {
		return nil, err
	}
	if env == nil {
		return nil, domain.ErrNotFound
	}
	membership, err := uc.envRepo.GetMembership(ctx, clientID, environmentID)
	if err != nil {
		return nil, err
	}
	if membership == nil {
		return nil, domain.ErrNotMember
	}
	return env, nil
}

// requireOwnership valida que el entorno exista y pertenezca a la company.
func (uc *StatisticsUseCase) requireOwnership(ctx context.Context, companyID, environmentID string) (*entity.Environment, error) {
	env, err := uc.envRepo.GetByID(ctx, environmentID)
	if err != nil {
		return nil, err
	}
	if env == nil {
		return nil, domain.ErrNotFound
	}
	if env.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	return env, nil
}

func toClienteRanking(rows []repository.ClientTotalResult) []dto.RankingClienteItemDTO {
	items := make([]dto.RankingClienteItemDTO, 0, len(rows))
	for i, r := range rows {
		items = append(items, dto.RankingClienteItemDTO{
			ClientID: r.ClientID,
			Username: r.Username,
			Total:    r.Total,
			Compras:  r.Compras,
			Posicion: i + 1,
		})
	}
	return items
}

// dayBucket cubeta ya rellena de un día de la ventana.
type dayBucket struct {
	Fecha   string // YYYY-MM-DD
	Total   decimal.Decimal
	Compras int
}

// dayWindow devuelve [from, until): from es la medianoche local de hace
// days-1 días y until la medianoche de mañana, de modo que la ventana
// termina hoy inclusive. Convención de zona horaria: fecha local del server.
func dayWindow(days int) (from, until time.Time) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	from = today.AddDate(0, 0, -(days - 1))
	until = today.AddDate(0, 0, 1)
	return from, until
}

// fillDayBuckets materializa una cubeta por día de la ventana (la app dibuja
// una barra por día, incluso con cero actividad) y acumula los totales.
// diaMax es la cubeta de mayor total; en empate gana la fecha más antigua.
func fillDayBuckets(from time.Time, days int, rows []repository.DayTotalResult) (buckets []dayBucket, total decimal.Decimal, count, diasActivos int, diaMax *dayBucket) {
	byFecha := make(map[string]repository.DayTotalResult, len(rows))
	for _, r := range rows {
		byFecha[r.Fecha.Format("2006-01-02")] = r
	}
	buckets = make([]dayBucket, 0, days)
	total = decimal.Zero
	for i := 0; i < days; i++ {
		fecha := from.AddDate(0, 0, i).Format("2006-01-02")
		b := dayBucket{Fecha: fecha, Total: decimal.Zero}
		if r, ok := byFecha[fecha]; ok {
			b.Total = r.Total
			b.Compras = r.Compras
		}
		buckets = append(buckets, b)
		total = total.Add(b.Total)
		count += b.Compras
		if b.Compras > 0 {
			diasActivos++
		}
	}
	for i := range buckets {
		if buckets[i].Compras == 0 && buckets[i].Total.IsZero() {
			continue
		}
		if diaMax == nil || buckets[i].Total.GreaterThan(diaMax.Total) {
			diaMax = &buckets[i]
		}
	}
	return buckets, total, count, diasActivos, diaMax
}

// clampDays normaliza el parámetro days al rango permitido.
func clampDays(days int) int {
	if days <= 0 {
		return DefaultStatisticsDays
	}
	if days > 365 {
		return 365
	}
	return days
}

// safeDiv divide total por n con redondeo a 2 decimales; cero si n es 0.
func safeDiv(total decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return total.DivRound(decimal.NewFromInt(int64(n)), 2)
}
