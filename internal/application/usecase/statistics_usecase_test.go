package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicolasBroyad/machine-dumping-api/internal/application/usecase"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain/entity"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers
// ──────────────────────────────────────────────────────────────────────────────

const (
	testEnvID     = "env-1"
	testCompanyID = "company-1"
	testClientID  = "client-1"
)

// buildStatsFixture arma un entorno con su company y un cliente unido.
func buildStatsFixture() (*fakeStatsRepo, *fakeEnvironmentRepo, *fakeUserRepo) {
	envRepo := newFakeEnvironmentRepo()
	envRepo.envs[testEnvID] = &entity.Environment{ID: testEnvID, Name: "Oficina", CompanyID: testCompanyID}
	envRepo.memberships[membershipKey(testClientID, testEnvID)] = &entity.Membership{
		ID: "m-1", ClientID: testClientID, EnvironmentID: testEnvID,
	}
	userRepo := newFakeUserRepo()
	userRepo.users[testCompanyID] = &entity.User{ID: testCompanyID, Name: "Vending SA", Role: entity.RoleCompany}
	return &fakeStatsRepo{}, envRepo, userRepo
}

// localMidnight devuelve la medianoche local de hace daysAgo días.
func localMidnight(daysAgo int) time.Time {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return today.AddDate(0, 0, -daysAgo)
}

func dec(s string) decimal.Decimal {
	d, _ := decimal.NewFromString(s)
	return d
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard del cliente
// ──────────────────────────────────────────────────────────────────────────────

func TestClientStatistics_FavoritoYPosicion(t *testing.T) {
	statsRepo, envRepo, userRepo := buildStatsFixture()
	statsRepo.clientProducts = []repository.ClientProductResult{
		{ProductID: "p-1", Name: "Café", Count: 5, TotalGastado: dec("7.50"), PrecioUnitario: dec("1.50")},
		{ProductID: "p-2", Name: "Agua", Count: 2, TotalGastado: dec("2.00"), PrecioUnitario: dec("1.00")},
	}
	statsRepo.clientRanking = []repository.ClientTotalResult{
		{ClientID: "otro", Username: "Ana", Total: dec("20.00"), Compras: 10},
		{ClientID: testClientID, Username: "Luis", Total: dec("9.50"), Compras: 7},
		{ClientID: "tercero", Username: "Eva", Total: dec("1.00"), Compras: 1},
	}
	uc := usecase.NewStatisticsUseCase(statsRepo, envRepo, userRepo, nil)

	out, err := uc.GetClientStatistics(context.Background(), testClientID, testEnvID)
	require.NoError(t, err)

	require.NotNil(t, out.ProductoFavorito, "con compras debe haber producto favorito")
	assert.Equal(t, "Café", out.ProductoFavorito.Name, "el favorito es el más comprado")
	assert.Equal(t, 5, out.ProductoFavorito.Count)
	assert.True(t, out.ProductoFavorito.Price.Equal(dec("1.50")))

	require.NotNil(t, out.RankingPosicion)
	assert.Equal(t, 2, out.RankingPosicion.Posicion, "segundo total más alto = posición 2")
	assert.Equal(t, 3, out.RankingPosicion.TotalParticipantes)
	assert.True(t, out.RankingPosicion.Total.Equal(dec("9.50")))
}

func TestClientStatistics_SinComprasDevuelveNulls(t *testing.T) {
	statsRepo, envRepo, userRepo := buildStatsFixture()
	uc := usecase.NewStatisticsUseCase(statsRepo, envRepo, userRepo, nil)

	out, err := uc.GetClientStatistics(context.Background(), testClientID, testEnvID)
	require.NoError(t, err)

	assert.Nil(t, out.ProductoFavorito, "sin compras el favorito debe ser null")
	assert.Nil(t, out.RankingPosicion, "sin compras no hay posición en el ranking")
}

func TestClientStatistics_NoUnido_RetornaErrNotMember(t *testing.T) {
	statsRepo, envRepo, userRepo := buildStatsFixture()
	uc := usecase.NewStatisticsUseCase(statsRepo, envRepo, userRepo, nil)

	_, err := uc.GetClientStatistics(context.Background(), "intruso", testEnvID)
	assert.ErrorIs(t, err, domain.ErrNotMember)
}

func TestClientStatistics_EntornoInexistente_RetornaErrNotFound(t *testing.T) {
	statsRepo, envRepo, userRepo := buildStatsFixture()
	uc := usecase.NewStatisticsUseCase(statsRepo, envRepo, userRepo, nil)

	_, err := uc.GetClientStatistics(context.Background(), testClientID, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dashboard de la company
// ──────────────────────────────────────────────────────────────────────────────

func TestCompanyStatistics_DerivadaDeRankings(t *testing.T) {
	statsRepo, envRepo, userRepo := buildStatsFixture()
	statsRepo.productRanking = []repository.ProductSalesResult{
		{ProductID: "p-1", Name: "Café", Count: 8, TotalRecaudado: dec("12.00"), PrecioUnitario: dec("1.50")},
		{ProductID: "p-2", Name: "Agua", Count: 3, TotalRecaudado: dec("3.00"), PrecioUnitario: dec("1.00")},
	}
	statsRepo.clientRanking = []repository.ClientTotalResult{
		{ClientID: "c-a", Username: "Ana", Total: dec("10.00"), Compras: 7},
		{ClientID: "c-b", Username: "Luis", Total: dec("5.00"), Compras: 4},
	}
	uc := usecase.NewStatisticsUseCase(statsRepo, envRepo, userRepo, nil)

	out, err := uc.GetCompanyStatistics(context.Background(), testCompanyID, testEnvID)
	require.NoError(t, err)

	// cantidadVendidos coincide con la suma del ranking de productos
	assert.Equal(t, 11, out.CantidadVendidos)
	assert.True(t, out.TotalRecaudado.Equal(dec("15.00")))
	require.NotNil(t, out.ProductoMasComprado)
	assert.Equal(t, "Café", out.ProductoMasComprado.Name)
	require.NotNil(t, out.MayorComprador)
	assert.Equal(t, "Ana", out.MayorComprador.Username)
	assert.Equal(t, 7, out.MayorComprador.Compras)
}

func TestCompanyStatistics_SinVentas_TotalesCeroYNulls(t *testing.T) {
	statsRepo, envRepo, userRepo := buildStatsFixture()
	uc := usecase.NewStatisticsUseCase(statsRepo, envRepo, userRepo, nil)

	out, err := uc.GetCompanyStatistics(context.Background(), testCompanyID, testEnvID)
	require.NoError(t, err)

	assert.True(t, out.TotalRecaudado.IsZero())
	assert.Equal(t, 0, out.CantidadVendidos)
	assert.Nil(t, out.ProductoMasComprado)
	assert.Nil(t, out.MayorComprador)
}

func TestCompanyStatistics_EntornoAjeno_RetornaErrForbidden(t *testing.T) {
	statsRepo, envRepo, userRepo := buildStatsFixture()
	uc := usecase.NewStatisticsUseCase(statsRepo, envRepo, userRepo, nil)

	_, err := uc.GetCompanyStatistics(context.Background(), "otra-company", testEnvID)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

// ──────────────────────────────────────────────────────────────────────────────
// Rankings
// ──────────────────────────────────────────────────────────────────────────────

func TestGetRanking_AsignaPosicionesDensas(t *testing.T) {
	statsRepo, envRepo, userRepo := buildStatsFixture()
	statsRepo.clientRanking = []repository.ClientTotalResult{
		{ClientID: "c-a", Username: "Ana", Total: dec("30.00"), Compras: 12},
		{ClientID: testClientID, Username: "Luis", Total: dec("20.00"), Compras: 9},
		{ClientID: "c-c", Username: "Eva", Total: dec("5.00"), Compras: 2},
	}
	uc := usecase.NewStatisticsUseCase(statsRepo, envRepo, userRepo, nil)

	out, err := uc.GetRanking(context.Background(), testClientID, testEnvID)
	require.NoError(t, err)

	assert.Equal(t, testEnvID, out.EnvironmentID)
	assert.Equal(t, "Oficina", out.EnvironmentName)
	assert.Equal(t, "Vending SA", out.CompanyName)
	assert.Equal(t, 3, out.TotalParticipantes)
	require.Len(t, out.Ranking, 3)
	for i, item := range out.Ranking {
		assert.Equal(t, i+1, item.Posicion, "las posiciones deben ser 1-based y consecutivas")
	}
}

func TestGetRankingProductos_Totales(t *testing.T) {
	statsRepo, envRepo, userRepo := buildStatsFixture()
	statsRepo.productRanking = []repository.ProductSalesResult{
		{ProductID: "p-1", Name: "Café", Count: 8, TotalRecaudado: dec("12.00"), PrecioUnitario: dec("1.50")},
		{ProductID: "p-2", Name: "Agua", Count: 3, TotalRecaudado: dec("3.00"), PrecioUnitario: dec("1.00")},
		{ProductID: "p-3", Name: "Cereal", Count: 1, TotalRecaudado: dec("2.25"), PrecioUnitario: dec("2.25")},
	}
	uc := usecase.NewStatisticsUseCase(statsRepo, envRepo, userRepo, nil)

	out, err := uc.GetRankingProductos(context.Background(), testCompanyID, testEnvID)
	require.NoError(t, err)

	assert.Equal(t, 3, out.TotalProductosVendidos, "productos distintos con ventas")
	assert.Equal(t, 12, out.TotalVentas, "suma de unidades vendidas")
	assert.True(t, out.TotalRecaudado.Equal(dec("17.25")))
	require.Len(t, out.Ranking, 3)
	assert.Equal(t, 1, out.Ranking[0].Posicion)
	assert.Equal(t, "Café", out.Ranking[0].Name)
}

func TestGetProductosFavoritos_Totales(t *testing.T) {
	statsRepo, envRepo, userRepo := buildStatsFixture()
	statsRepo.clientProducts = []repository.ClientProductResult{
		{ProductID: "p-1", Name: "Café", Count: 5, TotalGastado: dec("7.50"), PrecioUnitario: dec("1.50")},
		{ProductID: "p-2", Name: "Agua", Count: 2, TotalGastado: dec("2.00"), PrecioUnitario: dec("1.00")},
	}
	uc := usecase.NewStatisticsUseCase(statsRepo, envRepo, userRepo, nil)

	out, err := uc.GetProductosFavoritos(context.Background(), testClientID, testEnvID)
	require.NoError(t, err)

	assert.Equal(t, 2, out.TotalProductosDistintos)
	assert.Equal(t, 7, out.TotalCompras)
	assert.True(t, out.TotalGastado.Equal(dec("9.50")))
	require.Len(t, out.ProductosFavoritos, 2)
	assert.Equal(t, 1, out.ProductosFavoritos[0].Posicion)
	assert.Equal(t, 2, out.ProductosFavoritos[1].Posicion)
}

// ──────────────────────────────────────────────────────────────────────────────
// Series por día
// ──────────────────────────────────────────────────────────────────────────────

func TestGastosPorDia_RellenaVentanaCompleta(t *testing.T) {
	statsRepo, envRepo, userRepo := buildStatsFixture()
	statsRepo.dayTotals = []repository.DayTotalResult{
		{Fecha: localMidnight(3), Total: dec("6.00"), Compras: 4},
		{Fecha: localMidnight(0), Total: dec("3.00"), Compras: 2},
	}
	uc := usecase.NewStatisticsUseCase(statsRepo, envRepo, userRepo, nil)

	out, err := uc.GetGastosPorDia(context.Background(), testClientID, testEnvID, 7)
	require.NoError(t, err)

	require.Len(t, out.GastosPorDia, 7, "una cubeta por día de la ventana, incluso en cero")
	assert.Equal(t, "Últimos 7 días", out.Periodo)
	assert.Equal(t, localMidnight(6).Format("2006-01-02"), out.GastosPorDia[0].Fecha,
		"la ventana arranca hace days-1 días")
	assert.Equal(t, localMidnight(0).Format("2006-01-02"), out.GastosPorDia[6].Fecha,
		"la ventana termina hoy")

	assert.True(t, out.TotalGastado.Equal(dec("9.00")))
	assert.Equal(t, 6, out.TotalCompras)
	assert.Equal(t, 2, out.DiasConCompras)
	assert.True(t, out.PromedioPorCompra.Equal(dec("1.50")), "9.00 / 6 compras")

	// los días sin actividad viajan con total 0
	assert.True(t, out.GastosPorDia[1].Total.IsZero())
	assert.Equal(t, 0, out.GastosPorDia[1].Compras)

	require.NotNil(t, out.DiaMaxGasto)
	assert.Equal(t, localMidnight(3).Format("2006-01-02"), out.DiaMaxGasto.Fecha)
	assert.True(t, out.DiaMaxGasto.Total.Equal(dec("6.00")))
}

func TestGastosPorDia_SinActividad(t *testing.T) {
	statsRepo, envRepo, userRepo := buildStatsFixture()
	uc := usecase.NewStatisticsUseCase(statsRepo, envRepo, userRepo, nil)

	// days=0 cae a la ventana por defecto
	out, err := uc.GetGastosPorDia(context.Background(), testClientID, testEnvID, 0)
	require.NoError(t, err)

	assert.Len(t, out.GastosPorDia, usecase.DefaultStatisticsDays)
	assert.True(t, out.TotalGastado.IsZero())
	assert.Equal(t, 0, out.TotalCompras)
	assert.True(t, out.PromedioPorCompra.IsZero(), "sin compras no se divide por cero")
	assert.Nil(t, out.DiaMaxGasto, "sin actividad no hay día máximo")
}

func TestGastosPorDia_DiaMaxEmpateGanaElMasAntiguo(t *testing.T) {
	statsRepo, envRepo, userRepo := buildStatsFixture()
	statsRepo.dayTotals = []repository.DayTotalResult{
		{Fecha: localMidnight(5), Total: dec("4.00"), Compras: 2},
		{Fecha: localMidnight(1), Total: dec("4.00"), Compras: 3},
	}
	uc := usecase.NewStatisticsUseCase(statsRepo, envRepo, userRepo, nil)

	out, err := uc.GetGastosPorDia(context.Background(), testClientID, testEnvID, 7)
	require.NoError(t, err)

	require.NotNil(t, out.DiaMaxGasto)
	assert.Equal(t, localMidnight(5).Format("2006-01-02"), out.DiaMaxGasto.Fecha,
		"en empate de total gana la fecha más antigua")
}

func TestGastosPorDia_VentanaMaxima365(t *testing.T) {
	statsRepo, envRepo, userRepo := buildStatsFixture()
	uc := usecase.NewStatisticsUseCase(statsRepo, envRepo, userRepo, nil)

	out, err := uc.GetGastosPorDia(context.Background(), testClientID, testEnvID, 9999)
	require.NoError(t, err)
	assert.Len(t, out.GastosPorDia, 365, "la ventana se recorta a 365 días")
}

func TestRecaudadoPorDia_Resumen(t *testing.T) {
	statsRepo, envRepo, userRepo := buildStatsFixture()
	statsRepo.dayTotals = []repository.DayTotalResult{
		{Fecha: localMidnight(2), Total: dec("10.00"), Compras: 5},
	}
	uc := usecase.NewStatisticsUseCase(statsRepo, envRepo, userRepo, nil)

	out, err := uc.GetRecaudadoPorDia(context.Background(), testCompanyID, testEnvID, 10)
	require.NoError(t, err)

	assert.Len(t, out.RecaudadoPorDia, 10)
	assert.True(t, out.TotalRecaudado.Equal(dec("10.00")))
	assert.Equal(t, 5, out.TotalVentas)
	assert.Equal(t, 1, out.DiasConVentas)
	assert.True(t, out.PromedioPorVenta.Equal(dec("2.00")))
	assert.True(t, out.PromedioPorDia.Equal(dec("1.00")), "10.00 / 10 días")
	require.NotNil(t, out.DiaMaxRecaudado)
	assert.Equal(t, 5, out.DiaMaxRecaudado.Ventas)
}

func TestRecaudadoPorDia_EntornoAjeno_RetornaErrForbidden(t *testing.T) {
	statsRepo, envRepo, userRepo := buildStatsFixture()
	uc := usecase.NewStatisticsUseCase(statsRepo, envRepo, userRepo, nil)

	_, err := uc.GetRecaudadoPorDia(context.Background(), "otra-company", testEnvID, 30)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
