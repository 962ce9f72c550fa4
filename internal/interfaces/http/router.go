package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/NicolasBroyad/machine-dumping-api/internal/application/auth"
	"github.com/NicolasBroyad/machine-dumping-api/internal/application/usecase"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	EnvironmentUC *usecase.EnvironmentUseCase
	ProductUC     *usecase.ProductUseCase
	RegisterUC    *usecase.RegisterUseCase
	StatisticsUC  *usecase.StatisticsUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/profile", AuthMiddleware(deps.JWTSecret), authHandler.Profile)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	cliente := RequireRole(entity.RoleCliente)
	company := RequireRole(entity.RoleCompany)

	// Environments (protegido)
	environments := protected.Group("/environments")
	environmentHandler := NewEnvironmentHandler(deps.EnvironmentUC)
	environments.Post("/", company, environmentHandler.Create)
	environments.Get("/mine", company, environmentHandler.ListMine)
	environments.Get("/all", cliente, environmentHandler.ListAll)
	environments.Get("/joined", cliente, environmentHandler.ListJoined)
	environments.Post("/join", cliente, environmentHandler.Join)
	environments.Delete("/leave/:id", cliente, environmentHandler.Leave)

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", company, productHandler.Create)
	// /scan antes de /:environmentId para que no lo capture el parámetro
	products.Get("/scan/:barcode", cliente, productHandler.Scan)
	products.Get("/:environmentId", productHandler.ListByEnvironment)
	products.Put("/:id", company, productHandler.Update)
	products.Delete("/:id", company, productHandler.Delete)

	// Registers (protegido, libro de compras)
	registers := protected.Group("/registers")
	registerHandler := NewRegisterHandler(deps.RegisterUC)
	registers.Post("/", cliente, registerHandler.Create)
	registers.Get("/mine", cliente, registerHandler.ListMine)
	registers.Get("/company", company, registerHandler.ListCompany)

	// Statistics (protegido)
	statistics := protected.Group("/statistics")
	statisticsHandler := NewStatisticsHandler(deps.StatisticsUC)
	statistics.Get("/client", cliente, statisticsHandler.Client)
	statistics.Get("/ranking/:environmentId", cliente, statisticsHandler.Ranking)
	statistics.Get("/productos-favoritos/:environmentId", cliente, statisticsHandler.ProductosFavoritos)
	statistics.Get("/gastos-por-dia/:environmentId", cliente, statisticsHandler.GastosPorDia)
	statistics.Get("/company", company, statisticsHandler.Company)
	statistics.Get("/company/ranking-clientes/:environmentId", company, statisticsHandler.RankingClientes)
	statistics.Get("/company/ranking-productos/:environmentId", company, statisticsHandler.RankingProductos)
	statistics.Get("/company/recaudado-por-dia/:environmentId", company, statisticsHandler.RecaudadoPorDia)
	statistics.Get("/company/reporte/:environmentId", company, statisticsHandler.Reporte)
}
