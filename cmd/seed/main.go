// seed puebla la base con datos de demostración: una company con su entorno,
// catálogo de productos, dos clientes unidos y compras repartidas en los
// últimos días para que los dashboards y rankings tengan contenido.
//
// Uso: go run ./cmd/seed
// Las credenciales de demo quedan en maquina@demo.local / cliente1@demo.local /
// cliente2@demo.local, todas con password "demo1234".
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/NicolasBroyad/machine-dumping-api/internal/domain/entity"
	"github.com/NicolasBroyad/machine-dumping-api/internal/infrastructure/postgres"
	"github.com/NicolasBroyad/machine-dumping-api/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "cargar configuración: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		fmt.Fprintf(os.Stderr, "conexión a PostgreSQL: %v\n", err)
		os.Exit(1)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		fmt.Fprintf(os.Stderr, "hash password: %v\n", err)
		os.Exit(1)
	}

	now := time.Now()
	company := &entity.User{
		ID: uuid.New().String(), Name: "Máquina Central", Email: "maquina@demo.local",
		PasswordHash: string(hash), Role: entity.RoleCompany, CreatedAt: now, UpdatedAt: now,
	}
	cliente1 := &entity.User{
		ID: uuid.New().String(), Name: "Ana Torres", Email: "cliente1@demo.local",
		PasswordHash: string(hash), Role: entity.RoleCliente, CreatedAt: now, UpdatedAt: now,
	}
	cliente2 := &entity.User{
		ID: uuid.New().String(), Name: "Luis Rojas", Email: "cliente2@demo.local",
		PasswordHash: string(hash), Role: entity.RoleCliente, CreatedAt: now, UpdatedAt: now,
	}

	userRepo := postgres.NewUserRepository(pool)
	for _, u := range []*entity.User{company, cliente1, cliente2} {
		if err := userRepo.Create(ctx, u); err != nil {
			fmt.Fprintf(os.Stderr, "crear usuario %s: %v\n", u.Email, err)
			os.Exit(1)
		}
	}

	envRepo := postgres.NewEnvironmentRepository(pool)
	env := &entity.Environment{
		ID: uuid.New().String(), Name: "Oficina Piso 3", CompanyID: company.ID,
		CreatedAt: now, UpdatedAt: now,
	}
	if err := envRepo.Create(ctx, env); err != nil {
		fmt.Fprintf(os.Stderr, "crear entorno: %v\n", err)
		os.Exit(1)
	}

	productRepo := postgres.NewProductRepository(pool)
	products := []*entity.Product{
		{ID: uuid.New().String(), EnvironmentID: env.ID, Name: "Café americano", Price: decimal.NewFromFloat(1.50), Barcode: "7700000000011"},
		{ID: uuid.New().String(), EnvironmentID: env.ID, Name: "Agua mineral", Price: decimal.NewFromFloat(1.00), Barcode: "7700000000028"},
		{ID: uuid.New().String(), EnvironmentID: env.ID, Name: "Barra de cereal", Price: decimal.NewFromFloat(2.25), Barcode: "7700000000035"},
	}
	for _, p := range products {
		p.CreatedAt, p.UpdatedAt = now, now
		if err := productRepo.Create(ctx, p); err != nil {
			fmt.Fprintf(os.Stderr, "crear producto %s: %v\n", p.Name, err)
			os.Exit(1)
		}
	}

	for _, clientID := range []string{cliente1.ID, cliente2.ID} {
		m := &entity.Membership{
			ID: uuid.New().String(), ClientID: clientID, EnvironmentID: env.ID,
			Points: 0, CreatedAt: now,
		}
		if err := envRepo.Join(ctx, m); err != nil {
			fmt.Fprintf(os.Stderr, "crear membresía: %v\n", err)
			os.Exit(1)
		}
	}

	// Compras repartidas en los últimos 10 días; Ana compra el doble que Luis
	// para que el ranking no quede empatado.
	registerRepo := postgres.NewRegisterRepository(pool)
	total := 0
	for day := 0; day < 10; day++ {
		datetime := now.AddDate(0, 0, -day).Add(-2 * time.Hour)
		buys := []struct {
			clientID string
			product  *entity.Product
			n        int
		}{
			{cliente1.ID, products[day%len(products)], 2},
			{cliente2.ID, products[(day+1)%len(products)], 1},
		}
		for _, b := range buys {
			for i := 0; i < b.n; i++ {
				reg := &entity.Register{
					ID: uuid.New().String(), ClientID: b.clientID, ProductID: b.product.ID,
					EnvironmentID: env.ID, Price: b.product.Price, Datetime: datetime.Add(time.Duration(i) * time.Minute),
				}
				if err := registerRepo.Create(ctx, reg); err != nil {
					fmt.Fprintf(os.Stderr, "crear registro: %v\n", err)
					os.Exit(1)
				}
				if _, err := envRepo.AddPoints(ctx, b.clientID, env.ID, entity.PointsPerPurchase); err != nil {
					fmt.Fprintf(os.Stderr, "sumar puntos: %v\n", err)
					os.Exit(1)
				}
				total++
			}
		}
	}

	fmt.Printf("Seed completado: entorno %q con %d productos y %d compras\n", env.Name, len(products), total)
}
