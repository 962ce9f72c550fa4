package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/NicolasBroyad/machine-dumping-api/internal/application/dto"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain/entity"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain/repository"
)

// TxRunner ejecuta el callback con repos atados a una misma transacción.
// Lo implementa infrastructure/postgres.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		registerRepo repository.RegisterRepository,
		productRepo repository.ProductRepository,
		envRepo repository.EnvironmentRepository,
	) error) error
}

// RegisterUseCase casos de uso del libro de compras.
type RegisterUseCase struct {
	tx           TxRunner
	registerRepo repository.RegisterRepository
}

// NewRegisterUseCase construye el caso de uso.
func NewRegisterUseCase(tx TxRunner, registerRepo repository.RegisterRepository) *RegisterUseCase {
	return &RegisterUseCase{tx: tx, registerRepo: registerRepo}
}

// Create registra una compra de forma atómica: valida la membresía y el
// producto, toma la foto del precio vigente y suma los puntos de la
// membresía en la misma transacción. No hay registros parciales.
func (uc *RegisterUseCase) Create(ctx context.Context, clientID string, in dto.CreateRegisterRequest) (*dto.CreateRegisterResponse, error) {
	var out dto.CreateRegisterResponse
	err := uc.tx.Run(ctx, func(
		registerRepo repository.RegisterRepository,
		productRepo repository.ProductRepository,
		envRepo repository.EnvironmentRepository,
	) error {
		membership, err := envRepo.GetMembership(ctx, clientID, in.EnvironmentID)
		if err != nil {
			return err
		}
		if membership == nil {
			return domain.ErrNotMember
		}
		product, err := productRepo.GetByID(ctx, in.ProductID)
		if err != nil {
			return err
		}
		if product == nil || product.EnvironmentID != in.EnvironmentID {
			return domain.ErrNotFound
		}
		register := &entity.Register{
			ID:            uuid.New().String(),
			ClientID:      clientID,
			ProductID:     product.ID,
			EnvironmentID: in.EnvironmentID,
			Price:         product.Price, // foto histórica: inmutable desde aquí
			Datetime:      time.Now(),
		}
		if err := registerRepo.Create(ctx, register); err != nil {
			return err
		}
		points, err := envRepo.AddPoints(ctx, clientID, in.EnvironmentID, entity.PointsPerPurchase)
		if err != nil {
			return err
		}
		out = dto.CreateRegisterResponse{
			ID:       register.ID,
			Datetime: register.Datetime,
			Price:    register.Price,
			Points:   points,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ListMine historial de compras del cliente, más reciente primero.
func (uc *RegisterUseCase) ListMine(ctx context.Context, clientID string) ([]dto.ClientRegisterResponse, error) {
	rows, err := uc.registerRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ClientRegisterResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.ClientRegisterResponse{
			ID:       r.ID,
			Datetime: r.Datetime,
			Price:    r.Price,
			Product: dto.RegisterProductRef{
				Name:  r.ProductName,
				Price: r.ProductPrice,
			},
			Environment: dto.RegisterEnvironmentRef{Name: r.EnvironmentName},
		})
	}
	return items, nil
}

// ListCompany ventas de los entornos de la company; environmentID vacío
// significa todos.
func (uc *RegisterUseCase) ListCompany(ctx context.Context, companyID, environmentID string) ([]dto.CompanyRegisterResponse, error) {
	rows, err := uc.registerRepo.ListByCompany(ctx, companyID, environmentID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyRegisterResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.CompanyRegisterResponse{
			ID:       r.ID,
			Datetime: r.Datetime,
			Price:    r.Price,
			Product: dto.RegisterProductRef{
				Name:  r.ProductName,
				Price: r.ProductPrice,
			},
			Client: dto.RegisterClientRef{
				User: dto.RegisterUserRef{Username: r.Username, Email: r.Email},
			},
		})
	}
	return items, nil
}
