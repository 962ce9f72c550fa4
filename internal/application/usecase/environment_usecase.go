package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/NicolasBroyad/machine-dumping-api/internal/application/dto"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain/entity"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain/repository"
)

// EnvironmentUseCase casos de uso de entornos y membresías.
type EnvironmentUseCase struct {
	repo repository.EnvironmentRepository
}

// NewEnvironmentUseCase construye el caso de uso.
func NewEnvironmentUseCase(repo repository.EnvironmentRepository) *EnvironmentUseCase {
	return &EnvironmentUseCase{repo: repo}
}

// Create crea un entorno a nombre de la company.
func (uc *EnvironmentUseCase) Create(ctx context.Context, companyID string, in dto.CreateEnvironmentRequest) (*dto.EnvironmentResponse, error) {
	now := time.Now()
	env := &entity.Environment{
		ID:        uuid.New().String(),
		Name:      in.Name,
		CompanyID: companyID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, env); err != nil {
		return nil, err
	}
	return &dto.EnvironmentResponse{ID: env.ID, Name: env.Name}, nil
}

// ListMine lista los entornos de la company.
func (uc *EnvironmentUseCase) ListMine(ctx context.Context, companyID string) ([]dto.EnvironmentResponse, error) {
	list, err := uc.repo.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EnvironmentResponse, 0, len(list))
	for _, e := range list {
		items = append(items, dto.EnvironmentResponse{ID: e.ID, Name: e.Name})
	}
	return items, nil
}

// ListAll lista todos los entornos con el nombre de su company (descubrimiento).
func (uc *EnvironmentUseCase) ListAll(ctx context.Context) ([]dto.EnvironmentWithCompanyResponse, error) {
	rows, err := uc.repo.ListAllWithCompany(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.EnvironmentWithCompanyResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.EnvironmentWithCompanyResponse{
			ID: r.ID, Name: r.Name, CompanyName: r.CompanyName,
		})
	}
	return items, nil
}

// ListJoined lista los entornos a los que el cliente está unido, con puntos.
func (uc *EnvironmentUseCase) ListJoined(ctx context.Context, clientID string) (*dto.JoinedEnvironmentsResponse, error) {
	rows, err := uc.repo.ListJoinedByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.JoinedEnvironmentResponse, 0, len(rows))
	for _, r := range rows {
		items = append(items, dto.JoinedEnvironmentResponse{
			ID: r.ID, Name: r.Name, CompanyName: r.CompanyName, Points: r.Points,
		})
	}
	return &dto.JoinedEnvironmentsResponse{Environments: items}, nil
}

// Join une al cliente a un entorno con 0 puntos.
// Devuelve ErrAlreadyMember si la membresía ya existe.
func (uc *EnvironmentUseCase) Join(ctx context.Context, clientID string, in dto.JoinEnvironmentRequest) error {
	env, err := uc.repo.GetByID(ctx, in.EnvironmentID)
	if err != nil {
		return err
	}
	if env == nil {
		return domain.ErrNotFound
	}
	m := &entity.Membership{
		ID:            uuid.New().String(),
		ClientID:      clientID,
		EnvironmentID: env.ID,
		Points:        0,
		CreatedAt:     time.Now(),
	}
	if err := uc.repo.Join(ctx, m); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			return domain.ErrAlreadyMember
		}
		return err
	}
	return nil
}

// Leave borra la membresía. Los puntos acumulados se pierden: son estado de
// la membresía, no se recalculan desde el historial de compras.
func (uc *EnvironmentUseCase) Leave(ctx context.Context, clientID, environmentID string) error {
	if err := uc.repo.Leave(ctx, clientID, environmentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotMember
		}
		return err
	}
	return nil
}
