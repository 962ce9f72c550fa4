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

// ProductUseCase casos de uso CRUD de productos y resolución de escaneos.
type ProductUseCase struct {
	repo    repository.ProductRepository
	envRepo repository.EnvironmentRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, envRepo repository.EnvironmentRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, envRepo: envRepo}
}

// ScanResult resultado de resolver un barcode: o un único producto, o la
// lista de coincidencias entre entornos unidos para desambiguar.
type ScanResult struct {
	Product  *dto.ScannedProductResponse
	Multiple []dto.ScannedProductResponse
}

// Create registra un producto en un entorno de la company.
// Devuelve ErrDuplicate si el barcode ya existe en ese entorno.
func (uc *ProductUseCase) Create(ctx context.Context, companyID string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	if in.Price.IsNegative() || in.Price.IsZero() {
		return nil, domain.ErrInvalidInput
	}
	env, err := uc.envRepo.GetByID(ctx, in.EnvironmentID)
	if err != nil {
		return nil, err
	}
	if env == nil {
		return nil, domain.ErrNotFound
	}
	if env.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		EnvironmentID: env.ID,
		Name:          in.Name,
		Price:         in.Price,
		Barcode:       in.Barcode,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// ListByEnvironment lista el catálogo de un entorno.
func (uc *ProductUseCase) ListByEnvironment(ctx context.Context, environmentID string) ([]dto.ProductResponse, error) {
	list, err := uc.repo.ListByEnvironment(ctx, environmentID)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items, nil
}

// Update edita nombre y/o precio. Cambiar el precio no toca las fotos
// históricas de los registros existentes.
func (uc *ProductUseCase) Update(ctx context.Context, companyID, productID string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.checkOwnership(ctx, companyID, product.EnvironmentID); err != nil {
		return nil, err
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.Price != nil {
		if in.Price.IsNegative() || in.Price.IsZero() {
			return nil, domain.ErrInvalidInput
		}
		product.Price = *in.Price
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Delete borra un producto del catálogo. El libro de compras conserva los
// registros ya creados.
func (uc *ProductUseCase) Delete(ctx context.Context, companyID, productID string) error {
	product, err := uc.repo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if err := uc.checkOwnership(ctx, companyID, product.EnvironmentID); err != nil {
		return err
	}
	return uc.repo.Delete(ctx, productID)
}

// Scan resuelve un barcode contra los entornos unidos del cliente. Una sola
// coincidencia resuelve directo; varias se devuelven para que el cliente
// elija el entorno antes de confirmar la compra; ninguna es ErrNotFound.
func (uc *ProductUseCase) Scan(ctx context.Context, clientID, barcode string) (*ScanResult, error) {
	rows, err := uc.repo.FindByBarcodeForClient(ctx, barcode, clientID)
	if err != nil {
		return nil, err
	}
	switch len(rows) {
	case 0:
		return nil, domain.ErrNotFound
	case 1:
		p := toScannedResponse(rows[0])
		return &ScanResult{Product: &p}, nil
	default:
		items := make([]dto.ScannedProductResponse, 0, len(rows))
		for _, r := range rows {
			items = append(items, toScannedResponse(r))
		}
		return &ScanResult{Multiple: items}, nil
	}
}

func (uc *ProductUseCase) checkOwnership(ctx context.Context, companyID, environmentID string) error {
	env, err := uc.envRepo.GetByID(ctx, environmentID)
	if err != nil {
		return err
	}
	if env == nil {
		return domain.ErrNotFound
	}
	if env.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	if p == nil {
		return nil
	}
	return &dto.ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		Price:         p.Price,
		Barcode:       p.Barcode,
		EnvironmentID: p.EnvironmentID,
	}
}

func toScannedResponse(r repository.ScannedProductResult) dto.ScannedProductResponse {
	return dto.ScannedProductResponse{
		ID:              r.ID,
		Name:            r.Name,
		Price:           r.Price,
		Barcode:         r.Barcode,
		EnvironmentID:   r.EnvironmentID,
		EnvironmentName: r.EnvironmentName,
	}
}
