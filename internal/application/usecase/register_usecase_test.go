package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicolasBroyad/machine-dumping-api/internal/application/dto"
	"github.com/NicolasBroyad/machine-dumping-api/internal/application/usecase"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain/entity"
)

func buildRegisterFixture() (*usecase.RegisterUseCase, *fakeTxRunner) {
	envRepo := newFakeEnvironmentRepo()
	envRepo.envs[testEnvID] = &entity.Environment{ID: testEnvID, Name: "Oficina", CompanyID: testCompanyID}
	envRepo.memberships[membershipKey(testClientID, testEnvID)] = &entity.Membership{
		ID: "m-1", ClientID: testClientID, EnvironmentID: testEnvID, Points: 30,
	}
	productRepo := newFakeProductRepo()
	productRepo.products["p-1"] = &entity.Product{
		ID: "p-1", EnvironmentID: testEnvID, Name: "Café",
		Price: decimal.NewFromFloat(1.50), Barcode: "123",
	}
	tx := &fakeTxRunner{
		registerRepo: &fakeRegisterRepo{},
		productRepo:  productRepo,
		envRepo:      envRepo,
	}
	return usecase.NewRegisterUseCase(tx, tx.registerRepo), tx
}

func TestRegisterCreate_TomaFotoDePrecioYSumaPuntos(t *testing.T) {
	uc, tx := buildRegisterFixture()

	out, err := uc.Create(context.Background(), testClientID, dto.CreateRegisterRequest{
		ProductID: "p-1", EnvironmentID: testEnvID,
	})
	require.NoError(t, err)

	require.Len(t, tx.registerRepo.created, 1)
	reg := tx.registerRepo.created[0]
	assert.True(t, reg.Price.Equal(decimal.NewFromFloat(1.50)),
		"el registro guarda la foto del precio vigente")
	assert.Equal(t, testClientID, reg.ClientID)
	assert.NotEmpty(t, reg.ID)

	assert.Equal(t, 40, out.Points, "30 puntos previos + 10 de la compra")
	assert.True(t, out.Price.Equal(reg.Price))

	m := tx.envRepo.memberships[membershipKey(testClientID, testEnvID)]
	assert.Equal(t, 40, m.Points, "los puntos quedan persistidos en la membresía")
}

func TestRegisterCreate_FotoInmuneACambiosDePrecio(t *testing.T) {
	uc, tx := buildRegisterFixture()

	_, err := uc.Create(context.Background(), testClientID, dto.CreateRegisterRequest{
		ProductID: "p-1", EnvironmentID: testEnvID,
	})
	require.NoError(t, err)

	// la company sube el precio después de la compra
	tx.productRepo.products["p-1"].Price = decimal.NewFromFloat(9.99)

	reg := tx.registerRepo.created[0]
	assert.True(t, reg.Price.Equal(decimal.NewFromFloat(1.50)),
		"el precio del registro no cambia cuando cambia el catálogo")
}

func TestRegisterCreate_NoUnido_RetornaErrNotMemberSinRegistro(t *testing.T) {
	uc, tx := buildRegisterFixture()

	_, err := uc.Create(context.Background(), "intruso", dto.CreateRegisterRequest{
		ProductID: "p-1", EnvironmentID: testEnvID,
	})
	assert.ErrorIs(t, err, domain.ErrNotMember)
	assert.Empty(t, tx.registerRepo.created, "con error no debe quedar registro creado")
}

func TestRegisterCreate_ProductoDeOtroEntorno_RetornaErrNotFound(t *testing.T) {
	uc, tx := buildRegisterFixture()
	tx.productRepo.products["p-ajeno"] = &entity.Product{
		ID: "p-ajeno", EnvironmentID: "otro-entorno", Price: decimal.NewFromFloat(2.00),
	}

	_, err := uc.Create(context.Background(), testClientID, dto.CreateRegisterRequest{
		ProductID: "p-ajeno", EnvironmentID: testEnvID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound,
		"el producto debe pertenecer al entorno de la compra")
	assert.Empty(t, tx.registerRepo.created)
}

func TestRegisterCreate_ProductoInexistente_RetornaErrNotFound(t *testing.T) {
	uc, tx := buildRegisterFixture()

	_, err := uc.Create(context.Background(), testClientID, dto.CreateRegisterRequest{
		ProductID: "no-existe", EnvironmentID: testEnvID,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, tx.registerRepo.created)
}
