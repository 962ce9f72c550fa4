package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NicolasBroyad/machine-dumping-api/internal/application/dto"
	"github.com/NicolasBroyad/machine-dumping-api/internal/application/usecase"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain/entity"
)

func buildEnvironmentFixture() (*usecase.EnvironmentUseCase, *fakeEnvironmentRepo) {
	envRepo := newFakeEnvironmentRepo()
	envRepo.envs[testEnvID] = &entity.Environment{ID: testEnvID, Name: "Oficina", CompanyID: testCompanyID}
	return usecase.NewEnvironmentUseCase(envRepo), envRepo
}

func TestEnvironmentJoin_CreaMembresiaConCeroPuntos(t *testing.T) {
	uc, envRepo := buildEnvironmentFixture()

	err := uc.Join(context.Background(), testClientID, dto.JoinEnvironmentRequest{EnvironmentID: testEnvID})
	require.NoError(t, err)

	m := envRepo.memberships[membershipKey(testClientID, testEnvID)]
	require.NotNil(t, m)
	assert.Equal(t, 0, m.Points, "la membresía arranca con 0 puntos")
}

func TestEnvironmentJoin_Repetido_RetornaErrAlreadyMember(t *testing.T) {
	uc, _ := buildEnvironmentFixture()

	require.NoError(t, uc.Join(context.Background(), testClientID, dto.JoinEnvironmentRequest{EnvironmentID: testEnvID}))
	err := uc.Join(context.Background(), testClientID, dto.JoinEnvironmentRequest{EnvironmentID: testEnvID})
	assert.ErrorIs(t, err, domain.ErrAlreadyMember)
}

func TestEnvironmentJoin_EntornoInexistente_RetornaErrNotFound(t *testing.T) {
	uc, _ := buildEnvironmentFixture()

	err := uc.Join(context.Background(), testClientID, dto.JoinEnvironmentRequest{EnvironmentID: "no-existe"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEnvironmentLeave_BorraMembresiaYPierdePuntos(t *testing.T) {
	uc, envRepo := buildEnvironmentFixture()
	envRepo.memberships[membershipKey(testClientID, testEnvID)] = &entity.Membership{
		ID: "m-1", ClientID: testClientID, EnvironmentID: testEnvID, Points: 120,
	}

	require.NoError(t, uc.Leave(context.Background(), testClientID, testEnvID))
	assert.Nil(t, envRepo.memberships[membershipKey(testClientID, testEnvID)])

	// volver a unirse no recupera los puntos anteriores
	require.NoError(t, uc.Join(context.Background(), testClientID, dto.JoinEnvironmentRequest{EnvironmentID: testEnvID}))
	assert.Equal(t, 0, envRepo.memberships[membershipKey(testClientID, testEnvID)].Points)
}

func TestEnvironmentLeave_SinMembresia_RetornaErrNotMember(t *testing.T) {
	uc, _ := buildEnvironmentFixture()

	err := uc.Leave(context.Background(), testClientID, testEnvID)
	assert.ErrorIs(t, err, domain.ErrNotMember)
}
