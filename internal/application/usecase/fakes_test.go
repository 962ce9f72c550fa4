package usecase_test

import (
	"context"
	"time"

	"github.com/NicolasBroyad/machine-dumping-api/internal/domain"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain/entity"
	"github.com/NicolasBroyad/machine-dumping-api/internal/domain/repository"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria de los puertos de persistencia. Los tests de use case no
// tocan PostgreSQL: validan la lógica de negocio con estos dobles.
// ──────────────────────────────────────────────────────────────────────────────

type fakeUserRepo struct {
	users map[string]*entity.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: make(map[string]*entity.User)}
}

func (f *fakeUserRepo) Create(_ context.Context, u *entity.User) error {
	for _, existing := range f.users {
		if existing.Email == u.Email {
			return domain.ErrEmailAlreadyExists
		}
	}
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	return f.users[id], nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

type fakeEnvironmentRepo struct {
	envs        map[string]*entity.Environment
	memberships map[string]*entity.Membership // clientID + "|" + environmentID
}

func newFakeEnvironmentRepo() *fakeEnvironmentRepo {
	return &fakeEnvironmentRepo{
		envs:        make(map[string]*entity.Environment),
		memberships: make(map[string]*entity.Membership),
	}
}

func membershipKey(clientID, environmentID string) string {
	return clientID + "|" + environmentID
}

func (f *fakeEnvironmentRepo) Create(_ context.Context, env *entity.Environment) error {
	f.envs[env.ID] = env
	return nil
}

func (f *fakeEnvironmentRepo) GetByID(_ context.Context, id string) (*entity.Environment, error) {
	return f.envs[id], nil
}

func (f *fakeEnvironmentRepo) ListByCompany(_ context.Context, companyID string) ([]*entity.Environment, error) {
	var list []*entity.Environment
	for _, e := range f.envs {
		if e.CompanyID == companyID {
			list = append(list, e)
		}
	}
	return list, nil
}

func (f *fakeEnvironmentRepo) ListAllWithCompany(_ context.Context) ([]repository.EnvironmentWithCompanyResult, error) {
	var list []repository.EnvironmentWithCompanyResult
	for _, e := range f.envs {
		list = append(list, repository.EnvironmentWithCompanyResult{ID: e.ID, Name: e.Name})
	}
	return list, nil
}

func (f *fakeEnvironmentRepo) Join(_ context.Context, m *entity.Membership) error {
	key := membershipKey(m.ClientID, m.EnvironmentID)
	if _, ok := f.memberships[key]; ok {
		return domain.ErrDuplicate
	}
	f.memberships[key] = m
	return nil
}

func (f *fakeEnvironmentRepo) Leave(_ context.Context, clientID, environmentID string) error {
	key := membershipKey(clientID, environmentID)
	if _, ok := f.memberships[key]; !ok {
		return domain.ErrNotFound
	}
	delete(f.memberships, key)
	return nil
}

func (f *fakeEnvironmentRepo) GetMembership(_ context.Context, clientID, environmentID string) (*entity.Membership, error) {
	return f.memberships[membershipKey(clientID, environmentID)], nil
}

func (f *fakeEnvironmentRepo) ListJoinedByClient(_ context.Context, clientID string) ([]repository.JoinedEnvironmentResult, error) {
	var list []repository.JoinedEnvironmentResult
	for _, m := range f.memberships {
		if m.ClientID != clientID {
			continue
		}
		env := f.envs[m.EnvironmentID]
		list = append(list, repository.JoinedEnvironmentResult{ID: env.ID, Name: env.Name, Points: m.Points})
	}
	return list, nil
}

func (f *fakeEnvironmentRepo) AddPoints(_ context.Context, clientID, environmentID string, points int) (int, error) {
	m, ok := f.memberships[membershipKey(clientID, environmentID)]
	if !ok {
		return 0, domain.ErrNotFound
	}
	m.Points += points
	return m.Points, nil
}

type fakeProductRepo struct {
	products    map[string]*entity.Product
	scanResults []repository.ScannedProductResult
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*entity.Product)}
}

func (f *fakeProductRepo) Create(_ context.Context, p *entity.Product) error {
	for _, existing := range f.products {
		if existing.EnvironmentID == p.EnvironmentID && existing.Barcode == p.Barcode {
			return domain.ErrDuplicate
		}
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	return f.products[id], nil
}

func (f *fakeProductRepo) ListByEnvironment(_ context.Context, environmentID string) ([]*entity.Product, error) {
	var list []*entity.Product
	for _, p := range f.products {
		if p.EnvironmentID == environmentID {
			list = append(list, p)
		}
	}
	return list, nil
}

func (f *fakeProductRepo) Update(_ context.Context, p *entity.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) Delete(_ context.Context, id string) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) FindByBarcodeForClient(_ context.Context, _, _ string) ([]repository.ScannedProductResult, error) {
	return f.scanResults, nil
}

type fakeRegisterRepo struct {
	created     []*entity.Register
	clientRows  []repository.ClientRegisterResult
	companyRows []repository.CompanyRegisterResult
}

func (f *fakeRegisterRepo) Create(_ context.Context, reg *entity.Register) error {
	f.created = append(f.created, reg)
	return nil
}

func (f *fakeRegisterRepo) ListByClient(_ context.Context, _ string) ([]repository.ClientRegisterResult, error) {
	return f.clientRows, nil
}

func (f *fakeRegisterRepo) ListByCompany(_ context.Context, _, _ string) ([]repository.CompanyRegisterResult, error) {
	return f.companyRows, nil
}

type fakeStatsRepo struct {
	clientRanking  []repository.ClientTotalResult
	productRanking []repository.ProductSalesResult
	clientProducts []repository.ClientProductResult
	dayTotals      []repository.DayTotalResult
}

func (f *fakeStatsRepo) ClientRanking(_ context.Context, _ string) ([]repository.ClientTotalResult, error) {
	return f.clientRanking, nil
}

func (f *fakeStatsRepo) ProductRanking(_ context.Context, _ string) ([]repository.ProductSalesResult, error) {
	return f.productRanking, nil
}

func (f *fakeStatsRepo) ClientProducts(_ context.Context, _, _ string) ([]repository.ClientProductResult, error) {
	return f.clientProducts, nil
}

func (f *fakeStatsRepo) DailyTotals(_ context.Context, _, _ string, _, _ time.Time) ([]repository.DayTotalResult, error) {
	return f.dayTotals, nil
}

// fakeTxRunner pasa los fakes al callback tal cual: los tests verifican que
// con error no quede estado a medias mirando los fakes después.
type fakeTxRunner struct {
	registerRepo *fakeRegisterRepo
	productRepo  *fakeProductRepo
	envRepo      *fakeEnvironmentRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(
	registerRepo repository.RegisterRepository,
	productRepo repository.ProductRepository,
	envRepo repository.EnvironmentRepository,
) error) error {
	return fn(f.registerRepo, f.productRepo, f.envRepo)
}
