package commands_test

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"parcels/internal/core/application/usecases/commands"
	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
)

type MockParcelRepository struct{ mock.Mock }

func (m *MockParcelRepository) Add(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) Update(ctx context.Context, p *parcel.Parcel) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockParcelRepository) GetByIDAndSession(
	_ context.Context, _ kernel.UUID, _ kernel.SessionKey,
) (*parcel.Parcel, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockParcelRepository) ListBySession(
	_ context.Context, _ kernel.SessionKey, _ ports.ParcelFilter, _ ports.Page,
) (ports.ParcelPage, error) {
	return ports.ParcelPage{}, errors.New("not implemented in mock")
}

func (m *MockParcelRepository) GetAllUnpriced(ctx context.Context) ([]*parcel.Parcel, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*parcel.Parcel), args.Error(1)
}

type MockParcelTypeRepository struct{ mock.Mock }

func (m *MockParcelTypeRepository) Add(ctx context.Context, t parcel.ParcelType) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockParcelTypeRepository) Get(ctx context.Context, id kernel.UUID) (parcel.ParcelType, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(parcel.ParcelType), args.Error(1)
}

func (m *MockParcelTypeRepository) GetByName(ctx context.Context, name string) (parcel.ParcelType, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(parcel.ParcelType), args.Error(1)
}

func (m *MockParcelTypeRepository) GetAll(_ context.Context) ([]parcel.ParcelType, error) {
	return nil, errors.New("not implemented in mock")
}

func (m *MockParcelTypeRepository) Delete(ctx context.Context, id kernel.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ParcelRepository() ports.ParcelRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelRepository)
}

func (m *MockUoW) ParcelTypeRepository() ports.ParcelTypeRepository {
	args := m.Called()
	return args.Get(0).(ports.ParcelTypeRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockParcelTypeUoWFactory struct{ mock.Mock }

func (m *MockParcelTypeUoWFactory) Create() commands.ParcelTypeUoW {
	args := m.Called()
	return args.Get(0).(commands.ParcelTypeUoW)
}

type MockRateSource struct{ mock.Mock }

func (m *MockRateSource) GetRate(ctx context.Context) (float64, error) {
	args := m.Called(ctx)
	return args.Get(0).(float64), args.Error(1)
}

// parcelStore is a stateful stand-in for the parcel table. Update is conditional on the
// stored parcel being unpriced, and failUpdate makes selected writes fail.
type parcelStore struct {
	mu         sync.Mutex
	rows       map[string]*parcel.Parcel
	failUpdate map[string]error
	updates    []string
}

func newParcelStore(parcels ...*parcel.Parcel) *parcelStore {
	s := &parcelStore{
		rows:       make(map[string]*parcel.Parcel),
		failUpdate: make(map[string]error),
	}
	for _, p := range parcels {
		s.rows[p.ID().String()] = p
	}
	return s
}

func (s *parcelStore) Create() commands.UoW { return storeUoW{store: s} }

func (s *parcelStore) cost(id kernel.UUID) (float64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rows[id.String()].DeliveryCost()
}

type storeUoW struct{ store *parcelStore }

func (u storeUoW) Begin(context.Context) error { return nil }
func (u storeUoW) Commit(context.Context) error { return nil }
func (u storeUoW) Rollback(context.Context) error { return nil }
func (u storeUoW) ParcelRepository() ports.ParcelRepository { return storeRepo(u) }
func (u storeUoW) ParcelTypeRepository() ports.ParcelTypeRepository { return nil }

type storeRepo struct{ store *parcelStore }

func (r storeRepo) Add(_ context.Context, p *parcel.Parcel) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.rows[p.ID().String()] = p
	return nil
}

func (r storeRepo) Update(_ context.Context, p *parcel.Parcel) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	id := p.ID().String()
	r.store.updates = append(r.store.updates, id)
	if err, ok := r.store.failUpdate[id]; ok {
		return err
	}
	stored, ok := r.store.rows[id]
	if !ok {
		return errs.NewObjectNotFoundError("parcel", id)
	}
	if stored.IsPriced() {
		return ports.ErrParcelAlreadyPriced
	}
	cost, _ := p.DeliveryCost()
	restored, err := parcel.RestoreParcel(p.ID(), p.SessionKey(), p.Name(), p.Weight(), p.Value(),
		&cost, p.Type(), p.CreatedAt())
	if err != nil {
		return err
	}
	r.store.rows[id] = restored
	return nil
}

func (r storeRepo) GetByIDAndSession(context.Context, kernel.UUID, kernel.SessionKey) (*parcel.Parcel, error) {
	return nil, errors.New("not implemented in fake")
}

func (r storeRepo) ListBySession(
	context.Context, kernel.SessionKey, ports.ParcelFilter, ports.Page,
) (ports.ParcelPage, error) {
	return ports.ParcelPage{}, errors.New("not implemented in fake")
}

// GetAllUnpriced returns copies, as a database read would.
func (r storeRepo) GetAllUnpriced(context.Context) ([]*parcel.Parcel, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	out := make([]*parcel.Parcel, 0)
	for _, p := range r.store.rows {
		if p.IsPriced() {
			continue
		}
		cp, err := parcel.RestoreParcel(p.ID(), p.SessionKey(), p.Name(), p.Weight(), p.Value(),
			nil, p.Type(), p.CreatedAt())
		if err != nil {
			return nil, err
		}
		out = append(out, cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt().Before(out[j].CreatedAt()) })
	return out, nil
}

func mustType(name string) parcel.ParcelType {
	t, err := parcel.NewParcelType(kernel.NewUUID(), name)
	if err != nil {
		panic(err)
	}
	return t
}

func mustParcel(weight, value float64, createdAt time.Time) *parcel.Parcel {
	session, err := kernel.SessionKeyFromString("session-a")
	if err != nil {
		panic(err)
	}
	p, err := parcel.NewParcel(kernel.NewUUID(), session, "Box", weight, value, mustType("Misc"), createdAt)
	if err != nil {
		panic(err)
	}
	return p
}
