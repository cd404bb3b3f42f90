package queries_test

import (
	"context"
	"errors"
	"sort"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/ports"
	"parcels/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
)

// memoryReader answers reads the way the parcel table does: scoped to one session,
// filtered, oldest first.
type memoryReader struct {
	parcels []*parcel.Parcel
	err     error
}

func (r *memoryReader) GetByIDAndSession(
	_ context.Context, id kernel.UUID, session kernel.SessionKey,
) (*parcel.Parcel, error) {
	if r.err != nil {
		return nil, r.err
	}
	for _, p := range r.parcels {
		if p.ID().IsEqual(id) && p.SessionKey().IsEqual(session) {
			return p, nil
		}
	}
	return nil, errs.NewObjectNotFoundError("parcel", id.String())
}

func (r *memoryReader) ListBySession(
	_ context.Context, session kernel.SessionKey, filter ports.ParcelFilter, page ports.Page,
) (ports.ParcelPage, error) {
	if r.err != nil {
		return ports.ParcelPage{}, r.err
	}

	matched := make([]*parcel.Parcel, 0)
	for _, p := range r.parcels {
		if !p.SessionKey().IsEqual(session) {
			continue
		}
		if filter.TypeID != nil && !p.Type().ID().IsEqual(*filter.TypeID) {
			continue
		}
		if filter.Cost == ports.CostCalculated && !p.IsPriced() {
			continue
		}
		if filter.Cost == ports.CostNotCalculated && p.IsPriced() {
			continue
		}
		matched = append(matched, p)
	}
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].CreatedAt().Before(matched[j].CreatedAt()) })

	out := ports.ParcelPage{Total: int64(len(matched)), Parcels: make([]*parcel.Parcel, 0)}
	start := page.Offset()
	if start >= len(matched) {
		return out, nil
	}
	end := min(start+page.Size, len(matched))
	out.Parcels = matched[start:end]
	return out, nil
}

type MockParcelReader struct{ mock.Mock }

func (m *MockParcelReader) GetByIDAndSession(
	ctx context.Context, id kernel.UUID, session kernel.SessionKey,
) (*parcel.Parcel, error) {
	args := m.Called(ctx, id, session)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*parcel.Parcel), args.Error(1)
}

func (m *MockParcelReader) ListBySession(
	ctx context.Context, session kernel.SessionKey, filter ports.ParcelFilter, page ports.Page,
) (ports.ParcelPage, error) {
	args := m.Called(ctx, session, filter, page)
	return args.Get(0).(ports.ParcelPage), args.Error(1)
}

var errStorage = errors.New("storage unavailable")

func session(raw string) kernel.SessionKey {
	key, err := kernel.SessionKeyFromString(raw)
	if err != nil {
		panic(err)
	}
	return key
}

func newType(name string) parcel.ParcelType {
	t, err := parcel.NewParcelType(kernel.NewUUID(), name)
	if err != nil {
		panic(err)
	}
	return t
}

func newParcel(owner kernel.SessionKey, parcelType parcel.ParcelType, createdAt time.Time, cost *float64) *parcel.Parcel {
	p, err := parcel.RestoreParcel(kernel.NewUUID(), owner, "Box", 1, 10, cost, parcelType, createdAt)
	if err != nil {
		panic(err)
	}
	return p
}

func costOf(v float64) *float64 { return &v }
