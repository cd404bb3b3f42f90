package queries

import (
	"context"
	"time"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/core/domain/model/parcel"
	"parcels/internal/core/ports"
)

// ParcelReader is the read side of the parcel repository used by queries.
type ParcelReader interface {
	GetByIDAndSession(ctx context.Context, id kernel.UUID, session kernel.SessionKey) (*parcel.Parcel, error)
	ListBySession(
		ctx context.Context,
		session kernel.SessionKey,
		filter ports.ParcelFilter,
		page ports.Page,
	) (ports.ParcelPage, error)
}

// ParcelView is the read model shown to the owner of a parcel.
type ParcelView struct {
	ID       kernel.UUID
	Name     string
	Weight   float64
	Value    float64
	TypeID   kernel.UUID
	TypeName string
	// DeliveryCost is nil until the pricing sweep has processed the parcel.
	DeliveryCost *float64
	CreatedAt    time.Time
}

// NewParcelView maps a parcel to its owner-facing read model.
func NewParcelView(p *parcel.Parcel) ParcelView {
	view := ParcelView{
		ID:        p.ID(),
		Name:      p.Name(),
		Weight:    p.Weight(),
		Value:     p.Value(),
		TypeID:    p.Type().ID(),
		TypeName:  p.Type().Name(),
		CreatedAt: p.CreatedAt(),
	}
	if cost, ok := p.DeliveryCost(); ok {
		view.DeliveryCost = &cost
	}
	return view
}
