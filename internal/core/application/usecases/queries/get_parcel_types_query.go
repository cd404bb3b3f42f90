// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return optimized read models for specific use cases.
package queries

import (
	"errors"

	"parcels/internal/core/domain/model/kernel"
	"parcels/internal/pkg/guard"
)

var ErrGetParcelTypesQueryIsNotConstructed = errors.New(
	"GetParcelTypesQuery must be created via NewGetParcelTypesQuery constructor",
)

// GetParcelTypesQuery lists every parcel type for the registration form and the API.
//
// Example:
//
//	types, err := handler.Handle(ctx, queries.NewGetParcelTypesQuery())
//	for _, t := range types {
//	    fmt.Printf("%s %s\n", t.ID, t.Name)
//	}
type GetParcelTypesQuery struct {
	guard guard.ConstructorGuard
}

func NewGetParcelTypesQuery() GetParcelTypesQuery {
	return GetParcelTypesQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetParcelTypesQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelTypesQueryIsNotConstructed)
}

// GetParcelTypesQueryResponse is the read model of one parcel type.
type GetParcelTypesQueryResponse struct {
	ID   kernel.UUID
	Name string
}
