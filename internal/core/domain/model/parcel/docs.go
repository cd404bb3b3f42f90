// Package parcel provides the Parcel aggregate and the ParcelType reference entity
// of the registry.
//
// The package includes:
//   - Parcel: a shipment registered by an anonymous session, priced once by the sweep
//   - ParcelType: a seeded, immutable category a parcel belongs to
//   - Draft and its rule lists: user input checked field by field before a parcel exists
//   - IsVisible: the session scoping rule consulted by every read path
//
// Key business rules:
//   - Weight is strictly positive, declared value is non-negative
//   - Delivery cost starts absent and is set exactly once
//   - A parcel is visible only to the non-empty session that registered it
package parcel
