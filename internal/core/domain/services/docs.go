// Package services provides domain services of the parcel registry that do not
// belong to a single aggregate.
//
// The package includes:
//   - DeliveryCostCalculator: converts a parcel's weight and declared value into a
//     delivery cost in local currency for a given USD exchange rate
package services
