// Package errs provides standardized error types for the parcel registry.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ValueIsOutOfRangeError: For when a value falls outside of its bounds
//   - ObjectNotFoundError: For when an object cannot be found
//   - ValidationError: For aggregated field-level input failures
//   - RateUnavailableError: For when the exchange rate source cannot be used
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// Messages are kept on a single line so they can be logged and returned to callers as is.
package errs
