// Package errs provides standardized error types for the order management application.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package includes several error types for common error scenarios:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//   - ConflictError: For when a mutation targets a state that forbids it or
//     loses to a concurrent mutation of the same record
//   - UnauthorizedError: For when an actor lacks permission for an operation
//   - ConnectivityError: For when a network-dependent call fails because the
//     network is unreachable; this is the only error kind the offline action
//     queue converts into a deferred success
//   - StorageError: For backing store failures
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrValueIsRequired)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// This standardized approach to error handling improves error reporting,
// makes error handling more consistent, and enables better error classification
// and handling throughout the application.
package errs
