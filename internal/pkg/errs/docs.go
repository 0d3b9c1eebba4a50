// Package errs provides standardized error types for the certification service.
// It implements a consistent pattern for error creation, formatting, and unwrapping
// that is used throughout the application.
//
// The package covers the common validation failures:
//   - ValueIsRequiredError: For when a required value is missing
//   - ValueIsInvalidError: For when a value is invalid
//   - ObjectNotFoundError: For when an object cannot be found
//
// and the order-processing taxonomy:
//   - InvalidTransitionError: an attempted lifecycle change the state machine forbids
//   - UnsupportedGlyphError: the embedded typeface cannot encode required text
//   - TransportFailureError: a network boundary call (fetch, email, engine) failed
//   - VersionConflictError: an optimistic read-modify-write lost a race (internal, retried)
//
// Each error type follows a consistent pattern:
//   - A sentinel error variable (e.g., ErrObjectNotFound)
//   - A struct type with fields for error details
//   - Constructor functions with and without cause
//   - Error() method for formatting the error message
//   - Unwrap() method for error wrapping/unwrapping support
//
// This standardized approach enables classification with errors.Is at the
// HTTP boundary without string matching, and keeps retryable failures
// (transport, version conflicts) distinguishable from caller bugs.
package errs
