// Package ir provides the canonical value types used for content hashing.
//
// This package has no internal imports. Higher layers (frozen, model, store)
// convert their data to ir values and hash the RFC 8785 canonical JSON form,
// so two structurally equal values always produce the same digest no matter
// how they were built.
//
// Key constraints:
//   - Object keys are ordered by UTF-16 code units, never by UTF-8 bytes
//   - Strings are encoded exactly; invalid UTF-8 is rejected
//   - Floats must be finite; NaN and Inf have no canonical form
//   - Null is representable but rejected by MarshalCanonical
package ir
