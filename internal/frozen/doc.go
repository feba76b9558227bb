// Package frozen provides an immutable, hashable mapping.
//
// Map has no mutating methods at all, so mutation is a compile error. Code
// that works against the Mapping interface and needs to mutate goes through
// the package-level helpers (Assign, Delete, Pop, PopItem, SetDefault,
// Update); they return an *UnsupportedError for anything that is not a
// MutableMapping, leaving the contents untouched.
//
// Map.Hash depends only on contents, never on construction order, so frozen
// maps of annotations or configuration can serve as identity keys.
package frozen
