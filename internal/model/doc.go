// Package model is a minimal in-memory metabolic model: metabolites,
// reactions with stoichiometry and flux bounds, and a Model that owns both.
//
// It is deliberately small. There is no solver and no flux analysis; the
// package exists so boundary reactions can be built, registered, indexed
// and persisted.
//
// A Model is not safe for concurrent mutation. Callers serialise writes.
// Logging goes through the *slog.Logger supplied with WithLogger; the
// default logger discards everything.
package model
