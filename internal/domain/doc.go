// Package domain defines the core domain types and interfaces.
//
// Concept-oriented files (analysis.go, sense.go, extract.go, errors.go) hold the
// shared types and cross-cutting interfaces. Beyond small constructors and parsing
// there is no behavior here.
package domain
