// Package kernel contains shared value objects used across the domain model:
// identifiers, the acting user, and geographic coordinates. All types in this
// package are immutable and must be created through their constructor
// functions; zero values fail validation.
package kernel
