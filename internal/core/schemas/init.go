// Package schemas registers the built-in flag schemas with the core registry.
// Import this package to ensure all schemas are registered.
package schemas

// DefaultName is the schema used when none is configured.
const DefaultName = MeMoonName
