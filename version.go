// Package optable builds data-access classes for device operational tables
// from declarative YAML catalogs.
package optable

// Version is the current optable release.
const Version = "0.3.0"
