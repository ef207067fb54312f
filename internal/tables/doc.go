// Package tables provides the building blocks a catalog is linked from.
//
// A Fields collector accumulates field registrations and finalizes into a
// FieldSet. A View projects raw device output into named, typed fields. A
// Table iterates a repeated item, optionally through a View, and a GetTable
// is a Table whose rows are fetched with a named RPC.
//
// Values built here are immutable once constructed and are shared by pointer,
// so two tables referencing the same view hold the same *View.
package tables
