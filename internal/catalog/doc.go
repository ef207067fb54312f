// Package catalog builds a linked catalog of views, tables and get-tables
// from a YAML document.
//
// Each top-level key of the document names an item. Items are classified by
// the keys they carry (rpc: get-table, view or item: table, otherwise view)
// and built on demand: building an item first builds every item it
// references, and every built item is memoized so shared references resolve
// to the same value.
//
// An item carrying only an item key is a table without a view, so it can be
// referenced from a view field:
//
//	EthPortView:
//	  fields:
//	    address: AddressTable   # sub-table
//	AddressTable:
//	  item: address-family      # no rpc, no view: still a table
//
// A Loader is single-use and not safe for concurrent use. Load and LoadBytes
// create a fresh Loader per call.
package catalog
