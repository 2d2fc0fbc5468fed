// Package todo defines list items and the snapshot codec used to persist them.
//
// A snapshot is a JSON array of records in list order:
//
//	[
//	  {"text": "buy milk", "completed": false},
//	  {"text": "call mom", "completed": true}
//	]
//
// Item identifiers are assigned when an item is created or loaded and are
// never written to the snapshot; identity across sessions is positional.
//
// # Decoding
//
// DecodeSnapshot is lenient: absent, empty or malformed data yields an empty
// list, and individual records whose text is not a string are skipped.
// ParseSnapshot is the strict variant used when importing a file, where the
// caller wants to know why the data was rejected.
//
// # Validation
//
// Validate checks raw snapshot bytes against a JSON Schema (draft 2020-12).
// The built-in schema is embedded; a schema file may be supplied instead.
// When the schema cannot be compiled, a minimal structural check is used and
// a warning is reported.
package todo
