// SPDX-License-Identifier: MPL-2.0

// Package cueutil decodes CUE documents against embedded schemas.
//
// Catalog files, module artifacts and the configuration file all follow the
// same flow: compile the schema, unify the document with one of its
// definitions, validate, then decode into a Go value.
//
//	//go:embed catalog_schema.cue
//	var schema []byte
//
//	doc, err := cueutil.Decode[catalogDoc](schema, data, "#Catalog",
//	    cueutil.WithFilename("catalog.cue"))
//
// Errors carry the file name and a JSON-path style location of the failing
// field (e.g. "catalog.cue: modules.widget[1]: conflicting values").
package cueutil
