// Package novalite is the top-level facade for the novalite reader.
package novalite

import (
	"github.com/tuannm99/novalite/internal/engine"
	"github.com/tuannm99/novalite/internal/record"
)

type (
	Database = engine.Database
	Info     = engine.Info
	Row      = record.Row
	Value    = record.Value
)

var ErrTableNotFound = engine.ErrTableNotFound

// Open reads the header of the database file at path.
func Open(path string) (*Database, error) {
	return engine.Open(path)
}
