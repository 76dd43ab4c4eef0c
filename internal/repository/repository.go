// Package repository implements the typed persistence access layer over the
// four catalog collections. Lookups are keyed by natural identifiers; every
// single-entity miss is reported as ErrNotFound so callers can tell a miss
// from a store failure. Required-field validation happens here, mirroring
// the schema validation of the store the catalog originally ran on.
package repository

import (
	"errors"
	"strings"
)

// ErrNotFound is returned when a natural-key lookup matches nothing.
var ErrNotFound = errors.New("not found")

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// likePattern builds a case-insensitive substring pattern from user input.
// LIKE metacharacters in the input are escaped so the term always matches
// literally.
func likePattern(search string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(search)) + "%"
}

// likeClause matches column against a user substring, case-insensitively,
// on both supported drivers.
const likeClause = ` ESCAPE '\'`
