// Package repository implements data access over MySQL.  Each entity keeps
// its own sentinel errors so handlers can map failures onto HTTP responses
// with errors.Is instead of string matching.
package repository

import "strings"

// dupKey reports whether a MySQL error is a duplicate-key violation (1062).
func dupKey(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "1062")
}
