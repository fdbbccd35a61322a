// file: internals/features/profiles/sections/reconcile/classify.go
package reconcile

import (
	"regexp"
	"strings"
)

type IDClass int

const (
	// IDTemporary: client-generated placeholder, never sent as an update target.
	IDTemporary IDClass = iota
	// IDExisting: a real database id; saves update instead of insert.
	IDExisting
)

var (
	// uuid.Parse is too permissive here (it accepts non-v4 variants),
	// and a misclassified almost-UUID would update a nonexistent row.
	reUUIDv4  = regexp.MustCompile(`^[0-9a-fA-F]{8}-[0-9a-fA-F]{4}-4[0-9a-fA-F]{3}-[89abAB][0-9a-fA-F]{3}-[0-9a-fA-F]{12}$`)
	reNumeric = regexp.MustCompile(`^[0-9]+$`)
)

// ClassifyID decides whether an in-memory id refers to a persisted row.
//
// A wrong "existing" answer makes the save update a row that is not
// there; a wrong "temporary" answer duplicates a field that is. The
// rules, in order:
//   - UUID v4 or a pure numeric string (legacy rows) → existing
//   - contains a hyphen and is longer than 30 chars (composite
//     client-generated ids) → temporary
//   - everything else, including empty → temporary
func ClassifyID(id string) IDClass {
	id = strings.TrimSpace(id)
	if id == "" {
		return IDTemporary
	}
	if reUUIDv4.MatchString(id) || reNumeric.MatchString(id) {
		return IDExisting
	}
	if strings.Contains(id, "-") && len(id) > 30 {
		return IDTemporary
	}
	return IDTemporary
}

// IsPersistedID is sugar for the common branch.
func IsPersistedID(id string) bool { return ClassifyID(id) == IDExisting }
