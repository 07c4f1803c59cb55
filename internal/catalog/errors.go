package catalog

import (
	"errors"
	"fmt"
)

// Sentinel errors for catalog sources.
var (
	// ErrUnknownDriver indicates a SQL driver name other than sqlite or mysql.
	ErrUnknownDriver = errors.New("unknown catalog driver")
	// ErrNoCatalog indicates a catalog source produced no entries.
	ErrNoCatalog = errors.New("catalog has no entries")
)

// IssueKind classifies a data-quality problem found while building an index.
type IssueKind string

const (
	// IssueDuplicateName indicates two entries share a name; the first wins.
	IssueDuplicateName IssueKind = "duplicate_name"
	// IssuePairCollision indicates two entries share an exact
	// ascending/descending pair; the first registered name keeps it.
	IssuePairCollision IssueKind = "pair_collision"
	// IssueParentConflict indicates a derived entry declares a parent other
	// than the root that first listed it.
	IssueParentConflict IssueKind = "parent_conflict"
	// IssueInvalidForm indicates a form with tokens outside the alphabet.
	IssueInvalidForm IssueKind = "invalid_form"
	// IssueUnknownParent indicates a derived entry whose parent is not a root
	// in the catalog.
	IssueUnknownParent IssueKind = "unknown_parent"
)

// Issue records a data-quality problem. Build never fails on issues; it
// applies first-registration-wins and reports what it discarded.
type Issue struct {
	Kind   IssueKind
	Name   string // entry that lost or was affected
	Other  string // entry that won, when there is one
	Detail string
}

// String returns a one-line description.
func (i Issue) String() string {
	s := fmt.Sprintf("%s: %s", i.Kind, i.Name)
	if i.Other != "" {
		s += " (kept " + i.Other + ")"
	}
	if i.Detail != "" {
		s += ": " + i.Detail
	}
	return s
}
