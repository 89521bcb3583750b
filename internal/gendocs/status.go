package gendocs

import "strings"

// Status is the review state of a generated document.
type Status string

const (
	StatusDraft    Status = "draft"
	StatusReviewed Status = "reviewed"
	StatusSent     Status = "sent"
)

// transitions is the full state machine. Absent entries are rejected, so
// skips and backward moves are impossible and sent is terminal.
var transitions = map[Status]map[Status]bool{
	StatusDraft:    {StatusReviewed: true},
	StatusReviewed: {StatusSent: true},
	StatusSent:     {},
}

// CanTransition reports whether a document may move from one status to the
// other.
func CanTransition(from, to Status) bool {
	return transitions[from][to]
}

// NormalizeStatus maps a raw value onto a known status.
func NormalizeStatus(raw string) (Status, bool) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case StatusDraft, StatusReviewed, StatusSent:
		return s, true
	default:
		return "", false
	}
}

// Editable reports whether the document content may still be replaced.
func (s Status) Editable() bool {
	return s == StatusDraft || s == StatusReviewed
}
