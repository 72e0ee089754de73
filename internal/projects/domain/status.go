package domain

import (
	"fmt"
	"strings"
)

// Status is the lifecycle state of a project.
type Status string

const (
	StatusActive    Status = "active"
	StatusOnHold    Status = "on_hold"
	StatusCompleted Status = "completed"
)

// Statuses lists every valid status in display order.
var Statuses = []Status{StatusActive, StatusOnHold, StatusCompleted}

// transitions is the full directed transition table. A pair missing from the
// table is refused, including same-status requests.
var transitions = map[Status]map[Status]bool{
	StatusActive: {
		StatusOnHold:    true,
		StatusCompleted: true,
	},
	StatusOnHold: {
		StatusActive:    true,
		StatusCompleted: true,
	},
	StatusCompleted: {},
}

// ParseStatus reports whether s names a known status.
func ParseStatus(s string) (Status, bool) {
	st := Status(s)
	_, ok := transitions[st]
	return st, ok
}

// Valid reports whether s is one of the known statuses.
func (s Status) Valid() bool {
	_, ok := transitions[s]
	return ok
}

// Terminal reports whether no transition leaves s.
func (s Status) Terminal() bool {
	return s.Valid() && len(transitions[s]) == 0
}

// AllowedTransitions returns the statuses reachable from s in display order.
func AllowedTransitions(from Status) []Status {
	out := make([]Status, 0, len(Statuses))
	for _, to := range Statuses {
		if transitions[from][to] {
			out = append(out, to)
		}
	}
	return out
}

// CanTransition applies the transition guard. When the move is refused the
// second return value explains why.
func CanTransition(from, to Status) (bool, string) {
	if transitions[from][to] {
		return true, ""
	}
	if from.Terminal() {
		return false, fmt.Sprintf("cannot transition from %s status", from)
	}

	allowed := AllowedTransitions(from)
	names := make([]string, len(allowed))
	for i, st := range allowed {
		names[i] = string(st)
	}
	list := strings.Join(names, ", ")
	if list == "" {
		list = "none"
	}
	return false, fmt.Sprintf("invalid status transition: '%s' → '%s'. Allowed: %s", from, to, list)
}

// CheckTransition is CanTransition expressed as an error.
func CheckTransition(from, to Status) error {
	if ok, reason := CanTransition(from, to); !ok {
		return NewTransitionError(reason)
	}
	return nil
}
