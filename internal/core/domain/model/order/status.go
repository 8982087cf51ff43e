package order

import (
	"fmt"
	"strings"

	"orderdesk/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	Placed ──> Completed
//	Pending ──> Completed   (reserved, never produced by submission)
//
// Completed is terminal. The wire form of a status is its lowercase name.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// Pending is reserved for a future pre-placement step. Orders read from
	// the store may carry it; submission never produces it.
	Pending

	// Placed is the initial status of every submitted order.
	Placed

	// Completed indicates the kitchen has handed the order over.
	// This is a final state with no further transitions allowed.
	Completed
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:   "unknown",
		Pending:   "pending",
		Placed:    "placed",
		Completed: "completed",
	}
}

func getValidStatusStrings() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "pending",
		Placed:    "placed",
		Completed: "completed",
	}
}

func getStatusLabels() map[Status]string {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]string{
		Pending:   "Pending",
		Placed:    "Placed",
		Completed: "Completed",
	}
}

// Statuses returns the valid statuses in workflow order.
func Statuses() []Status {
	return []Status{Pending, Placed, Completed}
}

// ParseStatus converts the wire form of a status. Matching ignores case and
// surrounding whitespace.
//
// Example:
//
//	s, err := order.ParseStatus("placed") // order.Placed, nil
func ParseStatus(value string) (Status, error) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	for status, str := range getValidStatusStrings() {
		if str == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a valid status", value),
	)
}

// Validate checks if the Status value is valid.
//
// Valid statuses are: Pending, Placed, Completed.
// Unknown (0) and any other values are invalid.
func (s Status) Validate() error {
	if _, ok := getValidStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire form of the status. It is safe to call on any
// value; invalid ones render as "unknown".
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// Label returns the display text of the status.
func (s Status) Label() string {
	if label, ok := getStatusLabels()[s]; ok {
		return label
	}
	return "Unknown"
}

// IsTerminal reports whether no further transition is possible.
func (s Status) IsTerminal() bool {
	return s == Completed
}

// Advance returns the next status. The policy is permissive: every valid
// status other than Completed moves straight to Completed.
//
// Returns:
//   - (Completed, nil) for Pending and Placed
//   - (Unknown, ValidationError "terminal-state") for Completed
//   - (Unknown, error) for invalid statuses
//
// Example:
//
//	next, err := order.Placed.Advance() // order.Completed, nil
func (s Status) Advance() (Status, error) {
	if err := s.Validate(); err != nil {
		return Unknown, err
	}
	if s.IsTerminal() {
		return Unknown, errs.NewValidationErrorWithCause(
			errs.ReasonTerminalState,
			fmt.Errorf("%s is a final status", s),
		)
	}
	return Completed, nil
}
