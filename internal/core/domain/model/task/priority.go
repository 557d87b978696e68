package task

import (
	"fmt"
	"time"

	"jewelflow/internal/pkg/errs"
)

// Priority ranks a task by due-date proximity. The integer values are ordered
// so that a higher value means a more urgent task.
type Priority int

const (
	// PriorityUnknown represents an invalid or undefined priority.
	PriorityUnknown Priority = iota

	// Low priority: the deadline is comfortably far away, or absent.
	Low

	// Medium priority: the deadline is approaching.
	Medium

	// High priority: the deadline is imminent or already missed.
	High
)

func getPriorityStrings() map[Priority]string {
	return map[Priority]string{
		PriorityUnknown: "unknown",
		Low:             "low",
		Medium:          "medium",
		High:            "high",
	}
}

// PriorityFromString parses a priority from its string representation.
func PriorityFromString(s string) (Priority, error) {
	switch s {
	case "low":
		return Low, nil
	case "medium":
		return Medium, nil
	case "high":
		return High, nil
	default:
		return PriorityUnknown, errs.NewValueIsInvalidErrorWithCause("priority",
			fmt.Errorf("%q is not a valid priority", s))
	}
}

// Validate checks if the Priority value is valid.
func (p Priority) Validate() error {
	if p != Low && p != Medium && p != High {
		return errs.NewValueIsInvalidErrorWithCause("priority",
			fmt.Errorf("%d is not a valid priority", p))
	}
	return nil
}

// String implements fmt.Stringer.
func (p Priority) String() string {
	if str, ok := getPriorityStrings()[p]; ok {
		return str
	}
	return "unknown"
}

// Thresholds configures the due-date windows, in days, that map a deadline to
// a priority. A task is High when its deadline is within HighDays from now
// (or already past), Medium when within MediumDays, Low otherwise.
type Thresholds struct {
	HighDays   int
	MediumDays int
}

// DefaultThresholds returns the workshop's standard urgency windows:
// 3 days for high, 10 days for medium.
func DefaultThresholds() Thresholds {
	return Thresholds{HighDays: 3, MediumDays: 10}
}

// Validate checks that the windows are positive and properly nested.
func (t Thresholds) Validate() error {
	if t.HighDays < 1 {
		return errs.NewValueIsOutOfRangeError("highDays", t.HighDays, 1, t.MediumDays)
	}
	if t.MediumDays < t.HighDays {
		return errs.NewValueIsOutOfRangeError("mediumDays", t.MediumDays, t.HighDays, int(^uint(0)>>1))
	}
	return nil
}

// PriorityFor maps a deadline to a priority relative to now. A nil deadline
// means the client set no due date, which is Low. An overdue deadline is High.
func (t Thresholds) PriorityFor(deadline *time.Time, now time.Time) Priority {
	if deadline == nil {
		return Low
	}

	remaining := deadline.Sub(now)
	switch {
	case remaining <= time.Duration(t.HighDays)*24*time.Hour:
		return High
	case remaining <= time.Duration(t.MediumDays)*24*time.Hour:
		return Medium
	default:
		return Low
	}
}
