package order

import (
	"fmt"

	"jewelflow/internal/pkg/errs"
)

// Stage represents one step in the fixed production sequence an order moves
// through, from initial design to delivery. The sequence is totally ordered:
//
//	Design -> Casting -> Filing -> Polish -> Setting -> QC -> Final -> Delivery
//
// Terminal is the distinguished marker reached after Delivery completes.
// No stage may be skipped or revisited, except that a failed QC check moves
// the order back to the stage preceding QC.
type Stage int

const (
	// StageUnknown represents an invalid or undefined stage.
	// This value (0) helps catch uninitialized Stage values.
	StageUnknown Stage = iota

	// Design is the initial stage assigned to every new order.
	Design

	// Casting is the metal casting stage.
	Casting

	// Filing is the filing and shaping stage.
	Filing

	// Polish is the surface polishing stage.
	Polish

	// Setting is the stone setting stage. A failed QC check returns the
	// order here for rework.
	Setting

	// QC is the quality control checkpoint. Completion at this stage carries
	// a pass/fail outcome that decides whether the order progresses or rolls
	// back to Setting.
	QC

	// Final is the final finishing stage after QC approval.
	Final

	// Delivery is the last production stage. Completing it ends the sequence.
	Delivery

	// Terminal is the distinguished value an order holds once it has moved
	// past Delivery. It is not a workable stage: no task derives from it and
	// no further advancement is possible.
	Terminal
)

func getStageStrings() map[Stage]string {
	return map[Stage]string{
		StageUnknown: "Unknown",
		Design:       "Design",
		Casting:      "Casting",
		Filing:       "Filing",
		Polish:       "Polish",
		Setting:      "Setting",
		QC:           "QC",
		Final:        "Final",
		Delivery:     "Delivery",
		Terminal:     "Complete",
	}
}

func getValidStageStrings() map[Stage]string {
	//nolint:exhaustive // StageUnknown is intentionally excluded as it's invalid
	return map[Stage]string{
		Design:   "Design",
		Casting:  "Casting",
		Filing:   "Filing",
		Polish:   "Polish",
		Setting:  "Setting",
		QC:       "QC",
		Final:    "Final",
		Delivery: "Delivery",
		Terminal: "Complete",
	}
}

// FirstStage returns the stage every new order starts at.
func FirstStage() Stage {
	return Design
}

// StageFromString parses a stage from its string representation.
// "Complete" parses to Terminal. Returns an error for unknown names.
func StageFromString(s string) (Stage, error) {
	for stage, name := range getValidStageStrings() {
		if name == s {
			return stage, nil
		}
	}
	return StageUnknown, errs.NewValueIsInvalidErrorWithCause("stage",
		fmt.Errorf("%q is not a valid stage", s))
}

// Validate checks if the Stage value is a member of the fixed sequence or the
// terminal marker. StageUnknown and out-of-range values are invalid.
func (s Stage) Validate() error {
	if _, ok := getValidStageStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("stage",
			fmt.Errorf("%d is not a valid stage", s))
	}
	return nil
}

// String returns the human-readable name of the stage.
// Terminal renders as "Complete". Implements fmt.Stringer.
func (s Stage) String() string {
	if str, ok := getStageStrings()[s]; ok {
		return str
	}
	return "Unknown"
}

// IsTerminal reports whether the stage is the terminal marker.
func (s Stage) IsTerminal() bool {
	return s == Terminal
}

// Next returns the stage immediately following the receiver, or Terminal when
// the receiver is the last workable stage (Delivery).
//
// Returns an error when called on Terminal or an invalid stage.
func (s Stage) Next() (Stage, error) {
	if err := s.Validate(); err != nil {
		return StageUnknown, err
	}
	if s.IsTerminal() {
		return StageUnknown, errs.NewValueIsInvalidErrorWithCause("stage",
			fmt.Errorf("%s has no next stage", s))
	}
	return s + 1, nil
}

// Previous returns the stage immediately preceding the receiver.
// Used by the QC-failure rollback to find the rework stage.
//
// Returns an error when called on the first stage, Terminal, or an invalid stage.
func (s Stage) Previous() (Stage, error) {
	if err := s.Validate(); err != nil {
		return StageUnknown, err
	}
	if s == FirstStage() || s.IsTerminal() {
		return StageUnknown, errs.NewValueIsInvalidErrorWithCause("stage",
			fmt.Errorf("%s has no previous stage", s))
	}
	return s - 1, nil
}
