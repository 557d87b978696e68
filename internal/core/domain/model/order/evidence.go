package order

import (
	"errors"
	"fmt"
	"time"

	"jewelflow/internal/core/domain/model/kernel"
	"jewelflow/internal/pkg/errs"
)

// ErrEvidenceIsRequired is returned when a stage completion is attempted
// without a completion evidence reference. The order is left unchanged.
var ErrEvidenceIsRequired = errors.New("completion evidence is required")

// QCOutcome tags the result of a quality check submitted together with
// completion evidence at the QC stage. It is ignored at every other stage.
type QCOutcome int

const (
	// QCOutcomeNone means no quality check result accompanies the evidence.
	QCOutcomeNone QCOutcome = iota

	// QCOutcomePass approves the order for ordinary advancement past QC.
	QCOutcomePass

	// QCOutcomeFail rejects the order, rolling it back for rework.
	QCOutcomeFail
)

// QCOutcomeFromString parses an outcome tag ("", "pass", "fail").
func QCOutcomeFromString(s string) (QCOutcome, error) {
	switch s {
	case "":
		return QCOutcomeNone, nil
	case "pass":
		return QCOutcomePass, nil
	case "fail":
		return QCOutcomeFail, nil
	default:
		return QCOutcomeNone, errs.NewValueIsInvalidErrorWithCause("qcOutcome",
			fmt.Errorf("%q is not a valid qc outcome", s))
	}
}

// String implements fmt.Stringer. QCOutcomeNone renders as the empty string.
func (o QCOutcome) String() string {
	switch o {
	case QCOutcomePass:
		return "pass"
	case QCOutcomeFail:
		return "fail"
	default:
		return ""
	}
}

// Evidence is the proof-of-completion record required to advance an order past
// a stage: an opaque reference to the uploaded artifact plus the identity of
// the actor who produced it and the time it was recorded.
//
// Evidence is attached to exactly one (order, stage) pair; that pair is also
// the idempotency key tolerating upload retries. Evidence is recorded in the
// same transaction as the stage advancement it unlocks, so no observer can see
// one without the other.
type Evidence struct {
	orderID    kernel.UUID
	stage      Stage
	ref        string
	actor      string
	qcOutcome  QCOutcome
	recordedAt time.Time
}

// NewEvidence creates a validated Evidence record for the given (order, stage)
// pair. ref is the opaque reference returned by the evidence storage service;
// its content is never inspected here.
//
// Returns ErrEvidenceIsRequired when ref is empty, and a validation error when
// the order id, stage, or actor is invalid.
func NewEvidence(orderID kernel.UUID, stage Stage, ref, actor string, qcOutcome QCOutcome) (*Evidence, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	if err := stage.Validate(); err != nil {
		return nil, err
	}
	if stage.IsTerminal() {
		return nil, errs.NewValueIsInvalidErrorWithCause("stage",
			fmt.Errorf("no evidence can be attached to the terminal stage"))
	}
	if ref == "" {
		return nil, ErrEvidenceIsRequired
	}
	if actor == "" {
		return nil, errs.NewValueIsRequiredError("actor")
	}

	return &Evidence{
		orderID:    orderID,
		stage:      stage,
		ref:        ref,
		actor:      actor,
		qcOutcome:  qcOutcome,
		recordedAt: time.Now().UTC(),
	}, nil
}

// RestoreEvidence reconstructs an Evidence record from persistence.
func RestoreEvidence(
	orderID kernel.UUID,
	stage Stage,
	ref, actor string,
	qcOutcome QCOutcome,
	recordedAt time.Time,
) (*Evidence, error) {
	evidence, err := NewEvidence(orderID, stage, ref, actor, qcOutcome)
	if err != nil {
		return nil, err
	}
	evidence.recordedAt = recordedAt
	return evidence, nil
}

// OrderID returns the id of the order the evidence belongs to.
func (e *Evidence) OrderID() kernel.UUID {
	return e.orderID
}

// Stage returns the stage the evidence completes.
func (e *Evidence) Stage() Stage {
	return e.stage
}

// Ref returns the opaque reference to the stored evidence artifact.
func (e *Evidence) Ref() string {
	return e.ref
}

// Actor returns the identity of the worker who submitted the evidence.
func (e *Evidence) Actor() string {
	return e.actor
}

// QCOutcome returns the quality check tag carried with the evidence.
func (e *Evidence) QCOutcome() QCOutcome {
	return e.qcOutcome
}

// RecordedAt returns when the evidence was recorded.
func (e *Evidence) RecordedAt() time.Time {
	return e.recordedAt
}
