package order

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"jewelflow/internal/core/domain/model/kernel"
	"jewelflow/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory methods.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrTerminalStage is returned when an advancement is attempted on an order
	// that has already moved past the Delivery stage. The order is unaffected.
	ErrTerminalStage = errors.New("order is already at the terminal stage")

	// ErrInvalidTransition is returned when a lifecycle transition is not
	// allowed from the order's current status, e.g. cancelling an order that is
	// already completed or cancelled.
	ErrInvalidTransition = errors.New("status transition is not allowed")

	// ErrTaskAlreadyClaimed is returned when a worker tries to claim a task
	// that another worker already holds. Re-claims by the same worker are
	// idempotent and do not produce this error.
	ErrTaskAlreadyClaimed = errors.New("task is already claimed by another worker")
)

// Spec carries the client-supplied fields for a new order: client contact
// details and the artifact specification. It is plain input data; all
// validation happens in NewOrder.
type Spec struct {
	ClientName  string
	ClientPhone string
	ClientEmail string
	ProductName string
	Material    Material
	Purity      Purity
	Weight      decimal.Decimal
	Quantity    int
	Deadline    *time.Time
	Notes       string
}

// Order represents a client's production request tracked through the fixed
// stage sequence. It is the aggregate root that manages the order lifecycle
// from creation through stage advancement to completion.
//
// Order follows these invariants:
//   - currentStage is always a member of the fixed stage sequence or Terminal
//   - status is completed if and only if currentStage is Terminal
//   - version increments exactly once per successful mutation; every update is
//     persisted as a compare-and-swap against the version the aggregate was
//     loaded with, so concurrent mutations cannot be silently lost
//   - purity is present if and only if the material is Gold
//   - can only be created through NewOrder or RestoreOrder
type Order struct {
	id      kernel.UUID
	orderNo string

	clientName  string
	clientPhone string
	clientEmail string

	productName string
	material    Material
	purity      Purity
	weight      decimal.Decimal
	quantity    int

	deadline *time.Time
	notes    string

	stage          Stage
	status         Status
	assignedWorker string

	createdAt time.Time
	version   int64

	// persistedVersion is the version the aggregate was loaded with; it is the
	// compare value for the optimistic concurrency check on update.
	persistedVersion int64

	isConstructed bool
}

// NewOrder creates a new Order at the first production stage with pending
// status and version 0. Validation stops at the first failing field so the
// caller can surface exactly one actionable error.
//
// Required: client name, client phone, product name, material, positive
// weight, quantity >= 1. Purity is required for Gold and forbidden otherwise.
func NewOrder(id kernel.UUID, orderNo string, spec Spec) (*Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if orderNo == "" {
		return nil, errs.NewValueIsRequiredError("orderNo")
	}

	order := &Order{
		id:            id,
		orderNo:       orderNo,
		stage:         FirstStage(),
		status:        Pending,
		createdAt:     time.Now().UTC(),
		isConstructed: true,
	}

	if err := order.setClientName(spec.ClientName); err != nil {
		return nil, err
	}
	if err := order.setClientPhone(spec.ClientPhone); err != nil {
		return nil, err
	}
	if err := order.setProductName(spec.ProductName); err != nil {
		return nil, err
	}
	if err := order.setMaterial(spec.Material, spec.Purity); err != nil {
		return nil, err
	}
	if err := order.setWeight(spec.Weight); err != nil {
		return nil, err
	}
	if err := order.setQuantity(spec.Quantity); err != nil {
		return nil, err
	}

	order.clientEmail = spec.ClientEmail
	order.deadline = spec.Deadline
	order.notes = spec.Notes

	return order, nil
}

// RestoreOrder reconstructs an Order aggregate from persistence with its full
// lifecycle state. The restored version becomes the compare value for the next
// optimistic concurrency check.
func RestoreOrder(
	id kernel.UUID,
	orderNo string,
	spec Spec,
	stage Stage,
	status Status,
	assignedWorker string,
	createdAt time.Time,
	version int64,
) (*Order, error) {
	order, err := NewOrder(id, orderNo, spec)
	if err != nil {
		return nil, err
	}
	if err = stage.Validate(); err != nil {
		return nil, err
	}
	if err = status.Validate(); err != nil {
		return nil, err
	}
	if version < 0 {
		return nil, errs.NewVersionIsInvalidError("version",
			fmt.Errorf("%d is negative", version))
	}

	order.stage = stage
	order.status = status
	order.assignedWorker = assignedWorker
	order.createdAt = createdAt
	order.version = version
	order.persistedVersion = version
	return order, nil
}

// Validate ensures the Order instance was properly constructed through a
// factory method. This prevents bypassing validation by directly instantiating
// the struct.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// OrderNo returns the human-readable order number, e.g. "JF-2026-001".
func (o *Order) OrderNo() string {
	return o.orderNo
}

// ClientName returns the client's name.
func (o *Order) ClientName() string {
	return o.clientName
}

// ClientPhone returns the client's phone number.
func (o *Order) ClientPhone() string {
	return o.clientPhone
}

// ClientEmail returns the client's email address, empty when not provided.
func (o *Order) ClientEmail() string {
	return o.clientEmail
}

// ProductName returns the artifact's product name.
func (o *Order) ProductName() string {
	return o.productName
}

// Material returns the artifact's material.
func (o *Order) Material() Material {
	return o.material
}

// Purity returns the gold purity grade, PurityNone for non-gold artifacts.
func (o *Order) Purity() Purity {
	return o.purity
}

// Weight returns the artifact weight in grams.
func (o *Order) Weight() decimal.Decimal {
	return o.weight
}

// Quantity returns the number of pieces ordered.
func (o *Order) Quantity() int {
	return o.quantity
}

// Deadline returns the requested completion date, nil when none was given.
func (o *Order) Deadline() *time.Time {
	return o.deadline
}

// Notes returns the free-text special instructions.
func (o *Order) Notes() string {
	return o.notes
}

// Stage returns the order's current production stage.
func (o *Order) Stage() Stage {
	return o.stage
}

// Status returns the current lifecycle status of the order.
func (o *Order) Status() Status {
	return o.status
}

// AssignedWorker returns the worker currently holding the order's task,
// empty when unclaimed.
func (o *Order) AssignedWorker() string {
	return o.assignedWorker
}

// CreatedAt returns when the order was created.
func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// Version returns the current aggregate version. It increments once per
// successful mutation and implements optimistic concurrency control.
func (o *Order) Version() int64 {
	return o.version
}

// PersistedVersion returns the version the aggregate was loaded with. The
// repository compares it against the stored version when writing; a mismatch
// means another actor mutated the order concurrently.
func (o *Order) PersistedVersion() int64 {
	return o.persistedVersion
}

// IsActive reports whether the order still participates in the production
// workflow, i.e. it is neither completed nor cancelled.
func (o *Order) IsActive() bool {
	return o.status.IsActive()
}

// Claim assigns the order's current task to a worker and marks the order
// in progress.
//
// Re-claiming by the same worker is idempotent and leaves the order unchanged.
// Returns ErrTaskAlreadyClaimed when a different worker holds the claim and
// ErrInvalidTransition when the order is completed or cancelled.
func (o *Order) Claim(worker string) error {
	if worker == "" {
		return errs.NewValueIsRequiredError("worker")
	}
	if !o.IsActive() {
		return ErrInvalidTransition
	}
	if o.assignedWorker == worker {
		return nil
	}
	if o.assignedWorker != "" {
		return ErrTaskAlreadyClaimed
	}

	o.assignedWorker = worker
	o.status = InProgress
	o.version++
	return nil
}

// Release clears the task assignment. The status reverts to pending when the
// order is still at the first stage (no work has been accepted yet), and stays
// in progress otherwise.
//
// Releasing an unclaimed order is a no-op. Returns ErrInvalidTransition when
// the order is completed or cancelled.
func (o *Order) Release() error {
	if !o.IsActive() {
		return ErrInvalidTransition
	}
	if o.assignedWorker == "" {
		return nil
	}

	o.assignedWorker = ""
	if o.stage == FirstStage() {
		o.status = Pending
	} else {
		o.status = InProgress
	}
	o.version++
	return nil
}

// Advance moves the order to the next stage in the fixed sequence, clearing
// the worker assignment so the next stage's task starts unclaimed.
//
// When the resulting stage is Terminal the status becomes completed. At the QC
// stage the outcome tag decides the route: a fail outcome rolls the order back
// to the stage preceding QC with status qc_fail instead of progressing, while
// a pass outcome behaves like ordinary advancement.
//
// Returns ErrTerminalStage when the order is already terminal and
// ErrInvalidTransition when it is cancelled. The order is unchanged on error.
func (o *Order) Advance(qcOutcome QCOutcome) error {
	if o.stage.IsTerminal() || o.status == Completed {
		return ErrTerminalStage
	}
	if o.status == Cancelled {
		return ErrInvalidTransition
	}

	if o.stage == QC && qcOutcome == QCOutcomeFail {
		previous, err := o.stage.Previous()
		if err != nil {
			return err
		}
		o.stage = previous
		o.status = QCFail
		o.assignedWorker = ""
		o.version++
		return nil
	}

	next, err := o.stage.Next()
	if err != nil {
		return err
	}

	o.stage = next
	if next.IsTerminal() {
		o.status = Completed
	} else {
		o.status = InProgress
	}
	o.assignedWorker = ""
	o.version++
	return nil
}

// Cancel abandons the order from any non-final status.
//
// Returns ErrInvalidTransition when the order is already completed or
// cancelled.
func (o *Order) Cancel() error {
	newStatus, err := o.status.Cancel()
	if err != nil {
		return ErrInvalidTransition
	}

	o.status = newStatus
	o.assignedWorker = ""
	o.version++
	return nil
}

func (o *Order) setClientName(clientName string) error {
	if clientName == "" {
		return errs.NewValueIsRequiredError("clientName")
	}
	o.clientName = clientName
	return nil
}

func (o *Order) setClientPhone(clientPhone string) error {
	if clientPhone == "" {
		return errs.NewValueIsRequiredError("clientPhone")
	}
	o.clientPhone = clientPhone
	return nil
}

func (o *Order) setProductName(productName string) error {
	if productName == "" {
		return errs.NewValueIsRequiredError("productName")
	}
	o.productName = productName
	return nil
}

func (o *Order) setMaterial(material Material, purity Purity) error {
	if err := material.Validate(); err != nil {
		return err
	}
	if err := purity.Validate(); err != nil {
		return err
	}

	if material == Gold && purity == PurityNone {
		return errs.NewValueIsRequiredError("purity")
	}
	if material != Gold && purity != PurityNone {
		return errs.NewValueIsInvalidErrorWithCause("purity",
			fmt.Errorf("purity applies only to gold, not %s", material))
	}

	o.material = material
	o.purity = purity
	return nil
}

func (o *Order) setWeight(weight decimal.Decimal) error {
	if !weight.IsPositive() {
		return errs.NewValueIsInvalidErrorWithCause("weight",
			fmt.Errorf("%s is not greater than 0", weight))
	}
	o.weight = weight
	return nil
}

func (o *Order) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause("quantity",
			fmt.Errorf("%d is not at least 1", quantity))
	}
	o.quantity = quantity
	return nil
}
