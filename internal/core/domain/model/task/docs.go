// Package task provides the derived task view of the production workflow.
//
// A task is not a stored entity: it is the projection of an active order's
// current stage into the unit of work an artisan claims, performs, and
// completes with evidence. The package also ranks tasks by urgency through
// the Priority enumeration, computed from the order deadline with
// configurable day thresholds.
package task
