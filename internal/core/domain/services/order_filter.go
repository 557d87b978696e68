package services

import (
	"strings"

	"jewelflow/internal/core/domain/model/order"
)

// OrderFilter is a domain service that narrows an order snapshot down to the
// orders matching a free-text search and a stage selector. It is a pure
// predicate over already-fetched orders; it never touches persistence.
//
// Matching rules:
//   - Text matches case-insensitively as a substring of the order number,
//     client name, or product name. An empty text matches everything.
//   - Stage matches by exact display name. Empty or "All" means no
//     stage constraint.
//   - Both constraints must hold for an order to pass.
type OrderFilter struct {
	text  string
	stage string
}

// NewOrderFilter creates an OrderFilter from raw query input. The inputs are
// normalized here once so Matches stays allocation-free per order.
func NewOrderFilter(text, stage string) OrderFilter {
	if stage == "All" {
		stage = ""
	}
	return OrderFilter{
		text:  strings.ToLower(strings.TrimSpace(text)),
		stage: stage,
	}
}

// Matches reports whether the order satisfies every constraint of the filter.
func (f OrderFilter) Matches(o *order.Order) bool {
	if o == nil {
		return false
	}
	return f.matchesText(o) && f.matchesStage(o)
}

// Apply returns the orders that pass the filter, preserving input order.
func (f OrderFilter) Apply(orders []*order.Order) []*order.Order {
	if f.text == "" && f.stage == "" {
		return orders
	}

	matched := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if f.Matches(o) {
			matched = append(matched, o)
		}
	}
	return matched
}

func (f OrderFilter) matchesText(o *order.Order) bool {
	if f.text == "" {
		return true
	}
	return strings.Contains(strings.ToLower(o.OrderNo()), f.text) ||
		strings.Contains(strings.ToLower(o.ClientName()), f.text) ||
		strings.Contains(strings.ToLower(o.ProductName()), f.text)
}

func (f OrderFilter) matchesStage(o *order.Order) bool {
	if f.stage == "" {
		return true
	}
	return o.Stage().String() == f.stage
}
