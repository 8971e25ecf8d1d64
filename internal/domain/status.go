// internal/domain/status.go
package domain

import "strings"

// MovementType classifies a stock movement. Quantities are signed, so an
// ADJUSTMENT can move stock in either direction.
type MovementType string

const (
	MovementAdjustment MovementType = "ADJUSTMENT"
	MovementDamage     MovementType = "DAMAGE"
	MovementTransfer   MovementType = "TRANSFER"
	MovementReceipt    MovementType = "RECEIPT"
)

var movementTypeLabels = map[MovementType]string{
	MovementAdjustment: "Adjustment",
	MovementDamage:     "Damage",
	MovementTransfer:   "Transfer",
	MovementReceipt:    "Receipt",
}

// MovementTypeLabel returns a human-readable label for a movement type.
func MovementTypeLabel(t MovementType) string {
	if label, ok := movementTypeLabels[t]; ok {
		return label
	}

	return string(t)
}

// ParseMovementType returns the movement type for a given label (case-insensitive).
func ParseMovementType(s string) (MovementType, bool) {
	t := MovementType(strings.ToUpper(strings.TrimSpace(s)))
	_, ok := movementTypeLabels[t]

	return t, ok
}

// OrderStatus is the sales order lifecycle state
type OrderStatus string

const (
	OrderDraft     OrderStatus = "DRAFT"
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderApproved  OrderStatus = "APPROVED"
	OrderDelivered OrderStatus = "DELIVERED"
	OrderCancelled OrderStatus = "CANCELLED"
)

var orderTransitions = map[OrderStatus][]OrderStatus{
	OrderDraft:     {OrderPending, OrderCancelled},
	OrderPending:   {OrderConfirmed, OrderCancelled},
	OrderConfirmed: {OrderApproved, OrderCancelled},
	OrderApproved:  {OrderDelivered, OrderCancelled},
}

// CanTransition reports whether a sales order may move from its current
// status to the target status.
func (s OrderStatus) CanTransition(to OrderStatus) bool {
	for _, next := range orderTransitions[s] {
		if next == to {
			return true
		}
	}

	return false
}

// Terminal reports whether the order can no longer change state.
func (s OrderStatus) Terminal() bool {
	return len(orderTransitions[s]) == 0
}

// PurchaseStatus is the purchase order lifecycle state
type PurchaseStatus string

const (
	PurchaseDraft     PurchaseStatus = "DRAFT"
	PurchaseSubmitted PurchaseStatus = "SUBMITTED"
	PurchaseApproved  PurchaseStatus = "APPROVED"
	PurchaseReceived  PurchaseStatus = "RECEIVED"
	PurchaseCancelled PurchaseStatus = "CANCELLED"
)

var purchaseTransitions = map[PurchaseStatus][]PurchaseStatus{
	PurchaseDraft:     {PurchaseSubmitted, PurchaseCancelled},
	PurchaseSubmitted: {PurchaseApproved, PurchaseCancelled},
	PurchaseApproved:  {PurchaseReceived, PurchaseCancelled},
}

// CanTransition reports whether a purchase order may move to the target status.
func (s PurchaseStatus) CanTransition(to PurchaseStatus) bool {
	for _, next := range purchaseTransitions[s] {
		if next == to {
			return true
		}
	}

	return false
}

// AssemblyStatus is the assembly (manufacturing) order lifecycle state
type AssemblyStatus string

const (
	AssemblyDraft      AssemblyStatus = "DRAFT"
	AssemblyPlanned    AssemblyStatus = "PLANNED"
	AssemblyReleased   AssemblyStatus = "RELEASED"
	AssemblyInProgress AssemblyStatus = "IN_PROGRESS"
	AssemblyCompleted  AssemblyStatus = "COMPLETED"
	AssemblyCancelled  AssemblyStatus = "CANCELLED"
	AssemblyOnHold     AssemblyStatus = "ON_HOLD"
)

var assemblyTransitions = map[AssemblyStatus][]AssemblyStatus{
	AssemblyDraft:      {AssemblyPlanned, AssemblyCancelled},
	AssemblyPlanned:    {AssemblyReleased, AssemblyCancelled},
	AssemblyReleased:   {AssemblyInProgress, AssemblyCancelled},
	AssemblyInProgress: {AssemblyCompleted, AssemblyOnHold, AssemblyCancelled},
	AssemblyOnHold:     {AssemblyInProgress, AssemblyCancelled},
}

// CanTransition reports whether an assembly order may move to the target status.
func (s AssemblyStatus) CanTransition(to AssemblyStatus) bool {
	for _, next := range assemblyTransitions[s] {
		if next == to {
			return true
		}
	}

	return false
}

var assemblyStatusLabels = map[AssemblyStatus]string{
	AssemblyDraft:      "Draft",
	AssemblyPlanned:    "Planned",
	AssemblyReleased:   "Released",
	AssemblyInProgress: "In Progress",
	AssemblyCompleted:  "Completed",
	AssemblyCancelled:  "Cancelled",
	AssemblyOnHold:     "On Hold",
}

// AssemblyStatusLabel returns a human-readable label for an assembly status.
func AssemblyStatusLabel(s AssemblyStatus) string {
	if label, ok := assemblyStatusLabels[s]; ok {
		return label
	}

	return string(s)
}

// DocumentStatus is the lifecycle state of a financial document
// (invoice, bill, down payment, return, consignment receipt).
type DocumentStatus string

const (
	DocDraft         DocumentStatus = "DRAFT"
	DocPending       DocumentStatus = "PENDING"
	DocPartiallyPaid DocumentStatus = "PARTIALLY_PAID"
	DocPaid          DocumentStatus = "PAID"
	DocOverdue       DocumentStatus = "OVERDUE"
	DocCancelled     DocumentStatus = "CANCELLED"
	DocCompleted     DocumentStatus = "COMPLETED"
)

// TransferStatus is the lifecycle state of a stock transfer
type TransferStatus string

const (
	TransferPending   TransferStatus = "PENDING"
	TransferInTransit TransferStatus = "IN_TRANSIT"
	TransferCompleted TransferStatus = "COMPLETED"
	TransferCancelled TransferStatus = "CANCELLED"
)
