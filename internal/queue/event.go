// Package queue defines message payloads exchanged over the message broker.
package queue

// Actions recorded by the inventory event stream.
const (
	ActionDeviceAdded   = "device.added"
	ActionDeviceDeleted = "device.deleted"
	ActionAssigned      = "device.assigned"
	ActionUnassigned    = "device.unassigned"
	ActionStatusChanged = "device.status-changed"
)

// InventoryEvent is published whenever a device record changes hands or
// state.  It carries enough context for downstream consumers to build an
// audit trail without querying the primary database.
type InventoryEvent struct {
	Action       string  `json:"action"`
	Category     string  `json:"category,omitempty"`
	SerialNumber string  `json:"serial_number"`
	Actor        string  `json:"actor"`
	ClientID     *uint64 `json:"client_id,omitempty"`
	StatusID     *uint64 `json:"status_id,omitempty"`
	OccurredAt   string  `json:"occurred_at"`
}
