package model

import "time"

// AuditLogEntry is an append-only forensic record of a state-changing
// action on a booking. Entries are advisory; they are never read back to
// reconstruct booking state.
type AuditLogEntry struct {
	ID        string         `json:"id,omitempty" bson:"_id,omitempty"`
	ActorUID  string         `json:"actor_uid" bson:"actor_uid"`
	Action    string         `json:"action" bson:"action"`
	BookingID string         `json:"booking_id" bson:"booking_id"`
	Before    map[string]any `json:"before,omitempty" bson:"before,omitempty"`
	After     map[string]any `json:"after,omitempty" bson:"after,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty" bson:"metadata,omitempty"`
	CreatedAt time.Time      `json:"created_at" bson:"created_at"`
}

// Audit actions recorded by the booking service.
const (
	AuditActionStatusChange = "status_change"
	AuditActionDelete       = "delete"
	AuditActionOwnerPatch   = "owner_patch"
)
