package rolemodels

import "time"

// Audit action kinds
const (
	AuditActionRoleCreate = "role_create"
	AuditActionRoleUpdate = "role_update"
	AuditActionRoleDelete = "role_delete"
)

// AuditEvent is an append-only record of a role mutation.
// Before is nil on create, After is nil on delete.
type AuditEvent struct {
	Action    string         `json:"action"`
	UID       string         `json:"uid"`
	RoleID    string         `json:"roleId,omitempty"`
	Before    map[string]any `json:"before"`
	After     map[string]any `json:"after"`
	CreatedAt time.Time      `json:"createdAt"`
}

// ToDocument converts the event to the schemaless form the store expects.
func (e AuditEvent) ToDocument() map[string]any {
	doc := map[string]any{
		"action":    e.Action,
		"uid":       e.UID,
		"before":    e.Before,
		"after":     e.After,
		"createdAt": e.CreatedAt,
	}
	if e.RoleID != "" {
		doc["roleId"] = e.RoleID
	}
	return doc
}
