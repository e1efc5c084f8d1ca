package audit

import (
	"context"
	"time"

	logger "gitlab.com/roleapp1/role.api_server/src/production/ROLE.Logger"
	rolemodels "gitlab.com/roleapp1/role.api_server/src/production/ROLE.Models"
	interfaces "gitlab.com/roleapp1/role.api_server/src/production/ROLE.Repository/Interfaces"
)

// DefaultCollection is the append-only event collection.
const DefaultCollection = "audit_logs"

// Logger appends audit events for role mutations. Writes are best-effort:
// a broken audit sink must never block or fail the triggering mutation, so
// every failure is swallowed and reported as a warning.
type Logger struct {
	store      interfaces.Store
	collection string
	log        *logger.Logger
}

// NewLogger creates an audit logger writing to the given collection.
func NewLogger(store interfaces.Store, collection string, log *logger.Logger) *Logger {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Logger{
		store:      store,
		collection: collection,
		log:        log.WithComponent("audit"),
	}
}

// Record stamps the event and appends it to the event store.
func (l *Logger) Record(ctx context.Context, event rolemodels.AuditEvent) {
	event.CreatedAt = time.Now().UTC()
	if _, err := l.store.Add(ctx, l.collection, event.ToDocument()); err != nil {
		l.log.WithFields(map[string]interface{}{
			"action":  event.Action,
			"uid":     event.UID,
			"role_id": event.RoleID,
		}).WarnWithError(err, "Failed to store audit event")
		return
	}
	l.log.WithField("action", event.Action).Debug("Audit event stored")
}
