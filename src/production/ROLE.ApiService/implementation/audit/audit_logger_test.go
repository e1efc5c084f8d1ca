package audit

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	logger "gitlab.com/roleapp1/role.api_server/src/production/ROLE.Logger"
	rolemodels "gitlab.com/roleapp1/role.api_server/src/production/ROLE.Models"
	implementation "gitlab.com/roleapp1/role.api_server/src/production/ROLE.Repository/Implementation"
	interfaces "gitlab.com/roleapp1/role.api_server/src/production/ROLE.Repository/Interfaces"
)

func nopLogger() *logger.Logger {
	nop := zerolog.Nop()
	return &logger.Logger{Logger: &nop}
}

type brokenStore struct {
	*implementation.MemoryStore
}

func (s *brokenStore) Add(context.Context, string, map[string]any) (interfaces.Document, error) {
	return interfaces.Document{}, errors.New("sink down")
}

func TestRecordStampsAndStoresEvent(t *testing.T) {
	ctx := context.Background()
	store := implementation.NewMemoryStore()
	auditLogger := NewLogger(store, "", nopLogger())

	before := time.Now().UTC()
	auditLogger.Record(ctx, rolemodels.AuditEvent{
		Action: rolemodels.AuditActionRoleUpdate,
		UID:    "u1",
		RoleID: "r1",
		Before: map[string]any{"title": "old"},
		After:  map[string]any{"title": "new"},
	})

	docs, err := store.RunQuery(ctx, interfaces.NewQuery(DefaultCollection))
	require.NoError(t, err)
	require.Len(t, docs, 1)

	event := docs[0].Data
	assert.Equal(t, rolemodels.AuditActionRoleUpdate, event["action"])
	assert.Equal(t, "u1", event["uid"])
	assert.Equal(t, "r1", event["roleId"])
	assert.Equal(t, map[string]any{"title": "old"}, event["before"])
	assert.Equal(t, map[string]any{"title": "new"}, event["after"])

	createdAt, ok := event["createdAt"].(time.Time)
	require.True(t, ok)
	assert.False(t, createdAt.Before(before))
}

func TestRecordOmitsEmptyRoleID(t *testing.T) {
	ctx := context.Background()
	store := implementation.NewMemoryStore()
	auditLogger := NewLogger(store, "events", nopLogger())

	auditLogger.Record(ctx, rolemodels.AuditEvent{
		Action: rolemodels.AuditActionRoleCreate,
		UID:    "u1",
	})

	docs, err := store.RunQuery(ctx, interfaces.NewQuery("events"))
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.NotContains(t, docs[0].Data, "roleId")
}

func TestRecordSwallowsStoreFailures(t *testing.T) {
	store := &brokenStore{MemoryStore: implementation.NewMemoryStore()}
	auditLogger := NewLogger(store, "", nopLogger())

	assert.NotPanics(t, func() {
		auditLogger.Record(context.Background(), rolemodels.AuditEvent{
			Action: rolemodels.AuditActionRoleDelete,
			UID:    "u1",
			RoleID: "r1",
		})
	})
}
