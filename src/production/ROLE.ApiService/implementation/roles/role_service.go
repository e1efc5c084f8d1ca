package roles

import (
	"context"
	"fmt"
	"time"

	rolemodels "gitlab.com/roleapp1/role.api_server/src/production/ROLE.Models"
	api_models "gitlab.com/roleapp1/role.api_server/src/production/ROLE.Models/api"
	interfaces "gitlab.com/roleapp1/role.api_server/src/production/ROLE.Repository/Interfaces"
)

// DefaultCollection is the role document collection.
const DefaultCollection = "roles"

// List limits. A missing or zero limit falls back to the default; explicit
// values saturate at the maximum instead of erroring.
const (
	DefaultLimit = 20
	MaxLimit     = 100
)

// ListParams are the recognized filter, sort and pagination parameters.
// Pagination precedence is cursor id, then cursor start time, then page.
type ListParams struct {
	State    string
	City     string
	Status   string
	AuthorID string

	// Inclusive bounds on startTime. Either forces the sort key to be
	// startTime: a range filter and the sort key must share a field for
	// the query to be valid against an indexed store.
	StartFrom *time.Time
	StartTo   *time.Time

	OrderBy string // only "startTime" is meaningful
	Order   string // "asc" or "desc", default "desc"

	Page  int // 1-based, used only when no cursor is supplied
	Limit int

	CursorStartTime *time.Time
	CursorID        string
}

// AuditRecorder records mutation events. Implementations swallow their own
// failures; the service never joins the outcome with the caller's result.
type AuditRecorder interface {
	Record(ctx context.Context, event rolemodels.AuditEvent)
}

// Service builds queries against the role collection, enforces ownership on
// mutation and sequences mutation + audit.
type Service struct {
	store      interfaces.Store
	audit      AuditRecorder
	collection string
}

// NewService creates the role service on top of a document store.
func NewService(store interfaces.Store, audit AuditRecorder, collection string) *Service {
	if collection == "" {
		collection = DefaultCollection
	}
	return &Service{store: store, audit: audit, collection: collection}
}

// Create stamps ownership and timestamps, persists the role and returns the
// snapshot the store wrote.
func (s *Service) Create(ctx context.Context, actorID string, input map[string]any) (map[string]any, error) {
	now := time.Now().UTC()
	data := make(map[string]any, len(input)+3)
	for key, value := range input {
		data[key] = value
	}
	normalizeStartTime(data)
	data[rolemodels.FieldAuthorID] = actorID
	data[rolemodels.FieldCreatedAt] = now
	data[rolemodels.FieldUpdatedAt] = now

	doc, err := s.store.Add(ctx, s.collection, data)
	if err != nil {
		return nil, fmt.Errorf("create role: %w", err)
	}

	s.audit.Record(ctx, rolemodels.AuditEvent{
		Action: rolemodels.AuditActionRoleCreate,
		UID:    actorID,
		RoleID: doc.ID,
		Before: nil,
		After:  doc.Data,
	})

	return assembleRole(doc), nil
}

// GetByID fetches a role. Absence is an ordinary outcome reported as a nil
// role, never an error.
func (s *Service) GetByID(ctx context.Context, id string) (map[string]any, error) {
	doc, found, err := s.store.Get(ctx, s.collection, id)
	if err != nil {
		return nil, fmt.Errorf("get role: %w", err)
	}
	if !found {
		return nil, nil
	}
	return assembleRole(doc), nil
}

// List returns one page of roles matching the given parameters.
func (s *Service) List(ctx context.Context, params ListParams) ([]map[string]any, error) {
	q := interfaces.NewQuery(s.collection)
	if params.State != "" {
		q = q.Where(rolemodels.FieldState, interfaces.OpEqual, params.State)
	}
	if params.City != "" {
		q = q.Where(rolemodels.FieldCity, interfaces.OpEqual, params.City)
	}
	if params.Status != "" {
		q = q.Where(rolemodels.FieldStatus, interfaces.OpEqual, params.Status)
	}
	if params.AuthorID != "" {
		q = q.Where(rolemodels.FieldAuthorID, interfaces.OpEqual, params.AuthorID)
	}
	if params.StartFrom != nil {
		q = q.Where(rolemodels.FieldStartTime, interfaces.OpGreaterOrEqual, params.StartFrom.UTC())
	}
	if params.StartTo != nil {
		q = q.Where(rolemodels.FieldStartTime, interfaces.OpLessOrEqual, params.StartTo.UTC())
	}

	sortField := params.OrderBy
	if params.StartFrom != nil || params.StartTo != nil {
		sortField = rolemodels.FieldStartTime
	}
	direction := interfaces.Descending
	if params.Order == "asc" {
		direction = interfaces.Ascending
	}
	if sortField != "" {
		q = q.OrderBy(sortField, direction)
	}

	// Cursor pagination beats page-based pagination whenever a cursor
	// parameter is present. An unresolvable cursor id silently falls back
	// to the unpaginated start.
	if params.CursorID != "" {
		cursorDoc, found, err := s.store.Get(ctx, s.collection, params.CursorID)
		if err != nil {
			return nil, fmt.Errorf("resolve cursor: %w", err)
		}
		if found {
			q = q.StartAfter(cursorDoc)
		}
	} else if params.CursorStartTime != nil {
		q = q.StartAfterValue(params.CursorStartTime.UTC())
	}

	limit := params.Limit
	if limit == 0 {
		limit = DefaultLimit
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	q = q.Limit(limit)

	// Offset pagination degrades with store size; kept only for
	// small/legacy callers that supply no cursor.
	if params.CursorID == "" && params.CursorStartTime == nil && params.Page > 1 {
		q = q.Offset((params.Page - 1) * limit)
	}

	docs, err := s.store.RunQuery(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("list roles: %w", err)
	}

	items := make([]map[string]any, 0, len(docs))
	for _, doc := range docs {
		items = append(items, assembleRole(doc))
	}
	return items, nil
}

// Update applies a partial merge onto a role owned by the actor.
func (s *Service) Update(ctx context.Context, actorID, id string, partial map[string]any) (map[string]any, error) {
	current, found, err := s.store.Get(ctx, s.collection, id)
	if err != nil {
		return nil, fmt.Errorf("get role: %w", err)
	}
	if !found {
		return nil, api_models.NewNotFound("Role not found")
	}
	if owner, _ := current.Data[rolemodels.FieldAuthorID].(string); owner != actorID {
		return nil, api_models.NewForbidden("Forbidden")
	}

	merge := make(map[string]any, len(partial)+1)
	for key, value := range partial {
		merge[key] = value
	}
	normalizeStartTime(merge)
	// authorId and createdAt are immutable; the id is never stored data.
	delete(merge, rolemodels.FieldAuthorID)
	delete(merge, rolemodels.FieldCreatedAt)
	delete(merge, "id")
	merge[rolemodels.FieldUpdatedAt] = time.Now().UTC()

	if err := s.store.Update(ctx, s.collection, id, merge); err != nil {
		return nil, fmt.Errorf("update role: %w", err)
	}

	updated, found, err := s.store.Get(ctx, s.collection, id)
	if err != nil {
		return nil, fmt.Errorf("read back role: %w", err)
	}
	if !found {
		return nil, api_models.NewNotFound("Role not found")
	}

	s.audit.Record(ctx, rolemodels.AuditEvent{
		Action: rolemodels.AuditActionRoleUpdate,
		UID:    actorID,
		RoleID: id,
		Before: current.Data,
		After:  updated.Data,
	})

	return assembleRole(updated), nil
}

// Delete physically removes a role owned by the actor.
func (s *Service) Delete(ctx context.Context, actorID, id string) error {
	current, found, err := s.store.Get(ctx, s.collection, id)
	if err != nil {
		return fmt.Errorf("get role: %w", err)
	}
	if !found {
		return api_models.NewNotFound("Role not found")
	}
	if owner, _ := current.Data[rolemodels.FieldAuthorID].(string); owner != actorID {
		return api_models.NewForbidden("Forbidden")
	}

	if err := s.store.Delete(ctx, s.collection, id); err != nil {
		return fmt.Errorf("delete role: %w", err)
	}

	s.audit.Record(ctx, rolemodels.AuditEvent{
		Action: rolemodels.AuditActionRoleDelete,
		UID:    actorID,
		RoleID: id,
		Before: current.Data,
		After:  nil,
	})

	return nil
}

// normalizeStartTime converts an ISO-8601 startTime string to a store
// timestamp. Unparseable strings are kept as-is: caller-visible data is
// preserved at this layer, schema rejection happens upstream.
func normalizeStartTime(data map[string]any) {
	raw, ok := data[rolemodels.FieldStartTime]
	if !ok {
		return
	}
	switch v := raw.(type) {
	case time.Time:
		data[rolemodels.FieldStartTime] = v.UTC()
	case string:
		if t, err := time.Parse(time.RFC3339, v); err == nil {
			data[rolemodels.FieldStartTime] = t.UTC()
		}
	}
}

// sanitizeRoleData strips obsolete fields that must not leave the service
// boundary, currently only the legacy images field.
func sanitizeRoleData(data map[string]any) map[string]any {
	out := make(map[string]any, len(data))
	for key, value := range data {
		if key == rolemodels.FieldImages {
			continue
		}
		out[key] = value
	}
	return out
}

// assembleRole joins the store key onto the sanitized document data.
func assembleRole(doc interfaces.Document) map[string]any {
	role := sanitizeRoleData(doc.Data)
	role["id"] = doc.ID
	return role
}
