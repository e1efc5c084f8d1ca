package implementation

import (
	"context"
	"reflect"
	"sort"
	"sync"
	"time"

	interfaces "gitlab.com/roleapp1/role.api_server/src/production/ROLE.Repository/Interfaces"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MemoryStore is an in-memory document store with the same contract as the
// MongoDB adapter. It backs unit tests and local development.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]*memCollection
}

type memCollection struct {
	docs  map[string]map[string]any
	order []string // insertion order of ids
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]*memCollection)}
}

func (s *MemoryStore) coll(name string) *memCollection {
	c, ok := s.collections[name]
	if !ok {
		c = &memCollection{docs: make(map[string]map[string]any)}
		s.collections[name] = c
	}
	return c
}

func (s *MemoryStore) Add(_ context.Context, collection string, data map[string]any) (interfaces.Document, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.coll(collection)
	id := primitive.NewObjectID().Hex()
	c.docs[id] = deepCloneMap(data)
	c.order = append(c.order, id)
	return interfaces.Document{ID: id, Data: deepCloneMap(data)}, nil
}

func (s *MemoryStore) Get(_ context.Context, collection, id string) (interfaces.Document, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collection]
	if !ok {
		return interfaces.Document{}, false, nil
	}
	data, ok := c.docs[id]
	if !ok {
		return interfaces.Document{}, false, nil
	}
	return interfaces.Document{ID: id, Data: deepCloneMap(data)}, true, nil
}

func (s *MemoryStore) RunQuery(_ context.Context, q interfaces.Query) ([]interfaces.Document, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[q.Collection()]
	if !ok {
		return nil, nil
	}

	var matched []interfaces.Document
	for _, id := range c.order {
		data := c.docs[id]
		if matchesFilters(data, q.Filters()) {
			matched = append(matched, interfaces.Document{ID: id, Data: data})
		}
	}

	sortKey, hasSort := q.SortKey()
	if hasSort {
		sort.SliceStable(matched, func(i, j int) bool {
			cmp, ok := compareValues(matched[i].Data[sortKey.Field], matched[j].Data[sortKey.Field])
			if !ok || cmp == 0 {
				cmp = compareStrings(matched[i].ID, matched[j].ID)
			}
			if sortKey.Direction == interfaces.Descending {
				return cmp > 0
			}
			return cmp < 0
		})
	}

	matched = applyMemCursor(matched, q, sortKey, hasSort)

	if off := q.OffsetValue(); off > 0 {
		if off >= len(matched) {
			matched = nil
		} else {
			matched = matched[off:]
		}
	}
	if lim := q.LimitValue(); lim > 0 && len(matched) > lim {
		matched = matched[:lim]
	}

	out := make([]interfaces.Document, 0, len(matched))
	for _, doc := range matched {
		out = append(out, interfaces.Document{ID: doc.ID, Data: deepCloneMap(doc.Data)})
	}
	return out, nil
}

func (s *MemoryStore) Update(_ context.Context, collection, id string, partial map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		return nil
	}
	data, ok := c.docs[id]
	if !ok {
		return nil
	}
	for key, value := range partial {
		data[key] = deepCloneValue(value)
	}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, collection, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.collections[collection]
	if !ok {
		return nil
	}
	delete(c.docs, id)
	for i, existing := range c.order {
		if existing == id {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
	return nil
}

// Count reports the number of documents in a collection.
func (s *MemoryStore) Count(collection string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	c, ok := s.collections[collection]
	if !ok {
		return 0
	}
	return len(c.docs)
}

func applyMemCursor(docs []interfaces.Document, q interfaces.Query, sortKey interfaces.Sort, hasSort bool) []interfaces.Document {
	var after func(doc interfaces.Document) bool

	if cursorDoc, ok := q.AfterDocument(); ok {
		after = func(doc interfaces.Document) bool {
			if !hasSort {
				return compareStrings(doc.ID, cursorDoc.ID) > 0
			}
			cmp, ok := compareValues(doc.Data[sortKey.Field], cursorDoc.Data[sortKey.Field])
			if !ok || cmp == 0 {
				cmp = compareStrings(doc.ID, cursorDoc.ID)
			}
			if sortKey.Direction == interfaces.Descending {
				return cmp < 0
			}
			return cmp > 0
		}
	} else if value, ok := q.AfterValue(); ok && hasSort {
		after = func(doc interfaces.Document) bool {
			cmp, ok := compareValues(doc.Data[sortKey.Field], value)
			if !ok {
				return false
			}
			if sortKey.Direction == interfaces.Descending {
				return cmp < 0
			}
			return cmp > 0
		}
	} else {
		return docs
	}

	var out []interfaces.Document
	for _, doc := range docs {
		if after(doc) {
			out = append(out, doc)
		}
	}
	return out
}

func matchesFilters(data map[string]any, filters []interfaces.Filter) bool {
	for _, f := range filters {
		value, present := data[f.Field]
		if !present {
			return false
		}
		cmp, cmpOK := compareValues(value, f.Value)
		switch f.Op {
		case interfaces.OpEqual:
			if cmpOK {
				if cmp != 0 {
					return false
				}
			} else if !reflect.DeepEqual(value, f.Value) {
				return false
			}
		case interfaces.OpGreaterOrEqual:
			if !cmpOK || cmp < 0 {
				return false
			}
		case interfaces.OpLessOrEqual:
			if !cmpOK || cmp > 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}

// compareValues orders two stored values. It understands times, numbers and
// strings; anything else is reported as not comparable.
func compareValues(a, b any) (int, bool) {
	if at, ok := a.(time.Time); ok {
		if bt, ok := b.(time.Time); ok {
			return at.Compare(bt), true
		}
		return 0, false
	}
	if af, ok := toFloat(a); ok {
		if bf, ok := toFloat(b); ok {
			switch {
			case af < bf:
				return -1, true
			case af > bf:
				return 1, true
			default:
				return 0, true
			}
		}
		return 0, false
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return compareStrings(as, bs), true
		}
	}
	return 0, false
}

func compareStrings(a, b string) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

func deepCloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for key, value := range m {
		out[key] = deepCloneValue(value)
	}
	return out
}

func deepCloneValue(v any) any {
	switch value := v.(type) {
	case map[string]any:
		return deepCloneMap(value)
	case []any:
		items := make([]any, len(value))
		for i, item := range value {
			items[i] = deepCloneValue(item)
		}
		return items
	default:
		return v
	}
}
