package interfaces

import "slices"

// Op is a filter comparison operator.
type Op string

const (
	OpEqual          Op = "=="
	OpGreaterOrEqual Op = ">="
	OpLessOrEqual    Op = "<="
)

// Direction is a sort direction.
type Direction int

const (
	Ascending  Direction = 1
	Descending Direction = -1
)

// Filter is a single field comparison. Multiple filters AND together.
type Filter struct {
	Field string
	Op    Op
	Value any
}

// Sort is a single sort key with direction.
type Sort struct {
	Field     string
	Direction Direction
}

// Query describes a filtered, sorted, paginated read against a collection.
// It is an immutable value: every clause method returns an updated copy and
// performs no I/O. Only Store.RunQuery executes it.
type Query struct {
	collection    string
	filters       []Filter
	sort          *Sort
	limit         int
	offset        int
	afterDoc      *Document
	afterValue    any
	hasAfterValue bool
}

// NewQuery starts a query against a collection.
func NewQuery(collection string) Query {
	return Query{collection: collection}
}

// Where adds a field comparison.
func (q Query) Where(field string, op Op, value any) Query {
	filters := slices.Clone(q.filters)
	q.filters = append(filters, Filter{Field: field, Op: op, Value: value})
	return q
}

// OrderBy sets the single sort key and direction.
func (q Query) OrderBy(field string, direction Direction) Query {
	q.sort = &Sort{Field: field, Direction: direction}
	return q
}

// Limit caps the number of returned documents.
func (q Query) Limit(n int) Query {
	q.limit = n
	return q
}

// Offset skips n documents before returning results.
func (q Query) Offset(n int) Query {
	q.offset = n
	return q
}

// StartAfter resumes strictly after the given document snapshot in the
// current sort order.
func (q Query) StartAfter(doc Document) Query {
	q.afterDoc = &doc
	q.afterValue = nil
	q.hasAfterValue = false
	return q
}

// StartAfterValue resumes strictly after the given sort-field value.
func (q Query) StartAfterValue(value any) Query {
	q.afterValue = value
	q.hasAfterValue = true
	q.afterDoc = nil
	return q
}

// Accessors used by store implementations and tests.

func (q Query) Collection() string { return q.collection }

func (q Query) Filters() []Filter { return slices.Clone(q.filters) }

// SortKey returns the sort clause, if any.
func (q Query) SortKey() (Sort, bool) {
	if q.sort == nil {
		return Sort{}, false
	}
	return *q.sort, true
}

func (q Query) LimitValue() int { return q.limit }

func (q Query) OffsetValue() int { return q.offset }

// AfterDocument returns the cursor document, if any.
func (q Query) AfterDocument() (Document, bool) {
	if q.afterDoc == nil {
		return Document{}, false
	}
	return *q.afterDoc, true
}

// AfterValue returns the scalar cursor bound, if any.
func (q Query) AfterValue() (any, bool) {
	return q.afterValue, q.hasAfterValue
}
