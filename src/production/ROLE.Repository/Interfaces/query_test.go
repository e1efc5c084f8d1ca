package interfaces

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryClausesReturnCopies(t *testing.T) {
	base := NewQuery("roles")

	filtered := base.Where("state", OpEqual, "SP")
	sorted := filtered.OrderBy("startTime", Ascending)
	capped := sorted.Limit(5).Offset(10)

	// The original values are untouched by later clauses.
	assert.Empty(t, base.Filters())
	_, hasSort := filtered.SortKey()
	assert.False(t, hasSort)
	assert.Zero(t, sorted.LimitValue())
	assert.Zero(t, sorted.OffsetValue())

	require.Len(t, capped.Filters(), 1)
	assert.Equal(t, Filter{Field: "state", Op: OpEqual, Value: "SP"}, capped.Filters()[0])
	sortKey, hasSort := capped.SortKey()
	require.True(t, hasSort)
	assert.Equal(t, Sort{Field: "startTime", Direction: Ascending}, sortKey)
	assert.Equal(t, 5, capped.LimitValue())
	assert.Equal(t, 10, capped.OffsetValue())
}

func TestQueryWhereDoesNotShareFilterSlices(t *testing.T) {
	base := NewQuery("roles").Where("state", OpEqual, "SP")

	a := base.Where("city", OpEqual, "Santos")
	b := base.Where("status", OpEqual, "scheduled")

	require.Len(t, a.Filters(), 2)
	require.Len(t, b.Filters(), 2)
	assert.Equal(t, "city", a.Filters()[1].Field)
	assert.Equal(t, "status", b.Filters()[1].Field)
}

func TestQueryCursorsAreMutuallyExclusive(t *testing.T) {
	doc := Document{ID: "abc", Data: map[string]any{"startTime": time.Now()}}

	q := NewQuery("roles").StartAfter(doc).StartAfterValue("x")
	_, hasDoc := q.AfterDocument()
	value, hasValue := q.AfterValue()
	assert.False(t, hasDoc)
	assert.True(t, hasValue)
	assert.Equal(t, "x", value)

	q = NewQuery("roles").StartAfterValue("x").StartAfter(doc)
	got, hasDoc := q.AfterDocument()
	_, hasValue = q.AfterValue()
	assert.True(t, hasDoc)
	assert.Equal(t, "abc", got.ID)
	assert.False(t, hasValue)
}
