package rolemodels

// Role status values. The service stores whatever status the caller supplied;
// transitions between these values are not enforced at this layer.
const (
	StatusScheduled = "scheduled"
	StatusCanceled  = "canceled"
	StatusDone      = "done"
)

// Stored field keys of a role document. The document id is the store's key
// and is never part of the stored data; it is joined onto API output.
const (
	FieldTitle        = "title"
	FieldState        = "state"
	FieldCity         = "city"
	FieldDistanceKm   = "distanceKm"
	FieldToleranceMin = "toleranceMin"
	FieldMeetingPoint = "meetingPoint"
	FieldStartTime    = "startTime"
	FieldDescription  = "description"
	FieldRouteMapURL  = "routeMapUrl"
	FieldStatus       = "status"
	FieldAuthorID     = "authorId"
	FieldCreatedAt    = "createdAt"
	FieldUpdatedAt    = "updatedAt"

	// FieldImages is a legacy field that may still exist on old documents.
	// It must never leave the service boundary.
	FieldImages = "images"
)
