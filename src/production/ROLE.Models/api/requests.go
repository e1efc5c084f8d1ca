package api_models

import (
	rolemodels "gitlab.com/roleapp1/role.api_server/src/production/ROLE.Models"
)

// RoleCreateRequest is the payload for creating a role. Schema validation
// happens at binding time, before the service sees the data.
type RoleCreateRequest struct {
	Title        string   `json:"title" binding:"required,min=1,max=120"`
	State        string   `json:"state" binding:"required,len=2"`
	City         string   `json:"city" binding:"required,min=1"`
	DistanceKm   *float64 `json:"distanceKm" binding:"required,gte=0,decimals2"`
	StartTime    string   `json:"startTime" binding:"required,iso8601"`
	ToleranceMin *int     `json:"toleranceMin" binding:"required,gte=0,lte=120"`
	MeetingPoint string   `json:"meetingPoint" binding:"required,min=1"`
	Description  *string  `json:"description" binding:"omitnil"`
	RouteMapURL  *string  `json:"routeMapUrl" binding:"omitnil,url"`
	Status       *string  `json:"status" binding:"omitnil,oneof=scheduled canceled done"`
}

// ToDocument converts the request to the schemaless form the service stores.
func (r RoleCreateRequest) ToDocument() map[string]any {
	doc := map[string]any{
		rolemodels.FieldTitle:        r.Title,
		rolemodels.FieldState:        r.State,
		rolemodels.FieldCity:         r.City,
		rolemodels.FieldDistanceKm:   *r.DistanceKm,
		rolemodels.FieldStartTime:    r.StartTime,
		rolemodels.FieldToleranceMin: *r.ToleranceMin,
		rolemodels.FieldMeetingPoint: r.MeetingPoint,
	}
	if r.Description != nil {
		doc[rolemodels.FieldDescription] = *r.Description
	}
	if r.RouteMapURL != nil {
		doc[rolemodels.FieldRouteMapURL] = *r.RouteMapURL
	}
	if r.Status != nil {
		doc[rolemodels.FieldStatus] = *r.Status
	}
	return doc
}

// RoleUpdateRequest is the partial payload for updating a role. Every field
// is optional; present fields are validated with the same rules as create.
// omitnil (not omitempty) so an explicit zero value like "" is still checked.
type RoleUpdateRequest struct {
	Title        *string  `json:"title" binding:"omitnil,min=1,max=120"`
	State        *string  `json:"state" binding:"omitnil,len=2"`
	City         *string  `json:"city" binding:"omitnil,min=1"`
	DistanceKm   *float64 `json:"distanceKm" binding:"omitnil,gte=0,decimals2"`
	StartTime    *string  `json:"startTime" binding:"omitnil,iso8601"`
	ToleranceMin *int     `json:"toleranceMin" binding:"omitnil,gte=0,lte=120"`
	MeetingPoint *string  `json:"meetingPoint" binding:"omitnil,min=1"`
	Description  *string  `json:"description" binding:"omitnil"`
	RouteMapURL  *string  `json:"routeMapUrl" binding:"omitnil,url"`
	Status       *string  `json:"status" binding:"omitnil,oneof=scheduled canceled done"`
}

// ToDocument converts the request to a partial document containing only the
// fields the caller supplied.
func (r RoleUpdateRequest) ToDocument() map[string]any {
	doc := map[string]any{}
	if r.Title != nil {
		doc[rolemodels.FieldTitle] = *r.Title
	}
	if r.State != nil {
		doc[rolemodels.FieldState] = *r.State
	}
	if r.City != nil {
		doc[rolemodels.FieldCity] = *r.City
	}
	if r.DistanceKm != nil {
		doc[rolemodels.FieldDistanceKm] = *r.DistanceKm
	}
	if r.StartTime != nil {
		doc[rolemodels.FieldStartTime] = *r.StartTime
	}
	if r.ToleranceMin != nil {
		doc[rolemodels.FieldToleranceMin] = *r.ToleranceMin
	}
	if r.MeetingPoint != nil {
		doc[rolemodels.FieldMeetingPoint] = *r.MeetingPoint
	}
	if r.Description != nil {
		doc[rolemodels.FieldDescription] = *r.Description
	}
	if r.RouteMapURL != nil {
		doc[rolemodels.FieldRouteMapURL] = *r.RouteMapURL
	}
	if r.Status != nil {
		doc[rolemodels.FieldStatus] = *r.Status
	}
	return doc
}
