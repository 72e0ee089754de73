package domain

import "time"

// Project is a tracked client engagement.
// It is intentionally storage-agnostic and used across repository, service and HTTP layers.
type Project struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	ClientName  string     `json:"clientName"`
	Status      Status     `json:"status"`
	StartDate   string     `json:"startDate"`
	EndDate     *string    `json:"endDate"`
	Description *string    `json:"description"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
	DeletedAt   *time.Time `json:"deletedAt"`
}

// CreateInput carries the raw, unvalidated fields of a create request.
type CreateInput struct {
	Name        string
	ClientName  string
	Status      string
	StartDate   string
	EndDate     string
	Description string
}

// ValidatedInput is what ValidateProjectInput hands to the service on success.
type ValidatedInput struct {
	Name        string
	ClientName  string
	Status      Status
	StartDate   string
	EndDate     *string
	Description *string
}

// Sort fields accepted by ListFilter.SortBy.
const (
	SortByCreatedAt = "createdAt"
	SortByStartDate = "startDate"
)

// Sort directions accepted by ListFilter.SortOrder.
const (
	SortAsc  = "asc"
	SortDesc = "desc"
)

// ListFilter narrows and orders a project listing.
// Zero values mean "not applied"; Normalize fills in the defaults.
type ListFilter struct {
	Status    Status
	Search    string
	SortBy    string
	SortOrder string
}

// Normalize applies the listing defaults. Unknown sort fields fall back to
// createdAt and anything other than "asc" sorts descending.
func (f ListFilter) Normalize() ListFilter {
	if f.SortBy != SortByStartDate {
		f.SortBy = SortByCreatedAt
	}
	if f.SortOrder != SortAsc {
		f.SortOrder = SortDesc
	}
	return f
}

// DeleteResult confirms a soft delete.
type DeleteResult struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}
