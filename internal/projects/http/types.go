package http

import (
	"context"

	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/domain"
)

// ProjectService is what the handlers need from the service layer.
type ProjectService interface {
	Create(ctx context.Context, in domain.CreateInput) (*domain.Project, error)
	List(ctx context.Context, f domain.ListFilter) ([]domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	UpdateStatus(ctx context.Context, id, requested string) (*domain.Project, error)
	SoftDelete(ctx context.Context, id string) (*domain.DeleteResult, error)
}

// Handler bundles the dependencies for projects HTTP endpoints.
type Handler struct {
	svc ProjectService
}

func New(svc ProjectService) *Handler {
	return &Handler{svc: svc}
}

// Optional fields are pointers so that JSON null and a missing key both
// read as "not supplied".
type createReq struct {
	Name        *string `json:"name"`
	ClientName  *string `json:"clientName"`
	Status      *string `json:"status"`
	StartDate   *string `json:"startDate"`
	EndDate     *string `json:"endDate"`
	Description *string `json:"description"`
}

func (r createReq) toInput() domain.CreateInput {
	return domain.CreateInput{
		Name:        deref(r.Name),
		ClientName:  deref(r.ClientName),
		Status:      deref(r.Status),
		StartDate:   deref(r.StartDate),
		EndDate:     deref(r.EndDate),
		Description: deref(r.Description),
	}
}

type updateStatusReq struct {
	Status string `json:"status" binding:"required"`
}

type listQuery struct {
	Status    string `form:"status"`
	Search    string `form:"search"`
	SortBy    string `form:"sortBy"`
	SortOrder string `form:"sortOrder"`
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
