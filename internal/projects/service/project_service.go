package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/GoSim-25-26J-441/project-tracker/internal/metrics"
	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/domain"
	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/repository"
)

const maxIDAttempts = 5

// Store is the persistence the service needs. Every method only ever sees
// live (non-deleted) rows.
type Store interface {
	Insert(ctx context.Context, p *domain.Project) (*domain.Project, error)
	List(ctx context.Context, f domain.ListFilter) ([]domain.Project, error)
	GetByID(ctx context.Context, id string) (*domain.Project, error)
	UpdateStatus(ctx context.Context, id string, status domain.Status, at time.Time) (*domain.Project, error)
	SoftDelete(ctx context.Context, id string, at time.Time) (bool, error)
}

// Option customizes a ProjectService.
type Option func(*ProjectService)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *ProjectService) { s.now = now }
}

// WithIDGenerator replaces the UUID generator.
func WithIDGenerator(newID func() string) Option {
	return func(s *ProjectService) { s.newID = newID }
}

// ProjectService handles project-related business logic
type ProjectService struct {
	store Store
	log   *zap.Logger
	now   func() time.Time
	newID func() string
}

// NewProjectService creates a new project service
func NewProjectService(store Store, log *zap.Logger, opts ...Option) *ProjectService {
	if log == nil {
		log = zap.NewNop()
	}
	s := &ProjectService{
		store: store,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create validates the input and stores a new project.
func (s *ProjectService) Create(ctx context.Context, in domain.CreateInput) (p *domain.Project, err error) {
	defer func() { s.observe("create", err) }()

	v, err := domain.ValidateProjectInput(in)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	for attempt := 0; attempt < maxIDAttempts; attempt++ {
		p, err = s.store.Insert(ctx, &domain.Project{
			ID:          s.newID(),
			Name:        v.Name,
			ClientName:  v.ClientName,
			Status:      v.Status,
			StartDate:   v.StartDate,
			EndDate:     v.EndDate,
			Description: v.Description,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
		if err == nil {
			s.log.Debug("project created", zap.String("id", p.ID), zap.String("status", string(p.Status)))
			return p, nil
		}
		if !errors.Is(err, repository.ErrDuplicateID) {
			return nil, err
		}
		s.log.Warn("project id collision, regenerating", zap.Int("attempt", attempt+1))
	}

	return nil, fmt.Errorf("failed to generate unique project id")
}

// List returns live projects matching f, ordered per f.
func (s *ProjectService) List(ctx context.Context, f domain.ListFilter) (out []domain.Project, err error) {
	defer func() { s.observe("list", err) }()

	if f.Status != "" && !f.Status.Valid() {
		return nil, domain.NewValidationError("status", "unknown status")
	}
	return s.store.List(ctx, f.Normalize())
}

// GetByID returns the live project with the given id.
func (s *ProjectService) GetByID(ctx context.Context, id string) (p *domain.Project, err error) {
	defer func() { s.observe("get", err) }()
	return s.store.GetByID(ctx, id)
}

// UpdateStatus moves a project to the requested status if the transition
// table allows it.
func (s *ProjectService) UpdateStatus(ctx context.Context, id, requested string) (p *domain.Project, err error) {
	defer func() { s.observe("update_status", err) }()

	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	to, ok := domain.ParseStatus(requested)
	if !ok {
		return nil, domain.NewValidationError("status", "unknown status")
	}
	if err := domain.CheckTransition(current.Status, to); err != nil {
		return nil, err
	}

	p, err = s.store.UpdateStatus(ctx, id, to, s.now().UTC())
	if err != nil {
		return nil, err
	}

	metrics.ObserveTransition(string(current.Status), string(to))
	s.log.Debug("project status changed",
		zap.String("id", id),
		zap.String("from", string(current.Status)),
		zap.String("to", string(to)),
	)
	return p, nil
}

// SoftDelete hides a live project from every later read.
func (s *ProjectService) SoftDelete(ctx context.Context, id string) (res *domain.DeleteResult, err error) {
	defer func() { s.observe("delete", err) }()

	if _, err := s.store.GetByID(ctx, id); err != nil {
		return nil, err
	}

	ok, err := s.store.SoftDelete(ctx, id, s.now().UTC())
	if err != nil {
		return nil, err
	}
	if !ok {
		// deleted by someone else since the lookup
		return nil, domain.NewNotFoundError()
	}

	s.log.Debug("project deleted", zap.String("id", id))
	return &domain.DeleteResult{Message: "Project deleted successfully", ID: id}, nil
}

func (s *ProjectService) observe(operation string, err error) {
	metrics.ObserveOperation(operation, Outcome(err))
	if err != nil && Outcome(err) == OutcomeError {
		s.log.Warn("project operation failed", zap.String("operation", operation), zap.Error(err))
	}
}

// Operation outcomes used as metric labels.
const (
	OutcomeOK                = "ok"
	OutcomeValidation        = "validation_error"
	OutcomeNotFound          = "not_found"
	OutcomeInvalidTransition = "invalid_transition"
	OutcomeError             = "error"
)

// Outcome classifies err for reporting.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, domain.ErrValidation):
		return OutcomeValidation
	case errors.Is(err, domain.ErrNotFound):
		return OutcomeNotFound
	case errors.Is(err, domain.ErrInvalidTransition):
		return OutcomeInvalidTransition
	default:
		return OutcomeError
	}
}
