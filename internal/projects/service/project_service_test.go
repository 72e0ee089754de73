package service

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/domain"
	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/repository"
)

var baseTime = time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

// tickingClock returns a clock that advances one minute per call.
func tickingClock() func() time.Time {
	n := 0
	return func() time.Time {
		n++
		return baseTime.Add(time.Duration(n) * time.Minute)
	}
}

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("p-%03d", n)
	}
}

func newTestService(store Store) *ProjectService {
	return NewProjectService(store, nil, WithClock(tickingClock()), WithIDGenerator(sequentialIDs()))
}

func mustCreate(t *testing.T, svc *ProjectService, in domain.CreateInput) *domain.Project {
	t.Helper()
	p, err := svc.Create(context.Background(), in)
	require.NoError(t, err)
	return p
}

func TestCreate_ThenGetByID(t *testing.T) {
	svc := newTestService(newMemStore())
	ctx := context.Background()

	created := mustCreate(t, svc, domain.CreateInput{
		Name:        "  Redesign ",
		ClientName:  " Acme ",
		StartDate:   "2024-01-01",
		EndDate:     "2024-03-31",
		Description: "new site",
	})

	assert.Equal(t, "p-001", created.ID)
	assert.Equal(t, "Redesign", created.Name)
	assert.Equal(t, "Acme", created.ClientName)
	assert.Equal(t, domain.StatusActive, created.Status)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
	assert.Nil(t, created.DeletedAt)

	got, err := svc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)
}

func TestCreate_ValidationFailureWritesNothing(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)

	_, err := svc.Create(context.Background(), domain.CreateInput{
		Name:       "Redesign",
		ClientName: "Acme",
		StartDate:  "2024-05-01",
		EndDate:    "2024-01-01",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Equal(t, "end before start", err.Error())
	assert.Zero(t, store.inserts)
}

func TestCreate_RetriesDuplicateIDs(t *testing.T) {
	store := newMemStore()
	store.failInsert = []error{repository.ErrDuplicateID, repository.ErrDuplicateID}
	svc := newTestService(store)

	p := mustCreate(t, svc, domain.CreateInput{Name: "A", ClientName: "B", StartDate: "2024-01-01"})
	assert.Equal(t, "p-003", p.ID)
	assert.Equal(t, 3, store.inserts)
}

func TestCreate_GivesUpAfterRepeatedCollisions(t *testing.T) {
	store := newMemStore()
	for i := 0; i < maxIDAttempts; i++ {
		store.failInsert = append(store.failInsert, repository.ErrDuplicateID)
	}
	svc := newTestService(store)

	_, err := svc.Create(context.Background(), domain.CreateInput{Name: "A", ClientName: "B", StartDate: "2024-01-01"})
	require.Error(t, err)
	assert.Equal(t, OutcomeError, Outcome(err))
	assert.Equal(t, maxIDAttempts, store.inserts)
}

func TestCreate_StoreFailureIsInternal(t *testing.T) {
	store := newMemStore()
	store.failInsert = []error{errors.New("connection reset")}
	svc := newTestService(store)

	_, err := svc.Create(context.Background(), domain.CreateInput{Name: "A", ClientName: "B", StartDate: "2024-01-01"})
	require.Error(t, err)
	assert.Equal(t, OutcomeError, Outcome(err))
	assert.Equal(t, 1, store.inserts)
}

func TestUpdateStatus_TransitionTable(t *testing.T) {
	allowed := map[[2]domain.Status]bool{
		{domain.StatusActive, domain.StatusOnHold}:    true,
		{domain.StatusActive, domain.StatusCompleted}: true,
		{domain.StatusOnHold, domain.StatusActive}:    true,
		{domain.StatusOnHold, domain.StatusCompleted}: true,
	}

	for _, from := range domain.Statuses {
		for _, to := range domain.Statuses {
			t.Run(fmt.Sprintf("%s to %s", from, to), func(t *testing.T) {
				svc := newTestService(newMemStore())
				ctx := context.Background()
				p := mustCreate(t, svc, domain.CreateInput{
					Name: "A", ClientName: "B", StartDate: "2024-01-01", Status: string(from),
				})

				updated, err := svc.UpdateStatus(ctx, p.ID, string(to))
				if allowed[[2]domain.Status{from, to}] {
					require.NoError(t, err)
					assert.Equal(t, to, updated.Status)
					assert.True(t, updated.UpdatedAt.After(p.UpdatedAt))

					stored, err := svc.GetByID(ctx, p.ID)
					require.NoError(t, err)
					assert.Equal(t, to, stored.Status)
					return
				}

				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrInvalidTransition)
				stored, err := svc.GetByID(ctx, p.ID)
				require.NoError(t, err)
				assert.Equal(t, from, stored.Status)
				assert.Equal(t, p.UpdatedAt, stored.UpdatedAt)
			})
		}
	}
}

func TestUpdateStatus_Errors(t *testing.T) {
	svc := newTestService(newMemStore())
	ctx := context.Background()
	p := mustCreate(t, svc, domain.CreateInput{Name: "A", ClientName: "B", StartDate: "2024-01-01"})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, "nope", "completed")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown id wins over bad status", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, "nope", "archived")
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("unknown status", func(t *testing.T) {
		_, err := svc.UpdateStatus(ctx, p.ID, "archived")
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Equal(t, "unknown status", err.Error())
	})
}

func TestScenario_CompletedIsTerminal(t *testing.T) {
	svc := newTestService(newMemStore())
	ctx := context.Background()

	p := mustCreate(t, svc, domain.CreateInput{Name: "Redesign", ClientName: "Acme", StartDate: "2024-01-01"})
	assert.Equal(t, domain.StatusActive, p.Status)

	done, err := svc.UpdateStatus(ctx, p.ID, "completed")
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCompleted, done.Status)

	_, err = svc.UpdateStatus(ctx, p.ID, "active")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrInvalidTransition)
	assert.Equal(t, "cannot transition from completed status", err.Error())
}

func TestSoftDelete(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	ctx := context.Background()
	p := mustCreate(t, svc, domain.CreateInput{Name: "A", ClientName: "B", StartDate: "2024-01-01"})

	res, err := svc.SoftDelete(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.ID, res.ID)
	assert.Equal(t, "Project deleted successfully", res.Message)

	raw, ok := store.raw(p.ID)
	require.True(t, ok, "row must not be hard deleted")
	require.NotNil(t, raw.DeletedAt)
	assert.Equal(t, *raw.DeletedAt, raw.UpdatedAt)

	_, err = svc.SoftDelete(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.GetByID(ctx, p.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = svc.UpdateStatus(ctx, p.ID, "on_hold")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func seedProjects(t *testing.T, svc *ProjectService) map[string]*domain.Project {
	t.Helper()
	out := map[string]*domain.Project{}
	for _, in := range []domain.CreateInput{
		{Name: "Website", ClientName: "Acme Corp", StartDate: "2024-03-01"},
		{Name: "Mobile app", ClientName: "Globex", StartDate: "2024-01-15", Status: "on_hold"},
		{Name: "ACME audit", ClientName: "Initech", StartDate: "2024-02-01", Status: "completed"},
		{Name: "Billing", ClientName: "Umbrella", StartDate: "2023-12-01"},
	} {
		out[in.Name] = mustCreate(t, svc, in)
	}
	return out
}

func names(ps []domain.Project) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Name
	}
	return out
}

func TestList(t *testing.T) {
	svc := newTestService(newMemStore())
	ctx := context.Background()
	seeded := seedProjects(t, svc)

	t.Run("defaults to newest first", func(t *testing.T) {
		got, err := svc.List(ctx, domain.ListFilter{})
		require.NoError(t, err)
		assert.Equal(t, []string{"Billing", "ACME audit", "Mobile app", "Website"}, names(got))
	})

	t.Run("bogus sort falls back to createdAt desc", func(t *testing.T) {
		got, err := svc.List(ctx, domain.ListFilter{SortBy: "bogus", SortOrder: "sideways"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Billing", "ACME audit", "Mobile app", "Website"}, names(got))
	})

	t.Run("start date ascending", func(t *testing.T) {
		got, err := svc.List(ctx, domain.ListFilter{SortBy: "startDate", SortOrder: "asc"})
		require.NoError(t, err)
		assert.Equal(t, []string{"Billing", "Mobile app", "ACME audit", "Website"}, names(got))
	})

	t.Run("search is case-insensitive over name and client", func(t *testing.T) {
		got, err := svc.List(ctx, domain.ListFilter{Search: "acme"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"Website", "ACME audit"}, names(got))
	})

	t.Run("status filter", func(t *testing.T) {
		got, err := svc.List(ctx, domain.ListFilter{Status: domain.StatusOnHold})
		require.NoError(t, err)
		assert.Equal(t, []string{"Mobile app"}, names(got))
	})

	t.Run("unknown status filter", func(t *testing.T) {
		_, err := svc.List(ctx, domain.ListFilter{Status: "archived"})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("deleted rows never listed", func(t *testing.T) {
		_, err := svc.SoftDelete(ctx, seeded["Website"].ID)
		require.NoError(t, err)

		for _, f := range []domain.ListFilter{
			{},
			{Search: "acme"},
			{Status: domain.StatusActive},
			{Status: domain.StatusActive, Search: "web", SortBy: "startDate", SortOrder: "asc"},
		} {
			got, err := svc.List(ctx, f)
			require.NoError(t, err)
			assert.NotContains(t, names(got), "Website")
		}
	})
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeOK, Outcome(nil))
	assert.Equal(t, OutcomeValidation, Outcome(domain.NewValidationError("name", "name required")))
	assert.Equal(t, OutcomeNotFound, Outcome(fmt.Errorf("wrapped: %w", domain.NewNotFoundError())))
	assert.Equal(t, OutcomeInvalidTransition, Outcome(domain.NewTransitionError("no")))
	assert.Equal(t, OutcomeError, Outcome(errors.New("boom")))
}
