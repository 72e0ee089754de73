package service

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/domain"
	"github.com/GoSim-25-26J-441/project-tracker/internal/projects/repository"
)

// memStore is an in-memory Store used to exercise the service without a database.
type memStore struct {
	mu   sync.Mutex
	rows map[string]domain.Project

	// failInsert, when set, is returned by the next Insert calls in order.
	failInsert []error
	inserts    int
}

func newMemStore() *memStore {
	return &memStore{rows: make(map[string]domain.Project)}
}

func (m *memStore) Insert(_ context.Context, p *domain.Project) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.inserts++
	if len(m.failInsert) > 0 {
		err := m.failInsert[0]
		m.failInsert = m.failInsert[1:]
		return nil, err
	}
	if _, exists := m.rows[p.ID]; exists {
		return nil, repository.ErrDuplicateID
	}
	m.rows[p.ID] = *p
	out := *p
	return &out, nil
}

func (m *memStore) List(_ context.Context, f domain.ListFilter) ([]domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	term := strings.ToLower(strings.TrimSpace(f.Search))
	out := make([]domain.Project, 0, len(m.rows))
	for _, p := range m.rows {
		if p.DeletedAt != nil {
			continue
		}
		if f.Status != "" && p.Status != f.Status {
			continue
		}
		if term != "" &&
			!strings.Contains(strings.ToLower(p.Name), term) &&
			!strings.Contains(strings.ToLower(p.ClientName), term) {
			continue
		}
		out = append(out, p)
	}

	less := func(a, b domain.Project) bool {
		if f.SortBy == domain.SortByStartDate && a.StartDate != b.StartDate {
			return a.StartDate < b.StartDate
		}
		if f.SortBy != domain.SortByStartDate && !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	}
	sort.Slice(out, func(i, j int) bool {
		if f.SortOrder == domain.SortAsc {
			return less(out[i], out[j])
		}
		return less(out[j], out[i])
	})
	return out, nil
}

func (m *memStore) GetByID(_ context.Context, id string) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.rows[id]
	if !ok || p.DeletedAt != nil {
		return nil, domain.NewNotFoundError()
	}
	return &p, nil
}

func (m *memStore) UpdateStatus(_ context.Context, id string, status domain.Status, at time.Time) (*domain.Project, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.rows[id]
	if !ok || p.DeletedAt != nil {
		return nil, domain.NewNotFoundError()
	}
	p.Status = status
	p.UpdatedAt = at
	m.rows[id] = p
	return &p, nil
}

func (m *memStore) SoftDelete(_ context.Context, id string, at time.Time) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	p, ok := m.rows[id]
	if !ok || p.DeletedAt != nil {
		return false, nil
	}
	p.DeletedAt = &at
	p.UpdatedAt = at
	m.rows[id] = p
	return true, nil
}

// raw returns a row regardless of its deleted state.
func (m *memStore) raw(id string) (domain.Project, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.rows[id]
	return p, ok
}
