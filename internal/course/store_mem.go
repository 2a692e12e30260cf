package course

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/readysetclass/backend/internal/grades"
)

// memoryStore backs tests and single-user offline mode.
type memoryStore struct {
	mu         sync.RWMutex
	courses    map[string]Course
	categories map[string][]grades.Category
	items      map[string][]Item // courseID -> items, insertion order
}

func NewInMemoryStore() Store {
	return &memoryStore{
		courses:    map[string]Course{},
		categories: map[string][]grades.Category{},
		items:      map[string][]Item{},
	}
}

func (m *memoryStore) PutCourse(_ context.Context, c Course) (Course, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Scheme == "" {
		c.Scheme = grades.SchemePoints
	}
	if c.CreatedAt == 0 {
		c.CreatedAt = time.Now().Unix()
	}
	m.courses[c.ID] = c
	return c, nil
}

func (m *memoryStore) GetCourse(_ context.Context, id string) (Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.courses[id]
	if !ok {
		return Course{}, ErrCourseNotFound
	}
	return c, nil
}

func (m *memoryStore) ListCourses(_ context.Context, ownerID string) ([]Course, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := []Course{}
	for _, c := range m.courses {
		if ownerID == "" || c.OwnerID == ownerID {
			out = append(out, c)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (m *memoryStore) ReplaceCategories(_ context.Context, courseID string, cats []grades.Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courses[courseID]; !ok {
		return ErrCourseNotFound
	}
	cp := make([]grades.Category, len(cats))
	copy(cp, cats)
	m.categories[courseID] = cp
	return nil
}

func (m *memoryStore) ListCategories(_ context.Context, courseID string) ([]grades.Category, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.courses[courseID]; !ok {
		return nil, ErrCourseNotFound
	}
	out := make([]grades.Category, len(m.categories[courseID]))
	copy(out, m.categories[courseID])
	return out, nil
}

func (m *memoryStore) UpsertItems(_ context.Context, courseID string, items []Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.courses[courseID]; !ok {
		return ErrCourseNotFound
	}
	existing := m.items[courseID]
	for _, in := range items {
		if in.ID == "" {
			in.ID = uuid.NewString()
		}
		replaced := false
		for i, have := range existing {
			if have.SourceID == in.SourceID && in.SourceID != "" {
				in.ID = have.ID
				existing[i] = in
				replaced = true
				break
			}
		}
		if !replaced {
			existing = append(existing, in)
		}
	}
	m.items[courseID] = existing
	return nil
}

func (m *memoryStore) ListItems(_ context.Context, courseID string) ([]Item, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if _, ok := m.courses[courseID]; !ok {
		return nil, ErrCourseNotFound
	}
	out := make([]Item, len(m.items[courseID]))
	copy(out, m.items[courseID])
	return out, nil
}

func (m *memoryStore) GradeState(_ context.Context, courseID string) (grades.CourseGradeState, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	c, ok := m.courses[courseID]
	if !ok {
		return grades.CourseGradeState{}, ErrCourseNotFound
	}
	state := grades.CourseGradeState{Scheme: c.Scheme, Scale: c.Scale}
	state.Categories = append(state.Categories, m.categories[courseID]...)
	for _, it := range m.items[courseID] {
		state.Items = append(state.Items, it.scored())
	}
	return state, nil
}
