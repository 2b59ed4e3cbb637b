package stores

import (
	"context"
	"sort"
	"sync"

	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/ports"
)

// DefaultSubjectColor is shown for classes whose subject is unknown
const DefaultSubjectColor = "#cccccc"

// ScheduleStore caches the class timetable and the subjects it refers to
type ScheduleStore struct {
	mu       sync.RWMutex
	classes  ports.ClassService
	subjects ports.CategoryService

	classList   []entities.Class
	subjectList []entities.Category
	err         error
}

// NewScheduleStore creates a new schedule store
func NewScheduleStore(classes ports.ClassService, subjects ports.CategoryService) *ScheduleStore {
	return &ScheduleStore{classes: classes, subjects: subjects}
}

// FetchClasses reloads the classes
func (s *ScheduleStore) FetchClasses(ctx context.Context) error {
	classes, err := s.classes.GetAll(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		return err
	}
	s.classList = classes
	return nil
}

// FetchSubjects reloads the subjects
func (s *ScheduleStore) FetchSubjects(ctx context.Context) error {
	subjects, err := s.subjects.GetAll(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		return err
	}
	s.subjectList = subjects
	return nil
}

// Err returns the error of the last failed operation, if any
func (s *ScheduleStore) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// Classes returns a copy of the cached classes
func (s *ScheduleStore) Classes() []entities.Class {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]entities.Class(nil), s.classList...)
}

// ClassesByDay returns the cached classes of one day ordered by start time
func (s *ScheduleStore) ClassesByDay(day string) []entities.Class {
	var out []entities.Class
	for _, c := range s.Classes() {
		if c.Day == day {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].StartTime() < out[j].StartTime()
	})
	return out
}

// AddClass creates a class and appends it to the cache
func (s *ScheduleStore) AddClass(ctx context.Context, class entities.Class) (entities.Class, error) {
	created, err := s.classes.Create(ctx, class)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		return entities.Class{}, err
	}
	s.classList = append(s.classList, created)
	return created, nil
}

// UpdateClass patches a class and refreshes its cached copy
func (s *ScheduleStore) UpdateClass(ctx context.Context, id int, patch entities.Patch) (entities.Class, error) {
	updated, err := s.classes.Update(ctx, id, patch)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		return entities.Class{}, err
	}
	for i := range s.classList {
		if s.classList[i].ID == id {
			s.classList[i] = updated
		}
	}
	return updated, nil
}

// DeleteClass removes a class from the service and the cache
func (s *ScheduleStore) DeleteClass(ctx context.Context, id int) error {
	err := s.classes.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		return err
	}
	out := s.classList[:0]
	for _, c := range s.classList {
		if c.ID != id {
			out = append(out, c)
		}
	}
	s.classList = out
	return nil
}

// AddSubject creates a subject and appends it to the cache
func (s *ScheduleStore) AddSubject(ctx context.Context, subject entities.Category) (entities.Category, error) {
	created, err := s.subjects.Create(ctx, subject)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		return entities.Category{}, err
	}
	s.subjectList = append(s.subjectList, created)
	return created, nil
}

// UpdateSubject patches a subject and refreshes its cached copy
func (s *ScheduleStore) UpdateSubject(ctx context.Context, id int, patch entities.Patch) (entities.Category, error) {
	updated, err := s.subjects.Update(ctx, id, patch)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		return entities.Category{}, err
	}
	for i := range s.subjectList {
		if s.subjectList[i].ID == id {
			s.subjectList[i] = updated
		}
	}
	return updated, nil
}

// DeleteSubject removes a subject from the service and the cache
func (s *ScheduleStore) DeleteSubject(ctx context.Context, id int) error {
	err := s.subjects.Delete(ctx, id)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
	if err != nil {
		return err
	}
	out := s.subjectList[:0]
	for _, c := range s.subjectList {
		if c.ID != id {
			out = append(out, c)
		}
	}
	s.subjectList = out
	return nil
}

// Subject returns the cached subject with id
func (s *ScheduleStore) Subject(id int) (entities.Category, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, c := range s.subjectList {
		if c.ID == id {
			return c, true
		}
	}
	return entities.Category{}, false
}

// SubjectColor returns the color of a subject, or DefaultSubjectColor
func (s *ScheduleStore) SubjectColor(id int) string {
	if c, ok := s.Subject(id); ok {
		return c.Color
	}
	return DefaultSubjectColor
}
