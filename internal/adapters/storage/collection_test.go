package storage

import (
	"context"
	"errors"
	"testing"

	"github.com/taskmaster/planner/internal/adapters/localstore"
	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
	"github.com/taskmaster/planner/internal/infrastructure/probe"
	"github.com/taskmaster/planner/internal/ports"
)

// fakeRemote is an in-memory Backend that can be switched to fail every call
type fakeRemote struct {
	items []entities.Task
	fail  bool
	calls int
}

var errDown = errors.New("connection refused")

func (f *fakeRemote) check() error {
	f.calls++
	if f.fail {
		return errDown
	}
	return nil
}

func (f *fakeRemote) List(ctx context.Context, filter ports.Filter) ([]entities.Task, error) {
	if err := f.check(); err != nil {
		return nil, err
	}
	var out []entities.Task
	for _, t := range f.items {
		if matches(t, filter) {
			out = append(out, t)
		}
	}
	return out, nil
}

func (f *fakeRemote) Get(ctx context.Context, id int) (entities.Task, error) {
	if err := f.check(); err != nil {
		return entities.Task{}, err
	}
	for _, t := range f.items {
		if t.ID == id {
			return t, nil
		}
	}
	return entities.Task{}, entities.ErrNotFound
}

func (f *fakeRemote) Create(ctx context.Context, item entities.Task) (entities.Task, error) {
	if err := f.check(); err != nil {
		return entities.Task{}, err
	}
	for _, t := range f.items {
		if t.ID == item.ID {
			return entities.Task{}, entities.ErrConflict
		}
	}
	f.items = append(f.items, item)
	return item, nil
}

func (f *fakeRemote) Patch(ctx context.Context, id int, patch entities.Patch) (entities.Task, error) {
	if err := f.check(); err != nil {
		return entities.Task{}, err
	}
	for i, t := range f.items {
		if t.ID == id {
			updated, err := entities.Merge(t, patch)
			if err != nil {
				return entities.Task{}, err
			}
			f.items[i] = updated
			return updated, nil
		}
	}
	return entities.Task{}, entities.ErrNotFound
}

func (f *fakeRemote) Delete(ctx context.Context, id int) error {
	if err := f.check(); err != nil {
		return err
	}
	for i, t := range f.items {
		if t.ID == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			break
		}
	}
	return nil
}

type fixture struct {
	store  *localstore.Store
	remote *fakeRemote
}

func (fx *fixture) collection(t *testing.T, online bool) *Collection[entities.Task] {
	t.Helper()
	return NewCollection(context.Background(), CollectionConfig[entities.Task]{
		Name:     "tasks",
		Remote:   fx.remote,
		Local:    NewLocal[entities.Task](fx.store, localstore.KeyTasks, nil),
		Resolver: NewResolver(probe.Static(online)),
		Store:    fx.store,
		Logger:   logger.NewNop(),
	})
}

func newFixture() *fixture {
	return &fixture{
		store:  localstore.New(localstore.NewMemory(), logger.NewNop()),
		remote: &fakeRemote{},
	}
}

func TestLocalSequenceAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()
	c := fx.collection(t, false)

	var ids []int
	for _, title := range []string{"a", "b", "c"} {
		res, err := c.Create(ctx, entities.Task{Title: title})
		if err != nil {
			t.Fatalf("create %s: %v", title, err)
		}
		if res.Source != ports.SourceLocal {
			t.Fatalf("expected local source, got %s", res.Source)
		}
		ids = append(ids, res.Value.ID)
	}
	if ids[0] != 1 || ids[1] != 2 || ids[2] != 3 {
		t.Fatalf("expected ids 1,2,3 got %v", ids)
	}

	if _, err := c.Delete(ctx, 3); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := c.Update(ctx, 2, entities.Patch{"title": "b2", "id": 99}); err != nil {
		t.Fatalf("update: %v", err)
	}

	res, err := c.Create(ctx, entities.Task{Title: "d"})
	if err != nil {
		t.Fatalf("create d: %v", err)
	}
	if res.Value.ID != 4 {
		t.Fatalf("deleted id must not be reused, got %d", res.Value.ID)
	}

	list, err := c.List(ctx, nil)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	want := map[int]string{1: "a", 2: "b2", 4: "d"}
	if len(list.Value) != len(want) {
		t.Fatalf("expected %d records, got %+v", len(want), list.Value)
	}
	for _, task := range list.Value {
		if want[task.ID] != task.Title {
			t.Fatalf("unexpected record %+v", task)
		}
	}

	// a fresh collection over the same store continues the sequence
	again := fx.collection(t, false)
	if again.NextID() != 5 {
		t.Fatalf("expected persisted counter 5, got %d", again.NextID())
	}
}

func TestRemoteFailureFallsBackToLocal(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()
	c := fx.collection(t, true)
	fx.remote.fail = true

	res, err := c.Create(ctx, entities.Task{Title: "offline"})
	if err != nil {
		t.Fatalf("create should fall back, got %v", err)
	}
	if res.Source != ports.SourceLocal || res.Value.ID != 1 {
		t.Fatalf("expected local record with id 1, got %+v from %s", res.Value, res.Source)
	}

	list, err := c.List(ctx, nil)
	if err != nil || len(list.Value) != 1 {
		t.Fatalf("expected local list with one record, got %+v, %v", list.Value, err)
	}

	fx.remote.fail = false
	res, err = c.Create(ctx, entities.Task{Title: "online"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.Source != ports.SourceRemote || res.Value.ID != 2 {
		t.Fatalf("expected remote record with id 2, got %+v from %s", res.Value, res.Source)
	}
}

func TestGetMissingIsNotFoundOnBothBackends(t *testing.T) {
	ctx := context.Background()

	for _, online := range []bool{true, false} {
		fx := newFixture()
		c := fx.collection(t, online)

		if _, err := c.Get(ctx, 42); !errors.Is(err, entities.ErrNotFound) {
			t.Fatalf("online=%v: expected ErrNotFound, got %v", online, err)
		}
		if _, err := c.Update(ctx, 42, entities.Patch{"title": "x"}); !errors.Is(err, entities.ErrNotFound) {
			t.Fatalf("online=%v: update expected ErrNotFound, got %v", online, err)
		}
		if _, err := c.Delete(ctx, 42); err != nil {
			t.Fatalf("online=%v: delete of absent id should be a no-op, got %v", online, err)
		}
	}
}

func TestUpdateReturnsPreviousRecord(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()
	fx.remote.items = []entities.Task{{ID: 7, Title: "lab report", Priority: entities.PriorityHigh}}
	c := fx.collection(t, true)

	if c.NextID() != 8 {
		t.Fatalf("counter should be seeded from remote snapshot, got %d", c.NextID())
	}

	res, err := c.Update(ctx, 7, entities.Patch{"completed": true})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if res.Value.Previous.Completed || !res.Value.Current.Completed {
		t.Fatalf("unexpected change %+v", res.Value)
	}
	if res.Value.Current.Title != "lab report" {
		t.Fatalf("patch must keep untouched fields, got %+v", res.Value.Current)
	}
}

func TestLocalDefaultsAndFilter(t *testing.T) {
	ctx := context.Background()
	store := localstore.New(localstore.NewMemory(), logger.NewNop())
	local := NewLocal(store, localstore.KeyTasks, func() []entities.Task {
		return []entities.Task{
			{ID: 1, Title: "a", Category: "Study"},
			{ID: 2, Title: "b", Category: "Work", Completed: true},
		}
	})

	got, _ := local.List(ctx, ports.Filter{"completed": "true"})
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("unexpected filtered list %+v", got)
	}

	// mutating a returned snapshot does not change the defaults
	got[0].Title = "changed"
	if again, _ := local.Get(ctx, 2); again.Title != "b" {
		t.Fatalf("defaults were mutated: %+v", again)
	}
}

func TestSingletonLocalPatch(t *testing.T) {
	ctx := context.Background()
	store := localstore.New(localstore.NewMemory(), logger.NewNop())
	s := NewSingleton[entities.Stats]("stats", "/stats", localstore.KeyStats, nil, store, NewResolver(probe.Static(false)), logger.NewNop())

	res, err := s.Patch(ctx, entities.Patch{"activeTasks": 5})
	if err != nil {
		t.Fatalf("patch: %v", err)
	}
	if res.Value.ActiveTasks != 5 || res.Source != ports.SourceLocal {
		t.Fatalf("unexpected result %+v", res)
	}

	got, _ := s.Get(ctx)
	if got.Value.ActiveTasks != 5 {
		t.Fatalf("patch not persisted: %+v", got.Value)
	}
}

func TestCreateRetriesWhenAPIHoldsTheID(t *testing.T) {
	ctx := context.Background()
	fx := newFixture()
	fx.remote.fail = true
	c := fx.collection(t, true)

	// the API gained records the collection never saw while it was down
	fx.remote.fail = false
	fx.remote.items = []entities.Task{{ID: 1, Title: "x"}, {ID: 2, Title: "y"}, {ID: 3, Title: "z"}}

	res, err := c.Create(ctx, entities.Task{Title: "new"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if res.Source != ports.SourceRemote || res.Value.ID != 4 {
		t.Fatalf("expected remote record with id 4, got %+v from %s", res.Value, res.Source)
	}

	seen := map[int]bool{}
	for _, task := range fx.remote.items {
		if seen[task.ID] {
			t.Fatalf("duplicate id %d in %+v", task.ID, fx.remote.items)
		}
		seen[task.ID] = true
	}
	if c.NextID() != 5 {
		t.Fatalf("expected next id 5, got %d", c.NextID())
	}
}
