package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/taskmaster/planner/internal/domain/entities"
	"github.com/taskmaster/planner/internal/infrastructure/logger"
	"github.com/taskmaster/planner/internal/ports"
)

// Record is one JSON object of the document
type Record = map[string]interface{}

// Database is the in-memory JSON document served by the mock API.
// Every mutation is written back to the persister before it returns.
type Database struct {
	mu        sync.RWMutex
	doc       map[string]interface{}
	persister ports.DocumentPersister
	logger    *logger.Logger
}

// Open loads the document from persister, seeding it with seed when nothing is stored yet
func Open(ctx context.Context, persister ports.DocumentPersister, seed map[string]interface{}, log *logger.Logger) (*Database, error) {
	doc, err := persister.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load document: %w", err)
	}

	db := &Database{
		doc:       doc,
		persister: persister,
		logger:    log.WithComponent("document"),
	}

	if len(doc) == 0 {
		db.doc = clone(seed).(map[string]interface{})
		if err := persister.Save(ctx, db.doc); err != nil {
			return nil, fmt.Errorf("failed to seed document: %w", err)
		}
		db.logger.Infow("Document seeded", "resources", len(db.doc))
	}

	return db, nil
}

// Resources returns the top-level resource names
func (db *Database) Resources() []string {
	db.mu.RLock()
	defer db.mu.RUnlock()

	names := make([]string, 0, len(db.doc))
	for name := range db.doc {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// List returns the records of a collection matching filter.
// Filter keys starting with an underscore are ignored.
func (db *Database) List(name string, filter ports.Filter) ([]Record, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	items, err := collection(db.doc, name)
	if err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(items))
	for _, item := range items {
		rec, ok := item.(Record)
		if !ok || !matches(rec, filter) {
			continue
		}
		out = append(out, clone(rec).(Record))
	}
	return out, nil
}

// Get returns one record of a collection
func (db *Database) Get(name string, id int) (Record, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	items, err := collection(db.doc, name)
	if err != nil {
		return nil, err
	}
	i := indexOf(items, id)
	if i < 0 {
		return nil, fmt.Errorf("%s %d: %w", name, id, entities.ErrNotFound)
	}
	return clone(items[i]).(Record), nil
}

// Insert appends rec to a collection, creating the collection when needed.
// The id in rec is kept when present, otherwise the next free id is assigned.
// An id that is already taken yields ErrConflict.
func (db *Database) Insert(ctx context.Context, name string, rec Record) (Record, error) {
	var created Record
	err := db.Update(ctx, func(doc map[string]interface{}) error {
		var err error
		created, err = insert(doc, name, rec)
		return err
	})
	return created, err
}

// Patch merges patch into a record. The id field is never changed.
func (db *Database) Patch(ctx context.Context, name string, id int, patch Record) (Record, error) {
	var updated Record
	err := db.Update(ctx, func(doc map[string]interface{}) error {
		rec, err := find(doc, name, id)
		if err != nil {
			return err
		}
		for k, v := range patch {
			if k != "id" {
				rec[k] = clone(v)
			}
		}
		updated = rec
		return nil
	})
	return clone(updated).(Record), err
}

// Replace swaps a record for rec, keeping its id
func (db *Database) Replace(ctx context.Context, name string, id int, rec Record) (Record, error) {
	var replaced Record
	err := db.Update(ctx, func(doc map[string]interface{}) error {
		items, err := collection(doc, name)
		if err != nil {
			return err
		}
		i := indexOf(items, id)
		if i < 0 {
			return fmt.Errorf("%s %d: %w", name, id, entities.ErrNotFound)
		}
		replaced = clone(rec).(Record)
		replaced["id"] = id
		items[i] = replaced
		return nil
	})
	return clone(replaced).(Record), err
}

// Delete removes a record from a collection
func (db *Database) Delete(ctx context.Context, name string, id int) error {
	return db.Update(ctx, func(doc map[string]interface{}) error {
		items, err := collection(doc, name)
		if err != nil {
			return err
		}
		i := indexOf(items, id)
		if i < 0 {
			return fmt.Errorf("%s %d: %w", name, id, entities.ErrNotFound)
		}
		doc[name] = append(items[:i], items[i+1:]...)
		return nil
	})
}

// Object returns a singular resource such as stats or user
func (db *Database) Object(name string) (Record, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()

	obj, err := object(db.doc, name)
	if err != nil {
		return nil, err
	}
	return clone(obj).(Record), nil
}

// PatchObject merges patch into a singular resource
func (db *Database) PatchObject(ctx context.Context, name string, patch Record) (Record, error) {
	var updated Record
	err := db.Update(ctx, func(doc map[string]interface{}) error {
		obj, err := object(doc, name)
		if err != nil {
			return err
		}
		for k, v := range patch {
			obj[k] = clone(v)
		}
		updated = obj
		return nil
	})
	return clone(updated).(Record), err
}

// Update runs fn with exclusive access to the document and saves the result.
// When fn fails the document is left untouched.
func (db *Database) Update(ctx context.Context, fn func(doc map[string]interface{}) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	working := clone(db.doc).(map[string]interface{})
	if err := fn(working); err != nil {
		return err
	}

	if err := db.persister.Save(ctx, working); err != nil {
		db.logger.Errorw("Failed to persist document", "error", err)
		return fmt.Errorf("failed to persist document: %w", err)
	}
	db.doc = working
	return nil
}

// Records returns the collection name of doc, for use inside Update
func Records(doc map[string]interface{}, name string) ([]interface{}, error) {
	return collection(doc, name)
}

// Find returns a mutable record of doc, for use inside Update
func Find(doc map[string]interface{}, name string, id int) (Record, error) {
	return find(doc, name, id)
}

// Append inserts rec into doc under the next free id, for use inside Update
func Append(doc map[string]interface{}, name string, rec Record) Record {
	rec = clone(rec).(Record)
	delete(rec, "id")
	created, _ := insert(doc, name, rec)
	return clone(created).(Record)
}

// Singular returns a mutable singular resource of doc, for use inside Update
func Singular(doc map[string]interface{}, name string) (Record, error) {
	return object(doc, name)
}

// IDOf extracts an integer id from a decoded JSON value
func IDOf(v interface{}) (int, bool) {
	switch id := v.(type) {
	case int:
		return id, true
	case int64:
		return int(id), true
	case float64:
		if id != float64(int(id)) {
			return 0, false
		}
		return int(id), true
	case json.Number:
		n, err := id.Int64()
		return int(n), err == nil
	case string:
		n, err := strconv.Atoi(id)
		return n, err == nil
	default:
		return 0, false
	}
}

func collection(doc map[string]interface{}, name string) ([]interface{}, error) {
	raw, ok := doc[name]
	if !ok {
		return nil, fmt.Errorf("resource %q: %w", name, entities.ErrNotFound)
	}
	items, ok := raw.([]interface{})
	if !ok {
		return nil, fmt.Errorf("resource %q is not a collection: %w", name, entities.ErrNotFound)
	}
	return items, nil
}

func object(doc map[string]interface{}, name string) (Record, error) {
	raw, ok := doc[name]
	if !ok {
		return nil, fmt.Errorf("resource %q: %w", name, entities.ErrNotFound)
	}
	obj, ok := raw.(Record)
	if !ok {
		return nil, fmt.Errorf("resource %q is not an object: %w", name, entities.ErrNotFound)
	}
	return obj, nil
}

func find(doc map[string]interface{}, name string, id int) (Record, error) {
	items, err := collection(doc, name)
	if err != nil {
		return nil, err
	}
	i := indexOf(items, id)
	if i < 0 {
		return nil, fmt.Errorf("%s %d: %w", name, id, entities.ErrNotFound)
	}
	return items[i].(Record), nil
}

func insert(doc map[string]interface{}, name string, rec Record) (Record, error) {
	items, _ := doc[name].([]interface{})

	created := clone(rec).(Record)
	if id, ok := IDOf(created["id"]); ok && id > 0 {
		if indexOf(items, id) >= 0 {
			return nil, fmt.Errorf("%s %d: %w", name, id, entities.ErrConflict)
		}
		created["id"] = id
	} else {
		created["id"] = maxID(items) + 1
	}

	doc[name] = append(items, created)
	return created, nil
}

func indexOf(items []interface{}, id int) int {
	for i, item := range items {
		rec, ok := item.(Record)
		if !ok {
			continue
		}
		if v, ok := IDOf(rec["id"]); ok && v == id {
			return i
		}
	}
	return -1
}

func maxID(items []interface{}) int {
	max := 0
	for _, item := range items {
		rec, ok := item.(Record)
		if !ok {
			continue
		}
		if v, ok := IDOf(rec["id"]); ok && v > max {
			max = v
		}
	}
	return max
}

func matches(rec Record, filter ports.Filter) bool {
	for key, want := range filter {
		if strings.HasPrefix(key, "_") {
			continue
		}
		if fmt.Sprint(rec[key]) != want {
			return false
		}
	}
	return true
}

func clone(v interface{}) interface{} {
	switch val := v.(type) {
	case map[string]interface{}:
		out := make(map[string]interface{}, len(val))
		for k, item := range val {
			out[k] = clone(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = clone(item)
		}
		return out
	default:
		return val
	}
}
