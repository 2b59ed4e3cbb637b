package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/taskmaster/planner/internal/infrastructure/database"
)

// FilePersister keeps the document in a JSON file, in the db.json format
type FilePersister struct {
	path string
}

// NewFilePersister creates a new file persister
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{path: path}
}

// Load reads the document. A missing file yields an empty document.
func (p *FilePersister) Load(ctx context.Context) (map[string]interface{}, error) {
	raw, err := os.ReadFile(p.path)
	if errors.Is(err, os.ErrNotExist) {
		return map[string]interface{}{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", p.path, err)
	}

	doc := map[string]interface{}{}
	if len(raw) == 0 {
		return doc, nil
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("decode %s: %w", p.path, err)
	}
	return doc, nil
}

// Save writes the document through a temporary file and a rename
func (p *FilePersister) Save(ctx context.Context, doc map[string]interface{}) error {
	raw, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	dir := filepath.Dir(p.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".db-*.json")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return fmt.Errorf("write document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close document: %w", err)
	}
	if err := os.Rename(tmp.Name(), p.path); err != nil {
		return fmt.Errorf("replace %s: %w", p.path, err)
	}
	return nil
}

// PostgresPersister keeps each top-level resource as a JSONB row of the documents table
type PostgresPersister struct {
	db *database.DB
}

// NewPostgresPersister creates a new postgres persister. The schema is created by migrations.
func NewPostgresPersister(db *database.DB) *PostgresPersister {
	return &PostgresPersister{db: db}
}

type documentRow struct {
	Name string `db:"name"`
	Body []byte `db:"body"`
}

// Load reads every resource row
func (p *PostgresPersister) Load(ctx context.Context) (map[string]interface{}, error) {
	var rows []documentRow
	if err := p.db.DB.SelectContext(ctx, &rows, `SELECT name, body FROM documents`); err != nil {
		return nil, fmt.Errorf("select documents: %w", err)
	}

	doc := make(map[string]interface{}, len(rows))
	for _, row := range rows {
		var body interface{}
		if err := json.Unmarshal(row.Body, &body); err != nil {
			return nil, fmt.Errorf("decode document %q: %w", row.Name, err)
		}
		doc[row.Name] = body
	}
	return doc, nil
}

// Save upserts every resource and removes the rows of resources no longer present
func (p *PostgresPersister) Save(ctx context.Context, doc map[string]interface{}) error {
	return p.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		names := make([]string, 0, len(doc))
		for name, body := range doc {
			raw, err := json.Marshal(body)
			if err != nil {
				return fmt.Errorf("encode document %q: %w", name, err)
			}

			query := `
				INSERT INTO documents (name, body, updated_at)
				VALUES ($1, $2, NOW())
				ON CONFLICT (name) DO UPDATE SET body = EXCLUDED.body, updated_at = NOW()`
			if _, err := tx.ExecContext(ctx, query, name, string(raw)); err != nil {
				return fmt.Errorf("upsert document %q: %w", name, err)
			}
			names = append(names, name)
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM documents WHERE NOT (name = ANY($1))`, pq.Array(names)); err != nil {
			return fmt.Errorf("delete stale documents: %w", err)
		}
		return nil
	})
}

// MemoryPersister keeps the document in memory only
type MemoryPersister struct {
	doc   map[string]interface{}
	saves int
}

// NewMemoryPersister creates a persister that never touches disk
func NewMemoryPersister() *MemoryPersister {
	return &MemoryPersister{}
}

func (p *MemoryPersister) Load(ctx context.Context) (map[string]interface{}, error) {
	if p.doc == nil {
		return map[string]interface{}{}, nil
	}
	return clone(p.doc).(map[string]interface{}), nil
}

func (p *MemoryPersister) Save(ctx context.Context, doc map[string]interface{}) error {
	p.doc = clone(doc).(map[string]interface{})
	p.saves++
	return nil
}

// Saves returns how many times the document was written
func (p *MemoryPersister) Saves() int {
	return p.saves
}
