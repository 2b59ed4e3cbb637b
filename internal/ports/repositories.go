package ports

import "context"

// KeyValueStore persists raw JSON documents under string keys
type KeyValueStore interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// DocumentPersister loads and saves the whole mock API document
type DocumentPersister interface {
	Load(ctx context.Context) (map[string]interface{}, error)
	Save(ctx context.Context, doc map[string]interface{}) error
}

// Source names the backend that served a data operation
type Source string

const (
	SourceRemote Source = "remote"
	SourceLocal  Source = "local"
)

// Filter selects records by field equality. Keys are JSON field names.
type Filter map[string]string
