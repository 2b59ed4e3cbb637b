package entities

import (
	"encoding/json"
	"fmt"
)

// Patch is a partial update keyed by JSON field name.
// Fields are merged as-is; no validation is performed.
type Patch map[string]interface{}

// Merge overlays patch onto v and returns the result as a new value.
// Later fields win; nested objects are replaced, not merged.
func Merge[T any](v T, patch Patch) (T, error) {
	var out T

	doc, err := ToPatch(v)
	if err != nil {
		return out, err
	}
	for k, val := range patch {
		doc[k] = val
	}

	raw, err := json.Marshal(doc)
	if err != nil {
		return out, fmt.Errorf("encode merged document: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("decode merged document: %w", err)
	}
	return out, nil
}

// ToPatch converts v into its JSON field map
func ToPatch(v interface{}) (Patch, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	doc := Patch{}
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("document is not an object: %w", err)
	}
	return doc, nil
}

// WithID returns a copy of v carrying the given id
func WithID[T any](v T, id int) (T, error) {
	return Merge(v, Patch{"id": id})
}

// MaxID returns the highest id in items, or zero for an empty slice
func MaxID[T Identified](items []T) int {
	max := 0
	for _, item := range items {
		if id := item.GetID(); id > max {
			max = id
		}
	}
	return max
}
