package repository

import (
	"testing"
)

func TestRedisFieldsRoundTrip(t *testing.T) {
	doc := DefaultDocument("user@example.com")

	fields, err := encodeFields(doc)
	if err != nil {
		t.Fatalf("encodeFields: %v", err)
	}
	if len(fields) != len(doc) {
		t.Fatalf("expected %d fields, got %d", len(doc), len(fields))
	}

	raw := make(map[string]string, len(fields))
	for name, v := range fields {
		s, ok := v.(string)
		if !ok {
			t.Fatalf("field %s is %T, want string", name, v)
		}
		raw[name] = s
	}

	back, err := decodeFields(raw)
	if err != nil {
		t.Fatalf("decodeFields: %v", err)
	}

	categories, ok := back[ResourceCategories].([]interface{})
	if !ok || len(categories) != 6 {
		t.Fatalf("categories did not survive: %#v", back[ResourceCategories])
	}
	user, ok := back[ResourceUser].(map[string]interface{})
	if !ok || user["email"] != "user@example.com" {
		t.Fatalf("user did not survive: %#v", back[ResourceUser])
	}
}

func TestRedisFieldsRejectBadJSON(t *testing.T) {
	if _, err := decodeFields(map[string]string{"tasks": "[{"}); err == nil {
		t.Fatal("expected a decode error")
	}
}
