package events

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func TestNewMetadata_AcceptsPermittedShapes(t *testing.T) {
	m, err := NewMetadata(map[string]any{
		"str":   "a",
		"int":   7,
		"int64": int64(8),
		"float": 1.5,
		"bool":  true,
		"id":    uuid.New(),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(m) != 6 {
		t.Fatalf("expected 6 entries, got %d", len(m))
	}
}

func TestNewMetadata_RejectsUnsupportedShape(t *testing.T) {
	_, err := NewMetadata(map[string]any{"bad": struct{}{}})
	if err == nil {
		t.Fatal("expected an error for an unsupported metadata value")
	}
	var unsupported *UnsupportedMetadataError
	if !errors.As(err, &unsupported) {
		t.Fatalf("expected *UnsupportedMetadataError, got %T", err)
	}
}

func TestEntry_WithEntityAndMetadataReturnCopies(t *testing.T) {
	base := NewEntry(NeedCreated, "msg")
	withEntity := base.WithEntity(uuid.New(), "Need")

	if base.EntityID != nil {
		t.Fatalf("expected original entry untouched")
	}
	if withEntity.EntityID == nil {
		t.Fatalf("expected the copy to carry the entity reference")
	}
}
