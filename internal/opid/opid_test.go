package opid

import (
	"context"
	"testing"
)

func TestContextRoundTrip(t *testing.T) {
	ctx, id := NewContext(context.Background())
	got, ok := FromContext(ctx)
	if !ok || got != id {
		t.Fatalf("expected %d from context, got %d ok=%v", id, got, ok)
	}
	if _, ok := FromContext(context.Background()); ok {
		t.Fatalf("unexpected id in empty context")
	}
}

func TestNestedContextShadowsParent(t *testing.T) {
	parent, parentID := NewContext(context.Background())
	child, childID := NewContext(parent)

	got, ok := FromContext(child)
	if !ok || got != childID {
		t.Fatalf("expected child id %d, got %d ok=%v", childID, got, ok)
	}
	if got, _ := FromContext(parent); got != parentID {
		t.Fatalf("parent id changed: %d != %d", got, parentID)
	}
}
