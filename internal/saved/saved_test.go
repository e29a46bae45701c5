package saved_test

import (
	"context"
	"testing"

	"github.com/radzdev1120/job-works/internal/saved"
)

// ── Toggle ─────────────────────────────────────────────────────────────────

func TestMemorySet_ToggleAddsThenRemoves(t *testing.T) {
	set := saved.NewMemorySet()
	ctx := context.Background()

	on, err := set.Toggle(ctx, "a@x.com", "42")
	if err != nil || !on {
		t.Fatalf("first toggle = (%v, %v), want (true, nil)", on, err)
	}

	on, err = set.Toggle(ctx, "a@x.com", "42")
	if err != nil || on {
		t.Fatalf("second toggle = (%v, %v), want (false, nil)", on, err)
	}

	ids, _ := set.List(ctx, "a@x.com")
	if len(ids) != 0 {
		t.Errorf("set not empty after toggle pair: %v", ids)
	}
}

// Sets are scoped per identity — toggling for one user must not touch another.
func TestMemorySet_PerIdentityScope(t *testing.T) {
	set := saved.NewMemorySet()
	ctx := context.Background()

	set.Toggle(ctx, "a@x.com", "42")
	set.Toggle(ctx, "b@x.com", "7")

	a, _ := set.List(ctx, "a@x.com")
	b, _ := set.List(ctx, "b@x.com")
	if len(a) != 1 || a[0] != "42" {
		t.Errorf("a's set = %v, want [42]", a)
	}
	if len(b) != 1 || b[0] != "7" {
		t.Errorf("b's set = %v, want [7]", b)
	}
}

// ── Remove ─────────────────────────────────────────────────────────────────

func TestMemorySet_RemoveAbsentIsNoOp(t *testing.T) {
	set := saved.NewMemorySet()
	if err := set.Remove(context.Background(), "a@x.com", "never"); err != nil {
		t.Fatalf("Remove on absent id: %v", err)
	}
}

func TestMemorySet_RemoveDeletes(t *testing.T) {
	set := saved.NewMemorySet()
	ctx := context.Background()

	set.Toggle(ctx, "a@x.com", "42")
	set.Toggle(ctx, "a@x.com", "7")
	if err := set.Remove(ctx, "a@x.com", "42"); err != nil {
		t.Fatalf("Remove: %v", err)
	}

	ids, _ := set.List(ctx, "a@x.com")
	if len(ids) != 1 || ids[0] != "7" {
		t.Errorf("set after remove = %v, want [7]", ids)
	}
}

// ── Order ──────────────────────────────────────────────────────────────────

// List returns ids in the order they were saved, with re-saved ids moving to
// the end (a toggle pair removes, the next toggle re-inserts).
func TestMemorySet_InsertionOrder(t *testing.T) {
	set := saved.NewMemorySet()
	ctx := context.Background()

	for _, id := range []string{"3", "1", "2"} {
		set.Toggle(ctx, "a@x.com", id)
	}

	ids, _ := set.List(ctx, "a@x.com")
	if len(ids) != 3 || ids[0] != "3" || ids[1] != "1" || ids[2] != "2" {
		t.Errorf("List = %v, want [3 1 2]", ids)
	}
}
