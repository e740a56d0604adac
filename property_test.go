package structdiff

import (
	"testing"

	"pgregory.net/rapid"
)

func seedBGen() *rapid.Generator[seedB] {
	return rapid.Custom(func(t *rapid.T) seedB {
		return seedB{
			ID:   rapid.String().Draw(t, "id"),
			Name: rapid.StringMatching(`[a-z]{0,8}`).Draw(t, "name"),
		}
	})
}

func seedAGen() *rapid.Generator[*seedA] {
	return rapid.Custom(func(t *rapid.T) *seedA {
		a := &seedA{
			ID:         rapid.Int().Draw(t, "id"),
			ColOfSeedB: rapid.SliceOfN(seedBGen(), 0, 5).Draw(t, "colOfSeedB"),
			Labels:     rapid.MapOfN(rapid.StringMatching(`[a-z]{1,4}`), rapid.String(), 0, 5).Draw(t, "labels"),
		}
		if rapid.Bool().Draw(t, "hasSeedB") {
			b := seedBGen().Draw(t, "seedB")
			a.SeedB = &b
		}
		return a
	})
}

// clone copies a seedA so that no pointer, slice or map is shared
func clone(a *seedA) *seedA {
	c := *a
	if a.SeedB != nil {
		b := *a.SeedB
		c.SeedB = &b
	}
	if a.ColOfSeedB != nil {
		c.ColOfSeedB = append([]seedB{}, a.ColOfSeedB...)
	}
	if a.Labels != nil {
		c.Labels = make(map[string]string, len(a.Labels))
		for k, v := range a.Labels {
			c.Labels[k] = v
		}
	}
	return &c
}

func TestPropertyReflexive(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := seedAGen().Draw(t, "a")
		if changes := FindChanges(a, a); len(changes) != 0 {
			t.Fatalf("expected no changes comparing a value to itself, got %v", changes.Paths())
		}
		if changes := FindChanges(a, clone(a)); len(changes) != 0 {
			t.Fatalf("expected no changes comparing a value to its copy, got %v", changes.Paths())
		}
	})
}

func TestPropertyReflexiveScalars(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.OneOf(
			rapid.Int().AsAny(),
			rapid.Float64().AsAny(),
			rapid.String().AsAny(),
			rapid.SliceOf(rapid.Int()).AsAny(),
			rapid.MapOf(rapid.String(), rapid.Float64()).AsAny(),
		).Draw(t, "v")
		if changes := FindChanges(v, v); len(changes) != 0 {
			t.Fatalf("expected no changes for %v, got %v", v, changes.Paths())
		}
	})
}

func TestPropertyNull(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := seedAGen().Draw(t, "a")
		changes := FindChanges(nil, a)
		if len(changes) != 1 {
			t.Fatalf("expected exactly one change, got %d", len(changes))
		}
		c := changes[0]
		if _, ok := c.(*ValueChange); !ok {
			t.Fatalf("expected a value change, got %T", c)
		}
		if c.Left() != nil || c.Right() != any(a) || !c.Path().IsRoot() {
			t.Fatalf("unexpected change: %s %v -> %v", c.Path(), c.Left(), c.Right())
		}
	})
}

func TestPropertyNoEmptyContainers(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		a := seedAGen().Draw(t, "a")
		b := seedAGen().Draw(t, "b")
		Walk(FindChanges(a, b), func(_ int, c Change) bool {
			if cmp, ok := c.(Compound); ok && len(cmp.Children()) == 0 {
				t.Fatalf("container change without children at %s", c.Path())
			}
			return true
		})
	})
}
