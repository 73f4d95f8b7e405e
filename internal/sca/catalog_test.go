package sca

import "testing"

func testCatalog() *Catalog {
	return &Catalog{Entries: []CategoryVariants{
		{Category: Scout, Variants: []Variant{{Name: "Bat"}, {Name: "Scattergun"}}},
		{Category: Soldier, Variants: []Variant{{Name: "RocketLauncher"}}},
		{Category: Pyro},
	}}
}

func TestCatalogSelectedEmptyByDefault(t *testing.T) {
	c := testCatalog()
	if sel := c.Selected(); len(sel) != 0 {
		t.Fatalf("Selected() = %v, want empty", sel)
	}
}

func TestCatalogSetAndSelected(t *testing.T) {
	c := testCatalog()
	if !c.Set(Scout, "Bat", Transform{Z: 1}) {
		t.Fatal("Set(Scout, Bat) = false")
	}
	if c.Set(Scout, "Missing", Transform{Z: 1}) {
		t.Fatal("Set on missing variant = true")
	}

	sel := c.Selected()
	if len(sel) != 1 || sel[0].Category != Scout {
		t.Fatalf("Selected() = %+v, want [Scout]", sel)
	}
	in := c.SelectedIn(Scout)
	if len(in) != 1 || in[0].Name != "Bat" {
		t.Fatalf("SelectedIn(Scout) = %+v, want [Bat]", in)
	}
	if got := c.SelectedIn(Soldier); len(got) != 0 {
		t.Errorf("SelectedIn(Soldier) = %+v, want empty", got)
	}
	if got := c.SelectedIn(Spy); got != nil {
		t.Errorf("SelectedIn(Spy) = %+v, want nil", got)
	}
}

func TestCatalogResetIsLenient(t *testing.T) {
	c := testCatalog()
	c.Set(Scout, "Bat", Transform{X: 1})
	c.Reset(Spy, "Bat")
	c.Reset(Scout, "Nope")
	if c.Modified() != 1 {
		t.Fatalf("Modified() = %d after unrelated resets, want 1", c.Modified())
	}
	c.Reset(Scout, "Bat")
	if c.Modified() != 0 {
		t.Fatalf("Modified() = %d after Reset, want 0", c.Modified())
	}
}

func TestCatalogResetAll(t *testing.T) {
	c := testCatalog()
	c.ApplyToAll(Transform{1, 1, 1, 1})
	c.ResetAll()
	if sel := c.Selected(); len(sel) != 0 {
		t.Fatalf("Selected() after ResetAll = %+v, want empty", sel)
	}
}

func TestCatalogApplyToAll(t *testing.T) {
	c := testCatalog()
	tr := Transform{0, 0, 0, 15}
	c.ApplyToAll(tr)

	total := 0
	for _, e := range c.Entries {
		total += len(e.Variants)
	}
	if c.Modified() != total {
		t.Fatalf("Modified() = %d, want every variant (%d)", c.Modified(), total)
	}
	// Pyro has no variants and therefore no selection.
	if len(c.Selected()) != 2 {
		t.Errorf("len(Selected()) = %d, want 2", len(c.Selected()))
	}
	if v := c.Find(Soldier, "RocketLauncher"); v == nil || v.Transform != tr {
		t.Errorf("Find(Soldier, RocketLauncher) = %+v, want transform %+v", v, tr)
	}
}

func TestCatalogSelectedDoesNotMutate(t *testing.T) {
	c := testCatalog()
	c.Set(Soldier, "RocketLauncher", Transform{Y: 2})
	_ = c.Selected()
	_ = c.SelectedIn(Soldier)
	if v := c.Find(Soldier, "RocketLauncher"); v.Transform != (Transform{Y: 2}) {
		t.Errorf("transform changed by query: %+v", v.Transform)
	}
}
