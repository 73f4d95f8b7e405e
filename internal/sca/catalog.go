package sca

// Variant is one animation folder inside a category, with the transform the
// user has attached to it.
type Variant struct {
	Name      string
	Transform Transform
}

// CategoryVariants groups the variants found under one category folder.
type CategoryVariants struct {
	Category Category
	Variants []Variant
}

// Selected returns the variants whose transform is modified, in catalog order.
func (cv *CategoryVariants) Selected() []Variant {
	var out []Variant
	for _, v := range cv.Variants {
		if v.Transform.IsModified() {
			out = append(out, v)
		}
	}
	return out
}

// HasSelection reports whether at least one variant is modified.
func (cv *CategoryVariants) HasSelection() bool {
	for _, v := range cv.Variants {
		if v.Transform.IsModified() {
			return true
		}
	}
	return false
}

// Catalog holds exactly one entry per Category, in declaration order.
// The variant lists are a snapshot of the library at scan time; only
// transforms change afterwards.
type Catalog struct {
	Entries []CategoryVariants
}

// Entry returns the entry for c, or nil if the catalog does not hold it.
func (c *Catalog) Entry(cat Category) *CategoryVariants {
	for i := range c.Entries {
		if c.Entries[i].Category == cat {
			return &c.Entries[i]
		}
	}
	return nil
}

// Find returns a pointer to the named variant, or nil.
func (c *Catalog) Find(cat Category, name string) *Variant {
	e := c.Entry(cat)
	if e == nil {
		return nil
	}
	for i := range e.Variants {
		if e.Variants[i].Name == name {
			return &e.Variants[i]
		}
	}
	return nil
}

// Set overwrites one variant's transform. It reports false if the variant
// does not exist.
func (c *Catalog) Set(cat Category, name string, t Transform) bool {
	v := c.Find(cat, name)
	if v == nil {
		return false
	}
	v.Transform = t
	return true
}

// Reset zeroes one variant's transform. Unknown categories or names are
// ignored.
func (c *Catalog) Reset(cat Category, name string) {
	if v := c.Find(cat, name); v != nil {
		v.Transform.Reset()
	}
}

// ResetAll zeroes every transform in the catalog.
func (c *Catalog) ResetAll() {
	for i := range c.Entries {
		for j := range c.Entries[i].Variants {
			c.Entries[i].Variants[j].Transform.Reset()
		}
	}
}

// ApplyToAll overwrites every variant's transform with t.
func (c *Catalog) ApplyToAll(t Transform) {
	for i := range c.Entries {
		for j := range c.Entries[i].Variants {
			c.Entries[i].Variants[j].Transform = t
		}
	}
}

// Selected returns the entries with at least one modified variant. The
// returned entries share variant storage with the catalog; callers must not
// mutate them.
func (c *Catalog) Selected() []CategoryVariants {
	var out []CategoryVariants
	for _, e := range c.Entries {
		if e.HasSelection() {
			out = append(out, e)
		}
	}
	return out
}

// SelectedIn returns the modified variants of one category.
func (c *Catalog) SelectedIn(cat Category) []Variant {
	e := c.Entry(cat)
	if e == nil {
		return nil
	}
	return e.Selected()
}

// Modified counts modified variants across the whole catalog.
func (c *Catalog) Modified() int {
	n := 0
	for _, e := range c.Entries {
		n += len(e.Selected())
	}
	return n
}
