package sca

import (
	"fmt"
	"strings"
)

//go:generate go tool stringer -type=Category

// Category identifies one of the nine class folders of the template library.
// Its String form is both the display name and the directory name.
type Category int

const (
	Scout Category = iota
	Soldier
	Pyro
	Demo
	Heavy
	Engineer
	Medic
	Sniper
	Spy
)

// numCategories is the size of the closed Category set.
const numCategories = int(Spy) + 1

// Categories returns every Category in declaration order.
func Categories() []Category {
	cs := make([]Category, numCategories)
	for i := range cs {
		cs[i] = Category(i)
	}
	return cs
}

// Dir returns the path segment of the category inside the library and the
// staging area. It is always equal to String.
func (c Category) Dir() string {
	return c.String()
}

// Valid reports whether c is one of the nine known categories.
func (c Category) Valid() bool {
	return c >= 0 && int(c) < numCategories
}

// ParseCategory resolves a class name (case-insensitive) to its Category.
func ParseCategory(name string) (Category, error) {
	for _, c := range Categories() {
		if strings.EqualFold(c.String(), name) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, name)
}
