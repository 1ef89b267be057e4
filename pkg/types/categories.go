package types

// CategoryList is an entry's ordered category list. It is a live handle:
// changes made through it are the entry's changes. Duplicates are kept.
type CategoryList struct {
	entry *Entry
	items []Category
}

// Add appends cs in order.
func (l *CategoryList) Add(cs ...Category) {
	if len(cs) == 0 {
		return
	}
	l.items = append(l.items, cs...)
	l.entry.dirty = true
}

// Remove deletes the first category equal to c and reports whether one was
// found.
func (l *CategoryList) Remove(c Category) bool {
	for i, x := range l.items {
		if x.Equal(c) {
			l.items = append(l.items[:i:i], l.items[i+1:]...)
			l.entry.dirty = true
			return true
		}
	}
	return false
}

// Contains reports whether a category equal to c is present.
func (l *CategoryList) Contains(c Category) bool {
	for _, x := range l.items {
		if x.Equal(c) {
			return true
		}
	}
	return false
}

// Len returns the number of categories.
func (l *CategoryList) Len() int { return len(l.items) }

// At returns the i'th category.
func (l *CategoryList) At(i int) Category { return l.items[i] }

// All returns a copy of the categories in order.
func (l *CategoryList) All() []Category {
	return append([]Category(nil), l.items...)
}
