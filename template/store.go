package template

// Store holds the ordered template list and the current selection.
//
// A template is identified only by its position. Store is not safe for
// concurrent use; callers run it on a single event loop.
type Store struct {
	templates []string
	selected  int
	listeners []func()
}

// NewStore returns a store seeded with templates. The selection is clamped
// into range, and forced to -1 when templates is empty.
func NewStore(templates []string, selected int) *Store {
	s := &Store{templates: make([]string, len(templates))}
	copy(s.templates, templates)
	s.selected = clamp(selected, len(s.templates))
	return s
}

// NewEmptyStore returns a store with no templates and no selection.
func NewEmptyStore() *Store {
	return &Store{templates: []string{}, selected: -1}
}

// OnChange registers fn to run after every mutation that changed the store.
func (s *Store) OnChange(fn func()) {
	s.listeners = append(s.listeners, fn)
}

// Add appends a default template and selects it.
func (s *Store) Add() {
	s.templates = append(s.templates, DefaultText)
	s.selected = len(s.templates) - 1
	s.notify()
}

// Remove deletes the selected template. It is a no-op on an empty store.
func (s *Store) Remove() {
	if len(s.templates) == 0 || s.selected < 0 {
		return
	}
	s.templates = append(s.templates[:s.selected], s.templates[s.selected+1:]...)
	if s.selected >= len(s.templates) {
		s.selected = len(s.templates) - 1
	}
	s.notify()
}

// Select makes i the current selection. Indices outside the list are ignored.
func (s *Store) Select(i int) {
	if i < 0 || i >= len(s.templates) {
		return
	}
	s.selected = i
	s.notify()
}

// Edit overwrites the selected template. It is a no-op without a selection.
func (s *Store) Edit(text string) {
	if s.selected < 0 {
		return
	}
	s.templates[s.selected] = text
	s.notify()
}

// Len returns the number of templates.
func (s *Store) Len() int { return len(s.templates) }

// Selected returns the selected index, or -1.
func (s *Store) Selected() int { return s.selected }

// At returns the template at i and whether i is in range.
func (s *Store) At(i int) (string, bool) {
	if i < 0 || i >= len(s.templates) {
		return "", false
	}
	return s.templates[i], true
}

// SelectedText returns the selected template, or "" with no selection.
func (s *Store) SelectedText() string {
	t, _ := s.At(s.selected)
	return t
}

// Templates returns a copy of the template list.
func (s *Store) Templates() []string {
	out := make([]string, len(s.templates))
	copy(out, s.templates)
	return out
}

// Snapshot returns a copy of the store state.
func (s *Store) Snapshot() Snapshot {
	return Snapshot{Templates: s.Templates(), Selected: s.selected}
}

func (s *Store) notify() {
	for _, fn := range s.listeners {
		fn()
	}
}

func clamp(selected, n int) int {
	if n == 0 {
		return -1
	}
	if selected < 0 {
		return 0
	}
	if selected >= n {
		return n - 1
	}
	return selected
}
