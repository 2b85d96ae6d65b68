package template_test

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"template-widgets/template"
)

func checkInvariant(t *testing.T, s *template.Store) {
	t.Helper()
	n, sel := s.Len(), s.Selected()
	if sel < -1 || sel >= n {
		t.Fatalf("selected %d out of range for %d templates", sel, n)
	}
	if (sel == -1) != (n == 0) {
		t.Fatalf("selected %d inconsistent with %d templates", sel, n)
	}
}

func TestAddAppendsAndSelects(t *testing.T) {
	s := template.NewStore([]string{"a", "b", "c"}, 1)
	s.Add()

	want := []string{"a", "b", "c", "template"}
	if diff := cmp.Diff(want, s.Templates()); diff != "" {
		t.Fatalf("templates mismatch (-want +got):\n%s", diff)
	}
	if s.Selected() != 3 {
		t.Fatalf("expected selected 3, got %d", s.Selected())
	}
	checkInvariant(t, s)
}

func TestRemoveLastClampsSelection(t *testing.T) {
	s := template.NewStore([]string{"a", "b"}, 1)
	s.Remove()

	if diff := cmp.Diff([]string{"a"}, s.Templates()); diff != "" {
		t.Fatalf("templates mismatch (-want +got):\n%s", diff)
	}
	if s.Selected() != 0 {
		t.Fatalf("expected selected 0, got %d", s.Selected())
	}
	checkInvariant(t, s)
}

func TestRemoveMiddleKeepsIndex(t *testing.T) {
	s := template.NewStore([]string{"a", "b", "c"}, 1)
	s.Remove()

	if diff := cmp.Diff([]string{"a", "c"}, s.Templates()); diff != "" {
		t.Fatalf("templates mismatch (-want +got):\n%s", diff)
	}
	if s.Selected() != 1 {
		t.Fatalf("expected selected 1, got %d", s.Selected())
	}
}

func TestRemoveToEmpty(t *testing.T) {
	s := template.NewStore([]string{"a"}, 0)
	s.Remove()

	if s.Len() != 0 {
		t.Fatalf("expected empty store, got %v", s.Templates())
	}
	if s.Selected() != -1 {
		t.Fatalf("expected selected -1, got %d", s.Selected())
	}
	checkInvariant(t, s)
}

func TestRemoveEmptyIsNoop(t *testing.T) {
	s := template.NewEmptyStore()
	fired := 0
	s.OnChange(func() { fired++ })

	s.Remove()

	if s.Len() != 0 || s.Selected() != -1 {
		t.Fatalf("unexpected state %+v", s.Snapshot())
	}
	if fired != 0 {
		t.Fatalf("expected no change notification, got %d", fired)
	}
}

func TestEditOverwritesSelected(t *testing.T) {
	s := template.NewStore([]string{"x", "y"}, 0)
	s.Edit("z")

	if diff := cmp.Diff([]string{"z", "y"}, s.Templates()); diff != "" {
		t.Fatalf("templates mismatch (-want +got):\n%s", diff)
	}
	if s.SelectedText() != "z" {
		t.Fatalf("expected selected text z, got %q", s.SelectedText())
	}
}

func TestEditWithoutSelectionIsNoop(t *testing.T) {
	s := template.NewEmptyStore()
	fired := 0
	s.OnChange(func() { fired++ })

	s.Edit("ignored")

	if s.Len() != 0 || fired != 0 {
		t.Fatalf("expected no-op, got %v (fired %d)", s.Templates(), fired)
	}
}

func TestSelect(t *testing.T) {
	s := template.NewStore([]string{"a", "b", "c"}, 0)
	s.Select(2)
	if s.Selected() != 2 {
		t.Fatalf("expected selected 2, got %d", s.Selected())
	}

	s.Select(7)
	s.Select(-1)
	if s.Selected() != 2 {
		t.Fatalf("out-of-range select changed selection to %d", s.Selected())
	}
}

func TestOnChangeFiresPerMutation(t *testing.T) {
	s := template.NewStore([]string{"a"}, 0)
	fired := 0
	s.OnChange(func() { fired++ })

	s.Add()
	s.Select(0)
	s.Edit("b")
	s.Remove()

	if fired != 4 {
		t.Fatalf("expected 4 notifications, got %d", fired)
	}
}

func TestInvariantAcrossSequence(t *testing.T) {
	s := template.NewStore([]string{"a", "b"}, 0)
	ops := []func(){
		s.Add, s.Remove, s.Remove, s.Remove, s.Remove,
		s.Add, s.Add, func() { s.Select(0) }, s.Remove,
		func() { s.Edit("e") }, s.Remove, s.Remove,
	}
	for _, op := range ops {
		op()
		checkInvariant(t, s)
	}
}

func TestNewStoreClampsSelection(t *testing.T) {
	if got := template.NewStore(nil, 3).Selected(); got != -1 {
		t.Fatalf("expected -1 for empty seed, got %d", got)
	}
	if got := template.NewStore([]string{"a", "b"}, 9).Selected(); got != 1 {
		t.Fatalf("expected clamp to 1, got %d", got)
	}
}

func TestTemplatesReturnsCopy(t *testing.T) {
	s := template.NewStore([]string{"a"}, 0)
	got := s.Templates()
	got[0] = "mutated"
	if s.SelectedText() != "a" {
		t.Fatalf("store was mutated through Templates(): %q", s.SelectedText())
	}
}
