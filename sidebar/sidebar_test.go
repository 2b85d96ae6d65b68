package sidebar

import "testing"

func TestRender(t *testing.T) {
	got := Render([]string{"a", "b"}, 1)
	want := `<ul id="templatesList"><li data-index="0">a</li><li data-index="1" class="selected">b</li></ul>`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestRenderEmpty(t *testing.T) {
	if got := Render(nil, -1); got != `<ul id="templatesList"></ul>` {
		t.Fatalf("unexpected empty list %q", got)
	}
}

func TestRenderEscapes(t *testing.T) {
	got := Render([]string{"<script>"}, 0)
	want := `<ul id="templatesList"><li data-index="0" class="selected">&lt;script&gt;</li></ul>`
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
