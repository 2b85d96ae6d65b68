// Package widget encodes template references as select markup and decodes
// them back out of a document.
package widget

import (
	"html"
	"strconv"
	"strings"

	nethtml "golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"template-widgets/surface"
	"template-widgets/template"
)

const (
	Class     = "template-dropdown"
	IndexAttr = "data-template-index"

	MarkerClass = "template-error"
	MarkerStyle = "color:red;font-weight:bold;"
	MarkerText  = "ERROR"
)

// Codec maps template indices to widget markup using the live store, so
// labels are always current when rendered.
type Codec struct {
	store *template.Store
}

func NewCodec(store *template.Store) *Codec {
	return &Codec{store: store}
}

// Encode renders a widget selecting index, or the error marker when index
// does not name a template.
func (c *Codec) Encode(index int) string {
	if index < 0 || index >= c.store.Len() {
		return ErrorMarker()
	}
	var b strings.Builder
	b.WriteString(`<select class="` + Class + `" ` + IndexAttr + `="`)
	b.WriteString(strconv.Itoa(index))
	b.WriteString(`">`)
	for i, label := range c.store.Templates() {
		b.WriteString(`<option value="`)
		b.WriteString(strconv.Itoa(i))
		b.WriteString(`"`)
		if i == index {
			b.WriteString(" selected")
		}
		b.WriteString(">")
		b.WriteString(html.EscapeString(label))
		b.WriteString("</option>")
	}
	b.WriteString("</select>")
	return b.String()
}

// Decode returns the index a widget currently selects. ok is false when the
// value is not an integer or no longer names a template.
func (c *Codec) Decode(n *nethtml.Node) (index int, ok bool) {
	i, err := strconv.Atoi(surface.SelectValue(n))
	if err != nil || i < 0 || i >= c.store.Len() {
		return -1, false
	}
	return i, true
}

// OptionNodes builds one option per template with the option at selected
// marked.
func (c *Codec) OptionNodes(s surface.Surface, selected int) []*nethtml.Node {
	templates := c.store.Templates()
	opts := make([]*nethtml.Node, 0, len(templates))
	for i, label := range templates {
		attrs := []nethtml.Attribute{{Key: "value", Val: strconv.Itoa(i)}}
		if i == selected {
			attrs = append(attrs, nethtml.Attribute{Key: "selected"})
		}
		opts = append(opts, s.CreateNode("option", attrs, label))
	}
	return opts
}

// IsWidget reports whether n is a reference widget. Error markers are spans
// and never match.
func IsWidget(n *nethtml.Node) bool {
	return n.Type == nethtml.ElementNode && n.DataAtom == atom.Select && surface.HasClass(n, Class)
}

// ErrorMarker is the markup of an inert error marker.
func ErrorMarker() string {
	return `<span class="` + MarkerClass + `" style="` + MarkerStyle + `">` + MarkerText + `</span>`
}

// MarkerNode creates an error marker node on s.
func MarkerNode(s surface.Surface) *nethtml.Node {
	return s.CreateNode("span", []nethtml.Attribute{
		{Key: "class", Val: MarkerClass},
		{Key: "style", Val: MarkerStyle},
	}, MarkerText)
}
