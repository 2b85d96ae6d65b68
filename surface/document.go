package surface

import (
	"bytes"
	"strings"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Selector reports whether a node is a reference widget.
type Selector func(n *html.Node) bool

type caret struct {
	parent *html.Node
	offset int // -1 means after the last child
}

// Document is an in-memory HTML body that implements Surface.
//
// It starts out not ready, mirroring an editor that has not finished
// initializing; SetContent makes it ready. Document is not safe for
// concurrent use.
type Document struct {
	body     *html.Node
	ready    bool
	caret    caret
	selector Selector
	policy   *bluemonday.Policy
	handlers map[*html.Node]ChangeHandler
}

// NewDocument returns an empty, not-yet-ready document whose widgets are
// recognized by sel.
func NewDocument(sel Selector) *Document {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	return &Document{
		body:     body,
		caret:    caret{parent: body, offset: -1},
		selector: sel,
		policy:   ContentPolicy(),
		handlers: make(map[*html.Node]ChangeHandler),
	}
}

// ContentPolicy is the sanitizer applied to client supplied document
// content. It admits ordinary rich text plus the widget and marker markup.
func ContentPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowElements("select", "option", "span")
	p.AllowAttrs("class", "data-template-index").OnElements("select")
	p.AllowAttrs("value", "selected").OnElements("option")
	p.AllowAttrs("class").OnElements("span")
	p.AllowStyles("color", "font-weight").OnElements("span")
	return p
}

// SetContent replaces the body with sanitized markup and marks the document
// ready. The caret moves to the end and all change handlers are dropped.
func (d *Document) SetContent(markup string) error {
	clean := d.policy.Sanitize(markup)
	nodes, err := html.ParseFragment(strings.NewReader(clean), d.body)
	if err != nil {
		return err
	}
	RemoveChildren(d.body)
	for _, n := range nodes {
		d.body.AppendChild(n)
	}
	d.handlers = make(map[*html.Node]ChangeHandler)
	d.caret = caret{parent: d.body, offset: -1}
	d.ready = true
	return nil
}

// IsReady reports whether content has been loaded.
func (d *Document) IsReady() bool { return d.ready }

// HTML renders the body contents.
func (d *Document) HTML() string {
	var buf bytes.Buffer
	for c := d.body.FirstChild; c != nil; c = c.NextSibling {
		_ = html.Render(&buf, c)
	}
	return buf.String()
}

// SetCaret moves the insertion point. path walks child offsets from the
// body; its last element is the offset inside the final parent, which may
// equal that parent's child count. An empty path puts the caret at the end
// of the body. The caret cannot be placed inside a widget or any other
// select.
func (d *Document) SetCaret(path []int) error {
	if !d.ready {
		return ErrNotReady
	}
	if len(path) == 0 {
		d.caret = caret{parent: d.body, offset: -1}
		return nil
	}
	parent := d.body
	for _, i := range path[:len(path)-1] {
		child := nthChild(parent, i)
		if child == nil || child.Type != html.ElementNode || d.closed(child) {
			return ErrInvalidCaret
		}
		parent = child
	}
	offset := path[len(path)-1]
	if offset < 0 || offset > childCount(parent) {
		return ErrInvalidCaret
	}
	d.caret = caret{parent: parent, offset: offset}
	return nil
}

// QueryWidgetNodes returns every widget in document order. Widgets nested
// inside another widget are not reported.
func (d *Document) QueryWidgetNodes() []*html.Node {
	if !d.ready {
		return nil
	}
	var found []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && d.selector(c) {
				found = append(found, c)
				continue
			}
			walk(c)
		}
	}
	walk(d.body)
	return found
}

// InsertMarkup parses markup in the context of the caret's parent and
// inserts it at the caret, leaving the caret after the inserted nodes.
func (d *Document) InsertMarkup(markup string) {
	if !d.ready {
		return
	}
	if !d.attached(d.caret.parent) {
		d.caret = caret{parent: d.body, offset: -1}
	}
	nodes, err := html.ParseFragment(strings.NewReader(markup), d.caret.parent)
	if err != nil {
		return
	}

	ref := nthChild(d.caret.parent, d.caret.offset)
	for _, n := range nodes {
		d.caret.parent.InsertBefore(n, ref)
	}
	if d.caret.offset >= 0 {
		d.caret.offset += len(nodes)
	}
}

// CreateNode builds a detached element with an optional text child.
func (d *Document) CreateNode(tag string, attrs []html.Attribute, content string) *html.Node {
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
		Attr:     append([]html.Attribute(nil), attrs...),
	}
	if content != "" {
		n.AppendChild(&html.Node{Type: html.TextNode, Data: content})
	}
	return n
}

// ReplaceNode puts new where old was. Handlers bound to old are dropped.
func (d *Document) ReplaceNode(old, new *html.Node) {
	if !d.ready || old.Parent == nil {
		return
	}
	// new takes old's slot, so caret offsets stay valid.
	parent := old.Parent
	parent.InsertBefore(new, old)
	parent.RemoveChild(old)
	delete(d.handlers, old)
}

// BindChange sets the handler run when the user changes node's selection,
// replacing any previous one.
func (d *Document) BindChange(node *html.Node, fn ChangeHandler) {
	if !d.ready {
		return
	}
	d.handlers[node] = fn
}

// Change applies a user selection to the n-th widget in document order:
// the option whose value is value becomes the selected one, then the bound
// handler, if any, is run.
func (d *Document) Change(n int, value string) error {
	if !d.ready {
		return ErrNotReady
	}
	widgets := d.QueryWidgetNodes()
	if n < 0 || n >= len(widgets) {
		return ErrNoWidget
	}
	w := widgets[n]

	var chosen *html.Node
	for _, opt := range Options(w) {
		if OptionValue(opt) == value {
			chosen = opt
			break
		}
	}
	if chosen == nil {
		return ErrNoOption
	}
	for _, opt := range Options(w) {
		RemoveAttr(opt, "selected")
	}
	SetAttr(chosen, "selected", "")

	if fn := d.handlers[w]; fn != nil {
		fn(value)
	}
	return nil
}

// Options returns the option children of a select node.
func Options(sel *html.Node) []*html.Node {
	var opts []*html.Node
	for c := sel.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.DataAtom == atom.Option {
			opts = append(opts, c)
		}
	}
	return opts
}

// OptionValue is the value a browser would submit for opt: its value
// attribute, or its text when the attribute is absent.
func OptionValue(opt *html.Node) string {
	if v, ok := Attr(opt, "value"); ok {
		return v
	}
	return Text(opt)
}

// SelectValue is the current value of a select node: the last option
// marked selected, else the first option, else "".
func SelectValue(sel *html.Node) string {
	opts := Options(sel)
	if len(opts) == 0 {
		return ""
	}
	chosen := opts[0]
	for _, opt := range opts {
		if _, ok := Attr(opt, "selected"); ok {
			chosen = opt
		}
	}
	return OptionValue(chosen)
}

// closed reports whether n only admits its own option children.
func (d *Document) closed(n *html.Node) bool {
	switch n.DataAtom {
	case atom.Select, atom.Option, atom.Optgroup:
		return true
	}
	return d.selector(n)
}

func (d *Document) attached(n *html.Node) bool {
	for ; n != nil; n = n.Parent {
		if n == d.body {
			return true
		}
	}
	return false
}

func nthChild(n *html.Node, i int) *html.Node {
	if i < 0 {
		return nil
	}
	c := n.FirstChild
	for ; c != nil && i > 0; i-- {
		c = c.NextSibling
	}
	return c
}

func childCount(n *html.Node) int {
	count := 0
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		count++
	}
	return count
}
