// Package surface models the rich-text document that reference widgets live
// in. The core only needs to find widget nodes, create and replace nodes,
// insert markup at the caret and bind change handlers; Surface is that
// capability. Document is the HTML-backed implementation used by the server.
package surface

import (
	"errors"

	"golang.org/x/net/html"
)

var (
	ErrInvalidCaret = errors.New("invalid caret path")
	ErrNoWidget     = errors.New("widget not found")
	ErrNoOption     = errors.New("widget has no such option")
	ErrNotReady     = errors.New("document not ready")
)

// ChangeHandler receives the value a user picked in a widget.
type ChangeHandler func(value string)

// Surface is the document capability consumed by the synchronizer and the
// insertion controller. Every method is a no-op while the surface is not
// ready.
type Surface interface {
	IsReady() bool
	QueryWidgetNodes() []*html.Node
	InsertMarkup(markup string)
	CreateNode(tag string, attrs []html.Attribute, content string) *html.Node
	ReplaceNode(old, new *html.Node)
	BindChange(node *html.Node, fn ChangeHandler)
}
