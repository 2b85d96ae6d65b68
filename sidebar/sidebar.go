// Package sidebar renders the template list shown next to the document.
package sidebar

import (
	"bytes"
	"strconv"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	ListID        = "templatesList"
	SelectedClass = "selected"
)

// Render returns one list row per template; the row at selected carries the
// selected class. Each row reports its position in data-index.
func Render(templates []string, selected int) string {
	ul := &html.Node{
		Type:     html.ElementNode,
		Data:     "ul",
		DataAtom: atom.Ul,
		Attr:     []html.Attribute{{Key: "id", Val: ListID}},
	}
	for i, t := range templates {
		li := &html.Node{
			Type:     html.ElementNode,
			Data:     "li",
			DataAtom: atom.Li,
			Attr:     []html.Attribute{{Key: "data-index", Val: strconv.Itoa(i)}},
		}
		if i == selected {
			li.Attr = append(li.Attr, html.Attribute{Key: "class", Val: SelectedClass})
		}
		li.AppendChild(&html.Node{Type: html.TextNode, Data: t})
		ul.AppendChild(li)
	}

	var buf bytes.Buffer
	_ = html.Render(&buf, ul)
	return buf.String()
}
