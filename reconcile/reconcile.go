// Package reconcile brings the widgets embedded in a surface into agreement
// with the template store.
package reconcile

import (
	"strconv"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"template-widgets/surface"
	"template-widgets/template"
	"template-widgets/widget"
)

// Result counts what one pass did.
type Result struct {
	Synced      int `json:"synced"`
	Invalidated int `json:"invalidated"`
}

// Synchronizer runs reconciliation passes. It keeps no record of widgets
// between passes; every pass rescans the surface.
type Synchronizer struct {
	store     *template.Store
	codec     *widget.Codec
	logger    *zap.Logger
	listeners []func(Result)
}

func New(store *template.Store, codec *widget.Codec, logger *zap.Logger) *Synchronizer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Synchronizer{store: store, codec: codec, logger: logger}
}

// OnReconcile registers fn to run after every completed pass.
func (s *Synchronizer) OnReconcile(fn func(Result)) {
	s.listeners = append(s.listeners, fn)
}

// Reconcile rebuilds the options of every widget whose value still names a
// template and replaces the rest with error markers. It does nothing when
// surf is missing or not ready.
func (s *Synchronizer) Reconcile(surf surface.Surface) Result {
	var res Result
	if surf == nil || !surf.IsReady() {
		return res
	}

	for _, node := range surf.QueryWidgetNodes() {
		index, ok := s.codec.Decode(node)
		if !ok {
			surf.ReplaceNode(node, widget.MarkerNode(surf))
			res.Invalidated++
			continue
		}

		surface.RemoveChildren(node)
		for _, opt := range s.codec.OptionNodes(surf, index) {
			node.AppendChild(opt)
		}
		surface.SetAttr(node, widget.IndexAttr, strconv.Itoa(index))
		surf.BindChange(node, trackSelection(node))
		res.Synced++
	}

	s.logger.Debug("reconciled widgets",
		zap.Int("synced", res.Synced),
		zap.Int("invalidated", res.Invalidated),
		zap.Int("templates", s.store.Len()))

	for _, fn := range s.listeners {
		fn(res)
	}
	return res
}

// trackSelection keeps the widget's index attribute on the user's latest
// manual choice.
func trackSelection(node *html.Node) surface.ChangeHandler {
	return func(value string) {
		surface.SetAttr(node, widget.IndexAttr, value)
	}
}
