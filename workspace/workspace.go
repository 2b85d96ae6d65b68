// Package workspace wires the template store, the document and the widget
// machinery together and runs every operation on one event loop.
package workspace

import (
	"encoding/json"
	"errors"
	"time"

	"go.uber.org/zap"

	"template-widgets/eventloop"
	"template-widgets/hub"
	"template-widgets/insert"
	"template-widgets/reconcile"
	"template-widgets/sidebar"
	"template-widgets/surface"
	"template-widgets/template"
	"template-widgets/widget"
)

var ErrClosed = errors.New("workspace closed")

// State is the snapshot pushed to clients after every change.
type State struct {
	Type      string   `json:"type"`
	Templates []string `json:"templates"`
	Selected  int      `json:"selectedIndex"`
	Sidebar   string   `json:"sidebar"`
	Document  string   `json:"document"`
	Ready     bool     `json:"ready"`
}

type Workspace struct {
	loop   *eventloop.Loop
	store  *template.Store
	codec  *widget.Codec
	doc    *surface.Document
	sync   *reconcile.Synchronizer
	insert *insert.Controller
	hub    *hub.Hub
	logger *zap.Logger
}

// New builds a workspace around store. The document starts out not ready
// until SetContent is called.
func New(store *template.Store, delay time.Duration, logger *zap.Logger) *Workspace {
	if logger == nil {
		logger = zap.NewNop()
	}
	loop := eventloop.New()
	codec := widget.NewCodec(store)
	doc := surface.NewDocument(widget.IsWidget)
	sync := reconcile.New(store, codec, logger.Named("reconcile"))

	w := &Workspace{
		loop:   loop,
		store:  store,
		codec:  codec,
		doc:    doc,
		sync:   sync,
		insert: insert.NewController(store, codec, sync, doc, loop, delay, logger.Named("insert")),
		hub:    hub.New(),
		logger: logger,
	}

	sync.OnReconcile(func(reconcile.Result) { w.publish() })
	store.OnChange(w.reconcile)
	loop.Do(w.publish)
	return w
}

// Hub exposes the client fan-out.
func (w *Workspace) Hub() *hub.Hub { return w.hub }

// Close stops the event loop. Pending deferred passes are dropped.
func (w *Workspace) Close() { w.loop.Close() }

func (w *Workspace) Add() error    { return w.run(w.store.Add) }
func (w *Workspace) Remove() error { return w.run(w.store.Remove) }

func (w *Workspace) Select(i int) error {
	return w.run(func() { w.store.Select(i) })
}

func (w *Workspace) Edit(text string) error {
	return w.run(func() { w.store.Edit(text) })
}

// InsertAtCaret inserts a widget for the current selection. Clients see the
// raw insertion at once and the reconciled widget once the deferred pass runs.
func (w *Workspace) InsertAtCaret() error {
	return w.run(func() {
		w.insert.InsertAtCaret()
		w.publish()
	})
}

// SetContent loads document content, as an editor does on initialization,
// and reconciles every widget in it.
func (w *Workspace) SetContent(markup string) error {
	var err error
	if rerr := w.run(func() {
		if err = w.doc.SetContent(markup); err != nil {
			return
		}
		w.reconcile()
	}); rerr != nil {
		return rerr
	}
	return err
}

func (w *Workspace) SetCaret(path []int) error {
	var err error
	if rerr := w.run(func() { err = w.doc.SetCaret(path) }); rerr != nil {
		return rerr
	}
	return err
}

// ChangeWidget applies a user's selection to the n-th widget in the document.
func (w *Workspace) ChangeWidget(n int, value string) error {
	var err error
	if rerr := w.run(func() {
		if err = w.doc.Change(n, value); err == nil {
			w.publish()
		}
	}); rerr != nil {
		return rerr
	}
	return err
}

// Templates returns the store contents.
func (w *Workspace) Templates() (template.Snapshot, error) {
	var snap template.Snapshot
	err := w.run(func() { snap = w.store.Snapshot() })
	return snap, err
}

// Sidebar returns the rendered template list.
func (w *Workspace) Sidebar() (string, error) {
	var out string
	err := w.run(func() { out = sidebar.Render(w.store.Templates(), w.store.Selected()) })
	return out, err
}

// Document returns the rendered document body.
func (w *Workspace) Document() (string, error) {
	var out string
	err := w.run(func() { out = w.doc.HTML() })
	return out, err
}

// State returns the snapshot clients would receive now.
func (w *Workspace) State() (State, error) {
	var s State
	err := w.run(func() { s = w.state() })
	return s, err
}

func (w *Workspace) run(fn func()) error {
	if !w.loop.Do(fn) {
		return ErrClosed
	}
	return nil
}

// reconcile runs after every store mutation. A pass over a ready document
// publishes through OnReconcile; otherwise the sidebar change is published
// directly.
func (w *Workspace) reconcile() {
	if !w.doc.IsReady() {
		w.publish()
		return
	}
	w.sync.Reconcile(w.doc)
}

func (w *Workspace) state() State {
	snap := w.store.Snapshot()
	return State{
		Type:      "state",
		Templates: snap.Templates,
		Selected:  snap.Selected,
		Sidebar:   sidebar.Render(snap.Templates, snap.Selected),
		Document:  w.doc.HTML(),
		Ready:     w.doc.IsReady(),
	}
}

func (w *Workspace) publish() {
	msg, err := json.Marshal(w.state())
	if err != nil {
		w.logger.Error("encode state", zap.Error(err))
		return
	}
	w.hub.Broadcast(msg)
}
