// Package insert places new reference widgets at the document caret.
package insert

import (
	"time"

	"go.uber.org/zap"

	"template-widgets/reconcile"
	"template-widgets/surface"
	"template-widgets/template"
	"template-widgets/widget"
)

// DefaultDelay gives the surface time to mount inserted markup before the
// follow-up reconciliation pass.
const DefaultDelay = 100 * time.Millisecond

// Scheduler runs fn after d on the same logical thread as the caller.
type Scheduler interface {
	After(d time.Duration, fn func())
}

type Controller struct {
	store   *template.Store
	codec   *widget.Codec
	sync    *reconcile.Synchronizer
	surface surface.Surface
	sched   Scheduler
	delay   time.Duration
	logger  *zap.Logger
}

func NewController(store *template.Store, codec *widget.Codec, sync *reconcile.Synchronizer,
	surf surface.Surface, sched Scheduler, delay time.Duration, logger *zap.Logger) *Controller {
	if delay <= 0 {
		delay = DefaultDelay
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Controller{
		store:   store,
		codec:   codec,
		sync:    sync,
		surface: surf,
		sched:   sched,
		delay:   delay,
		logger:  logger,
	}
}

// InsertAtCaret inserts a widget for the selected template, or an error
// marker when nothing is selected, then schedules a reconciliation pass.
// A surface that is not ready ignores the insertion; the pass still runs
// and is a no-op too.
func (c *Controller) InsertAtCaret() {
	selected := c.store.Selected()
	c.surface.InsertMarkup(c.codec.Encode(selected))
	c.logger.Debug("inserted widget",
		zap.Int("selected", selected),
		zap.Bool("ready", c.surface.IsReady()))

	c.sched.After(c.delay, func() {
		c.sync.Reconcile(c.surface)
	})
}
