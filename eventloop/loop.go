// Package eventloop runs every core operation on one goroutine, so the store
// and the document never need locks.
package eventloop

import (
	"sync"
	"time"
)

// Loop executes posted functions one at a time, in order.
type Loop struct {
	tasks     chan func()
	done      chan struct{}
	closeOnce sync.Once
}

func New() *Loop {
	l := &Loop{
		tasks: make(chan func(), 64),
		done:  make(chan struct{}),
	}
	go l.run()
	return l
}

func (l *Loop) run() {
	for {
		select {
		case fn := <-l.tasks:
			fn()
		case <-l.done:
			return
		}
	}
}

// Do runs fn on the loop and waits for it to return. It returns false
// without running fn once the loop is closed. Calling Do from inside a
// function already running on the loop deadlocks.
func (l *Loop) Do(fn func()) bool {
	if l.closed() {
		return false
	}
	finished := make(chan struct{})
	task := func() {
		defer close(finished)
		fn()
	}
	select {
	case l.tasks <- task:
	case <-l.done:
		return false
	}
	select {
	case <-finished:
		return true
	case <-l.done:
		return false
	}
}

// Post queues fn without waiting for it.
func (l *Loop) Post(fn func()) {
	if l.closed() {
		return
	}
	select {
	case l.tasks <- fn:
	case <-l.done:
	}
}

// After queues fn once d has elapsed. The continuation cannot be cancelled
// and is dropped if the loop closes first.
func (l *Loop) After(d time.Duration, fn func()) {
	time.AfterFunc(d, func() { l.Post(fn) })
}

// Close stops the loop. Queued functions that have not started are dropped.
func (l *Loop) Close() {
	l.closeOnce.Do(func() { close(l.done) })
}

func (l *Loop) closed() bool {
	select {
	case <-l.done:
		return true
	default:
		return false
	}
}
