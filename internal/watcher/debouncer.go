package watcher

import (
	"sync"
	"time"
)

// Debouncer collapses bursts of file events into a single flush. Editors
// and appends tend to produce several write events back to back; the
// peer only needs to hear about the net change once.
type Debouncer struct {
	window  time.Duration
	mu      sync.Mutex
	timer   *time.Timer
	pending int
	onFlush func()
	stopped bool
}

func NewDebouncer(window time.Duration, onFlush func()) *Debouncer {
	return &Debouncer{
		window:  window,
		onFlush: onFlush,
	}
}

func (d *Debouncer) Add() {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.stopped {
		return
	}

	d.pending++

	if d.timer != nil {
		d.timer.Stop()
	}

	d.timer = time.AfterFunc(d.window, d.flush)
}

func (d *Debouncer) flush() {
	d.mu.Lock()
	if d.stopped || d.pending == 0 {
		d.mu.Unlock()
		return
	}
	d.pending = 0
	d.mu.Unlock()

	if d.onFlush != nil {
		d.onFlush()
	}
}

func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.stopped = true
	if d.timer != nil {
		d.timer.Stop()
		d.timer = nil
	}
}
