// Package notify implements the client's in-app notification queue. The CLI
// renders the queue; timers expire auto-hiding entries without any caller
// involvement.
package notify

import (
	"sync"
	"time"
)

// Kind classifies a notification for rendering.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindWarning Kind = "warning"
	KindError   Kind = "error"
)

// DefaultDuration is how long an auto-hiding notification stays visible.
const DefaultDuration = 5 * time.Second

// Notification is one entry in the queue. ID is unique for the lifetime of
// the Center and strictly increasing in insertion order.
type Notification struct {
	ID       int64
	Kind     Kind
	Message  string
	AutoHide bool
	Duration time.Duration
}

// Options override the defaults of Push. The zero value means
// "info, auto-hide after DefaultDuration".
type Options struct {
	Kind     Kind
	Duration time.Duration
	// Sticky disables auto-hide; the entry stays until removed.
	Sticky bool
}

// Center is an ordered notification queue with per-entry expiry timers.
// All methods are safe for concurrent use.
type Center struct {
	mu     sync.Mutex
	nextID int64
	queue  []Notification
	timers map[int64]*time.Timer

	// afterFunc is a seam for tests; production uses time.AfterFunc.
	afterFunc func(d time.Duration, f func()) *time.Timer
}

// NewCenter returns an empty notification queue.
func NewCenter() *Center {
	return &Center{
		timers:    make(map[int64]*time.Timer),
		afterFunc: time.AfterFunc,
	}
}

// Push appends a notification and returns its id. Auto-hiding entries are
// removed automatically when their duration elapses.
func (c *Center) Push(message string, opts Options) int64 {
	if opts.Kind == "" {
		opts.Kind = KindInfo
	}
	if opts.Duration <= 0 {
		opts.Duration = DefaultDuration
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.nextID++
	n := Notification{
		ID:       c.nextID,
		Kind:     opts.Kind,
		Message:  message,
		AutoHide: !opts.Sticky,
		Duration: opts.Duration,
	}
	c.queue = append(c.queue, n)

	if n.AutoHide {
		id := n.ID
		c.timers[id] = c.afterFunc(n.Duration, func() { c.Remove(id) })
	}
	return n.ID
}

// Info pushes an auto-hiding informational notification.
func (c *Center) Info(message string) int64 {
	return c.Push(message, Options{Kind: KindInfo})
}

// Success pushes an auto-hiding success notification.
func (c *Center) Success(message string) int64 {
	return c.Push(message, Options{Kind: KindSuccess})
}

// Warning pushes an auto-hiding warning notification.
func (c *Center) Warning(message string) int64 {
	return c.Push(message, Options{Kind: KindWarning})
}

// Error pushes an error notification. Errors never auto-hide: the user has
// to see them regardless of when they look at the queue.
func (c *Center) Error(message string) int64 {
	return c.Push(message, Options{Kind: KindError, Sticky: true})
}

// Remove deletes the notification with the given id and cancels its expiry
// timer. Removing an unknown or already expired id is a no-op.
func (c *Center) Remove(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if t, ok := c.timers[id]; ok {
		t.Stop()
		delete(c.timers, id)
	}
	for i, n := range c.queue {
		if n.ID == id {
			c.queue = append(c.queue[:i], c.queue[i+1:]...)
			return
		}
	}
}

// Clear drops every notification and cancels all pending timers.
func (c *Center) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	for id, t := range c.timers {
		t.Stop()
		delete(c.timers, id)
	}
	c.queue = nil
}

// List returns a snapshot of the queue in insertion order.
func (c *Center) List() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Notification, len(c.queue))
	copy(out, c.queue)
	return out
}
