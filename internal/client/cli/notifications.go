package cli

import (
	"fmt"
	"strconv"
)

// Notifications prints the pending notification queue.
func (a *App) Notifications() error {
	queue := a.notifications.List()
	if len(queue) == 0 {
		printlnFn("No notifications")
		return nil
	}

	for _, n := range queue {
		printlnFn(fmt.Sprintf("[%d] %s: %s", n.ID, n.Kind, n.Message))
	}
	return nil
}

// Dismiss removes one notification by id. Unknown ids are ignored.
func (a *App) Dismiss(id string) error {
	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		printlnFn("Usage: dismiss <id>")
		return nil
	}
	a.notifications.Remove(n)
	return nil
}
