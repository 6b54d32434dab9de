// Package selection tracks which catalog item is being inspected in detail.
package selection

import "sync"

// Selection is the shared detail slot. Open implies BookID is set.
type Selection struct {
	BookID string
	Open   bool
}

// Controller owns the single detail slot shared by every list on a screen.
// The zero value is ready to use.
type Controller struct {
	mu      sync.Mutex
	current Selection
}

// NewController creates an empty controller.
func NewController() *Controller {
	return new(Controller)
}

// Select overwrites any previous selection and opens the detail presentation.
// An empty id is ignored.
func (c *Controller) Select(bookID string) {
	if bookID == "" {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = Selection{BookID: bookID, Open: true}
}

// Dismiss closes the presentation and keeps the last id.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current.Open = false
}

// Current returns the present selection.
func (c *Controller) Current() Selection {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Reset clears the slot, used when the owning screen is torn down.
func (c *Controller) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.current = Selection{}
}
