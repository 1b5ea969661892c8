package cancelable

import "sync"

// Composite holds a set of children and cancels every one of them the
// moment it itself is canceled. Adding a child to an already-canceled
// Composite cancels that child immediately instead of retaining it.
type Composite struct {
	mu       sync.Mutex
	children map[Cancelable]struct{}
	canceled bool
}

// NewComposite creates an empty Composite, optionally pre-populated with
// children.
func NewComposite(children ...Cancelable) *Composite {
	c := &Composite{children: make(map[Cancelable]struct{}, len(children))}
	for _, ch := range children {
		c.Add(ch)
	}
	return c
}

// Add registers a child to be canceled along with the composite.
func (c *Composite) Add(child Cancelable) {
	if child == nil {
		return
	}
	c.mu.Lock()
	if c.canceled {
		c.mu.Unlock()
		child.Cancel()
		return
	}
	c.children[child] = struct{}{}
	c.mu.Unlock()
}

// Remove drops child from the set without canceling it.
func (c *Composite) Remove(child Cancelable) {
	c.mu.Lock()
	delete(c.children, child)
	c.mu.Unlock()
}

func (c *Composite) Cancel() {
	c.mu.Lock()
	if c.canceled {
		c.mu.Unlock()
		return
	}
	c.canceled = true
	children := c.children
	c.children = nil
	c.mu.Unlock()
	for child := range children {
		child.Cancel()
	}
}

func (c *Composite) IsCanceled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.canceled
}
