package view

// Host is the collapsible-panel UI the controller reacts to. The controller
// never polls: it registers callbacks and acts when they fire.
type Host interface {
	OnExpand(func(Panel))
	OnCollapse(func(panelID string))
}

// Window is implemented by hosts that also report window resizes.
type Window interface {
	OnResize(func())
}

// Bind subscribes c to h. Expanding a panel shows it, collapsing hides it,
// and when h is also a Window every resize refits all live panels. Show
// failures from expansion go to the controller's warn func.
func (c *Controller) Bind(h Host) {
	h.OnExpand(func(p Panel) {
		if _, err := c.Show(p); err != nil {
			c.warn(p.ID, err)
		}
	})
	h.OnCollapse(c.Hide)
	if w, ok := h.(Window); ok {
		w.OnResize(func() { c.Resize() })
	}
}
