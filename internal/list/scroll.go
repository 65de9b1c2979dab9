package list

// ScrollThreshold is how close to the bottom, in rows, a scroll must get to request
// the next page.
const ScrollThreshold = 5

// ScrollEvent describes the position of a scroll surface.
type ScrollEvent struct {
	Top      int
	Height   int
	Viewport int
}

// ScrollSurface is anything that can report scroll positions to one listener at a time.
type ScrollSurface interface {
	Subscribe(fn func(ScrollEvent)) (unsubscribe func())
}

// Observer holds a scroll subscription for one mount of a surface.
type Observer struct {
	unsubscribe func()
	released    bool
}

// Release detaches the listener. Safe to call more than once and on nil.
func (o *Observer) Release() {
	if o == nil || o.released {
		return
	}
	o.released = true
	if o.unsubscribe != nil {
		o.unsubscribe()
	}
}

// Observe wires surface scroll events to the pagination trigger. onAdvance runs after
// each page advance and may be nil. A previous observation is released first, and a
// nil surface is skipped.
func (c *Controller) Observe(surface ScrollSurface, onAdvance func()) *Observer {
	if surface == nil || c.closed {
		return nil
	}
	c.observer.Release()

	o := &Observer{}
	o.unsubscribe = surface.Subscribe(func(ev ScrollEvent) {
		if o.released {
			return
		}
		if c.OnScroll(ev.Top, ev.Height, ev.Viewport) && onAdvance != nil {
			onAdvance()
		}
	})
	c.observer = o
	return o
}

// OnScroll advances the page cursor when the surface is within ScrollThreshold of the
// bottom. It does nothing for static collections, after the last page, after a failed
// load or while a load is in flight.
func (c *Controller) OnScroll(scrollTop, scrollHeight, viewportHeight int) bool {
	if c.closed || c.static || c.fetcher == nil || c.loading || c.lastPage || c.failed {
		return false
	}
	if scrollTop+viewportHeight < scrollHeight-ScrollThreshold {
		return false
	}
	c.page++
	c.log.Debug().Int("page", c.page).Msg("page advanced")
	return true
}
