package matcher

import "sync/atomic"

// Stats is a snapshot of matcher counters.
type Stats struct {
	Searches            uint64
	StatesCreated       uint64
	TransitionsComputed uint64
	PrefixSkips         uint64
	StartSetSkips       uint64
	WatchdogShortcuts   uint64
	Timeouts            uint64
}

// counters are updated with atomic adds on the search path.
type counters struct {
	searches            atomic.Uint64
	statesCreated       atomic.Uint64
	transitionsComputed atomic.Uint64
	prefixSkips         atomic.Uint64
	startSetSkips       atomic.Uint64
	watchdogShortcuts   atomic.Uint64
	timeouts            atomic.Uint64
}

func (c *counters) snapshot() Stats {
	return Stats{
		Searches:            c.searches.Load(),
		StatesCreated:       c.statesCreated.Load(),
		TransitionsComputed: c.transitionsComputed.Load(),
		PrefixSkips:         c.prefixSkips.Load(),
		StartSetSkips:       c.startSetSkips.Load(),
		WatchdogShortcuts:   c.watchdogShortcuts.Load(),
		Timeouts:            c.timeouts.Load(),
	}
}

func (c *counters) reset() {
	c.searches.Store(0)
	c.statesCreated.Store(0)
	c.transitionsComputed.Store(0)
	c.prefixSkips.Store(0)
	c.startSetSkips.Store(0)
	c.watchdogShortcuts.Store(0)
	c.timeouts.Store(0)
}
