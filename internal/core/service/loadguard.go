package service

import "sync/atomic"

// LoadGuard tags each view load with a generation so a superseded load's
// results are discarded instead of committed. A navigation that starts a new
// load bumps the generation; the older load's commit check then fails.
type LoadGuard struct {
	gen atomic.Uint64
}

// Begin starts a new load and returns its generation.
func (g *LoadGuard) Begin() uint64 {
	return g.gen.Add(1)
}

// Current reports whether gen is still the latest load.
func (g *LoadGuard) Current(gen uint64) bool {
	return g.gen.Load() == gen
}
