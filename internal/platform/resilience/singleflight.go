package resilience

import (
	"fmt"
	"sync"
)

// SingleFlight collapses concurrent calls that share a key into one execution.
// A key is forgotten as soon as its call settles, so later callers run fn again.
type SingleFlight struct {
	mu    sync.Mutex
	calls map[string]*call
}

type call struct {
	wg   sync.WaitGroup
	val  any
	err  error
	dups int
}

// Do runs fn for key unless a call for key is already in flight, in which case
// it waits for that call and returns its result with shared=true. The caller
// that executed fn always gets shared=false.
func (g *SingleFlight) Do(key string, fn func() (any, error)) (any, error, bool) {
	g.mu.Lock()
	if g.calls == nil {
		g.calls = make(map[string]*call)
	}

	if c, ok := g.calls[key]; ok {
		c.dups++
		g.mu.Unlock()
		c.wg.Wait()
		return c.val, c.err, true
	}

	c := &call{}
	c.wg.Add(1)
	g.calls[key] = c
	g.mu.Unlock()

	g.run(key, c, fn)
	return c.val, c.err, false
}

// InFlight reports how many keys currently have a pending call.
func (g *SingleFlight) InFlight() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.calls)
}

// Waiting reports how many callers are blocked on another caller's execution.
func (g *SingleFlight) Waiting() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	total := 0
	for _, c := range g.calls {
		total += c.dups
	}
	return total
}

func (g *SingleFlight) run(key string, c *call, fn func() (any, error)) {
	defer func() {
		if rec := recover(); rec != nil {
			c.val = nil
			c.err = fmt.Errorf("singleflight call %q panicked: %v", key, rec)
		}

		g.mu.Lock()
		delete(g.calls, key)
		g.mu.Unlock()
		c.wg.Done()
	}()

	c.val, c.err = fn()
}
