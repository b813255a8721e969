package engine

import (
	"sync"
	"time"
)

// memorySweepInterval is how often expired verdicts are pruned.
const memorySweepInterval = 15 * time.Minute

// domainVerdict records which engine served a domain, with an expiry.
type domainVerdict struct {
	engine  string
	expires time.Time
}

// DomainMemory remembers which engine worked for each domain so repeat
// fetches skip attempts that are known to fail. Verdicts expire after
// the TTL; a background sweep prunes what lazy expiry misses.
type DomainMemory struct {
	verdicts sync.Map // domain string -> domainVerdict
	ttl      time.Duration
	done     chan struct{}
}

// NewDomainMemory creates the memory and starts its sweep goroutine.
// Call Stop on shutdown.
func NewDomainMemory(ttl time.Duration) *DomainMemory {
	m := &DomainMemory{
		ttl:  ttl,
		done: make(chan struct{}),
	}
	go m.sweepLoop()
	return m
}

// Get returns the remembered engine for a domain, or "" when unknown
// or expired.
func (m *DomainMemory) Get(domain string) string {
	val, ok := m.verdicts.Load(domain)
	if !ok {
		return ""
	}
	v := val.(domainVerdict)
	if time.Now().After(v.expires) {
		m.verdicts.Delete(domain)
		return ""
	}
	return v.engine
}

// Set records the engine that served a domain.
func (m *DomainMemory) Set(domain, engine string) {
	m.verdicts.Store(domain, domainVerdict{
		engine:  engine,
		expires: time.Now().Add(m.ttl),
	})
}

// Delete forgets a domain, typically after its remembered engine fails.
func (m *DomainMemory) Delete(domain string) {
	m.verdicts.Delete(domain)
}

// Len counts the live verdicts.
func (m *DomainMemory) Len() int {
	n := 0
	now := time.Now()
	m.verdicts.Range(func(_, val any) bool {
		if now.Before(val.(domainVerdict).expires) {
			n++
		}
		return true
	})
	return n
}

// Stop terminates the sweep goroutine.
func (m *DomainMemory) Stop() {
	close(m.done)
}

func (m *DomainMemory) sweepLoop() {
	ticker := time.NewTicker(memorySweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			now := time.Now()
			m.verdicts.Range(func(key, val any) bool {
				if now.After(val.(domainVerdict).expires) {
					m.verdicts.Delete(key)
				}
				return true
			})
		}
	}
}
