package browser

import (
	"context"
	"log/slog"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Retirement thresholds for pooled tabs. A tab that keeps failing, has
// served many fetches, or has simply lived long enough gets closed and
// replaced rather than reused with accumulated browser state.
const (
	retireErrScore = 3.0
	retireUseCount = 50
	retireAge      = 50 * time.Minute
)

// pageHandle wraps one browser tab with health bookkeeping.
type pageHandle struct {
	page      *rod.Page
	stealthed bool

	mu       sync.Mutex
	errScore float64
	useCount int
	created  time.Time
}

// record applies one fetch outcome. Successes slowly heal the error
// score so a single flaky page does not doom the tab.
func (h *pageHandle) record(ok bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.useCount++
	if ok {
		h.errScore = math.Max(0, h.errScore-0.5)
	} else {
		h.errScore += 1.0
	}
}

func (h *pageHandle) retired() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.errScore >= retireErrScore {
		return true
	}
	if h.useCount >= retireUseCount {
		return true
	}
	return time.Since(h.created) >= retireAge
}

// pagePool hands out health-tracked tabs up to a fixed capacity. Tabs
// are created lazily and retired when their health degrades.
type pagePool struct {
	browser  *rod.Browser
	idle     chan *pageHandle
	capacity int
	active   atomic.Int32

	mu   sync.Mutex
	live int
}

func newPagePool(b *rod.Browser, capacity int) *pagePool {
	if capacity < 1 {
		capacity = 1
	}
	return &pagePool{
		browser:  b,
		idle:     make(chan *pageHandle, capacity),
		capacity: capacity,
	}
}

// get borrows a tab, creating one if the pool is under capacity.
// Blocks until a tab frees up or the context ends.
func (p *pagePool) get(ctx context.Context) (*pageHandle, error) {
	select {
	case h := <-p.idle:
		p.active.Add(1)
		return h, nil
	default:
	}

	p.mu.Lock()
	if p.live < p.capacity {
		p.live++
		p.mu.Unlock()
		page, err := p.browser.Page(proto.TargetCreateTarget{})
		if err != nil {
			p.mu.Lock()
			p.live--
			p.mu.Unlock()
			return nil, err
		}
		p.active.Add(1)
		return &pageHandle{page: page, created: time.Now()}, nil
	}
	p.mu.Unlock()

	select {
	case h := <-p.idle:
		p.active.Add(1)
		return h, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// put returns a tab, closing it instead when its health says retire.
func (p *pagePool) put(h *pageHandle, ok bool) {
	p.active.Add(-1)
	h.record(ok)
	if h.retired() {
		slog.Debug("retiring browser tab", "useCount", h.useCount)
		_ = h.page.Close()
		p.mu.Lock()
		p.live--
		p.mu.Unlock()
		return
	}
	p.idle <- h
}

func (p *pagePool) activeCount() int {
	return int(p.active.Load())
}

// close tears down every idle tab. Borrowed tabs close with the browser.
func (p *pagePool) close() {
	for {
		select {
		case h := <-p.idle:
			_ = h.page.Close()
			p.mu.Lock()
			p.live--
			p.mu.Unlock()
		default:
			return
		}
	}
}
