package browser

import (
	"encoding/base64"
	"net/http"
	"strings"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
	"github.com/ysmood/gson"

	"github.com/RickBillie-pixel/scraper/models"
)

// scriptBodyCap bounds how many script responses are pulled back over
// CDP per page.
const scriptBodyCap = 30

// capturedScript is one script response seen on the wire.
type capturedScript struct {
	id  proto.NetworkRequestID
	url string
}

// networkCapture collects the document response and the script
// responses from CDP network events. The listener runs for the whole
// page load; reads happen after the DOM settles.
type networkCapture struct {
	mu        sync.Mutex
	docStatus int
	docHeader proto.NetworkHeaders
	scripts   []capturedScript
}

// listen subscribes the capture to the page's network events. The
// returned wait func blocks until the page context ends, so run it in
// its own goroutine.
func (c *networkCapture) listen(p *rod.Page) func() {
	return p.EachEvent(c.record)
}

func (c *networkCapture) record(ev *proto.NetworkResponseReceived) {
	if ev.Response == nil {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	switch ev.Type {
	case proto.NetworkResourceTypeDocument:
		// First document response is the main frame; iframes load later.
		if c.docStatus == 0 {
			c.docStatus = ev.Response.Status
			c.docHeader = ev.Response.Headers
		}
	case proto.NetworkResourceTypeScript:
		if len(c.scripts) < scriptBodyCap {
			c.scripts = append(c.scripts, capturedScript{id: ev.RequestID, url: ev.Response.URL})
		}
	}
}

func (c *networkCapture) documentStatus() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.docStatus
}

// documentHeader converts the captured CDP headers to http.Header.
// CDP folds repeated headers into one newline-joined value.
func (c *networkCapture) documentHeader() http.Header {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.docHeader == nil {
		return http.Header{}
	}
	out := make(http.Header, len(c.docHeader))
	for name, val := range c.docHeader {
		for _, v := range strings.Split(val.Str(), "\n") {
			out.Add(name, v)
		}
	}
	return out
}

// scriptBodies pulls the captured script responses out of the browser's
// network buffer, keyed by URL. Bodies evicted from the buffer are
// silently missing.
func (c *networkCapture) scriptBodies(p *rod.Page, maxBytes int64) map[string]string {
	c.mu.Lock()
	captured := make([]capturedScript, len(c.scripts))
	copy(captured, c.scripts)
	c.mu.Unlock()

	bodies := make(map[string]string, len(captured))
	for _, cs := range captured {
		res, err := proto.NetworkGetResponseBody{RequestID: cs.id}.Call(p)
		if err != nil {
			continue
		}
		body := res.Body
		if res.Base64Encoded {
			dec, err := base64.StdEncoding.DecodeString(res.Body)
			if err != nil {
				continue
			}
			body = string(dec)
		}
		if int64(len(body)) > maxBytes {
			body = body[:maxBytes]
		}
		bodies[cs.url] = body
	}
	return bodies
}

// collectScripts walks the rendered DOM's script elements and pairs the
// external ones with their captured bodies.
func collectScripts(p *rod.Page, bodies map[string]string) []models.Script {
	res, err := p.Eval(`() => Array.from(document.querySelectorAll("script")).map(s => ({
		src: s.src || "",
		text: s.src ? "" : (s.textContent || "").slice(0, 262144),
	}))`)
	if err != nil {
		return nil
	}

	var scripts []models.Script
	for _, el := range res.Value.Arr() {
		src := el.Get("src").Str()
		if src == "" {
			text := el.Get("text").Str()
			if text == "" {
				continue
			}
			scripts = append(scripts, models.Script{Inline: true, Content: text})
			continue
		}
		scripts = append(scripts, models.Script{URL: src, Content: bodies[src]})
	}
	return scripts
}

// collectTiming reads navigation timing from the performance API.
// Returns nil when the page exposes nothing useful.
func collectTiming(p *rod.Page) *models.PerfTiming {
	res, err := p.Eval(`() => {
		const out = {load: 0, dcl: 0, fp: 0, fcp: 0, resources: 0, redirects: 0, status: 0};
		try {
			const nav = performance.getEntriesByType("navigation")[0];
			if (nav) {
				out.load = Math.max(0, Math.round(nav.loadEventEnd - nav.startTime));
				out.dcl = Math.max(0, Math.round(nav.domContentLoadedEventEnd - nav.startTime));
				out.redirects = nav.redirectCount || 0;
				out.status = nav.responseStatus || 0;
			}
			out.resources = performance.getEntriesByType("resource").length;
			for (const paint of performance.getEntriesByType("paint")) {
				if (paint.name === "first-paint") out.fp = paint.startTime;
				if (paint.name === "first-contentful-paint") out.fcp = paint.startTime;
			}
		} catch (e) {}
		return out;
	}`)
	if err != nil {
		return nil
	}
	return &models.PerfTiming{
		LoadTimeMs:             int64(res.Value.Get("load").Int()),
		DOMContentLoadedMs:     int64(res.Value.Get("dcl").Int()),
		FirstPaintMs:           res.Value.Get("fp").Num(),
		FirstContentfulPaintMs: res.Value.Get("fcp").Num(),
		ResourceCount:          res.Value.Get("resources").Int(),
		RedirectCount:          res.Value.Get("redirects").Int(),
	}
}

// perfStatus is the fallback status source when the network listener
// missed the document response.
func perfStatus(p *rod.Page) int {
	res, err := p.Eval(`() => {
		try {
			const entries = performance.getEntriesByType("navigation");
			if (entries.length > 0) return entries[0].responseStatus || 0;
		} catch (e) {}
		return 0;
	}`)
	if err != nil {
		return 0
	}
	return res.Value.Int()
}

// toHeadersMap converts a plain string map to the gson-valued map the
// Network domain expects.
func toHeadersMap(headers map[string]string) proto.NetworkHeaders {
	m := make(proto.NetworkHeaders, len(headers))
	for k, v := range headers {
		m[k] = gson.New(v)
	}
	return m
}
