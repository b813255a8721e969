package engine

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// visibleText returns the text a browser would render for the given
// markup: text nodes inside <body>, excluding script, style, noscript
// and template content, whitespace-collapsed and space-joined.
func visibleText(doc string) string {
	tokenizer := html.NewTokenizer(strings.NewReader(doc))
	var buf strings.Builder
	inBody := false
	skipDepth := 0

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return strings.TrimSpace(buf.String())
		case html.StartTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "body":
				inBody = true
			case "script", "style", "noscript", "template":
				skipDepth++
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			switch string(name) {
			case "script", "style", "noscript", "template":
				if skipDepth > 0 {
					skipDepth--
				}
			}
		case html.TextToken:
			if inBody && skipDepth == 0 {
				text := strings.TrimSpace(string(tokenizer.Text()))
				if text != "" {
					buf.WriteString(text)
					buf.WriteByte(' ')
				}
			}
		}
	}
}

// documentScripts tokenizes the markup and returns every script tag in
// document order: the src attribute for external scripts, the element
// body for inline ones. Resolution of relative srcs is the caller's job.
func documentScripts(doc string) []scriptTag {
	tokenizer := html.NewTokenizer(strings.NewReader(doc))
	var tags []scriptTag
	inInline := false

	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			return tags
		case html.StartTagToken:
			name, hasAttr := tokenizer.TagName()
			if string(name) != "script" {
				continue
			}
			src := ""
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = tokenizer.TagAttr()
				if string(key) == "src" {
					src = strings.TrimSpace(string(val))
				}
			}
			if src != "" {
				tags = append(tags, scriptTag{src: src})
				continue
			}
			inInline = true
		case html.TextToken:
			if inInline {
				if body := strings.TrimSpace(string(tokenizer.Text())); body != "" {
					tags = append(tags, scriptTag{body: body})
				}
			}
		case html.EndTagToken:
			name, _ := tokenizer.TagName()
			if string(name) == "script" {
				inInline = false
			}
		}
	}
}

// scriptTag is one raw script element found during tokenization.
type scriptTag struct {
	src  string // external source attribute, unresolved
	body string // inline element text
}

// Empty framework root containers. A page whose served markup mounts an
// empty root only fills it client-side.
var shellRoots = []string{
	`<div id="root"></div>`,
	`<div id="app"></div>`,
	`<div id="__next"></div>`,
	`<div id="___gatsby"></div>`,
}

// reNoscriptWarning matches "please enable JavaScript" style notices.
var reNoscriptWarning = regexp.MustCompile(`<noscript[^>]*>[^<]*(enable|activate|turn on|requires?)\s+javascript`)

// needsBrowser reports whether the served markup is a JavaScript shell
// that plain HTTP fetching cannot analyze meaningfully. text must be
// the visibleText of doc.
func needsBrowser(doc, text string) bool {
	// Near-empty body text. Covers both SPA shells and pages that hide
	// everything behind client rendering.
	if len(text) < 200 {
		return true
	}

	lower := strings.ToLower(doc)
	for _, root := range shellRoots {
		if strings.Contains(lower, root) {
			return true
		}
	}
	if reNoscriptWarning.MatchString(lower) {
		return true
	}

	// Script-heavy page with little text: client rendering dominates.
	if strings.Count(lower, "<script") > 10 && len(text) < 500 {
		return true
	}
	return false
}
