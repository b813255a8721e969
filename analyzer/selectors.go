package analyzer

import "github.com/andybalholm/cascadia"

// Precompiled matchers for the selectors the section extractors run on
// every request. cascadia.Selector satisfies goquery.Matcher, so these
// plug straight into FindMatcher and friends without per-call parsing.
var (
	selTitle      = cascadia.MustCompile("title")
	selMeta       = cascadia.MustCompile("meta")
	selStylesheet = cascadia.MustCompile("link[rel~='stylesheet']")
	selCanonical  = cascadia.MustCompile("link[rel~='canonical']")
	selFavicon    = cascadia.MustCompile("link[rel*='icon']")
	selTouchIcon  = cascadia.MustCompile("link[rel*='touch-icon']")

	selMetaViewport    = cascadia.MustCompile("meta[name='viewport']")
	selMetaDescription = cascadia.MustCompile("meta[name='description']")
	selMetaRobots      = cascadia.MustCompile("meta[name='robots']")
	selMetaCharset     = cascadia.MustCompile("meta[charset]")
	selHTMLLang        = cascadia.MustCompile("html[lang]")
	selContentLanguage = cascadia.MustCompile("meta[http-equiv='content-language']")

	selScript    = cascadia.MustCompile("script")
	selScriptSrc = cascadia.MustCompile("script[src]")
	selStyle     = cascadia.MustCompile("style")
	selIframe    = cascadia.MustCompile("iframe")

	selAnchor     = cascadia.MustCompile("a")
	selAnchorHref = cascadia.MustCompile("a[href]")
	selNavLink    = cascadia.MustCompile("nav a, .nav a, .navigation a")

	selImage = cascadia.MustCompile("img")
	selVideo = cascadia.MustCompile("video")
	selAudio = cascadia.MustCompile("audio")

	selParagraph = cascadia.MustCompile("p")
	selList      = cascadia.MustCompile("ul, ol")
	selListItem  = cascadia.MustCompile("li")
	selTable     = cascadia.MustCompile("table")
	selTableRow  = cascadia.MustCompile("tr")
	selTableHead = cascadia.MustCompile("th")
	selCaption   = cascadia.MustCompile("caption")
	selHeading   = cascadia.MustCompile("h1, h2, h3, h4, h5, h6")

	selForm      = cascadia.MustCompile("form")
	selFormField = cascadia.MustCompile("input, textarea, select")
	selLabel     = cascadia.MustCompile("label")

	selItemscope = cascadia.MustCompile("[itemscope]")
	selClassed   = cascadia.MustCompile("[class]")
	selAriaLabel = cascadia.MustCompile("[aria-label]")
	selRole      = cascadia.MustCompile("[role]")

	selAnyElement = cascadia.MustCompile("*")

	// Per-level heading matchers, indexed by level-1.
	selHeadingLevel = [6]cascadia.Selector{
		cascadia.MustCompile("h1"),
		cascadia.MustCompile("h2"),
		cascadia.MustCompile("h3"),
		cascadia.MustCompile("h4"),
		cascadia.MustCompile("h5"),
		cascadia.MustCompile("h6"),
	}
)
