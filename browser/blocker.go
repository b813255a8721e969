package browser

import (
	"log/slog"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// resourcePatterns maps a blockable resource class to URL patterns for
// Network.setBlockedURLs. Blocking stays on the Network domain so it
// coexists with the response capture listener; Fetch-domain hijacking
// conflicts with Network events on recent Chromium builds.
//
// Scripts and stylesheets are never blockable: the detection pipelines
// need scripts to execute and markup evidence to stay intact.
var resourcePatterns = map[string][]string{
	"Image": {"*.png*", "*.jpg*", "*.jpeg*", "*.gif*", "*.webp*", "*.avif*", "*.ico*", "*.svg*"},
	"Media": {"*.mp4*", "*.webm*", "*.mp3*", "*.ogg*", "*.wav*", "*.m4a*", "*.flac*"},
	"Font":  {"*.woff*", "*.ttf*", "*.otf*", "*.eot*"},
}

// applyResourceBlocks installs URL blocking for the configured resource
// classes. Unknown class names are skipped with a warning.
func applyResourceBlocks(p *rod.Page, classes []string) {
	if len(classes) == 0 {
		return
	}
	var patterns []string
	for _, class := range classes {
		pats, ok := resourcePatterns[class]
		if !ok {
			slog.Warn("unknown blockable resource class", "class", class)
			continue
		}
		patterns = append(patterns, pats...)
	}
	if len(patterns) == 0 {
		return
	}
	if err := (proto.NetworkSetBlockedURLs{Urls: patterns}).Call(p); err != nil {
		slog.Warn("failed to install resource blocks", "error", err)
	}
}
