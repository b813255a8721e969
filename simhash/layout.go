package simhash

import (
	"strings"

	"golang.org/x/net/html"
)

// FingerprintLayout computes a SimHash of the page's template shape: the
// sequence of tag names plus class tokens, ignoring text, ids and every
// other attribute. Pages generated from the same template produce nearby
// fingerprints even when their copy differs completely.
func FingerprintLayout(htmlStr string) uint64 {
	feats := layoutFeatures(htmlStr)
	if len(feats) == 0 {
		return 0
	}

	shingles := makeShingles(feats, 3)
	if len(shingles) == 0 {
		// Too few features for shingles; hash the feature sequence itself.
		return Fingerprint(strings.Join(feats, " "))
	}

	return Fingerprint(strings.Join(shingles, " "))
}

// layoutFeatures walks the markup with the tokenizer and collects open
// tag names in document order, each followed by its class tokens
// prefixed with ".".
func layoutFeatures(htmlStr string) []string {
	tokenizer := html.NewTokenizer(strings.NewReader(htmlStr))
	var feats []string

	for {
		tt := tokenizer.Next()
		switch tt {
		case html.ErrorToken:
			return feats
		case html.StartTagToken, html.SelfClosingTagToken:
			name, hasAttr := tokenizer.TagName()
			feats = append(feats, string(name))
			for hasAttr {
				var key, val []byte
				key, val, hasAttr = tokenizer.TagAttr()
				if string(key) != "class" {
					continue
				}
				for _, cls := range strings.Fields(string(val)) {
					feats = append(feats, "."+cls)
				}
			}
		}
	}
}

// makeShingles creates n-gram shingles from a slice of tokens.
func makeShingles(tokens []string, n int) []string {
	if len(tokens) < n {
		return nil
	}

	shingles := make([]string, 0, len(tokens)-n+1)
	for i := 0; i <= len(tokens)-n; i++ {
		shingles = append(shingles, strings.Join(tokens[i:i+n], "_"))
	}
	return shingles
}
