package simhash

import (
	"reflect"
	"testing"
)

func TestFingerprint_IdenticalTexts(t *testing.T) {
	text := "the quick brown fox jumps over the lazy dog"
	fp1 := Fingerprint(text)
	fp2 := Fingerprint(text)

	if fp1 != fp2 {
		t.Errorf("identical texts produced different fingerprints: %064b vs %064b", fp1, fp2)
	}
}

func TestFingerprint_SimilarTexts(t *testing.T) {
	text1 := "the quick brown fox jumps over the lazy dog"
	text2 := "the quick brown fox leaps over the lazy dog"

	fp1 := Fingerprint(text1)
	fp2 := Fingerprint(text2)

	dist := Distance(fp1, fp2)
	if dist > 10 {
		t.Errorf("similar texts have too large distance: %d (fingerprints: %064b, %064b)", dist, fp1, fp2)
	}
}

func TestFingerprint_DifferentTexts(t *testing.T) {
	text1 := "the quick brown fox jumps over the lazy dog"
	text2 := "completely unrelated content about quantum physics and mathematics"

	fp1 := Fingerprint(text1)
	fp2 := Fingerprint(text2)

	dist := Distance(fp1, fp2)
	if dist < 5 {
		t.Errorf("very different texts have too small distance: %d", dist)
	}
}

func TestFingerprint_EmptyInput(t *testing.T) {
	fp := Fingerprint("")
	if fp != 0 {
		t.Errorf("empty input should produce fingerprint 0, got: %064b", fp)
	}
}

func TestFingerprint_WhitespaceOnly(t *testing.T) {
	fp := Fingerprint("   \t\n  ")
	if fp != 0 {
		t.Errorf("whitespace-only input should produce fingerprint 0, got: %064b", fp)
	}
}

func TestDistance(t *testing.T) {
	tests := []struct {
		name string
		a, b uint64
		want int
	}{
		{"identical", 0xFF, 0xFF, 0},
		{"all different", 0, ^uint64(0), 64},
		{"one bit", 0, 1, 1},
		{"two bits", 0, 3, 2},
		{"zero zero", 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Distance(tt.a, tt.b)
			if got != tt.want {
				t.Errorf("Distance(%d, %d) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestHex(t *testing.T) {
	if got := Hex(0); got != "0000000000000000" {
		t.Errorf("Hex(0) = %q", got)
	}
	if got := Hex(0xdeadbeef); got != "00000000deadbeef" {
		t.Errorf("Hex(0xdeadbeef) = %q", got)
	}
}

func TestFingerprintLayout_SameTemplateDifferentCopy(t *testing.T) {
	html1 := `<html><body><div class="card product"><h1>Red Chair</h1><p>Oak, 45cm</p></div></body></html>`
	html2 := `<html><body><div class="card product"><h1>Blue Table</h1><p>Pine, 120cm</p></div></body></html>`

	fp1 := FingerprintLayout(html1)
	fp2 := FingerprintLayout(html2)

	if fp1 != fp2 {
		t.Errorf("same template should produce identical fingerprints, distance: %d", Distance(fp1, fp2))
	}
}

func TestFingerprintLayout_ClassesMatter(t *testing.T) {
	html1 := `<div class="hero banner"><p>x</p></div>`
	html2 := `<div class="sidebar"><p>x</p></div>`

	fp1 := FingerprintLayout(html1)
	fp2 := FingerprintLayout(html2)

	if fp1 == fp2 {
		t.Error("different class structure should change the fingerprint")
	}
}

func TestFingerprintLayout_DifferentStructures(t *testing.T) {
	html1 := `<html><body><div><h1>Title</h1><p>Text</p><p>More text</p></div></body></html>`
	html2 := `<html><body><table><tr><td>A</td><td>B</td></tr><tr><td>C</td><td>D</td></tr></table></body></html>`

	fp1 := FingerprintLayout(html1)
	fp2 := FingerprintLayout(html2)

	dist := Distance(fp1, fp2)
	if dist < 3 {
		t.Errorf("different structures should have larger distance, got: %d", dist)
	}
}

func TestFingerprintLayout_EmptyHTML(t *testing.T) {
	if fp := FingerprintLayout(""); fp != 0 {
		t.Errorf("empty HTML should produce fingerprint 0, got: %064b", fp)
	}
}

func TestFingerprintLayout_PlainText(t *testing.T) {
	if fp := FingerprintLayout("just some plain text with no tags"); fp != 0 {
		t.Errorf("plain text with no tags should produce fingerprint 0, got: %064b", fp)
	}
}

func TestFingerprintLayout_SingleTag(t *testing.T) {
	if fp := FingerprintLayout("<br/>"); fp == 0 {
		t.Error("single self-closing tag should produce non-zero fingerprint")
	}
}

func TestLayoutFeatures(t *testing.T) {
	htmlStr := `<div class="row main"><p>Hello</p><img src="x.png"/></div>`
	feats := layoutFeatures(htmlStr)

	expected := []string{"div", ".row", ".main", "p", "img"}
	if !reflect.DeepEqual(feats, expected) {
		t.Errorf("features = %v, want %v", feats, expected)
	}
}

func TestMakeShingles(t *testing.T) {
	tokens := []string{"a", "b", "c", "d"}

	shingles := makeShingles(tokens, 3)
	expected := []string{"a_b_c", "b_c_d"}

	if !reflect.DeepEqual(shingles, expected) {
		t.Errorf("shingles = %v, want %v", shingles, expected)
	}
}

func TestMakeShingles_TooFewTokens(t *testing.T) {
	if shingles := makeShingles([]string{"a", "b"}, 3); shingles != nil {
		t.Errorf("expected nil for fewer tokens than n, got: %v", shingles)
	}
}

func TestGroupNear(t *testing.T) {
	a := Fingerprint("identical page content about chairs and tables")
	b := a ^ 1 // one bit apart
	c := Fingerprint("entirely different text concerning weather forecasts today")

	groups := GroupNear([]uint64{a, c, b}, 3)
	if len(groups) != 1 {
		t.Fatalf("groups = %v, want exactly one group", groups)
	}
	if !reflect.DeepEqual(groups[0], []int{0, 2}) {
		t.Errorf("group = %v, want [0 2]", groups[0])
	}
}

func TestGroupNear_IgnoresZeroFingerprints(t *testing.T) {
	groups := GroupNear([]uint64{0, 0, 0}, 10)
	if len(groups) != 0 {
		t.Errorf("zero fingerprints must not group, got %v", groups)
	}
}

func TestGroupNear_NoNearPairs(t *testing.T) {
	a := Fingerprint("first completely distinct body of text here")
	b := Fingerprint("second unrelated writing about other topics entirely")

	if Distance(a, b) <= 3 {
		t.Skip("fixture texts landed too close for this corpus")
	}
	if groups := GroupNear([]uint64{a, b}, 3); len(groups) != 0 {
		t.Errorf("distant fingerprints must not group, got %v", groups)
	}
}
