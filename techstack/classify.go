package techstack

import (
	"sort"

	"github.com/RickBillie-pixel/scraper/models"
)

// Options tune what AnalyzeTechStack includes in the report.
type Options struct {
	// MinConfidence excludes detections scoring below it. Zero-confidence
	// detections are never included regardless of the value.
	MinConfidence int

	// TopK caps the cms and framework categories to the K highest
	// confidences; 0 means unlimited. Other categories are never capped:
	// a CMS plus a CDN plus analytics are all simultaneously true.
	TopK int
}

// securityHeaderNames are the headers reported in ServerInfo.SecurityHeaders.
var securityHeaderNames = []string{
	"Strict-Transport-Security",
	"Content-Security-Policy",
	"X-Frame-Options",
	"X-Content-Type-Options",
	"Referrer-Policy",
}

// SecurityHeaderNames returns the header names checked for the
// SecurityHeaders presence maps, in report order.
func SecurityHeaderNames() []string {
	out := make([]string, len(securityHeaderNames))
	copy(out, securityHeaderNames)
	return out
}

// scored pairs a detection with its registry position and raw evidence.
type scored struct {
	idx int
	det models.TechnologyDetection
	ev  []evidence
}

// AnalyzeTechStack runs the signature pipeline over one snapshot:
// evidence collection, confidence scoring, version extraction, category
// classification. Pure function of its inputs; the registry is only read.
// It errors on contract violations only, never on page content.
func AnalyzeTechStack(snap *models.PageSnapshot, reg *Registry, opts Options) (*models.TechStackReport, error) {
	if snap == nil {
		return nil, models.NewAnalysisError(models.ErrCodeInvalidInput, "nil snapshot", nil)
	}
	if reg == nil || reg.Len() == 0 {
		return nil, models.NewAnalysisError(models.ErrCodeInvalidInput, "empty registry", nil)
	}

	perSig := reg.collect(snap)

	// Version patterns search everything at once: a version string can sit
	// in a meta tag, a script banner or a response header.
	versionContent := snap.HTML + "\n" + snap.ScriptText() + "\n" + snap.HeaderLines()

	byCategory := make(map[Category][]scored)
	for i := range reg.signatures {
		sig := &reg.signatures[i]
		ev := perSig[i]
		conf := scoreOf(ev)
		if conf == 0 || conf < opts.MinConfidence {
			continue
		}
		det := models.TechnologyDetection{
			Name:       sig.name,
			Category:   string(sig.category),
			Confidence: conf,
			Evidence:   make([]string, 0, len(ev)),
		}
		if len(sig.versions) > 0 {
			det.Version = sig.findVersion(versionContent)
		}
		for _, e := range ev {
			det.Evidence = append(det.Evidence, e.describe())
		}
		byCategory[sig.category] = append(byCategory[sig.category], scored{idx: i, det: det, ev: ev})
	}

	for cat, list := range byCategory {
		list = dedupByName(list)
		if opts.TopK > 0 && (cat == CategoryCMS || cat == CategoryFramework) {
			list = topK(list, opts.TopK)
		}
		byCategory[cat] = list
	}

	report := &models.TechStackReport{
		Categories: make(map[string]map[string]models.TechnologyDetection),
		ServerInfo: serverInfo(snap, byCategory),
	}
	total := 0
	for cat, list := range byCategory {
		if len(list) == 0 {
			continue
		}
		m := make(map[string]models.TechnologyDetection, len(list))
		for _, s := range list {
			m[s.det.Name] = s.det
		}
		report.Categories[string(cat)] = m
		total += len(list)
	}
	report.Summary = summarize(byCategory, report.ServerInfo, total)
	return report, nil
}

// dedupByName keeps one detection per name within a category. A repeated
// name is a registry integrity slip; the higher confidence wins and the
// survivor keeps the first occurrence's position.
func dedupByName(list []scored) []scored {
	if len(list) < 2 {
		return list
	}
	pos := make(map[string]int, len(list))
	out := make([]scored, 0, len(list))
	for _, s := range list {
		if j, ok := pos[s.det.Name]; ok {
			if s.det.Confidence > out[j].det.Confidence {
				out[j] = s
			}
			continue
		}
		pos[s.det.Name] = len(out)
		out = append(out, s)
	}
	return out
}

// rank orders by confidence descending, ties by name.
func rank(list []scored) []scored {
	ranked := make([]scored, len(list))
	copy(ranked, list)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].det.Confidence != ranked[j].det.Confidence {
			return ranked[i].det.Confidence > ranked[j].det.Confidence
		}
		return ranked[i].det.Name < ranked[j].det.Name
	})
	return ranked
}

// topK keeps the k best-ranked detections, preserving declared order
// among the survivors.
func topK(list []scored, k int) []scored {
	if len(list) <= k {
		return list
	}
	keep := make(map[string]bool, k)
	for _, s := range rank(list)[:k] {
		keep[s.det.Name] = true
	}
	out := make([]scored, 0, k)
	for _, s := range list {
		if keep[s.det.Name] {
			out = append(out, s)
		}
	}
	return out
}

func hasHeaderEvidence(ev []evidence) bool {
	for _, e := range ev {
		if e.layer == LayerHeader {
			return true
		}
	}
	return false
}

// serverInfo reads the header-derived facts. CDN attribution requires
// header-layer evidence: markup mentioning a CDN is not proof the page
// is served through it.
func serverInfo(snap *models.PageSnapshot, byCategory map[Category][]scored) models.ServerInfo {
	info := models.ServerInfo{
		Server:          "Unknown",
		CDN:             "None",
		SecurityHeaders: make(map[string]bool, len(securityHeaderNames)),
	}
	if v := snap.Header("Server"); v != "" {
		info.Server = v
	}
	info.PoweredBy = snap.Header("X-Powered-By")
	for _, name := range securityHeaderNames {
		info.SecurityHeaders[name] = snap.HasHeader(name)
	}

	var cdns []scored
	for _, s := range byCategory[CategoryCDN] {
		if hasHeaderEvidence(s.ev) {
			cdns = append(cdns, s)
		}
	}
	if len(cdns) > 0 {
		info.CDN = rank(cdns)[0].det.Name
	}
	return info
}

// names returns the detections' names ordered by confidence descending,
// ties by name.
func names(list []scored) []string {
	out := make([]string, 0, len(list))
	for _, s := range rank(list) {
		out = append(out, s.det.Name)
	}
	return out
}

func summarize(byCategory map[Category][]scored, server models.ServerInfo, total int) models.TechSummary {
	sum := models.TechSummary{
		TotalTechnologies:  total,
		TechnologyScore:    total,
		CMSDetected:        names(byCategory[CategoryCMS]),
		FrameworksDetected: names(byCategory[CategoryFramework]),
		AnalyticsTools:     names(byCategory[CategoryAnalytics]),
		MainServer:         server.Server,
	}
	sum.HasCMS = len(sum.CMSDetected) > 0
	sum.HasAnalytics = len(sum.AnalyticsTools) > 0
	if total > 0 {
		sum.Primary = make(map[string]string, len(byCategory))
		for cat, list := range byCategory {
			if len(list) == 0 {
				continue
			}
			sum.Primary[string(cat)] = rank(list)[0].det.Name
		}
	}
	return sum
}
