package techstack

// findVersion tries the signature's version patterns in declared order
// against the combined page content and returns the first non-empty
// captured group. Declared order is the tie-break: once an earlier
// pattern matches, later ones are never consulted, so identical input
// always yields the identical version string.
func (s *compiledSignature) findVersion(content string) string {
	for _, re := range s.versions {
		m := re.FindStringSubmatch(content)
		if m == nil {
			continue
		}
		for _, group := range m[1:] {
			if group != "" {
				return group
			}
		}
	}
	return ""
}
