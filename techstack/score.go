package techstack

// scoreOf reduces a signature's evidence to one confidence value.
// Distinct-pattern weights are summed and the total clamped to [0,100];
// no evidence means 0. Adding evidence never lowers the score.
func scoreOf(found []evidence) int {
	sum := 0
	for _, e := range found {
		sum += e.weight
	}
	if sum > 100 {
		return 100
	}
	if sum < 0 {
		return 0
	}
	return sum
}
