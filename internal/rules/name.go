package rules

// Fallback tokens keep name generation total on empty configuration.
const (
	fallbackFirstName = "Player"
	fallbackLastName  = "Name"
)

// PlayerName picks one entry uniformly from each list and joins them with a
// single space. Empty lists substitute fixed fallbacks; never fails.
func PlayerName(rng RNG, firstNames, lastNames []string) string {
	first := fallbackFirstName
	if len(firstNames) > 0 {
		first = firstNames[rng.Intn(len(firstNames))]
	}
	last := fallbackLastName
	if len(lastNames) > 0 {
		last = lastNames[rng.Intn(len(lastNames))]
	}
	return first + " " + last
}
