package draw

// Entry is the part of a ticket the classifier needs.
type Entry struct {
	TicketID int64
	UserID   int64
	Numbers  []int
}

// Match is one ticket that shares at least one number with the winning set.
type Match struct {
	Entry
	Matches int
}

// Buckets groups matching tickets by match count.
type Buckets map[int][]Match

// Count returns the number of winners in a tier.
func (b Buckets) Count(tier int) int { return len(b[tier]) }

// Winners returns every bucketed ticket, highest tier first.
func (b Buckets) Winners(pickCount int) []Match {
	var out []Match
	for tier := pickCount; tier >= 1; tier-- {
		out = append(out, b[tier]...)
	}
	return out
}

// CountsByTier returns winners per tier for reporting. Every tier from 1 to
// pickCount is present, empty tiers with 0.
func (b Buckets) CountsByTier(pickCount int) map[int]int {
	out := make(map[int]int, pickCount)
	for tier := 1; tier <= pickCount; tier++ {
		out[tier] = len(b[tier])
	}
	return out
}

// CountMatches returns the size of the intersection of numbers and winning.
func CountMatches(numbers, winning []int) int {
	set := make(map[int]struct{}, len(winning))
	for _, n := range winning {
		set[n] = struct{}{}
	}
	counted := make(map[int]struct{}, len(numbers))
	matches := 0
	for _, n := range numbers {
		if _, ok := set[n]; !ok {
			continue
		}
		if _, dup := counted[n]; dup {
			continue
		}
		counted[n] = struct{}{}
		matches++
	}
	return matches
}

// Classify buckets entries by how many winning numbers they hold. Entries with
// no match are dropped.
func Classify(winning []int, entries []Entry) Buckets {
	buckets := make(Buckets)
	for _, e := range entries {
		m := CountMatches(e.Numbers, winning)
		if m == 0 {
			continue
		}
		buckets[m] = append(buckets[m], Match{Entry: e, Matches: m})
	}
	return buckets
}
