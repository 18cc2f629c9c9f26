package draw

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
)

func TestCountMatches(t *testing.T) {
	winning := []int{3, 9, 14, 22, 30}

	assert.Equal(t, 5, CountMatches([]int{30, 22, 14, 9, 3}, winning))
	assert.Equal(t, 2, CountMatches([]int{3, 9, 1, 2, 4}, winning))
	assert.Equal(t, 0, CountMatches([]int{1, 2, 4, 5, 6}, winning))
	assert.Equal(t, 1, CountMatches([]int{3, 3, 3}, winning), "repeated numbers count once")
}

func TestClassifyDropsNonMatching(t *testing.T) {
	winning := []int{1, 2, 3, 4, 5}
	entries := []Entry{
		{TicketID: 1, UserID: 10, Numbers: []int{1, 2, 3, 4, 5}},
		{TicketID: 2, UserID: 11, Numbers: []int{1, 2, 3, 20, 21}},
		{TicketID: 3, UserID: 12, Numbers: []int{6, 7, 8, 9, 10}},
		{TicketID: 4, UserID: 0, Numbers: []int{3, 2, 1, 30, 31}},
	}

	b := Classify(winning, entries)

	assert.Equal(t, 1, b.Count(5))
	assert.Equal(t, 2, b.Count(3))
	assert.Equal(t, 0, b.Count(4))
	assert.NotContains(t, b, 0)
	assert.Equal(t, map[int]int{5: 1, 4: 0, 3: 2, 2: 0, 1: 0}, b.CountsByTier(5))

	winners := b.Winners(5)
	assert.Len(t, winners, 3)
	assert.Equal(t, int64(1), winners[0].TicketID)
}

func TestClassifyEmpty(t *testing.T) {
	assert.Empty(t, Classify([]int{1, 2, 3, 4, 5}, nil))
}

func randomPick(r *rand.Rand, n, k int) []int {
	return r.Perm(n)[:k]
}

func TestClassifyProperties(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("bucket key equals set intersection and is never zero", prop.ForAll(
		func(seed int64, count int) bool {
			r := rand.New(rand.NewSource(seed))
			winning := randomPick(r, DefaultNumberRange, DefaultPickCount)
			for i := range winning {
				winning[i]++
			}
			entries := make([]Entry, count)
			for i := range entries {
				nums := randomPick(r, DefaultNumberRange, DefaultPickCount)
				for j := range nums {
					nums[j]++
				}
				entries[i] = Entry{TicketID: int64(i + 1), Numbers: nums}
			}

			b := Classify(winning, entries)
			bucketed := 0
			for tier, matches := range b {
				if tier < 1 || tier > DefaultPickCount {
					return false
				}
				for _, m := range matches {
					if m.Matches != tier || CountMatches(m.Numbers, winning) != tier {
						return false
					}
				}
				bucketed += len(matches)
			}

			expected := 0
			for _, e := range entries {
				if CountMatches(e.Numbers, winning) > 0 {
					expected++
				}
			}
			return bucketed == expected
		},
		gen.Int64(),
		gen.IntRange(0, 200),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
