package draw

import (
	"math/rand"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestAllocateSingleJackpotWinner(t *testing.T) {
	winning := []int{1, 2, 3, 4, 5}
	entries := []Entry{{TicketID: 1, UserID: 42, Numbers: []int{1, 2, 3, 4, 5}}}
	for i := 2; i <= 10; i++ {
		entries = append(entries, Entry{TicketID: int64(i), Numbers: []int{10, 11, 12, 13, 14 + i}})
	}

	alloc := DefaultPrizeTable().Allocate(len(entries), Classify(winning, entries))

	assert.True(t, dec("5").Equal(alloc.TotalFund))
	require.Len(t, alloc.Awards, 1)
	assert.True(t, dec("2").Equal(alloc.Awards[0].Prize), alloc.Awards[0].Prize.String())
	assert.Equal(t, 5, alloc.Awards[0].Matches)
	assert.True(t, dec("3").Equal(alloc.Unallocated), alloc.Unallocated.String())
	assert.True(t, dec("1.5").Equal(alloc.TierFunds[4]))
	assert.NotContains(t, alloc.PrizePerWinner, 4)
}

func TestAllocateEqualSplitWithinTier(t *testing.T) {
	winning := []int{1, 2, 3, 4, 5}
	entries := []Entry{
		{TicketID: 1, Numbers: []int{1, 2, 3, 20, 21}},
		{TicketID: 2, Numbers: []int{3, 4, 5, 22, 23}},
		{TicketID: 3, Numbers: []int{20, 21, 22, 23, 24}},
		{TicketID: 4, Numbers: []int{25, 26, 27, 28, 29}},
	}

	alloc := DefaultPrizeTable().Allocate(len(entries), Classify(winning, entries))

	require.Len(t, alloc.Awards, 2)
	for _, a := range alloc.Awards {
		assert.Equal(t, 3, a.Matches)
		assert.True(t, dec("0.2").Equal(a.Prize), a.Prize.String())
	}
	assert.True(t, dec("0.4").Equal(alloc.Awarded()))
}

func TestAllocateNoWinners(t *testing.T) {
	alloc := DefaultPrizeTable().Allocate(3, Buckets{})

	assert.Empty(t, alloc.Awards)
	assert.True(t, alloc.Unallocated.Equal(alloc.TotalFund))
	assert.Len(t, alloc.TierFunds, 5)
}

func TestParsePrizeTable(t *testing.T) {
	table, err := ParsePrizeTable("0.5", map[string]string{"5": "0.4", "1": "0.6"}, 5)
	require.NoError(t, err)
	assert.True(t, dec("0.6").Equal(table.Shares[1]))

	_, err = ParsePrizeTable("0.5", map[string]string{"5": "0.7", "4": "0.4"}, 5)
	assert.ErrorIs(t, err, ErrInvalidPrizeTable)

	_, err = ParsePrizeTable("0.5", map[string]string{"6": "0.1"}, 5)
	assert.ErrorIs(t, err, ErrInvalidPrizeTable)

	_, err = ParsePrizeTable("-1", nil, 5)
	assert.ErrorIs(t, err, ErrInvalidPrizeTable)

	_, err = ParsePrizeTable("half", nil, 5)
	assert.ErrorIs(t, err, ErrInvalidPrizeTable)
}

func TestAllocateConservationProperty(t *testing.T) {
	table := DefaultPrizeTable()
	tolerance := dec("0.000000001")
	properties := gopter.NewProperties(nil)

	properties.Property("awards sum to the fund of populated tiers", prop.ForAll(
		func(seed int64, count int) bool {
			r := rand.New(rand.NewSource(seed))
			s, _ := NewSampler(DefaultNumberRange, DefaultPickCount, r)
			winning := s.Sample()
			entries := make([]Entry, count)
			for i := range entries {
				entries[i] = Entry{TicketID: int64(i + 1), Numbers: s.Sample()}
			}

			b := Classify(winning, entries)
			alloc := table.Allocate(count, b)

			want := decimal.Zero
			for tier, share := range table.Shares {
				if b.Count(tier) > 0 {
					want = want.Add(alloc.TotalFund.Mul(share))
				}
			}
			if alloc.Awarded().Sub(want).Abs().GreaterThan(tolerance) {
				return false
			}
			if alloc.Awarded().Add(alloc.Unallocated).Sub(alloc.TotalFund).Abs().GreaterThan(tolerance) {
				return false
			}
			for tier, prize := range alloc.PrizePerWinner {
				for _, a := range alloc.Awards {
					if a.Matches == tier && !a.Prize.Equal(prize) {
						return false
					}
				}
			}
			return true
		},
		gen.Int64(),
		gen.IntRange(1, 300),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}
