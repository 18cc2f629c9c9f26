package draw

import (
	"errors"
	"fmt"
	"sort"
	"strconv"

	"github.com/shopspring/decimal"
)

// ErrInvalidPrizeTable is returned for shares or fund rates that cannot split a pool.
var ErrInvalidPrizeTable = errors.New("draw: invalid prize table")

// PrizeTable describes how the pool is funded and split across match tiers.
type PrizeTable struct {
	FundRate decimal.Decimal
	Shares   map[int]decimal.Decimal
}

// DefaultPrizeTable is 0.5 per ticket split 40/30/20/8/2 from five matches down.
func DefaultPrizeTable() PrizeTable {
	return PrizeTable{
		FundRate: decimal.RequireFromString("0.5"),
		Shares: map[int]decimal.Decimal{
			5: decimal.RequireFromString("0.40"),
			4: decimal.RequireFromString("0.30"),
			3: decimal.RequireFromString("0.20"),
			2: decimal.RequireFromString("0.08"),
			1: decimal.RequireFromString("0.02"),
		},
	}
}

// ParsePrizeTable builds a table from decimal strings keyed by tier, as they
// come out of configuration.
func ParsePrizeTable(fundRate string, shares map[string]string, pickCount int) (PrizeTable, error) {
	rate, err := decimal.NewFromString(fundRate)
	if err != nil {
		return PrizeTable{}, fmt.Errorf("%w: fund rate %q: %v", ErrInvalidPrizeTable, fundRate, err)
	}
	table := PrizeTable{FundRate: rate, Shares: make(map[int]decimal.Decimal, len(shares))}
	for k, v := range shares {
		tier, err := strconv.Atoi(k)
		if err != nil {
			return PrizeTable{}, fmt.Errorf("%w: tier %q", ErrInvalidPrizeTable, k)
		}
		share, err := decimal.NewFromString(v)
		if err != nil {
			return PrizeTable{}, fmt.Errorf("%w: share %q for tier %d", ErrInvalidPrizeTable, v, tier)
		}
		table.Shares[tier] = share
	}
	if err := table.Validate(pickCount); err != nil {
		return PrizeTable{}, err
	}
	return table, nil
}

// Validate checks every share lies in [0,1] on a tier in 1..pickCount and the
// shares sum to at most 1.
func (p PrizeTable) Validate(pickCount int) error {
	if p.FundRate.IsNegative() {
		return fmt.Errorf("%w: negative fund rate %s", ErrInvalidPrizeTable, p.FundRate)
	}
	one := decimal.NewFromInt(1)
	sum := decimal.Zero
	for tier, share := range p.Shares {
		if tier < 1 || tier > pickCount {
			return fmt.Errorf("%w: tier %d outside 1..%d", ErrInvalidPrizeTable, tier, pickCount)
		}
		if share.IsNegative() || share.GreaterThan(one) {
			return fmt.Errorf("%w: share %s for tier %d", ErrInvalidPrizeTable, share, tier)
		}
		sum = sum.Add(share)
	}
	if sum.GreaterThan(one) {
		return fmt.Errorf("%w: shares sum to %s", ErrInvalidPrizeTable, sum)
	}
	return nil
}

// Award is the prize owed to one matching ticket.
type Award struct {
	Match
	Prize decimal.Decimal
}

// Allocation is the result of splitting one draw's pool.
type Allocation struct {
	TotalFund      decimal.Decimal
	TierFunds      map[int]decimal.Decimal
	PrizePerWinner map[int]decimal.Decimal
	Awards         []Award
	Unallocated    decimal.Decimal
}

// Awarded returns the sum of all awards.
func (a Allocation) Awarded() decimal.Decimal {
	sum := decimal.Zero
	for _, aw := range a.Awards {
		sum = sum.Add(aw.Prize)
	}
	return sum
}

// Allocate funds the pool from ticketCount and splits each tier's fund evenly
// among its winners. Funds of tiers without winners are forfeited into
// Unallocated.
func (p PrizeTable) Allocate(ticketCount int, buckets Buckets) Allocation {
	total := decimal.NewFromInt(int64(ticketCount)).Mul(p.FundRate)
	alloc := Allocation{
		TotalFund:      total,
		TierFunds:      make(map[int]decimal.Decimal, len(p.Shares)),
		PrizePerWinner: make(map[int]decimal.Decimal),
		Unallocated:    total,
	}

	tiers := make([]int, 0, len(p.Shares))
	for tier := range p.Shares {
		tiers = append(tiers, tier)
	}
	for tier := range buckets {
		if _, ok := p.Shares[tier]; !ok {
			tiers = append(tiers, tier)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(tiers)))

	for _, tier := range tiers {
		fund := total.Mul(p.Shares[tier])
		if _, ok := p.Shares[tier]; ok {
			alloc.TierFunds[tier] = fund
		}
		winners := buckets[tier]
		if len(winners) == 0 {
			continue
		}
		prize := fund.Div(decimal.NewFromInt(int64(len(winners))))
		alloc.PrizePerWinner[tier] = prize
		alloc.Unallocated = alloc.Unallocated.Sub(fund)
		for _, m := range winners {
			alloc.Awards = append(alloc.Awards, Award{Match: m, Prize: prize})
		}
	}
	return alloc
}
