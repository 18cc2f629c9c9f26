// Package draw holds the pure parts of a lottery draw: sampling the winning
// numbers, classifying tickets by match count and splitting the prize pool.
package draw

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"
)

// Default game shape.
const (
	DefaultNumberRange = 33
	DefaultPickCount   = 5
)

// ErrInvalidShape is returned when a sampler cannot produce distinct picks.
var ErrInvalidShape = errors.New("draw: pick count must be at least 1 and not exceed the number range")

// Source supplies uniform integers in [0, n).
type Source interface {
	Intn(n int) int
}

// lockedSource makes a math/rand generator safe for concurrent draws.
type lockedSource struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

func (s *lockedSource) Intn(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rnd.Intn(n)
}

// NewTimeSeededSource returns the default entropy source.
func NewTimeSeededSource() Source {
	return &lockedSource{rnd: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// Sampler draws PickCount distinct numbers from 1..NumberRange.
type Sampler struct {
	numberRange int
	pickCount   int
	src         Source
}

// NewSampler validates the game shape. A nil src uses a time-seeded source.
func NewSampler(numberRange, pickCount int, src Source) (*Sampler, error) {
	if pickCount < 1 || numberRange < pickCount {
		return nil, fmt.Errorf("%w: %d of %d", ErrInvalidShape, pickCount, numberRange)
	}
	if src == nil {
		src = NewTimeSeededSource()
	}
	return &Sampler{numberRange: numberRange, pickCount: pickCount, src: src}, nil
}

// NumberRange returns the highest drawable number.
func (s *Sampler) NumberRange() int { return s.numberRange }

// PickCount returns how many numbers a draw produces.
func (s *Sampler) PickCount() int { return s.pickCount }

// Sample returns the winning numbers in ascending order.
func (s *Sampler) Sample() []int {
	var picks []int
	if s.numberRange < 2*s.pickCount {
		picks = s.shuffle()
	} else {
		picks = s.reject()
	}
	sort.Ints(picks)
	return picks
}

// reject draws uniformly and keeps unseen values. Expected attempts stay close
// to pickCount while the range is at least twice the pick count.
func (s *Sampler) reject() []int {
	seen := make(map[int]struct{}, s.pickCount)
	picks := make([]int, 0, s.pickCount)
	for len(picks) < s.pickCount {
		n := s.src.Intn(s.numberRange) + 1
		if _, dup := seen[n]; dup {
			continue
		}
		seen[n] = struct{}{}
		picks = append(picks, n)
	}
	return picks
}

// shuffle runs a partial Fisher-Yates over 1..numberRange.
func (s *Sampler) shuffle() []int {
	pool := make([]int, s.numberRange)
	for i := range pool {
		pool[i] = i + 1
	}
	for i := 0; i < s.pickCount; i++ {
		j := i + s.src.Intn(s.numberRange-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	picks := make([]int, s.pickCount)
	copy(picks, pool[:s.pickCount])
	return picks
}

// ValidateNumbers reports whether numbers holds pickCount distinct values in
// 1..numberRange.
func ValidateNumbers(numbers []int, numberRange, pickCount int) error {
	if len(numbers) != pickCount {
		return fmt.Errorf("expected %d numbers, got %d", pickCount, len(numbers))
	}
	seen := make(map[int]struct{}, len(numbers))
	for _, n := range numbers {
		if n < 1 || n > numberRange {
			return fmt.Errorf("number %d outside 1..%d", n, numberRange)
		}
		if _, dup := seen[n]; dup {
			return fmt.Errorf("number %d repeated", n)
		}
		seen[n] = struct{}{}
	}
	return nil
}
