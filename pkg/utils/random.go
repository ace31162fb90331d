package utils

import (
	"hash/fnv"
	"math/rand"
)

// RNG оборачивает math/rand.Rand и считает количество вызовов.
// Позиция нужна, чтобы при реплее убедиться, что симуляция не разошлась.
type RNG struct {
	seed int64
	src  *rand.Rand
	pos  int64
}

// NewRNG creates a deterministic RNG from a seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		seed: seed,
		src:  rand.New(rand.NewSource(seed)),
	}
}

func (r *RNG) Seed() int64 { return r.seed }

// Position returns the number of draws made since creation.
func (r *RNG) Position() int64 { return r.pos }

// Intn returns a value in [0, n). n <= 0 yields 0.
func (r *RNG) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	r.pos++
	return r.src.Intn(n)
}

// Range returns a value in [min, max].
func (r *RNG) Range(min, max int) int {
	if max < min {
		min, max = max, min
	}
	return min + r.Intn(max-min+1)
}

// Roll returns a value in [1, sides].
func (r *RNG) Roll(sides int) int {
	if sides < 1 {
		return 0
	}
	return r.Intn(sides) + 1
}

func (r *RNG) Float64() float64 {
	r.pos++
	return r.src.Float64()
}

// Chance returns true with probability p.
func (r *RNG) Chance(p float64) bool {
	return r.Float64() < p
}

// Perm returns a pseudo-random permutation of [0, n).
func (r *RNG) Perm(n int) []int {
	r.pos++
	return r.src.Perm(n)
}

// WeightedSelect returns an index chosen by weight.
// Non-positive weights are never picked; -1 when nothing can be picked.
func (r *RNG) WeightedSelect(weights []int) int {
	total := 0
	for _, w := range weights {
		if w > 0 {
			total += w
		}
	}
	if total == 0 {
		return -1
	}
	roll := r.Intn(total)
	cumulative := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		cumulative += w
		if roll < cumulative {
			return i
		}
	}
	return len(weights) - 1
}

// StringToSeed превращает строку (имя зоны, токен) в стабильный сид.
func StringToSeed(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}
