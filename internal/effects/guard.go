package effects

import (
	"math"

	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
)

// Guard subtracts Strength from matching damage. Never goes below zero.
type Guard struct {
	Base
	Strength int
	Type     domain.DamageType
}

func NewGuard(duration, strength int, t domain.DamageType) *Guard {
	return &Guard{Base: Base{Kind: KindGuard, Remaining: duration}, Strength: strength, Type: t}
}

func (g *Guard) ProcessDamage(amount int, t domain.DamageType) int {
	if !g.Type.Matches(t) {
		return amount
	}
	return max(0, amount-g.Strength)
}

func (g *Guard) Clone() domain.Effect {
	c := *g
	return &c
}

// Vulnerable multiplies matching damage.
type Vulnerable struct {
	Base
	Multiplier float64
	Type       domain.DamageType
}

func NewVulnerable(duration int, multiplier float64, t domain.DamageType) *Vulnerable {
	return &Vulnerable{Base: Base{Kind: KindVulnerable, Remaining: duration}, Multiplier: multiplier, Type: t}
}

func (v *Vulnerable) ProcessDamage(amount int, t domain.DamageType) int {
	if !v.Type.Matches(t) {
		return amount
	}
	return max(0, int(math.Round(float64(amount)*v.Multiplier)))
}

func (v *Vulnerable) Clone() domain.Effect {
	c := *v
	return &c
}
