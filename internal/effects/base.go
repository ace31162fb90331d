// Package effects contains the timed modifiers that can be attached to an entity.
package effects

import (
	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
)

// Kind ids. An entity carries at most one effect per kind.
const (
	KindBurning    = "burning"
	KindFreeze     = "freeze"
	KindGuard      = "guard"
	KindVulnerable = "vulnerable"
	KindHaste      = "haste"
)

// Base keeps duration in initiative units. It counts down by the initiative
// that elapsed between two OnRound calls of the owner.
type Base struct {
	Kind               string
	Remaining          int
	LastInitiativeSeen int
}

func (b *Base) KindID() string    { return b.Kind }
func (b *Base) Duration() int     { return b.Remaining }
func (b *Base) SetDuration(d int) { b.Remaining = d }

func (b *Base) OnAdded(ctx domain.Context, _ *domain.Entity) {
	b.LastInitiativeSeen = ctx.Now()
}

func (b *Base) OnRound(ctx domain.Context, _ *domain.Entity) bool {
	return b.tick(ctx.Now())
}

func (b *Base) OnRemoved(domain.Context, *domain.Entity) {}

// tick returns true when the effect has run out.
func (b *Base) tick(now int) bool {
	elapsed := now - b.LastInitiativeSeen
	b.LastInitiativeSeen = now
	if b.Remaining == domain.EffectInfinite {
		return false
	}
	b.Remaining -= elapsed
	return b.Remaining < 1
}

// Infinite reports whether the effect never expires.
func (b *Base) Infinite() bool {
	return b.Remaining == domain.EffectInfinite
}
