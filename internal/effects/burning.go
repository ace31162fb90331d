package effects

import (
	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
)

// Burning deals Strength fire damage every time the owner runs.
type Burning struct {
	Base
	Strength int
}

func NewBurning(duration, strength int) *Burning {
	return &Burning{Base: Base{Kind: KindBurning, Remaining: duration}, Strength: strength}
}

func (b *Burning) OnAdded(ctx domain.Context, owner *domain.Entity) {
	b.Base.OnAdded(ctx, owner)
	ctx.Cues().EmitParticle(domain.ParticleFire, domain.AtEntity(owner))
}

func (b *Burning) OnRound(ctx domain.Context, owner *domain.Entity) bool {
	owner.Damage(ctx, b.Strength, domain.DamageFire)
	return b.tick(ctx.Now())
}

func (b *Burning) OnRemoved(ctx domain.Context, owner *domain.Entity) {
	ctx.Cues().RemoveParticle(domain.AtEntity(owner), domain.ParticleFire)
}

func (b *Burning) Clone() domain.Effect {
	c := *b
	return &c
}
