package effects

import (
	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
)

// Freeze stops the owner's AI while attached.
type Freeze struct {
	Base
}

func NewFreeze(duration int) *Freeze {
	return &Freeze{Base: Base{Kind: KindFreeze, Remaining: duration}}
}

func (f *Freeze) OnAdded(ctx domain.Context, owner *domain.Entity) {
	f.Base.OnAdded(ctx, owner)
	owner.Frozen = true
	ctx.Cues().EmitParticle(domain.ParticleFrost, domain.AtEntity(owner))
}

func (f *Freeze) OnRemoved(ctx domain.Context, owner *domain.Entity) {
	owner.Frozen = false
	ctx.Cues().RemoveParticle(domain.AtEntity(owner), domain.ParticleFrost)
}

func (f *Freeze) Clone() domain.Effect {
	c := *f
	return &c
}
