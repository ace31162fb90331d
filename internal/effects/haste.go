package effects

import (
	"github.com/tndwolf/Wizards-Duel-sub000/internal/domain"
)

// Haste scales the owner's speed factor while attached.
type Haste struct {
	Base
	Multiplier float64
}

func NewHaste(duration int, multiplier float64) *Haste {
	return &Haste{Base: Base{Kind: KindHaste, Remaining: duration}, Multiplier: multiplier}
}

func (h *Haste) OnAdded(ctx domain.Context, owner *domain.Entity) {
	h.Base.OnAdded(ctx, owner)
	if h.Multiplier > 0 {
		owner.SpeedFactor *= h.Multiplier
	}
}

func (h *Haste) OnRemoved(_ domain.Context, owner *domain.Entity) {
	if h.Multiplier > 0 {
		owner.SpeedFactor /= h.Multiplier
	}
}

func (h *Haste) Clone() domain.Effect {
	c := *h
	return &c
}
